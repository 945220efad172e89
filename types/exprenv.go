/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package types

// ExprEnv is the record as seen by expr-lang programs. Programs are compiled
// against ExprEnv{} so a name outside the schema fails to compile.
// Optional fields hold nil when absent, the same values Env reports.
type ExprEnv struct {
	Name            string      `expr:"name"`
	Language        string      `expr:"language"`
	LicenseType     string      `expr:"license_type"`
	Stars           int64       `expr:"stars"`
	Forks           int64       `expr:"forks"`
	OpenIssues      int64       `expr:"open_issues"`
	Description     interface{} `expr:"description"`
	CreationDate    interface{} `expr:"creation_date"`
	LastUpdatedDate interface{} `expr:"last_updated_date"`
}

// ExprEnv returns the expression environment of r.
func (r RepositoryRecord) ExprEnv() ExprEnv {
	env := r.Env()
	return ExprEnv{
		Name:            r.Name,
		Language:        r.Language,
		LicenseType:     r.LicenseType,
		Stars:           r.Stars,
		Forks:           r.Forks,
		OpenIssues:      r.OpenIssues,
		Description:     env[string(FieldDescription)],
		CreationDate:    env[string(FieldCreationDate)],
		LastUpdatedDate: env[string(FieldLastUpdatedDate)],
	}
}
