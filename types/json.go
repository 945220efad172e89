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

import "encoding/json"

// MarshalJSON encodes a missing date as null, otherwise its String form.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.Missing() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

type recordJSON struct {
	Name            string  `json:"name"`
	Language        string  `json:"language"`
	LicenseType     string  `json:"license_type"`
	Stars           int64   `json:"stars"`
	Forks           int64   `json:"forks"`
	OpenIssues      int64   `json:"open_issues"`
	Description     *string `json:"description"`
	CreationDate    Date    `json:"creation_date"`
	LastUpdatedDate Date    `json:"last_updated_date"`
}

// MarshalJSON encodes the record with its schema field names.
func (r RepositoryRecord) MarshalJSON() ([]byte, error) {
	out := recordJSON{
		Name:            r.Name,
		Language:        r.Language,
		LicenseType:     r.LicenseType,
		Stars:           r.Stars,
		Forks:           r.Forks,
		OpenIssues:      r.OpenIssues,
		CreationDate:    r.CreationDate,
		LastUpdatedDate: r.LastUpdatedDate,
	}
	if r.Description.Valid {
		out.Description = &r.Description.String
	}
	return json.Marshal(out)
}
