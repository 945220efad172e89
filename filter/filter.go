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

// Package filter applies FilterCriteria to a RecordTable.
package filter

import (
	"github.com/rulego/repoinsight/condition"
	"github.com/rulego/repoinsight/types"
)

// Matches reports whether r satisfies the typed clauses of c:
// stars >= MinStars, language in Languages, license in Licenses,
// where an empty set places no constraint.
func Matches(r types.RepositoryRecord, c types.FilterCriteria) bool {
	return r.Stars >= c.MinStars &&
		c.Languages.Allows(r.Language) &&
		c.Licenses.Allows(r.LicenseType)
}

// Compile validates c and returns the full predicate, ad-hoc clauses included.
func Compile(c types.FilterCriteria) (condition.Condition, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	all := condition.All{condition.ConditionFunc(func(r types.RepositoryRecord) bool {
		return Matches(r, c)
	})}
	if c.Where != "" {
		where, err := condition.NewExprCondition(c.Where)
		if err != nil {
			return nil, condition.CompileError("where", err)
		}
		all = append(all, where)
	}
	if c.Selector != "" {
		sel, err := condition.NewSelectorCondition(c.Selector)
		if err != nil {
			return nil, types.InvalidCriteriaError("selector", "invalid selector", err)
		}
		all = append(all, sel)
	}
	return all, nil
}

// Apply returns a new table with the records of table that satisfy c, in their original order.
// The input table is never modified. Criteria errors are returned before any record is read.
func Apply(table *types.RecordTable, c types.FilterCriteria) (*types.RecordTable, error) {
	pred, err := Compile(c)
	if err != nil {
		return nil, err
	}
	return table.Select(pred.Evaluate), nil
}
