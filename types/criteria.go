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

import (
	"encoding/json"
	"fmt"
	"sort"
)

// StringSet is a set of exact-match values. An empty set places no constraint.
type StringSet map[string]struct{}

// NewStringSet builds a set from values; blank values are kept since they match unknown languages.
func NewStringSet(values ...string) StringSet {
	s := make(StringSet, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// Contains reports membership
func (s StringSet) Contains(v string) bool {
	_, ok := s[v]
	return ok
}

// Allows is true for an empty set or a member value.
func (s StringSet) Allows(v string) bool {
	return len(s) == 0 || s.Contains(v)
}

// Values returns the members in ascending order.
func (s StringSet) Values() []string {
	values := make([]string, 0, len(s))
	for v := range s {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

// MarshalJSON encodes the set as a sorted array
func (s StringSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Values())
}

// UnmarshalJSON decodes an array of strings
func (s *StringSet) UnmarshalJSON(data []byte) error {
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	*s = NewStringSet(values...)
	return nil
}

// FilterCriteria selects records. The zero value matches everything.
type FilterCriteria struct {
	Languages StringSet `json:"languages"`
	Licenses  StringSet `json:"licenses"`
	MinStars  int64     `json:"minStars"`

	// Where is an optional expr-lang boolean expression over record fields,
	// e.g. `forks > 10 && like_match(name, 'go-%')`.
	Where string `json:"where,omitempty"`
	// Selector is an optional go-bexpr selector over record fields,
	// e.g. `language == "Go" and description contains "cli"`.
	Selector string `json:"selector,omitempty"`
}

// Validate rejects criteria the filter engine cannot apply. Values are never clamped.
func (c FilterCriteria) Validate() error {
	if c.MinStars < 0 {
		return InvalidCriteriaError("min_stars", fmt.Sprintf("must be >= 0, got %d", c.MinStars), nil)
	}
	return nil
}

// Unconstrained reports whether the criteria match every record.
func (c FilterCriteria) Unconstrained() bool {
	return len(c.Languages) == 0 && len(c.Licenses) == 0 && c.MinStars <= 0 && c.Where == "" && c.Selector == ""
}
