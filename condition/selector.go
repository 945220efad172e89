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

package condition

import (
	"fmt"

	"github.com/hashicorp/go-bexpr"

	"github.com/rulego/repoinsight/types"
)

// SelectorCondition evaluates a go-bexpr selector such as
// `language == "Go" and description contains "cli"` against the record fields.
// bexpr has no ordering operators; numeric thresholds belong in MinStars or Where.
// This is the syntax HTTP callers pass in the filter parameter.
type SelectorCondition struct {
	source    string
	evaluator *bexpr.Evaluator
}

// NewSelectorCondition compiles a selector expression.
func NewSelectorCondition(selector string) (*SelectorCondition, error) {
	evaluator, err := bexpr.CreateEvaluator(selector)
	if err != nil {
		return nil, fmt.Errorf("error parsing selector '%s': %w", selector, err)
	}
	return &SelectorCondition{source: selector, evaluator: evaluator}, nil
}

// Evaluate reports whether the record matches; evaluation errors, such as
// matching on an absent description, count as a non-match.
func (s *SelectorCondition) Evaluate(r types.RepositoryRecord) bool {
	ok, err := s.evaluator.Evaluate(r.Env())
	if err != nil {
		return false
	}
	return ok
}

// String returns the source selector
func (s *SelectorCondition) String() string { return s.source }
