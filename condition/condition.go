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
	"regexp"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/rulego/repoinsight/types"
)

// Condition is a compiled boolean predicate over a repository record.
type Condition interface {
	Evaluate(r types.RepositoryRecord) bool
}

// ConditionFunc adapts a plain function to Condition.
type ConditionFunc func(r types.RepositoryRecord) bool

// Evaluate calls f(r)
func (f ConditionFunc) Evaluate(r types.RepositoryRecord) bool { return f(r) }

// ExprCondition evaluates an expr-lang expression with the record fields as variables.
type ExprCondition struct {
	source  string
	program *vm.Program
}

// NewExprCondition compiles expression against the record schema. Besides the
// expr-lang builtins it provides like_match(text, pattern) with SQL LIKE
// wildcards, case-insensitive. Names outside the schema fail to compile.
func NewExprCondition(expression string) (*ExprCondition, error) {
	options := []expr.Option{
		expr.Function("like_match", func(params ...any) (any, error) {
			if len(params) != 2 {
				return false, fmt.Errorf("like_match function requires 2 parameters")
			}
			pattern, ok := params[1].(string)
			if !ok {
				return false, fmt.Errorf("like_match pattern must be a string")
			}
			// absent descriptions never match
			text, ok := params[0].(string)
			if !ok {
				return false, nil
			}
			return MatchLike(text, pattern), nil
		}),
		expr.Env(types.ExprEnv{}),
		expr.AsBool(),
	}

	program, err := expr.Compile(expression, options...)
	if err != nil {
		return nil, err
	}
	return &ExprCondition{source: expression, program: program}, nil
}

// Evaluate runs the program; runtime errors count as a non-match.
func (ec *ExprCondition) Evaluate(r types.RepositoryRecord) bool {
	result, err := expr.Run(ec.program, r.ExprEnv())
	if err != nil {
		return false
	}
	b, ok := result.(bool)
	return ok && b
}

// String returns the source expression
func (ec *ExprCondition) String() string { return ec.source }

var unknownName = regexp.MustCompile(`unknown name ([A-Za-z_][A-Za-z0-9_]*)`)

// CompileError classifies an expression compile error for option. A name that
// is not a record field is MissingField; any other error is InvalidCriteria.
func CompileError(option string, err error) *types.EngineError {
	if m := unknownName.FindStringSubmatch(err.Error()); m != nil {
		return &types.EngineError{
			Type:    types.ErrorTypeMissingField,
			Message: fmt.Sprintf("unknown field in %s expression", option),
			Field:   m[1],
			Cause:   err,
		}
	}
	return types.InvalidCriteriaError(option, "invalid expression", err)
}

// All is the conjunction of conditions; empty All matches everything.
type All []Condition

// Evaluate reports whether every condition holds
func (a All) Evaluate(r types.RepositoryRecord) bool {
	for _, c := range a {
		if !c.Evaluate(r) {
			return false
		}
	}
	return true
}

// MatchLike reports whether text matches a LIKE pattern, ignoring case.
// % matches any run of characters, _ exactly one.
func MatchLike(text, pattern string) bool {
	return likeMatch([]rune(strings.ToLower(text)), []rune(strings.ToLower(pattern)))
}

// likeMatch walks text and pattern, remembering the last % to backtrack to.
func likeMatch(text, pattern []rune) bool {
	ti, pi := 0, 0
	star, mark := -1, 0
	for ti < len(text) {
		switch {
		case pi < len(pattern) && (pattern[pi] == '_' || pattern[pi] == text[ti]):
			ti++
			pi++
		case pi < len(pattern) && pattern[pi] == '%':
			star = pi
			mark = ti
			pi++
		case star >= 0:
			pi = star + 1
			mark++
			ti = mark
		default:
			return false
		}
	}
	for pi < len(pattern) && pattern[pi] == '%' {
		pi++
	}
	return pi == len(pattern)
}
