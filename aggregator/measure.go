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

package aggregator

import (
	"math"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/rulego/repoinsight/condition"
	"github.com/rulego/repoinsight/types"
)

// Measure extracts the number aggregated or ranked for a record.
type Measure interface {
	Name() string
	// Value returns false when the record has no value for the measure.
	Value(r types.RepositoryRecord) (float64, bool)
}

// FieldMeasure measures one numeric schema field.
type FieldMeasure types.Field

func (f FieldMeasure) Name() string { return string(f) }

func (f FieldMeasure) Value(r types.RepositoryRecord) (float64, bool) {
	n, ok := r.Number(types.Field(f))
	return float64(n), ok
}

// ExpressionMeasure computes an expr-lang numeric expression over the record
// fields, for instance "stars + 2 * forks".
type ExpressionMeasure struct {
	source  string
	program *vm.Program
}

// Expression compiles a measure expression. A name outside the schema is
// MissingField; any other compile error is InvalidCriteria.
func Expression(source string) (*ExpressionMeasure, error) {
	program, err := expr.Compile(source, expr.Env(types.ExprEnv{}), expr.AsFloat64())
	if err != nil {
		return nil, condition.CompileError("measure", err)
	}
	return &ExpressionMeasure{source: source, program: program}, nil
}

func (e *ExpressionMeasure) Name() string { return e.source }

// Value runs the expression. Runtime errors, such as arithmetic on an absent
// description, and NaN or infinite results mean no value.
func (e *ExpressionMeasure) Value(r types.RepositoryRecord) (float64, bool) {
	out, err := expr.Run(e.program, r.ExprEnv())
	if err != nil {
		return 0, false
	}
	v, ok := out.(float64)
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// expressionPrefix marks measure names that are expressions rather than fields.
const expressionPrefix = "expr:"

// ResolveMeasure turns a measure name into a Measure. Names are numeric schema
// fields, or "expr:<expression>" for a computed measure. Anything else is MissingField.
func ResolveMeasure(name string) (Measure, error) {
	if src, ok := strings.CutPrefix(name, expressionPrefix); ok {
		return Expression(strings.TrimSpace(src))
	}
	f, err := types.RequireKind(name, types.KindNumeric)
	if err != nil {
		return nil, err
	}
	return FieldMeasure(f), nil
}
