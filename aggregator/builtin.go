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
	"fmt"
	"math"
)

// AggregateType names a per-group reduction.
type AggregateType string

const (
	Count AggregateType = "count"
	Sum   AggregateType = "sum"
	Avg   AggregateType = "avg"
	Max   AggregateType = "max"
	Min   AggregateType = "min"
)

// AggregatorFunction accumulates the measure values of one group.
type AggregatorFunction interface {
	New() AggregatorFunction
	Add(value float64)
	Result() float64
}

// CreateBuiltinAggregator returns a fresh accumulator for t.
func CreateBuiltinAggregator(t AggregateType) (AggregatorFunction, error) {
	switch t {
	case Count:
		return &CountAggregator{}, nil
	case Sum:
		return &SumAggregator{}, nil
	case Avg:
		return &AvgAggregator{}, nil
	case Max:
		return &MaxAggregator{value: math.Inf(-1)}, nil
	case Min:
		return &MinAggregator{value: math.Inf(1)}, nil
	}
	return nil, fmt.Errorf("unsupported aggregate type %q", t)
}

type CountAggregator struct {
	count int
}

func (c *CountAggregator) New() AggregatorFunction { return &CountAggregator{} }
func (c *CountAggregator) Add(_ float64)           { c.count++ }
func (c *CountAggregator) Result() float64         { return float64(c.count) }

type SumAggregator struct {
	value float64
}

func (s *SumAggregator) New() AggregatorFunction { return &SumAggregator{} }
func (s *SumAggregator) Add(v float64)           { s.value += v }
func (s *SumAggregator) Result() float64         { return s.value }

type AvgAggregator struct {
	sum   float64
	count int
}

func (a *AvgAggregator) New() AggregatorFunction { return &AvgAggregator{} }

func (a *AvgAggregator) Add(v float64) {
	a.sum += v
	a.count++
}

func (a *AvgAggregator) Result() float64 {
	if a.count == 0 {
		return 0
	}
	return a.sum / float64(a.count)
}

type MaxAggregator struct {
	value float64
}

func (m *MaxAggregator) New() AggregatorFunction { return &MaxAggregator{value: math.Inf(-1)} }

func (m *MaxAggregator) Add(v float64) {
	if v > m.value {
		m.value = v
	}
}

// Result is 0 for a group that saw no values
func (m *MaxAggregator) Result() float64 {
	if math.IsInf(m.value, -1) {
		return 0
	}
	return m.value
}

type MinAggregator struct {
	value float64
}

func (m *MinAggregator) New() AggregatorFunction { return &MinAggregator{value: math.Inf(1)} }

func (m *MinAggregator) Add(v float64) {
	if v < m.value {
		m.value = v
	}
}

// Result is 0 for a group that saw no values
func (m *MinAggregator) Result() float64 {
	if math.IsInf(m.value, 1) {
		return 0
	}
	return m.value
}
