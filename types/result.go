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
	"fmt"
	"sort"
	"time"
)

// AggregationResult maps a group key to a numeric measure.
type AggregationResult map[string]float64

// Bucket is one entry of an AggregationResult.
type Bucket struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
}

// Ranked returns the entries by descending value, ties by ascending key.
func (a AggregationResult) Ranked() []Bucket {
	buckets := make([]Bucket, 0, len(a))
	for k, v := range a {
		buckets = append(buckets, Bucket{Key: k, Value: v})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Value != buckets[j].Value {
			return buckets[i].Value > buckets[j].Value
		}
		return buckets[i].Key < buckets[j].Key
	})
	return buckets
}

// Total sums all values
func (a AggregationResult) Total() float64 {
	var total float64
	for _, v := range a {
		total += v
	}
	return total
}

// PairKey keys a two-level cross tabulation.
type PairKey struct {
	Outer string `json:"outer"`
	Inner string `json:"inner"`
}

// CrossTab maps (outer, inner) pairs to a summed measure.
type CrossTab map[PairKey]float64

// Cell is one entry of a CrossTab.
type Cell struct {
	PairKey
	Value float64 `json:"value"`
}

// Cells returns the entries ordered by outer key, then inner key.
func (c CrossTab) Cells() []Cell {
	cells := make([]Cell, 0, len(c))
	for k, v := range c {
		cells = append(cells, Cell{PairKey: k, Value: v})
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Outer != cells[j].Outer {
			return cells[i].Outer < cells[j].Outer
		}
		return cells[i].Inner < cells[j].Inner
	})
	return cells
}

// MonthKey is a calendar month bucket.
type MonthKey struct {
	Year  int
	Month time.Month
}

// String formats as YYYY-MM
func (m MonthKey) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Before orders months chronologically
func (m MonthKey) Before(o MonthKey) bool {
	if m.Year != o.Year {
		return m.Year < o.Year
	}
	return m.Month < o.Month
}

// Next returns the following month
func (m MonthKey) Next() MonthKey {
	if m.Month == time.December {
		return MonthKey{Year: m.Year + 1, Month: time.January}
	}
	return MonthKey{Year: m.Year, Month: m.Month + 1}
}

// MarshalText lets MonthKey key JSON objects.
func (m MonthKey) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}
