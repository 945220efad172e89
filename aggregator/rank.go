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
	"sort"

	"github.com/rulego/repoinsight/types"
)

func checkN(n int) error {
	if n < 0 {
		return types.InvalidCriteriaError("n", fmt.Sprintf("must be >= 0, got %d", n), nil)
	}
	return nil
}

// TopN returns the n records with the largest measureField, ties in table order.
// n larger than the table returns every record.
func TopN(table *types.RecordTable, measureField string, n int) ([]types.RepositoryRecord, error) {
	m, err := ResolveMeasure(measureField)
	if err != nil {
		return nil, err
	}
	return TopNBy(table, m, n)
}

// TopNBy is TopN with a resolved measure. Records without a value are not ranked.
func TopNBy(table *types.RecordTable, m Measure, n int) ([]types.RepositoryRecord, error) {
	if err := checkN(n); err != nil {
		return nil, err
	}

	type ranked struct {
		record types.RepositoryRecord
		value  float64
	}
	rows := make([]ranked, 0, table.Len())
	table.Each(func(_ int, r types.RepositoryRecord) bool {
		if v, ok := m.Value(r); ok {
			rows = append(rows, ranked{record: r, value: v})
		}
		return true
	})
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].value > rows[j].value })

	if n > len(rows) {
		n = len(rows)
	}
	out := make([]types.RepositoryRecord, n)
	for i := range out {
		out[i] = rows[i].record
	}
	return out, nil
}

// NestedTopN ranks the distinct innerKey values by their total measure, keeps
// the n largest (ties by first appearance), and returns the measure summed per
// (outerKey, innerKey) pair for records whose inner key made the cut.
//
// With outer=language, inner=name, measure=open_issues this is the
// "open issues of the top repositories, broken out by language" view.
func NestedTopN(table *types.RecordTable, outerKey, innerKey, measureField string, n int, opts ...GroupOption) (types.CrossTab, error) {
	outer, err := types.ParseField(outerKey)
	if err != nil {
		return nil, err
	}
	inner, err := types.ParseField(innerKey)
	if err != nil {
		return nil, err
	}
	m, err := ResolveMeasure(measureField)
	if err != nil {
		return nil, err
	}
	if err := checkN(n); err != nil {
		return nil, err
	}
	cfg := newGroupConfig(opts)

	// stage 1: totals per inner key in first-seen order
	var order []string
	totals := make(map[string]float64)
	table.Each(func(_ int, r types.RepositoryRecord) bool {
		k, ok := cfg.key(r, inner)
		if !ok {
			return true
		}
		v, ok := m.Value(r)
		if !ok {
			return true
		}
		if _, seen := totals[k]; !seen {
			order = append(order, k)
		}
		totals[k] += v
		return true
	})
	sort.SliceStable(order, func(i, j int) bool { return totals[order[i]] > totals[order[j]] })
	if n < len(order) {
		order = order[:n]
	}
	keep := types.NewStringSet(order...)

	// stage 2: cross tabulation restricted to the kept inner keys
	tab := make(types.CrossTab)
	table.Each(func(_ int, r types.RepositoryRecord) bool {
		ik, ok := cfg.key(r, inner)
		if !ok || !keep.Contains(ik) {
			return true
		}
		ov, hasOuter := cfg.key(r, outer)
		if !hasOuter {
			return true
		}
		v, hasValue := m.Value(r)
		if !hasValue {
			return true
		}
		tab[types.PairKey{Outer: ov, Inner: ik}] += v
		return true
	})
	return tab, nil
}
