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
	"github.com/rulego/repoinsight/types"
)

// GroupOption customizes how group keys are derived.
type GroupOption func(*groupConfig)

type groupConfig struct {
	unknown      string
	excludeEmpty bool
}

// ExcludeEmpty drops records whose group value is empty instead of bucketing them.
func ExcludeEmpty() GroupOption {
	return func(c *groupConfig) { c.excludeEmpty = true }
}

// UnknownBucket sets the label empty group values are counted under.
func UnknownBucket(label string) GroupOption {
	return func(c *groupConfig) {
		if label != "" {
			c.unknown = label
		}
	}
}

func newGroupConfig(opts []GroupOption) groupConfig {
	c := groupConfig{unknown: types.DefaultUnknownBucket}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// key returns the group key of r, or false when the record is excluded.
func (c groupConfig) key(r types.RepositoryRecord, f types.Field) (string, bool) {
	k := r.Text(f)
	if k != "" {
		return k, true
	}
	if c.excludeEmpty {
		return "", false
	}
	return c.unknown, true
}

// GroupBy reduces measure per distinct value of groupField. A nil measure is
// only valid for Count. Records without a measure value are skipped.
func GroupBy(table *types.RecordTable, groupField string, measure Measure, aggType AggregateType, opts ...GroupOption) (types.AggregationResult, error) {
	f, err := types.ParseField(groupField)
	if err != nil {
		return nil, err
	}
	proto, err := CreateBuiltinAggregator(aggType)
	if err != nil {
		return nil, types.InvalidCriteriaError("aggregation", err.Error(), nil)
	}
	if measure == nil && aggType != Count {
		return nil, types.MissingFieldError("", "measure required for "+string(aggType))
	}

	cfg := newGroupConfig(opts)
	groups := make(map[string]AggregatorFunction)
	table.Each(func(_ int, r types.RepositoryRecord) bool {
		k, ok := cfg.key(r, f)
		if !ok {
			return true
		}
		var v float64
		if measure != nil {
			if v, ok = measure.Value(r); !ok {
				return true
			}
		}
		acc, exists := groups[k]
		if !exists {
			acc = proto.New()
			groups[k] = acc
		}
		acc.Add(v)
		return true
	})

	result := make(types.AggregationResult, len(groups))
	for k, acc := range groups {
		result[k] = acc.Result()
	}
	return result, nil
}

// CountBy counts records per distinct value of keyField. Empty values are
// counted under the unknown bucket unless ExcludeEmpty is given.
func CountBy(table *types.RecordTable, keyField string, opts ...GroupOption) (types.AggregationResult, error) {
	return GroupBy(table, keyField, nil, Count, opts...)
}

// SumBy sums measureField across the records sharing a groupField value.
func SumBy(table *types.RecordTable, groupField, measureField string, opts ...GroupOption) (types.AggregationResult, error) {
	if _, err := types.ParseField(groupField); err != nil {
		return nil, err
	}
	m, err := ResolveMeasure(measureField)
	if err != nil {
		return nil, err
	}
	return GroupBy(table, groupField, m, Sum, opts...)
}

// PercentageDistribution returns each value's share of the records in percent.
// The shares sum to 100 for a non-empty table; an empty table gives an empty result.
func PercentageDistribution(table *types.RecordTable, field string, opts ...GroupOption) (types.AggregationResult, error) {
	counts, err := CountBy(table, field, opts...)
	if err != nil {
		return nil, err
	}
	total := counts.Total()
	result := make(types.AggregationResult, len(counts))
	if total == 0 {
		return result, nil
	}
	for k, v := range counts {
		result[k] = v / total * 100
	}
	return result, nil
}

// Totals is the summary line of a table.
type Totals struct {
	Repositories int   `json:"repositories"`
	Stars        int64 `json:"stars"`
	Forks        int64 `json:"forks"`
	OpenIssues   int64 `json:"openIssues"`
}

// Summarize totals stars, forks and open issues.
func Summarize(table *types.RecordTable) Totals {
	var t Totals
	table.Each(func(_ int, r types.RepositoryRecord) bool {
		t.Repositories++
		t.Stars += r.Stars
		t.Forks += r.Forks
		t.OpenIssues += r.OpenIssues
		return true
	})
	return t
}
