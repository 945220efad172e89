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

package temporal

import (
	"sort"
	"time"

	"github.com/rulego/repoinsight/aggregator"
	"github.com/rulego/repoinsight/types"
)

// MonthlyBucket returns the calendar month of t.
func MonthlyBucket(t time.Time) types.MonthKey {
	return types.MonthKey{Year: t.Year(), Month: t.Month()}
}

// TrendPoint is one month of a trend series.
type TrendPoint struct {
	Month types.MonthKey `json:"month"`
	Value float64        `json:"value"`
}

// Trend is a monthly series in ascending month order.
type Trend struct {
	Points []TrendPoint `json:"points"`
	// Skipped counts records excluded because their date could not be parsed
	Skipped int `json:"skipped"`
	// Missing counts records excluded because they have no date
	Missing int `json:"missing"`
}

// TrendOption customizes trend computation.
type TrendOption func(*trendConfig)

type trendConfig struct {
	dense   bool
	unknown string
}

// DenseMonths zero-fills every month between the first and last month present.
func DenseMonths() TrendOption {
	return func(c *trendConfig) { c.dense = true }
}

// UnknownLanguage sets the label for records without a language in StarsTrendByLanguage.
func UnknownLanguage(label string) TrendOption {
	return func(c *trendConfig) {
		if label != "" {
			c.unknown = label
		}
	}
}

func newTrendConfig(opts []TrendOption) trendConfig {
	c := trendConfig{unknown: types.DefaultUnknownBucket}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// bucketer walks the records with a valid date in f, counting the rest.
type bucketer struct {
	skipped, missing int
}

func (b *bucketer) each(table *types.RecordTable, f types.Field, fn func(m types.MonthKey, r types.RepositoryRecord)) {
	table.Each(func(_ int, r types.RepositoryRecord) bool {
		d, _ := r.Date(f)
		t, ok := d.Time()
		switch {
		case ok:
			fn(MonthlyBucket(t), r)
		case d.Unparsable():
			b.skipped++
		default:
			b.missing++
		}
		return true
	})
}

func buildTrend(sums map[types.MonthKey]float64, b bucketer, cfg trendConfig) Trend {
	months := make([]types.MonthKey, 0, len(sums))
	for m := range sums {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	if cfg.dense && len(months) > 1 {
		first, last := months[0], months[len(months)-1]
		months = months[:0]
		for m := first; !last.Before(m); m = m.Next() {
			months = append(months, m)
		}
	}

	trend := Trend{Points: make([]TrendPoint, 0, len(months)), Skipped: b.skipped, Missing: b.missing}
	for _, m := range months {
		trend.Points = append(trend.Points, TrendPoint{Month: m, Value: sums[m]})
	}
	return trend
}

// TrendByMonth sums measureField per calendar month of dateField.
// Months without records are omitted unless DenseMonths is given.
func TrendByMonth(table *types.RecordTable, dateField, measureField string, opts ...TrendOption) (Trend, error) {
	f, err := types.RequireKind(dateField, types.KindDate)
	if err != nil {
		return Trend{}, err
	}
	m, err := aggregator.ResolveMeasure(measureField)
	if err != nil {
		return Trend{}, err
	}

	var b bucketer
	sums := make(map[types.MonthKey]float64)
	b.each(table, f, func(month types.MonthKey, r types.RepositoryRecord) {
		if v, ok := m.Value(r); ok {
			sums[month] += v
		}
	})
	return buildTrend(sums, b, newTrendConfig(opts)), nil
}

// CountByMonth counts records per calendar month of dateField,
// e.g. repositories created or last updated each month.
func CountByMonth(table *types.RecordTable, dateField string, opts ...TrendOption) (Trend, error) {
	f, err := types.RequireKind(dateField, types.KindDate)
	if err != nil {
		return Trend{}, err
	}

	var b bucketer
	counts := make(map[types.MonthKey]float64)
	b.each(table, f, func(month types.MonthKey, _ types.RepositoryRecord) {
		counts[month]++
	})
	return buildTrend(counts, b, newTrendConfig(opts)), nil
}

// LanguageTrend maps creation month to language to summed stars.
// Language/month pairs without repositories are absent, not zero.
type LanguageTrend struct {
	Months  map[types.MonthKey]map[string]float64 `json:"months"`
	Skipped int                                   `json:"skipped"`
	Missing int                                   `json:"missing"`
}

// SortedMonths returns the months present in ascending order.
func (lt LanguageTrend) SortedMonths() []types.MonthKey {
	months := make([]types.MonthKey, 0, len(lt.Months))
	for m := range lt.Months {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })
	return months
}

// Languages returns every language present in ascending order.
func (lt LanguageTrend) Languages() []string {
	seen := make(types.StringSet)
	for _, byLang := range lt.Months {
		for l := range byLang {
			seen[l] = struct{}{}
		}
	}
	return seen.Values()
}

// StarsTrendByLanguage sums stars per creation month and language.
func StarsTrendByLanguage(table *types.RecordTable, opts ...TrendOption) LanguageTrend {
	cfg := newTrendConfig(opts)
	var b bucketer
	months := make(map[types.MonthKey]map[string]float64)
	b.each(table, types.FieldCreationDate, func(month types.MonthKey, r types.RepositoryRecord) {
		lang := r.Language
		if lang == "" {
			lang = cfg.unknown
		}
		byLang, ok := months[month]
		if !ok {
			byLang = make(map[string]float64)
			months[month] = byLang
		}
		byLang[lang] += float64(r.Stars)
	})
	return LanguageTrend{Months: months, Skipped: b.skipped, Missing: b.missing}
}
