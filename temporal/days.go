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

// Package temporal derives date based metrics from repository records.
// The reference date is always supplied by the caller; nothing here reads the clock.
package temporal

import (
	"time"

	"github.com/rulego/repoinsight/types"
)

const secondsPerDay = 24 * 60 * 60

// civil drops the time of day, keeping the calendar date as seen in t's location.
func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole calendar days from target to reference;
// positive when target is earlier. Any span between years 1 and 9999 is exact.
func DaysBetween(reference, target time.Time) int {
	return int(civil(reference).Unix()/secondsPerDay - civil(target).Unix()/secondsPerDay)
}

func daysSince(d types.Date, asOf time.Time) (int, bool) {
	t, ok := d.Time()
	if !ok {
		return 0, false
	}
	return DaysBetween(asOf, t), true
}

// AgeDays is the number of days since the repository was created.
// It reports false when the creation date is missing or unparsable.
func AgeDays(r types.RepositoryRecord, asOf time.Time) (int, bool) {
	return daysSince(r.CreationDate, asOf)
}

// StalenessDays is the number of days since the last update.
// It reports false when the update date is missing or unparsable.
func StalenessDays(r types.RepositoryRecord, asOf time.Time) (int, bool) {
	return daysSince(r.LastUpdatedDate, asOf)
}

// Series holds a per-record day metric for the records that have it.
type Series struct {
	Values []int `json:"values"`
	// Skipped counts records whose date could not be parsed
	Skipped int `json:"skipped"`
	// Missing counts records without a date
	Missing int `json:"missing"`
}

// Floats returns the values as float64, ready for a histogram.
func (s Series) Floats() []float64 {
	out := make([]float64, len(s.Values))
	for i, v := range s.Values {
		out[i] = float64(v)
	}
	return out
}

func series(table *types.RecordTable, f types.Field, asOf time.Time) Series {
	s := Series{Values: make([]int, 0, table.Len())}
	table.Each(func(_ int, r types.RepositoryRecord) bool {
		d, _ := r.Date(f)
		switch {
		case d.Missing():
			s.Missing++
		case d.Unparsable():
			s.Skipped++
		default:
			v, _ := daysSince(d, asOf)
			s.Values = append(s.Values, v)
		}
		return true
	})
	return s
}

// AgeSeries computes AgeDays for every record, in table order.
func AgeSeries(table *types.RecordTable, asOf time.Time) Series {
	return series(table, types.FieldCreationDate, asOf)
}

// StalenessSeries computes StalenessDays for every record, in table order.
func StalenessSeries(table *types.RecordTable, asOf time.Time) Series {
	return series(table, types.FieldLastUpdatedDate, asOf)
}
