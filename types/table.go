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

// RecordTable is an ordered, read-only sequence of repository records.
// The zero value and a nil *RecordTable are both empty tables.
type RecordTable struct {
	records []RepositoryRecord
}

// NewRecordTable copies records into a new table.
func NewRecordTable(records []RepositoryRecord) *RecordTable {
	cp := make([]RepositoryRecord, len(records))
	copy(cp, records)
	return &RecordTable{records: cp}
}

// Len returns the number of records
func (t *RecordTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.records)
}

// At returns the i-th record by value.
func (t *RecordTable) At(i int) RepositoryRecord {
	return t.records[i]
}

// Records returns a copy of the rows in table order.
func (t *RecordTable) Records() []RepositoryRecord {
	if t == nil {
		return nil
	}
	cp := make([]RepositoryRecord, len(t.records))
	copy(cp, t.records)
	return cp
}

// Each calls fn for every record in order until fn returns false.
func (t *RecordTable) Each(fn func(i int, r RepositoryRecord) bool) {
	if t == nil {
		return
	}
	for i, r := range t.records {
		if !fn(i, r) {
			return
		}
	}
}

// Select returns a new table holding the records keep accepts, in order.
func (t *RecordTable) Select(keep func(r RepositoryRecord) bool) *RecordTable {
	out := &RecordTable{records: make([]RepositoryRecord, 0, t.Len())}
	t.Each(func(_ int, r RepositoryRecord) bool {
		if keep(r) {
			out.records = append(out.records, r)
		}
		return true
	})
	return out
}

// Distinct returns the distinct non-empty values of a field in first-seen order.
// Used to populate filter pickers.
func (t *RecordTable) Distinct(f Field) []string {
	seen := make(map[string]bool)
	var values []string
	t.Each(func(_ int, r RepositoryRecord) bool {
		v := r.Text(f)
		if v != "" && !seen[v] {
			seen[v] = true
			values = append(values, v)
		}
		return true
	})
	return values
}

// MaxStars returns the largest star count, 0 for an empty table. It bounds the min-stars slider.
func (t *RecordTable) MaxStars() int64 {
	var max int64
	t.Each(func(_ int, r RepositoryRecord) bool {
		if r.Stars > max {
			max = r.Stars
		}
		return true
	})
	return max
}
