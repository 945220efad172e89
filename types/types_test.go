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
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name       string
		raw        any
		valid      bool
		missing    bool
		unparsable bool
		text       string
	}{
		{"nil", nil, false, true, false, ""},
		{"blank", "  ", false, true, false, ""},
		{"iso date", "2024-01-10", true, false, false, "2024-01-10"},
		{"rfc3339", "2024-01-10T22:15:00Z", true, false, false, "2024-01-10"},
		{"bytes", []byte("2023-12-31"), true, false, false, "2023-12-31"},
		{"time", time.Date(2020, 2, 29, 8, 0, 0, 0, time.UTC), true, false, false, "2020-02-29"},
		{"zero time", time.Time{}, false, true, false, ""},
		{"garbage", "yesterday-ish", false, false, true, "yesterday-ish"},
		{"impossible day", "2024-02-30", false, false, true, "2024-02-30"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := ParseDate(tt.raw)
			assert.Equal(t, tt.valid, d.Valid())
			assert.Equal(t, tt.missing, d.Missing())
			assert.Equal(t, tt.unparsable, d.Unparsable())
			assert.Equal(t, tt.text, d.String())
		})
	}
}

func TestDateOf(t *testing.T) {
	d := DateOf(2024, time.January, 10)
	tm, ok := d.Time()
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), tm)
	assert.Equal(t, d, ParseDate(d))

	_, ok = ParseDate("nope").Time()
	assert.False(t, ok)
}

func TestParseField(t *testing.T) {
	f, err := ParseField(" Stars ")
	require.NoError(t, err)
	assert.Equal(t, FieldStars, f)
	assert.Equal(t, KindNumeric, f.Kind())

	_, err = ParseField("watchers")
	require.Error(t, err)
	assert.True(t, IsErrorType(err, ErrorTypeMissingField))

	_, err = RequireKind("language", KindDate)
	assert.True(t, IsErrorType(err, ErrorTypeMissingField))
	assert.Contains(t, err.Error(), "not a date")

	f, err = RequireKind("creation_date", KindDate)
	require.NoError(t, err)
	assert.Equal(t, FieldCreationDate, f)
	assert.Len(t, Fields, 9)
}

func TestRecordAccessors(t *testing.T) {
	r := RepositoryRecord{
		Name: "chi", Language: "Go", LicenseType: "MIT",
		Stars: 18000, Forks: 990, OpenIssues: 40,
		CreationDate:    DateOf(2016, 1, 11),
		LastUpdatedDate: ParseDate("soon"),
	}
	assert.Equal(t, "18000", r.Text(FieldStars))
	assert.Equal(t, "", r.Text(FieldDescription))
	assert.Equal(t, "2016-01-11", r.Text(FieldCreationDate))
	assert.Equal(t, "soon", r.Text(FieldLastUpdatedDate))

	n, ok := r.Number(FieldOpenIssues)
	assert.True(t, ok)
	assert.Equal(t, int64(40), n)
	_, ok = r.Number(FieldName)
	assert.False(t, ok)
	_, ok = r.Date(FieldStars)
	assert.False(t, ok)

	env := r.Env()
	assert.Equal(t, int64(18000), env["stars"])
	assert.Nil(t, env["description"])
	assert.Equal(t, "2016-01-11", env["creation_date"])
	assert.Nil(t, env["last_updated_date"])

	ee := r.ExprEnv()
	assert.Equal(t, int64(40), ee.OpenIssues)
	assert.Nil(t, ee.Description)
	assert.Equal(t, "2016-01-11", ee.CreationDate)
	assert.Nil(t, ee.LastUpdatedDate)
}

func TestRecordJSON(t *testing.T) {
	r := RepositoryRecord{
		Name: "chi", Language: "Go", Stars: 1,
		Description:  sql.NullString{String: "router", Valid: true},
		CreationDate: DateOf(2016, 1, 11),
	}
	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"chi","language":"Go","license_type":"","stars":1,"forks":0,"open_issues":0,
		"description":"router","creation_date":"2016-01-11","last_updated_date":null}`, string(data))
}

func TestRecordTable(t *testing.T) {
	src := []RepositoryRecord{
		{Name: "a", Language: "Go", Stars: 5},
		{Name: "b", Language: "", Stars: 50},
		{Name: "c", Language: "Rust", Stars: 7},
		{Name: "d", Language: "Go", Stars: 1},
	}
	table := NewRecordTable(src)
	src[0].Name = "changed"
	assert.Equal(t, "a", table.At(0).Name)

	rows := table.Records()
	rows[1].Name = "changed"
	assert.Equal(t, "b", table.At(1).Name)

	assert.Equal(t, []string{"Go", "Rust"}, table.Distinct(FieldLanguage))
	assert.Equal(t, int64(50), table.MaxStars())

	big := table.Select(func(r RepositoryRecord) bool { return r.Stars > 4 })
	assert.Equal(t, 3, big.Len())
	assert.Equal(t, "c", big.At(2).Name)
	assert.Equal(t, 4, table.Len())

	var visited []string
	table.Each(func(i int, r RepositoryRecord) bool {
		visited = append(visited, r.Name)
		return i < 1
	})
	assert.Equal(t, []string{"a", "b"}, visited)

	var empty *RecordTable
	assert.Equal(t, 0, empty.Len())
	assert.Nil(t, empty.Records())
	assert.Equal(t, 0, empty.Select(func(RepositoryRecord) bool { return true }).Len())
	assert.Equal(t, int64(0), empty.MaxStars())
}

func TestStringSet(t *testing.T) {
	s := NewStringSet("Go", "Rust", "Go")
	assert.Len(t, s, 2)
	assert.True(t, s.Allows("Go"))
	assert.False(t, s.Allows("C"))
	assert.True(t, StringSet{}.Allows("anything"))
	assert.Equal(t, []string{"Go", "Rust"}, s.Values())

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Equal(t, `["Go","Rust"]`, string(data))

	var back StringSet
	require.NoError(t, json.Unmarshal([]byte(`["MIT"]`), &back))
	assert.True(t, back.Contains("MIT"))
	assert.Error(t, json.Unmarshal([]byte(`"MIT"`), &back))
}

func TestFilterCriteria(t *testing.T) {
	assert.True(t, FilterCriteria{}.Unconstrained())
	assert.NoError(t, FilterCriteria{}.Validate())
	assert.False(t, FilterCriteria{MinStars: 1}.Unconstrained())
	assert.False(t, FilterCriteria{Where: "stars > 1"}.Unconstrained())

	err := FilterCriteria{MinStars: -1}.Validate()
	require.Error(t, err)
	assert.True(t, IsErrorType(err, ErrorTypeInvalidCriteria))

	var c FilterCriteria
	require.NoError(t, json.Unmarshal([]byte(`{"languages":["Go"],"minStars":10}`), &c))
	assert.True(t, c.Languages.Contains("Go"))
	assert.Equal(t, int64(10), c.MinStars)
}

func TestAggregationResult(t *testing.T) {
	a := AggregationResult{"b": 2, "a": 2, "c": 5}
	assert.Equal(t, []Bucket{{"c", 5}, {"a", 2}, {"b", 2}}, a.Ranked())
	assert.Equal(t, 9.0, a.Total())
	assert.Empty(t, AggregationResult{}.Ranked())
}

func TestCrossTabCells(t *testing.T) {
	tab := CrossTab{
		{Outer: "Rust", Inner: "x"}: 1,
		{Outer: "Go", Inner: "z"}:   2,
		{Outer: "Go", Inner: "a"}:   3,
	}
	cells := tab.Cells()
	require.Len(t, cells, 3)
	assert.Equal(t, PairKey{"Go", "a"}, cells[0].PairKey)
	assert.Equal(t, PairKey{"Go", "z"}, cells[1].PairKey)
	assert.Equal(t, PairKey{"Rust", "x"}, cells[2].PairKey)

	data, err := json.Marshal(cells[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"outer":"Go","inner":"a","value":3}`, string(data))
}

func TestMonthKey(t *testing.T) {
	dec := MonthKey{Year: 2023, Month: time.December}
	assert.Equal(t, "2023-12", dec.String())
	assert.Equal(t, MonthKey{Year: 2024, Month: time.January}, dec.Next())
	assert.True(t, dec.Before(dec.Next()))
	assert.False(t, dec.Next().Before(dec))

	data, err := json.Marshal(map[MonthKey]int{dec: 1})
	require.NoError(t, err)
	assert.Equal(t, `{"2023-12":1}`, string(data))
}

func TestEngineError(t *testing.T) {
	cause := errors.New("connection refused")
	err := DataUnavailableError("querying repositories", cause)
	assert.Equal(t, "[DATA_UNAVAILABLE] querying repositories: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)

	wrapped := fmt.Errorf("load: %w", InvalidCriteriaError("min_stars", "must be >= 0", nil))
	assert.True(t, IsErrorType(wrapped, ErrorTypeInvalidCriteria))
	assert.False(t, IsErrorType(wrapped, ErrorTypeMissingField))
	assert.False(t, IsErrorType(cause, ErrorTypeDataUnavailable))

	assert.Equal(t, "[MISSING_FIELD] unknown field (field 'watchers')", MissingFieldError("watchers", "unknown field").Error())
	assert.True(t, strings.HasPrefix(UnparsableDateError("creation_date", "x", nil).Error(), "[UNPARSABLE_DATE]"))
	assert.Equal(t, "UNKNOWN_ERROR", ErrorType(42).String())
}

func TestConfig(t *testing.T) {
	cfg := NewConfig()
	assert.Equal(t, DefaultUnknownBucket, cfg.UnknownBucket)
	assert.Equal(t, "sqlite", cfg.Source.Driver)
	assert.Equal(t, DefaultQuery, cfg.Source.Query)
	assert.NoError(t, cfg.Validate())

	loaded, err := LoadConfig(strings.NewReader(`{"topN": 5, "source": {"csvPath": "repos.csv"}}`))
	require.NoError(t, err)
	assert.Equal(t, 5, loaded.TopN)
	assert.Equal(t, 10, loaded.NestedTopN)
	assert.Equal(t, "repos.csv", loaded.Source.CSVPath)
	assert.Equal(t, "sqlite", loaded.Source.Driver)

	empty, err := LoadConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, NewConfig(), empty)

	_, err = LoadConfig(strings.NewReader(`{"windowSize": 5}`))
	assert.Error(t, err)
	_, err = LoadConfig(strings.NewReader(`{"histogramBins": 0}`))
	assert.Error(t, err)
	_, err = LoadConfig(strings.NewReader(`{"topN": -1}`))
	assert.Error(t, err)
}
