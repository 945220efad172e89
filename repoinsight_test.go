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


package repoinsight

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulego/repoinsight/logger"
	"github.com/rulego/repoinsight/types"
)

var asOf = time.Date(2024, 1, 31, 15, 0, 0, 0, time.UTC)

func text(s string) sql.NullString { return sql.NullString{String: s, Valid: true} }

func fixture() *types.RecordTable {
	return types.NewRecordTable([]types.RepositoryRecord{
		{Name: "alpha", Language: "Go", LicenseType: "MIT", Stars: 100, Forks: 10, OpenIssues: 5,
			Description: text("Fast HTTP router"), CreationDate: types.ParseDate("2023-01-15"), LastUpdatedDate: types.ParseDate("2024-01-10")},
		{Name: "beta", Language: "Go", LicenseType: "Apache-2.0", Stars: 50, Forks: 5, OpenIssues: 20,
			Description: text("HTTP client library"), CreationDate: types.ParseDate("2023-03-02"), LastUpdatedDate: types.ParseDate("2024-01-25")},
		{Name: "gamma", Language: "Rust", LicenseType: "MIT", Stars: 300, Forks: 40, OpenIssues: 2,
			CreationDate: types.ParseDate("2022-11-20"), LastUpdatedDate: types.ParseDate("garbage")},
		{Name: "delta", Stars: 10, Forks: 1, OpenIssues: 0,
			Description: text("router toolkit"), LastUpdatedDate: types.ParseDate("2023-12-31")},
		{Name: "epsilon", Language: "Python", LicenseType: "MIT", Stars: 20, Forks: 3, OpenIssues: 7,
			Description: text("Data tools"), CreationDate: types.ParseDate("2023-01-03"), LastUpdatedDate: types.ParseDate("2024-01-02")},
		{Name: "zeta", Language: "Rust", LicenseType: "GPL-3.0", Stars: 5, Forks: 0, OpenIssues: 1,
			CreationDate: types.ParseDate("2023-03-30"), LastUpdatedDate: types.ParseDate("2024-01-30")},
	})
}

func newSession(t *testing.T, opts ...Option) *Session {
	t.Helper()
	opts = append([]Option{WithDiscardLog(), WithTopN(3, 3)}, opts...)
	s, err := New(fixture(), opts...)
	require.NoError(t, err)
	return s
}

func names(records []types.RepositoryRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name
	}
	return out
}

func TestNew(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)
	assert.True(t, types.IsErrorType(err, types.ErrorTypeDataUnavailable))

	_, err = New(fixture(), WithDiscardLog(), WithHistogramBins(0))
	assert.Error(t, err)

	a := newSession(t)
	b := newSession(t)
	_, err = uuid.Parse(a.ID())
	assert.NoError(t, err)
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, 6, a.Table().Len())
	assert.Equal(t, 3, a.Config().TopN)
}

func TestNew_EmptyTableIsAvailable(t *testing.T) {
	s, err := New(types.NewRecordTable(nil), WithDiscardLog())
	require.NoError(t, err)

	view, err := s.Explore(types.FilterCriteria{})
	require.NoError(t, err)
	assert.Equal(t, 0, view.Totals.Repositories)
	assert.Empty(t, view.Languages)
	assert.Empty(t, view.LicensePercentages)
}

func TestOptions(t *testing.T) {
	cfg := types.NewConfig()
	cfg.UnknownBucket = "n/a"
	cfg.TopN = 1
	s := newSession(t, WithConfig(cfg), WithWordCloudSize(2), WithDenseTrends())
	assert.Equal(t, "n/a", s.Config().UnknownBucket)
	assert.Equal(t, 1, s.Config().TopN)
	assert.Equal(t, 2, s.Config().WordCloudSize)
	assert.True(t, s.Config().DenseTrends)

	s = newSession(t, WithUnknownBucket("none"), WithUnknownBucket(""))
	assert.Equal(t, "none", s.Config().UnknownBucket)
}

func TestWithLogLevel_KeepsDefaultLevel(t *testing.T) {
	original := logger.GetDefault()
	defer logger.SetDefault(original)

	var buf bytes.Buffer
	shared := logger.NewLogger(logger.WARN, &buf)
	logger.SetDefault(shared)

	s, err := New(fixture(), WithLogLevel(logger.DEBUG))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "session created over 6 repositories")

	buf.Reset()
	shared.Info("default stays at WARN")
	assert.Empty(t, buf.String())

	s.Logger().Debug("session debug")
	assert.Contains(t, buf.String(), "session debug")
}

func TestFilter(t *testing.T) {
	s := newSession(t)

	out, err := s.Filter(types.FilterCriteria{Languages: types.NewStringSet("Rust"), MinStars: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"gamma"}, names(out.Records()))

	_, err = s.Filter(types.FilterCriteria{MinStars: -1})
	assert.True(t, types.IsErrorType(err, types.ErrorTypeInvalidCriteria))

	_, err = s.Filter(types.FilterCriteria{Where: "stars >"})
	assert.True(t, types.IsErrorType(err, types.ErrorTypeInvalidCriteria))
}

func TestExplore(t *testing.T) {
	s := newSession(t)
	view, err := s.Explore(types.FilterCriteria{})
	require.NoError(t, err)

	assert.Equal(t, 6, view.Totals.Repositories)
	assert.Equal(t, int64(485), view.Totals.Stars)
	assert.Equal(t, int64(59), view.Totals.Forks)
	assert.Equal(t, int64(35), view.Totals.OpenIssues)

	assert.Equal(t, []types.Bucket{
		{Key: "Go", Value: 2}, {Key: "Rust", Value: 2}, {Key: "Python", Value: 1}, {Key: "unknown", Value: 1},
	}, view.Languages)
	assert.Equal(t, []string{"gamma", "alpha", "beta"}, names(view.TopByStars))
	assert.Equal(t, types.Bucket{Key: "MIT", Value: 3}, view.Licenses[0])
	assert.InDelta(t, 50.0, view.LicensePercentages[0].Value, 1e-9)

	assert.Equal(t, []types.Cell{
		{PairKey: types.PairKey{Outer: "Go", Inner: "alpha"}, Value: 5},
		{PairKey: types.PairKey{Outer: "Go", Inner: "beta"}, Value: 20},
		{PairKey: types.PairKey{Outer: "Python", Inner: "epsilon"}, Value: 7},
	}, view.OpenIssues)

	assert.Equal(t, 6, view.Stars.Summary.Count)
	assert.Equal(t, 300.0, view.Stars.Summary.Max)
	assert.Equal(t, 6, view.Records.Len())
}

func TestExplore_Filtered(t *testing.T) {
	s := newSession(t)
	view, err := s.Explore(types.FilterCriteria{Languages: types.NewStringSet("Go")})
	require.NoError(t, err)
	assert.Equal(t, 2, view.Totals.Repositories)
	assert.Equal(t, 2, view.Records.Len())
	assert.Equal(t, []types.Bucket{{Key: "Go", Value: 2}}, view.Languages)

	_, err = s.Explore(types.FilterCriteria{MinStars: -5})
	assert.True(t, types.IsErrorType(err, types.ErrorTypeInvalidCriteria))
}

func TestVisualize(t *testing.T) {
	s := newSession(t)
	view, err := s.Visualize(types.FilterCriteria{Languages: types.NewStringSet("Go", "Rust")}, asOf)
	require.NoError(t, err)

	assert.Equal(t, "2024-01-31", view.AsOf)

	// whole table
	assert.Len(t, view.Languages, 4)
	assert.Len(t, view.StarsVsForks, 6)
	var share float64
	for _, b := range view.LanguagePercentages {
		share += b.Value
	}
	assert.InDelta(t, 100.0, share, 1e-6)
	assert.Equal(t, 1, view.Created.Missing)
	require.Len(t, view.Created.Points, 3)
	assert.Equal(t, 2.0, view.Created.Points[1].Value)

	// filtered: alpha, beta, gamma, zeta
	assert.Equal(t, []int{21, 6, 1}, view.Staleness.Values)
	assert.Equal(t, 1, view.Staleness.Skipped)
	assert.Equal(t, []int{381, 335, 437, 307}, view.Age.Values)
	assert.Equal(t, 3, view.StalenessHist.Summary.Count)
	assert.Equal(t, 4, view.AgeHist.Summary.Count)

	require.Len(t, view.Updated.Points, 1)
	assert.Equal(t, types.MonthKey{Year: 2024, Month: time.January}, view.Updated.Points[0].Month)
	assert.Equal(t, 3.0, view.Updated.Points[0].Value)
	assert.Equal(t, 1, view.Updated.Skipped)

	assert.Equal(t, map[types.MonthKey]map[string]float64{
		{Year: 2022, Month: time.November}: {"Rust": 300},
		{Year: 2023, Month: time.January}:  {"Go": 100},
		{Year: 2023, Month: time.March}:    {"Go": 50, "Rust": 5},
	}, view.StarsByLanguage.Months)

	assert.Equal(t, types.Bucket{Key: "http", Value: 2}, view.Words[0])
	assert.Equal(t, []string{"gamma", "alpha", "beta"}, names(view.TopByStars))
	assert.Equal(t, []string{"gamma", "alpha", "beta"}, names(view.TopByForks))
	assert.Len(t, view.Licenses, 3)

	_, err = json.Marshal(view)
	assert.NoError(t, err)
}

func TestSessionQueries(t *testing.T) {
	s := newSession(t)
	all := types.FilterCriteria{}

	counts, err := s.CountBy(all, "license_type")
	require.NoError(t, err)
	assert.Equal(t, 3.0, counts["MIT"])
	assert.Equal(t, 1.0, counts["unknown"])

	_, err = s.CountBy(all, "watchers")
	assert.True(t, types.IsErrorType(err, types.ErrorTypeMissingField))

	sums, err := s.SumBy(all, "language", "stars")
	require.NoError(t, err)
	assert.Equal(t, 305.0, sums["Rust"])

	pct, err := s.Percentages(all, "language")
	require.NoError(t, err)
	assert.InDelta(t, 100.0/3, pct["Go"], 1e-9)

	top, err := s.TopN(all, "open_issues", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"beta", "epsilon", "alpha"}, names(top))

	_, err = s.TopN(all, "stars", -1)
	assert.True(t, types.IsErrorType(err, types.ErrorTypeInvalidCriteria))

	tab, err := s.NestedTopN(all, "language", "name", "stars", 1)
	require.NoError(t, err)
	assert.Equal(t, types.CrossTab{{Outer: "Rust", Inner: "gamma"}: 300}, tab)
}

func TestSessionTrends(t *testing.T) {
	s := newSession(t)
	rust := types.FilterCriteria{Languages: types.NewStringSet("Rust")}

	trend, err := s.Trend(rust, "creation_date", "stars", true)
	require.NoError(t, err)
	require.Len(t, trend.Points, 5)
	assert.Equal(t, 300.0, trend.Points[0].Value)
	assert.Equal(t, 0.0, trend.Points[2].Value)
	assert.Equal(t, 5.0, trend.Points[4].Value)

	counts, err := s.Trend(types.FilterCriteria{}, "last_updated_date", "", false)
	require.NoError(t, err)
	assert.Equal(t, 1, counts.Skipped)
	assert.Len(t, counts.Points, 2)

	_, err = s.Trend(rust, "stars", "", false)
	assert.True(t, types.IsErrorType(err, types.ErrorTypeMissingField))

	lt, err := s.LanguageTrend(types.FilterCriteria{})
	require.NoError(t, err)
	assert.Equal(t, 1, lt.Missing)
	assert.Equal(t, 100.0, lt.Months[types.MonthKey{Year: 2023, Month: time.January}]["Go"])
}

func TestSessionLogging(t *testing.T) {
	var buf bytes.Buffer
	s, err := New(fixture(), WithLogOutput(&buf, logger.INFO))
	require.NoError(t, err)

	_, err = s.Visualize(types.FilterCriteria{}, asOf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "[session-"+s.ID()[:8]+"]")
	assert.Contains(t, out, "visualize: 6 of 6 repositories as of 2024-01-31")
	assert.Contains(t, out, "1 repositories skipped: unparsable last_updated_date")
}

func TestSessionConcurrentUse(t *testing.T) {
	s := newSession(t)
	want, err := s.Explore(types.FilterCriteria{MinStars: 10})
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]*Exploration, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = s.Explore(types.FilterCriteria{MinStars: 10})
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		require.NotNil(t, got)
		assert.Equal(t, want.Totals, got.Totals)
		assert.Equal(t, want.Languages, got.Languages)
		assert.Equal(t, names(want.TopByStars), names(got.TopByStars))
	}
	assert.Equal(t, 6, s.Table().Len())
}
