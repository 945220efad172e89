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

package distribution

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulego/repoinsight/types"
)

func TestDescribe(t *testing.T) {
	s := Describe([]float64{5, 1, 3, 9, 7})
	assert.Equal(t, 5, s.Count)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 9.0, s.Max)
	assert.InDelta(t, 5.0, s.Mean, 1e-9)
	assert.InDelta(t, 5.0, s.Median, 1e-9)
	assert.Greater(t, s.StdDev, 0.0)

	assert.Equal(t, Summary{}, Describe(nil))

	one := Describe([]float64{4})
	assert.Equal(t, 4.0, one.Mean)
	assert.Equal(t, 0.0, one.StdDev)
}

func TestNewHistogram(t *testing.T) {
	values := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 10}
	h := NewHistogram(values, 5)
	require.Len(t, h.Bins, 5)

	var total uint
	for i, b := range h.Bins {
		total += b.Count
		assert.InDelta(t, float64(i*2), b.Lower, 1e-9)
		assert.InDelta(t, float64(i*2+2), b.Upper, 1e-9)
	}
	assert.Equal(t, uint(len(values)), total)
	// 8 and the maximum 10 share the last bin
	assert.Equal(t, uint(2), h.Bins[4].Count)
	assert.Equal(t, uint(2), h.Bins[0].Count)
}

func TestNewHistogram_EdgeCases(t *testing.T) {
	assert.Empty(t, NewHistogram(nil, 10).Bins)
	assert.Empty(t, NewHistogram([]float64{1, 2}, 0).Bins)

	constant := NewHistogram([]float64{7, 7, 7}, 10)
	require.Len(t, constant.Bins, 1)
	assert.Equal(t, Bin{Lower: 7, Upper: 8, Count: 3}, constant.Bins[0])
}

func TestFieldValuesAndScatter(t *testing.T) {
	table := types.NewRecordTable([]types.RepositoryRecord{
		{Name: "a", Language: "Go", Stars: 10, Forks: 2},
		{Name: "b", Stars: 4, Forks: 1},
	})
	assert.Equal(t, []float64{10, 4}, FieldValues(table, types.FieldStars))
	assert.Equal(t, []float64{10, 4}, Int64s([]int64{10, 4}))

	points := Scatter(table, types.FieldStars, types.FieldForks, types.FieldLanguage, "unknown")
	assert.Equal(t, []Point{
		{Name: "a", X: 10, Y: 2, Category: "Go"},
		{Name: "b", X: 4, Y: 1, Category: "unknown"},
	}, points)
}

func TestTokenize(t *testing.T) {
	assert.Equal(t,
		[]string{"fast", "http", "router", "router"},
		Tokenize("A FAST http-Router, the Router for Go"))
	assert.Equal(t, []string{"strasse"}, Tokenize("STRASSE"))
	assert.Empty(t, Tokenize(""))
	assert.Empty(t, Tokenize("a an of to"))
}

func TestWordFrequencies(t *testing.T) {
	desc := func(s string) sql.NullString { return sql.NullString{String: s, Valid: true} }
	table := types.NewRecordTable([]types.RepositoryRecord{
		{Name: "a", Description: desc("Fast JSON parser")},
		{Name: "b", Description: desc("JSON schema validator, fast")},
		{Name: "c", Description: desc("json tools")},
		{Name: "d"},
	})

	all := WordFrequencies(table, 0)
	assert.Equal(t, types.Bucket{Key: "json", Value: 3}, all[0])
	assert.Equal(t, types.Bucket{Key: "fast", Value: 2}, all[1])
	assert.Len(t, all, 6)

	top := WordFrequencies(table, 2)
	assert.Equal(t, []types.Bucket{{Key: "json", Value: 3}, {Key: "fast", Value: 2}}, top)

	assert.Empty(t, WordFrequencies(nil, 5))
}
