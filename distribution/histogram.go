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

// Package distribution summarizes value distributions for the histogram and
// word-cloud views.
package distribution

import (
	"sort"

	"github.com/aclements/go-moremath/stats"

	"github.com/rulego/repoinsight/types"
)

// Bin is one histogram bar covering [Lower, Upper).
// The last bin also includes Upper.
type Bin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count uint    `json:"count"`
}

// Summary describes a sample.
type Summary struct {
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
	Median float64 `json:"median"`
}

// Histogram is an equal-width binning of a sample.
type Histogram struct {
	Bins    []Bin   `json:"bins"`
	Summary Summary `json:"summary"`
}

// Describe computes summary statistics; the zero Summary for an empty sample.
func Describe(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	xs := append([]float64(nil), values...)
	sort.Float64s(xs)
	sample := stats.Sample{Xs: xs, Sorted: true}

	min, max := sample.Bounds()
	s := Summary{
		Count:  len(xs),
		Min:    min,
		Max:    max,
		Mean:   sample.Mean(),
		Median: sample.Quantile(0.5),
	}
	if len(xs) > 1 {
		s.StdDev = sample.StdDev()
	}
	return s
}

// NewHistogram bins values into nbins equal-width bins spanning the sample bounds.
// A constant sample gets a single bin of width 1; an empty sample no bins.
func NewHistogram(values []float64, nbins int) Histogram {
	h := Histogram{Summary: Describe(values)}
	if len(values) == 0 || nbins <= 0 {
		return h
	}

	lo, hi := h.Summary.Min, h.Summary.Max
	if lo == hi {
		h.Bins = []Bin{{Lower: lo, Upper: lo + 1, Count: uint(len(values))}}
		return h
	}

	lh := stats.NewLinearHist(lo, hi, nbins)
	for _, v := range values {
		lh.Add(v)
	}
	_, counts, high := lh.Counts()
	h.Bins = make([]Bin, len(counts))
	for i, c := range counts {
		h.Bins[i] = Bin{
			Lower: lh.BinToValue(float64(i)),
			Upper: lh.BinToValue(float64(i + 1)),
			Count: c,
		}
	}
	// the maximum lands in the overflow bucket of a half-open range
	h.Bins[len(h.Bins)-1].Count += high
	return h
}

// Int64s converts counts to float64 for NewHistogram.
func Int64s(values []int64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out
}

// FieldValues collects a numeric field across the table, in order.
func FieldValues(table *types.RecordTable, f types.Field) []float64 {
	out := make([]float64, 0, table.Len())
	table.Each(func(_ int, r types.RepositoryRecord) bool {
		if n, ok := r.Number(f); ok {
			out = append(out, float64(n))
		}
		return true
	})
	return out
}

// Point is one scatter plot mark.
type Point struct {
	Name     string  `json:"name"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Category string  `json:"category"`
}

// Scatter pairs two numeric fields per record, colored by a categorical field.
func Scatter(table *types.RecordTable, x, y, category types.Field, unknown string) []Point {
	points := make([]Point, 0, table.Len())
	table.Each(func(_ int, r types.RepositoryRecord) bool {
		xv, okx := r.Number(x)
		yv, oky := r.Number(y)
		if !okx || !oky {
			return true
		}
		c := r.Text(category)
		if c == "" {
			c = unknown
		}
		points = append(points, Point{Name: r.Name, X: float64(xv), Y: float64(yv), Category: c})
		return true
	})
	return points
}
