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
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rulego/repoinsight/aggregator"
	"github.com/rulego/repoinsight/distribution"
	"github.com/rulego/repoinsight/filter"
	"github.com/rulego/repoinsight/logger"
	"github.com/rulego/repoinsight/temporal"
	"github.com/rulego/repoinsight/types"
)

// Session binds a loaded repository table to its settings.
// A Session never changes after New and is safe for concurrent use.
//
// Example:
//
//	table, _, err := loader.FromSQL(ctx, db, "")
//	s, err := repoinsight.New(table, repoinsight.WithTopN(5))
//	view, err := s.Explore(types.FilterCriteria{MinStars: 100})
type Session struct {
	id     string
	table  *types.RecordTable
	config types.Config
	log    logger.Logger
}

// New creates a session over table. A nil table means nothing could be
// loaded and fails with a DataUnavailable error.
func New(table *types.RecordTable, options ...Option) (*Session, error) {
	if table == nil {
		return nil, types.DataUnavailableError("no repository table loaded", nil)
	}
	s := &Session{
		id:     uuid.NewString(),
		table:  table,
		config: types.NewConfig(),
		log:    logger.GetDefault(),
	}
	for _, option := range options {
		option(s)
	}
	if err := s.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid session config: %w", err)
	}
	s.log = s.log.Named("session-" + s.id[:8])
	s.log.Debug("session created over %d repositories", table.Len())
	return s, nil
}

// ID returns the session identifier
func (s *Session) ID() string { return s.id }

// Table returns the loaded table
func (s *Session) Table() *types.RecordTable { return s.table }

// Config returns the session settings
func (s *Session) Config() types.Config { return s.config }

// Logger returns the session logger
func (s *Session) Logger() logger.Logger { return s.log }

func (s *Session) groupOptions() []aggregator.GroupOption {
	return []aggregator.GroupOption{aggregator.UnknownBucket(s.config.UnknownBucket)}
}

func (s *Session) trendOptions(dense bool) []temporal.TrendOption {
	opts := []temporal.TrendOption{temporal.UnknownLanguage(s.config.UnknownBucket)}
	if dense || s.config.DenseTrends {
		opts = append(opts, temporal.DenseMonths())
	}
	return opts
}

// Filter returns the records matching criteria in table order.
func (s *Session) Filter(criteria types.FilterCriteria) (*types.RecordTable, error) {
	out, err := filter.Apply(s.table, criteria)
	if err != nil {
		s.log.Warn("filter rejected: %v", err)
		return nil, err
	}
	s.log.Debug("filter kept %d of %d repositories", out.Len(), s.table.Len())
	return out, nil
}

// CountBy counts filtered records per value of field.
func (s *Session) CountBy(criteria types.FilterCriteria, field string) (types.AggregationResult, error) {
	table, err := s.Filter(criteria)
	if err != nil {
		return nil, err
	}
	return aggregator.CountBy(table, field, s.groupOptions()...)
}

// SumBy sums measure per value of group over the filtered records.
func (s *Session) SumBy(criteria types.FilterCriteria, group, measure string) (types.AggregationResult, error) {
	table, err := s.Filter(criteria)
	if err != nil {
		return nil, err
	}
	return aggregator.SumBy(table, group, measure, s.groupOptions()...)
}

// Percentages returns the share of filtered records per value of field.
func (s *Session) Percentages(criteria types.FilterCriteria, field string) (types.AggregationResult, error) {
	table, err := s.Filter(criteria)
	if err != nil {
		return nil, err
	}
	return aggregator.PercentageDistribution(table, field, s.groupOptions()...)
}

// TopN ranks filtered records by measure. n == 0 uses the configured TopN.
func (s *Session) TopN(criteria types.FilterCriteria, measure string, n int) ([]types.RepositoryRecord, error) {
	table, err := s.Filter(criteria)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		n = s.config.TopN
	}
	return aggregator.TopN(table, measure, n)
}

// NestedTopN cross-tabulates measure by outer and inner over the n inner
// values with the largest totals. n == 0 uses the configured NestedTopN.
func (s *Session) NestedTopN(criteria types.FilterCriteria, outer, inner, measure string, n int) (types.CrossTab, error) {
	table, err := s.Filter(criteria)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		n = s.config.NestedTopN
	}
	return aggregator.NestedTopN(table, outer, inner, measure, n, s.groupOptions()...)
}

// Trend aggregates measure per month of dateField; a blank measure counts records.
func (s *Session) Trend(criteria types.FilterCriteria, dateField, measure string, dense bool) (temporal.Trend, error) {
	table, err := s.Filter(criteria)
	if err != nil {
		return temporal.Trend{}, err
	}
	var trend temporal.Trend
	if measure == "" {
		trend, err = temporal.CountByMonth(table, dateField, s.trendOptions(dense)...)
	} else {
		trend, err = temporal.TrendByMonth(table, dateField, measure, s.trendOptions(dense)...)
	}
	if err != nil {
		return temporal.Trend{}, err
	}
	s.reportSkipped(dateField, trend.Skipped)
	return trend, nil
}

// LanguageTrend sums stars per creation month and language over the filtered records.
func (s *Session) LanguageTrend(criteria types.FilterCriteria) (temporal.LanguageTrend, error) {
	table, err := s.Filter(criteria)
	if err != nil {
		return temporal.LanguageTrend{}, err
	}
	trend := temporal.StarsTrendByLanguage(table, s.trendOptions(false)...)
	s.reportSkipped(string(types.FieldCreationDate), trend.Skipped)
	return trend, nil
}

func (s *Session) reportSkipped(field string, skipped int) {
	if skipped > 0 {
		s.log.Warn("%d repositories skipped: unparsable %s", skipped, field)
	}
}

// series computes age or staleness days and logs skipped dates.
func (s *Session) series(table *types.RecordTable, field types.Field, asOf time.Time) temporal.Series {
	var out temporal.Series
	if field == types.FieldCreationDate {
		out = temporal.AgeSeries(table, asOf)
	} else {
		out = temporal.StalenessSeries(table, asOf)
	}
	s.reportSkipped(string(field), out.Skipped)
	return out
}

// histogram bins a day series with the configured bin count.
func (s *Session) histogram(values []float64) distribution.Histogram {
	return distribution.NewHistogram(values, s.config.HistogramBins)
}
