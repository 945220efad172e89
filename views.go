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
	"time"

	"github.com/rulego/repoinsight/aggregator"
	"github.com/rulego/repoinsight/distribution"
	"github.com/rulego/repoinsight/temporal"
	"github.com/rulego/repoinsight/types"
)

// Exploration is the data exploration page: a summary of the filtered records.
type Exploration struct {
	Criteria           types.FilterCriteria     `json:"criteria"`
	Totals             aggregator.Totals        `json:"totals"`
	Languages          []types.Bucket           `json:"languages"`
	Stars              distribution.Histogram   `json:"stars"`
	TopByStars         []types.RepositoryRecord `json:"topByStars"`
	Licenses           []types.Bucket           `json:"licenses"`
	LicensePercentages []types.Bucket           `json:"licensePercentages"`
	// OpenIssues breaks the open issues of the top repositories down by language.
	OpenIssues []types.Cell `json:"openIssues"`

	// Records is the filtered table, for export.
	Records *types.RecordTable `json:"-"`
}

// Explore filters the table and computes the exploration page.
func (s *Session) Explore(criteria types.FilterCriteria) (*Exploration, error) {
	table, err := s.Filter(criteria)
	if err != nil {
		return nil, err
	}
	opts := s.groupOptions()

	languages, err := aggregator.CountBy(table, string(types.FieldLanguage), opts...)
	if err != nil {
		return nil, err
	}
	licenses, err := aggregator.CountBy(table, string(types.FieldLicenseType), opts...)
	if err != nil {
		return nil, err
	}
	percentages, err := aggregator.PercentageDistribution(table, string(types.FieldLicenseType), opts...)
	if err != nil {
		return nil, err
	}
	top, err := aggregator.TopN(table, string(types.FieldStars), s.config.TopN)
	if err != nil {
		return nil, err
	}
	issues, err := aggregator.NestedTopN(table, string(types.FieldLanguage), string(types.FieldName),
		string(types.FieldOpenIssues), s.config.NestedTopN, opts...)
	if err != nil {
		return nil, err
	}

	view := &Exploration{
		Criteria:           criteria,
		Totals:             aggregator.Summarize(table),
		Languages:          languages.Ranked(),
		Stars:              s.histogram(distribution.FieldValues(table, types.FieldStars)),
		TopByStars:         top,
		Licenses:           licenses.Ranked(),
		LicensePercentages: percentages.Ranked(),
		OpenIssues:         issues.Cells(),
		Records:            table,
	}
	s.log.Info("explore: %d repositories, %d languages", view.Totals.Repositories, len(view.Languages))
	return view, nil
}

// Visualization is the visualization page. Language shares, the
// stars/forks scatter and the creation timeline cover the whole table;
// everything else covers the filtered records.
type Visualization struct {
	Criteria types.FilterCriteria `json:"criteria"`
	AsOf     string               `json:"asOf"`

	Languages           []types.Bucket       `json:"languages"`
	LanguagePercentages []types.Bucket       `json:"languagePercentages"`
	StarsVsForks        []distribution.Point `json:"starsVsForks"`
	Created             temporal.Trend       `json:"created"`

	Staleness       temporal.Series        `json:"staleness"`
	StalenessHist   distribution.Histogram `json:"stalenessHistogram"`
	Age             temporal.Series        `json:"age"`
	AgeHist         distribution.Histogram `json:"ageHistogram"`
	StarsByLanguage temporal.LanguageTrend `json:"starsByLanguage"`
	Updated         temporal.Trend         `json:"updated"`
	Licenses        []types.Bucket         `json:"licenses"`
	Words           []types.Bucket         `json:"words"`

	TopByStars []types.RepositoryRecord `json:"topByStars"`
	TopByForks []types.RepositoryRecord `json:"topByForks"`
}

// Visualize computes the visualization page. asOf is the reference date for
// age and staleness.
func (s *Session) Visualize(criteria types.FilterCriteria, asOf time.Time) (*Visualization, error) {
	table, err := s.Filter(criteria)
	if err != nil {
		return nil, err
	}
	opts := s.groupOptions()
	trendOpts := s.trendOptions(false)

	languages, err := aggregator.CountBy(s.table, string(types.FieldLanguage), opts...)
	if err != nil {
		return nil, err
	}
	languageShares, err := aggregator.PercentageDistribution(s.table, string(types.FieldLanguage), opts...)
	if err != nil {
		return nil, err
	}
	created, err := temporal.CountByMonth(s.table, string(types.FieldCreationDate), trendOpts...)
	if err != nil {
		return nil, err
	}
	updated, err := temporal.CountByMonth(table, string(types.FieldLastUpdatedDate), trendOpts...)
	if err != nil {
		return nil, err
	}
	licenses, err := aggregator.CountBy(table, string(types.FieldLicenseType), opts...)
	if err != nil {
		return nil, err
	}
	topStars, err := aggregator.TopN(table, string(types.FieldStars), s.config.TopN)
	if err != nil {
		return nil, err
	}
	topForks, err := aggregator.TopN(table, string(types.FieldForks), s.config.TopN)
	if err != nil {
		return nil, err
	}

	staleness := s.series(table, types.FieldLastUpdatedDate, asOf)
	age := s.series(table, types.FieldCreationDate, asOf)
	starsByLanguage := temporal.StarsTrendByLanguage(table, trendOpts...)
	s.reportSkipped(string(types.FieldCreationDate), starsByLanguage.Skipped)

	view := &Visualization{
		Criteria:            criteria,
		AsOf:                asOf.Format("2006-01-02"),
		Languages:           languages.Ranked(),
		LanguagePercentages: languageShares.Ranked(),
		StarsVsForks:        distribution.Scatter(s.table, types.FieldStars, types.FieldForks, types.FieldLanguage, s.config.UnknownBucket),
		Created:             created,
		Staleness:           staleness,
		StalenessHist:       s.histogram(staleness.Floats()),
		Age:                 age,
		AgeHist:             s.histogram(age.Floats()),
		StarsByLanguage:     starsByLanguage,
		Updated:             updated,
		Licenses:            licenses.Ranked(),
		Words:               distribution.WordFrequencies(table, s.config.WordCloudSize),
		TopByStars:          topStars,
		TopByForks:          topForks,
	}
	s.log.Info("visualize: %d of %d repositories as of %s", table.Len(), s.table.Len(), view.AsOf)
	return view, nil
}
