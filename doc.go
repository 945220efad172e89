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


/*
Package repoinsight explores a table of GitHub repository metadata.

A table is loaded once from a SQL database or a CSV file and wrapped in a
Session. Each query passes FilterCriteria and gets back fresh derived views;
the table itself is never modified, so one Session can serve many goroutines.

# Features

• Filtering - language and license sets, a star threshold, expr-lang and go-bexpr clauses
• Aggregation - counts, sums and percentages per field, top-N and two-stage nested top-N
• Time metrics - repository age, days since the last update, monthly trends
• Distributions - histograms with summary statistics, description word frequencies
• Pages - Explore and Visualize compute the two dashboard pages in one call

# Getting Started

	package main

	import (
		"context"
		"fmt"
		"time"

		_ "modernc.org/sqlite"

		"github.com/rulego/repoinsight"
		"github.com/rulego/repoinsight/loader"
		"github.com/rulego/repoinsight/types"
	)

	func main() {
		ctx := context.Background()
		db, err := loader.Open(ctx, "sqlite", "repositories.db")
		if err != nil {
			panic(err)
		}
		table, report, err := loader.FromSQL(ctx, db, "")
		if err != nil {
			panic(err)
		}
		fmt.Printf("loaded %d, rejected %d\n", report.Loaded, report.Rejected)

		s, err := repoinsight.New(table)
		if err != nil {
			panic(err)
		}
		criteria := types.FilterCriteria{
			Languages: types.NewStringSet("Go", "Rust"),
			MinStars:  1000,
		}
		view, err := s.Visualize(criteria, time.Now())
		if err != nil {
			panic(err)
		}
		for _, b := range view.Languages {
			fmt.Printf("%s: %v\n", b.Key, b.Value)
		}
	}

# Filter Expressions

Besides the typed criteria, Where takes an expr-lang boolean expression over
the record fields, and Selector a go-bexpr selector:

	types.FilterCriteria{Where: `forks > stars / 10 && like_match(description, "%cli%")`}
	types.FilterCriteria{Selector: `language == "Go" and license_type != "GPL-3.0"`}

Field names are name, language, license_type, stars, forks, open_issues,
description, creation_date and last_updated_date.

# Errors

Engine errors are *types.EngineError values. Use types.IsErrorType to tell
DataUnavailable, InvalidCriteria and MissingField apart. Unparsable dates are
never returned as errors; they are counted as skipped in the temporal views.
*/
package repoinsight
