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
Package aggregator computes grouped aggregates and rankings over a RecordTable.

All functions are pure: they read the table, allocate a fresh result and never
retain or mutate their input, so they may run concurrently on a shared table.

# Grouping

	counts, _ := aggregator.CountBy(table, "language")              // {"Go": 2, "Rust": 1}
	stars, _ := aggregator.SumBy(table, "license_type", "stars")
	share, _ := aggregator.PercentageDistribution(table, "license_type")

Empty group values are counted under "unknown" by default; pass ExcludeEmpty()
to drop them or UnknownBucket(label) to rename the bucket.

# Measures

Measures are numeric schema fields (stars, forks, open_issues) or computed
expr-lang expressions written as "expr:<expression>":

	top, _ := aggregator.TopN(table, "expr:stars + 2 * forks", 10)

# Ranking

TopN is a stable descending sort, so ties keep table order. NestedTopN first
picks the top inner keys by total measure, then cross-tabulates the measure by
(outer, inner) for those keys only.

Unknown fields and non-numeric measures fail with a MissingField error;
negative n fails with InvalidCriteria.
*/
package aggregator
