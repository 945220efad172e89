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
Package types defines the repository record model shared by every repoinsight package.

# Records and Tables

RepositoryRecord is one row of repository metadata with typed fields. Optional
values are explicit: Description is a sql.NullString and both dates are Date
values that are missing, valid or unparsable.

RecordTable is an ordered, read-only sequence of records. Engine operations
derive new tables or aggregates from it and never modify it:

	table := types.NewRecordTable(records)
	big := table.Select(func(r types.RepositoryRecord) bool { return r.Stars >= 1000 })

# Fields

Operations name fields by their schema name (name, language, license_type,
stars, forks, open_issues, description, creation_date, last_updated_date).
ParseField and RequireKind resolve names and fail with a MissingField error
for unknown fields or fields of the wrong kind.

# Criteria, Results and Errors

FilterCriteria carries the language and license sets, the star threshold and
the optional expression clauses. AggregationResult, CrossTab and MonthKey are
the result shapes. EngineError classifies failures as DataUnavailable,
InvalidCriteria, MissingField or UnparsableDate.

# Configuration

Config holds the session, loader and server settings; LoadConfig reads it
from JSON on top of NewConfig defaults.
*/
package types
