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
Package condition compiles the ad-hoc record predicates that complement the
typed language/license/min-stars criteria.

Two syntaxes are supported, both evaluated against the record fields by their
schema names (name, language, license_type, stars, forks, open_issues,
description, creation_date, last_updated_date):

	// expr-lang, the Where clause
	cond, err := condition.NewExprCondition("forks >= 10 && like_match(name, 'go-%')")

	// go-bexpr, the Selector clause
	sel, err := condition.NewSelectorCondition(`license_type == "MIT" and description contains "cli"`)

Absent descriptions and invalid dates are nil in the evaluation environment.
Evaluation errors are treated as a non-match so one odd record never aborts a
filter pass; compile errors are returned to the caller.

# LIKE matching

like_match(text, pattern) follows SQL LIKE, ignoring case:

	% - any sequence of characters, including none
	_ - exactly one character
*/
package condition
