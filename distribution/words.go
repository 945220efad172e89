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
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"

	"github.com/rulego/repoinsight/types"
)

const minWordLength = 3

var stopWords = types.NewStringSet(
	"a", "an", "and", "are", "as", "at", "be", "by", "for", "from", "has", "have",
	"in", "into", "is", "it", "its", "of", "on", "or", "that", "the", "this", "to",
	"was", "were", "will", "with", "your", "you", "can", "not", "but", "all", "any",
	"our", "via", "using", "use", "based", "more", "than", "also",
)

// Tokenize splits text into case-folded words, dropping stop words and words
// shorter than three characters.
func Tokenize(text string) []string {
	fold := cases.Fold()
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	words := fields[:0]
	for _, f := range fields {
		w := fold.String(f)
		if utf8.RuneCountInString(w) < minWordLength || stopWords.Contains(w) {
			continue
		}
		words = append(words, w)
	}
	return words
}

// WordFrequencies counts description words across the table and returns the
// limit most frequent, ties broken alphabetically. limit <= 0 returns all.
// Records without a description contribute nothing.
func WordFrequencies(table *types.RecordTable, limit int) []types.Bucket {
	counts := types.AggregationResult{}
	table.Each(func(_ int, r types.RepositoryRecord) bool {
		if !r.Description.Valid {
			return true
		}
		for _, w := range Tokenize(r.Description.String) {
			counts[w]++
		}
		return true
	})
	ranked := counts.Ranked()
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
