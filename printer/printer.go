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


// Package printer renders engine results as ascii tables for the command line.
package printer

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rulego/repoinsight/temporal"
	"github.com/rulego/repoinsight/types"
)

// Table prints rows under columns. Rows shorter than columns are padded.
func Table(w io.Writer, columns []string, rows [][]string) {
	if len(columns) == 0 {
		return
	}

	// Calculate maximum width for each column
	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = utf8.RuneCountInString(col)
		for _, row := range rows {
			if i < len(row) {
				if n := utf8.RuneCountInString(row[i]); n > widths[i] {
					widths[i] = n
				}
			}
		}
		// Minimum width is 4
		if widths[i] < 4 {
			widths[i] = 4
		}
	}

	border(w, widths)
	line(w, widths, columns)
	border(w, widths)
	for _, row := range rows {
		line(w, widths, row)
	}
	border(w, widths)
	fmt.Fprintf(w, "(%d rows)\n", len(rows))
}

func border(w io.Writer, widths []int) {
	var b strings.Builder
	b.WriteString("+")
	for _, width := range widths {
		b.WriteString(strings.Repeat("-", width+2))
		b.WriteString("+")
	}
	fmt.Fprintln(w, b.String())
}

func line(w io.Writer, widths []int, cells []string) {
	var b strings.Builder
	b.WriteString("|")
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		b.WriteString(" ")
		b.WriteString(cell)
		b.WriteString(strings.Repeat(" ", width-utf8.RuneCountInString(cell)))
		b.WriteString(" |")
	}
	fmt.Fprintln(w, b.String())
}

// Title prints a heading line
func Title(w io.Writer, title string) {
	if title != "" {
		fmt.Fprintf(w, "\n%s\n", title)
	}
}

// FormatValue prints whole numbers without a fraction and others with two decimals.
func FormatValue(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Buckets prints ranked key/value pairs.
func Buckets(w io.Writer, title, keyColumn, valueColumn string, buckets []types.Bucket) {
	Title(w, title)
	rows := make([][]string, len(buckets))
	for i, b := range buckets {
		rows[i] = []string{b.Key, FormatValue(b.Value)}
	}
	Table(w, []string{keyColumn, valueColumn}, rows)
}

// Records prints the given fields of each record; nil fields prints the whole schema.
func Records(w io.Writer, title string, records []types.RepositoryRecord, fields []types.Field) {
	Title(w, title)
	if len(fields) == 0 {
		fields = types.Fields
	}
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = string(f)
	}
	rows := make([][]string, len(records))
	for i, r := range records {
		row := make([]string, len(fields))
		for j, f := range fields {
			row[j] = r.Text(f)
		}
		rows[i] = row
	}
	Table(w, columns, rows)
}

// Cells prints outer/inner/value rows, as returned by CrossTab.Cells.
func Cells(w io.Writer, title, outer, inner, value string, cells []types.Cell) {
	Title(w, title)
	rows := make([][]string, len(cells))
	for i, c := range cells {
		rows[i] = []string{c.Outer, c.Inner, FormatValue(c.Value)}
	}
	Table(w, []string{outer, inner, value}, rows)
}

// Trend prints a monthly series followed by its skipped and missing counts.
func Trend(w io.Writer, title, value string, trend temporal.Trend) {
	Title(w, title)
	rows := make([][]string, len(trend.Points))
	for i, p := range trend.Points {
		rows[i] = []string{p.Month.String(), FormatValue(p.Value)}
	}
	Table(w, []string{"month", value}, rows)
	if trend.Skipped > 0 || trend.Missing > 0 {
		fmt.Fprintf(w, "skipped %d unparsable, %d missing dates\n", trend.Skipped, trend.Missing)
	}
}
