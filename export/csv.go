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


// Package export writes a record table back out in the loader's CSV layout.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/rulego/repoinsight/loader"
	"github.com/rulego/repoinsight/types"
)

// WriteCSV writes a header and one line per record, in table order.
// Absent values are empty cells; unparsable dates keep their source text.
// CSV has no null, so an empty description and an absent one write the same
// empty cell, and FromCSV reads that cell back as absent.
func WriteCSV(w io.Writer, table *types.RecordTable) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(loader.Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	row := make([]string, len(types.Fields))
	var err error
	table.Each(func(i int, r types.RepositoryRecord) bool {
		for j, f := range types.Fields {
			row[j] = r.Text(f)
		}
		if err = cw.Write(row); err != nil {
			err = fmt.Errorf("write csv row %d: %w", i+1, err)
			return false
		}
		return true
	})
	if err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}
