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


package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/rulego/repoinsight/types"
)

// FromCSV loads a CSV document whose first line is the header.
// Empty description cells are absent, including ones written for an empty
// but present description; empty count cells reject the row.
func FromCSV(r io.Reader, opts ...Option) (*types.RecordTable, Report, error) {
	o := buildOptions(opts)
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, Report{}, types.DataUnavailableError("empty csv document", nil)
		}
		return nil, Report{}, types.DataUnavailableError("reading csv header", err)
	}
	index, err := columnIndex(header)
	if err != nil {
		return nil, Report{}, types.DataUnavailableError("unexpected csv layout", err)
	}

	b := &builder{index: index, log: o.log}
	for row := 1; ; row++ {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, b.report, types.DataUnavailableError(fmt.Sprintf("reading csv row %d", row), err)
		}
		values := make([]any, len(fields))
		for i, f := range fields {
			if f == "" {
				continue
			}
			values[i] = f
		}
		b.add(row, values)
	}

	o.log.Info("loaded %d repositories, rejected %d", b.report.Loaded, b.report.Rejected)
	return b.table(), b.report, nil
}
