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


// Package loader reads the repositories table from a SQL database or a CSV file.
//
// Columns are matched by header name, case-insensitively:
//
//	Repository_Name, Programming_Language, License_Type,
//	Number_of_Stars, Number_of_Forks, Number_of_Open_Issues,
//	Description, Creation_Date, Last_Updated_Date
//
// Rows with a blank name or a negative or non-numeric count are rejected and
// counted in the Report. Dates that cannot be parsed are kept and show up as
// skipped in the temporal metrics.
package loader

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/spf13/cast"

	"github.com/rulego/repoinsight/logger"
	"github.com/rulego/repoinsight/types"
)

// Column names of the repositories table.
const (
	ColumnName            = "Repository_Name"
	ColumnLanguage        = "Programming_Language"
	ColumnLicenseType     = "License_Type"
	ColumnStars           = "Number_of_Stars"
	ColumnForks           = "Number_of_Forks"
	ColumnOpenIssues      = "Number_of_Open_Issues"
	ColumnDescription     = "Description"
	ColumnCreationDate    = "Creation_Date"
	ColumnLastUpdatedDate = "Last_Updated_Date"
)

var columnFields = map[string]types.Field{
	strings.ToLower(ColumnName):            types.FieldName,
	strings.ToLower(ColumnLanguage):        types.FieldLanguage,
	strings.ToLower(ColumnLicenseType):     types.FieldLicenseType,
	strings.ToLower(ColumnStars):           types.FieldStars,
	strings.ToLower(ColumnForks):           types.FieldForks,
	strings.ToLower(ColumnOpenIssues):      types.FieldOpenIssues,
	strings.ToLower(ColumnDescription):     types.FieldDescription,
	strings.ToLower(ColumnCreationDate):    types.FieldCreationDate,
	strings.ToLower(ColumnLastUpdatedDate): types.FieldLastUpdatedDate,
}

// Columns lists the table columns in schema order.
var Columns = []string{
	ColumnName, ColumnLanguage, ColumnLicenseType,
	ColumnStars, ColumnForks, ColumnOpenIssues,
	ColumnDescription, ColumnCreationDate, ColumnLastUpdatedDate,
}

var requiredColumns = []string{ColumnName, ColumnStars, ColumnForks, ColumnOpenIssues}

// Report summarizes a load.
type Report struct {
	Loaded   int `json:"loaded"`
	Rejected int `json:"rejected"`
}

// Option configures a load
type Option func(*options)

type options struct {
	log logger.Logger
}

// WithLogger sets the logger that receives rejected row warnings.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{log: logger.GetDefault()}
	for _, opt := range opts {
		opt(&o)
	}
	o.log = o.log.Named("loader")
	return o
}

// columnIndex maps header positions to fields; unknown columns map to "".
func columnIndex(header []string) ([]types.Field, error) {
	index := make([]types.Field, len(header))
	seen := make(map[types.Field]bool, len(header))
	for i, h := range header {
		f, ok := columnFields[strings.ToLower(strings.TrimSpace(h))]
		if !ok {
			continue
		}
		index[i] = f
		seen[f] = true
	}
	for _, c := range requiredColumns {
		if !seen[columnFields[strings.ToLower(c)]] {
			return nil, types.MissingFieldError(c, "required column not found")
		}
	}
	return index, nil
}

// builder turns raw rows into records and keeps the report.
type builder struct {
	index   []types.Field
	log     logger.Logger
	records []types.RepositoryRecord
	report  Report
}

func (b *builder) add(row int, values []any) {
	r, err := toRecord(b.index, values)
	if err != nil {
		b.report.Rejected++
		b.log.Warn("row %d rejected: %v", row, err)
		return
	}
	b.records = append(b.records, r)
	b.report.Loaded++
}

func (b *builder) table() *types.RecordTable {
	return types.NewRecordTable(b.records)
}

func toRecord(index []types.Field, values []any) (types.RepositoryRecord, error) {
	var r types.RepositoryRecord
	for i, f := range index {
		if f == "" || i >= len(values) {
			continue
		}
		v := values[i]
		switch f {
		case types.FieldName:
			r.Name = strings.TrimSpace(cast.ToString(v))
		case types.FieldLanguage:
			r.Language = strings.TrimSpace(cast.ToString(v))
		case types.FieldLicenseType:
			r.LicenseType = strings.TrimSpace(cast.ToString(v))
		case types.FieldDescription:
			if v != nil {
				r.Description = sql.NullString{String: cast.ToString(v), Valid: true}
			}
		case types.FieldStars, types.FieldForks, types.FieldOpenIssues:
			n, err := toCount(f, v)
			if err != nil {
				return r, err
			}
			switch f {
			case types.FieldStars:
				r.Stars = n
			case types.FieldForks:
				r.Forks = n
			default:
				r.OpenIssues = n
			}
		case types.FieldCreationDate:
			r.CreationDate = types.ParseDate(v)
		case types.FieldLastUpdatedDate:
			r.LastUpdatedDate = types.ParseDate(v)
		}
	}
	if r.Name == "" {
		return r, fmt.Errorf("blank %s", ColumnName)
	}
	return r, nil
}

func toCount(f types.Field, v any) (int64, error) {
	if b, ok := v.([]byte); ok {
		v = string(b)
	}
	if s, ok := v.(string); ok {
		v = strings.TrimSpace(s)
	}
	if v == nil || v == "" {
		return 0, fmt.Errorf("%s is empty", f)
	}
	n, err := cast.ToInt64E(v)
	if err != nil {
		return 0, fmt.Errorf("%s is not a number: %v", f, v)
	}
	if n < 0 {
		return 0, fmt.Errorf("%s is negative: %d", f, n)
	}
	return n, nil
}
