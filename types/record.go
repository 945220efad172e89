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

package types

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
)

// RepositoryRecord is one row of repository metadata.
type RepositoryRecord struct {
	Name            string
	Language        string
	LicenseType     string
	Stars           int64
	Forks           int64
	OpenIssues      int64
	Description     sql.NullString
	CreationDate    Date
	LastUpdatedDate Date
}

// FieldKind tells what an engine operation may do with a field.
type FieldKind int

const (
	KindCategorical FieldKind = iota
	KindNumeric
	KindDate
)

// Field names a column of the record schema.
type Field string

const (
	FieldName            Field = "name"
	FieldLanguage        Field = "language"
	FieldLicenseType     Field = "license_type"
	FieldStars           Field = "stars"
	FieldForks           Field = "forks"
	FieldOpenIssues      Field = "open_issues"
	FieldDescription     Field = "description"
	FieldCreationDate    Field = "creation_date"
	FieldLastUpdatedDate Field = "last_updated_date"
)

// Fields lists the schema in column order.
var Fields = []Field{
	FieldName,
	FieldLanguage,
	FieldLicenseType,
	FieldStars,
	FieldForks,
	FieldOpenIssues,
	FieldDescription,
	FieldCreationDate,
	FieldLastUpdatedDate,
}

var fieldKinds = map[Field]FieldKind{
	FieldName:            KindCategorical,
	FieldLanguage:        KindCategorical,
	FieldLicenseType:     KindCategorical,
	FieldDescription:     KindCategorical,
	FieldStars:           KindNumeric,
	FieldForks:           KindNumeric,
	FieldOpenIssues:      KindNumeric,
	FieldCreationDate:    KindDate,
	FieldLastUpdatedDate: KindDate,
}

// ParseField resolves a field name, case-insensitively.
func ParseField(name string) (Field, error) {
	f := Field(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := fieldKinds[f]; !ok {
		return "", MissingFieldError(name, "unknown field")
	}
	return f, nil
}

// Kind returns the field kind. Unknown fields report KindCategorical;
// resolve names with ParseField first.
func (f Field) Kind() FieldKind {
	return fieldKinds[f]
}

// RequireKind checks that name is a schema field of the given kind.
func RequireKind(name string, kind FieldKind) (Field, error) {
	f, err := ParseField(name)
	if err != nil {
		return "", err
	}
	if f.Kind() != kind {
		return "", MissingFieldError(name, fmt.Sprintf("field is not %s", kind))
	}
	return f, nil
}

// String returns the kind name
func (k FieldKind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindDate:
		return "a date"
	default:
		return "categorical"
	}
}

// Text returns the string form of a categorical field; numeric fields are formatted in base 10
// and dates as YYYY-MM-DD. Empty means absent.
func (r RepositoryRecord) Text(f Field) string {
	switch f {
	case FieldName:
		return r.Name
	case FieldLanguage:
		return r.Language
	case FieldLicenseType:
		return r.LicenseType
	case FieldDescription:
		if r.Description.Valid {
			return r.Description.String
		}
		return ""
	case FieldStars, FieldForks, FieldOpenIssues:
		n, _ := r.Number(f)
		return strconv.FormatInt(n, 10)
	case FieldCreationDate:
		return r.CreationDate.String()
	case FieldLastUpdatedDate:
		return r.LastUpdatedDate.String()
	}
	return ""
}

// Number returns a numeric field value.
func (r RepositoryRecord) Number(f Field) (int64, bool) {
	switch f {
	case FieldStars:
		return r.Stars, true
	case FieldForks:
		return r.Forks, true
	case FieldOpenIssues:
		return r.OpenIssues, true
	}
	return 0, false
}

// Date returns a date field value.
func (r RepositoryRecord) Date(f Field) (Date, bool) {
	switch f {
	case FieldCreationDate:
		return r.CreationDate, true
	case FieldLastUpdatedDate:
		return r.LastUpdatedDate, true
	}
	return Date{}, false
}

// Env returns the record as a name keyed map, used by the expression clauses.
// Absent descriptions are nil; dates are their YYYY-MM-DD text, or nil when not valid.
func (r RepositoryRecord) Env() map[string]interface{} {
	env := map[string]interface{}{
		string(FieldName):        r.Name,
		string(FieldLanguage):    r.Language,
		string(FieldLicenseType): r.LicenseType,
		string(FieldStars):       r.Stars,
		string(FieldForks):       r.Forks,
		string(FieldOpenIssues):  r.OpenIssues,
	}
	if r.Description.Valid {
		env[string(FieldDescription)] = r.Description.String
	} else {
		env[string(FieldDescription)] = nil
	}
	for _, f := range []Field{FieldCreationDate, FieldLastUpdatedDate} {
		d, _ := r.Date(f)
		if d.Valid() {
			env[string(f)] = d.String()
		} else {
			env[string(f)] = nil
		}
	}
	return env
}
