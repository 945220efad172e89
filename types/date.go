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
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Date is an optional calendar date read from the source table.
// A Date is in exactly one of three states: missing, valid or unparsable.
type Date struct {
	t   time.Time
	raw string
	ok  bool
}

// NewDate returns a valid date.
func NewDate(t time.Time) Date {
	return Date{t: t, raw: t.Format(time.RFC3339), ok: true}
}

// DateOf builds a valid date from calendar components in UTC.
func DateOf(year int, month time.Month, day int) Date {
	return NewDate(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// ParseDate converts a raw column value into a Date.
// nil and blank strings are missing; values cast cannot read as a time are unparsable.
func ParseDate(raw any) Date {
	switch v := raw.(type) {
	case nil:
		return Date{}
	case Date:
		return v
	case time.Time:
		if v.IsZero() {
			return Date{}
		}
		return NewDate(v)
	case *time.Time:
		if v == nil || v.IsZero() {
			return Date{}
		}
		return NewDate(*v)
	case []byte:
		return ParseDate(string(v))
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return Date{}
		}
		t, err := cast.ToTimeE(s)
		if err != nil {
			return Date{raw: s}
		}
		return Date{t: t, raw: s, ok: true}
	}

	s := cast.ToString(raw)
	t, err := cast.ToTimeE(raw)
	if err != nil {
		return Date{raw: s}
	}
	return Date{t: t, raw: s, ok: true}
}

// Time returns the parsed time and whether the date is valid.
func (d Date) Time() (time.Time, bool) {
	return d.t, d.ok
}

// Valid reports whether the date parsed.
func (d Date) Valid() bool { return d.ok }

// Missing reports whether the source carried no value at all.
func (d Date) Missing() bool { return !d.ok && d.raw == "" }

// Unparsable reports whether the source carried a value that could not be parsed.
func (d Date) Unparsable() bool { return !d.ok && d.raw != "" }

// Raw returns the source text.
func (d Date) Raw() string { return d.raw }

// String formats valid dates as YYYY-MM-DD and returns the raw text otherwise.
func (d Date) String() string {
	if d.ok {
		return d.t.Format("2006-01-02")
	}
	return d.raw
}
