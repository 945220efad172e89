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
	"errors"
	"fmt"
	"strings"
)

// ErrorType classifies engine errors.
type ErrorType int

const (
	// ErrorTypeDataUnavailable no table could be loaded; no engine call may run.
	ErrorTypeDataUnavailable ErrorType = iota
	// ErrorTypeInvalidCriteria malformed filter criteria or ranking arguments.
	ErrorTypeInvalidCriteria
	// ErrorTypeMissingField a requested field is not part of the record schema
	// or has the wrong kind for the operation.
	ErrorTypeMissingField
	// ErrorTypeUnparsableDate a per-record date could not be parsed.
	// Recovered locally by exclusion and counting, never returned from aggregates.
	ErrorTypeUnparsableDate
)

// String returns the error type name
func (t ErrorType) String() string {
	switch t {
	case ErrorTypeDataUnavailable:
		return "DATA_UNAVAILABLE"
	case ErrorTypeInvalidCriteria:
		return "INVALID_CRITERIA"
	case ErrorTypeMissingField:
		return "MISSING_FIELD"
	case ErrorTypeUnparsableDate:
		return "UNPARSABLE_DATE"
	default:
		return "UNKNOWN_ERROR"
	}
}

// EngineError is the error returned by every engine operation.
type EngineError struct {
	Type    ErrorType
	Message string
	// Field is the offending field or criteria option, if any.
	Field string
	Cause error
}

// Error implements the error interface
func (e *EngineError) Error() string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("[%s] %s", e.Type, e.Message))
	if e.Field != "" {
		builder.WriteString(fmt.Sprintf(" (field '%s')", e.Field))
	}
	if e.Cause != nil {
		builder.WriteString(": ")
		builder.WriteString(e.Cause.Error())
	}
	return builder.String()
}

// Unwrap returns the underlying cause
func (e *EngineError) Unwrap() error {
	return e.Cause
}

// IsErrorType reports whether err, or any error it wraps, is an EngineError of type t.
func IsErrorType(err error, t ErrorType) bool {
	var engineErr *EngineError
	if !errors.As(err, &engineErr) {
		return false
	}
	return engineErr.Type == t
}

// DataUnavailableError creates a DataUnavailable error
func DataUnavailableError(message string, cause error) *EngineError {
	return &EngineError{Type: ErrorTypeDataUnavailable, Message: message, Cause: cause}
}

// InvalidCriteriaError creates an InvalidCriteria error
func InvalidCriteriaError(field, message string, cause error) *EngineError {
	return &EngineError{Type: ErrorTypeInvalidCriteria, Message: message, Field: field, Cause: cause}
}

// MissingFieldError creates a MissingField error
func MissingFieldError(field, message string) *EngineError {
	return &EngineError{Type: ErrorTypeMissingField, Message: message, Field: field}
}

// UnparsableDateError creates an UnparsableDate error
func UnparsableDateError(field, raw string, cause error) *EngineError {
	return &EngineError{
		Type:    ErrorTypeUnparsableDate,
		Message: fmt.Sprintf("cannot parse date %q", raw),
		Field:   field,
		Cause:   cause,
	}
}
