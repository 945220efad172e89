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


package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/rulego/repoinsight/types"
)

// criteria reads FilterCriteria from the query string: repeated language and
// license parameters, min_stars, where (expr-lang) and filter (go-bexpr).
func criteria(r *http.Request) (types.FilterCriteria, error) {
	q := r.URL.Query()
	c := types.FilterCriteria{
		Languages: types.NewStringSet(q["language"]...),
		Licenses:  types.NewStringSet(q["license"]...),
		Where:     q.Get("where"),
		Selector:  q.Get("filter"),
	}
	if raw := q.Get("min_stars"); raw != "" {
		n, err := cast.ToInt64E(raw)
		if err != nil {
			return c, types.InvalidCriteriaError("min_stars", "not an integer: "+raw, err)
		}
		c.MinStars = n
	}
	return c, nil
}

// intParam reads an integer parameter; absent means 0.
func intParam(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := cast.ToIntE(raw)
	if err != nil {
		return 0, types.InvalidCriteriaError(name, "not an integer: "+raw, err)
	}
	return n, nil
}

func boolParam(r *http.Request, name string) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, nil
	}
	b, err := cast.ToBoolE(raw)
	if err != nil {
		return false, types.InvalidCriteriaError(name, "not a boolean: "+raw, err)
	}
	return b, nil
}

// asOf reads the as_of date (YYYY-MM-DD), defaulting to the server clock.
func (s *Server) asOf(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("as_of")
	if raw == "" {
		return s.now(), nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, types.InvalidCriteriaError("as_of", "use YYYY-MM-DD", err)
	}
	return t, nil
}

// required reads a mandatory parameter.
func required(r *http.Request, name string) (string, error) {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return "", types.InvalidCriteriaError(name, "parameter is required", nil)
	}
	return v, nil
}

type errorResponse struct {
	Error string `json:"error"`
	Type  string `json:"type,omitempty"`
	Field string `json:"field,omitempty"`
}

// statusOf maps engine error types to HTTP status codes.
func statusOf(err error) int {
	var ee *types.EngineError
	if !errors.As(err, &ee) {
		return http.StatusInternalServerError
	}
	switch ee.Type {
	case types.ErrorTypeInvalidCriteria, types.ErrorTypeMissingField, types.ErrorTypeUnparsableDate:
		return http.StatusBadRequest
	case types.ErrorTypeDataUnavailable:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	resp := errorResponse{Error: err.Error()}
	var ee *types.EngineError
	if errors.As(err, &ee) {
		resp.Type = ee.Type.String()
		resp.Field = ee.Field
	}
	if status >= http.StatusInternalServerError {
		s.log.Error("%s %s: %v", r.Method, r.URL.Path, err)
	}
	s.writeJSON(w, r, status, resp)
}

// writeJSON encodes v before writing the status, so an unencodable body
// becomes a 500 instead of an empty 200.
func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		s.log.Error("%s %s: encode response: %v", r.Method, r.URL.Path, err)
		buf.Reset()
		status = http.StatusInternalServerError
		json.NewEncoder(&buf).Encode(errorResponse{Error: "cannot encode response: " + err.Error()})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}
