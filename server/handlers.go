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
	"net/http"

	"github.com/rulego/repoinsight/export"
	"github.com/rulego/repoinsight/types"
)

// Health handles GET /api/health
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, map[string]interface{}{
		"status":       "ok",
		"session":      s.session.ID(),
		"repositories": s.session.Table().Len(),
	})
}

// Options handles GET /api/options, the values the filter inputs offer.
func (s *Server) Options(w http.ResponseWriter, r *http.Request) {
	table := s.session.Table()
	s.writeJSON(w, r, http.StatusOK, map[string]interface{}{
		"languages": table.Distinct(types.FieldLanguage),
		"licenses":  table.Distinct(types.FieldLicenseType),
		"maxStars":  table.MaxStars(),
	})
}

// Repositories handles GET /api/repositories
func (s *Server) Repositories(w http.ResponseWriter, r *http.Request) {
	c, err := criteria(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	table, err := s.session.Filter(c)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, map[string]interface{}{
		"count":        table.Len(),
		"repositories": table.Records(),
	})
}

// Count handles GET /api/aggregates/count?field=
func (s *Server) Count(w http.ResponseWriter, r *http.Request) {
	c, err := criteria(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	field, err := required(r, "field")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	result, err := s.session.CountBy(c, field)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, map[string]interface{}{
		"field":   field,
		"buckets": result.Ranked(),
	})
}

// Sum handles GET /api/aggregates/sum?group=&measure=
func (s *Server) Sum(w http.ResponseWriter, r *http.Request) {
	c, err := criteria(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	group, err := required(r, "group")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	measure, err := required(r, "measure")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	result, err := s.session.SumBy(c, group, measure)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, map[string]interface{}{
		"group":   group,
		"measure": measure,
		"total":   result.Total(),
		"buckets": result.Ranked(),
	})
}

// Percent handles GET /api/aggregates/percent?field=
func (s *Server) Percent(w http.ResponseWriter, r *http.Request) {
	c, err := criteria(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	field, err := required(r, "field")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	result, err := s.session.Percentages(c, field)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, map[string]interface{}{
		"field":   field,
		"buckets": result.Ranked(),
	})
}

// Top handles GET /api/top?measure=&n=
func (s *Server) Top(w http.ResponseWriter, r *http.Request) {
	c, err := criteria(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	measure, err := required(r, "measure")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	n, err := intParam(r, "n")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	top, err := s.session.TopN(c, measure, n)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, map[string]interface{}{
		"measure":      measure,
		"repositories": top,
	})
}

// NestedTop handles GET /api/top/nested?outer=&inner=&measure=&n=
func (s *Server) NestedTop(w http.ResponseWriter, r *http.Request) {
	c, err := criteria(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	params := make([]string, 3)
	for i, name := range []string{"outer", "inner", "measure"} {
		if params[i], err = required(r, name); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	outer, inner, measure := params[0], params[1], params[2]
	n, err := intParam(r, "n")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	tab, err := s.session.NestedTopN(c, outer, inner, measure, n)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, map[string]interface{}{
		"outer":   outer,
		"inner":   inner,
		"measure": measure,
		"cells":   tab.Cells(),
	})
}

// Trend handles GET /api/trend?date_field=&measure=&dense=
// Without measure it counts repositories per month.
func (s *Server) Trend(w http.ResponseWriter, r *http.Request) {
	c, err := criteria(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	dateField, err := required(r, "date_field")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	dense, err := boolParam(r, "dense")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	trend, err := s.session.Trend(c, dateField, r.URL.Query().Get("measure"), dense)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, trend)
}

// LanguageTrend handles GET /api/trend/languages
func (s *Server) LanguageTrend(w http.ResponseWriter, r *http.Request) {
	c, err := criteria(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	trend, err := s.session.LanguageTrend(c)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, trend)
}

// Explore handles GET /api/explore
func (s *Server) Explore(w http.ResponseWriter, r *http.Request) {
	c, err := criteria(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	view, err := s.session.Explore(c)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, view)
}

// Visualize handles GET /api/visualize?as_of=YYYY-MM-DD
func (s *Server) Visualize(w http.ResponseWriter, r *http.Request) {
	c, err := criteria(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	asOf, err := s.asOf(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	view, err := s.session.Visualize(c, asOf)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, view)
}

// ExportCSV handles GET /api/export.csv, the filtered table as a download.
func (s *Server) ExportCSV(w http.ResponseWriter, r *http.Request) {
	c, err := criteria(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	table, err := s.session.Filter(c)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, table); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="repositories.csv"`)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
