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


package repoinsight

import (
	"io"

	"github.com/rulego/repoinsight/logger"
	"github.com/rulego/repoinsight/types"
)

// Option customizes a Session.
type Option func(*Session)

// WithConfig replaces the session settings. Later options still apply on top.
//
// Example:
//
//	cfg, err := types.LoadConfig(f)
//	s, err := repoinsight.New(table, repoinsight.WithConfig(cfg))
func WithConfig(cfg types.Config) Option {
	return func(s *Session) {
		s.config = cfg
	}
}

// WithLogger sets the session logger.
func WithLogger(log logger.Logger) Option {
	return func(s *Session) {
		if log != nil {
			s.log = log
		}
	}
}

// WithLogLevel sets the level of the session logger. The logger the session
// was given, or the process default, keeps its own level.
func WithLogLevel(level logger.Level) Option {
	return func(s *Session) {
		s.log = s.log.WithLevel(level)
	}
}

// WithLogOutput logs to output at level.
//
// Example:
//
//	logFile, _ := os.OpenFile("repoinsight.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
//	s, err := repoinsight.New(table, repoinsight.WithLogOutput(logFile, logger.INFO))
func WithLogOutput(output io.Writer, level logger.Level) Option {
	return func(s *Session) {
		s.log = logger.NewLogger(level, output)
	}
}

// WithDiscardLog disables session logging.
func WithDiscardLog() Option {
	return func(s *Session) {
		s.log = logger.NewDiscardLogger()
	}
}

// WithUnknownBucket sets the label of empty group values.
func WithUnknownBucket(label string) Option {
	return func(s *Session) {
		if label != "" {
			s.config.UnknownBucket = label
		}
	}
}

// WithTopN sets the ranking sizes of the pages.
func WithTopN(topN, nestedTopN int) Option {
	return func(s *Session) {
		s.config.TopN = topN
		s.config.NestedTopN = nestedTopN
	}
}

// WithHistogramBins sets the histogram bin count.
func WithHistogramBins(bins int) Option {
	return func(s *Session) {
		s.config.HistogramBins = bins
	}
}

// WithWordCloudSize limits the word frequencies of the visualization page.
func WithWordCloudSize(n int) Option {
	return func(s *Session) {
		s.config.WordCloudSize = n
	}
}

// WithDenseTrends zero-fills months without activity.
func WithDenseTrends() Option {
	return func(s *Session) {
		s.config.DenseTrends = true
	}
}
