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
	"encoding/json"
	"fmt"
	"io"
)

// DefaultUnknownBucket labels records whose group field is empty.
const DefaultUnknownBucket = "unknown"

// Config holds the session level settings
type Config struct {
	// Label used for empty group values
	UnknownBucket string `json:"unknownBucket"`
	// Ranking sizes
	TopN       int `json:"topN"`
	NestedTopN int `json:"nestedTopN"`
	// Distribution settings
	HistogramBins int `json:"histogramBins"`
	WordCloudSize int `json:"wordCloudSize"`
	// DenseTrends zero-fills months without activity in trend series
	DenseTrends bool `json:"denseTrends"`
	// LogLevel DEBUG, INFO, WARN, ERROR or OFF
	LogLevel string `json:"logLevel"`

	Source SourceConfig `json:"source"`
	Server ServerConfig `json:"server"`
}

// SourceConfig locates the repository table
type SourceConfig struct {
	// Driver is the database/sql driver name, "sqlite" by default
	Driver string `json:"driver"`
	DSN    string `json:"dsn"`
	Query  string `json:"query"`
	// CSVPath loads the table from a CSV file instead of a database
	CSVPath string `json:"csvPath"`
}

// ServerConfig HTTP surface settings
type ServerConfig struct {
	Addr string `json:"addr"`
}

// DefaultQuery reads the whole repositories table.
const DefaultQuery = "SELECT * FROM repositories"

// NewConfig returns the default configuration
func NewConfig() Config {
	return Config{
		UnknownBucket: DefaultUnknownBucket,
		TopN:          10,
		NestedTopN:    10,
		HistogramBins: 30,
		WordCloudSize: 50,
		LogLevel:      "INFO",
		Source: SourceConfig{
			Driver: "sqlite",
			Query:  DefaultQuery,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// LoadConfig decodes a JSON document over the defaults; absent keys keep their default.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := NewConfig()
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges
func (c Config) Validate() error {
	if c.TopN < 0 || c.NestedTopN < 0 {
		return fmt.Errorf("topN and nestedTopN must be >= 0")
	}
	if c.HistogramBins <= 0 {
		return fmt.Errorf("histogramBins must be > 0, got %d", c.HistogramBins)
	}
	if c.WordCloudSize < 0 {
		return fmt.Errorf("wordCloudSize must be >= 0, got %d", c.WordCloudSize)
	}
	return nil
}
