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


// Command repoinsight loads a repository table and serves the exploration API,
// or prints a summary with -summary.
//
//	repoinsight -db repositories.db -addr :8080
//	repoinsight -csv repositories.csv -summary -language Go -min-stars 100
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "modernc.org/sqlite"

	"github.com/rulego/repoinsight"
	"github.com/rulego/repoinsight/loader"
	"github.com/rulego/repoinsight/logger"
	"github.com/rulego/repoinsight/printer"
	"github.com/rulego/repoinsight/server"
	"github.com/rulego/repoinsight/types"
)

// stringList collects a repeated flag.
type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

type options struct {
	configPath string
	driver     string
	dsn        string
	csvPath    string
	query      string
	addr       string
	logLevel   string
	summary    bool
	asOf       string

	languages stringList
	licenses  stringList
	minStars  int64
	where     string
	selector  string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var o options
	fs := flag.NewFlagSet("repoinsight", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.configPath, "config", "", "JSON config file")
	fs.StringVar(&o.driver, "driver", "", "database/sql driver name (default sqlite)")
	fs.StringVar(&o.dsn, "db", "", "database DSN, a file path for sqlite")
	fs.StringVar(&o.csvPath, "csv", "", "load the table from a CSV file instead of a database")
	fs.StringVar(&o.query, "query", "", "query selecting the repositories (default "+types.DefaultQuery+")")
	fs.StringVar(&o.addr, "addr", "", "HTTP listen address (default :8080)")
	fs.StringVar(&o.logLevel, "log-level", "", "DEBUG, INFO, WARN, ERROR or OFF")
	fs.BoolVar(&o.summary, "summary", false, "print a summary and exit instead of serving")
	fs.StringVar(&o.asOf, "as-of", "", "reference date YYYY-MM-DD for -summary (default today)")
	fs.Var(&o.languages, "language", "keep only this language; repeatable")
	fs.Var(&o.licenses, "license", "keep only this license; repeatable")
	fs.Int64Var(&o.minStars, "min-stars", 0, "minimum stars")
	fs.StringVar(&o.where, "where", "", "expr-lang filter expression")
	fs.StringVar(&o.selector, "filter", "", "go-bexpr filter selector")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := loadConfig(o)
	if err != nil {
		fmt.Fprintf(stderr, "repoinsight: %v\n", err)
		return 2
	}
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(stderr, "repoinsight: %v\n", err)
		return 2
	}
	log := logger.NewLogger(level, stderr)
	logger.SetDefault(log)

	table, err := load(ctx, cfg.Source, log)
	if err != nil {
		log.Error("no data available: %v", err)
		return 1
	}

	session, err := repoinsight.New(table, repoinsight.WithConfig(cfg), repoinsight.WithLogger(log))
	if err != nil {
		log.Error("%v", err)
		return 1
	}

	if o.summary {
		asOf := time.Now()
		if o.asOf != "" {
			if asOf, err = time.Parse("2006-01-02", o.asOf); err != nil {
				log.Error("invalid -as-of %q: use YYYY-MM-DD", o.asOf)
				return 2
			}
		}
		if err := summarize(stdout, session, o.criteria(), asOf); err != nil {
			log.Error("%v", err)
			return 1
		}
		return 0
	}

	if err := server.New(session).Run(ctx, cfg.Server.Addr); err != nil {
		log.Error("server: %v", err)
		return 1
	}
	return 0
}

// loadConfig reads the config file, then applies the flags that were set.
func loadConfig(o options) (types.Config, error) {
	cfg := types.NewConfig()
	if o.configPath != "" {
		f, err := os.Open(o.configPath)
		if err != nil {
			return cfg, err
		}
		defer f.Close()
		if cfg, err = types.LoadConfig(f); err != nil {
			return cfg, fmt.Errorf("%s: %w", o.configPath, err)
		}
	}
	if o.driver != "" {
		cfg.Source.Driver = o.driver
	}
	if o.dsn != "" {
		cfg.Source.DSN = o.dsn
	}
	if o.csvPath != "" {
		cfg.Source.CSVPath = o.csvPath
	}
	if o.query != "" {
		cfg.Source.Query = o.query
	}
	if o.addr != "" {
		cfg.Server.Addr = o.addr
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if cfg.Source.CSVPath == "" && cfg.Source.DSN == "" {
		return cfg, fmt.Errorf("one of -db or -csv is required")
	}
	return cfg, nil
}

func load(ctx context.Context, src types.SourceConfig, log logger.Logger) (*types.RecordTable, error) {
	if src.CSVPath != "" {
		f, err := os.Open(src.CSVPath)
		if err != nil {
			return nil, types.DataUnavailableError("opening csv", err)
		}
		defer f.Close()
		table, _, err := loader.FromCSV(f, loader.WithLogger(log))
		return table, err
	}

	db, err := loader.Open(ctx, src.Driver, src.DSN)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	table, _, err := loader.FromSQL(ctx, db, src.Query, loader.WithLogger(log))
	return table, err
}

func (o options) criteria() types.FilterCriteria {
	return types.FilterCriteria{
		Languages: types.NewStringSet(o.languages...),
		Licenses:  types.NewStringSet(o.licenses...),
		MinStars:  o.minStars,
		Where:     o.where,
		Selector:  o.selector,
	}
}

func summarize(w io.Writer, s *repoinsight.Session, c types.FilterCriteria, asOf time.Time) error {
	explore, err := s.Explore(c)
	if err != nil {
		return err
	}
	vis, err := s.Visualize(c, asOf)
	if err != nil {
		return err
	}

	t := explore.Totals
	fmt.Fprintf(w, "%d repositories, %d stars, %d forks, %d open issues\n", t.Repositories, t.Stars, t.Forks, t.OpenIssues)
	printer.Buckets(w, "Repositories per language", "language", "count", explore.Languages)
	printer.Records(w, "Top repositories by stars", explore.TopByStars,
		[]types.Field{types.FieldName, types.FieldLanguage, types.FieldStars})
	printer.Buckets(w, "Licenses (%)", "license", "percent", explore.LicensePercentages)
	printer.Cells(w, "Open issues of the top repositories", "language", "repository", "open issues", explore.OpenIssues)
	printer.Trend(w, "Repositories updated per month", "count", vis.Updated)
	printer.Buckets(w, "Description words", "word", "count", vis.Words)
	return nil
}
