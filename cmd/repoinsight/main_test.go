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


package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulego/repoinsight/loader"
)

const sample = `Repository_Name,Programming_Language,License_Type,Number_of_Stars,Number_of_Forks,Number_of_Open_Issues,Description,Creation_Date,Last_Updated_Date
chi,Go,MIT,18000,990,40,lightweight idiomatic router,2016-01-11,2024-05-02
cobra,Go,Apache-2.0,37000,2800,250,commander for modern cli apps,2013-09-03,2024-05-20
ripgrep,Rust,Unlicense,45000,1900,300,recursive search tool,2016-03-11,2024-04-28
broken,Go,MIT,-3,0,0,,,
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun_SummaryFromCSV(t *testing.T) {
	path := writeFile(t, "repos.csv", sample)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-csv", path, "-summary", "-as-of", "2024-06-01", "-log-level", "warn"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	out := stdout.String()
	assert.True(t, strings.HasPrefix(out, "3 repositories, 100000 stars, 5690 forks, 590 open issues\n"))
	assert.Contains(t, out, "Repositories per language")
	assert.Contains(t, out, "| Go       | 2     |")
	assert.Contains(t, out, "| ripgrep | Rust     | 45000 |")
	assert.Contains(t, out, "| 2024-05 | 2     |")
	assert.Contains(t, stderr.String(), "row 4 rejected")
}

func TestRun_SummaryFiltered(t *testing.T) {
	path := writeFile(t, "repos.csv", sample)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-csv", path, "-summary", "-language", "Go", "-min-stars", "20000", "-log-level", "off"}, &stdout, &stderr)
	require.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(stdout.String(), "1 repositories, 37000 stars"))
	assert.Empty(t, stderr.String())

	code = run(context.Background(), []string{"-csv", path, "-summary", "-min-stars", "-1", "-log-level", "off"}, &stdout, &stderr)
	assert.Equal(t, 1, code)
}

func TestRun_SummaryFromSQLite(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "repos.db")
	ctx := context.Background()
	db, err := loader.Open(ctx, "sqlite", dsn)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE repositories (Repository_Name TEXT, Programming_Language TEXT, License_Type TEXT,
		Number_of_Stars INTEGER, Number_of_Forks INTEGER, Number_of_Open_Issues INTEGER,
		Description TEXT, Creation_Date TEXT, Last_Updated_Date TEXT)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO repositories VALUES ('chi', 'Go', 'MIT', 18000, 990, 40, NULL, '2016-01-11', '2024-05-02')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	config := writeFile(t, "config.json", `{"topN": 1, "logLevel": "ERROR", "source": {"dsn": "`+filepath.ToSlash(dsn)+`"}}`)

	var stdout, stderr bytes.Buffer
	code := run(ctx, []string{"-config", config, "-summary", "-as-of", "2024-06-01"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.True(t, strings.HasPrefix(stdout.String(), "1 repositories, 18000 stars"))
}

func TestRun_Errors(t *testing.T) {
	ctx := context.Background()
	var stdout, stderr bytes.Buffer

	assert.Equal(t, 2, run(ctx, nil, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "one of -db or -csv is required")

	assert.Equal(t, 2, run(ctx, []string{"-unknown"}, &stdout, &stderr))

	stderr.Reset()
	assert.Equal(t, 1, run(ctx, []string{"-csv", filepath.Join(t.TempDir(), "missing.csv"), "-summary"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "no data available")

	bad := writeFile(t, "bad.json", `{"histogramBins": 0}`)
	assert.Equal(t, 2, run(ctx, []string{"-config", bad, "-csv", "x.csv"}, &stdout, &stderr))

	path := writeFile(t, "repos.csv", sample)
	assert.Equal(t, 2, run(ctx, []string{"-csv", path, "-log-level", "loud"}, &stdout, &stderr))
	assert.Equal(t, 2, run(ctx, []string{"-csv", path, "-summary", "-as-of", "June", "-log-level", "off"}, &stdout, &stderr))
}

func TestRun_ServeUntilCancelled(t *testing.T) {
	path := writeFile(t, "repos.csv", sample)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stdout, stderr bytes.Buffer
	code := run(ctx, []string{"-csv", path, "-addr", "127.0.0.1:0", "-log-level", "off"}, &stdout, &stderr)
	assert.Equal(t, 0, code)
}
