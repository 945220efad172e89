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


package loader

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rulego/repoinsight/types"
)

// Open opens and pings a database. Blank driver means sqlite; the caller
// imports the driver package.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	if driver == "" {
		driver = "sqlite"
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, types.DataUnavailableError(fmt.Sprintf("opening %s database", driver), err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, types.DataUnavailableError(fmt.Sprintf("connecting to %s", driver), err)
	}
	return db, nil
}

// FromSQL runs query and loads the result set. A blank query reads the
// repositories table.
func FromSQL(ctx context.Context, db *sql.DB, query string, opts ...Option) (*types.RecordTable, Report, error) {
	if db == nil {
		return nil, Report{}, types.DataUnavailableError("no database", nil)
	}
	if query == "" {
		query = types.DefaultQuery
	}
	o := buildOptions(opts)

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, Report{}, types.DataUnavailableError("querying repositories", err)
	}
	defer rows.Close()

	header, err := rows.Columns()
	if err != nil {
		return nil, Report{}, types.DataUnavailableError("reading columns", err)
	}
	index, err := columnIndex(header)
	if err != nil {
		return nil, Report{}, types.DataUnavailableError("unexpected table layout", err)
	}

	b := &builder{index: index, log: o.log}
	values := make([]any, len(header))
	dest := make([]any, len(header))
	for i := range values {
		dest[i] = &values[i]
	}
	row := 0
	for rows.Next() {
		row++
		if err := rows.Scan(dest...); err != nil {
			return nil, b.report, types.DataUnavailableError(fmt.Sprintf("scanning row %d", row), err)
		}
		b.add(row, values)
	}
	if err := rows.Err(); err != nil {
		return nil, b.report, types.DataUnavailableError("reading rows", err)
	}

	o.log.Info("loaded %d repositories, rejected %d", b.report.Loaded, b.report.Rejected)
	return b.table(), b.report, nil
}
