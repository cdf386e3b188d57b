// Copyright 2025 The Datus Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package connectors implements the uniform connector contract for every
// supported dialect. Each dialect registers its factory from init, so a
// blank import of this package is all a host application needs to make the
// dialects resolvable.
package connectors

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	datusadapters "github.com/pvrraju/Datus-adapters"
)

// baseConnector carries the session handle, the closed-state guard and the
// generic execute/scan mechanics shared by all dialects. Dialect-specific
// metadata queries live in the embedding connector.
type baseConnector struct {
	db           *sql.DB
	dialect      string
	versionQuery string
	logger       *slog.Logger
	closed       atomic.Bool
}

func newBaseConnector(db *sql.DB, dialect string, versionQuery string, logger *slog.Logger) *baseConnector {
	if logger == nil {
		// noop logger by default
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &baseConnector{
		db:           db,
		dialect:      dialect,
		versionQuery: versionQuery,
		logger:       logger,
	}
}

// connect verifies the endpoint is reachable. Called once at construction;
// the connector is Connected on success.
func (c *baseConnector) connect(ctx context.Context) error {
	if err := c.db.PingContext(ctx); err != nil {
		if closeErr := c.db.Close(); closeErr != nil {
			c.logger.Warn("failed to release unreachable connection", "dialect", c.dialect, "error", closeErr)
		}
		return datusadapters.WrapError(err, datusadapters.KindConstruction, c.dialect, "connect", "endpoint unreachable")
	}
	return nil
}

func (c *baseConnector) Dialect() string {
	return c.dialect
}

func (c *baseConnector) ensureOpen(op string) error {
	if c.closed.Load() {
		return datusadapters.NewError(datusadapters.KindConnectionClosed, c.dialect, op, "connector is closed")
	}
	return nil
}

// Close releases the session. It is idempotent and best effort: a failure
// to release an already-invalid session is logged, never returned.
func (c *baseConnector) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}

	if err := c.db.Close(); err != nil {
		c.logger.Warn("failed to close database handle", "dialect", c.dialect, "error", err)
	}
	return nil
}

func (c *baseConnector) Ping(ctx context.Context) (string, error) {
	if err := c.ensureOpen("ping"); err != nil {
		return "", err
	}

	if err := c.db.PingContext(ctx); err != nil {
		return "", datusadapters.WrapError(err, datusadapters.KindMetadata, c.dialect, "ping", "connectivity check failed")
	}

	var version string
	if err := c.db.QueryRowContext(ctx, c.versionQuery).Scan(&version); err != nil {
		return "", datusadapters.WrapError(err, datusadapters.KindMetadata, c.dialect, "ping", "failed to read server version")
	}
	return version, nil
}

func (c *baseConnector) ExecuteQuery(ctx context.Context, query string, format datusadapters.ResultFormat) (*datusadapters.ExecuteSQLResult, error) {
	if err := c.ensureOpen("execute_query"); err != nil {
		return nil, err
	}

	startTime := time.Now()

	if !returnsRows(query) {
		execResult, err := c.db.ExecContext(ctx, query)
		if err != nil {
			return nil, datusadapters.WrapError(err, datusadapters.KindQuery, c.dialect, "execute_query", "statement failed")
		}

		rowsAffected, err := execResult.RowsAffected()
		if err != nil {
			// some drivers cannot report this, not a statement failure
			c.logger.Debug("rows affected unavailable", "dialect", c.dialect, "error", err)
			rowsAffected = 0
		}

		elapsed := time.Since(startTime).Milliseconds()
		c.logger.Debug("statement completed",
			"dialect", c.dialect,
			"rows_affected", rowsAffected,
			"duration_ms", elapsed)
		return datusadapters.BuildExecResult(c.dialect, rowsAffected, elapsed), nil
	}

	columns, rows, err := c.scanAll(ctx, query)
	if err != nil {
		return nil, datusadapters.WrapError(err, datusadapters.KindQuery, c.dialect, "execute_query", "query failed")
	}

	elapsed := time.Since(startTime).Milliseconds()
	c.logger.Debug("query completed",
		"dialect", c.dialect,
		"rows", len(rows),
		"duration_ms", elapsed)

	result, err := datusadapters.BuildResult(c.dialect, columns, rows, format, elapsed)
	if err != nil {
		return nil, datusadapters.WrapError(err, datusadapters.KindQuery, c.dialect, "execute_query", "failed to shape result")
	}
	return result, nil
}

// scanAll runs a row-returning statement and scans every row generically.
func (c *baseConnector) scanAll(ctx context.Context, query string, args ...any) ([]string, [][]any, error) {
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}

	defer func() {
		if err := rows.Close(); err != nil {
			c.logger.Warn("failed to close rows", "error", err)
		}
	}()

	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	allRows := [][]any{}
	for rows.Next() {
		values := make([]any, len(columns))
		valuePointers := make([]any, len(columns))
		for i := range values {
			valuePointers[i] = &values[i]
		}

		if err := rows.Scan(valuePointers...); err != nil {
			return nil, nil, err
		}

		for i, value := range values {
			// normalize driver byte slices so results survive the row lifetime
			if raw, ok := value.([]byte); ok {
				values[i] = string(raw)
			}
		}
		allRows = append(allRows, values)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	return columns, allRows, nil
}

// queryStrings runs a metadata query whose result is a single name column.
func (c *baseConnector) queryStrings(ctx context.Context, op string, query string, args ...any) ([]string, error) {
	if err := c.ensureOpen(op); err != nil {
		return nil, err
	}

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, datusadapters.WrapError(err, datusadapters.KindMetadata, c.dialect, op, "metadata query failed")
	}

	defer func() {
		if err := rows.Close(); err != nil {
			c.logger.Warn("failed to close rows", "error", err)
		}
	}()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, datusadapters.WrapError(err, datusadapters.KindMetadata, c.dialect, op, "failed to scan row")
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, datusadapters.WrapError(err, datusadapters.KindMetadata, c.dialect, op, "error during row iteration")
	}

	return names, nil
}

// metadataRows runs a metadata query and returns generically scanned rows,
// wrapping failures with metadata context.
func (c *baseConnector) metadataRows(ctx context.Context, op string, query string, args ...any) ([]string, [][]any, error) {
	if err := c.ensureOpen(op); err != nil {
		return nil, nil, err
	}

	columns, rows, err := c.scanAll(ctx, query, args...)
	if err != nil {
		return nil, nil, datusadapters.WrapError(err, datusadapters.KindMetadata, c.dialect, op, "metadata query failed")
	}
	return columns, rows, nil
}

func returnsRows(query string) bool {
	fields := strings.Fields(strings.ToUpper(query))
	if len(fields) == 0 {
		return true
	}

	switch fields[0] {
	case "SELECT", "SHOW", "DESC", "DESCRIBE", "EXPLAIN", "WITH", "VALUES":
		return true
	}
	return false
}

func columnIndex(columns []string, name string) int {
	for i, column := range columns {
		if strings.EqualFold(column, name) {
			return i
		}
	}
	return -1
}

func stringAt(row []any, index int) string {
	if index < 0 || index >= len(row) || row[index] == nil {
		return ""
	}

	switch v := row[index].(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
