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

package connectors

import (
	"context"
	"database/sql"
	"log/slog"

	datusadapters "github.com/pvrraju/Datus-adapters"
	"github.com/pvrraju/Datus-adapters/cnn"
)

func init() {
	_ = datusadapters.Register("mysql", NewMysqlConnector)
}

type MysqlConnector struct {
	*baseConnector
}

func NewMysqlConnector(ctx context.Context, cfg datusadapters.ConnectionConfig, logger *slog.Logger) (datusadapters.Connector, error) {
	if err := datusadapters.ValidateRequired("mysql", cfg, "host", "port", "username"); err != nil {
		return nil, err
	}

	db, err := cnn.NewMysqlConnection(cfg)
	if err != nil {
		return nil, datusadapters.WrapError(err, datusadapters.KindConstruction, "mysql", "connect", "failed to open mysql connection")
	}

	return newMysqlConnector(ctx, db, "mysql", logger)
}

// newMysqlConnector wires an already-opened MySQL-protocol handle. The
// starrocks connector reuses it with its own dialect identity.
func newMysqlConnector(ctx context.Context, db *sql.DB, dialect string, logger *slog.Logger) (*MysqlConnector, error) {
	c := &MysqlConnector{
		baseConnector: newBaseConnector(db, dialect, "SELECT VERSION()", logger),
	}

	if err := c.connect(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *MysqlConnector) GetDatabases(ctx context.Context) ([]string, error) {
	query := `
		SELECT schema_name
		FROM information_schema.schemata
		WHERE schema_name NOT IN ('mysql', 'information_schema', 'performance_schema', 'sys')
		ORDER BY schema_name`
	return c.queryStrings(ctx, "get_databases", query)
}

// GetSchemas returns database names: MySQL treats schema and database as
// the same namespace.
func (c *MysqlConnector) GetSchemas(ctx context.Context, database string) ([]string, error) {
	return c.GetDatabases(ctx)
}

func (c *MysqlConnector) GetTables(ctx context.Context, database string, schema string) ([]datusadapters.TableInfo, error) {
	if err := c.ensureOpen("get_tables"); err != nil {
		return nil, err
	}

	target := schema
	if target == "" {
		target = database
	}

	query := `
		SELECT table_schema, table_name, table_type, table_comment
		FROM information_schema.tables
		WHERE table_schema NOT IN ('mysql', 'information_schema', 'performance_schema', 'sys')`

	var args []any
	if target != "" {
		query += " AND table_schema = ?"
		args = append(args, target)
	}
	query += " ORDER BY table_schema, table_name"

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, datusadapters.WrapError(err, datusadapters.KindMetadata, c.dialect, "get_tables", "failed to query information_schema.tables")
	}

	defer func() {
		if err := rows.Close(); err != nil {
			c.logger.Warn("failed to close rows", "error", err)
		}
	}()

	tables := []datusadapters.TableInfo{}
	for rows.Next() {
		var tableSchema, tableName, tableType, tableComment string
		if err := rows.Scan(&tableSchema, &tableName, &tableType, &tableComment); err != nil {
			return nil, datusadapters.WrapError(err, datusadapters.KindMetadata, c.dialect, "get_tables", "failed to scan row")
		}
		tables = append(tables, datusadapters.TableInfo{
			Database: tableSchema,
			Name:     tableName,
			Type:     tableType,
			Comment:  tableComment,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, datusadapters.WrapError(err, datusadapters.KindMetadata, c.dialect, "get_tables", "error during row iteration")
	}

	return tables, nil
}

// GetMaterializedViews returns an empty slice: MySQL has no materialized
// view concept.
func (c *MysqlConnector) GetMaterializedViews(ctx context.Context, database string) ([]datusadapters.MaterializedViewInfo, error) {
	if err := c.ensureOpen("get_materialized_views"); err != nil {
		return nil, err
	}
	return []datusadapters.MaterializedViewInfo{}, nil
}
