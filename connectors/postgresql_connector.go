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
	"log/slog"

	datusadapters "github.com/pvrraju/Datus-adapters"
	"github.com/pvrraju/Datus-adapters/cnn"
)

func init() {
	_ = datusadapters.Register("postgresql", NewPostgresqlConnector)
	// common alias
	_ = datusadapters.Register("postgres", NewPostgresqlConnector)
}

type PostgresqlConnector struct {
	*baseConnector
}

func NewPostgresqlConnector(ctx context.Context, cfg datusadapters.ConnectionConfig, logger *slog.Logger) (datusadapters.Connector, error) {
	if err := datusadapters.ValidateRequired("postgresql", cfg, "host", "port", "username", "database"); err != nil {
		return nil, err
	}

	db, err := cnn.NewPostgresqlConnection(cfg)
	if err != nil {
		return nil, datusadapters.WrapError(err, datusadapters.KindConstruction, "postgresql", "connect", "failed to open postgresql connection")
	}

	c := &PostgresqlConnector{
		baseConnector: newBaseConnector(db, "postgresql", "SHOW server_version", logger),
	}

	if err := c.connect(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *PostgresqlConnector) GetDatabases(ctx context.Context) ([]string, error) {
	query := `
		SELECT datname
		FROM pg_database
		WHERE datistemplate = false
		ORDER BY datname`
	return c.queryStrings(ctx, "get_databases", query)
}

// GetSchemas is session-scoped: a PostgreSQL session cannot introspect
// another database, so the database argument is ignored.
func (c *PostgresqlConnector) GetSchemas(ctx context.Context, database string) ([]string, error) {
	query := `
		SELECT schema_name
		FROM information_schema.schemata
		WHERE schema_name NOT IN ('pg_catalog', 'information_schema')
		  AND schema_name NOT LIKE 'pg_toast%'
		ORDER BY schema_name`
	return c.queryStrings(ctx, "get_schemas", query)
}

func (c *PostgresqlConnector) GetTables(ctx context.Context, database string, schema string) ([]datusadapters.TableInfo, error) {
	query := `
		SELECT table_catalog, table_schema, table_name, table_type
		FROM information_schema.tables
		WHERE table_schema NOT IN ('pg_catalog', 'information_schema')`

	var args []any
	if schema != "" {
		query += " AND table_schema = $1"
		args = append(args, schema)
	}
	query += " ORDER BY table_schema, table_name"

	_, rows, err := c.metadataRows(ctx, "get_tables", query, args...)
	if err != nil {
		return nil, err
	}

	tables := []datusadapters.TableInfo{}
	for _, row := range rows {
		tables = append(tables, datusadapters.TableInfo{
			Database: stringAt(row, 0),
			Schema:   stringAt(row, 1),
			Name:     stringAt(row, 2),
			Type:     stringAt(row, 3),
		})
	}
	return tables, nil
}

func (c *PostgresqlConnector) GetMaterializedViews(ctx context.Context, database string) ([]datusadapters.MaterializedViewInfo, error) {
	query := `
		SELECT schemaname, matviewname, definition
		FROM pg_matviews
		ORDER BY schemaname, matviewname`

	_, rows, err := c.metadataRows(ctx, "get_materialized_views", query)
	if err != nil {
		return nil, err
	}

	views := []datusadapters.MaterializedViewInfo{}
	for _, row := range rows {
		views = append(views, datusadapters.MaterializedViewInfo{
			Schema:     stringAt(row, 0),
			Name:       stringAt(row, 1),
			Definition: stringAt(row, 2),
		})
	}
	return views, nil
}
