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
	"fmt"
	"log/slog"

	datusadapters "github.com/pvrraju/Datus-adapters"
	"github.com/pvrraju/Datus-adapters/cnn"
)

func init() {
	_ = datusadapters.Register("snowflake", NewSnowflakeConnector)
}

type SnowflakeConnector struct {
	*baseConnector
}

func NewSnowflakeConnector(ctx context.Context, cfg datusadapters.ConnectionConfig, logger *slog.Logger) (datusadapters.Connector, error) {
	if err := datusadapters.ValidateRequired("snowflake", cfg, "account", "username", "password", "warehouse"); err != nil {
		return nil, err
	}

	db, err := cnn.NewSnowflakeConnection(cfg)
	if err != nil {
		return nil, datusadapters.WrapError(err, datusadapters.KindConstruction, "snowflake", "connect", "failed to open snowflake connection")
	}

	c := &SnowflakeConnector{
		baseConnector: newBaseConnector(db, "snowflake", "SELECT CURRENT_VERSION()", logger),
	}

	if err := c.connect(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *SnowflakeConnector) GetDatabases(ctx context.Context) ([]string, error) {
	query := `
		SELECT database_name
		FROM information_schema.databases
		ORDER BY database_name`
	return c.queryStrings(ctx, "get_databases", query)
}

func (c *SnowflakeConnector) GetSchemas(ctx context.Context, database string) ([]string, error) {
	query := fmt.Sprintf(`
		SELECT schema_name
		FROM %sinformation_schema.schemata
		WHERE schema_name <> 'INFORMATION_SCHEMA'
		ORDER BY schema_name`, qualifyDatabase(database))
	return c.queryStrings(ctx, "get_schemas", query)
}

func (c *SnowflakeConnector) GetTables(ctx context.Context, database string, schema string) ([]datusadapters.TableInfo, error) {
	query := fmt.Sprintf(`
		SELECT table_catalog, table_schema, table_name, table_type, COALESCE(comment, '')
		FROM %sinformation_schema.tables
		WHERE table_schema <> 'INFORMATION_SCHEMA'`, qualifyDatabase(database))

	var args []any
	if schema != "" {
		query += " AND table_schema = ?"
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
			Comment:  stringAt(row, 4),
		})
	}
	return tables, nil
}

// GetMaterializedViews uses SHOW because Snowflake does not expose
// materialized views through information_schema.tables.
func (c *SnowflakeConnector) GetMaterializedViews(ctx context.Context, database string) ([]datusadapters.MaterializedViewInfo, error) {
	query := "SHOW MATERIALIZED VIEWS"
	if database != "" {
		query += fmt.Sprintf(" IN DATABASE %s", database)
	}

	columns, rows, err := c.metadataRows(ctx, "get_materialized_views", query)
	if err != nil {
		return nil, err
	}

	databaseIdx := columnIndex(columns, "database_name")
	schemaIdx := columnIndex(columns, "schema_name")
	nameIdx := columnIndex(columns, "name")
	textIdx := columnIndex(columns, "text")

	views := []datusadapters.MaterializedViewInfo{}
	for _, row := range rows {
		views = append(views, datusadapters.MaterializedViewInfo{
			Database:   stringAt(row, databaseIdx),
			Schema:     stringAt(row, schemaIdx),
			Name:       stringAt(row, nameIdx),
			Definition: stringAt(row, textIdx),
		})
	}
	return views, nil
}

// qualifyDatabase returns "db." when a database is selected explicitly,
// otherwise the session's current database applies.
func qualifyDatabase(database string) string {
	if database == "" {
		return ""
	}
	return database + "."
}
