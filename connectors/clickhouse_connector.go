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
	_ = datusadapters.Register("clickhouse", NewClickhouseConnector)
}

type ClickhouseConnector struct {
	*baseConnector
}

func NewClickhouseConnector(ctx context.Context, cfg datusadapters.ConnectionConfig, logger *slog.Logger) (datusadapters.Connector, error) {
	if err := datusadapters.ValidateRequired("clickhouse", cfg, "host", "port", "username"); err != nil {
		return nil, err
	}

	db, err := cnn.NewClickhouseConnection(cfg)
	if err != nil {
		return nil, datusadapters.WrapError(err, datusadapters.KindConstruction, "clickhouse", "connect", "failed to open clickhouse connection")
	}

	c := &ClickhouseConnector{
		baseConnector: newBaseConnector(db, "clickhouse", "SELECT version()", logger),
	}

	if err := c.connect(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *ClickhouseConnector) GetDatabases(ctx context.Context) ([]string, error) {
	query := `
		SELECT name
		FROM system.databases
		WHERE name NOT IN ('system', 'INFORMATION_SCHEMA', 'information_schema')
		ORDER BY name`
	return c.queryStrings(ctx, "get_databases", query)
}

// GetSchemas returns database names: ClickHouse has no separate schema
// level.
func (c *ClickhouseConnector) GetSchemas(ctx context.Context, database string) ([]string, error) {
	return c.GetDatabases(ctx)
}

func (c *ClickhouseConnector) GetTables(ctx context.Context, database string, schema string) ([]datusadapters.TableInfo, error) {
	target := database
	if target == "" {
		target = schema
	}

	query := `
		SELECT database, name, engine, comment
		FROM system.tables
		WHERE database NOT IN ('system', 'INFORMATION_SCHEMA', 'information_schema')
		  AND is_temporary = 0`

	var args []any
	if target != "" {
		query += " AND database = ?"
		args = append(args, target)
	}
	query += " ORDER BY database, name"

	_, rows, err := c.metadataRows(ctx, "get_tables", query, args...)
	if err != nil {
		return nil, err
	}

	tables := []datusadapters.TableInfo{}
	for _, row := range rows {
		tables = append(tables, datusadapters.TableInfo{
			Database: stringAt(row, 0),
			Name:     stringAt(row, 1),
			Type:     stringAt(row, 2),
			Comment:  stringAt(row, 3),
		})
	}
	return tables, nil
}

func (c *ClickhouseConnector) GetMaterializedViews(ctx context.Context, database string) ([]datusadapters.MaterializedViewInfo, error) {
	query := `
		SELECT database, name, create_table_query
		FROM system.tables
		WHERE engine = 'MaterializedView'`

	var args []any
	if database != "" {
		query += " AND database = ?"
		args = append(args, database)
	}
	query += " ORDER BY database, name"

	_, rows, err := c.metadataRows(ctx, "get_materialized_views", query, args...)
	if err != nil {
		return nil, err
	}

	views := []datusadapters.MaterializedViewInfo{}
	for _, row := range rows {
		views = append(views, datusadapters.MaterializedViewInfo{
			Database:   stringAt(row, 0),
			Name:       stringAt(row, 1),
			Definition: stringAt(row, 2),
		})
	}
	return views, nil
}
