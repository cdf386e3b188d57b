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
	_ = datusadapters.Register("starrocks", NewStarrocksConnector)
}

// StarrocksConnector speaks the MySQL wire protocol and reuses the mysql
// connector's behavior, adding the catalog listing capability and real
// materialized view introspection on top.
type StarrocksConnector struct {
	*MysqlConnector
}

var _ datusadapters.CatalogLister = (*StarrocksConnector)(nil)

func NewStarrocksConnector(ctx context.Context, cfg datusadapters.ConnectionConfig, logger *slog.Logger) (datusadapters.Connector, error) {
	if err := datusadapters.ValidateRequired("starrocks", cfg, "host", "port", "username"); err != nil {
		return nil, err
	}

	db, err := cnn.NewMysqlConnection(cfg)
	if err != nil {
		return nil, datusadapters.WrapError(err, datusadapters.KindConstruction, "starrocks", "connect", "failed to open starrocks connection")
	}

	base, err := newMysqlConnector(ctx, db, "starrocks", logger)
	if err != nil {
		return nil, err
	}
	return &StarrocksConnector{MysqlConnector: base}, nil
}

// GetCatalogs lists the internal catalog plus any configured external
// catalogs.
func (c *StarrocksConnector) GetCatalogs(ctx context.Context) ([]string, error) {
	columns, rows, err := c.metadataRows(ctx, "get_catalogs", "SHOW CATALOGS")
	if err != nil {
		return nil, err
	}

	nameIdx := columnIndex(columns, "Catalog")
	if nameIdx < 0 {
		nameIdx = 0
	}

	catalogs := []string{}
	for _, row := range rows {
		catalogs = append(catalogs, stringAt(row, nameIdx))
	}
	return catalogs, nil
}

func (c *StarrocksConnector) GetMaterializedViews(ctx context.Context, database string) ([]datusadapters.MaterializedViewInfo, error) {
	if err := c.ensureOpen("get_materialized_views"); err != nil {
		return nil, err
	}

	query := `
		SELECT table_schema, table_name, materialized_view_definition
		FROM information_schema.materialized_views`

	var args []any
	if database != "" {
		query += " WHERE table_schema = ?"
		args = append(args, database)
	}
	query += " ORDER BY table_schema, table_name"

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, datusadapters.WrapError(err, datusadapters.KindMetadata, c.dialect, "get_materialized_views", "failed to query information_schema.materialized_views")
	}

	defer func() {
		if err := rows.Close(); err != nil {
			c.logger.Warn("failed to close rows", "error", err)
		}
	}()

	views := []datusadapters.MaterializedViewInfo{}
	for rows.Next() {
		var schema, name, definition string
		if err := rows.Scan(&schema, &name, &definition); err != nil {
			return nil, datusadapters.WrapError(err, datusadapters.KindMetadata, c.dialect, "get_materialized_views", "failed to scan row")
		}
		views = append(views, datusadapters.MaterializedViewInfo{
			Database:   schema,
			Name:       name,
			Definition: definition,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, datusadapters.WrapError(err, datusadapters.KindMetadata, c.dialect, "get_materialized_views", "error during row iteration")
	}

	return views, nil
}
