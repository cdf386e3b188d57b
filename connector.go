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

// Package datusadapters defines the uniform connector contract and the
// process-wide dialect registry shared by all database adapters.
package datusadapters

import "context"

// Connector is the uniform surface every database adapter implements. An
// instance is bound to one endpoint and one dialect for its lifetime; it is
// Connected on successful construction and terminal once closed. A connector
// is not safe for unsynchronized concurrent use unless the wrapped client
// library guarantees it; callers needing parallelism should hold one
// instance per unit of work.
type Connector interface {
	// Dialect returns the dialect name the connector was registered under.
	Dialect() string

	// Ping verifies connectivity and returns the server version string.
	Ping(ctx context.Context) (string, error)

	// ExecuteQuery runs a single statement and returns its outcome shaped
	// according to format.
	ExecuteQuery(ctx context.Context, query string, format ResultFormat) (*ExecuteSQLResult, error)

	// GetDatabases lists databases visible to the session, ordered by name.
	GetDatabases(ctx context.Context) ([]string, error)

	// GetSchemas lists schemas within a database, ordered by name. An empty
	// database selects the session's current database. Dialects without a
	// separate schema level return their database names.
	GetSchemas(ctx context.Context, database string) ([]string, error)

	// GetTables lists tables, optionally scoped to a database and schema.
	GetTables(ctx context.Context, database string, schema string) ([]TableInfo, error)

	// GetMaterializedViews lists materialized views in a database. Dialects
	// lacking the concept return an empty slice, not an error.
	GetMaterializedViews(ctx context.Context, database string) ([]MaterializedViewInfo, error)

	// Close releases the underlying session. Best effort: it never fails
	// because the session is already invalid, and calling it twice is a
	// no-op. Every other operation fails with a connection_closed error
	// afterwards.
	Close() error
}

// CatalogLister is an optional capability for dialects with a catalog level
// above databases (e.g. StarRocks external catalogs). Discover it with a
// type assertion on a Connector.
type CatalogLister interface {
	GetCatalogs(ctx context.Context) ([]string, error)
}

// TableInfo describes one table from metadata introspection.
type TableInfo struct {
	Database string `json:"database"`
	Schema   string `json:"schema,omitempty"`
	Name     string `json:"name"`
	Type     string `json:"type,omitempty"`
	Comment  string `json:"comment,omitempty"`
}

// MaterializedViewInfo describes one materialized view.
type MaterializedViewInfo struct {
	Database   string `json:"database"`
	Schema     string `json:"schema,omitempty"`
	Name       string `json:"name"`
	Definition string `json:"definition,omitempty"`
}
