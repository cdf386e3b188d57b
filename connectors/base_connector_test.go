package connectors

import (
	"context"
	"database/sql/driver"
	"errors"
	"strings"
	"testing"

	datusadapters "github.com/pvrraju/Datus-adapters"
)

func newStubMysqlConnector(t *testing.T) *MysqlConnector {
	t.Helper()
	conn, err := newMysqlConnector(context.Background(), openStubDB(t), "mysql", nil)
	if err != nil {
		t.Fatalf("failed to construct connector: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestExecuteQueryRowsFormat(t *testing.T) {
	setStubFixture(t, "SELECT 1", stubResult{
		columns: []string{"1"},
		rows:    [][]driver.Value{{int64(1)}},
	})

	conn := newStubMysqlConnector(t)

	result, err := conn.ExecuteQuery(context.Background(), "SELECT 1", datusadapters.FormatRows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Columns) != 1 {
		t.Fatalf("len(Columns) = %d, want 1", len(result.Columns))
	}
	if result.RowCount() != 1 {
		t.Fatalf("RowCount() = %d, want 1", result.RowCount())
	}
	if result.Rows[0][0] != int64(1) {
		t.Errorf("Rows[0][0] = %v, want 1", result.Rows[0][0])
	}
	if result.Dialect != "mysql" {
		t.Errorf("Dialect = %q, want mysql", result.Dialect)
	}
	if result.QueryID == "" {
		t.Error("QueryID not assigned")
	}
}

func TestExecuteQueryMapsFormat(t *testing.T) {
	setStubFixture(t, "SELECT id, name FROM users", stubResult{
		columns: []string{"id", "name"},
		rows: [][]driver.Value{
			{int64(1), []byte("alpha")},
			{int64(2), []byte("beta")},
		},
	})

	conn := newStubMysqlConnector(t)

	result, err := conn.ExecuteQuery(context.Background(), "SELECT id, name FROM users", datusadapters.FormatMaps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Maps) != 2 {
		t.Fatalf("len(Maps) = %d, want 2", len(result.Maps))
	}
	// driver byte slices must come back as strings
	if result.Maps[0]["name"] != "alpha" {
		t.Errorf("Maps[0][name] = %v (%T), want alpha", result.Maps[0]["name"], result.Maps[0]["name"])
	}
}

func TestExecuteQueryJSONFormat(t *testing.T) {
	setStubFixture(t, "SELECT id FROM t", stubResult{
		columns: []string{"id"},
		rows:    [][]driver.Value{{int64(42)}},
	})

	conn := newStubMysqlConnector(t)

	result, err := conn.ExecuteQuery(context.Background(), "SELECT id FROM t", datusadapters.FormatJSON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(result.JSON), `"id":42`) {
		t.Errorf("unexpected json: %s", result.JSON)
	}
}

func TestExecuteQueryDML(t *testing.T) {
	setStubFixture(t, "INSERT INTO t VALUES (1)", stubResult{affected: 3})

	conn := newStubMysqlConnector(t)

	result, err := conn.ExecuteQuery(context.Background(), "INSERT INTO t VALUES (1)", datusadapters.FormatRows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.RowsAffected != 3 {
		t.Errorf("RowsAffected = %d, want 3", result.RowsAffected)
	}
	if result.RowCount() != 0 {
		t.Errorf("RowCount() = %d, want 0", result.RowCount())
	}
}

func TestExecuteQueryFailure(t *testing.T) {
	setStubFixture(t, "SELECT broken", stubResult{err: errors.New("syntax error")})

	conn := newStubMysqlConnector(t)

	_, err := conn.ExecuteQuery(context.Background(), "SELECT broken", datusadapters.FormatRows)
	if err == nil {
		t.Fatal("expected query error, got nil")
	}
	if !datusadapters.IsKind(err, datusadapters.KindQuery) {
		t.Errorf("expected query kind, got %v", err)
	}
	if !strings.Contains(err.Error(), "mysql") {
		t.Errorf("error lacks dialect context: %v", err)
	}
}

func TestPing(t *testing.T) {
	setStubFixture(t, "SELECT VERSION()", stubResult{
		columns: []string{"VERSION()"},
		rows:    [][]driver.Value{{[]byte("8.0.36-stub")}},
	})

	conn := newStubMysqlConnector(t)

	version, err := conn.Ping(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if version != "8.0.36-stub" {
		t.Errorf("version = %q, want 8.0.36-stub", version)
	}
}

func TestOperationsAfterClose(t *testing.T) {
	conn := newStubMysqlConnector(t)

	if err := conn.Close(); err != nil {
		t.Fatalf("Close() = %v, want nil", err)
	}
	// double close is a no-op
	if err := conn.Close(); err != nil {
		t.Fatalf("second Close() = %v, want nil", err)
	}

	ctx := context.Background()

	if _, err := conn.ExecuteQuery(ctx, "SELECT 1", datusadapters.FormatRows); !datusadapters.IsKind(err, datusadapters.KindConnectionClosed) {
		t.Errorf("ExecuteQuery after close: expected connection_closed kind, got %v", err)
	}
	if _, err := conn.Ping(ctx); !datusadapters.IsKind(err, datusadapters.KindConnectionClosed) {
		t.Errorf("Ping after close: expected connection_closed kind, got %v", err)
	}
	if _, err := conn.GetDatabases(ctx); !datusadapters.IsKind(err, datusadapters.KindConnectionClosed) {
		t.Errorf("GetDatabases after close: expected connection_closed kind, got %v", err)
	}
	if _, err := conn.GetTables(ctx, "", ""); !datusadapters.IsKind(err, datusadapters.KindConnectionClosed) {
		t.Errorf("GetTables after close: expected connection_closed kind, got %v", err)
	}
	if _, err := conn.GetMaterializedViews(ctx, ""); !datusadapters.IsKind(err, datusadapters.KindConnectionClosed) {
		t.Errorf("GetMaterializedViews after close: expected connection_closed kind, got %v", err)
	}
}

func TestReturnsRows(t *testing.T) {
	tests := []struct {
		query    string
		expected bool
	}{
		{"SELECT 1", true},
		{"  select * from t", true},
		{"SHOW DATABASES", true},
		{"WITH x AS (SELECT 1) SELECT * FROM x", true},
		{"EXPLAIN SELECT 1", true},
		{"DESCRIBE t", true},
		{"INSERT INTO t VALUES (1)", false},
		{"UPDATE t SET a = 1", false},
		{"DELETE FROM t", false},
		{"CREATE TABLE t (a INT)", false},
	}

	for _, tt := range tests {
		if got := returnsRows(tt.query); got != tt.expected {
			t.Errorf("returnsRows(%q) = %v, want %v", tt.query, got, tt.expected)
		}
	}
}
