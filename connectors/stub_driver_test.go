package connectors

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
)

// The stub driver serves canned results keyed by whitespace-normalized
// query text, so connector behavior can be exercised without a server.

type stubResult struct {
	columns  []string
	rows     [][]driver.Value
	affected int64
	err      error
}

var (
	stubMu       sync.Mutex
	stubFixtures = map[string]stubResult{}
)

func normalizeQuery(query string) string {
	return strings.Join(strings.Fields(query), " ")
}

func setStubFixture(t *testing.T, query string, result stubResult) {
	t.Helper()
	stubMu.Lock()
	stubFixtures[normalizeQuery(query)] = result
	stubMu.Unlock()
	t.Cleanup(func() {
		stubMu.Lock()
		delete(stubFixtures, normalizeQuery(query))
		stubMu.Unlock()
	})
}

func lookupStubFixture(query string) (stubResult, bool) {
	stubMu.Lock()
	defer stubMu.Unlock()
	result, ok := stubFixtures[normalizeQuery(query)]
	return result, ok
}

type stubDriver struct{}

func (stubDriver) Open(name string) (driver.Conn, error) {
	return &stubConn{}, nil
}

type stubConn struct{}

func (*stubConn) Prepare(query string) (driver.Stmt, error) {
	return nil, fmt.Errorf("stub driver does not support prepared statements")
}

func (*stubConn) Close() error { return nil }

func (*stubConn) Begin() (driver.Tx, error) {
	return nil, fmt.Errorf("stub driver does not support transactions")
}

func (*stubConn) Ping(ctx context.Context) error { return nil }

func (*stubConn) QueryContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	result, ok := lookupStubFixture(query)
	if !ok {
		return nil, fmt.Errorf("no fixture for query: %s", normalizeQuery(query))
	}
	if result.err != nil {
		return nil, result.err
	}
	return &stubRows{columns: result.columns, rows: result.rows}, nil
}

func (*stubConn) ExecContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	result, ok := lookupStubFixture(query)
	if !ok {
		return nil, fmt.Errorf("no fixture for statement: %s", normalizeQuery(query))
	}
	if result.err != nil {
		return nil, result.err
	}
	return driver.RowsAffected(result.affected), nil
}

type stubRows struct {
	columns []string
	rows    [][]driver.Value
	pos     int
}

func (r *stubRows) Columns() []string { return r.columns }

func (r *stubRows) Close() error { return nil }

func (r *stubRows) Next(dest []driver.Value) error {
	if r.pos >= len(r.rows) {
		return io.EOF
	}
	copy(dest, r.rows[r.pos])
	r.pos++
	return nil
}

func init() {
	sql.Register("datusstub", stubDriver{})
}

func openStubDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("datusstub", "stub")
	if err != nil {
		t.Fatalf("failed to open stub database: %v", err)
	}
	return db
}
