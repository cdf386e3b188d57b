package cnn

import (
	"strings"
	"testing"

	datusadapters "github.com/pvrraju/Datus-adapters"
)

func TestMysqlDSN(t *testing.T) {
	tests := []struct {
		name     string
		cfg      datusadapters.ConnectionConfig
		expected string
	}{
		{
			name: "basic",
			cfg: datusadapters.ConnectionConfig{
				Host:     "localhost",
				Port:     3306,
				Username: "root",
				Password: "secret",
				Database: "analytics",
			},
			expected: "root:secret@tcp(localhost:3306)/analytics",
		},
		{
			name: "no database",
			cfg: datusadapters.ConnectionConfig{
				Host:     "sr.internal",
				Port:     9030,
				Username: "datus",
				Password: "pw",
			},
			expected: "datus:pw@tcp(sr.internal:9030)/",
		},
		{
			name: "with params",
			cfg: datusadapters.ConnectionConfig{
				Host:     "localhost",
				Port:     3306,
				Username: "root",
				Password: "secret",
				Database: "analytics",
				Params: map[string]string{
					"parseTime": "true",
					"charset":   "utf8mb4",
				},
			},
			expected: "root:secret@tcp(localhost:3306)/analytics?charset=utf8mb4&parseTime=true",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MysqlDSN(tt.cfg); got != tt.expected {
				t.Errorf("MysqlDSN() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestPostgresqlDSN(t *testing.T) {
	cfg := datusadapters.ConnectionConfig{
		Host:     "db.internal",
		Port:     5432,
		Username: "reporter",
		Password: "pw",
		Database: "reports",
	}

	expected := "host=db.internal port=5432 user=reporter password=pw dbname=reports sslmode=disable"
	if got := PostgresqlDSN(cfg); got != expected {
		t.Errorf("PostgresqlDSN() = %q, want %q", got, expected)
	}

	cfg.Params = map[string]string{"sslmode": "require"}
	if got := PostgresqlDSN(cfg); !strings.Contains(got, "sslmode=require") {
		t.Errorf("PostgresqlDSN() = %q, want sslmode=require", got)
	}
}

func TestSnowflakeDSN(t *testing.T) {
	cfg := datusadapters.ConnectionConfig{
		Account:   "xy12345",
		Username:  "reporter",
		Password:  "pw",
		Database:  "REPORTS",
		Schema:    "PUBLIC",
		Warehouse: "COMPUTE_WH",
		Role:      "ANALYST",
	}

	dsn, err := SnowflakeDSN(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, fragment := range []string{"xy12345", "reporter", "REPORTS", "warehouse=COMPUTE_WH", "role=ANALYST"} {
		if !strings.Contains(dsn, fragment) {
			t.Errorf("dsn %q missing %q", dsn, fragment)
		}
	}
}

func TestSnowflakeDSNMissingAccount(t *testing.T) {
	if _, err := SnowflakeDSN(datusadapters.ConnectionConfig{Username: "u", Password: "p"}); err == nil {
		t.Error("expected error for missing account, got nil")
	}
}
