package datusadapters

import (
	"reflect"
	"strings"
	"testing"
)

func TestBuildResultFormats(t *testing.T) {
	columns := []string{"id", "name"}
	rows := [][]any{
		{int64(1), "alpha"},
		{int64(2), "beta"},
	}

	t.Run("rows format", func(t *testing.T) {
		result, err := BuildResult("mysql", columns, rows, FormatRows, 12)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(result.Rows, rows) {
			t.Errorf("Rows = %v, want %v", result.Rows, rows)
		}
		if result.Maps != nil || result.JSON != nil {
			t.Error("rows format populated other representations")
		}
		if result.RowCount() != 2 {
			t.Errorf("RowCount() = %d, want 2", result.RowCount())
		}
		if result.QueryID == "" {
			t.Error("QueryID not assigned")
		}
		if result.DurationMs != 12 {
			t.Errorf("DurationMs = %d, want 12", result.DurationMs)
		}
	})

	t.Run("empty format defaults to rows", func(t *testing.T) {
		result, err := BuildResult("mysql", columns, nil, "", 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Rows == nil || len(result.Rows) != 0 {
			t.Errorf("Rows = %v, want empty slice", result.Rows)
		}
	})

	t.Run("maps format", func(t *testing.T) {
		result, err := BuildResult("mysql", columns, rows, FormatMaps, 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		expected := []map[string]any{
			{"id": int64(1), "name": "alpha"},
			{"id": int64(2), "name": "beta"},
		}
		if !reflect.DeepEqual(result.Maps, expected) {
			t.Errorf("Maps = %v, want %v", result.Maps, expected)
		}
	})

	t.Run("json format", func(t *testing.T) {
		result, err := BuildResult("mysql", columns, rows, FormatJSON, 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		encoded := string(result.JSON)
		if !strings.Contains(encoded, `"name":"alpha"`) || !strings.Contains(encoded, `"id":2`) {
			t.Errorf("unexpected json encoding: %s", encoded)
		}
	})

	t.Run("unsupported format", func(t *testing.T) {
		if _, err := BuildResult("mysql", columns, rows, "arrow", 0); err == nil {
			t.Error("expected error for unsupported format, got nil")
		}
	})
}

func TestBuildExecResult(t *testing.T) {
	result := BuildExecResult("postgresql", 3, 7)

	if result.RowsAffected != 3 {
		t.Errorf("RowsAffected = %d, want 3", result.RowsAffected)
	}
	if result.RowCount() != 0 {
		t.Errorf("RowCount() = %d, want 0", result.RowCount())
	}
	if result.QueryID == "" {
		t.Error("QueryID not assigned")
	}
}
