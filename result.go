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

package datusadapters

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// ResultFormat selects the shape of the data inside an ExecuteSQLResult.
type ResultFormat string

const (
	// FormatRows returns column names plus positional row values.
	FormatRows ResultFormat = "rows"
	// FormatMaps returns one column-keyed map per row.
	FormatMaps ResultFormat = "maps"
	// FormatJSON returns the rows encoded as a JSON array of objects.
	FormatJSON ResultFormat = "json"
)

// ExecuteSQLResult is the outcome of one statement. Exactly one of Rows,
// Maps or JSON is populated, matching the requested format. The result is
// owned by the caller and never mutated after construction.
type ExecuteSQLResult struct {
	QueryID      string           `json:"query_id"`
	Dialect      string           `json:"dialect"`
	Columns      []string         `json:"columns,omitempty"`
	Rows         [][]any          `json:"rows,omitempty"`
	Maps         []map[string]any `json:"maps,omitempty"`
	JSON         []byte           `json:"json,omitempty"`
	RowsAffected int64            `json:"rows_affected,omitempty"`
	DurationMs   int64            `json:"duration_ms"`
}

// RowCount returns the number of data rows in the result regardless of the
// format it was built with. For DML results it is zero.
func (r *ExecuteSQLResult) RowCount() int {
	switch {
	case r.Rows != nil:
		return len(r.Rows)
	case r.Maps != nil:
		return len(r.Maps)
	}
	return 0
}

// BuildResult shapes scanned rows into the requested format. The columns and
// rows slices are adopted, not copied; callers must hand over ownership.
func BuildResult(dialect string, columns []string, rows [][]any, format ResultFormat, durationMs int64) (*ExecuteSQLResult, error) {
	result := &ExecuteSQLResult{
		QueryID:    uuid.NewString(),
		Dialect:    dialect,
		Columns:    columns,
		DurationMs: durationMs,
	}

	switch format {
	case FormatRows, "":
		result.Rows = rows
		if result.Rows == nil {
			result.Rows = [][]any{}
		}
	case FormatMaps:
		result.Maps = rowsToMaps(columns, rows)
	case FormatJSON:
		encoded, err := json.Marshal(rowsToMaps(columns, rows))
		if err != nil {
			return nil, fmt.Errorf("failed to encode result as json: %w", err)
		}
		result.JSON = encoded
	default:
		return nil, fmt.Errorf("unsupported result format: %s", format)
	}

	return result, nil
}

// BuildExecResult builds the result of a statement that returns no rows.
func BuildExecResult(dialect string, rowsAffected int64, durationMs int64) *ExecuteSQLResult {
	return &ExecuteSQLResult{
		QueryID:      uuid.NewString(),
		Dialect:      dialect,
		RowsAffected: rowsAffected,
		DurationMs:   durationMs,
	}
}

func rowsToMaps(columns []string, rows [][]any) []map[string]any {
	maps := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		rowData := make(map[string]any, len(columns))
		for i, colName := range columns {
			if i < len(row) {
				rowData[colName] = row[i]
			}
		}
		maps = append(maps, rowData)
	}
	return maps
}
