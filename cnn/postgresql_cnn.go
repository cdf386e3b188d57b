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

package cnn

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	datusadapters "github.com/pvrraju/Datus-adapters"
)

// PostgresqlDSN renders the lib/pq keyword/value connection string.
func PostgresqlDSN(cfg datusadapters.ConnectionConfig) string {
	sslMode := cfg.Params["sslmode"]
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.Username, cfg.Password, cfg.Database, sslMode)
}

func NewPostgresqlConnection(cfg datusadapters.ConnectionConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", PostgresqlDSN(cfg))
	if err != nil {
		return nil, err
	}

	applyPoolSettings(db, cfg)
	return db, nil
}
