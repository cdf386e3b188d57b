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

	datusadapters "github.com/pvrraju/Datus-adapters"
	"github.com/snowflakedb/gosnowflake"
)

// SnowflakeDSN renders the gosnowflake DSN from the flat connection
// configuration. Extra driver parameters pass through via Params.
func SnowflakeDSN(cfg datusadapters.ConnectionConfig) (string, error) {
	sfCfg := &gosnowflake.Config{
		Account:   cfg.Account,
		User:      cfg.Username,
		Password:  cfg.Password,
		Database:  cfg.Database,
		Schema:    cfg.Schema,
		Warehouse: cfg.Warehouse,
		Role:      cfg.Role,
	}

	if len(cfg.Params) > 0 {
		sfCfg.Params = make(map[string]*string, len(cfg.Params))
		for key, value := range cfg.Params {
			v := value
			sfCfg.Params[key] = &v
		}
	}

	dsn, err := gosnowflake.DSN(sfCfg)
	if err != nil {
		return "", fmt.Errorf("failed to build snowflake dsn: %w", err)
	}
	return dsn, nil
}

func NewSnowflakeConnection(cfg datusadapters.ConnectionConfig) (*sql.DB, error) {
	dsn, err := SnowflakeDSN(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("snowflake", dsn)
	if err != nil {
		return nil, err
	}

	applyPoolSettings(db, cfg)
	return db, nil
}
