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
	"sort"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	datusadapters "github.com/pvrraju/Datus-adapters"
)

// MysqlDSN renders the go-sql-driver DSN for a MySQL-protocol endpoint.
// StarRocks speaks the same wire protocol, so its connection reuses this.
func MysqlDSN(cfg datusadapters.ConnectionConfig) string {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s",
		cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.Database)

	if len(cfg.Params) > 0 {
		params := make([]string, 0, len(cfg.Params))
		for key, value := range cfg.Params {
			params = append(params, fmt.Sprintf("%s=%s", key, value))
		}
		sort.Strings(params)
		dsn += "?" + strings.Join(params, "&")
	}

	return dsn
}

func NewMysqlConnection(cfg datusadapters.ConnectionConfig) (*sql.DB, error) {
	db, err := sql.Open("mysql", MysqlDSN(cfg))
	if err != nil {
		return nil, err
	}

	applyPoolSettings(db, cfg)
	return db, nil
}
