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

// Package cnn builds database/sql handles for each supported dialect. It
// only knows how to turn a ConnectionConfig into a driver DSN; session
// lifecycle and the uniform contract live in the connectors package.
package cnn

import (
	"database/sql"

	datusadapters "github.com/pvrraju/Datus-adapters"
)

const (
	DefaultMaxOpenConns = 8
	DefaultMaxIdleConns = 4
)

func applyPoolSettings(db *sql.DB, cfg datusadapters.ConnectionConfig) {
	maxOpen := cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = DefaultMaxOpenConns
	}
	maxIdle := cfg.MaxIdleConns
	if maxIdle <= 0 {
		maxIdle = DefaultMaxIdleConns
	}

	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
}
