package cnn

import (
	"database/sql"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"
	datusadapters "github.com/pvrraju/Datus-adapters"
)

func NewClickhouseConnection(cfg datusadapters.ConnectionConfig) (*sql.DB, error) {
	db := clickhouse.OpenDB(&clickhouse.Options{
		Addr: []string{fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password,
		},
	})

	applyPoolSettings(db, cfg)
	return db, nil
}
