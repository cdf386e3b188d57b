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

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	datusadapters "github.com/pvrraju/Datus-adapters"

	// register all shipped dialects
	_ "github.com/pvrraju/Datus-adapters/connectors"
)

var version = "0.1.0"

func main() {
	var configPath string
	var logLevel string

	root := &cobra.Command{
		Use:   "datus-adapters",
		Short: "Probe and query configured data sources through the dialect registry",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "datasources.yaml", "path to the datasources YAML file")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("datus-adapters v%s\n", version)
			fmt.Printf("Go version: %s\n", runtime.Version())
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "dialects",
		Short: "List registered dialects",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range datusadapters.Dialects() {
				fmt.Println(name)
			}
		},
	})

	pingCmd := &cobra.Command{
		Use:   "ping [source...]",
		Short: "Check connectivity of configured data sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(logLevel)
			cfg, err := datusadapters.LoadDataSourcesConfig(configPath)
			if err != nil {
				return err
			}

			sources := cfg.DataSources
			if len(args) > 0 {
				selected := make([]datusadapters.DataSource, 0, len(args))
				for _, name := range args {
					ds, err := cfg.DataSourceByName(name)
					if err != nil {
						return err
					}
					selected = append(selected, *ds)
				}
				sources = selected
			}

			pool := datusadapters.NewTaskPool(4, logger)
			for _, ds := range sources {
				pool.Enqueue("ping:"+ds.Name, func() error {
					ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
					defer cancel()

					conn, err := datusadapters.Create(ctx, ds.Type, ds.Configuration, logger)
					if err != nil {
						fmt.Printf("%s: FAILED (%v)\n", ds.Name, err)
						return err
					}
					defer conn.Close()

					serverVersion, err := conn.Ping(ctx)
					if err != nil {
						fmt.Printf("%s: FAILED (%v)\n", ds.Name, err)
						return err
					}

					fmt.Printf("%s: OK (%s, %s)\n", ds.Name, conn.Dialect(), serverVersion)
					return nil
				})
			}

			return pool.Join()
		},
	}
	root.AddCommand(pingCmd)

	var querySource, querySQL, queryFormat string
	queryCmd := &cobra.Command{
		Use:   "query",
		Short: "Run a statement against a configured data source",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(logLevel)
			conn, err := openSource(configPath, querySource, logger)
			if err != nil {
				return err
			}
			defer conn.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()

			result, err := conn.ExecuteQuery(ctx, querySQL, datusadapters.ResultFormat(queryFormat))
			if err != nil {
				return err
			}

			printResult(result)
			return nil
		},
	}
	queryCmd.Flags().StringVar(&querySource, "source", "", "data source name from config")
	queryCmd.Flags().StringVar(&querySQL, "sql", "", "statement to execute")
	queryCmd.Flags().StringVar(&queryFormat, "format", string(datusadapters.FormatRows), "result format (rows, maps, json)")
	_ = queryCmd.MarkFlagRequired("source")
	_ = queryCmd.MarkFlagRequired("sql")
	root.AddCommand(queryCmd)

	var tablesSource, tablesDatabase, tablesSchema string
	tablesCmd := &cobra.Command{
		Use:   "tables",
		Short: "List tables of a configured data source",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(logLevel)
			conn, err := openSource(configPath, tablesSource, logger)
			if err != nil {
				return err
			}
			defer conn.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()

			tables, err := conn.GetTables(ctx, tablesDatabase, tablesSchema)
			if err != nil {
				return err
			}

			for _, table := range tables {
				qualified := table.Name
				switch {
				case table.Schema != "":
					qualified = table.Schema + "." + table.Name
				case table.Database != "":
					qualified = table.Database + "." + table.Name
				}
				fmt.Println(qualified)
			}
			return nil
		},
	}
	tablesCmd.Flags().StringVar(&tablesSource, "source", "", "data source name from config")
	tablesCmd.Flags().StringVar(&tablesDatabase, "database", "", "database filter")
	tablesCmd.Flags().StringVar(&tablesSchema, "schema", "", "schema filter")
	_ = tablesCmd.MarkFlagRequired("source")
	root.AddCommand(tablesCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func openSource(configPath string, sourceName string, logger *slog.Logger) (datusadapters.Connector, error) {
	cfg, err := datusadapters.LoadDataSourcesConfig(configPath)
	if err != nil {
		return nil, err
	}

	ds, err := cfg.DataSourceByName(sourceName)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return datusadapters.Create(ctx, ds.Type, ds.Configuration, logger)
}

func printResult(result *datusadapters.ExecuteSQLResult) {
	switch {
	case result.JSON != nil:
		fmt.Println(string(result.JSON))
	case result.Maps != nil:
		for _, row := range result.Maps {
			fmt.Println(row)
		}
	case len(result.Columns) > 0:
		fmt.Println(result.Columns)
		for _, row := range result.Rows {
			fmt.Println(row)
		}
	default:
		fmt.Printf("rows affected: %d\n", result.RowsAffected)
	}
	fmt.Printf("-- %d row(s), %d ms, query id %s\n", result.RowCount(), result.DurationMs, result.QueryID)
}

func newLogger(level string) *slog.Logger {
	var slogLevel slog.Level
	if err := slogLevel.UnmarshalText([]byte(level)); err != nil {
		slogLevel = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slogLevel}))
}
