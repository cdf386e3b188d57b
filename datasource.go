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
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DataSource binds a dialect name to one set of connection parameters.
type DataSource struct {
	Name          string           `yaml:"name"`
	Type          string           `yaml:"type"`
	Configuration ConnectionConfig `yaml:"configuration"`
}

// ConnectionConfig is the flat set of connection parameters a connector is
// constructed from. Dialect-specific keys (Account, Warehouse, Catalog) are
// ignored by dialects that do not use them; each connector validates its own
// required subset at construction time.
type ConnectionConfig struct {
	Host         string            `yaml:"host"`
	Port         int               `yaml:"port"`
	Username     string            `yaml:"username"`
	Password     string            `yaml:"password"`
	Database     string            `yaml:"database,omitempty"`
	Schema       string            `yaml:"schema,omitempty"`
	Catalog      string            `yaml:"catalog,omitempty"`
	Warehouse    string            `yaml:"warehouse,omitempty"`
	Account      string            `yaml:"account,omitempty"`
	Role         string            `yaml:"role,omitempty"`
	MaxOpenConns int               `yaml:"max_open_conns,omitempty"`
	MaxIdleConns int               `yaml:"max_idle_conns,omitempty"`
	Params       map[string]string `yaml:"params,omitempty"`
}

// DataSourcesFileConfig is the on-disk YAML layout listing configured
// data sources.
type DataSourcesFileConfig struct {
	Version     string       `yaml:"version"`
	DataSources []DataSource `yaml:"datasources"`
}

// LoadDataSourcesConfig reads and decodes a data sources YAML file.
func LoadDataSourcesConfig(fileName string) (*DataSourcesFileConfig, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var cfg DataSourcesFileConfig
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode datasources config: %w", err)
	}

	return &cfg, nil
}

// DataSourceByName returns the named data source from the file config.
func (c *DataSourcesFileConfig) DataSourceByName(name string) (*DataSource, error) {
	for i := range c.DataSources {
		if c.DataSources[i].Name == name {
			return &c.DataSources[i], nil
		}
	}
	return nil, fmt.Errorf("datasource %q not found in config", name)
}

// ValidateRequired checks that the named configuration fields are set and
// returns a construction error listing the missing ones. Recognized field
// names match the YAML keys.
func ValidateRequired(dialect string, cfg ConnectionConfig, fields ...string) error {
	var missing []string
	for _, field := range fields {
		if !connectionFieldSet(cfg, field) {
			missing = append(missing, field)
		}
	}

	if len(missing) > 0 {
		return NewError(KindConstruction, dialect, "validate",
			fmt.Sprintf("missing required configuration: %s", strings.Join(missing, ", ")))
	}
	return nil
}

func connectionFieldSet(cfg ConnectionConfig, field string) bool {
	switch field {
	case "host":
		return cfg.Host != ""
	case "port":
		return cfg.Port != 0
	case "username":
		return cfg.Username != ""
	case "password":
		return cfg.Password != ""
	case "database":
		return cfg.Database != ""
	case "schema":
		return cfg.Schema != ""
	case "catalog":
		return cfg.Catalog != ""
	case "warehouse":
		return cfg.Warehouse != ""
	case "account":
		return cfg.Account != ""
	case "role":
		return cfg.Role != ""
	}
	return false
}
