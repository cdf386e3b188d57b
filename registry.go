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
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
)

// ConnectorFactory builds a connector bound to the given configuration. The
// factory validates the configuration before any network I/O and returns the
// connector in Connected state.
type ConnectorFactory func(ctx context.Context, cfg ConnectionConfig, logger *slog.Logger) (Connector, error)

// Registry is the process-wide mapping from dialect name to connector
// factory. Registration is expected at package init or plugin load time;
// lookups are read-only afterwards and safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]ConnectorFactory
	logger    *slog.Logger
}

// NewRegistry creates an empty registry. A nil logger disables logging.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		// noop logger by default
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Registry{
		factories: make(map[string]ConnectorFactory),
		logger:    logger,
	}
}

// Register binds a dialect name to a factory. A second registration for the
// same name fails with a duplicate_registration error and leaves the first
// binding intact, so repeated plugin loads cannot corrupt the registry.
func (r *Registry) Register(name string, factory ConnectorFactory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return NewError(KindDuplicateRegistration, name, "register", "dialect already registered")
	}

	r.factories[name] = factory
	r.logger.Debug("connector factory registered", "dialect", name)
	return nil
}

// Resolve returns the factory registered for the dialect name.
func (r *Registry) Resolve(name string) (ConnectorFactory, error) {
	r.mu.RLock()
	factory, exists := r.factories[name]
	r.mu.RUnlock()

	if !exists {
		return nil, NewError(KindUnknownDialect, name, "resolve", "no connector registered for dialect")
	}
	return factory, nil
}

// Create resolves the dialect and constructs a connector from the
// configuration. Construction-time validation failures propagate unchanged.
func (r *Registry) Create(ctx context.Context, name string, cfg ConnectionConfig, logger *slog.Logger) (Connector, error) {
	factory, err := r.Resolve(name)
	if err != nil {
		return nil, err
	}
	return factory(ctx, cfg, logger)
}

// Has reports whether a factory is registered for the dialect name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.factories[name]
	return exists
}

// Dialects returns the registered dialect names in sorted order.
func (r *Registry) Dialects() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clear removes all registrations. Intended for tests.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories = make(map[string]ConnectorFactory)
}

// DefaultRegistry is the registry connector packages self-register into
// from their init functions.
var DefaultRegistry = NewRegistry(nil)

// Register binds a dialect name to a factory in the default registry.
func Register(name string, factory ConnectorFactory) error {
	return DefaultRegistry.Register(name, factory)
}

// Resolve returns a factory from the default registry.
func Resolve(name string) (ConnectorFactory, error) {
	return DefaultRegistry.Resolve(name)
}

// Create constructs a connector via the default registry.
func Create(ctx context.Context, name string, cfg ConnectionConfig, logger *slog.Logger) (Connector, error) {
	return DefaultRegistry.Create(ctx, name, cfg, logger)
}

// Has reports whether the default registry knows the dialect name.
func Has(name string) bool {
	return DefaultRegistry.Has(name)
}

// Dialects lists dialect names known to the default registry.
func Dialects() []string {
	return DefaultRegistry.Dialects()
}
