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
	"errors"
	"fmt"
)

// ErrorKind classifies a failure surfaced by the registry or a connector.
type ErrorKind string

const (
	// KindUnknownDialect indicates a lookup of a dialect name with no
	// registered factory.
	KindUnknownDialect ErrorKind = "unknown_dialect"
	// KindDuplicateRegistration indicates a second registration attempt for
	// a dialect name that is already bound.
	KindDuplicateRegistration ErrorKind = "duplicate_registration"
	// KindConstruction indicates a connector could not be built, usually
	// because of invalid configuration or an unreachable endpoint.
	KindConstruction ErrorKind = "construction"
	// KindQuery indicates a statement failed at execution time.
	KindQuery ErrorKind = "query"
	// KindMetadata indicates an introspection call failed.
	KindMetadata ErrorKind = "metadata"
	// KindConnectionClosed indicates use of a connector after Close.
	KindConnectionClosed ErrorKind = "connection_closed"
)

// Error carries the dialect and operation context alongside the underlying
// driver error. Neither the registry nor the connectors retry; retry policy
// belongs to the caller.
type Error struct {
	Kind    ErrorKind
	Dialect string
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	var prefix string
	switch {
	case e.Dialect != "" && e.Op != "":
		prefix = fmt.Sprintf("%s: %s: %s", e.Dialect, e.Op, e.Message)
	case e.Dialect != "":
		prefix = fmt.Sprintf("%s: %s", e.Dialect, e.Message)
	default:
		prefix = e.Message
	}

	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", prefix, e.Cause)
	}
	return prefix
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates an error of the given kind without an underlying cause.
func NewError(kind ErrorKind, dialect string, op string, message string) *Error {
	return &Error{
		Kind:    kind,
		Dialect: dialect,
		Op:      op,
		Message: message,
	}
}

// WrapError attaches kind, dialect and operation context to an underlying
// error. Returns nil when err is nil.
func WrapError(err error, kind ErrorKind, dialect string, op string, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Kind:    kind,
		Dialect: dialect,
		Op:      op,
		Message: message,
		Cause:   err,
	}
}

// IsKind reports whether any error in the chain is an *Error of the
// given kind.
func IsKind(err error, kind ErrorKind) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Kind == kind {
			return true
		}
		err = e.Cause
	}
	return false
}
