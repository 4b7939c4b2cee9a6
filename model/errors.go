// Copyright 2017-25 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package model

import (
	"errors"
	"fmt"
)

var (
	// ErrArgument is the class of errors raised for invalid caller input.
	ErrArgument = errors.New("invalid argument")

	// ErrFormat is the class of errors raised for malformed field values.
	ErrFormat = errors.New("invalid format")

	// ErrGeometry is the class of errors raised when geometry cannot be derived.
	ErrGeometry = errors.New("geometry error")

	// ErrNoDatabase indicates that an operation needs the object to be
	// attached to a database.
	ErrNoDatabase = errors.New("object is not attached to a database")

	// ErrNotFound indicates that a referenced object is absent from the database.
	ErrNotFound = errors.New("object not found")
)

// ArgumentError indicates invalid caller input such as a bad id, an unknown
// entity type or an out of range coordinate.
type ArgumentError struct {
	Name   string
	Value  string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Name, e.Value, e.Reason)
}

func (e *ArgumentError) Unwrap() error { return ErrArgument }

// FormatError indicates a field value that does not have the required format.
type FormatError struct {
	Field string
	Value string
	Err   error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
	}

	return fmt.Sprintf("invalid %s %q", e.Field, e.Value)
}

func (e *FormatError) Is(target error) bool { return target == ErrFormat }

func (e *FormatError) Unwrap() error { return e.Err }

// GeometryError indicates geometry that cannot be built from the object.
type GeometryError struct {
	Type   EntityType
	ID     ID
	Reason string
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("%s %d: %s", e.Type, e.ID, e.Reason)
}

func (e *GeometryError) Unwrap() error { return ErrGeometry }

// NotFoundError indicates a reference to an object the database does not hold.
type NotFoundError struct {
	Type EntityType
	ID   ID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found in database", e.Type, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

func noDatabase(t EntityType, id ID) error {
	return fmt.Errorf("%s %d: %w", t, id, ErrNoDatabase)
}
