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

// Package osmxml parses OpenStreetMap XML documents into the objects of the
// model package, reporting each completed object to a Callbacks sink and
// optionally storing it in a database.Database.
package osmxml

import (
	"errors"
	"fmt"

	"m4o.io/osmxml/model"
)

const (
	Version05 = "0.5"
	Version06 = "0.6"
)

// SupportedVersions lists the osm root element versions the parser accepts.
var SupportedVersions = []string{Version05, Version06}

var ErrVersion = errors.New("unsupported osm version")

// VersionError reports a root element declaring an unsupported version.  It
// matches both ErrVersion and model.ErrFormat.
type VersionError struct {
	Version string
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("%s %q, expected one of %v", ErrVersion, e.Version, SupportedVersions)
}

func (e *VersionError) Is(target error) bool {
	return target == ErrVersion || target == model.ErrFormat
}

// ParseError reports malformed input: bad nesting, missing or invalid
// attributes, or XML that does not tokenize.
type ParseError struct {
	Element string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Element == "" {
		return fmt.Sprintf("osm xml: %v", e.Err)
	}

	return fmt.Sprintf("osm xml: <%s>: %v", e.Element, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

var (
	ErrUnexpectedElement = errors.New("unexpected element")
	ErrMissingAttribute  = errors.New("missing attribute")
	ErrNoRoot            = errors.New("no osm root element")
)

func unexpected(element, where string) error {
	return &ParseError{Element: element, Err: fmt.Errorf("%w %s", ErrUnexpectedElement, where)}
}
