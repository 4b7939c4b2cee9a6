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

// Package decoder contains the XML event sources that drive the OSM XML
// parser.
package decoder

import (
	"errors"
	"fmt"
	"io"
)

var ErrMalformedXML = errors.New("malformed xml")

// Handler receives the element events of one document.  An error returned
// by any method aborts the run and is returned from Source.Run unchanged.
type Handler interface {
	StartDocument() error
	StartElement(name string, attrs map[string]string) error
	EndElement(name string) error
	EndDocument() error
}

// Source reads an XML document and reports its elements to a Handler.
// Character data, comments and processing instructions are not reported.
type Source interface {
	Run(r io.Reader, h Handler) error
}

func malformed(err error) error {
	return fmt.Errorf("%w: %w", ErrMalformedXML, err)
}
