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

package osmxml

import (
	"fmt"

	"m4o.io/osmxml/internal/decoder"
	"m4o.io/osmxml/model"
)

// Backend selects the XML library that tokenizes the input.  Every backend
// produces the same objects.
type Backend int

const (
	// BackendStream tokenizes with encoding/xml without building a tree.
	BackendStream Backend = iota

	// BackendETree builds a github.com/beevik/etree document first.
	BackendETree

	// BackendXMLQuery builds a github.com/antchfx/xmlquery document first.
	BackendXMLQuery
)

// DefaultBackend is the backend used when none is configured.
const DefaultBackend = BackendStream

var backendNames = [...]string{"stream", "etree", "xmlquery"}

func (b Backend) String() string {
	if b < BackendStream || b > BackendXMLQuery {
		return fmt.Sprintf("Backend(%d)", int(b))
	}

	return backendNames[b]
}

// Backends lists every backend.
func Backends() []Backend {
	return []Backend{BackendStream, BackendETree, BackendXMLQuery}
}

// ParseBackend converts a backend name to a Backend.
func ParseBackend(s string) (Backend, error) {
	for i, name := range backendNames {
		if s == name {
			return Backend(i), nil
		}
	}

	return DefaultBackend, &model.ArgumentError{
		Name:   "backend",
		Value:  s,
		Reason: fmt.Sprintf("expected one of %v", backendNames),
	}
}

func (b Backend) source() decoder.Source {
	switch b {
	case BackendETree:
		return decoder.ETreeSource{}
	case BackendXMLQuery:
		return decoder.XMLQuerySource{}
	default:
		return decoder.StreamSource{}
	}
}
