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

package decoder

import (
	"io"

	"github.com/beevik/etree"
)

// ETreeSource reads the whole document into a beevik/etree tree and walks
// it depth first.
type ETreeSource struct{}

var _ Source = ETreeSource{}

func (ETreeSource) Run(r io.Reader, h Handler) error {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return malformed(err)
	}

	if err := h.StartDocument(); err != nil {
		return err
	}

	for _, el := range doc.ChildElements() {
		if err := walkElement(el, h); err != nil {
			return err
		}
	}

	return h.EndDocument()
}

func walkElement(el *etree.Element, h Handler) error {
	attrs := make(map[string]string, len(el.Attr))
	for _, a := range el.Attr {
		attrs[a.Key] = a.Value
	}

	if err := h.StartElement(el.Tag, attrs); err != nil {
		return err
	}

	for _, child := range el.ChildElements() {
		if err := walkElement(child, h); err != nil {
			return err
		}
	}

	return h.EndElement(el.Tag)
}
