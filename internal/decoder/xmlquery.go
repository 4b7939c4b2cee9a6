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

	"github.com/antchfx/xmlquery"
)

// XMLQuerySource reads the document into an antchfx/xmlquery node tree and
// walks its element nodes depth first.
type XMLQuerySource struct{}

var _ Source = XMLQuerySource{}

func (XMLQuerySource) Run(r io.Reader, h Handler) error {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return malformed(err)
	}

	if err := h.StartDocument(); err != nil {
		return err
	}

	for n := doc.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == xmlquery.ElementNode {
			if err := walkNode(n, h); err != nil {
				return err
			}
		}
	}

	return h.EndDocument()
}

func walkNode(n *xmlquery.Node, h Handler) error {
	attrs := make(map[string]string, len(n.Attr))
	for _, a := range n.Attr {
		attrs[a.Name.Local] = a.Value
	}

	if err := h.StartElement(n.Data, attrs); err != nil {
		return err
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			if err := walkNode(c, h); err != nil {
				return err
			}
		}
	}

	return h.EndElement(n.Data)
}
