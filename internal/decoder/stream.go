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
	"encoding/xml"
	"errors"
	"io"
)

// StreamSource tokenizes the document with encoding/xml without building a
// tree, so memory use does not grow with the document.
type StreamSource struct{}

var _ Source = StreamSource{}

func (StreamSource) Run(r io.Reader, h Handler) error {
	d := xml.NewDecoder(r)

	if err := h.StartDocument(); err != nil {
		return err
	}

	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return malformed(err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			attrs := make(map[string]string, len(t.Attr))
			for _, a := range t.Attr {
				attrs[a.Name.Local] = a.Value
			}

			if err := h.StartElement(t.Name.Local, attrs); err != nil {
				return err
			}
		case xml.EndElement:
			if err := h.EndElement(t.Name.Local); err != nil {
				return err
			}
		}
	}

	return h.EndDocument()
}
