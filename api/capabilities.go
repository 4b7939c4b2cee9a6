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

package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/antchfx/xmlquery"

	"m4o.io/osmxml/model"
)

var errNoAPIElement = errors.New("no <api> element")

// Capabilities describes the limits and status the server advertises.
type Capabilities struct {
	MinVersion string
	MaxVersion string

	MaxArea              float64 // square degrees per map request
	MaxNoteArea          float64
	TracepointsPerPage   int
	MaxWayNodes          int
	MaxRelationMembers   int
	MaxChangesetElements int
	Timeout              int // seconds

	DatabaseStatus string
	APIStatus      string
	GPXStatus      string

	ImageryBlacklist []string
}

// Online reports whether the server accepts reads.
func (c *Capabilities) Online() bool {
	return c.APIStatus == "online" || c.APIStatus == "readonly"
}

// GetCapabilities fetches the server capabilities document.
func (c *Client) GetCapabilities(ctx context.Context) (*Capabilities, error) {
	body, err := c.get(ctx, nil, "capabilities")
	if err != nil {
		return nil, err
	}

	return ParseCapabilities(body)
}

// ParseCapabilities reads a capabilities document.  Absent limits are left
// at zero.
func ParseCapabilities(body []byte) (*Capabilities, error) {
	doc, err := xmlquery.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("cannot parse capabilities: %w", err)
	}

	api := xmlquery.FindOne(doc, "/osm/api")
	if api == nil {
		return nil, &model.FormatError{Field: "capabilities", Value: "", Err: errNoAPIElement}
	}

	p := capabilitiesParser{api: api}
	caps := &Capabilities{
		MinVersion: p.attr("version", "minimum"),
		MaxVersion: p.attr("version", "maximum"),

		MaxArea:              p.floatAttr("area", "maximum"),
		MaxNoteArea:          p.floatAttr("note_area", "maximum"),
		TracepointsPerPage:   p.intAttr("tracepoints", "per_page"),
		MaxWayNodes:          p.intAttr("waynodes", "maximum"),
		MaxRelationMembers:   p.intAttr("relationmembers", "maximum"),
		MaxChangesetElements: p.intAttr("changesets", "maximum_elements"),
		Timeout:              p.intAttr("timeout", "seconds"),

		DatabaseStatus: p.attr("status", "database"),
		APIStatus:      p.attr("status", "api"),
		GPXStatus:      p.attr("status", "gpx"),
	}

	if p.err != nil {
		return nil, p.err
	}

	for _, n := range xmlquery.Find(doc, "/osm/policy/imagery/blacklist") {
		caps.ImageryBlacklist = append(caps.ImageryBlacklist, n.SelectAttr("regex"))
	}

	return caps, nil
}

// capabilitiesParser keeps the first conversion error.
type capabilitiesParser struct {
	api *xmlquery.Node
	err error
}

func (p *capabilitiesParser) attr(element, name string) string {
	n := p.api.SelectElement(element)
	if n == nil {
		return ""
	}

	return n.SelectAttr(name)
}

func (p *capabilitiesParser) intAttr(element, name string) int {
	s := p.attr(element, name)
	if s == "" || p.err != nil {
		return 0
	}

	v, err := strconv.Atoi(s)
	if err != nil {
		p.err = &model.FormatError{Field: element + "/@" + name, Value: s, Err: err}
	}

	return v
}

func (p *capabilitiesParser) floatAttr(element, name string) float64 {
	s := p.attr(element, name)
	if s == "" || p.err != nil {
		return 0
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		p.err = &model.FormatError{Field: element + "/@" + name, Value: s, Err: err}
	}

	return v
}
