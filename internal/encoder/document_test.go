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

package encoder_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/osmxml/internal/encoder"
	"m4o.io/osmxml/model"
)

func TestDocument(t *testing.T) {
	n, err := model.NewNode(
		model.WithID(1),
		model.WithLonLat("1.0", "2.0"),
		model.WithUser("ab"),
		model.WithUID("42"),
		model.WithTimestamp("2024-01-02T03:04:05Z"),
		model.WithTags(map[string]string{"name": "x", "amenity": "bench"}),
	)
	require.NoError(t, err)

	w, err := model.NewWay(model.WithID(2), model.WithNodes(1, 3), model.WithVisible(false), model.WithVersion(4))
	require.NoError(t, err)

	r, err := model.NewRelation(model.WithID(3), model.WithChangeset(77),
		model.WithMembers(model.Member{Type: model.WAY, Ref: 2, Role: "outer"}))
	require.NoError(t, err)

	doc := encoder.NewDocument(encoder.DefaultVersion, "test")
	doc.Bounds(model.NewBoundingBox(-1, -2, 3, 4))
	doc.Entity(n)
	doc.Entity(w)
	doc.Entity(r)

	var buf bytes.Buffer
	_, err = doc.WriteTo(&buf)
	require.NoError(t, err)

	expected := `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6" generator="test">
  <bounds minlat="-2" minlon="-1" maxlat="4" maxlon="3"/>
  <node id="1" version="1" timestamp="2024-01-02T03:04:05Z" user="ab" uid="42" lat="2.0" lon="1.0">
    <tag k="amenity" v="bench"/>
    <tag k="name" v="x"/>
  </node>
  <way id="2" visible="false" version="4">
    <nd ref="1"/>
    <nd ref="3"/>
  </way>
  <relation id="3" version="1" changeset="77">
    <member type="way" ref="2" role="outer"/>
  </relation>
</osm>`
	assert.Equal(t, expected, strings.TrimSpace(buf.String()))
}

func TestDocument_Escaping(t *testing.T) {
	n, err := model.NewNode(
		model.WithID(1),
		model.WithUser("a&b"),
		model.WithTags(map[string]string{"name": `"quoted" <x> & 'y'`}),
	)
	require.NoError(t, err)

	doc := encoder.NewDocument(encoder.DefaultVersion, encoder.DefaultGenerator)
	doc.Node(n)

	var buf bytes.Buffer
	_, err = doc.WriteTo(&buf)
	require.NoError(t, err)

	parsed := etree.NewDocument()
	require.NoError(t, parsed.ReadFromBytes(buf.Bytes()))

	node := parsed.FindElement("/osm/node")
	require.NotNil(t, node)
	assert.Equal(t, "a&b", node.SelectAttrValue("user", ""))
	assert.Equal(t, `"quoted" <x> & 'y'`, node.FindElement("tag").SelectAttrValue("v", ""))
	assert.Equal(t, encoder.DefaultGenerator, parsed.Root().SelectAttrValue("generator", ""))
}
