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

package api_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/osmxml/api"
	"m4o.io/osmxml/model"
)

const capabilities = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6" generator="OpenStreetMap server" copyright="OpenStreetMap and contributors">
  <api>
    <version minimum="0.6" maximum="0.6"/>
    <area maximum="0.25"/>
    <note_area maximum="25"/>
    <tracepoints per_page="5000"/>
    <waynodes maximum="2000"/>
    <relationmembers maximum="32000"/>
    <changesets maximum_elements="10000" default_query_limit="100" maximum_query_limit="100"/>
    <timeout seconds="300"/>
    <status database="online" api="online" gpx="online"/>
  </api>
  <policy>
    <imagery>
      <blacklist regex=".*\.google(apis)?\..*/.*"/>
      <blacklist regex="http://xdworld\.vworld\.kr:8080/.*"/>
    </imagery>
  </policy>
</osm>`

func TestClient_GetCapabilities(t *testing.T) {
	s := newServer(t, map[string]response{"capabilities": {http.StatusOK, capabilities}})

	caps, err := s.client(t).GetCapabilities(context.Background())
	require.NoError(t, err)

	assert.Equal(t, &api.Capabilities{
		MinVersion:           "0.6",
		MaxVersion:           "0.6",
		MaxArea:              0.25,
		MaxNoteArea:          25,
		TracepointsPerPage:   5000,
		MaxWayNodes:          2000,
		MaxRelationMembers:   32000,
		MaxChangesetElements: 10000,
		Timeout:              300,
		DatabaseStatus:       "online",
		APIStatus:            "online",
		GPXStatus:            "online",
		ImageryBlacklist: []string{
			`.*\.google(apis)?\..*/.*`,
			`http://xdworld\.vworld\.kr:8080/.*`,
		},
	}, caps)
	assert.True(t, caps.Online())
}

func TestParseCapabilities_Errors(t *testing.T) {
	test_cases := []struct {
		name string
		body string
	}{
		{"no api element", `<osm version="0.6"/>`},
		{"bad number", `<osm version="0.6"><api><waynodes maximum="lots"/></api></osm>`},
	}

	for _, tc := range test_cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := api.ParseCapabilities([]byte(tc.body))
			assert.ErrorIs(t, err, model.ErrFormat)
		})
	}

	caps, err := api.ParseCapabilities([]byte(`<osm version="0.6"><api><status api="offline"/></api></osm>`))
	require.NoError(t, err)
	assert.False(t, caps.Online())
	assert.Zero(t, caps.MaxWayNodes)
}
