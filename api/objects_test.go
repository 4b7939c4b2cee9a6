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

func ids(objs []model.Entity) []model.ID {
	out := make([]model.ID, len(objs))
	for i, o := range objs {
		out[i] = o.ID()
	}

	return out
}

func TestClient_GetObject(t *testing.T) {
	s := newServer(t, map[string]response{
		"node/1":     ok(`<node id="1" version="4" user="alice" uid="7" lat="51.5" lon="-0.1"><tag k="amenity" v="pub"/></node>`),
		"way/2":      ok(`<way id="2"><nd ref="1"/><nd ref="3"/></way>`),
		"relation/3": ok(`<relation id="3"><member type="way" ref="2" role="outer"/></relation>`),
	})
	c := s.client(t)
	ctx := context.Background()

	n, err := c.GetNode(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, n.Version())
	assert.Equal(t, "alice", n.User)
	assert.Equal(t, "7", n.UID)
	assert.Equal(t, "51.5", n.Lat())
	assert.Nil(t, n.Owner())

	amenity, found := n.Tag("amenity")
	assert.True(t, found)
	assert.Equal(t, "pub", amenity)

	w, err := c.GetWay(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []model.ID{1, 3}, w.NodeIDs())

	r, err := c.GetRelation(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, []model.Member{{Type: model.WAY, Ref: 2, Role: "outer"}}, r.Members())

	o, err := c.GetObject(ctx, model.WAY, 2)
	require.NoError(t, err)
	assert.Equal(t, model.WAY, o.Type())

	_, err = c.GetRelation(ctx, 4)
	assert.ErrorIs(t, err, api.ErrNotFound)
}

func TestClient_GetObjects(t *testing.T) {
	s := newServer(t, map[string]response{
		"nodes?nodes=1%2C2": ok(`<node id="1" lat="1" lon="1"/><node id="2" lat="1" lon="1"/>`),
		"nodes?nodes=3%2C4": ok(`<node id="3" lat="1" lon="1"/><node id="4" lat="1" lon="1"/>`),
		"nodes?nodes=5":     ok(`<node id="5" lat="1" lon="1"/>`),
	})
	c := s.client(t, api.WithBatchSize(2), api.WithConcurrency(3))

	objs, err := c.GetObjects(context.Background(), model.NODE, 1, 2, 3, 4, 5)
	require.NoError(t, err)
	assert.Equal(t, []model.ID{1, 2, 3, 4, 5}, ids(objs))
	assert.Equal(t, int32(3), s.hits.Load())

	none, err := c.GetObjects(context.Background(), model.WAY)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestClient_GetObjectsFailingBatch(t *testing.T) {
	s := newServer(t, map[string]response{
		"ways?ways=1": ok(`<way id="1"/>`),
		"ways?ways=2": {http.StatusGone, "deleted"},
	})
	c := s.client(t, api.WithBatchSize(1))

	_, err := c.GetObjects(context.Background(), model.WAY, 1, 2)
	assert.ErrorIs(t, err, api.ErrGone)
}

func TestClient_GetMap(t *testing.T) {
	s := newServer(t, map[string]response{
		"map?bbox=-0.2%2C51.5%2C-0.1%2C51.6": ok(`
  <bounds minlat="51.5" minlon="-0.2" maxlat="51.6" maxlon="-0.1"/>
  <node id="1" lat="51.55" lon="-0.15"/>
  <node id="2" lat="51.56" lon="-0.14"/>
  <way id="3"><nd ref="1"/><nd ref="2"/></way>`),
	})
	c := s.client(t)

	db, err := c.GetMap(context.Background(), model.NewBoundingBox(-0.2, 51.5, -0.1, 51.6))
	require.NoError(t, err)

	nodes, ways, relations := db.Counts()
	assert.Equal(t, 2, nodes)
	assert.Equal(t, 1, ways)
	assert.Zero(t, relations)

	length, err := db.GetWay(3).Length()
	require.NoError(t, err)
	assert.Greater(t, length, 0.0)
}

func TestClient_History(t *testing.T) {
	s := newServer(t, map[string]response{
		"node/1/history": ok(`<node id="1" version="1" lat="1" lon="1"/><node id="1" version="2" lat="1.5" lon="1"/>`),
		"node/1/2":       ok(`<node id="1" version="2" lat="1.5" lon="1"/>`),
	})
	c := s.client(t)
	ctx := context.Background()

	history, err := c.GetHistory(ctx, model.NODE, 1)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 1, history[0].(*model.Node).Version())
	assert.Equal(t, 2, history[1].(*model.Node).Version())

	v, err := c.GetVersion(ctx, model.NODE, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, "1.5", v.(*model.Node).Lat())

	_, err = c.GetVersion(ctx, model.NODE, 1, 3)
	assert.ErrorIs(t, err, api.ErrNotFound)
}

func TestClient_GetFull(t *testing.T) {
	s := newServer(t, map[string]response{
		"way/10/full": ok(`
  <node id="1" lat="0" lon="0"/>
  <node id="2" lat="0" lon="1"/>
  <node id="3" lat="1" lon="1"/>
  <way id="10"><nd ref="1"/><nd ref="2"/><nd ref="3"/><nd ref="1"/></way>`),
	})
	c := s.client(t)

	db, err := c.GetFull(context.Background(), model.WAY, 10)
	require.NoError(t, err)

	w := db.GetWay(10)
	require.NotNil(t, w)

	poly, err := w.Polygon()
	require.NoError(t, err)
	assert.Len(t, poly[0], 4)
}

func TestClient_ReferencingObjects(t *testing.T) {
	s := newServer(t, map[string]response{
		"node/1/ways":      ok(`<way id="10"><nd ref="1"/></way><way id="11"><nd ref="1"/></way>`),
		"way/10/relations": ok(`<relation id="20"><member type="way" ref="10" role=""/></relation>`),
	})
	c := s.client(t)
	ctx := context.Background()

	ways, err := c.GetWaysForNode(ctx, 1)
	require.NoError(t, err)
	require.Len(t, ways, 2)
	assert.Equal(t, model.ID(11), ways[1].ID())

	rels, err := c.GetRelationsFor(ctx, model.WAY, 10)
	require.NoError(t, err)
	require.Len(t, rels, 1)
	assert.Equal(t, model.ID(20), rels[0].ID())
}
