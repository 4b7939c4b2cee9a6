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

package model_test

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/osmxml/model"
)

// resolver is a minimal in-memory model.Resolver.
type resolver struct {
	nodes     map[model.ID]*model.Node
	ways      map[model.ID]*model.Way
	relations map[model.ID]*model.Relation
}

func newResolver() *resolver {
	return &resolver{
		nodes:     map[model.ID]*model.Node{},
		ways:      map[model.ID]*model.Way{},
		relations: map[model.ID]*model.Relation{},
	}
}

func (r *resolver) GetNode(id model.ID) *model.Node { return r.nodes[id] }
func (r *resolver) GetWay(id model.ID) *model.Way { return r.ways[id] }
func (r *resolver) GetRelation(id model.ID) *model.Relation { return r.relations[id] }

func (r *resolver) ReferencingWays(nodeID model.ID) []*model.Way {
	var ways []*model.Way

	for _, w := range r.ways {
		for _, id := range w.NodeIDs() {
			if id == nodeID {
				ways = append(ways, w)
				break
			}
		}
	}

	return ways
}

func (r *resolver) ReferencingRelations(t model.EntityType, id model.ID) []*model.Relation {
	var rels []*model.Relation

	for _, rel := range r.relations {
		for _, m := range rel.Members() {
			if m.Type == t && m.Ref == id {
				rels = append(rels, rel)
				break
			}
		}
	}

	return rels
}

func (r *resolver) node(t *testing.T, id model.ID, lon, lat model.Degrees) *model.Node {
	n, err := model.NewNode(model.WithID(id), model.WithCoordinates(lon, lat))
	require.NoError(t, err)

	n.Attach(r)
	r.nodes[id] = n

	return n
}

func (r *resolver) way(t *testing.T, id model.ID, nodes ...model.ID) *model.Way {
	w, err := model.NewWay(model.WithID(id), model.WithNodes(nodes...))
	require.NoError(t, err)

	w.Attach(r)
	r.ways[id] = w

	return w
}

// square adds the corners of the unit square scaled by size at offset and
// returns their ids starting at first.
func (r *resolver) square(t *testing.T, first model.ID, offset, size model.Degrees) []model.ID {
	r.node(t, first, offset, offset)
	r.node(t, first+1, offset+size, offset)
	r.node(t, first+2, offset+size, offset+size)
	r.node(t, first+3, offset, offset+size)

	return []model.ID{first, first + 1, first + 2, first + 3, first}
}

func TestWay_IsClosed(t *testing.T) {
	test_cases := []struct {
		name     string
		nodes    []model.ID
		expected bool
	}{
		{"closed", []model.ID{1, 2, 3, 1}, true},
		{"open", []model.ID{1, 2, 3}, false},
		{"empty", nil, false},
		{"single", []model.ID{5}, false},
		{"degenerate pair", []model.ID{5, 5}, true},
	}

	for _, tc := range test_cases {
		t.Run(tc.name, func(t *testing.T) {
			w, err := model.NewWay(model.WithID(1), model.WithNodes(tc.nodes...))
			require.NoError(t, err)
			assert.Equal(t, tc.expected, w.IsClosed())
		})
	}
}

func TestNode_Point(t *testing.T) {
	n, err := model.NewNode(model.WithID(1), model.WithLonLat("1.5", "-2.25"))
	require.NoError(t, err)

	g, err := n.Geometry()
	require.NoError(t, err)
	assert.Equal(t, orb.Point{1.5, -2.25}, g)

	empty, err := model.NewNode(model.WithID(2))
	require.NoError(t, err)

	_, err = empty.Point()
	assert.ErrorIs(t, err, model.ErrGeometry)
}

func TestWay_LineString(t *testing.T) {
	r := newResolver()
	r.node(t, 1, 0, 0)
	r.node(t, 2, 1, 0)
	r.node(t, 3, 1, 1)

	w := r.way(t, 10, 1, 2, 3)

	ls, err := w.LineString()
	require.NoError(t, err)
	assert.Equal(t, orb.LineString{{0, 0}, {1, 0}, {1, 1}}, ls)

	g, err := w.Geometry()
	require.NoError(t, err)
	assert.Equal(t, ls, g)

	_, err = w.Polygon()
	assert.ErrorIs(t, err, model.ErrGeometry)
}

func TestWay_Polygon(t *testing.T) {
	r := newResolver()
	w := r.way(t, 10, r.square(t, 1, 0, 1)...)

	p, err := w.Polygon()
	require.NoError(t, err)
	require.Len(t, p, 1)
	assert.Len(t, p[0], 5)

	g, err := w.Geometry()
	require.NoError(t, err)
	assert.IsType(t, orb.Polygon{}, g)
}

func TestWay_GeometryErrors(t *testing.T) {
	r := newResolver()
	r.node(t, 1, 0, 0)

	short := r.way(t, 10, 1)
	_, err := short.LineString()
	assert.ErrorIs(t, err, model.ErrGeometry)

	triangle := r.way(t, 11, 1, 1)
	_, err = triangle.Polygon()
	assert.ErrorIs(t, err, model.ErrGeometry)

	missing := r.way(t, 12, 1, 2)
	_, err = missing.LineString()

	var nf *model.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, model.NODE, nf.Type)
	assert.Equal(t, model.ID(2), nf.ID)

	detached, err := model.NewWay(model.WithID(13), model.WithNodes(1, 2))
	require.NoError(t, err)

	_, err = detached.LineString()
	assert.ErrorIs(t, err, model.ErrNoDatabase)
}

func TestWay_Length(t *testing.T) {
	r := newResolver()
	r.node(t, 1, 0, 0)
	r.node(t, 2, 1, 0)

	w := r.way(t, 10, 1, 2)

	length, err := w.Length()
	require.NoError(t, err)
	assert.InDelta(t, 111195, length, 10)
}

func TestNode_Ways(t *testing.T) {
	r := newResolver()
	n := r.node(t, 1, 0, 0)
	r.node(t, 2, 1, 1)
	w := r.way(t, 10, 1, 2)
	r.way(t, 11, 2)

	ways, err := n.Ways()
	require.NoError(t, err)
	assert.Equal(t, []*model.Way{w}, ways)

	n.Detach()
	_, err = n.Ways()
	assert.ErrorIs(t, err, model.ErrNoDatabase)
}

func TestRelation_Geometry(t *testing.T) {
	rel, err := model.NewRelation(model.WithID(1))
	require.NoError(t, err)

	_, err = rel.Geometry()
	assert.ErrorIs(t, err, model.ErrGeometry)
}

func TestRelation_Polygon(t *testing.T) {
	r := newResolver()

	outer := r.square(t, 1, 0, 10)
	inner := r.square(t, 10, 2, 2)

	// outer boundary split over two open ways, the second one reversed
	r.way(t, 100, outer[0], outer[1], outer[2])
	r.way(t, 101, outer[0], outer[3], outer[2])
	r.way(t, 102, inner...)

	rel, err := model.NewRelation(
		model.WithID(1000),
		model.WithTags(map[string]string{"type": "multipolygon"}),
		model.WithMembers(
			model.Member{Type: model.WAY, Ref: 100, Role: "outer"},
			model.Member{Type: model.WAY, Ref: 101, Role: "outer"},
			model.Member{Type: model.WAY, Ref: 102, Role: "inner"},
			model.Member{Type: model.NODE, Ref: 1, Role: "label"},
		),
	)
	require.NoError(t, err)
	rel.Attach(r)

	mp, err := rel.Polygon()
	require.NoError(t, err)
	require.Len(t, mp, 1)
	require.Len(t, mp[0], 2)
	assert.Len(t, mp[0][0], 5)
	assert.Len(t, mp[0][1], 5)
}

func TestRelation_PolygonMissingWay(t *testing.T) {
	r := newResolver()
	r.way(t, 100, r.square(t, 1, 0, 1)...)

	rel, err := model.NewRelation(
		model.WithID(1000),
		model.WithMembers(
			model.Member{Type: model.WAY, Ref: 100, Role: "outer"},
			model.Member{Type: model.WAY, Ref: 999, Role: "inner"},
		),
	)
	require.NoError(t, err)

	_, err = rel.Polygon()
	assert.ErrorIs(t, err, model.ErrNoDatabase)

	rel.Attach(r)

	_, err = rel.Polygon()
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestRelation_PolygonUnclosed(t *testing.T) {
	r := newResolver()
	sq := r.square(t, 1, 0, 1)
	r.way(t, 100, sq[:3]...)

	rel, err := model.NewRelation(model.WithID(1000), model.WithMembers(model.Member{Type: model.WAY, Ref: 100}))
	require.NoError(t, err)
	rel.Attach(r)

	_, err = rel.Polygon()
	assert.ErrorIs(t, err, model.ErrGeometry)

	empty, err := model.NewRelation(model.WithID(1001))
	require.NoError(t, err)
	empty.Attach(r)

	_, err = empty.Polygon()
	assert.ErrorIs(t, err, model.ErrGeometry)
}

func TestRelation_MemberObjects(t *testing.T) {
	r := newResolver()
	n := r.node(t, 1, 0, 0)
	w := r.way(t, 2, 1)

	rel, err := model.NewRelation(
		model.WithID(3),
		model.WithMembers(
			model.Member{Type: model.NODE, Ref: 1},
			model.Member{Type: model.WAY, Ref: 2, Role: "street"},
		),
	)
	require.NoError(t, err)
	rel.Attach(r)
	r.relations[3] = rel

	objs, err := rel.MemberObjects()
	require.NoError(t, err)
	assert.Equal(t, []model.Entity{n, w}, objs)

	rels, err := w.Relations()
	require.NoError(t, err)
	assert.Equal(t, []*model.Relation{rel}, rels)
}
