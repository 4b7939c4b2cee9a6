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

package model

import (
	"slices"

	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
)

// EarthRadius is the mean radius of the earth in metres.
const EarthRadius = 6371010.0

// Way is an ordered list of node references that define a polyline, or a
// polygon when it is closed.
type Way struct {
	Object

	nodes []ID
}

var _ Entity = (*Way)(nil)

func NewWay(opts ...Option) (*Way, error) {
	o := buildOptions(opts)

	obj, err := newObject(o)
	if err != nil {
		return nil, err
	}

	return &Way{Object: obj, nodes: slices.Clone(o.nodes)}, nil
}

func (w *Way) isEntity() {}

func (w *Way) Type() EntityType { return WAY }

// NodeIDs returns a copy of the node references.
func (w *Way) NodeIDs() []ID {
	return slices.Clone(w.nodes)
}

func (w *Way) AppendNodeRef(id ID) {
	w.nodes = append(w.nodes, id)
}

// AppendNode appends the node's id, not the node.
func (w *Way) AppendNode(n *Node) {
	w.nodes = append(w.nodes, n.ID())
}

// IsClosed reports whether the way has at least two references and the
// first equals the last.
func (w *Way) IsClosed() bool {
	return len(w.nodes) >= 2 && w.nodes[0] == w.nodes[len(w.nodes)-1]
}

// Append accepts tags, node references, ids and sequences of them.
func (w *Way) Append(items ...Item) error {
	return appendItems(w, items)
}

func (w *Way) appendOne(item Item) (bool, error) {
	switch item.kind {
	case ItemTags:
		w.AppendTags(item.tags)
	case ItemNodeRef, ItemID:
		w.AppendNodeRef(item.id)
	default:
		return false, nil
	}

	return true, nil
}

// NodeObjects resolves the node references through the attached database.
func (w *Way) NodeObjects() ([]*Node, error) {
	db, err := w.resolver(WAY)
	if err != nil {
		return nil, err
	}

	nodes := make([]*Node, len(w.nodes))

	for i, id := range w.nodes {
		n, err := resolveNode(db, id)
		if err != nil {
			return nil, err
		}

		nodes[i] = n
	}

	return nodes, nil
}

func (w *Way) points() ([]orb.Point, error) {
	nodes, err := w.NodeObjects()
	if err != nil {
		return nil, err
	}

	pts := make([]orb.Point, len(nodes))

	for i, n := range nodes {
		p, err := n.Point()
		if err != nil {
			return nil, err
		}

		pts[i] = p
	}

	return pts, nil
}

// LineString returns the way as a line.  It needs at least two nodes.
func (w *Way) LineString() (orb.LineString, error) {
	if len(w.nodes) < 2 {
		return nil, &GeometryError{Type: WAY, ID: w.id, Reason: "a line needs at least 2 nodes"}
	}

	pts, err := w.points()
	if err != nil {
		return nil, err
	}

	return orb.LineString(pts), nil
}

// Polygon returns the way as a single ring polygon.  The way must be closed
// and have at least three nodes.
func (w *Way) Polygon() (orb.Polygon, error) {
	if len(w.nodes) < 3 {
		return nil, &GeometryError{Type: WAY, ID: w.id, Reason: "a polygon needs at least 3 nodes"}
	}

	if !w.IsClosed() {
		return nil, &GeometryError{Type: WAY, ID: w.id, Reason: "a polygon needs a closed way"}
	}

	pts, err := w.points()
	if err != nil {
		return nil, err
	}

	return orb.Polygon{orb.Ring(pts)}, nil
}

// Geometry returns a polygon for closed ways of at least four references and
// a line otherwise.
func (w *Way) Geometry() (orb.Geometry, error) {
	if w.IsClosed() && len(w.nodes) >= 4 {
		return w.Polygon()
	}

	return w.LineString()
}

// Length returns the great circle length of the way in metres.
func (w *Way) Length() (float64, error) {
	ls, err := w.LineString()
	if err != nil {
		return 0, err
	}

	var length float64

	for i := 1; i < len(ls); i++ {
		a := s2.LatLngFromDegrees(ls[i-1].Lat(), ls[i-1].Lon())
		b := s2.LatLngFromDegrees(ls[i].Lat(), ls[i].Lon())
		length += a.Distance(b).Radians() * EarthRadius
	}

	return length, nil
}

// Relations returns the relations of the attached database having the way
// as a member.
func (w *Way) Relations() ([]*Relation, error) {
	db, err := w.resolver(WAY)
	if err != nil {
		return nil, err
	}

	return db.ReferencingRelations(WAY, w.id), nil
}
