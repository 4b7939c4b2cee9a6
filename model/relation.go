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

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Relation is a multipurpose data structure that documents a relationship
// between two or more data entities (nodes, ways, and/or other relations).
type Relation struct {
	Object

	members []Member
}

var _ Entity = (*Relation)(nil)

// NewRelation builds a relation.  Every member type must be valid.
func NewRelation(opts ...Option) (*Relation, error) {
	o := buildOptions(opts)

	obj, err := newObject(o)
	if err != nil {
		return nil, err
	}

	r := &Relation{Object: obj}

	for _, m := range o.members {
		if err := r.AppendMember(m); err != nil {
			return nil, err
		}
	}

	return r, nil
}

func (r *Relation) isEntity() {}

func (r *Relation) Type() EntityType { return RELATION }

// Members returns a copy of the members.
func (r *Relation) Members() []Member {
	return slices.Clone(r.members)
}

func (r *Relation) AppendMember(m Member) error {
	if !m.Type.Valid() {
		return &ArgumentError{Name: "member type", Value: m.Type.String(), Reason: "must be one of node, way or relation"}
	}

	r.members = append(r.members, m)

	return nil
}

// Append accepts tags, members and sequences of them.
func (r *Relation) Append(items ...Item) error {
	return appendItems(r, items)
}

func (r *Relation) appendOne(item Item) (bool, error) {
	switch item.kind {
	case ItemTags:
		r.AppendTags(item.tags)
	case ItemMember:
		if err := r.AppendMember(item.member); err != nil {
			return true, err
		}
	default:
		return false, nil
	}

	return true, nil
}

// MemberObjects resolves every member through the attached database.
func (r *Relation) MemberObjects() ([]Entity, error) {
	db, err := r.resolver(RELATION)
	if err != nil {
		return nil, err
	}

	objs := make([]Entity, len(r.members))

	for i, m := range r.members {
		e, err := m.Resolve(db)
		if err != nil {
			return nil, err
		}

		objs[i] = e
	}

	return objs, nil
}

// Relations returns the relations of the attached database having this
// relation as a member.
func (r *Relation) Relations() ([]*Relation, error) {
	db, err := r.resolver(RELATION)
	if err != nil {
		return nil, err
	}

	return db.ReferencingRelations(RELATION, r.id), nil
}

// Geometry is not defined for a relation in general.  Use Polygon for
// multipolygons.
func (r *Relation) Geometry() (orb.Geometry, error) {
	return nil, &GeometryError{Type: RELATION, ID: r.id, Reason: "relations have no generic geometry"}
}

// Polygon assembles the way members into a multipolygon.  Members with role
// "inner" form holes; every other way member is an outer boundary.  Open
// ways are joined end to end into rings.
func (r *Relation) Polygon() (orb.MultiPolygon, error) {
	db, err := r.resolver(RELATION)
	if err != nil {
		return nil, err
	}

	var outer, inner [][]ID

	for _, m := range r.members {
		if m.Type != WAY {
			continue
		}

		w, err := resolveWay(db, m.Ref)
		if err != nil {
			return nil, err
		}

		if m.Role == "inner" {
			inner = append(inner, w.nodes)
		} else {
			outer = append(outer, w.nodes)
		}
	}

	if len(outer) == 0 {
		return nil, &GeometryError{Type: RELATION, ID: r.id, Reason: "no outer ways"}
	}

	outerRings, err := r.rings(db, outer)
	if err != nil {
		return nil, err
	}

	innerRings, err := r.rings(db, inner)
	if err != nil {
		return nil, err
	}

	mp := make(orb.MultiPolygon, len(outerRings))
	for i, ring := range outerRings {
		mp[i] = orb.Polygon{ring}
	}

	for _, hole := range innerRings {
		idx := 0

		for i, ring := range outerRings {
			if planar.RingContains(ring, hole[0]) {
				idx = i
				break
			}
		}

		mp[idx] = append(mp[idx], hole)
	}

	return mp, nil
}

// rings joins segments sharing end nodes into closed rings and resolves
// their coordinates.
func (r *Relation) rings(db Resolver, segments [][]ID) ([]orb.Ring, error) {
	var rings []orb.Ring

	remaining := slices.Clone(segments)

	for len(remaining) > 0 {
		ring := slices.Clone(remaining[0])
		remaining = remaining[1:]

		if len(ring) == 0 {
			return nil, &GeometryError{Type: RELATION, ID: r.id, Reason: "member way has no nodes"}
		}

		for len(ring) < 2 || ring[0] != ring[len(ring)-1] {
			i, next := joinable(ring[len(ring)-1], remaining)
			if i < 0 {
				return nil, &GeometryError{Type: RELATION, ID: r.id, Reason: "ring is not closed"}
			}

			ring = append(ring, next[1:]...)
			remaining = slices.Delete(remaining, i, i+1)
		}

		if len(ring) < 4 {
			return nil, &GeometryError{Type: RELATION, ID: r.id, Reason: "a ring needs at least 3 distinct nodes"}
		}

		pts := make(orb.Ring, len(ring))

		for i, id := range ring {
			n, err := resolveNode(db, id)
			if err != nil {
				return nil, err
			}

			if pts[i], err = n.Point(); err != nil {
				return nil, err
			}
		}

		rings = append(rings, pts)
	}

	return rings, nil
}

// joinable finds a segment starting or ending at id, oriented to start there.
func joinable(id ID, segments [][]ID) (int, []ID) {
	for i, s := range segments {
		if len(s) == 0 {
			continue
		}

		if s[0] == id {
			return i, s
		}

		if s[len(s)-1] == id {
			rev := slices.Clone(s)
			slices.Reverse(rev)

			return i, rev
		}
	}

	return -1, nil
}
