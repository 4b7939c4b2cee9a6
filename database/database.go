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

// Package database holds parsed OSM objects in memory, indexed by id, and
// resolves the references between them.
//
// A Database is not safe for concurrent mutation.  Callers sharing one
// between goroutines must serialize access.
package database

import (
	"cmp"
	"io"
	"maps"
	"slices"

	"github.com/dhconnelly/rtreego"

	"m4o.io/osmxml/internal/encoder"
	"m4o.io/osmxml/model"
)

// Database is an in-memory store with one id index per object kind.
type Database struct {
	nodes     map[model.ID]*model.Node
	ways      map[model.ID]*model.Way
	relations map[model.ID]*model.Relation

	// spatial index over nodes, rebuilt on demand after nodes change
	rtree *rtreego.Rtree
}

var _ model.Resolver = (*Database)(nil)

func New() *Database {
	return &Database{
		nodes:     map[model.ID]*model.Node{},
		ways:      map[model.ID]*model.Way{},
		relations: map[model.ID]*model.Relation{},
	}
}

// AddNode inserts the node, replacing and detaching any node with the same id.
func (db *Database) AddNode(n *model.Node) {
	if old, ok := db.nodes[n.ID()]; ok && old != n {
		old.Detach()
	}

	db.nodes[n.ID()] = n
	n.Attach(db)
	db.rtree = nil
}

// AddWay inserts the way, replacing and detaching any way with the same id.
func (db *Database) AddWay(w *model.Way) {
	if old, ok := db.ways[w.ID()]; ok && old != w {
		old.Detach()
	}

	db.ways[w.ID()] = w
	w.Attach(db)
}

// AddRelation inserts the relation, replacing and detaching any relation with
// the same id.
func (db *Database) AddRelation(r *model.Relation) {
	if old, ok := db.relations[r.ID()]; ok && old != r {
		old.Detach()
	}

	db.relations[r.ID()] = r
	r.Attach(db)
}

// Add inserts an object of any kind.  It returns the database so that calls
// can be chained.
func (db *Database) Add(e model.Entity) (*Database, error) {
	switch v := e.(type) {
	case *model.Node:
		if v != nil {
			db.AddNode(v)
			return db, nil
		}
	case *model.Way:
		if v != nil {
			db.AddWay(v)
			return db, nil
		}
	case *model.Relation:
		if v != nil {
			db.AddRelation(v)
			return db, nil
		}
	}

	return db, &model.ArgumentError{Name: "object", Value: "<nil>", Reason: "must be a node, way or relation"}
}

// GetNode returns the node or nil.
func (db *Database) GetNode(id model.ID) *model.Node {
	return db.nodes[id]
}

// GetWay returns the way or nil.
func (db *Database) GetWay(id model.ID) *model.Way {
	return db.ways[id]
}

// GetRelation returns the relation or nil.
func (db *Database) GetRelation(id model.ID) *model.Relation {
	return db.relations[id]
}

// Get returns the object of the given kind, or nil.
func (db *Database) Get(t model.EntityType, id model.ID) model.Entity {
	switch t {
	case model.NODE:
		if n := db.nodes[id]; n != nil {
			return n
		}
	case model.WAY:
		if w := db.ways[id]; w != nil {
			return w
		}
	case model.RELATION:
		if r := db.relations[id]; r != nil {
			return r
		}
	}

	return nil
}

// Clear detaches every object then replaces the indexes with empty ones.
func (db *Database) Clear() {
	for _, n := range db.nodes {
		n.Detach()
	}

	for _, w := range db.ways {
		w.Detach()
	}

	for _, r := range db.relations {
		r.Detach()
	}

	db.nodes = map[model.ID]*model.Node{}
	db.ways = map[model.ID]*model.Way{}
	db.relations = map[model.ID]*model.Relation{}
	db.rtree = nil
}

// Nodes returns the nodes ordered by id.
func (db *Database) Nodes() []*model.Node {
	return sorted(db.nodes)
}

// Ways returns the ways ordered by id.
func (db *Database) Ways() []*model.Way {
	return sorted(db.ways)
}

// Relations returns the relations ordered by id.
func (db *Database) Relations() []*model.Relation {
	return sorted(db.relations)
}

// Len returns the total number of objects.
func (db *Database) Len() int {
	return len(db.nodes) + len(db.ways) + len(db.relations)
}

// Counts returns the number of objects of each kind.
func (db *Database) Counts() (nodes, ways, relations int) {
	return len(db.nodes), len(db.ways), len(db.relations)
}

// ReferencingWays returns the ways that list the node, ordered by id.
func (db *Database) ReferencingWays(nodeID model.ID) []*model.Way {
	var ways []*model.Way

	for _, w := range db.Ways() {
		if slices.Contains(w.NodeIDs(), nodeID) {
			ways = append(ways, w)
		}
	}

	return ways
}

// ReferencingRelations returns the relations that have the object as a
// member, ordered by id.
func (db *Database) ReferencingRelations(t model.EntityType, id model.ID) []*model.Relation {
	var rels []*model.Relation

	for _, r := range db.Relations() {
		if slices.ContainsFunc(r.Members(), func(m model.Member) bool { return m.Type == t && m.Ref == id }) {
			rels = append(rels, r)
		}
	}

	return rels
}

// WriteTo serializes the database as an OSM XML document: nodes first, then
// ways, then relations.
func (db *Database) WriteTo(w io.Writer) (int64, error) {
	return db.Document(encoder.DefaultVersion, encoder.DefaultGenerator).WriteTo(w)
}

// Document builds the XML document of the database contents.
func (db *Database) Document(version, generator string) *encoder.Document {
	doc := encoder.NewDocument(version, generator)

	for _, n := range db.Nodes() {
		doc.Node(n)
	}

	for _, w := range db.Ways() {
		doc.Way(w)
	}

	for _, r := range db.Relations() {
		doc.Relation(r)
	}

	return doc
}

func sorted[E model.Entity](m map[model.ID]E) []E {
	return slices.SortedFunc(maps.Values(m), func(a, b E) int {
		return cmp.Compare(a.ID(), b.ID())
	})
}
