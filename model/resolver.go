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

// Resolver looks up objects by id.  It is what an entity's database
// back-reference points at; the database owns its objects, the entity only
// uses the resolver for lookups.
type Resolver interface {
	GetNode(id ID) *Node
	GetWay(id ID) *Way
	GetRelation(id ID) *Relation

	// ReferencingWays returns the ways that list the node.
	ReferencingWays(nodeID ID) []*Way

	// ReferencingRelations returns the relations having the object as a member.
	ReferencingRelations(t EntityType, id ID) []*Relation
}

func resolveNode(r Resolver, id ID) (*Node, error) {
	if n := r.GetNode(id); n != nil {
		return n, nil
	}

	return nil, &NotFoundError{Type: NODE, ID: id}
}

func resolveWay(r Resolver, id ID) (*Way, error) {
	if w := r.GetWay(id); w != nil {
		return w, nil
	}

	return nil, &NotFoundError{Type: WAY, ID: id}
}

// Resolve returns the object a member refers to.
func (m Member) Resolve(r Resolver) (Entity, error) {
	var e Entity

	switch m.Type {
	case NODE:
		if n := r.GetNode(m.Ref); n != nil {
			e = n
		}
	case WAY:
		if w := r.GetWay(m.Ref); w != nil {
			e = w
		}
	case RELATION:
		if rel := r.GetRelation(m.Ref); rel != nil {
			e = rel
		}
	}

	if e == nil {
		return nil, &NotFoundError{Type: m.Type, ID: m.Ref}
	}

	return e, nil
}
