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

package osmxml

import (
	"m4o.io/osmxml/model"
)

// Callbacks receives the objects of a document as each one is completed.
// OnNode, OnWay and OnRelation return true to accept the object, which
// stores it in the parser's database if it has one.  Returning false skips
// storage; parsing continues either way.
type Callbacks interface {
	OnStartDocument()
	OnNode(n *model.Node) bool
	OnWay(w *model.Way) bool
	OnRelation(r *model.Relation) bool
	OnEndDocument()
}

// DatabaseCallbacks accepts every object.  It is the default, so a parser
// with a database stores everything it reads.
type DatabaseCallbacks struct{}

var _ Callbacks = DatabaseCallbacks{}

func (DatabaseCallbacks) OnStartDocument() {}
func (DatabaseCallbacks) OnNode(*model.Node) bool { return true }
func (DatabaseCallbacks) OnWay(*model.Way) bool { return true }
func (DatabaseCallbacks) OnRelation(*model.Relation) bool { return true }
func (DatabaseCallbacks) OnEndDocument() {}

// ObjectList collects every object, whatever its kind, in document order.
// It suits API responses that hold only a few objects.
type ObjectList struct {
	objects []model.Entity
}

var _ Callbacks = (*ObjectList)(nil)

func (l *ObjectList) OnStartDocument() {
	l.objects = nil
}

func (l *ObjectList) OnNode(n *model.Node) bool {
	l.objects = append(l.objects, n)
	return true
}

func (l *ObjectList) OnWay(w *model.Way) bool {
	l.objects = append(l.objects, w)
	return true
}

func (l *ObjectList) OnRelation(r *model.Relation) bool {
	l.objects = append(l.objects, r)
	return true
}

func (l *ObjectList) OnEndDocument() {}

// Objects returns the objects collected by the last parse.
func (l *ObjectList) Objects() []model.Entity {
	return l.objects
}

// CallbackFuncs adapts plain functions to Callbacks.  A nil function accepts
// the object.
type CallbackFuncs struct {
	StartDocument func()
	Node          func(*model.Node) bool
	Way           func(*model.Way) bool
	Relation      func(*model.Relation) bool
	EndDocument   func()
}

var _ Callbacks = CallbackFuncs{}

func (f CallbackFuncs) OnStartDocument() {
	if f.StartDocument != nil {
		f.StartDocument()
	}
}

func (f CallbackFuncs) OnNode(n *model.Node) bool {
	return f.Node == nil || f.Node(n)
}

func (f CallbackFuncs) OnWay(w *model.Way) bool {
	return f.Way == nil || f.Way(w)
}

func (f CallbackFuncs) OnRelation(r *model.Relation) bool {
	return f.Relation == nil || f.Relation(r)
}

func (f CallbackFuncs) OnEndDocument() {
	if f.EndDocument != nil {
		f.EndDocument()
	}
}
