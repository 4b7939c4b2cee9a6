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

// Package model contains the OpenStreetMap object model shared by the XML
// parser, the in-memory database and the API client.
package model

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/paulmach/orb"
)

// EntityType is an enumeration of OSM object kinds.
type EntityType int32

const (
	// NODE denotes a node.
	NODE EntityType = iota

	// WAY denotes a way.
	WAY

	// RELATION denotes a relation.
	RELATION
)

var entityTypeNames = [...]string{"node", "way", "relation"}

// String returns the name used for the kind in OSM XML and API paths.
func (t EntityType) String() string {
	if t < NODE || t > RELATION {
		return fmt.Sprintf("EntityType(%d)", int32(t))
	}

	return entityTypeNames[t]
}

// Valid reports whether t is one of NODE, WAY or RELATION.
func (t EntityType) Valid() bool {
	return t >= NODE && t <= RELATION
}

// ParseEntityType converts "node", "way" or "relation" to an EntityType.
func ParseEntityType(s string) (EntityType, error) {
	for i, name := range entityTypeNames {
		if s == name {
			return EntityType(i), nil
		}
	}

	return 0, &ArgumentError{Name: "type", Value: s, Reason: "must be one of node, way or relation"}
}

// Entity is implemented by *Node, *Way and *Relation.
type Entity interface {
	isEntity() // prevents extensions

	ID() ID

	Type() EntityType

	GetTags() Tags

	// Owner returns the database the entity is attached to, or nil.
	Owner() Resolver

	Attach(db Resolver)

	Detach()

	Append(items ...Item) error

	Geometry() (orb.Geometry, error)
}

var timestampPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(Z|[+-]\d{2}:\d{2})$`)

// Object holds the identity and metadata shared by Node, Way and Relation.
type Object struct {
	id        ID
	version   int
	timestamp string
	db        Resolver

	User      string
	UID       string
	Changeset int64
	Visible   bool
	Tags      Tags
}

func newObject(o *options) (Object, error) {
	obj := Object{
		version:   1,
		User:      o.user,
		UID:       o.uid,
		Changeset: o.changeset,
		Visible:   o.visible,
		Tags:      Tags{},
	}

	if o.id != nil {
		obj.id = *o.id
	} else {
		obj.id = o.allocator.Next()
	}

	if err := obj.SetVersion(o.version); err != nil {
		return Object{}, err
	}

	if err := obj.SetTimestamp(o.timestamp); err != nil {
		return Object{}, err
	}

	obj.Tags.Merge(o.tags)

	return obj, nil
}

// ID returns the immutable id assigned at construction.
func (o *Object) ID() ID {
	return o.id
}

func (o *Object) Version() int {
	return o.version
}

// SetVersion sets the version, which must be positive.
func (o *Object) SetVersion(v int) error {
	if v <= 0 {
		return &ArgumentError{Name: "version", Value: fmt.Sprint(v), Reason: "must be a positive integer"}
	}

	o.version = v

	return nil
}

func (o *Object) Timestamp() string {
	return o.timestamp
}

// SetTimestamp sets the timestamp.  The empty string clears it; any other
// value must look like 2006-01-02T15:04:05Z or carry a ±hh:mm offset.
func (o *Object) SetTimestamp(ts string) error {
	if ts != "" && !timestampPattern.MatchString(ts) {
		return &FormatError{Field: "timestamp", Value: ts}
	}

	o.timestamp = ts

	return nil
}

// Time returns the parsed timestamp, or the zero time if none is set.
func (o *Object) Time() (time.Time, error) {
	if o.timestamp == "" {
		return time.Time{}, nil
	}

	t, err := time.Parse(time.RFC3339, o.timestamp)
	if err != nil {
		return time.Time{}, &FormatError{Field: "timestamp", Value: o.timestamp, Err: err}
	}

	return t, nil
}

func (o *Object) GetTags() Tags {
	return o.Tags
}

// Tag returns the value of an arbitrary tag.
func (o *Object) Tag(key string) (string, bool) {
	return o.Tags.Get(key)
}

// SetTag sets an arbitrary tag, replacing any previous value.
func (o *Object) SetTag(key, value string) {
	if o.Tags == nil {
		o.Tags = Tags{}
	}

	o.Tags.Set(key, value)
}

// TagFlag reports whether the tag holds a boolean truth value: true, yes or 1.
func (o *Object) TagFlag(key string) bool {
	v, ok := o.Tags.Get(key)
	if !ok {
		return false
	}

	switch strings.TrimSpace(v) {
	case "true", "yes", "1":
		return true
	default:
		return false
	}
}

// AppendTags merges tags, overwriting existing keys.
func (o *Object) AppendTags(tags map[string]string) {
	if o.Tags == nil {
		o.Tags = Tags{}
	}

	o.Tags.Merge(tags)
}

func (o *Object) Owner() Resolver {
	return o.db
}

// Attach sets the database back-reference.  It does not add the object to
// the database.
func (o *Object) Attach(db Resolver) {
	o.db = db
}

// Detach clears the database back-reference.
func (o *Object) Detach() {
	o.db = nil
}

func (o *Object) resolver(t EntityType) (Resolver, error) {
	if o.db == nil {
		return nil, noDatabase(t, o.id)
	}

	return o.db, nil
}
