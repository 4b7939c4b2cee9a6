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
	"github.com/paulmach/orb"
)

// Node represents a specific point on the earth's surface defined by its
// latitude and longitude. Each node comprises at least an id number and a
// pair of coordinates.
//
// Coordinates are kept in the textual form they were given in so that they
// are written back unchanged.
type Node struct {
	Object

	lon string
	lat string
}

var _ Entity = (*Node)(nil)

// NewNode builds a node.  Coordinates given through WithLonLat must be
// numeric.
func NewNode(opts ...Option) (*Node, error) {
	o := buildOptions(opts)

	obj, err := newObject(o)
	if err != nil {
		return nil, err
	}

	n := &Node{Object: obj}

	if o.hasLonLat {
		if err := n.SetLon(o.lon); err != nil {
			return nil, err
		}

		if err := n.SetLat(o.lat); err != nil {
			return nil, err
		}
	}

	return n, nil
}

func (n *Node) isEntity() {}

func (n *Node) Type() EntityType { return NODE }

func (n *Node) Lon() string { return n.lon }

func (n *Node) Lat() string { return n.lat }

// SetLon sets the longitude from its textual form.
func (n *Node) SetLon(lon string) error {
	d, err := ParseDegrees(lon)
	if err != nil {
		return &FormatError{Field: "lon", Value: lon, Err: err}
	}

	if d < MinLon || d > MaxLon {
		return &FormatError{Field: "lon", Value: lon}
	}

	n.lon = lon

	return nil
}

// SetLat sets the latitude from its textual form.
func (n *Node) SetLat(lat string) error {
	d, err := ParseDegrees(lat)
	if err != nil {
		return &FormatError{Field: "lat", Value: lat, Err: err}
	}

	if d < MinLat || d > MaxLat {
		return &FormatError{Field: "lat", Value: lat}
	}

	n.lat = lat

	return nil
}

// SetCoordinates sets both coordinates from numbers.
func (n *Node) SetCoordinates(lon, lat Degrees) error {
	if err := n.SetLon(lon.String()); err != nil {
		return err
	}

	return n.SetLat(lat.String())
}

// HasCoordinates reports whether both coordinates are set.  Deleted nodes in
// a history response carry none.
func (n *Node) HasCoordinates() bool {
	return n.lon != "" && n.lat != ""
}

// Coordinates returns the numeric longitude and latitude.
func (n *Node) Coordinates() (lon, lat Degrees, err error) {
	if !n.HasCoordinates() {
		return 0, 0, &GeometryError{Type: NODE, ID: n.id, Reason: "node has no coordinates"}
	}

	// both were validated on assignment
	lon, _ = ParseDegrees(n.lon)
	lat, _ = ParseDegrees(n.lat)

	return lon, lat, nil
}

// Point returns the node location.
func (n *Node) Point() (orb.Point, error) {
	lon, lat, err := n.Coordinates()
	if err != nil {
		return orb.Point{}, err
	}

	return orb.Point{float64(lon), float64(lat)}, nil
}

func (n *Node) Geometry() (orb.Geometry, error) {
	p, err := n.Point()
	if err != nil {
		return nil, err
	}

	return p, nil
}

// Append accepts tags and sequences of tags.
func (n *Node) Append(items ...Item) error {
	return appendItems(n, items)
}

func (n *Node) appendOne(item Item) (bool, error) {
	if item.kind == ItemTags {
		n.AppendTags(item.tags)
		return true, nil
	}

	return false, nil
}

// Ways returns the ways of the attached database that reference the node.
func (n *Node) Ways() ([]*Way, error) {
	db, err := n.resolver(NODE)
	if err != nil {
		return nil, err
	}

	return db.ReferencingWays(n.id), nil
}

// Relations returns the relations of the attached database having the node
// as a member.
func (n *Node) Relations() ([]*Relation, error) {
	db, err := n.resolver(NODE)
	if err != nil {
		return nil, err
	}

	return db.ReferencingRelations(NODE, n.id), nil
}
