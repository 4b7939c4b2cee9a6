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

package database

import (
	"fmt"
	"strconv"
	"time"

	"github.com/paulmach/osm"

	"m4o.io/osmxml/internal/encoder"
	"m4o.io/osmxml/model"
)

var osmTypes = map[model.EntityType]osm.Type{
	model.NODE:     osm.TypeNode,
	model.WAY:      osm.TypeWay,
	model.RELATION: osm.TypeRelation,
}

// ToOSM converts the database contents to github.com/paulmach/osm types.
func (db *Database) ToOSM() *osm.OSM {
	o := &osm.OSM{
		Version:   encoder.DefaultVersion,
		Generator: encoder.DefaultGenerator,
	}

	for _, n := range db.Nodes() {
		on := &osm.Node{
			ID:          osm.NodeID(n.ID()),
			User:        n.User,
			UserID:      userID(n.UID),
			Visible:     n.Visible,
			Version:     n.Version(),
			ChangesetID: osm.ChangesetID(n.Changeset),
			Timestamp:   timestamp(&n.Object),
			Tags:        tags(n.Tags),
		}

		if lon, lat, err := n.Coordinates(); err == nil {
			on.Lon, on.Lat = float64(lon), float64(lat)
		}

		o.Nodes = append(o.Nodes, on)
	}

	for _, w := range db.Ways() {
		ow := &osm.Way{
			ID:          osm.WayID(w.ID()),
			User:        w.User,
			UserID:      userID(w.UID),
			Visible:     w.Visible,
			Version:     w.Version(),
			ChangesetID: osm.ChangesetID(w.Changeset),
			Timestamp:   timestamp(&w.Object),
			Tags:        tags(w.Tags),
		}

		for _, id := range w.NodeIDs() {
			ow.Nodes = append(ow.Nodes, osm.WayNode{ID: osm.NodeID(id)})
		}

		o.Ways = append(o.Ways, ow)
	}

	for _, r := range db.Relations() {
		or := &osm.Relation{
			ID:          osm.RelationID(r.ID()),
			User:        r.User,
			UserID:      userID(r.UID),
			Visible:     r.Visible,
			Version:     r.Version(),
			ChangesetID: osm.ChangesetID(r.Changeset),
			Timestamp:   timestamp(&r.Object),
			Tags:        tags(r.Tags),
		}

		for _, m := range r.Members() {
			or.Members = append(or.Members, osm.Member{Type: osmTypes[m.Type], Ref: int64(m.Ref), Role: m.Role})
		}

		o.Relations = append(o.Relations, or)
	}

	return o
}

// FromOSM builds a database from github.com/paulmach/osm types.
func FromOSM(o *osm.OSM) (*Database, error) {
	db := New()

	for _, on := range o.Nodes {
		n, err := model.NewNode(append(metadata(int64(on.ID), on.User, on.UserID, on.Visible, on.Version, on.ChangesetID, on.Timestamp, on.Tags),
			model.WithCoordinates(model.Degrees(on.Lon), model.Degrees(on.Lat)))...)
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", on.ID, err)
		}

		db.AddNode(n)
	}

	for _, ow := range o.Ways {
		ids := make([]model.ID, len(ow.Nodes))
		for i, wn := range ow.Nodes {
			ids[i] = model.ID(wn.ID)
		}

		w, err := model.NewWay(append(metadata(int64(ow.ID), ow.User, ow.UserID, ow.Visible, ow.Version, ow.ChangesetID, ow.Timestamp, ow.Tags),
			model.WithNodes(ids...))...)
		if err != nil {
			return nil, fmt.Errorf("way %d: %w", ow.ID, err)
		}

		db.AddWay(w)
	}

	for _, or := range o.Relations {
		members := make([]model.Member, len(or.Members))

		for i, om := range or.Members {
			m, err := model.ParseMember(string(om.Type), strconv.FormatInt(om.Ref, 10), om.Role)
			if err != nil {
				return nil, fmt.Errorf("relation %d: %w", or.ID, err)
			}

			members[i] = m
		}

		r, err := model.NewRelation(append(metadata(int64(or.ID), or.User, or.UserID, or.Visible, or.Version, or.ChangesetID, or.Timestamp, or.Tags),
			model.WithMembers(members...))...)
		if err != nil {
			return nil, fmt.Errorf("relation %d: %w", or.ID, err)
		}

		db.AddRelation(r)
	}

	return db, nil
}

func metadata(id int64, user string, uid osm.UserID, visible bool, version int, cs osm.ChangesetID, ts time.Time, t osm.Tags) []model.Option {
	opts := []model.Option{
		model.WithID(model.ID(id)),
		model.WithUser(user),
		model.WithVisible(visible),
		model.WithChangeset(int64(cs)),
		model.WithTags(t.Map()),
	}

	if uid != 0 {
		opts = append(opts, model.WithUID(strconv.FormatInt(int64(uid), 10)))
	}

	if version > 0 {
		opts = append(opts, model.WithVersion(version))
	}

	if !ts.IsZero() {
		opts = append(opts, model.WithTimestamp(ts.UTC().Format(time.RFC3339)))
	}

	return opts
}

// userID converts a numeric uid.  Free-form uids have no osm.UserID.
func userID(uid string) osm.UserID {
	v, err := strconv.ParseInt(uid, 10, 64)
	if err != nil {
		return 0
	}

	return osm.UserID(v)
}

func timestamp(o *model.Object) time.Time {
	t, err := o.Time()
	if err != nil {
		return time.Time{}
	}

	return t.UTC()
}

func tags(t model.Tags) osm.Tags {
	if t.IsEmpty() {
		return nil
	}

	ot := make(osm.Tags, 0, len(t))
	for _, k := range t.Keys() {
		ot = append(ot, osm.Tag{Key: k, Value: t[k]})
	}

	return ot
}
