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

package database_test

import (
	"testing"
	"time"

	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/osmxml/database"
	"m4o.io/osmxml/model"
)

func TestDatabase_ToOSM(t *testing.T) {
	db := database.New()
	db.AddNode(node(t, 1, 1.5, 2.5,
		model.WithUser("alice"),
		model.WithUID("42"),
		model.WithTimestamp("2024-01-02T03:04:05Z"),
		model.WithTags(map[string]string{"b": "2", "a": "1"})))
	db.AddWay(way(t, 2, 1, 1))
	db.AddRelation(relation(t, 3, model.Member{Type: model.WAY, Ref: 2, Role: "outer"}))

	o := db.ToOSM()

	require.Len(t, o.Nodes, 1)
	assert.Equal(t, osm.NodeID(1), o.Nodes[0].ID)
	assert.Equal(t, 1.5, o.Nodes[0].Lon)
	assert.Equal(t, 2.5, o.Nodes[0].Lat)
	assert.Equal(t, osm.UserID(42), o.Nodes[0].UserID)
	assert.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), o.Nodes[0].Timestamp)
	assert.Equal(t, osm.Tags{{Key: "a", Value: "1"}, {Key: "b", Value: "2"}}, o.Nodes[0].Tags)

	require.Len(t, o.Ways, 1)
	assert.Equal(t, osm.WayNodes{{ID: 1}, {ID: 1}}, o.Ways[0].Nodes)

	require.Len(t, o.Relations, 1)
	assert.Equal(t, osm.Members{{Type: osm.TypeWay, Ref: 2, Role: "outer"}}, o.Relations[0].Members)
}

func TestFromOSM(t *testing.T) {
	o := &osm.OSM{
		Nodes: osm.Nodes{
			{ID: 1, Lon: 1.5, Lat: 2.5, Visible: true, Version: 2, UserID: 7, Tags: osm.Tags{{Key: "k", Value: "v"}}},
		},
		Ways: osm.Ways{
			{ID: 2, Visible: true, Nodes: osm.WayNodes{{ID: 1}, {ID: 1}}},
		},
		Relations: osm.Relations{
			{ID: 3, Visible: true, Members: osm.Members{{Type: osm.TypeNode, Ref: 1, Role: "label"}}},
		},
	}

	db, err := database.FromOSM(o)
	require.NoError(t, err)

	n := db.GetNode(1)
	require.NotNil(t, n)
	assert.Equal(t, "1.5", n.Lon())
	assert.Equal(t, "2.5", n.Lat())
	assert.Equal(t, 2, n.Version())
	assert.Equal(t, "7", n.UID)
	assert.Equal(t, "k=v", n.Tags.String())

	require.NotNil(t, db.GetWay(2))
	assert.Equal(t, []model.ID{1, 1}, db.GetWay(2).NodeIDs())

	require.NotNil(t, db.GetRelation(3))
	assert.Equal(t, []model.Member{{Type: model.NODE, Ref: 1, Role: "label"}}, db.GetRelation(3).Members())

	bad := &osm.OSM{Relations: osm.Relations{{ID: 4, Members: osm.Members{{Type: "changeset", Ref: 1}}}}}
	_, err = database.FromOSM(bad)
	assert.ErrorIs(t, err, model.ErrArgument)
}
