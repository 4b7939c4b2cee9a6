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
	"github.com/dhconnelly/rtreego"

	"m4o.io/osmxml/model"
)

// pad gives point entries a non-zero size, which the R-tree requires, and
// widens queries so that points on the boundary intersect.  The exact test
// is done with BoundingBox.Contains.
const pad = 1e-9

type indexedNode struct {
	node *model.Node
	lon  float64
	lat  float64
}

// Bounds implements rtreego.Spatial.
func (n *indexedNode) Bounds() rtreego.Rect {
	rect, _ := rtreego.NewRect(rtreego.Point{n.lon - pad, n.lat - pad}, []float64{2 * pad, 2 * pad})
	return rect
}

func (db *Database) spatialIndex() *rtreego.Rtree {
	if db.rtree != nil {
		return db.rtree
	}

	objs := make([]rtreego.Spatial, 0, len(db.nodes))

	for _, n := range db.nodes {
		lon, lat, err := n.Coordinates()
		if err != nil {
			continue
		}

		objs = append(objs, &indexedNode{node: n, lon: float64(lon), lat: float64(lat)})
	}

	db.rtree = rtreego.NewTree(2, 25, 50, objs...)

	return db.rtree
}

// NodesInBounds returns the nodes located inside the bounding box, ordered by
// id.  Nodes without coordinates are never returned.
func (db *Database) NodesInBounds(b *model.BoundingBox) []*model.Node {
	lonLength := float64(b.Right-b.Left) + 2*pad
	latLength := float64(b.Top-b.Bottom) + 2*pad

	query, err := rtreego.NewRect(rtreego.Point{float64(b.Left) - pad, float64(b.Bottom) - pad}, []float64{lonLength, latLength})
	if err != nil {
		return nil
	}

	found := map[model.ID]*model.Node{}

	for _, s := range db.spatialIndex().SearchIntersect(query) {
		in := s.(*indexedNode)
		if b.Contains(model.Degrees(in.lat), model.Degrees(in.lon)) {
			found[in.node.ID()] = in.node
		}
	}

	return sorted(found)
}
