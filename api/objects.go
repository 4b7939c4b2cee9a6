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

package api

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/destel/rill"

	"m4o.io/osmxml/database"
	"m4o.io/osmxml/model"
)

func checkKind(t model.EntityType) error {
	if !t.Valid() {
		return &model.ArgumentError{Name: "kind", Value: fmt.Sprint(int32(t)), Reason: "must be node, way or relation"}
	}

	return nil
}

func checkID(id model.ID) error {
	if id <= 0 {
		return &model.ArgumentError{Name: "id", Value: id.String(), Reason: "must be a positive integer"}
	}

	return nil
}

func checkObject(t model.EntityType, id model.ID) error {
	if err := checkKind(t); err != nil {
		return err
	}

	return checkID(id)
}

// find returns the object of kind t with the given id.
func find(objs []model.Entity, t model.EntityType, id model.ID) (model.Entity, error) {
	for _, o := range objs {
		if o.Type() == t && o.ID() == id {
			return o, nil
		}
	}

	return nil, &model.NotFoundError{Type: t, ID: id}
}

// GetObject fetches the current version of one object.
func (c *Client) GetObject(ctx context.Context, t model.EntityType, id model.ID) (model.Entity, error) {
	if err := checkObject(t, id); err != nil {
		return nil, err
	}

	objs, err := c.objects(ctx, nil, t.String(), id.String())
	if err != nil {
		return nil, err
	}

	return find(objs, t, id)
}

func (c *Client) GetNode(ctx context.Context, id model.ID) (*model.Node, error) {
	o, err := c.GetObject(ctx, model.NODE, id)
	if err != nil {
		return nil, err
	}

	return o.(*model.Node), nil
}

func (c *Client) GetWay(ctx context.Context, id model.ID) (*model.Way, error) {
	o, err := c.GetObject(ctx, model.WAY, id)
	if err != nil {
		return nil, err
	}

	return o.(*model.Way), nil
}

func (c *Client) GetRelation(ctx context.Context, id model.ID) (*model.Relation, error) {
	o, err := c.GetObject(ctx, model.RELATION, id)
	if err != nil {
		return nil, err
	}

	return o.(*model.Relation), nil
}

// GetObjects fetches objects of one kind.  Ids are sent in batches, several
// batches in flight at once; the result keeps the order of the server's
// responses batch by batch.  The first failing batch fails the whole call.
func (c *Client) GetObjects(ctx context.Context, t model.EntityType, ids ...model.ID) ([]model.Entity, error) {
	if err := checkKind(t); err != nil {
		return nil, err
	}

	for _, id := range ids {
		if err := checkID(id); err != nil {
			return nil, err
		}
	}

	if len(ids) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	plural := t.String() + "s"

	batches := rill.Batch(rill.FromSlice(ids, nil), c.cfg.batchSize, -1)

	results := rill.OrderedMap(batches, c.cfg.concurrency, func(batch []model.ID) ([]model.Entity, error) {
		refs := make([]string, len(batch))
		for i, id := range batch {
			refs[i] = id.String()
		}

		return c.objects(ctx, url.Values{plural: {strings.Join(refs, ",")}}, plural)
	})

	fetched, err := rill.ToSlice(results)
	if err != nil {
		return nil, err
	}

	return slices.Concat(fetched...), nil
}

// GetMap fetches every object inside bbox, plus the nodes of the ways and
// the relations that reach into it.
func (c *Client) GetMap(ctx context.Context, bbox *model.BoundingBox) (*database.Database, error) {
	if bbox == nil {
		return nil, &model.ArgumentError{Name: "bbox", Value: "nil", Reason: "is required"}
	}

	if err := bbox.Validate(); err != nil {
		return nil, err
	}

	if bbox.Left > bbox.Right || bbox.Bottom > bbox.Top {
		return nil, &model.ArgumentError{Name: "bbox", Value: bbox.QueryString(), Reason: "corners are inverted"}
	}

	return c.database(ctx, url.Values{"bbox": {bbox.QueryString()}}, "map")
}

// GetHistory fetches every version of an object, oldest first.
func (c *Client) GetHistory(ctx context.Context, t model.EntityType, id model.ID) ([]model.Entity, error) {
	if err := checkObject(t, id); err != nil {
		return nil, err
	}

	return c.objects(ctx, nil, t.String(), id.String(), "history")
}

// GetVersion fetches one version of an object.
func (c *Client) GetVersion(ctx context.Context, t model.EntityType, id model.ID, version int) (model.Entity, error) {
	if err := checkObject(t, id); err != nil {
		return nil, err
	}

	if version < 1 {
		return nil, &model.ArgumentError{Name: "version", Value: strconv.Itoa(version), Reason: "must be a positive integer"}
	}

	objs, err := c.objects(ctx, nil, t.String(), id.String(), strconv.Itoa(version))
	if err != nil {
		return nil, err
	}

	return find(objs, t, id)
}

// GetFull fetches a way or relation together with everything it references:
// the nodes of a way, or the direct members of a relation and the nodes of
// its member ways.
func (c *Client) GetFull(ctx context.Context, t model.EntityType, id model.ID) (*database.Database, error) {
	if err := checkObject(t, id); err != nil {
		return nil, err
	}

	if t == model.NODE {
		return nil, &model.ArgumentError{Name: "kind", Value: t.String(), Reason: "must be way or relation"}
	}

	return c.database(ctx, nil, t.String(), id.String(), "full")
}

// GetWaysForNode fetches the ways that use a node.
func (c *Client) GetWaysForNode(ctx context.Context, id model.ID) ([]*model.Way, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}

	objs, err := c.objects(ctx, nil, model.NODE.String(), id.String(), "ways")
	if err != nil {
		return nil, err
	}

	return ofType[*model.Way](objs), nil
}

// GetRelationsFor fetches the relations an object is a member of.
func (c *Client) GetRelationsFor(ctx context.Context, t model.EntityType, id model.ID) ([]*model.Relation, error) {
	if err := checkObject(t, id); err != nil {
		return nil, err
	}

	objs, err := c.objects(ctx, nil, t.String(), id.String(), "relations")
	if err != nil {
		return nil, err
	}

	return ofType[*model.Relation](objs), nil
}

func ofType[E model.Entity](objs []model.Entity) []E {
	var out []E

	for _, o := range objs {
		if e, ok := o.(E); ok {
			out = append(out, e)
		}
	}

	return out
}
