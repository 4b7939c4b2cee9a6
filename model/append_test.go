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

package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/osmxml/model"
)

func TestWay_Append(t *testing.T) {
	n, err := model.NewNode(model.WithID(3), model.WithLonLat("1", "1"))
	require.NoError(t, err)

	w, err := model.NewWay(model.WithID(1))
	require.NoError(t, err)

	err = w.Append(
		model.IDRef(1),
		model.Seq(model.IDRef(2), model.Seq(model.NodeRef(n))),
		model.TagsItem(map[string]string{"highway": "service"}),
	)
	require.NoError(t, err)

	assert.Equal(t, []model.ID{1, 2, 3}, w.NodeIDs())
	assert.Equal(t, "highway=service", w.Tags.String())

	err = w.Append(model.MemberRef(model.Member{Type: model.NODE, Ref: 1}))
	assert.ErrorIs(t, err, model.ErrArgument)
}

func TestRelation_Append(t *testing.T) {
	r, err := model.NewRelation(model.WithID(1))
	require.NoError(t, err)

	err = r.Append(model.Seq(
		model.MemberRef(model.Member{Type: model.WAY, Ref: 10, Role: "outer"}),
		model.MemberRef(model.Member{Type: model.NODE, Ref: 11}),
	), model.TagsItem(map[string]string{"type": "multipolygon"}))
	require.NoError(t, err)

	assert.Equal(t, []model.Member{
		{Type: model.WAY, Ref: 10, Role: "outer"},
		{Type: model.NODE, Ref: 11},
	}, r.Members())

	err = r.Append(model.IDRef(5))
	assert.ErrorIs(t, err, model.ErrArgument)

	err = r.Append(model.MemberRef(model.Member{Type: model.EntityType(9), Ref: 1}))
	assert.ErrorIs(t, err, model.ErrArgument)
}

func TestNode_Append(t *testing.T) {
	n, err := model.NewNode(model.WithID(1))
	require.NoError(t, err)

	require.NoError(t, n.Append(model.TagsItem(map[string]string{"a": "1"}), model.Seq()))
	assert.Equal(t, "a=1", n.Tags.String())

	err = n.Append(model.IDRef(2))

	var ae *model.ArgumentError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "id", ae.Value)
}

func TestAppend_StopsAtFirstError(t *testing.T) {
	w, err := model.NewWay(model.WithID(1))
	require.NoError(t, err)

	err = w.Append(model.IDRef(1), model.MemberRef(model.Member{}), model.IDRef(2))
	assert.Error(t, err)
	assert.Equal(t, []model.ID{1}, w.NodeIDs())
}
