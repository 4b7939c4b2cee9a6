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

func TestParseMember(t *testing.T) {
	test_cases := []struct {
		name     string
		typ      string
		ref      string
		role     string
		expected model.Member
		valid    bool
	}{
		{"node", "node", "1", "", model.Member{Type: model.NODE, Ref: 1}, true},
		{"way with role", "way", "22", "outer", model.Member{Type: model.WAY, Ref: 22, Role: "outer"}, true},
		{"relation", "relation", "333", "subarea", model.Member{Type: model.RELATION, Ref: 333, Role: "subarea"}, true},
		{"placeholder ref", "way", "-4", "", model.Member{Type: model.WAY, Ref: -4}, true},
		{"bad type", "area", "1", "", model.Member{}, false},
		{"upper case type", "Node", "1", "", model.Member{}, false},
		{"float ref", "node", "1.5", "", model.Member{}, false},
		{"empty ref", "node", "", "", model.Member{}, false},
	}

	for _, tc := range test_cases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := model.ParseMember(tc.typ, tc.ref, tc.role)
			if !tc.valid {
				assert.ErrorIs(t, err, model.ErrArgument)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expected, m)
		})
	}
}

func TestNewMember(t *testing.T) {
	m, err := model.NewMember(model.WAY, 5, "inner")
	require.NoError(t, err)
	assert.Equal(t, `way 5 "inner"`, m.String())

	_, err = model.NewMember(model.EntityType(-1), 5, "")
	assert.ErrorIs(t, err, model.ErrArgument)
}

func TestNewRelation_InvalidMember(t *testing.T) {
	_, err := model.NewRelation(model.WithMembers(model.Member{Type: model.EntityType(3), Ref: 1}))
	assert.ErrorIs(t, err, model.ErrArgument)
}
