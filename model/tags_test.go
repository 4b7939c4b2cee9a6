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

	"m4o.io/osmxml/model"
)

func TestTags(t *testing.T) {
	tags := model.Tags{}
	assert.True(t, tags.IsEmpty())
	assert.Equal(t, "", tags.String())

	tags.Set("name", "Main Street")
	tags.Set("highway", "primary")

	v, ok := tags.Get("name")
	assert.True(t, ok)
	assert.Equal(t, "Main Street", v)

	_, ok = tags.Get("ref")
	assert.False(t, ok)

	tags.Merge(map[string]string{"highway": "secondary", "ref": "B1"})

	assert.False(t, tags.IsEmpty())
	assert.Equal(t, []string{"highway", "name", "ref"}, tags.Keys())
	assert.Equal(t, "highway=secondary,name=Main Street,ref=B1", tags.String())
}

func TestTags_Clone(t *testing.T) {
	tags := model.Tags{"a": "1"}
	c := tags.Clone()
	c.Set("a", "2")

	assert.Equal(t, "a=1", tags.String())
	assert.Equal(t, "a=2", c.String())
}
