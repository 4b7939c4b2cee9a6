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

package cli

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/osmxml"
	"m4o.io/osmxml/model"
)

func TestBackendValue(t *testing.T) {
	b := osmxml.DefaultBackend
	v := NewBackendValue(&b)

	require.NoError(t, v.Set("xmlquery"))
	assert.Equal(t, osmxml.BackendXMLQuery, b)
	assert.Equal(t, "xmlquery", v.String())
	assert.Equal(t, "backend", v.Type())

	assert.ErrorIs(t, v.Set("dom"), model.ErrArgument)
	assert.Equal(t, osmxml.BackendXMLQuery, b)
}

func TestBoundingBoxValue(t *testing.T) {
	var bbox *model.BoundingBox

	v := NewBoundingBoxValue(&bbox)
	assert.Equal(t, "", v.String())

	require.NoError(t, v.Set("-0.13,51.5,-0.12,51.51"))
	require.NotNil(t, bbox)
	assert.Equal(t, "-0.13,51.5,-0.12,51.51", v.String())

	test_cases := []string{"", "1,2,3", "a,b,c,d", "0,0,181,1"}

	for _, tc := range test_cases {
		t.Run(tc, func(t *testing.T) {
			assert.ErrorIs(t, v.Set(tc), model.ErrArgument)
		})
	}
}

func TestCompressionValue(t *testing.T) {
	c := osmxml.CompressionNone
	v := NewCompressionValue(&c)

	require.NoError(t, v.Set("zstd"))
	assert.Equal(t, osmxml.CompressionZstd, c)
	assert.Equal(t, "zstd", v.String())
	assert.Error(t, v.Set("brotli"))
}

func TestLevelValue(t *testing.T) {
	l := slog.LevelWarn
	v := NewLevelValue(&l)

	require.NoError(t, v.Set("debug"))
	assert.Equal(t, slog.LevelDebug, l)
	assert.Equal(t, "DEBUG", v.String())
	assert.Error(t, v.Set("loud"))
}
