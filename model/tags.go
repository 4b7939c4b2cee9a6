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
	"maps"
	"slices"
	"strings"
)

// Tags maps tag keys to values.  Keys are unique; setting an existing key
// overwrites its value.
type Tags map[string]string

func (t Tags) Get(key string) (string, bool) {
	v, ok := t[key]
	return v, ok
}

func (t Tags) Set(key, value string) {
	t[key] = value
}

// Merge copies every pair of m into t, overwriting on key collision.
func (t Tags) Merge(m map[string]string) {
	maps.Copy(t, m)
}

func (t Tags) IsEmpty() bool {
	return len(t) == 0
}

// Keys returns the keys in ascending order.
func (t Tags) Keys() []string {
	return slices.Sorted(maps.Keys(t))
}

func (t Tags) Clone() Tags {
	c := make(Tags, len(t))
	maps.Copy(c, t)

	return c
}

// String renders the tags as key=value pairs sorted by key and joined by
// commas.
func (t Tags) String() string {
	var sb strings.Builder

	for i, k := range t.Keys() {
		if i > 0 {
			sb.WriteByte(',')
		}

		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(t[k])
	}

	return sb.String()
}
