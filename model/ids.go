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
	"strconv"
	"sync/atomic"

	"golang.org/x/exp/constraints"
)

// ID is the primary key of an entity.  Positive ids are assigned by the OSM
// server; negative ids are placeholders for objects the server has not seen.
type ID int64

func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// IsPlaceholder reports whether the id was allocated locally.
func (id ID) IsPlaceholder() bool {
	return id < 0
}

// ParseID parses a decimal id.
func ParseID(s string) (ID, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, &FormatError{Field: "id", Value: s, Err: err}
	}

	return ID(v), nil
}

// ToID converts any integer to an ID.
func ToID[T constraints.Integer](v T) ID {
	return ID(v)
}

// ToIDs converts a slice of integers to IDs.
func ToIDs[T constraints.Integer](vs []T) []ID {
	ids := make([]ID, len(vs))
	for i, v := range vs {
		ids[i] = ID(v)
	}

	return ids
}

// IDAllocator hands out decreasing negative placeholder ids.  It is safe for
// concurrent use.
type IDAllocator struct {
	last atomic.Int64
}

// NewIDAllocator returns an allocator whose first id is start-1.
func NewIDAllocator(start int64) *IDAllocator {
	a := &IDAllocator{}
	a.last.Store(start)

	return a
}

// Next returns a new placeholder id.
func (a *IDAllocator) Next() ID {
	return ID(a.last.Add(-1))
}

// Reset seeds the allocator so that the next id is start-1.
func (a *IDAllocator) Reset(start int64) {
	a.last.Store(start)
}

var defaultAllocator = NewIDAllocator(0)

// DefaultIDAllocator returns the process-wide allocator used when an object
// is built without an id.
func DefaultIDAllocator() *IDAllocator {
	return defaultAllocator
}

// NextID allocates from the process-wide allocator.
func NextID() ID {
	return defaultAllocator.Next()
}

// ResetIDs restarts the process-wide allocator at 0.  Only tests should need it.
func ResetIDs() {
	defaultAllocator.Reset(0)
}
