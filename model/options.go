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
	"golang.org/x/exp/constraints"
)

type options struct {
	id        *ID
	allocator *IDAllocator
	version   int
	user      string
	uid       string
	changeset int64
	visible   bool
	timestamp string
	tags      map[string]string
	lon       string
	lat       string
	hasLonLat bool
	nodes     []ID
	members   []Member
}

// Option configures a Node, Way or Relation at construction.
type Option func(*options)

func defaultOptions() options {
	return options{
		allocator: defaultAllocator,
		version:   1,
		visible:   true,
	}
}

func buildOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &o
}

// WithID sets the id.  Without it a placeholder id is allocated.
func WithID(id ID) Option {
	return func(o *options) {
		o.id = &id
	}
}

// WithIDAllocator sets the allocator used when no id is given.
func WithIDAllocator(a *IDAllocator) Option {
	return func(o *options) {
		o.allocator = a
	}
}

func WithVersion(v int) Option {
	return func(o *options) {
		o.version = v
	}
}

func WithUser(user string) Option {
	return func(o *options) {
		o.user = user
	}
}

func WithUID(uid string) Option {
	return func(o *options) {
		o.uid = uid
	}
}

func WithChangeset(cs int64) Option {
	return func(o *options) {
		o.changeset = cs
	}
}

func WithVisible(visible bool) Option {
	return func(o *options) {
		o.visible = visible
	}
}

// WithTimestamp sets the timestamp, validated when the object is built.
func WithTimestamp(ts string) Option {
	return func(o *options) {
		o.timestamp = ts
	}
}

// WithTags adds tags.  Repeated uses merge, later keys win.
func WithTags(tags map[string]string) Option {
	return func(o *options) {
		if o.tags == nil {
			o.tags = map[string]string{}
		}

		for k, v := range tags {
			o.tags[k] = v
		}
	}
}

// WithLonLat sets node coordinates from their textual form.  Both must be
// numeric; an empty string is a FormatError.  Only NewNode uses it.
func WithLonLat(lon, lat string) Option {
	return func(o *options) {
		o.lon = lon
		o.lat = lat
		o.hasLonLat = true
	}
}

// WithCoordinates sets node coordinates from numbers.
func WithCoordinates(lon, lat Degrees) Option {
	return WithLonLat(lon.String(), lat.String())
}

// WithNodes sets the node references of a way.
func WithNodes[T constraints.Integer](ids ...T) Option {
	return func(o *options) {
		o.nodes = append(o.nodes, ToIDs(ids)...)
	}
}

// WithMembers sets the members of a relation.
func WithMembers(members ...Member) Option {
	return func(o *options) {
		o.members = append(o.members, members...)
	}
}
