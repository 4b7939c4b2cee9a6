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

	"github.com/spf13/pflag"

	"m4o.io/osmxml"
	"m4o.io/osmxml/model"
)

// -- osmxml.Backend Value
type backendValue struct {
	value *osmxml.Backend
}

// NewBackendValue creates a cobra Value object for an osmxml.Backend.
func NewBackendValue(p *osmxml.Backend) pflag.Value {
	return &backendValue{value: p}
}

func (b *backendValue) Set(val string) error {
	v, err := osmxml.ParseBackend(val)
	if err != nil {
		return err
	}

	*b.value = v

	return nil
}

func (b *backendValue) Type() string {
	return "backend"
}

func (b *backendValue) String() string {
	return b.value.String()
}

// -- *model.BoundingBox Value
type bboxValue struct {
	value **model.BoundingBox
}

// NewBoundingBoxValue creates a cobra Value object for a bounding box given
// as left,bottom,right,top.
func NewBoundingBoxValue(p **model.BoundingBox) pflag.Value {
	return &bboxValue{value: p}
}

func (b *bboxValue) Set(val string) error {
	bbox, err := model.ParseBoundingBox(val)
	if err != nil {
		return err
	}

	*b.value = bbox

	return nil
}

func (b *bboxValue) Type() string {
	return "bbox"
}

func (b *bboxValue) String() string {
	if *b.value == nil {
		return ""
	}

	return (*b.value).QueryString()
}

// -- osmxml.Compression Value
type compressionValue struct {
	value *osmxml.Compression
}

// NewCompressionValue creates a cobra Value object for an
// osmxml.Compression.
func NewCompressionValue(p *osmxml.Compression) pflag.Value {
	return &compressionValue{value: p}
}

func (c *compressionValue) Set(val string) error {
	v, err := osmxml.ParseCompression(val)
	if err != nil {
		return err
	}

	*c.value = v

	return nil
}

func (c *compressionValue) Type() string {
	return "compression"
}

func (c *compressionValue) String() string {
	return c.value.String()
}

// -- slog.Level Value
type levelValue struct {
	value *slog.Level
}

// NewLevelValue creates a cobra Value object for a slog.Level.
func NewLevelValue(p *slog.Level) pflag.Value {
	return &levelValue{value: p}
}

func (l *levelValue) Set(val string) error {
	return l.value.UnmarshalText([]byte(val))
}

func (l *levelValue) Type() string {
	return "level"
}

func (l *levelValue) String() string {
	return l.value.String()
}
