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
	"fmt"
	"strings"
)

const (
	MaxLat Degrees = 90.0
	MaxLon Degrees = 180.0
	MinLat Degrees = -90.0
	MinLon Degrees = -180.0
)

// BoundingBox is simply a bounding box.
type BoundingBox struct {
	Top    Degrees
	Left   Degrees
	Bottom Degrees
	Right  Degrees
}

// NewBoundingBox creates a BoundingBox from the corner order used by the OSM
// API: left, bottom, right, top.
func NewBoundingBox(left, bottom, right, top Degrees) *BoundingBox {
	return &BoundingBox{Top: top, Left: left, Bottom: bottom, Right: right}
}

// ParseBoundingBox parses "left,bottom,right,top" and validates the ranges.
func ParseBoundingBox(s string) (*BoundingBox, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return nil, &ArgumentError{Name: "bbox", Value: s, Reason: "expected left,bottom,right,top"}
	}

	var corners [4]Degrees

	for i, p := range parts {
		d, err := ParseDegrees(strings.TrimSpace(p))
		if err != nil {
			return nil, &ArgumentError{Name: "bbox", Value: s, Reason: fmt.Sprintf("%q is not a number", p)}
		}

		corners[i] = d
	}

	b := NewBoundingBox(corners[0], corners[1], corners[2], corners[3])
	if err := b.Validate(); err != nil {
		return nil, err
	}

	return b, nil
}

// InitialBoundingBox creates a BoundingBox that is meant to be expanded.
func InitialBoundingBox() *BoundingBox {
	return &BoundingBox{
		Top:    MinLat,
		Left:   MaxLon,
		Bottom: MaxLat,
		Right:  MinLon,
	}
}

// Validate checks that every corner is a valid longitude or latitude.
func (b *BoundingBox) Validate() error {
	for _, lon := range []struct {
		name string
		val  Degrees
	}{{"left", b.Left}, {"right", b.Right}} {
		if lon.val < MinLon || lon.val > MaxLon {
			return &ArgumentError{Name: lon.name, Value: lon.val.String(), Reason: "longitude must be between -180 and 180"}
		}
	}

	for _, lat := range []struct {
		name string
		val  Degrees
	}{{"bottom", b.Bottom}, {"top", b.Top}} {
		if lat.val < MinLat || lat.val > MaxLat {
			return &ArgumentError{Name: lat.name, Value: lat.val.String(), Reason: "latitude must be between -90 and 90"}
		}
	}

	return nil
}

// EqualWithin checks if two bounding boxes are within a specific epsilon.
func (b *BoundingBox) EqualWithin(o *BoundingBox, eps Epsilon) bool {
	return b.Left.EqualWithin(o.Left, eps) &&
		b.Right.EqualWithin(o.Right, eps) &&
		b.Top.EqualWithin(o.Top, eps) &&
		b.Bottom.EqualWithin(o.Bottom, eps)
}

// Contains checks if the bounding box contains the lat lng point.
func (b *BoundingBox) Contains(lat Degrees, lng Degrees) bool {
	return b.Left <= lng && lng <= b.Right && b.Bottom <= lat && lat <= b.Top
}

func (b *BoundingBox) ExpandWithLatLng(lat, lng Degrees) {
	if b.Top < lat {
		b.Top = lat
	}

	if b.Bottom > lat {
		b.Bottom = lat
	}

	if b.Left > lng {
		b.Left = lng
	}

	if b.Right < lng {
		b.Right = lng
	}
}

func (b *BoundingBox) ExpandWithBoundingBox(bbox *BoundingBox) {
	if b.Top < bbox.Top {
		b.Top = bbox.Top
	}

	if b.Bottom > bbox.Bottom {
		b.Bottom = bbox.Bottom
	}

	if b.Left > bbox.Left {
		b.Left = bbox.Left
	}

	if b.Right < bbox.Right {
		b.Right = bbox.Right
	}
}

// QueryString renders the box in the OSM API "bbox" parameter order.
func (b *BoundingBox) QueryString() string {
	return strings.Join([]string{b.Left.String(), b.Bottom.String(), b.Right.String(), b.Top.String()}, ",")
}

func (b *BoundingBox) String() string {
	return fmt.Sprintf("[(%s, %s) (%s, %s)]",
		ftoa(float64(b.Top)), ftoa(float64(b.Left)),
		ftoa(float64(b.Bottom)), ftoa(float64(b.Right)))
}
