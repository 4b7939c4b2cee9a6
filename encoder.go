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

package osmxml

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"

	"m4o.io/osmxml/database"
	"m4o.io/osmxml/internal/encoder"
	"m4o.io/osmxml/model"
)

var ErrEncoderClosed = errors.New("encoder closed")

var errNilEntity = &model.ArgumentError{Name: "entity", Value: "nil", Reason: "must be a non-nil node, way or relation"}

// Encoder writes entities as an OSM XML document.  Entities are buffered and
// the document, nodes first then ways then relations, is written on Close.
type Encoder struct {
	cfg  *encoderOptions
	wrtr io.Writer

	mu       sync.Mutex
	entities []model.Entity
	bbox     *model.BoundingBox
	closed   bool
}

// NewEncoder returns a new encoder, configured with options, that writes to
// wrtr.
func NewEncoder(wrtr io.Writer, opts ...EncoderOption) (*Encoder, error) {
	cfg := defaultEncoderConfig

	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	if !slices.Contains(SupportedVersions, cfg.version) {
		return nil, &VersionError{Version: cfg.version}
	}

	if cfg.compression < CompressionNone || cfg.compression > CompressionXz {
		return nil, fmt.Errorf("%w: %v", encoder.ErrUnknownCompressionType, cfg.compression)
	}

	return &Encoder{
		cfg:  &cfg,
		wrtr: wrtr,
		bbox: model.InitialBoundingBox(),
	}, nil
}

// Encode queues entities for writing.
func (e *Encoder) Encode(entities ...model.Entity) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrEncoderClosed
	}

	for _, entity := range entities {
		switch v := entity.(type) {
		case *model.Node:
			if v == nil {
				return errNilEntity
			}

			if v.HasCoordinates() {
				if lon, lat, err := v.Coordinates(); err == nil {
					e.bbox.ExpandWithLatLng(lat, lon)
				}
			}
		case *model.Way:
			if v == nil {
				return errNilEntity
			}
		case *model.Relation:
			if v == nil {
				return errNilEntity
			}
		default:
			return errNilEntity
		}
	}

	e.entities = append(e.entities, entities...)

	return nil
}

// ExpandBounds grows the written bounds to cover b as well as the encoded
// nodes.  It only matters with WithBounds.
func (e *Encoder) ExpandBounds(b *model.BoundingBox) error {
	if b == nil {
		return &model.ArgumentError{Name: "bounds", Value: "nil", Reason: "must be a bounding box"}
	}

	if err := b.Validate(); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrEncoderClosed
	}

	e.bbox.ExpandWithBoundingBox(b)

	return nil
}

// EncodeDatabase queues every object of db.
func (e *Encoder) EncodeDatabase(db *database.Database) error {
	for _, n := range db.Nodes() {
		if err := e.Encode(n); err != nil {
			return err
		}
	}

	for _, w := range db.Ways() {
		if err := e.Encode(w); err != nil {
			return err
		}
	}

	for _, r := range db.Relations() {
		if err := e.Encode(r); err != nil {
			return err
		}
	}

	return nil
}

// Close writes the document and flushes the compressor.  It does not close
// the underlying writer.
func (e *Encoder) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}

	e.closed = true

	doc := encoder.NewDocument(e.cfg.version, e.cfg.generator)

	// the initial box is inverted until a node expands it
	if e.cfg.bounds && e.bbox.Left <= e.bbox.Right {
		doc.Bounds(e.bbox)
	}

	for _, t := range []model.EntityType{model.NODE, model.WAY, model.RELATION} {
		for _, entity := range e.entities {
			if entity.Type() == t {
				doc.Entity(entity)
			}
		}
	}

	p, err := encoder.NewPacker(e.wrtr, e.cfg.compression)
	if err != nil {
		return err
	}

	n, err := doc.WriteTo(p)
	if err != nil {
		_ = p.Close()
		return fmt.Errorf("cannot write document: %w", err)
	}

	if err := p.Close(); err != nil {
		return fmt.Errorf("cannot flush %s stream: %w", e.cfg.compression, err)
	}

	e.cfg.logger.Debug("encoded osm xml",
		"objects", len(e.entities),
		"bytes", n,
		"compression", e.cfg.compression)

	e.entities = nil

	return nil
}
