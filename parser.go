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
	"strconv"
	"time"

	"m4o.io/osmxml/database"
	"m4o.io/osmxml/internal/decoder"
	"m4o.io/osmxml/internal/monitoring"
	"m4o.io/osmxml/model"
)

// Parser reads OSM XML documents.  A Parser may be reused for several
// documents but not concurrently when it stores into a database.
type Parser struct {
	cfg parserOptions
}

// NewParser returns a new parser configured with options.
func NewParser(opts ...ParserOption) *Parser {
	cfg := defaultParserConfig

	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	if cfg.callbacks == nil {
		cfg.callbacks = DatabaseCallbacks{}
	}

	if cfg.allocator == nil {
		cfg.allocator = model.DefaultIDAllocator()
	}

	return &Parser{cfg: cfg}
}

// Database returns the database accepted objects are stored in, or nil.
func (p *Parser) Database() *database.Database {
	return p.cfg.db
}

// Backend returns the configured XML backend.
func (p *Parser) Backend() Backend {
	return p.cfg.backend
}

// Parse reads one document from r.  Any error aborts the parse; objects
// completed before the error may already have been reported and stored.
func (p *Parser) Parse(r io.Reader) error {
	start := time.Now()
	h := &handler{cfg: &p.cfg}

	err := p.cfg.backend.source().Run(r, h)
	if err != nil && errors.Is(err, decoder.ErrMalformedXML) {
		err = &ParseError{Err: err}
	}

	monitoring.RecordParse(p.cfg.backend.String(), time.Since(start), err == nil)

	if err != nil {
		p.cfg.logger.Error("unable to parse osm xml", "backend", p.cfg.backend, "error", err)
		return err
	}

	p.cfg.logger.Debug("parsed osm xml",
		"backend", p.cfg.backend,
		"version", h.version,
		"generator", h.generator,
		"objects", h.count,
		"elapsed", time.Since(start))

	return nil
}

// ParseObjects parses r and returns every object in document order.
func ParseObjects(r io.Reader, opts ...ParserOption) ([]model.Entity, error) {
	list := &ObjectList{}

	if err := NewParser(append(opts, WithCallbacks(list))...).Parse(r); err != nil {
		return nil, err
	}

	return list.Objects(), nil
}

// ParseDatabase parses r into a new database.
func ParseDatabase(r io.Reader, opts ...ParserOption) (*database.Database, error) {
	db := database.New()

	if err := NewParser(append(opts, WithDatabase(db))...).Parse(r); err != nil {
		return nil, err
	}

	return db, nil
}

type state int

const (
	idle state = iota
	documentOpen
	documentClosed
)

// handler is the parser state machine for one document.  context holds the
// object whose element is open; child names the open tag, nd or member
// element inside it.
type handler struct {
	cfg *parserOptions

	state   state
	context model.Entity
	child   string
	skip    int

	version   string
	generator string
	count     int
}

var _ decoder.Handler = (*handler)(nil)

func (h *handler) StartDocument() error {
	h.cfg.callbacks.OnStartDocument()
	return nil
}

func (h *handler) StartElement(name string, attrs map[string]string) error {
	if h.skip > 0 {
		h.skip++
		return nil
	}

	switch h.state {
	case idle:
		return h.openDocument(name, attrs)
	case documentClosed:
		return unexpected(name, "after the osm element")
	}

	if h.child != "" {
		return unexpected(name, "inside <"+h.child+">")
	}

	if h.context == nil {
		return h.openObject(name, attrs)
	}

	return h.openChild(name, attrs)
}

func (h *handler) openDocument(name string, attrs map[string]string) error {
	if name != "osm" {
		return unexpected(name, "as root, expected <osm>")
	}

	h.version = attrs["version"]
	if !slices.Contains(SupportedVersions, h.version) {
		return &VersionError{Version: h.version}
	}

	h.generator = attrs["generator"]
	h.state = documentOpen

	return nil
}

func (h *handler) openObject(name string, attrs map[string]string) error {
	var (
		e   model.Entity
		err error
	)

	switch name {
	case "node":
		e, err = newNode(h.cfg.allocator, attrs)
	case "way":
		e, err = newWay(h.cfg.allocator, attrs)
	case "relation":
		e, err = newRelation(h.cfg.allocator, attrs)
	case "tag", "nd", "member":
		return unexpected(name, "outside of an object")
	default:
		// bounds, note, meta and anything else the API adds
		h.cfg.logger.Debug("skipping element", "element", name)
		h.skip = 1

		return nil
	}

	if err != nil {
		return &ParseError{Element: name, Err: err}
	}

	h.context = e

	return nil
}

func (h *handler) openChild(name string, attrs map[string]string) error {
	switch name {
	case "tag":
		k, ok := attrs["k"]
		if !ok {
			return &ParseError{Element: name, Err: fmt.Errorf("%w k", ErrMissingAttribute)}
		}

		if err := h.context.Append(model.TagsItem(map[string]string{k: attrs["v"]})); err != nil {
			return &ParseError{Element: name, Err: err}
		}
	case "nd":
		if h.context.Type() != model.WAY {
			return unexpected(name, "outside of a way")
		}

		ref, ok := attrs["ref"]
		if !ok {
			return &ParseError{Element: name, Err: fmt.Errorf("%w ref", ErrMissingAttribute)}
		}

		id, err := model.ParseID(ref)
		if err != nil {
			return &ParseError{Element: name, Err: err}
		}

		if err := h.context.Append(model.IDRef(id)); err != nil {
			return &ParseError{Element: name, Err: err}
		}
	case "member":
		if h.context.Type() != model.RELATION {
			return unexpected(name, "outside of a relation")
		}

		m, err := model.ParseMember(attrs["type"], attrs["ref"], attrs["role"])
		if err != nil {
			return &ParseError{Element: name, Err: err}
		}

		if err := h.context.Append(model.MemberRef(m)); err != nil {
			return &ParseError{Element: name, Err: err}
		}
	default:
		return unexpected(name, "inside <"+h.context.Type().String()+">")
	}

	h.child = name

	return nil
}

func (h *handler) EndElement(name string) error {
	if h.skip > 0 {
		h.skip--
		return nil
	}

	switch {
	case h.child != "":
		h.child = ""
	case h.context != nil:
		h.closeObject()
	case name == "osm" && h.state == documentOpen:
		h.state = documentClosed
	}

	return nil
}

func (h *handler) closeObject() {
	var accepted bool

	switch v := h.context.(type) {
	case *model.Node:
		accepted = h.cfg.callbacks.OnNode(v)
	case *model.Way:
		accepted = h.cfg.callbacks.OnWay(v)
	case *model.Relation:
		accepted = h.cfg.callbacks.OnRelation(v)
	}

	if accepted && h.cfg.db != nil {
		// the context is always one of the three kinds
		_, _ = h.cfg.db.Add(h.context)
	}

	monitoring.RecordObject(h.context.Type().String(), accepted)

	h.count++
	h.context = nil
}

func (h *handler) EndDocument() error {
	if h.state != documentClosed {
		return &ParseError{Err: ErrNoRoot}
	}

	h.cfg.callbacks.OnEndDocument()

	return nil
}

func objectOptions(alloc *model.IDAllocator, attrs map[string]string) ([]model.Option, error) {
	opts := []model.Option{
		model.WithIDAllocator(alloc),
		model.WithUser(attrs["user"]),
		model.WithUID(attrs["uid"]),
		model.WithTimestamp(attrs["timestamp"]),
	}

	if s, ok := attrs["id"]; ok {
		id, err := model.ParseID(s)
		if err != nil {
			return nil, err
		}

		opts = append(opts, model.WithID(id))
	}

	if s, ok := attrs["version"]; ok {
		v, err := strconv.Atoi(s)
		if err != nil {
			return nil, &model.FormatError{Field: "version", Value: s, Err: err}
		}

		opts = append(opts, model.WithVersion(v))
	}

	if s, ok := attrs["changeset"]; ok {
		cs, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, &model.FormatError{Field: "changeset", Value: s, Err: err}
		}

		opts = append(opts, model.WithChangeset(cs))
	}

	if s, ok := attrs["visible"]; ok {
		visible, err := strconv.ParseBool(s)
		if err != nil {
			return nil, &model.FormatError{Field: "visible", Value: s, Err: err}
		}

		opts = append(opts, model.WithVisible(visible))
	}

	return opts, nil
}

func newNode(alloc *model.IDAllocator, attrs map[string]string) (model.Entity, error) {
	opts, err := objectOptions(alloc, attrs)
	if err != nil {
		return nil, err
	}

	lon, hasLon := attrs["lon"]
	lat, hasLat := attrs["lat"]

	deleted := false
	if s, ok := attrs["visible"]; ok {
		// already validated by objectOptions
		visible, _ := strconv.ParseBool(s)
		deleted = !visible
	}

	switch {
	case hasLon && hasLat:
		opts = append(opts, model.WithLonLat(lon, lat))
	case !hasLon && !hasLat && deleted:
		// deleted nodes in a history carry no coordinates
	case !hasLon:
		return nil, fmt.Errorf("%w lon", ErrMissingAttribute)
	default:
		return nil, fmt.Errorf("%w lat", ErrMissingAttribute)
	}

	return model.NewNode(opts...)
}

func newWay(alloc *model.IDAllocator, attrs map[string]string) (model.Entity, error) {
	opts, err := objectOptions(alloc, attrs)
	if err != nil {
		return nil, err
	}

	return model.NewWay(opts...)
}

func newRelation(alloc *model.IDAllocator, attrs map[string]string) (model.Entity, error) {
	opts, err := objectOptions(alloc, attrs)
	if err != nil {
		return nil, err
	}

	return model.NewRelation(opts...)
}
