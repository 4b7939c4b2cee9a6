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

package encoder

import (
	"io"
	"strconv"

	"github.com/beevik/etree"

	"m4o.io/osmxml/model"
)

const (
	DefaultVersion   = "0.6"
	DefaultGenerator = "osmxml"
)

// Document builds an OSM XML document.
type Document struct {
	doc  *etree.Document
	root *etree.Element
}

// NewDocument creates an empty osm document with the version and generator
// attributes set.
func NewDocument(version, generator string) *Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("osm")
	root.CreateAttr("version", version)
	root.CreateAttr("generator", generator)

	return &Document{doc: doc, root: root}
}

// Bounds adds a bounds element.
func (d *Document) Bounds(b *model.BoundingBox) {
	el := d.root.CreateElement("bounds")
	el.CreateAttr("minlat", b.Bottom.String())
	el.CreateAttr("minlon", b.Left.String())
	el.CreateAttr("maxlat", b.Top.String())
	el.CreateAttr("maxlon", b.Right.String())
}

func (d *Document) Node(n *model.Node) {
	el := d.root.CreateElement("node")
	writeObject(el, &n.Object)

	if n.HasCoordinates() {
		el.CreateAttr("lat", n.Lat())
		el.CreateAttr("lon", n.Lon())
	}

	writeTags(el, n.Tags)
}

func (d *Document) Way(w *model.Way) {
	el := d.root.CreateElement("way")
	writeObject(el, &w.Object)

	for _, id := range w.NodeIDs() {
		el.CreateElement("nd").CreateAttr("ref", id.String())
	}

	writeTags(el, w.Tags)
}

func (d *Document) Relation(r *model.Relation) {
	el := d.root.CreateElement("relation")
	writeObject(el, &r.Object)

	for _, m := range r.Members() {
		mel := el.CreateElement("member")
		mel.CreateAttr("type", m.Type.String())
		mel.CreateAttr("ref", m.Ref.String())
		mel.CreateAttr("role", m.Role)
	}

	writeTags(el, r.Tags)
}

// Entity adds any of the three object kinds.
func (d *Document) Entity(e model.Entity) {
	switch v := e.(type) {
	case *model.Node:
		d.Node(v)
	case *model.Way:
		d.Way(v)
	case *model.Relation:
		d.Relation(v)
	}
}

// WriteTo writes the indented document.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	d.doc.Indent(2)
	return d.doc.WriteTo(w)
}

func writeObject(el *etree.Element, o *model.Object) {
	el.CreateAttr("id", o.ID().String())

	if !o.Visible {
		el.CreateAttr("visible", "false")
	}

	el.CreateAttr("version", strconv.Itoa(o.Version()))

	if o.Changeset != 0 {
		el.CreateAttr("changeset", strconv.FormatInt(o.Changeset, 10))
	}

	if ts := o.Timestamp(); ts != "" {
		el.CreateAttr("timestamp", ts)
	}

	if o.User != "" {
		el.CreateAttr("user", o.User)
	}

	if o.UID != "" {
		el.CreateAttr("uid", o.UID)
	}
}

func writeTags(el *etree.Element, tags model.Tags) {
	for _, k := range tags.Keys() {
		tel := el.CreateElement("tag")
		tel.CreateAttr("k", k)
		tel.CreateAttr("v", tags[k])
	}
}
