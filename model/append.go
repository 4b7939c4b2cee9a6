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

import "fmt"

// ItemKind is the variant held by an Item.
type ItemKind int

const (
	ItemSeq ItemKind = iota
	ItemTags
	ItemNodeRef
	ItemMember
	ItemID
)

var itemKindNames = [...]string{"sequence", "tags", "node reference", "member", "id"}

func (k ItemKind) String() string {
	if k < ItemSeq || k > ItemID {
		return fmt.Sprintf("ItemKind(%d)", int(k))
	}

	return itemKindNames[k]
}

// Item is the operand of Append: a sequence of items, a set of tags, a node
// reference, a relation member or a bare id.
type Item struct {
	kind   ItemKind
	seq    []Item
	tags   map[string]string
	id     ID
	member Member
}

func (i Item) Kind() ItemKind { return i.kind }

// Seq groups items; appending it appends each element in order.
func Seq(items ...Item) Item {
	return Item{kind: ItemSeq, seq: items}
}

// TagsItem wraps tags to be merged into the object.
func TagsItem(tags map[string]string) Item {
	return Item{kind: ItemTags, tags: tags}
}

// NodeRef references a node.  Only the node's id is kept.
func NodeRef(n *Node) Item {
	return Item{kind: ItemNodeRef, id: n.ID()}
}

// MemberRef wraps a relation member.
func MemberRef(m Member) Item {
	return Item{kind: ItemMember, member: m}
}

// IDRef is a bare node id, accepted by ways.
func IDRef(id ID) Item {
	return Item{kind: ItemID, id: id}
}

type appender interface {
	Entity
	appendOne(Item) (bool, error)
}

func appendItems(e appender, items []Item) error {
	for _, item := range items {
		if item.kind == ItemSeq {
			if err := appendItems(e, item.seq); err != nil {
				return err
			}

			continue
		}

		ok, err := e.appendOne(item)
		if err != nil {
			return err
		}

		if !ok {
			return &ArgumentError{
				Name:   "item",
				Value:  item.kind.String(),
				Reason: fmt.Sprintf("cannot be appended to a %s", e.Type()),
			}
		}
	}

	return nil
}
