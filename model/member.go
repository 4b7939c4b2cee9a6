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
	"strconv"
)

// Member binds a relation to one of its members.
type Member struct {
	Type EntityType
	Ref  ID
	Role string
}

// NewMember validates the member type.
func NewMember(t EntityType, ref ID, role string) (Member, error) {
	if !t.Valid() {
		return Member{}, &ArgumentError{Name: "member type", Value: t.String(), Reason: "must be one of node, way or relation"}
	}

	return Member{Type: t, Ref: ref, Role: role}, nil
}

// ParseMember builds a member from the attribute values of a member element.
func ParseMember(typ, ref, role string) (Member, error) {
	t, err := ParseEntityType(typ)
	if err != nil {
		return Member{}, &ArgumentError{Name: "member type", Value: typ, Reason: "must be one of node, way or relation"}
	}

	id, err := strconv.ParseInt(ref, 10, 64)
	if err != nil {
		return Member{}, &ArgumentError{Name: "member ref", Value: ref, Reason: "must be an integer"}
	}

	return Member{Type: t, Ref: ID(id), Role: role}, nil
}

func (m Member) String() string {
	return fmt.Sprintf("%s %d %q", m.Type, m.Ref, m.Role)
}
