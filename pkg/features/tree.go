// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package features

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

var ErrInvalidDocument = errors.New("invalid feature document")

// Kind tags the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindScalar
	KindSequence
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindScalar:
		return "scalar"
	case KindSequence:
		return "sequence"
	case KindMap:
		return "map"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Value is one node of a feature tree. Maps keep insertion order.
// A nil *Value stands for an absent entry and is distinct from Null.
type Value struct {
	kind   Kind
	scalar any
	items  []*Value
	keys   []string
	fields map[string]*Value
}

func Null() *Value {
	return &Value{kind: KindNull}
}

func Bool(b bool) *Value {
	return &Value{kind: KindScalar, scalar: b}
}

func String(s string) *Value {
	return &Value{kind: KindScalar, scalar: s}
}

// Number keeps the literal text of a JSON number.
func Number(n string) *Value {
	return &Value{kind: KindScalar, scalar: json.Number(n)}
}

func Sequence(items ...*Value) *Value {
	return &Value{kind: KindSequence, items: items}
}

func NewMap() *Value {
	return &Value{kind: KindMap, fields: map[string]*Value{}}
}

// Kind reports KindNull for a nil Value; use v == nil to tell absent from Null.
func (v *Value) Kind() Kind {
	if v == nil {
		return KindNull
	}
	return v.kind
}

func (v *Value) IsMap() bool {
	return v != nil && v.kind == KindMap
}

// Scalar returns the bool, string or json.Number held by a scalar node.
func (v *Value) Scalar() any {
	if v == nil {
		return nil
	}
	return v.scalar
}

func (v *Value) Items() []*Value {
	if v == nil {
		return nil
	}
	return v.items
}

// Keys returns the map keys in order.
func (v *Value) Keys() []string {
	if v == nil {
		return nil
	}
	return v.keys
}

func (v *Value) Get(key string) (*Value, bool) {
	if !v.IsMap() {
		return nil, false
	}
	child, ok := v.fields[key]
	return child, ok
}

// Set adds or replaces key on a map node. A replaced key keeps its position.
func (v *Value) Set(key string, child *Value) *Value {
	if !v.IsMap() {
		return v
	}
	if _, ok := v.fields[key]; !ok {
		v.keys = append(v.keys, key)
	}
	v.fields[key] = child
	return v
}

// Clone returns a deep copy.
func (v *Value) Clone() *Value {
	if v == nil {
		return nil
	}

	switch v.kind {
	case KindSequence:
		items := make([]*Value, len(v.items))
		for i, item := range v.items {
			items[i] = item.Clone()
		}
		return Sequence(items...)
	case KindMap:
		m := NewMap()
		for _, k := range v.keys {
			m.Set(k, v.fields[k].Clone())
		}
		return m
	}

	c := *v
	return &c
}

func (v *Value) MarshalJSON() ([]byte, error) {
	if v == nil {
		return []byte("null"), nil
	}

	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindScalar:
		return json.Marshal(v.scalar)
	}

	var buf bytes.Buffer

	if v.kind == KindSequence {
		buf.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			b, err := item.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(b)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	}

	buf.WriteByte('{')
	for i, k := range v.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		b, err := v.fields[k].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*v = *parsed
	return nil
}

// Parse reads a JSON document into a Value, preserving object key order.
func Parse(data []byte) (*Value, error) {
	if len(bytes.TrimSpace(data)) == 0 || !gjson.ValidBytes(data) {
		return nil, ErrInvalidDocument
	}

	return fromResult(gjson.ParseBytes(data)), nil
}

func fromResult(r gjson.Result) *Value {
	switch r.Type {
	case gjson.False:
		return Bool(false)
	case gjson.True:
		return Bool(true)
	case gjson.Number:
		return Number(r.Raw)
	case gjson.String:
		return String(r.Str)
	case gjson.JSON:
		if r.IsArray() {
			items := make([]*Value, 0)
			r.ForEach(func(_, item gjson.Result) bool {
				items = append(items, fromResult(item))
				return true
			})
			return Sequence(items...)
		}

		m := NewMap()
		r.ForEach(func(key, child gjson.Result) bool {
			m.Set(key.Str, fromResult(child))
			return true
		})
		return m
	}

	return Null()
}
