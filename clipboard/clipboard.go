// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package clipboard encodes node subtrees into a compact binary payload
// for copy and paste within a process. The payload uses the protocol
// buffer wire format without a schema. It is not a stable file format.
package clipboard

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"

	"cogentcore.org/proptree/base/errors"
	"cogentcore.org/proptree/tree"
)

// ErrMalformed is returned by [Decode] for payloads it cannot read.
var ErrMalformed = errors.New("clipboard: malformed payload")

// version is the first field of every payload.
const version = 1

// maxDepth bounds the nesting of decoded nodes.
const maxDepth = 512

const (
	fieldVersion protowire.Number = 15

	fieldName     protowire.Number = 1
	fieldLabel    protowire.Number = 2
	fieldType     protowire.Number = 3
	fieldKind     protowire.Number = 4
	fieldScalar   protowire.Number = 5
	fieldBits     protowire.Number = 6
	fieldElement  protowire.Number = 7
	fieldFixed    protowire.Number = 8
	fieldLen      protowire.Number = 9
	fieldConcrete protowire.Number = 10
	fieldVLabel   protowire.Number = 11
	fieldExpanded protowire.Number = 12
	fieldChild    protowire.Number = 13
	fieldRoot     protowire.Number = 14
)

type kind uint64

const (
	kindNone kind = iota
	kindBool
	kindInt
	kindUint
	kindFloat
	kindText
	kindStruct
	kindContainer
	kindVariant
)

// Encode returns the payload of the subtree rooted at n. Handles, templates,
// validation state and all flags except expansion are not encoded.
func Encode(n *tree.Node) []byte {
	b := protowire.AppendTag(nil, fieldVersion, protowire.VarintType)
	b = protowire.AppendVarint(b, version)
	b = protowire.AppendTag(b, fieldRoot, protowire.BytesType)
	return protowire.AppendBytes(b, encodeNode(nil, n))
}

func encodeNode(b []byte, n *tree.Node) []byte {
	b = appendString(b, fieldName, n.Name)
	b = appendString(b, fieldLabel, n.Label)
	b = appendString(b, fieldType, n.TypeName)
	switch v := n.Value.(type) {
	case tree.Bool:
		b = appendVarint(b, fieldKind, uint64(kindBool))
		b = appendVarint(b, fieldScalar, protowire.EncodeBool(bool(v)))
	case tree.Int:
		b = appendVarint(b, fieldKind, uint64(kindInt))
		b = appendVarint(b, fieldScalar, protowire.EncodeZigZag(int64(v)))
	case tree.Uint:
		b = appendVarint(b, fieldKind, uint64(kindUint))
		b = appendVarint(b, fieldScalar, uint64(v))
	case tree.Float:
		b = appendVarint(b, fieldKind, uint64(kindFloat))
		b = protowire.AppendTag(b, fieldScalar, protowire.Fixed64Type)
		b = protowire.AppendFixed64(b, math.Float64bits(v.V))
		b = appendVarint(b, fieldBits, uint64(v.Bits))
	case tree.Text:
		b = appendVarint(b, fieldKind, uint64(kindText))
		b = appendString(b, fieldScalar, string(v))
	case tree.Struct:
		b = appendVarint(b, fieldKind, uint64(kindStruct))
	case tree.Container:
		b = appendVarint(b, fieldKind, uint64(kindContainer))
		b = appendString(b, fieldElement, v.ElementType)
		b = appendVarint(b, fieldFixed, protowire.EncodeBool(v.Fixed))
		// intersected containers can hold fewer elements than their length
		b = appendVarint(b, fieldLen, uint64(len(n.Children)))
	case tree.Variant:
		b = appendVarint(b, fieldKind, uint64(kindVariant))
		b = appendString(b, fieldElement, v.Base)
		b = appendString(b, fieldConcrete, v.Concrete)
		b = appendString(b, fieldVLabel, v.Label)
	}
	if n.Is(tree.Expanded) {
		b = appendVarint(b, fieldExpanded, 1)
	}
	for _, k := range n.Children {
		b = protowire.AppendTag(b, fieldChild, protowire.BytesType)
		b = protowire.AppendBytes(b, encodeNode(nil, k))
	}
	return b
}

func appendString(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

// Decode returns the subtree encoded in the given payload. The nodes
// are not bound to any object. Errors wrap [ErrMalformed].
func Decode(data []byte) (*tree.Node, error) {
	var root *tree.Node
	seenVersion := false
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, malformed(protowire.ParseError(n))
		}
		data = data[n:]
		switch {
		case num == fieldVersion && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, malformed(protowire.ParseError(n))
			}
			if v != version {
				return nil, fmt.Errorf("%w: unsupported version %d", ErrMalformed, v)
			}
			seenVersion = true
			data = data[n:]
		case num == fieldRoot && typ == protowire.BytesType:
			b, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, malformed(protowire.ParseError(n))
			}
			var err error
			root, err = decodeNode(b, 0)
			if err != nil {
				return nil, err
			}
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, malformed(protowire.ParseError(n))
			}
			data = data[n:]
		}
	}
	if !seenVersion || root == nil {
		return nil, fmt.Errorf("%w: missing version or root", ErrMalformed)
	}
	return root, nil
}

// fields are the raw fields of one encoded node.
type fields struct {
	kind     kind
	varint   uint64
	fixed    uint64
	text     string
	bits     uint64
	element  string
	fixedLen bool
	length   uint64
	concrete string
	vlabel   string
}

func decodeNode(data []byte, depth int) (*tree.Node, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("%w: nesting deeper than %d", ErrMalformed, maxDepth)
	}
	nd := &tree.Node{}
	var f fields
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, malformed(protowire.ParseError(n))
		}
		data = data[n:]
		switch typ {
		case protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, malformed(protowire.ParseError(n))
			}
			data = data[n:]
			switch num {
			case fieldKind:
				f.kind = kind(v)
			case fieldScalar:
				f.varint = v
			case fieldBits:
				f.bits = v
			case fieldFixed:
				f.fixedLen = protowire.DecodeBool(v)
			case fieldLen:
				f.length = v
			case fieldExpanded:
				nd.SetFlag(v != 0, tree.Expanded)
			}
		case protowire.Fixed64Type:
			v, n := protowire.ConsumeFixed64(data)
			if n < 0 {
				return nil, malformed(protowire.ParseError(n))
			}
			data = data[n:]
			if num == fieldScalar {
				f.fixed = v
			}
		case protowire.BytesType:
			b, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, malformed(protowire.ParseError(n))
			}
			data = data[n:]
			switch num {
			case fieldName:
				nd.Name = string(b)
			case fieldLabel:
				nd.Label = string(b)
			case fieldType:
				nd.TypeName = string(b)
			case fieldScalar:
				f.text = string(b)
			case fieldElement:
				f.element = string(b)
			case fieldConcrete:
				f.concrete = string(b)
			case fieldVLabel:
				f.vlabel = string(b)
			case fieldChild:
				k, err := decodeNode(b, depth+1)
				if err != nil {
					return nil, err
				}
				nd.AddChild(k)
			}
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, malformed(protowire.ParseError(n))
			}
			data = data[n:]
		}
	}
	v, err := f.value()
	if err != nil {
		return nil, err
	}
	if c, ok := v.(tree.Container); ok && c.Len != len(nd.Children) {
		return nil, fmt.Errorf("%w: container length %d with %d elements", ErrMalformed, c.Len, len(nd.Children))
	}
	nd.Value = v
	return nd, nil
}

func (f *fields) value() (tree.Value, error) {
	switch f.kind {
	case kindNone:
		return nil, nil
	case kindBool:
		return tree.Bool(protowire.DecodeBool(f.varint)), nil
	case kindInt:
		return tree.Int(protowire.DecodeZigZag(f.varint)), nil
	case kindUint:
		return tree.Uint(f.varint), nil
	case kindFloat:
		return tree.Float{V: math.Float64frombits(f.fixed), Bits: int(f.bits)}, nil
	case kindText:
		return tree.Text(f.text), nil
	case kindStruct:
		return tree.Struct{}, nil
	case kindContainer:
		if f.length > math.MaxInt32 {
			return nil, fmt.Errorf("%w: container length %d", ErrMalformed, f.length)
		}
		return tree.Container{ElementType: f.element, Fixed: f.fixedLen, Len: int(f.length)}, nil
	case kindVariant:
		return tree.Variant{Base: f.element, Concrete: f.concrete, Label: f.vlabel}, nil
	}
	return nil, fmt.Errorf("%w: unknown value kind %d", ErrMalformed, f.kind)
}

func malformed(err error) error {
	return fmt.Errorf("%w: %w", ErrMalformed, err)
}
