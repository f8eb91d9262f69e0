// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import (
	"fmt"
	"reflect"
	"strconv"

	"cogentcore.org/proptree/base/reflectx"
)

// Value is the payload of a [Node]. It is a closed set of types:
// [Bool], [Int], [Uint], [Float] and [Text] for leaves, and [Struct],
// [Container] and [Variant] for composite nodes. Use a type switch to
// handle it.
type Value interface {
	fmt.Stringer
	isValue()
}

// Bool is a boolean leaf value.
type Bool bool

// Int is a signed integer leaf value.
type Int int64

// Uint is an unsigned integer leaf value.
type Uint uint64

// Float is a floating point leaf value. Bits is the size of the
// source field (32 or 64), which determines its string form.
type Float struct {
	V    float64
	Bits int
}

// Text is a string leaf value.
type Text string

// Struct is the value of a nested object node.
type Struct struct{}

// Container is the value of a sequence node.
type Container struct {

	// ElementType is the type name of the elements.
	ElementType string

	// Fixed is whether the number of elements cannot change.
	Fixed bool

	// Len is the number of elements.
	Len int
}

// Variant is the value of a polymorphic node.
type Variant struct {

	// Base is the name of the base type.
	Base string

	// Concrete is the registered name of the held concrete type,
	// or "" when the slot is empty.
	Concrete string

	// Label is the user facing name of the held concrete type.
	Label string
}

func (Bool) isValue()      {}
func (Int) isValue()       {}
func (Uint) isValue()      {}
func (Float) isValue()     {}
func (Text) isValue()      {}
func (Struct) isValue()    {}
func (Container) isValue() {}
func (Variant) isValue()   {}

func (v Bool) String() string { return strconv.FormatBool(bool(v)) }
func (v Int) String() string  { return strconv.FormatInt(int64(v), 10) }
func (v Uint) String() string { return strconv.FormatUint(uint64(v), 10) }
func (v Text) String() string { return string(v) }
func (Struct) String() string { return "" }

func (v Float) String() string {
	bits := v.Bits
	if bits != 32 {
		bits = 64
	}
	return strconv.FormatFloat(v.V, 'g', -1, bits)
}

func (v Container) String() string { return fmt.Sprintf("[%d]", v.Len) }

func (v Variant) String() string { return v.Label }

// IsLeaf returns whether the value is a primitive leaf value.
func IsLeaf(v Value) bool {
	switch v.(type) {
	case Bool, Int, Uint, Float, Text:
		return true
	}
	return false
}

// ValueOf returns the leaf [Value] of the given basic value,
// which may be a pointer to it. It returns nil for other kinds.
func ValueOf(v any) Value {
	rv := reflectx.NonPointerValue(reflect.ValueOf(v))
	if !rv.IsValid() {
		return nil
	}
	switch k := rv.Kind(); {
	case k == reflect.Bool:
		return Bool(rv.Bool())
	case reflectx.KindIsInt(k):
		return Int(rv.Int())
	case reflectx.KindIsUint(k):
		return Uint(rv.Uint())
	case k == reflect.Float32:
		return Float{V: rv.Float(), Bits: 32}
	case k == reflect.Float64:
		return Float{V: rv.Float(), Bits: 64}
	case k == reflect.String:
		return Text(rv.String())
	}
	return nil
}

// ParseValue parses the given text as a new value of the same kind as
// the given leaf value.
func ParseValue(like Value, text string) (Value, error) {
	switch lv := like.(type) {
	case Bool:
		b, err := reflectx.ToBool(text)
		return Bool(b), err
	case Int:
		i, err := reflectx.ToInt(text)
		return Int(i), err
	case Uint:
		u, err := reflectx.ToUint(text)
		return Uint(u), err
	case Float:
		f, err := reflectx.ToFloat(text)
		return Float{V: f, Bits: lv.Bits}, err
	case Text:
		return Text(text), nil
	}
	return nil, fmt.Errorf("tree.ParseValue: cannot parse text into a %T value", like)
}

// Interface returns the Go value of the given leaf value, suitable
// for [reflectx.SetRobust]. It returns nil for composite values.
func Interface(v Value) any {
	switch lv := v.(type) {
	case Bool:
		return bool(lv)
	case Int:
		return int64(lv)
	case Uint:
		return uint64(lv)
	case Float:
		return lv.V
	case Text:
		return string(lv)
	}
	return nil
}
