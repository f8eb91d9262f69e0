// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package serial

import (
	"reflect"
)

// Container is the protocol for a sequence of elements. Elements are
// visited through a cursor: [Container.Begin] positions it on the first
// element and [Container.Next] advances it. Structural edits apply at
// the cursor position.
type Container interface {
	TypeNamer

	// ElementTypeName returns the type name of the elements.
	ElementTypeName() string

	// FixedSize returns whether the number of elements cannot change.
	FixedSize() bool

	// Len returns the current number of elements.
	Len() int

	// Begin moves the cursor to the first element and returns
	// whether there is one.
	Begin() bool

	// Next advances the cursor and returns whether it is on an element.
	// The cursor stops one past the last element, which is a valid
	// position for [Container.Insert].
	Next() bool

	// SerializeElement visits the element under the cursor.
	SerializeElement(ar Archive, name, label string)

	// SerializeDefault visits a default constructed element
	// that is not part of the container.
	SerializeDefault(ar Archive, name, label string)

	// Insert inserts a default constructed element at the cursor.
	Insert() bool

	// Remove removes the element under the cursor.
	Remove() bool

	// MoveTo moves the element under the cursor to the given index.
	// The cursor follows the element.
	MoveTo(index int) bool

	// Resize sets the number of elements, appending default
	// constructed elements or truncating as needed.
	Resize(n int) bool
}

// Slice is a [Container] for a Go slice or array, accessed through reflection.
// Arrays are fixed size.
type Slice struct {
	v     reflect.Value
	fixed bool
	pos   int
}

// SliceOf returns a [Slice] container for the given slice.
func SliceOf[T any](ptr *[]T) *Slice {
	return reflectSlice(reflect.ValueOf(ptr).Elem(), false)
}

// ArrayOf returns a fixed size [Slice] container for the
// array that the given pointer points to.
func ArrayOf(ptr any) *Slice {
	v := reflect.ValueOf(ptr)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Array {
		panic("serial.ArrayOf: argument must be a pointer to an array")
	}
	return reflectSlice(v.Elem(), true)
}

func reflectSlice(v reflect.Value, fixed bool) *Slice {
	return &Slice{v: v, fixed: fixed}
}

func (s *Slice) TypeName() string { return s.v.Type().String() }

func (s *Slice) ElementTypeName() string {
	return elementTypeName(s.v.Type().Elem())
}

func (s *Slice) FixedSize() bool { return s.fixed }

func (s *Slice) Len() int { return s.v.Len() }

// Index returns the cursor position.
func (s *Slice) Index() int { return s.pos }

// Address returns the address of the slice header or array.
func (s *Slice) Address() uintptr { return s.v.Addr().Pointer() }

func (s *Slice) Begin() bool {
	s.pos = 0
	return s.pos < s.v.Len()
}

func (s *Slice) Next() bool {
	if s.pos < s.v.Len() {
		s.pos++
	}
	return s.pos < s.v.Len()
}

func (s *Slice) SerializeElement(ar Archive, name, label string) {
	if s.pos >= s.v.Len() {
		return
	}
	Field(ar, s.v.Index(s.pos).Addr().Interface(), name, label)
}

func (s *Slice) SerializeDefault(ar Archive, name, label string) {
	e := newElement(s.v.Type().Elem())
	Field(ar, e.Addr().Interface(), name, label)
}

func (s *Slice) Insert() bool {
	if s.fixed {
		return false
	}
	n := s.v.Len()
	pos := min(s.pos, n)
	ns := reflect.MakeSlice(s.v.Type(), n+1, n+1)
	reflect.Copy(ns, s.v.Slice(0, pos))
	ns.Index(pos).Set(newElement(s.v.Type().Elem()))
	reflect.Copy(ns.Slice(pos+1, n+1), s.v.Slice(pos, n))
	s.v.Set(ns)
	return true
}

func (s *Slice) Remove() bool {
	n := s.v.Len()
	if s.fixed || s.pos >= n {
		return false
	}
	ns := reflect.MakeSlice(s.v.Type(), n-1, n-1)
	reflect.Copy(ns, s.v.Slice(0, s.pos))
	reflect.Copy(ns.Slice(s.pos, n-1), s.v.Slice(s.pos+1, n))
	s.v.Set(ns)
	return true
}

func (s *Slice) MoveTo(index int) bool {
	n := s.v.Len()
	if s.pos >= n || index < 0 || index >= n {
		return false
	}
	swap := reflect.Swapper(s.v.Slice(0, n).Interface())
	for i := s.pos; i < index; i++ {
		swap(i, i+1)
	}
	for i := s.pos; i > index; i-- {
		swap(i, i-1)
	}
	s.pos = index
	return true
}

func (s *Slice) Resize(n int) bool {
	cur := s.v.Len()
	if n < 0 {
		return false
	}
	if s.fixed {
		return n == cur
	}
	switch {
	case n < cur:
		ns := reflect.MakeSlice(s.v.Type(), n, n)
		reflect.Copy(ns, s.v)
		s.v.Set(ns)
	case n > cur:
		ns := s.v
		for i, k := 0, n-cur; i < k; i++ {
			ns = reflect.Append(ns, newElement(s.v.Type().Elem()))
		}
		s.v.Set(ns)
	}
	return true
}

// newElement returns a new addressable default value of the given type.
// Pointer types get a newly allocated pointee rather than nil.
func newElement(typ reflect.Type) reflect.Value {
	e := reflect.New(typ).Elem()
	if typ.Kind() == reflect.Pointer {
		e.Set(reflect.New(typ.Elem()))
	}
	return e
}

// elementTypeName returns the type name used for elements of the given type,
// which is consistent with [TypeName] of an element value.
func elementTypeName(typ reflect.Type) string {
	e := newElement(typ)
	if typ.Kind() == reflect.Pointer {
		return TypeName(e.Interface())
	}
	return TypeName(e.Addr().Interface())
}
