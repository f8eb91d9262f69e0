// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package serial defines the visitor protocol through which live objects
// expose their editable state. An object implements [Serializer] and, when
// visited, calls back into an [Archive] once per field. The same protocol is
// used in both directions: an output archive reads the object into a tree,
// and an input archive writes a tree back into the object.
//
// Besides the interfaces, the package provides ready-made protocol
// implementations for common Go shapes: [Slice] for slices and arrays,
// [Poly] with a [TypeFactory] for polymorphic interface fields, and
// [Reflect] for plain structs.
package serial

import (
	"log/slog"
	"reflect"

	"cogentcore.org/proptree/base/reflectx"
)

// Serializer is implemented by every object that can be visited by an [Archive].
// Serialize must visit the same fields in the same order, with the same names,
// for a given object state.
type Serializer interface {
	Serialize(ar Archive)
}

// Archive receives one call per field of a visited object.
type Archive interface {

	// IsInput returns whether this archive writes into the object
	// (tree to object) rather than reading from it.
	IsInput() bool

	// Value visits a primitive field. ptr must be a non-nil pointer
	// to a value of a basic kind (bool, integers, floats, string),
	// including named types of those kinds.
	Value(ptr any, name, label string)

	// Struct visits a nested object.
	Struct(s Serializer, name, label string)

	// Container visits a sequence of elements.
	Container(c Container, name, label string)

	// Pointer visits a polymorphic field.
	Pointer(p Pointer, name, label string)

	// Warning reports a validation warning about the field stored at ptr.
	Warning(ptr any, message string)

	// Error reports a validation error about the field stored at ptr.
	Error(ptr any, message string)
}

// TypeNamer is implemented by objects that provide their own stable type name.
// Without it, the Go type name is used.
type TypeNamer interface {
	TypeName() string
}

// Addresser is implemented by protocol adapters that wrap the real
// storage of a value, so that the identity of the wrapped storage can be
// used instead of the identity of the adapter.
type Addresser interface {
	Address() uintptr
}

// Validator is implemented by objects that report validation messages
// after their fields have been visited by [Reflect].
type Validator interface {
	Validate(ar Archive)
}

// TypeName returns the type name of the given value: its [TypeNamer] name
// if it has one, and otherwise the name of its non-pointer Go type.
func TypeName(v any) string {
	if v == nil {
		return ""
	}
	if tn, ok := v.(TypeNamer); ok {
		return tn.TypeName()
	}
	return reflectx.NonPointerType(reflect.TypeOf(v)).String()
}

// Address returns the identity of the storage behind the given handle:
// the wrapped address for an [Addresser], the pointer value for a pointer,
// and 0 otherwise.
func Address(handle any) uintptr {
	if ad, ok := handle.(Addresser); ok {
		return ad.Address()
	}
	return reflectx.Address(handle)
}

// SerializerOf returns a [Serializer] for the given value, which must be
// a [Serializer] itself or a non-nil pointer to a struct (visited through
// [Reflect]). It returns nil otherwise.
func SerializerOf(v any) Serializer {
	if v == nil {
		return nil
	}
	if s, ok := v.(Serializer); ok {
		if isNilPointer(v) {
			return nil
		}
		return s
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && !rv.IsNil() && rv.Elem().Kind() == reflect.Struct {
		return Reflect(v)
	}
	return nil
}

// Field visits the value stored at ptr with the archive call that fits its
// shape: protocol implementations ([Container], [Pointer], [Serializer])
// are passed through, basic kinds become [Archive.Value], structs are
// visited through [Reflect], slices and arrays become containers, and
// interface fields whose type has a registered [Factory] become pointers.
// Other kinds (maps, funcs, channels) are skipped.
func Field(ar Archive, ptr any, name, label string) {
	switch v := ptr.(type) {
	case Container:
		ar.Container(v, name, label)
		return
	case Pointer:
		ar.Pointer(v, name, label)
		return
	case Serializer:
		ar.Struct(v, name, label)
		return
	}
	rv := reflect.ValueOf(ptr)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		slog.Error("serial.Field: value must be a non-nil pointer", "name", name, "type", reflect.TypeOf(ptr))
		return
	}
	ev := rv.Elem()
	switch ev.Kind() {
	case reflect.Struct:
		ar.Struct(Reflect(ptr), name, label)
	case reflect.Slice:
		ar.Container(reflectSlice(ev, false), name, label)
	case reflect.Array:
		ar.Container(reflectSlice(ev, true), name, label)
	case reflect.Interface:
		f := FactoryFor(ev.Type())
		if f == nil {
			slog.Debug("serial.Field: no factory registered for interface field", "name", name, "type", ev.Type())
			return
		}
		ar.Pointer(&Poly{v: ev, factory: f}, name, label)
	case reflect.Pointer:
		if ev.IsNil() {
			return
		}
		Field(ar, ev.Interface(), name, label)
	default:
		if reflectx.KindIsBasic(ev.Kind()) && ev.Kind() != reflect.Complex64 && ev.Kind() != reflect.Complex128 {
			ar.Value(ptr, name, label)
		}
	}
}

// isNilPointer returns whether v holds a nil pointer.
func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
