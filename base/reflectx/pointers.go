// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package reflectx provides a set of helper functions for working
// with the [reflect] package: navigating pointers, converting values
// robustly between kinds, and setting struct fields from tags.
package reflectx

import (
	"reflect"
)

// These are a set of consistently named functions for navigating pointer
// types and values within the reflect system.

// NonPointerType returns a non-pointer version of the given type.
func NonPointerType(typ reflect.Type) reflect.Type {
	if typ == nil {
		return typ
	}
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	return typ
}

// NonPointerValue returns a non-pointer version of the given value.
// If it encounters a nil pointer, it returns the nil pointer.
func NonPointerValue(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return v
		}
		v = v.Elem()
	}
	return v
}

// Underlying returns the actual underlying version of the given value,
// going through any pointers and interfaces.
func Underlying(v reflect.Value) reflect.Value {
	if !v.IsValid() {
		return v
	}
	for v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return v
		}
		v = v.Elem()
	}
	return v
}

// Address returns the address of the storage the given pointer points to,
// or 0 if it is not a non-nil pointer. It is used as an identity key for
// storage locations.
func Address(ptr any) uintptr {
	if ptr == nil {
		return 0
	}
	v := reflect.ValueOf(ptr)
	switch v.Kind() {
	case reflect.Pointer, reflect.UnsafePointer:
		if v.IsNil() {
			return 0
		}
		return v.Pointer()
	}
	return 0
}
