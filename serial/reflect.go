// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package serial

import (
	"reflect"

	"cogentcore.org/proptree/base/labels"
)

// Reflect returns a [Serializer] that visits the exported fields of the
// struct that ptr points to, in declaration order, using [Field].
//
// Field names default to the Go field name and can be changed with a
// `prop:"name"` tag; `prop:"-"` skips the field. Labels default to
// [labels.FriendlyFieldName] and can be set with a `label:"..."` tag.
// Embedded structs are inlined. If the struct implements [Validator],
// its Validate method is called after all fields are visited.
func Reflect(ptr any) Serializer {
	v := reflect.ValueOf(ptr)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		panic("serial.Reflect: argument must be a non-nil pointer to a struct")
	}
	return &reflectStruct{v: v.Elem()}
}

type reflectStruct struct {
	v reflect.Value
}

func (r *reflectStruct) Serialize(ar Archive) {
	serializeFields(ar, r.v)
	if vd, ok := r.v.Addr().Interface().(Validator); ok {
		vd.Validate(ar)
	}
}

func serializeFields(ar Archive, v reflect.Value) {
	typ := v.Type()
	for i, n := 0, typ.NumField(); i < n; i++ {
		f := typ.Field(i)
		if !f.IsExported() {
			continue
		}
		name := f.Name
		if tag, ok := f.Tag.Lookup("prop"); ok {
			if tag == "-" {
				continue
			}
			if tag != "" {
				name = tag
			}
		}
		fv := v.Field(i)
		if f.Anonymous && f.Type.Kind() == reflect.Struct {
			if _, ok := fv.Addr().Interface().(Serializer); !ok {
				serializeFields(ar, fv)
				continue
			}
		}
		label, ok := f.Tag.Lookup("label")
		if !ok {
			label = labels.FriendlyFieldName(f.Name)
		}
		Field(ar, fv.Addr().Interface(), name, label)
	}
}

func (r *reflectStruct) TypeName() string {
	if tn, ok := r.v.Addr().Interface().(TypeNamer); ok {
		return tn.TypeName()
	}
	return r.v.Type().String()
}

func (r *reflectStruct) Address() uintptr { return r.v.Addr().Pointer() }
