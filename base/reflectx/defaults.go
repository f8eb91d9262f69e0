// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reflectx

import (
	"errors"
	"fmt"
	"reflect"
)

// SetFromDefaultTags sets the values of fields in the given struct based on
// `default:` default value struct field tags. It recurses into embedded and
// named struct fields. It returns any errors joined together.
func SetFromDefaultTags(obj any) error {
	if obj == nil {
		return nil
	}
	v := NonPointerValue(reflect.ValueOf(obj))
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("reflectx.SetFromDefaultTags: object must be a struct, not %v", v.Kind())
	}
	if !v.CanAddr() {
		return fmt.Errorf("reflectx.SetFromDefaultTags: object must be a pointer to a struct")
	}
	return setFromDefaultTags(v)
}

func setFromDefaultTags(v reflect.Value) error {
	var errs []error
	typ := v.Type()
	for i, n := 0, typ.NumField(); i < n; i++ {
		f := typ.Field(i)
		if !f.IsExported() {
			continue
		}
		fv := v.Field(i)
		if f.Type.Kind() == reflect.Struct {
			errs = append(errs, setFromDefaultTags(fv))
			continue
		}
		def, ok := f.Tag.Lookup("default")
		if !ok {
			continue
		}
		if err := SetRobust(fv.Addr().Interface(), def); err != nil {
			errs = append(errs, fmt.Errorf("field %q: %w", f.Name, err))
		}
	}
	return errors.Join(errs...)
}
