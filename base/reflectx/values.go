// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reflectx

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"golang.org/x/exp/constraints"
)

// KindIsBasic returns whether the given [reflect.Kind] is a basic,
// elemental type such as Int, Float, Bool, or String.
func KindIsBasic(vk reflect.Kind) bool {
	return vk >= reflect.Bool && vk <= reflect.Complex128 || vk == reflect.String
}

// KindIsInt returns whether the given [reflect.Kind] is a signed integer kind.
func KindIsInt(vk reflect.Kind) bool {
	return vk >= reflect.Int && vk <= reflect.Int64
}

// KindIsUint returns whether the given [reflect.Kind] is an unsigned integer kind.
func KindIsUint(vk reflect.Kind) bool {
	return vk >= reflect.Uint && vk <= reflect.Uintptr
}

// KindIsFloat returns whether the given [reflect.Kind] is a floating point kind.
func KindIsFloat(vk reflect.Kind) bool {
	return vk == reflect.Float32 || vk == reflect.Float64
}

// number returns the value of the given basic reflect value as type T.
func number[T constraints.Integer | constraints.Float](v reflect.Value) (T, bool) {
	switch {
	case KindIsInt(v.Kind()):
		return T(v.Int()), true
	case KindIsUint(v.Kind()):
		return T(v.Uint()), true
	case KindIsFloat(v.Kind()):
		return T(v.Float()), true
	case v.Kind() == reflect.Bool:
		if v.Bool() {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// ToBool robustly converts to a bool any basic elemental type
// (including pointers to such) using a big type switch organized
// for greatest efficiency. Strings are parsed with [strconv.ParseBool]
// after lowercasing, with "yes" and "no" also accepted.
func ToBool(v any) (bool, error) {
	switch vt := v.(type) {
	case bool:
		return vt, nil
	case *bool:
		if vt == nil {
			return false, errors.New("got nil *bool")
		}
		return *vt, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(vt)) {
		case "yes", "on":
			return true, nil
		case "no", "off":
			return false, nil
		}
		return strconv.ParseBool(strings.ToLower(strings.TrimSpace(vt)))
	}
	rv := NonPointerValue(reflect.ValueOf(v))
	if rv.Kind() == reflect.String {
		return ToBool(rv.String())
	}
	if n, ok := number[float64](rv); ok {
		return n != 0, nil
	}
	return false, fmt.Errorf("got value %v of type %T that cannot be converted to bool", v, v)
}

// ToInt robustly converts to an int64 any basic elemental type
// (including pointers to such).
func ToInt(v any) (int64, error) {
	switch vt := v.(type) {
	case int:
		return int64(vt), nil
	case int64:
		return vt, nil
	case string:
		s := strings.TrimSpace(vt)
		if i, err := strconv.ParseInt(s, 0, 64); err == nil {
			return i, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, err
		}
		return int64(f), nil
	}
	rv := NonPointerValue(reflect.ValueOf(v))
	if rv.Kind() == reflect.String {
		return ToInt(rv.String())
	}
	if n, ok := number[int64](rv); ok {
		return n, nil
	}
	return 0, fmt.Errorf("got value %v of type %T that cannot be converted to int", v, v)
}

// ToUint robustly converts to a uint64 any basic elemental type
// (including pointers to such). Negative values are an error.
func ToUint(v any) (uint64, error) {
	switch vt := v.(type) {
	case uint64:
		return vt, nil
	case string:
		s := strings.TrimSpace(vt)
		if i, err := strconv.ParseUint(s, 0, 64); err == nil {
			return i, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, err
		}
		if f < 0 {
			return 0, fmt.Errorf("got negative value %v for unsigned type", f)
		}
		return uint64(f), nil
	}
	rv := NonPointerValue(reflect.ValueOf(v))
	if rv.Kind() == reflect.String {
		return ToUint(rv.String())
	}
	if KindIsInt(rv.Kind()) && rv.Int() < 0 {
		return 0, fmt.Errorf("got negative value %v for unsigned type", rv.Int())
	}
	if KindIsFloat(rv.Kind()) && rv.Float() < 0 {
		return 0, fmt.Errorf("got negative value %v for unsigned type", rv.Float())
	}
	if n, ok := number[uint64](rv); ok {
		return n, nil
	}
	return 0, fmt.Errorf("got value %v of type %T that cannot be converted to uint", v, v)
}

// ToFloat robustly converts to a float64 any basic elemental type
// (including pointers to such).
func ToFloat(v any) (float64, error) {
	switch vt := v.(type) {
	case float64:
		return vt, nil
	case float32:
		return float64(vt), nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(vt), 64)
	}
	rv := NonPointerValue(reflect.ValueOf(v))
	if rv.Kind() == reflect.String {
		return ToFloat(rv.String())
	}
	if n, ok := number[float64](rv); ok {
		return n, nil
	}
	return 0, fmt.Errorf("got value %v of type %T that cannot be converted to float", v, v)
}

// ToString robustly converts anything to a string. Basic kinds are
// formatted with [strconv] so that the result can be parsed back
// losslessly; anything else uses [fmt.Sprint].
func ToString(v any) string {
	switch vt := v.(type) {
	case nil:
		return ""
	case string:
		return vt
	case *string:
		if vt == nil {
			return ""
		}
		return *vt
	case fmt.Stringer:
		return vt.String()
	}
	rv := NonPointerValue(reflect.ValueOf(v))
	switch {
	case !rv.IsValid() || rv.Kind() == reflect.Pointer:
		return ""
	case rv.Kind() == reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case KindIsInt(rv.Kind()):
		return strconv.FormatInt(rv.Int(), 10)
	case KindIsUint(rv.Kind()):
		return strconv.FormatUint(rv.Uint(), 10)
	case rv.Kind() == reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 32)
	case rv.Kind() == reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 64)
	case rv.Kind() == reflect.String:
		return rv.String()
	}
	return fmt.Sprint(rv.Interface())
}

// SetRobust robustly sets the 'to' value from the 'from' value.
// The 'to' value must be a pointer to a basic kind. It handles
// named types (for example `type Speed float32`), range checks
// the result against the destination kind, and returns an error
// when the conversion is not possible.
func SetRobust(to, from any) error {
	rto := reflect.ValueOf(to)
	if rto.Kind() != reflect.Pointer || rto.IsNil() {
		return fmt.Errorf("reflectx.SetRobust: destination must be a non-nil pointer, not %T", to)
	}
	v := rto.Elem()
	switch {
	case v.Kind() == reflect.Bool:
		b, err := ToBool(from)
		if err != nil {
			return err
		}
		v.SetBool(b)
	case KindIsInt(v.Kind()):
		i, err := ToInt(from)
		if err != nil {
			return err
		}
		if v.OverflowInt(i) {
			return fmt.Errorf("reflectx.SetRobust: value %d overflows %v", i, v.Type())
		}
		v.SetInt(i)
	case KindIsUint(v.Kind()):
		u, err := ToUint(from)
		if err != nil {
			return err
		}
		if v.OverflowUint(u) {
			return fmt.Errorf("reflectx.SetRobust: value %d overflows %v", u, v.Type())
		}
		v.SetUint(u)
	case KindIsFloat(v.Kind()):
		f, err := ToFloat(from)
		if err != nil {
			return err
		}
		if v.OverflowFloat(f) {
			return fmt.Errorf("reflectx.SetRobust: value %g overflows %v", f, v.Type())
		}
		v.SetFloat(f)
	case v.Kind() == reflect.String:
		v.SetString(ToString(from))
	default:
		rf := reflect.ValueOf(from)
		if !rf.IsValid() || !rf.Type().AssignableTo(v.Type()) {
			return fmt.Errorf("reflectx.SetRobust: cannot set %v from %T", v.Type(), from)
		}
		v.Set(rf)
	}
	return nil
}
