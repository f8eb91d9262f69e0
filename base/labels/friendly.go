// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package labels provides functions for turning program names
// (struct fields, Go types) into user-friendly display labels.
package labels

import (
	"reflect"
	"strings"
	"unicode"

	"cogentcore.org/proptree/base/reflectx"
)

// Labeler interface provides a GUI-appropriate label for an item,
// via a Label string method.
type Labeler interface {

	// Label returns a GUI-appropriate label for item
	Label() string
}

// ToLabel returns the label of the given value if it implements [Labeler],
// and false otherwise.
func ToLabel(v any) (string, bool) {
	if lb, ok := v.(Labeler); ok {
		return lb.Label(), true
	}
	return "", false
}

// FriendlyFieldName returns a sentence case version of the given
// CamelCase field name, keeping acronyms together: "MaxHP" becomes
// "Max HP" and "SpawnRadius" becomes "Spawn radius".
func FriendlyFieldName(name string) string {
	rs := []rune(name)
	var b strings.Builder
	for i, r := range rs {
		if i > 0 && unicode.IsUpper(r) {
			prevLower := unicode.IsLower(rs[i-1]) || unicode.IsDigit(rs[i-1])
			nextLower := i+1 < len(rs) && unicode.IsLower(rs[i+1])
			if prevLower || (nextLower && unicode.IsUpper(rs[i-1])) {
				b.WriteRune(' ')
			}
			if nextLower {
				r = unicode.ToLower(r)
			}
		}
		if i == 0 {
			r = unicode.ToUpper(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FriendlyTypeName returns a user-friendly version of the name of the given type.
// It transforms it into sentence case, excludes the package, and converts various
// builtin types into more friendly forms (eg: "int" to "Number").
func FriendlyTypeName(typ reflect.Type) string {
	nptyp := reflectx.NonPointerType(typ)
	if nptyp == nil {
		return "None"
	}
	nm := nptyp.Name()
	if nm != "" {
		switch nm {
		case "string":
			return "Text"
		case "bool":
			return "Switch"
		case "float32", "float64", "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64", "uintptr":
			return "Number"
		}
		return FriendlyFieldName(nm)
	}
	switch nptyp.Kind() {
	case reflect.Slice, reflect.Array:
		bnm := FriendlyTypeName(nptyp.Elem())
		if strings.HasSuffix(bnm, "s") {
			return "List of " + bnm
		}
		return bnm + "s"
	}
	if nptyp.Kind() == reflect.Interface {
		return "Value"
	}
	return nptyp.String()
}
