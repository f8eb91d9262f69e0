// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reflectx

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNonPointerType(t *testing.T) {
	assert.Equal(t, reflect.TypeOf((*int)(nil)).Elem(), NonPointerType(reflect.TypeOf((*int)(nil)).Elem()))
	assert.Equal(t, reflect.TypeOf((*int)(nil)).Elem(), NonPointerType(reflect.TypeOf((**int)(nil)).Elem()))
	assert.Equal(t, reflect.TypeOf((*int)(nil)).Elem(), NonPointerType(reflect.TypeOf((***int)(nil)).Elem()))

	assert.Equal(t, reflect.TypeOf((*any)(nil)).Elem(), NonPointerType(reflect.TypeOf((**any)(nil)).Elem()))
	assert.Equal(t, nil, NonPointerType(reflect.TypeOf(nil)))
}

func TestNonPointerValue(t *testing.T) {
	v := 1
	rv := reflect.ValueOf(v)
	assert.True(t, NonPointerValue(reflect.ValueOf(v)).Equal(rv))
	assert.True(t, NonPointerValue(reflect.ValueOf(&v)).Equal(rv))

	p := &v
	assert.True(t, NonPointerValue(reflect.ValueOf(&p)).Equal(rv))

	n := (*int)(nil)
	assert.Equal(t, reflect.Pointer, NonPointerValue(reflect.ValueOf(n)).Kind())
}

func TestUnderlying(t *testing.T) {
	v := 5
	a := any(&v)
	u := Underlying(reflect.ValueOf(&a))
	assert.Equal(t, reflect.Int, u.Kind())
	assert.Equal(t, int64(5), u.Int())
}

func TestAddress(t *testing.T) {
	type pair struct {
		A int
		B int
	}
	p := &pair{}
	assert.NotZero(t, Address(p))
	assert.Equal(t, Address(p), Address(&p.A))
	assert.NotEqual(t, Address(&p.A), Address(&p.B))
	assert.Zero(t, Address(nil))
	assert.Zero(t, Address((*int)(nil)))
	assert.Zero(t, Address(3))
}
