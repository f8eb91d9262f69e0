// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slicesx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchWrap(t *testing.T) {
	s := []string{"x", "y", "x", "z"}
	is := func(v string) func(e string) bool { return func(e string) bool { return e == v } }
	assert.Equal(t, 0, SearchWrap(s, is("x"), 0))
	assert.Equal(t, 2, SearchWrap(s, is("x"), 1))
	assert.Equal(t, 0, SearchWrap(s, is("x"), 3))
	assert.Equal(t, 1, SearchWrap(s, is("y"), 2))
	assert.Equal(t, 3, SearchWrap(s, is("z"), 10))
	assert.Equal(t, 0, SearchWrap(s, is("x"), -4))
	assert.Equal(t, -1, SearchWrap(s, is("w"), 2))
	assert.Equal(t, -1, SearchWrap([]string(nil), is("w"), 0))
}
