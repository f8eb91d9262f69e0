// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reflectx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type speed float32

type level uint8

func TestToString(t *testing.T) {
	assert.Equal(t, "true", ToString(true))
	assert.Equal(t, "-12", ToString(int16(-12)))
	assert.Equal(t, "0.1", ToString(0.1))
	assert.Equal(t, "2.5", ToString(speed(2.5)))
	assert.Equal(t, "hi", ToString("hi"))
	s := "ptr"
	assert.Equal(t, "ptr", ToString(&s))
	assert.Equal(t, "", ToString(nil))
}

func TestToNumbers(t *testing.T) {
	i, err := ToInt("0x10")
	require.NoError(t, err)
	assert.Equal(t, int64(16), i)
	i, err = ToInt(3.9)
	require.NoError(t, err)
	assert.Equal(t, int64(3), i)
	_, err = ToInt("abc")
	assert.Error(t, err)

	u, err := ToUint("7")
	require.NoError(t, err)
	assert.Equal(t, uint64(7), u)
	_, err = ToUint(-1)
	assert.Error(t, err)

	f, err := ToFloat("1.25")
	require.NoError(t, err)
	assert.Equal(t, 1.25, f)

	b, err := ToBool("Yes")
	require.NoError(t, err)
	assert.True(t, b)
	b, err = ToBool(0)
	require.NoError(t, err)
	assert.False(t, b)
}

func TestSetRobust(t *testing.T) {
	var sp speed
	require.NoError(t, SetRobust(&sp, "3.5"))
	assert.Equal(t, speed(3.5), sp)

	var lv level
	require.NoError(t, SetRobust(&lv, 200))
	assert.Equal(t, level(200), lv)
	assert.Error(t, SetRobust(&lv, 300))
	assert.Equal(t, level(200), lv)

	var s string
	require.NoError(t, SetRobust(&s, 42))
	assert.Equal(t, "42", s)

	var on bool
	require.NoError(t, SetRobust(&on, "true"))
	assert.True(t, on)

	assert.Error(t, SetRobust(s, "x"))

	var xs []int
	require.NoError(t, SetRobust(&xs, []int{1, 2}))
	assert.Equal(t, []int{1, 2}, xs)
	assert.Error(t, SetRobust(&xs, "nope"))
}

type defaultsInner struct {
	Depth int `default:"3"`
}

type defaultsObj struct {
	Mode    string  `default:"node"`
	Limit   int     `default:"128"`
	Ratio   float64 `default:"0.5"`
	Enabled bool    `default:"true"`
	Inner   defaultsInner
	NoTag   int
}

func TestSetFromDefaultTags(t *testing.T) {
	obj := &defaultsObj{NoTag: 9}
	require.NoError(t, SetFromDefaultTags(obj))
	assert.Equal(t, "node", obj.Mode)
	assert.Equal(t, 128, obj.Limit)
	assert.Equal(t, 0.5, obj.Ratio)
	assert.True(t, obj.Enabled)
	assert.Equal(t, 3, obj.Inner.Depth)
	assert.Equal(t, 9, obj.NoTag)

	assert.Error(t, SetFromDefaultTags(defaultsObj{}))
	assert.Error(t, SetFromDefaultTags(&[]int{}))
}
