// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package labels

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

type spawnPoint struct{}

type named struct{}

func (named) Label() string { return "Named thing" }

func TestFriendlyFieldName(t *testing.T) {
	assert.Equal(t, "Spawn radius", FriendlyFieldName("SpawnRadius"))
	assert.Equal(t, "Max HP", FriendlyFieldName("MaxHP"))
	assert.Equal(t, "HP regen", FriendlyFieldName("HPRegen"))
	assert.Equal(t, "Name", FriendlyFieldName("Name"))
	assert.Equal(t, "Layer2 mask", FriendlyFieldName("Layer2Mask"))
	assert.Equal(t, "", FriendlyFieldName(""))
}

func TestFriendlyTypeName(t *testing.T) {
	assert.Equal(t, "Number", FriendlyTypeName(reflect.TypeOf((*float32)(nil)).Elem()))
	assert.Equal(t, "Text", FriendlyTypeName(reflect.TypeOf((**string)(nil)).Elem()))
	assert.Equal(t, "Spawn point", FriendlyTypeName(reflect.TypeOf((*spawnPoint)(nil)).Elem()))
	assert.Equal(t, "Numbers", FriendlyTypeName(reflect.TypeOf((*[]int)(nil)).Elem()))
	assert.Equal(t, "List of Texts", FriendlyTypeName(reflect.TypeOf((*[][]string)(nil)).Elem()))
	assert.Equal(t, "None", FriendlyTypeName(nil))
}

func TestToLabel(t *testing.T) {
	lb, ok := ToLabel(named{})
	assert.True(t, ok)
	assert.Equal(t, "Named thing", lb)
	_, ok = ToLabel(3)
	assert.False(t, ok)
}
