// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the settings of an edit session,
// which can be loaded from and saved to TOML files.
package config

import (
	"cogentcore.org/proptree/base/errors"
	"cogentcore.org/proptree/base/iox/tomlx"
	"cogentcore.org/proptree/base/reflectx"
	"cogentcore.org/proptree/undo"
)

// Settings are the settings of an edit session.
type Settings struct {

	// UndoMode is the snapshot granularity of the undo log:
	// tree, node or off.
	UndoMode undo.Mode `default:"node"`

	// UndoLimit is the maximum number of undo records kept.
	// Zero means no limit.
	UndoLimit int `default:"128"`

	// ExpandLevels is the number of levels of newly created nodes
	// that start expanded, counting the root as level zero.
	ExpandLevels int `default:"1"`

	// OutlineMode hides the elements of collapsed containers from
	// validation, so that their messages show on the root.
	OutlineMode bool

	// ShowContainerIndices shows container elements by their index.
	ShowContainerIndices bool `default:"true"`

	// NullLabel is the label of an empty polymorphic field.
	NullLabel string `default:"[ null ]"`

	// ElementName is the name given to container element nodes.
	ElementName string `default:"element"`
}

// Default returns new settings with default values.
func Default() *Settings {
	s := &Settings{}
	errors.Log(reflectx.SetFromDefaultTags(s))
	return s
}

// Open returns the default settings overlaid with the values
// in the given TOML file.
func Open(filename string) (*Settings, error) {
	s := Default()
	if err := tomlx.Open(s, filename); err != nil {
		return s, err
	}
	return s, nil
}

// Save saves the settings to the given TOML file.
func (s *Settings) Save(filename string) error {
	return tomlx.Save(s, filename)
}
