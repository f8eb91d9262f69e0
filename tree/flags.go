// Copyright (c) 2018, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

// Flags are bit flags for the state of nodes. The constants are bit
// positions; see the bitflag package for manipulating them.
type Flags int64

const (
	// Expanded indicates that the children of the node are shown.
	Expanded Flags = iota

	// Selected indicates that the node is selected.
	Selected

	// MultiValue indicates that the attached objects disagree on the
	// value of this field. Such a node is not written back until it is
	// edited.
	MultiValue

	// LabelChanged indicates that the visible text of the node or one
	// of its descendants changed since the last render.
	LabelChanged

	// LayoutChanged indicates that the node needs a new layout.
	LayoutChanged

	// HasWarnings indicates that a validation warning is attached to
	// the node, or hidden below it while it is collapsed.
	HasWarnings

	// HasErrors indicates that a validation error is attached to
	// the node, or hidden below it while it is collapsed.
	HasErrors

	// Edited indicates that the value of the node was set by the user
	// since the last rebuild.
	Edited

	// MatchFilter indicates that the node matches the current filter.
	MatchFilter

	// BelongsToFiltered indicates that an ancestor of the node
	// matches the current filter.
	BelongsToFiltered
)
