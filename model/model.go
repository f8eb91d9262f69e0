// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package model synchronizes live objects with node trees. [Model.Build]
// visits an object through the serial protocol and produces a tree,
// reusing the nodes of the previous tree wherever a field with the same
// name and type name is found again, so that user interface state
// survives rebuilding. [Model.WriteBack] walks a tree together with the
// object and writes the node values into it.
package model

import (
	"strings"

	"cogentcore.org/proptree/base/labels"
	"cogentcore.org/proptree/config"
	"cogentcore.org/proptree/serial"
	"cogentcore.org/proptree/tree"
	"cogentcore.org/proptree/validate"
)

// RootName is the name of the root node of every tree.
const RootName = "root"

// Model builds and writes back trees, and owns the registry of
// default templates used while doing so.
type Model struct {

	// Settings are the settings used for building.
	Settings *config.Settings

	// Registry is the cache of polymorphic types and default templates.
	Registry *Registry
}

// New returns a new [Model] with the given settings,
// or the default settings if they are nil.
func New(settings *config.Settings) *Model {
	if settings == nil {
		settings = config.Default()
	}
	return &Model{Settings: settings, Registry: NewRegistry()}
}

// Build returns the tree of the given object. Nodes of the previous
// tree prev, which may be nil, are reused where the object still has
// a field with their name and type name; the other previous nodes are
// discarded. If index is non-nil, validation messages reported by the
// object are added to it.
func (m *Model) Build(prev *tree.Node, s serial.Serializer, index *validate.Index) *tree.Node {
	holder := &tree.Node{}
	if prev != nil {
		holder.Children = []*tree.Node{prev}
	}
	b := &builder{model: m, index: index}
	b.push(holder, nil)
	b.Struct(s, RootName, rootLabel(s))
	b.pop()
	root := holder.Children[0]
	root.Parent = nil
	return root
}

// WriteBack writes the values of the tree rooted at root into the given
// object. Leaves that are not bound to a live object and were not edited
// are skipped, and so are multi-value nodes. Queued container edits are
// applied before the elements are written. The root is matched to the
// object regardless of its type, so one tree can be written into
// objects of different types that share fields.
func (m *Model) WriteBack(root *tree.Node, s serial.Serializer) {
	w := &writer{model: m}
	w.descend(root, s, false)
}

// Validate attaches the entries of the given index to the tree
// rooted at root, and returns the number of entries merged onto
// the root. See [validate.Index.Attach].
func (m *Model) Validate(root *tree.Node, index *validate.Index) int {
	return index.Attach(root, m.Settings.OutlineMode)
}

// rootLabel returns the label of the root node of the given object.
func rootLabel(s serial.Serializer) string {
	if lb, ok := labels.ToLabel(s); ok {
		return lb
	}
	tn := serial.TypeName(s)
	if i := strings.LastIndex(tn, "."); i >= 0 {
		tn = tn[i+1:]
	}
	return labels.FriendlyFieldName(tn)
}
