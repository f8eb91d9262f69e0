// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"cogentcore.org/proptree/base/keylist"
	"cogentcore.org/proptree/serial"
	"cogentcore.org/proptree/tree"
)

// TypeDesc describes one concrete type of a base type, together with
// its default template.
type TypeDesc struct {
	serial.TypeDesc

	// Template is the default node subtree of the type. It is only ever
	// used as a clone source. It is nil while it is being built.
	Template *tree.Node
}

// Registry caches, per base type, the known concrete types and their
// default templates. The first entry of every polymorphic base type is
// the null entry with an empty name. Container element types are
// registered as a base type with one concrete type of the same name.
// The cache only grows until [Registry.Clear].
type Registry struct {
	bases map[string]*keylist.List[string, *TypeDesc]
}

// NewRegistry returns a new empty [Registry].
func NewRegistry() *Registry {
	return &Registry{bases: map[string]*keylist.List[string, *TypeDesc]{}}
}

// Clear removes all types and templates.
func (r *Registry) Clear() {
	clear(r.bases)
}

// Len returns the number of registered base types.
func (r *Registry) Len() int { return len(r.bases) }

// IsRegistered returns whether the concrete type with the given
// name is registered for the given base type.
func (r *Registry) IsRegistered(base, name string) bool {
	return r.bases[base].IndexByKey(name) >= 0
}

// register adds the given concrete type for the given base type
// and returns its descriptor, whose template is filled in later.
func (r *Registry) register(base string, desc serial.TypeDesc) *TypeDesc {
	kl := r.bases[base]
	if kl == nil {
		kl = keylist.New[string, *TypeDesc]()
		r.bases[base] = kl
	}
	td := &TypeDesc{TypeDesc: desc}
	kl.Set(desc.Name, td)
	return td
}

// Default returns the template of the concrete type at the
// given index for the given base type, or nil.
func (r *Registry) Default(base string, index int) *tree.Node {
	kl := r.bases[base]
	if kl == nil || index < 0 || index >= kl.Len() {
		return nil
	}
	return kl.Values[index].Template
}

// DefaultByName returns the template of the concrete type with
// the given name for the given base type, or nil.
func (r *Registry) DefaultByName(base, name string) *tree.Node {
	td, ok := r.bases[base].AtTry(name)
	if !ok {
		return nil
	}
	return td.Template
}

// Desc returns the descriptor of the concrete type with the given
// name for the given base type.
func (r *Registry) Desc(base, name string) (*TypeDesc, bool) {
	return r.bases[base].AtTry(name)
}

// Types returns the descriptors of the concrete types of the given base type.
func (r *Registry) Types(base string) []*TypeDesc {
	kl := r.bases[base]
	if kl == nil {
		return nil
	}
	return kl.Values
}

// Labels returns the labels of the concrete types of the given base
// type, in registration order, for use in pick lists.
func (r *Registry) Labels(base string) []string {
	types := r.Types(base)
	labels := make([]string, len(types))
	for i, td := range types {
		labels[i] = td.Label
	}
	return labels
}
