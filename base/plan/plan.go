// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package plan provides an efficient mechanism for rebuilding a slice
// of keyed elements while reusing as many of the previous elements as
// possible. Elements are identified by a name plus a type name, and the
// matching is order-preserving: each search starts right after the
// previous match, so an unchanged list is matched in a single pass.
package plan

import (
	"log/slog"

	"cogentcore.org/proptree/base/slicesx"
)

// Namer is an interface that types can implement to specify their name in a plan context.
type Namer interface {

	// PlanName returns the name of the object in a plan context.
	PlanName() string
}

// Keyer is a [Namer] that also has a type name. Both must be equal
// for two elements to be considered the same.
type Keyer interface {
	Namer

	// PlanType returns the type name of the object in a plan context.
	PlanType() string
}

// Matches returns whether the given element has the given name and type name.
func Matches[T Keyer](e T, name, typeName string) bool {
	return e.PlanName() == name && e.PlanType() == typeName
}

// Find returns the index of the first element in s with the given
// name and type name, searching forward from start and then wrapping
// around once. It returns -1 if there is no such element.
func Find[T Keyer](s []T, name, typeName string, start int) int {
	return slicesx.SearchWrap(s, func(e T) bool { return Matches(e, name, typeName) }, start)
}

// Reconciler hands out elements of a previous slice by key, in the
// order in which a new version of the slice is being built. Each
// previous element can be taken at most once; whatever is never taken
// is reported by [Reconciler.Unused].
type Reconciler[T Keyer] struct {
	prev  []T
	taken []bool
	next  int
}

// NewReconciler returns a new [Reconciler] over the given previous elements.
// The slice is not modified.
func NewReconciler[T Keyer](prev []T) *Reconciler[T] {
	return &Reconciler[T]{prev: prev, taken: make([]bool, len(prev))}
}

// Take returns the previous element with the given name and type name,
// searching from just after the last match and wrapping around once.
// It returns false if no untaken element matches.
func (r *Reconciler[T]) Take(name, typeName string) (T, bool) {
	idx := slicesx.SearchWrap(r.prev, func(e T) bool {
		return Matches(e, name, typeName)
	}, r.next)
	// an equal key may have been taken already; scan the rest for an untaken one
	if idx >= 0 && r.taken[idx] {
		idx = -1
		for i := range r.prev {
			j := (r.next + i) % len(r.prev)
			if !r.taken[j] && Matches(r.prev[j], name, typeName) {
				idx = j
				break
			}
		}
	}
	if idx < 0 {
		var zv T
		return zv, false
	}
	r.taken[idx] = true
	r.next = idx + 1
	return r.prev[idx], true
}

// Unused returns the previous elements that were never taken, in order.
func (r *Reconciler[T]) Unused() []T {
	var un []T
	for i, e := range r.prev {
		if !r.taken[i] {
			un = append(un, e)
		}
	}
	return un
}

// Discard calls destroy on every unused element.
func (r *Reconciler[T]) Discard(destroy func(e T)) {
	if destroy == nil {
		return
	}
	un := r.Unused()
	if len(un) > 0 {
		slog.Debug("plan.Reconciler: discarding unmatched elements", "count", len(un))
	}
	for _, e := range un {
		destroy(e)
	}
}
