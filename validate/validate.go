// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package validate provides the index of validation messages reported
// by edited objects, keyed by the identity of the field that reported
// them, and attaches those messages to the nodes of a tree.
package validate

import (
	"cmp"
	"sort"

	"github.com/RoaringBitmap/roaring"

	"cogentcore.org/proptree/serial"
	"cogentcore.org/proptree/tree"
)

// Severity is the severity of a validation [Entry].
type Severity int32

const (
	// Warning is a problem that does not prevent using the object.
	Warning Severity = iota

	// Error is a problem that must be fixed.
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "warning"
}

// Key is the identity of a field: the address of its storage
// and the name of its type.
type Key struct {
	Handle uintptr
	Type   string
}

// KeyOf returns the [Key] of the given field storage or protocol implementation.
func KeyOf(handle any) Key {
	return Key{Handle: serial.Address(handle), Type: serial.TypeName(handle)}
}

func (k Key) compare(o Key) int {
	if c := cmp.Compare(k.Handle, o.Handle); c != 0 {
		return c
	}
	return cmp.Compare(k.Type, o.Type)
}

// Entry is one validation message.
type Entry struct {
	Key
	Severity Severity
	Message  string
}

// Index is a table of validation entries sorted by [Key], so that all
// the entries of one field form a contiguous range. Entries with equal
// keys keep their arrival order. Entries are never modified once added.
type Index struct {
	entries []Entry
}

// Len returns the number of entries.
func (x *Index) Len() int { return len(x.entries) }

// At returns the entry at the given index.
func (x *Index) At(i int) Entry { return x.entries[i] }

// Entries returns count entries starting at start.
func (x *Index) Entries(start, count int) []Entry {
	return x.entries[start : start+count]
}

// Clear removes all entries.
func (x *Index) Clear() { x.entries = nil }

// Add inserts the given entry after all entries with a key less than
// or equal to its key.
func (x *Index) Add(e Entry) {
	i := sort.Search(len(x.entries), func(i int) bool {
		return x.entries[i].Key.compare(e.Key) > 0
	})
	x.entries = append(x.entries, Entry{})
	copy(x.entries[i+1:], x.entries[i:])
	x.entries[i] = e
}

// Range returns the range of the entries with the given key.
func (x *Index) Range(k Key) (start, count int) {
	start = sort.Search(len(x.entries), func(i int) bool {
		return x.entries[i].Key.compare(k) >= 0
	})
	end := start
	for end < len(x.entries) && x.entries[end].Key == k {
		end++
	}
	return start, end - start
}

// MergeUnused adds a copy of every entry whose index is not in claimed
// under the given root key, so that messages about fields without a
// node in the tree stay visible on the root. Entries that already have
// the root key are not copied. It returns the number of copies added.
func (x *Index) MergeUnused(claimed *roaring.Bitmap, root Key) int {
	var unused []Entry
	for i, e := range x.entries {
		if e.Key == root || claimed.Contains(uint32(i)) {
			continue
		}
		e.Key = root
		unused = append(unused, e)
	}
	for _, e := range unused {
		x.Add(e)
	}
	return len(unused)
}

// Attach attaches the entries of the index to the nodes of the tree
// rooted at root. Every node claims the range of entries with its key,
// unless an earlier node in tree order already claimed it. Nodes with
// entries get the [tree.HasWarnings] or [tree.HasErrors] flag, and so do
// their collapsed ancestors. In outline mode, the elements of collapsed
// containers claim nothing. Unclaimed entries are then merged onto the
// root with [Index.MergeUnused]. It returns the number of merged entries.
func (x *Index) Attach(root *tree.Node, outline bool) int {
	claimed := roaring.New()
	x.attach(root, claimed, outline)
	rootKey := KeyOf(root.Handle)
	merged := x.MergeUnused(claimed, rootKey)
	if merged > 0 {
		x.attach(root, roaring.New(), outline)
	}
	return merged
}

func (x *Index) attach(root *tree.Node, claimed *roaring.Bitmap, outline bool) {
	root.WalkDown(func(n *tree.Node) bool {
		n.ValidatorIndex, n.ValidatorCount = 0, 0
		n.SetFlag(false, tree.HasWarnings, tree.HasErrors)
		return tree.Continue
	})
	root.WalkDown(func(n *tree.Node) bool {
		if n.Handle != nil || n == root {
			x.claim(n, claimed)
		}
		if outline && n != root && n.IsContainer() && !n.Is(tree.Expanded) {
			return tree.Break
		}
		return tree.Continue
	})
}

func (x *Index) claim(n *tree.Node, claimed *roaring.Bitmap) {
	start, count := x.Range(KeyOf(n.Handle))
	if count == 0 || claimed.Contains(uint32(start)) {
		return
	}
	claimed.AddRange(uint64(start), uint64(start+count))
	n.ValidatorIndex, n.ValidatorCount = start, count
	flags := []tree.Flags{}
	for _, e := range x.entries[start : start+count] {
		if e.Severity == Error {
			flags = append(flags, tree.HasErrors)
		} else {
			flags = append(flags, tree.HasWarnings)
		}
	}
	n.SetFlag(true, flags...)
	n.WalkUpParent(func(p *tree.Node) bool {
		if !p.Is(tree.Expanded) {
			p.SetFlag(true, flags...)
			return tree.Break
		}
		return tree.Continue
	})
}
