// Copyright (c) 2018, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tree provides the node tree that mirrors the fields of an
// edited object. Each [Node] is one serialized field: its name and type
// name identify it across rebuilds, its [Value] holds the current value
// or composite metadata, and its [Flags] carry the user interface state
// that must survive rebuilding the tree.
package tree

import (
	"log/slog"
	"slices"
	"strconv"

	"github.com/jinzhu/copier"

	"cogentcore.org/proptree/base/bitflag"
	"cogentcore.org/proptree/serial"
)

// Node is one entry in the tree. A node is owned by its parent through
// the parent's Children slice; the Parent field is a back reference only.
type Node struct {

	// Name is the stable name of the field, used together with
	// TypeName to match nodes across rebuilds. It is not user facing.
	Name string

	// Label is the display text of the field. It may repeat across siblings.
	Label string

	// TypeName identifies the serialized type of the field.
	TypeName string

	// Value is the current value or composite metadata of the field.
	Value Value `copier:"-"`

	// Flags are the state flags of the node.
	Flags Flags

	// ValidatorIndex is the index of the first validation entry
	// attached to this node.
	ValidatorIndex int

	// ValidatorCount is the number of validation entries attached to this node.
	ValidatorCount int

	// Handle is the storage of the field in the live object: a pointer
	// for leaves, or the protocol implementation for composite fields.
	// It is nil for nodes that are not bound to a live object.
	Handle any `copier:"-"`

	// Template is the default element template of a container node.
	// It is shared, never mutated, and owned by the registry.
	Template *Node `copier:"-"`

	// Parent is the parent of this node, or nil for the root.
	Parent *Node `copier:"-"`

	// Children are the child nodes in display order.
	Children []*Node `copier:"-"`

	// ops are the pending container edits of a container node.
	ops []ContainerOp
}

// New returns a new node with the given identity and value.
func New(name, label, typeName string, value Value) *Node {
	return &Node{Name: name, Label: label, TypeName: typeName, Value: value}
}

// String returns the name of the node with its index path.
func (n *Node) String() string {
	return n.Name + " " + pathString(n.IndexPath())
}

func pathString(path []int) string {
	s := "/"
	for i, p := range path {
		if i > 0 {
			s += "/"
		}
		s += strconv.Itoa(p)
	}
	return s
}

// PlanName implements [plan.Namer].
func (n *Node) PlanName() string { return n.Name }

// PlanType implements [plan.Keyer].
func (n *Node) PlanType() string { return n.TypeName }

// Is returns whether the given flag is set.
func (n *Node) Is(flag Flags) bool {
	return bitflag.Has(n.Flags, flag)
}

// SetFlag sets the given flags to the given state.
func (n *Node) SetFlag(on bool, flags ...Flags) {
	bitflag.SetState(&n.Flags, on, flags...)
}

// ValueString returns the string form of the value of the node.
func (n *Node) ValueString() string {
	if n.Value == nil {
		return ""
	}
	return n.Value.String()
}

// IsLeaf returns whether the node holds a primitive value.
func (n *Node) IsLeaf() bool { return IsLeaf(n.Value) }

// IsContainer returns whether the node is a sequence.
func (n *Node) IsContainer() bool {
	_, ok := n.Value.(Container)
	return ok
}

// IsVariant returns whether the node is a polymorphic field.
func (n *Node) IsVariant() bool {
	_, ok := n.Value.(Variant)
	return ok
}

// IsRoot returns whether the node has no parent.
func (n *Node) IsRoot() bool { return n.Parent == nil }

// Root returns the root of the tree the node belongs to.
func (n *Node) Root() *Node {
	r := n
	for r.Parent != nil {
		r = r.Parent
	}
	return r
}

// Children:

// HasChildren returns whether this node has any children.
func (n *Node) HasChildren() bool {
	return len(n.Children) > 0
}

// NumChildren returns the number of children this node has.
func (n *Node) NumChildren() int {
	return len(n.Children)
}

// Child returns the child of this node at the given index and returns nil if
// the index is out of range.
func (n *Node) Child(i int) *Node {
	if i >= len(n.Children) || i < 0 {
		return nil
	}
	return n.Children[i]
}

// ChildByName returns the first child that has the given name,
// and nil if there is none.
func (n *Node) ChildByName(name string) *Node {
	return n.Child(slices.IndexFunc(n.Children, func(c *Node) bool { return c.Name == name }))
}

// IndexInParent returns the index of the node within its parent,
// or -1 if it has no parent.
func (n *Node) IndexInParent() int {
	if n.Parent == nil {
		return -1
	}
	return slices.Index(n.Parent.Children, n)
}

// AddChild adds the given node as the last child of this node.
func (n *Node) AddChild(kid *Node) {
	kid.Parent = n
	n.Children = append(n.Children, kid)
}

// InsertChild inserts the given node as a child at the given index.
func (n *Node) InsertChild(kid *Node, index int) {
	kid.Parent = n
	n.Children = slices.Insert(n.Children, index, kid)
}

// DeleteChildAt removes the child at the given index.
// It returns false if the index is out of range.
func (n *Node) DeleteChildAt(index int) bool {
	kid := n.Child(index)
	if kid == nil {
		return false
	}
	kid.Parent = nil
	n.Children = slices.Delete(n.Children, index, index+1)
	return true
}

// SetChildren replaces the children of this node.
func (n *Node) SetChildren(kids []*Node) {
	for _, k := range kids {
		k.Parent = n
	}
	n.Children = kids
}

// ReplaceChild replaces the child at the given index with the given node.
func (n *Node) ReplaceChild(index int, kid *Node) {
	old := n.Children[index]
	if old != kid {
		old.Parent = nil
	}
	kid.Parent = n
	n.Children[index] = kid
}

// Paths:

// IndexPath returns the sequence of child indices leading
// from the root to this node. The root has an empty path.
func (n *Node) IndexPath() []int {
	var path []int
	for c := n; c.Parent != nil; c = c.Parent {
		path = append(path, c.IndexInParent())
	}
	slices.Reverse(path)
	return path
}

// FindIndexPath returns the node at the given index path
// below this node, or nil if the path does not resolve.
func (n *Node) FindIndexPath(path []int) *Node {
	cur := n
	for _, i := range path {
		cur = cur.Child(i)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// Copying:

// CopyFieldsFrom copies the fields of the given node into this node,
// without its tree relations. The value, handle and template are
// copied by assignment; all other fields are deep copied.
func (n *Node) CopyFieldsFrom(from *Node) {
	err := copier.CopyWithOption(n, from, copier.Option{CaseSensitive: true, DeepCopy: true})
	if err != nil {
		slog.Error("tree.Node.CopyFieldsFrom", "err", err)
	}
	n.Value = from.Value
	n.Handle = from.Handle
	n.Template = from.Template
	n.ops = slices.Clone(from.ops)
}

// Clone returns a deep copy of the tree from this node down.
// The clone has no parent.
func (n *Node) Clone() *Node {
	nc := &Node{}
	nc.CopyFieldsFrom(n)
	if len(n.Children) > 0 {
		nc.Children = make([]*Node, len(n.Children))
		for i, k := range n.Children {
			kc := k.Clone()
			kc.Parent = nc
			nc.Children[i] = kc
		}
	}
	return nc
}

// CopyStateFrom copies the transient user interface state
// (expansion and selection) of the given node into this node.
func (n *Node) CopyStateFrom(from *Node) {
	n.SetFlag(from.Is(Expanded), Expanded)
	n.SetFlag(from.Is(Selected), Selected)
}

// Dirty state:

// SetLabelChanged marks this node and all of its ancestors
// as having a changed label.
func (n *Node) SetLabelChanged() {
	n.WalkUp(func(k *Node) bool {
		k.SetFlag(true, LabelChanged)
		return Continue
	})
}

// SetLayoutChangedToChildren marks this node and all of
// its descendants as needing a new layout.
func (n *Node) SetLayoutChangedToChildren() {
	n.WalkDown(func(k *Node) bool {
		k.SetFlag(true, LayoutChanged)
		return Continue
	})
}

// ClearDirty clears the label and layout changed flags
// of this node and all of its descendants.
func (n *Node) ClearDirty() {
	n.WalkDown(func(k *Node) bool {
		k.SetFlag(false, LabelChanged, LayoutChanged)
		return Continue
	})
}

// Display:

// DisplayLabel returns the text shown for the node. When showIndices
// is set, elements of a container are shown by their index.
func (n *Node) DisplayLabel(showIndices bool) string {
	if !showIndices || n.Parent == nil || !n.Parent.IsContainer() {
		return n.Label
	}
	s := strconv.Itoa(n.IndexInParent()) + "."
	if n.Label != "" {
		s += " " + n.Label
	}
	return s
}

// Search:

// FindByHandle returns the first node at or below this node that is
// bound to the same storage and type as the given handle, or nil.
// A struct and its first field share an address, so the type tells
// them apart.
func (n *Node) FindByHandle(handle any) *Node {
	addr := serial.Address(handle)
	if addr == 0 {
		return nil
	}
	typ := serial.TypeName(handle)
	var found *Node
	n.WalkDown(func(k *Node) bool {
		if found != nil {
			return Break
		}
		if k.Handle != nil && serial.Address(k.Handle) == addr && serial.TypeName(k.Handle) == typ {
			found = k
			return Break
		}
		return Continue
	})
	return found
}

// FindSelected returns all selected nodes at or below this node, in tree order.
func (n *Node) FindSelected() []*Node {
	var sel []*Node
	n.WalkDown(func(k *Node) bool {
		if k.Is(Selected) {
			sel = append(sel, k)
		}
		return Continue
	})
	return sel
}

// Container edits:

// OpKind is the kind of a [ContainerOp].
type OpKind int32

const (
	// OpInsert inserts a default element at Index.
	OpInsert OpKind = iota

	// OpRemove removes the element at Index.
	OpRemove

	// OpMove moves the element at Index to To.
	OpMove

	// OpResize sets the number of elements to To.
	OpResize
)

// ContainerOp is a structural edit of a container, queued on its node
// and applied to the live container on write back.
type ContainerOp struct {
	Kind  OpKind
	Index int
	To    int
}

// QueueOp queues the given structural edit.
func (n *Node) QueueOp(op ContainerOp) {
	n.ops = append(n.ops, op)
}

// Ops returns the queued structural edits.
func (n *Node) Ops() []ContainerOp { return n.ops }

// ClearOps clears the queued structural edits of this node and all of its descendants.
func (n *Node) ClearOps() {
	n.WalkDown(func(k *Node) bool {
		k.ops = nil
		return Continue
	})
}
