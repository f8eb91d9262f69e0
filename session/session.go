// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package session provides the edit session of one or more objects: it
// keeps the node tree of the attached objects, applies the mutations
// requested by a renderer to the tree, writes them back into every
// object and rebuilds the tree, and records undo snapshots on the way.
//
// A session is not safe for concurrent use; callers serialize their calls.
package session

import (
	"fmt"
	"log/slog"

	"github.com/oklog/ulid/v2"

	"cogentcore.org/proptree/base/errors"
	"cogentcore.org/proptree/config"
	"cogentcore.org/proptree/model"
	"cogentcore.org/proptree/serial"
	"cogentcore.org/proptree/tree"
	"cogentcore.org/proptree/undo"
	"cogentcore.org/proptree/validate"
)

var (
	// ErrNotAttached is returned when no object is attached, or when
	// a node does not belong to the current tree of the session.
	ErrNotAttached = errors.New("session: not attached")

	// ErrNotSerializable is returned when attaching a value that
	// cannot be visited by the serial protocol.
	ErrNotSerializable = errors.New("session: object is not serializable")

	// ErrNotLeaf is returned when setting the value of a composite node.
	ErrNotLeaf = errors.New("session: node is not a leaf")

	// ErrNotContainer is returned for element edits on a node that is not a container.
	ErrNotContainer = errors.New("session: node is not a container")

	// ErrFixedSize is returned for size changes of a fixed size container.
	ErrFixedSize = errors.New("session: container has a fixed size")

	// ErrOutOfRange is returned for element indices out of range.
	ErrOutOfRange = errors.New("session: element index out of range")

	// ErrNotVariant is returned for type changes of a node that is not a variant.
	ErrNotVariant = errors.New("session: node is not a variant")

	// ErrUnknownType is returned for type changes to a type the
	// factory of the variant does not know.
	ErrUnknownType = errors.New("session: unknown concrete type")

	// ErrCannotPaste is returned when a payload cannot be pasted onto a node.
	ErrCannotPaste = errors.New("session: cannot paste here")
)

// Change is a coalesced notification of mutations.
type Change struct {

	// Nodes are the nodes targeted by the mutations, each once,
	// in the order of their first mutation.
	Nodes []*tree.Node

	// Objects are the attached objects affected by the mutations.
	Objects []any

	// WriteBack is whether any of the mutations was written back
	// into the objects.
	WriteBack bool
}

// Session is an edit session. The first attached object is the primary
// object; the tree of the session is its tree, intersected with the
// trees of the other objects.
type Session struct {

	// ID uniquely identifies the session.
	ID ulid.ULID

	// Settings are the settings of the session.
	Settings *config.Settings

	// OnChanged, if non-nil, is called once per coalesced batch of mutations.
	OnChanged func(ch Change)

	model   *model.Model
	objects []any
	sers    []serial.Serializer
	root    *tree.Node
	index   *validate.Index
	log     undo.Log
	filter  string

	// lock is the depth of nested update locks.
	lock int

	// pending is the change accumulated under the update lock.
	pending Change
	seen    map[*tree.Node]bool

	// stale is whether the tree must be rebuilt to refresh
	// validation flags, without writing back.
	stale bool

	// written is whether the objects were written directly,
	// outside of the write back of the tree.
	written bool
}

// New returns a new [Session] with the given settings,
// or the default settings if they are nil.
func New(settings *config.Settings) *Session {
	m := model.New(settings)
	return &Session{
		ID:       ulid.Make(),
		Settings: m.Settings,
		model:    m,
		index:    &validate.Index{},
		log:      undo.Log{Mode: m.Settings.UndoMode, Limit: m.Settings.UndoLimit},
	}
}

// Attach attaches the given object, replacing the attached objects.
func (s *Session) Attach(obj any) error {
	return s.AttachMany(obj)
}

// AttachMany attaches the given objects, replacing the attached objects.
// The objects must be [serial.Serializer] values or pointers to structs.
// The nodes of the current tree are reused where the new primary object
// has the same fields, and the undo log is cleared.
func (s *Session) AttachMany(objs ...any) error {
	if len(objs) == 0 {
		return fmt.Errorf("session.AttachMany: %w: no objects", ErrNotSerializable)
	}
	sers := make([]serial.Serializer, len(objs))
	for i, obj := range objs {
		sr := serial.SerializerOf(obj)
		if sr == nil {
			return fmt.Errorf("session.AttachMany: %w: %T", ErrNotSerializable, obj)
		}
		sers[i] = sr
	}
	s.objects = objs
	s.sers = sers
	s.log.Clear()
	s.rebuild()
	slog.Debug("session: attached", "session", s.ID, "objects", len(objs))
	return nil
}

// Detach detaches all objects and drops the tree and the undo log.
func (s *Session) Detach() {
	s.objects = nil
	s.sers = nil
	s.root = nil
	s.index.Clear()
	s.log.Clear()
	s.resetPending()
}

// Clear drops the tree, the undo log and the registry of default
// templates, keeping the attached objects. [Session.Revert]
// builds a new tree.
func (s *Session) Clear() {
	s.root = nil
	s.index.Clear()
	s.log.Clear()
	s.model.Registry.Clear()
	s.resetPending()
}

// Revert rebuilds the tree from the attached objects,
// discarding edits that were not written back.
func (s *Session) Revert() error {
	if len(s.sers) == 0 {
		return ErrNotAttached
	}
	s.rebuild()
	return nil
}

// Apply writes the tree back into every attached object and rebuilds it.
func (s *Session) Apply() error {
	if len(s.sers) == 0 {
		return ErrNotAttached
	}
	s.apply()
	return nil
}

func (s *Session) apply() {
	for _, sr := range s.sers {
		s.model.WriteBack(s.root, sr)
	}
	s.root.ClearOps()
	s.rebuild()
}

// rebuild builds the tree of the primary object, reusing the current
// tree, and intersects it with fresh trees of the other objects.
func (s *Session) rebuild() {
	s.index.Clear()
	s.root = s.model.Build(s.root, s.sers[0], s.index)
	for _, sr := range s.sers[1:] {
		Intersect(s.root, s.model.Build(nil, sr, s.index))
	}
	if s.filter != "" {
		applyFilter(s.root, s.filter)
	}
	s.model.Validate(s.root, s.index)
	s.stale = false
}

// Root returns the root of the tree, or nil if nothing is attached.
func (s *Session) Root() *tree.Node { return s.root }

// Objects returns the attached objects.
func (s *Session) Objects() []any { return s.objects }

// Index returns the validation index of the current tree.
func (s *Session) Index() *validate.Index { return s.index }

// Registry returns the registry of default templates.
func (s *Session) Registry() *model.Registry { return s.model.Registry }

// Messages returns the validation entries attached to the given node.
func (s *Session) Messages(n *tree.Node) []validate.Entry {
	if n.ValidatorCount == 0 {
		return nil
	}
	return s.index.Entries(n.ValidatorIndex, n.ValidatorCount)
}

// SelectionSerializers returns the handles of the selected nodes in tree
// order, so that another session can edit the selected fields.
func (s *Session) SelectionSerializers() []any {
	if s.root == nil {
		return nil
	}
	var hs []any
	for _, n := range s.root.FindSelected() {
		if n.Handle != nil {
			hs = append(hs, n.Handle)
		}
	}
	return hs
}

// CanUndo returns whether there is a mutation to undo.
func (s *Session) CanUndo() bool { return s.log.CanUndo() }

// Undo undoes the most recent mutation and writes the restored tree
// back into the objects. It returns false if there was nothing to undo.
// If the saved path does not resolve in the current tree, the mutation
// is dropped from the log and the error wraps [undo.ErrPathNotFound].
// With more than one object attached, every object gets its own values
// from before the mutation back, including the ones the tree shows as
// multiple values.
func (s *Session) Undo() (bool, error) {
	if s.root == nil {
		return false, ErrNotAttached
	}
	if !s.log.CanUndo() {
		return false, nil
	}
	root, op, err := s.log.Undo(s.root)
	if op != nil && op.Objects != nil {
		s.undoObjects(root, op)
		return true, nil
	}
	if err != nil {
		return false, err
	}
	if op.Snapshot == nil {
		return true, nil
	}
	s.root = root
	target := root.FindIndexPath(op.Path)
	if op.Whole || target == nil {
		target = root
	}
	target.WalkDown(func(n *tree.Node) bool {
		n.SetFlag(true, tree.Edited)
		return tree.Continue
	})
	target.SetLabelChanged()
	target.SetLayoutChangedToChildren()
	s.request(target, true)
	return true, nil
}

// undoObjects writes the own tree of each object saved in op back into
// the object and rebuilds the tree from the objects, keeping the user
// interface state of the restored tree root.
func (s *Session) undoObjects(root *tree.Node, op *undo.Operator) {
	for i, own := range op.Objects {
		if i >= len(s.sers) {
			break
		}
		s.model.WriteBack(own, s.sers[i])
	}
	s.root = root
	s.root.ClearOps()
	s.root.SetLabelChanged()
	s.root.SetLayoutChangedToChildren()
	s.written = true
	s.stale = true
	s.request(s.root, false)
}

// check returns an error if n is not a node of the current tree.
func (s *Session) check(n *tree.Node) error {
	if s.root == nil {
		return ErrNotAttached
	}
	if n == nil || n.Root() != s.root {
		return fmt.Errorf("%w: node %v is not in the current tree", ErrNotAttached, n)
	}
	return nil
}

// save saves an undo operator for the given action about to change n.
// With more than one object attached, the operator also keeps a fresh
// tree of every object.
func (s *Session) save(action string, n *tree.Node) {
	op := s.log.Save(action, s.root, n)
	if op.Snapshot == nil || len(s.sers) < 2 {
		return
	}
	op.Objects = make([]*tree.Node, len(s.sers))
	for i, sr := range s.sers {
		op.Objects[i] = s.model.Build(nil, sr, nil)
	}
}

// Update lock:

// LockUpdate starts coalescing mutations: until the matching
// [Session.UnlockUpdate], mutations only change the tree and are
// queued. Locks nest.
func (s *Session) LockUpdate() {
	s.lock++
}

// UnlockUpdate ends the innermost update lock. When the outermost lock
// is released, the queued mutations are written back once if any of them
// needs it, and [Session.OnChanged] is called once with the coalesced
// change. Nothing happens if no mutation was queued.
func (s *Session) UnlockUpdate() {
	if s.lock == 0 {
		slog.Warn("session.UnlockUpdate: not locked", "session", s.ID)
		return
	}
	s.lock--
	if s.lock > 0 {
		return
	}
	s.flush()
}

// DismissUpdate ends the innermost update lock like [Session.UnlockUpdate],
// but when the outermost lock is dismissed the queued mutations are dropped
// without writing back or notifying. The tree keeps the dropped edits
// until the next [Session.Revert].
func (s *Session) DismissUpdate() {
	if s.lock == 0 {
		return
	}
	s.lock--
	if s.lock == 0 {
		s.resetPending()
	}
}

// request queues a mutation of the given node.
func (s *Session) request(n *tree.Node, writeBack bool) {
	s.LockUpdate()
	if s.seen == nil {
		s.seen = map[*tree.Node]bool{}
	}
	if !s.seen[n] {
		s.seen[n] = true
		s.pending.Nodes = append(s.pending.Nodes, n)
	}
	s.pending.WriteBack = s.pending.WriteBack || writeBack
	s.UnlockUpdate()
}

func (s *Session) resetPending() {
	s.pending = Change{}
	s.seen = nil
	s.stale = false
	s.written = false
}

func (s *Session) flush() {
	ch := s.pending
	stale, written := s.stale, s.written
	s.resetPending()
	if len(ch.Nodes) == 0 {
		return
	}
	switch {
	case ch.WriteBack:
		s.apply()
	case stale:
		s.rebuild()
	}
	ch.WriteBack = ch.WriteBack || written
	ch.Objects = s.objects
	if s.OnChanged != nil {
		s.OnChanged(ch)
	}
}

// Mutations:

// SetValue parses the given text as a value of the kind of the given
// leaf node and sets it with [Session.SetNodeValue].
func (s *Session) SetValue(n *tree.Node, text string) error {
	if err := s.check(n); err != nil {
		return err
	}
	if !n.IsLeaf() {
		return fmt.Errorf("session.SetValue: %w: %v", ErrNotLeaf, n)
	}
	v, err := tree.ParseValue(n.Value, text)
	if err != nil {
		return fmt.Errorf("session.SetValue: %v: %w", n, err)
	}
	return s.SetNodeValue(n, v)
}

// SetNodeValue sets the value of the given leaf node, which resolves a
// multi-value disagreement: the value is written into every object.
func (s *Session) SetNodeValue(n *tree.Node, v tree.Value) error {
	if err := s.check(n); err != nil {
		return err
	}
	if !n.IsLeaf() || !tree.IsLeaf(v) {
		return fmt.Errorf("session.SetNodeValue: %w: %v", ErrNotLeaf, n)
	}
	s.save("set "+n.Name, n)
	n.Value = v
	n.SetFlag(false, tree.MultiValue)
	n.SetFlag(true, tree.Edited)
	n.SetLabelChanged()
	s.request(n, true)
	return nil
}

// SetExpanded expands or collapses the given node.
func (s *Session) SetExpanded(n *tree.Node, expanded bool) error {
	if err := s.check(n); err != nil {
		return err
	}
	if n.Is(tree.Expanded) == expanded {
		return nil
	}
	n.SetFlag(expanded, tree.Expanded)
	n.SetLayoutChangedToChildren()
	s.stale = true
	s.request(n, false)
	return nil
}

// Select selects the given node. Unless add is set,
// all other nodes are deselected.
func (s *Session) Select(n *tree.Node, add bool) error {
	if err := s.check(n); err != nil {
		return err
	}
	if !add {
		s.root.WalkDown(func(k *tree.Node) bool {
			k.SetFlag(false, tree.Selected)
			return tree.Continue
		})
	}
	n.SetFlag(true, tree.Selected)
	s.request(n, false)
	return nil
}

// container returns the container value of the given node.
func (s *Session) container(c *tree.Node) (tree.Container, error) {
	if err := s.check(c); err != nil {
		return tree.Container{}, err
	}
	cv, ok := c.Value.(tree.Container)
	if !ok {
		return cv, fmt.Errorf("%w: %v", ErrNotContainer, c)
	}
	return cv, nil
}

// edited marks the given container node after a structural edit.
func (s *Session) edited(c *tree.Node, cv tree.Container) {
	c.Value = cv
	c.SetFlag(true, tree.Edited)
	c.SetLabelChanged()
	c.SetLayoutChangedToChildren()
	s.request(c, true)
}

// InsertElement inserts a new element at the given index of the given
// container node, cloned from its element template.
func (s *Session) InsertElement(c *tree.Node, index int) error {
	cv, err := s.container(c)
	if err != nil {
		return err
	}
	if cv.Fixed {
		return fmt.Errorf("session.InsertElement: %w: %v", ErrFixedSize, c)
	}
	if index < 0 || index > cv.Len {
		return fmt.Errorf("session.InsertElement: %w: %d not in [0, %d]", ErrOutOfRange, index, cv.Len)
	}
	s.save("insert element", c)
	var el *tree.Node
	if c.Template != nil {
		el = c.Template.Clone()
	} else {
		el = tree.New(s.Settings.ElementName, "", cv.ElementType, nil)
	}
	c.InsertChild(el, index)
	cv.Len++
	c.QueueOp(tree.ContainerOp{Kind: tree.OpInsert, Index: index})
	s.edited(c, cv)
	return nil
}

// RemoveElement removes the element at the given index of the given container node.
func (s *Session) RemoveElement(c *tree.Node, index int) error {
	cv, err := s.container(c)
	if err != nil {
		return err
	}
	if cv.Fixed {
		return fmt.Errorf("session.RemoveElement: %w: %v", ErrFixedSize, c)
	}
	if index < 0 || index >= cv.Len {
		return fmt.Errorf("session.RemoveElement: %w: %d not in [0, %d)", ErrOutOfRange, index, cv.Len)
	}
	s.save("remove element", c)
	c.DeleteChildAt(index)
	cv.Len--
	c.QueueOp(tree.ContainerOp{Kind: tree.OpRemove, Index: index})
	s.edited(c, cv)
	return nil
}

// MoveElement moves the element at index from to index to of the given
// container node, shifting the elements in between.
func (s *Session) MoveElement(c *tree.Node, from, to int) error {
	cv, err := s.container(c)
	if err != nil {
		return err
	}
	if from < 0 || from >= cv.Len || to < 0 || to >= cv.Len {
		return fmt.Errorf("session.MoveElement: %w: %d to %d not in [0, %d)", ErrOutOfRange, from, to, cv.Len)
	}
	if from == to {
		return nil
	}
	s.save("move element", c)
	el := c.Children[from]
	c.DeleteChildAt(from)
	c.InsertChild(el, to)
	c.QueueOp(tree.ContainerOp{Kind: tree.OpMove, Index: from, To: to})
	s.edited(c, cv)
	return nil
}

// ClearElements removes all elements of the given container node.
func (s *Session) ClearElements(c *tree.Node) error {
	cv, err := s.container(c)
	if err != nil {
		return err
	}
	if cv.Fixed {
		return fmt.Errorf("session.ClearElements: %w: %v", ErrFixedSize, c)
	}
	s.save("clear elements", c)
	for _, k := range c.Children {
		k.Parent = nil
	}
	c.SetChildren(nil)
	cv.Len = 0
	c.QueueOp(tree.ContainerOp{Kind: tree.OpResize, To: 0})
	s.edited(c, cv)
	return nil
}

// ChangeType changes the concrete type of the given variant node to the
// type with the given registered name, "" for null. The children of the
// node become a clone of the default template of the type, and the
// object is reconstructed as the new type on write back.
func (s *Session) ChangeType(v *tree.Node, typeName string) error {
	if err := s.check(v); err != nil {
		return err
	}
	vv, ok := v.Value.(tree.Variant)
	if !ok {
		return fmt.Errorf("session.ChangeType: %w: %v", ErrNotVariant, v)
	}
	reg := s.model.Registry
	td, ok := reg.Desc(vv.Base, typeName)
	if !ok {
		return fmt.Errorf("session.ChangeType: %w: %q for %q", ErrUnknownType, typeName, vv.Base)
	}
	if vv.Concrete == typeName && !v.Is(tree.MultiValue) {
		return nil
	}
	s.save("change type", v)
	v.Value = tree.Variant{Base: vv.Base, Concrete: typeName, Label: td.Label}
	for _, k := range v.Children {
		k.Parent = nil
	}
	if td.Template != nil && typeName != "" {
		v.SetChildren(td.Template.Clone().Children)
	} else {
		v.SetChildren(nil)
	}
	v.SetFlag(false, tree.MultiValue)
	v.SetFlag(true, tree.Edited)
	v.SetLabelChanged()
	v.SetLayoutChangedToChildren()
	s.request(v, true)
	return nil
}
