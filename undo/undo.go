// Copyright (c) 2021, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package undo provides the undo log of an edit session. Before a
// mutation is applied to a tree, the log saves a snapshot of the whole
// tree or of the node about to change; undoing puts the snapshot back.
package undo

import (
	"fmt"
	"log/slog"

	"github.com/oklog/ulid/v2"

	"cogentcore.org/proptree/base/errors"
	"cogentcore.org/proptree/tree"
)

// Mode is the snapshot granularity of a [Log].
type Mode string

const (
	// ModeTree snapshots the whole tree before every mutation.
	ModeTree Mode = "tree"

	// ModeNode snapshots only the node about to change.
	ModeNode Mode = "node"

	// ModeOff records markers without snapshots, so undo
	// consumes records without changing anything.
	ModeOff Mode = "off"
)

// ErrPathNotFound is returned by [Log.Undo] when the path of the undone
// operator does not lead to a node of the snapshot's name and type in
// the current tree.
var ErrPathNotFound = errors.New("undo: path does not resolve in the current tree")

// Operator is one undo record, saved right before one mutation.
type Operator struct {

	// ID uniquely identifies the operator.
	ID ulid.ULID

	// Action is a description of the mutation, for the user to see.
	Action string

	// Path is the index path from the root to the changed node.
	Path []int

	// Snapshot is a deep clone of the node (or the whole tree) before
	// the mutation, or nil for a marker operator.
	Snapshot *tree.Node

	// Whole is whether Snapshot is the whole tree.
	Whole bool

	// Objects are the own trees of the attached objects before the
	// mutation, in attach order, for sessions of more than one object.
	// The shared tree of such a session hides the values the objects
	// disagree on, so only these trees can restore them.
	Objects []*tree.Node
}

// Log is the undo log. The zero value uses [ModeNode] without a limit.
// It is not safe for concurrent use.
type Log struct {

	// Mode is the snapshot granularity.
	Mode Mode

	// Limit is the maximum number of operators kept; the oldest are
	// dropped first. Zero or less means no limit.
	Limit int

	// Ops are the saved operators, the most recent last.
	Ops []*Operator
}

// Len returns the number of saved operators.
func (l *Log) Len() int { return len(l.Ops) }

// CanUndo returns whether there is an operator to undo.
func (l *Log) CanUndo() bool { return len(l.Ops) > 0 }

// Clear removes all operators.
func (l *Log) Clear() { l.Ops = nil }

// Save saves a new operator for the given action about to change
// node n of the tree rooted at root.
func (l *Log) Save(action string, root, n *tree.Node) *Operator {
	op := &Operator{ID: ulid.Make(), Action: action, Path: n.IndexPath()}
	switch l.Mode {
	case ModeOff:
	case ModeTree:
		op.Whole = true
		op.Snapshot = snapshot(root)
	default:
		op.Snapshot = snapshot(n)
	}
	l.Ops = append(l.Ops, op)
	if l.Limit > 0 && len(l.Ops) > l.Limit {
		l.Ops = l.Ops[len(l.Ops)-l.Limit:]
	}
	return op
}

func snapshot(n *tree.Node) *tree.Node {
	s := n.Clone()
	s.ClearOps()
	return s
}

// Undo pops the most recent operator and restores its snapshot into the
// tree rooted at root. It returns the root of the resulting tree, which
// differs from root when the whole tree or the root node is restored,
// and the popped operator. With an empty log it does nothing and returns
// a nil operator. If the path of the operator does not resolve, the
// operator is still consumed, the tree is left unchanged and the error
// wraps [ErrPathNotFound].
func (l *Log) Undo(root *tree.Node) (*tree.Node, *Operator, error) {
	if len(l.Ops) == 0 {
		return root, nil, nil
	}
	op := l.Ops[len(l.Ops)-1]
	l.Ops = l.Ops[:len(l.Ops)-1]
	if op.Snapshot == nil {
		return root, op, nil
	}
	snap := op.Snapshot
	if op.Whole {
		PreserveState(snap, root)
		return snap, op, nil
	}
	target := root.FindIndexPath(op.Path)
	if target == nil || target.Name != snap.Name || target.TypeName != snap.TypeName {
		err := fmt.Errorf("%w: %q at %v", ErrPathNotFound, op.Action, op.Path)
		slog.Error("undo.Log.Undo", "err", err)
		return root, op, err
	}
	PreserveState(snap, target)
	if target.Parent == nil {
		return snap, op, nil
	}
	target.Parent.ReplaceChild(target.IndexInParent(), snap)
	return root, op, nil
}

// PreserveState copies the transient user interface state of from onto
// to, recursing into the children that have the same position, name
// and type name in both trees.
func PreserveState(to, from *tree.Node) {
	to.CopyStateFrom(from)
	for i, k := range to.Children {
		f := from.Child(i)
		if f == nil || f.Name != k.Name || f.TypeName != k.TypeName {
			continue
		}
		PreserveState(k, f)
	}
}
