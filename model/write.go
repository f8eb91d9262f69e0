// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"log/slog"

	"cogentcore.org/proptree/base/plan"
	"cogentcore.org/proptree/base/reflectx"
	"cogentcore.org/proptree/serial"
	"cogentcore.org/proptree/tree"
)

// wframe is the state of the writer within one composite node.
type wframe struct {
	node *tree.Node

	// next is the index of the child to search from.
	next int

	// positional is set for container frames, whose
	// elements are matched by position only.
	positional bool
}

// writer is the input archive: it writes a tree into an object.
type writer struct {
	model  *Model
	frames []*wframe
}

func (w *writer) IsInput() bool { return true }

func (w *writer) descend(n *tree.Node, s serial.Serializer, positional bool) {
	w.frames = append(w.frames, &wframe{node: n, positional: positional})
	s.Serialize(w)
	w.frames = w.frames[:len(w.frames)-1]
}

// find returns the child node for the field with the given identity, or nil.
func (w *writer) find(name, typeName string) *tree.Node {
	f := w.frames[len(w.frames)-1]
	if f.positional {
		n := f.node.Child(f.next)
		f.next++
		if n == nil || !plan.Matches(n, name, typeName) {
			return nil
		}
		return n
	}
	i := plan.Find(f.node.Children, name, typeName, f.next)
	if i < 0 {
		return nil
	}
	f.next = i + 1
	return f.node.Children[i]
}

func (w *writer) Value(ptr any, name, label string) {
	n := w.find(name, serial.TypeName(ptr))
	if n == nil || n.Is(tree.MultiValue) {
		return
	}
	if n.Handle == nil && !n.Is(tree.Edited) {
		return
	}
	v := tree.Interface(n.Value)
	if v == nil {
		return
	}
	if err := reflectx.SetRobust(ptr, v); err != nil {
		slog.Error("model.WriteBack: cannot set value", "node", n.String(), "err", err)
	}
}

func (w *writer) Struct(s serial.Serializer, name, label string) {
	n := w.find(name, serial.TypeName(s))
	if n == nil {
		return
	}
	w.descend(n, s, false)
}

func (w *writer) Container(c serial.Container, name, label string) {
	n := w.find(name, serial.TypeName(c))
	if n == nil {
		return
	}
	cv, ok := n.Value.(tree.Container)
	if !ok {
		return
	}
	for _, op := range n.Ops() {
		if !applyOp(c, op) {
			slog.Warn("model.WriteBack: container rejected edit", "node", n.String(), "op", op.Kind, "index", op.Index)
		}
	}
	if !c.FixedSize() && !n.Is(tree.MultiValue) && c.Len() != cv.Len {
		c.Resize(cv.Len)
	}
	w.frames = append(w.frames, &wframe{node: n, positional: true})
	elem := w.model.Settings.ElementName
	for ok := c.Begin(); ok; ok = c.Next() {
		c.SerializeElement(w, elem, "")
	}
	w.frames = w.frames[:len(w.frames)-1]
}

func (w *writer) Pointer(p serial.Pointer, name, label string) {
	n := w.find(name, p.BaseTypeName())
	if n == nil || n.Is(tree.MultiValue) {
		return
	}
	v, ok := n.Value.(tree.Variant)
	if !ok {
		return
	}
	if v.Concrete != p.ConcreteName() && !p.Create(v.Concrete) {
		slog.Error("model.WriteBack: cannot create concrete type", "node", n.String(), "base", v.Base, "type", v.Concrete)
		return
	}
	if s := p.Serializer(); s != nil {
		w.descend(n, s, false)
	}
}

func (w *writer) Warning(ptr any, message string) {}

func (w *writer) Error(ptr any, message string) {}

// applyOp applies the given queued edit to the given container,
// returning whether the container accepted it.
func applyOp(c serial.Container, op tree.ContainerOp) bool {
	if op.Kind == tree.OpResize {
		return c.Resize(op.To)
	}
	c.Begin()
	for i, k := 0, op.Index; i < k; i++ {
		c.Next()
	}
	switch op.Kind {
	case tree.OpInsert:
		return c.Insert()
	case tree.OpRemove:
		return c.Remove()
	case tree.OpMove:
		return c.MoveTo(op.To)
	}
	return false
}
