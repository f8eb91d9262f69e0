// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"log/slog"

	"cogentcore.org/proptree/base/plan"
	"cogentcore.org/proptree/serial"
	"cogentcore.org/proptree/tree"
	"cogentcore.org/proptree/validate"
)

// frame is the state of the builder within one composite node.
type frame struct {
	node *tree.Node

	// recon hands out the previous children of node.
	recon *plan.Reconciler[*tree.Node]

	// kids are the new children of node.
	kids []*tree.Node

	// template is the element template of a container node.
	template *tree.Node

	// changed is whether a child was created.
	changed bool
}

// builder is the output archive: it reads an object into a tree.
type builder struct {
	model  *Model
	index  *validate.Index
	frames []*frame
}

func (b *builder) IsInput() bool { return false }

func (b *builder) top() *frame { return b.frames[len(b.frames)-1] }

func (b *builder) push(n *tree.Node, template *tree.Node) {
	b.frames = append(b.frames, &frame{node: n, recon: plan.NewReconciler(n.Children), template: template})
}

func (b *builder) pop() {
	f := b.top()
	b.frames = b.frames[:len(b.frames)-1]
	f.node.SetChildren(f.kids)
	unused := 0
	f.recon.Discard(func(n *tree.Node) {
		n.Parent = nil
		unused++
	})
	if f.changed || unused > 0 {
		f.node.SetFlag(true, tree.LayoutChanged)
	}
}

// node returns the node for the field with the given identity in the
// current frame: a previous node with the same name and type name if
// there is one, and otherwise a new node, cloned from the element
// template of the frame when it matches. It also returns the previous
// value of a reused node.
func (b *builder) node(name, label, typeName string, value tree.Value, handle any) (n *tree.Node, prev tree.Value, created bool) {
	f := b.top()
	n, ok := f.recon.Take(name, typeName)
	if ok {
		prev = n.Value
		n.SetFlag(false, tree.MultiValue, tree.Edited)
		if n.Label != label || n.ValueString() != value.String() {
			n.Label = label
			n.SetLabelChanged()
		}
	} else {
		created = true
		if t := f.template; t != nil && t.Name == name && t.TypeName == typeName {
			n = t.Clone()
			n.Label = label
		} else {
			n = tree.New(name, label, typeName, value)
		}
		n.Parent = f.node
		n.SetFlag(len(b.frames)-1 < b.model.Settings.ExpandLevels, tree.Expanded)
		n.SetLabelChanged()
		f.changed = true
	}
	n.Value = value
	n.Handle = handle
	f.kids = append(f.kids, n)
	return n, prev, created
}

func (b *builder) descend(n *tree.Node, s serial.Serializer, template *tree.Node) {
	b.push(n, template)
	s.Serialize(b)
	b.pop()
}

func (b *builder) Value(ptr any, name, label string) {
	v := tree.ValueOf(ptr)
	if v == nil {
		return
	}
	n, _, _ := b.node(name, label, serial.TypeName(ptr), v, ptr)
	if n.HasChildren() {
		n.SetChildren(nil)
	}
}

func (b *builder) Struct(s serial.Serializer, name, label string) {
	n, _, _ := b.node(name, label, serial.TypeName(s), tree.Struct{}, s)
	b.descend(n, s, nil)
}

func (b *builder) Container(c serial.Container, name, label string) {
	tmpl := b.elementTemplate(c)
	value := tree.Container{ElementType: c.ElementTypeName(), Fixed: c.FixedSize(), Len: c.Len()}
	n, _, _ := b.node(name, label, serial.TypeName(c), value, c)
	n.Template = tmpl
	b.push(n, tmpl)
	elem := b.model.Settings.ElementName
	for ok := c.Begin(); ok; ok = c.Next() {
		c.SerializeElement(b, elem, "")
	}
	b.pop()
}

func (b *builder) Pointer(p serial.Pointer, name, label string) {
	b.variantTemplates(p)
	reg := b.model.Registry
	base := p.BaseTypeName()
	concrete := p.ConcreteName()
	value := tree.Variant{Base: base, Concrete: concrete, Label: b.model.Settings.NullLabel}
	if td, ok := reg.Desc(base, concrete); ok && concrete != "" {
		value.Label = td.Label
	}
	n, prev, created := b.node(name, label, base, value, p)
	if pv, ok := prev.(tree.Variant); created || !ok || pv.Concrete != concrete {
		seed(n, reg.DefaultByName(base, concrete))
	}
	if s := p.Serializer(); s != nil {
		b.descend(n, s, nil)
	} else if n.HasChildren() {
		n.SetChildren(nil)
	}
}

func (b *builder) Warning(ptr any, message string) {
	b.report(ptr, validate.Warning, message)
}

func (b *builder) Error(ptr any, message string) {
	b.report(ptr, validate.Error, message)
}

func (b *builder) report(ptr any, sev validate.Severity, message string) {
	if b.index == nil {
		return
	}
	b.index.Add(validate.Entry{Key: validate.KeyOf(ptr), Severity: sev, Message: message})
}

// seed replaces the children of the given node with
// clones of the children of the given template.
func seed(n, template *tree.Node) {
	for _, k := range n.Children {
		k.Parent = nil
	}
	if template == nil {
		n.SetChildren(nil)
		return
	}
	n.SetChildren(template.Clone().Children)
	n.SetFlag(true, tree.LayoutChanged)
}

// variantTemplates makes sure that the registry has a template for the
// null state and for every concrete type the factory of p knows.
func (b *builder) variantTemplates(p serial.Pointer) {
	reg := b.model.Registry
	base := p.BaseTypeName()
	if !reg.IsRegistered(base, "") {
		null := b.model.Settings.NullLabel
		td := reg.register(base, serial.TypeDesc{Label: null})
		td.Template = tree.New("", null, base, tree.Variant{Base: base, Label: null})
	}
	f := p.Factory()
	for i, n := 0, f.Len(); i < n; i++ {
		desc := f.Desc(i)
		if reg.IsRegistered(base, desc.Name) {
			continue
		}
		// registered before building, so recursive types terminate
		td := reg.register(base, desc)
		s := serial.SerializerOf(f.New(desc.Name))
		if s == nil {
			slog.Debug("model: concrete type is not serializable, no template", "base", base, "type", desc.Name)
			continue
		}
		td.Template = b.model.template(func(ar serial.Archive) {
			ar.Struct(s, desc.Name, desc.Label)
		})
	}
}

// elementTemplate returns the element template of the given container,
// building it on first use.
func (b *builder) elementTemplate(c serial.Container) *tree.Node {
	reg := b.model.Registry
	elem := c.ElementTypeName()
	if td, ok := reg.Desc(elem, elem); ok {
		return td.Template
	}
	td := reg.register(elem, serial.TypeDesc{Name: elem, Label: elem})
	td.Template = b.model.template(func(ar serial.Archive) {
		c.SerializeDefault(ar, b.model.Settings.ElementName, "")
	})
	return td.Template
}

// template builds a default template by running the given visit
// function on a new builder without a previous tree or validation.
// The result is not bound to any object.
func (m *Model) template(visit func(ar serial.Archive)) *tree.Node {
	holder := &tree.Node{}
	b := &builder{model: m}
	b.push(holder, nil)
	visit(b)
	b.pop()
	t := holder.Child(0)
	if t == nil {
		return nil
	}
	t.Parent = nil
	t.WalkDown(func(n *tree.Node) bool {
		n.Handle = nil
		n.SetFlag(false, tree.LabelChanged, tree.LayoutChanged)
		return tree.Continue
	})
	return t
}
