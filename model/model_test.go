// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/proptree/internal/testdata"
	"cogentcore.org/proptree/serial"
	"cogentcore.org/proptree/tree"
	"cogentcore.org/proptree/validate"
)

func names(ns []*tree.Node) []string {
	s := make([]string, len(ns))
	for i, n := range ns {
		s[i] = n.Name
	}
	return s
}

func TestBuild(t *testing.T) {
	e := testdata.NewEntity("orc")
	m := New(nil)
	root := m.Build(nil, serial.Reflect(e), nil)

	assert.Equal(t, RootName, root.Name)
	assert.Equal(t, "testdata.Entity", root.TypeName)
	assert.Equal(t, "Entity", root.Label)
	assert.Nil(t, root.Parent)
	assert.True(t, root.Is(tree.Expanded))
	assert.Equal(t, []string{"Name", "Level", "Speed", "Alive", "Stats", "Shape", "Tags", "Items", "Position"}, names(root.Children))

	level := root.ChildByName("Level")
	assert.Equal(t, "Experience level", level.Label)
	assert.Equal(t, "int", level.TypeName)
	assert.Equal(t, tree.Int(3), level.Value)
	assert.Same(t, &e.Level, level.Handle)
	assert.False(t, level.Is(tree.Expanded))

	assert.Equal(t, tree.Float{V: 1.5, Bits: 32}, root.ChildByName("Speed").Value)
	assert.Equal(t, tree.Bool(true), root.ChildByName("Alive").Value)

	stats := root.ChildByName("Stats")
	assert.Equal(t, "testdata.Stats", stats.TypeName)
	assert.Equal(t, []string{"HP", "Mana"}, names(stats.Children))
	assert.Same(t, stats, stats.Child(0).Parent)

	shape := root.ChildByName("Shape")
	assert.Equal(t, "shape", shape.TypeName)
	assert.Equal(t, tree.Variant{Base: "shape", Concrete: "circle", Label: "Circle"}, shape.Value)
	assert.Equal(t, []string{"Radius"}, names(shape.Children))
	assert.Equal(t, tree.Float{V: 2, Bits: 64}, shape.Child(0).Value)

	tags := root.ChildByName("Tags")
	assert.Equal(t, "[]string", tags.TypeName)
	assert.Equal(t, tree.Container{ElementType: "string", Len: 2}, tags.Value)
	assert.Equal(t, []string{"element", "element"}, names(tags.Children))
	assert.Equal(t, tree.Text("green"), tags.Child(1).Value)
	assert.Equal(t, "1.", tags.Child(1).DisplayLabel(true))
	require.NotNil(t, tags.Template)
	assert.Nil(t, tags.Template.Handle)

	items := root.ChildByName("Items")
	require.Equal(t, 1, items.NumChildren())
	assert.Equal(t, "testdata.Item", items.Child(0).TypeName)
	assert.Equal(t, []string{"Name", "Weight"}, names(items.Child(0).Children))

	pos := root.ChildByName("Position")
	assert.Equal(t, tree.Container{ElementType: "float64", Fixed: true, Len: 3}, pos.Value)
	assert.Equal(t, 3, pos.NumChildren())
}

func TestBuildReuse(t *testing.T) {
	e := testdata.NewEntity("orc")
	m := New(nil)
	s := serial.Reflect(e)
	root := m.Build(nil, s, nil)
	stats := root.ChildByName("Stats")
	hp := stats.ChildByName("HP")
	name := root.ChildByName("Name")
	stats.SetFlag(true, tree.Expanded)
	hp.SetFlag(true, tree.Selected)
	root.ClearDirty()

	e.Stats.HP = 20
	nroot := m.Build(root, s, nil)
	assert.Same(t, root, nroot)
	assert.Same(t, stats, nroot.ChildByName("Stats"))
	assert.Same(t, hp, stats.ChildByName("HP"))
	assert.Same(t, name, nroot.ChildByName("Name"))
	assert.True(t, stats.Is(tree.Expanded))
	assert.True(t, hp.Is(tree.Selected))
	assert.Equal(t, tree.Int(20), hp.Value)

	assert.True(t, hp.Is(tree.LabelChanged))
	assert.True(t, stats.Is(tree.LabelChanged))
	assert.True(t, root.Is(tree.LabelChanged))
	assert.False(t, name.Is(tree.LabelChanged))
	assert.False(t, root.Is(tree.LayoutChanged))
}

func TestBuildDiscard(t *testing.T) {
	e := testdata.NewEntity("orc")
	m := New(nil)
	s := serial.Reflect(e)
	root := m.Build(nil, s, nil)
	tags := root.ChildByName("Tags")
	first := tags.Child(0)
	second := tags.Child(1)
	root.ClearDirty()

	e.Tags = e.Tags[:1]
	m.Build(root, s, nil)
	require.Equal(t, 1, tags.NumChildren())
	assert.Same(t, first, tags.Child(0))
	assert.Nil(t, second.Parent)
	assert.True(t, tags.Is(tree.LayoutChanged))
	assert.Equal(t, 1, tags.Value.(tree.Container).Len)
}

func TestBuildRootMismatch(t *testing.T) {
	m := New(nil)
	old := m.Build(nil, serial.Reflect(&testdata.Prop{Name: "crate"}), nil)
	root := m.Build(old, serial.Reflect(testdata.NewEntity("orc")), nil)
	assert.NotSame(t, old, root)
	assert.Nil(t, old.Parent)
	assert.Equal(t, "testdata.Entity", root.TypeName)
}

func TestRoundTrip(t *testing.T) {
	e := testdata.NewEntity("orc")
	m := New(nil)
	root := m.Build(nil, serial.Reflect(e), nil)

	var out testdata.Entity
	m.WriteBack(root, serial.Reflect(&out))
	assert.Equal(t, *e, out)
	assert.NotSame(t, e.Shape, out.Shape)
}

func TestWriteBackEdited(t *testing.T) {
	e := testdata.NewEntity("orc")
	m := New(nil)
	s := serial.Reflect(e)
	root := m.Build(nil, s, nil)
	root.ChildByName("Name").Value = tree.Text("elf")
	root.ChildByName("Stats").ChildByName("Mana").Value = tree.Int(50)
	multi := root.ChildByName("Level")
	multi.Value = tree.Int(99)
	multi.SetFlag(true, tree.MultiValue)

	m.WriteBack(root, s)
	assert.Equal(t, "elf", e.Name)
	assert.Equal(t, 50, e.Stats.Mana)
	assert.Equal(t, 3, e.Level)
}

func TestWriteBackUnbound(t *testing.T) {
	e := testdata.NewEntity("orc")
	m := New(nil)
	s := serial.Reflect(e)
	root := m.Build(nil, s, nil)
	name := root.ChildByName("Name")
	name.Handle = nil
	name.Value = tree.Text("elf")
	hp := root.ChildByName("Stats").ChildByName("HP")
	hp.Handle = nil
	hp.Value = tree.Int(40)
	hp.SetFlag(true, tree.Edited)

	m.WriteBack(root, s)
	assert.Equal(t, "orc", e.Name)
	assert.Equal(t, 40, e.Stats.HP)
}

func TestVariantSwitch(t *testing.T) {
	e := testdata.NewEntity("orc")
	m := New(nil)
	s := serial.Reflect(e)
	root := m.Build(nil, s, nil)
	shape := root.ChildByName("Shape")
	assert.Equal(t, []string{"[ null ]", "Circle", "Box"}, m.Registry.Labels("shape"))

	e.Shape = &testdata.Box{Width: 5, Height: 6}
	m.Build(root, s, nil)
	assert.Same(t, shape, root.ChildByName("Shape"))
	assert.Equal(t, tree.Variant{Base: "shape", Concrete: "box", Label: "Box"}, shape.Value)
	tmpl := m.Registry.DefaultByName("shape", "box")
	require.NotNil(t, tmpl)
	assert.Equal(t, names(tmpl.Children), names(shape.Children))
	assert.Equal(t, tree.Float{V: 5, Bits: 64}, shape.ChildByName("Width").Value)
	assert.Same(t, &e.Shape.(*testdata.Box).Height, shape.ChildByName("Height").Handle)
	for _, k := range tmpl.Children {
		assert.Nil(t, k.Handle)
	}

	e.Shape = nil
	m.Build(root, s, nil)
	assert.Equal(t, "[ null ]", shape.ValueString())
	assert.False(t, shape.HasChildren())
}

func TestVariantWriteBack(t *testing.T) {
	e := testdata.NewEntity("orc")
	m := New(nil)
	s := serial.Reflect(e)
	root := m.Build(nil, s, nil)
	shape := root.ChildByName("Shape")
	shape.Value = tree.Variant{Base: "shape", Concrete: "box", Label: "Box"}
	m.WriteBack(root, s)
	assert.Equal(t, &testdata.Box{Width: 1, Height: 1}, e.Shape)

	shape.Value = tree.Variant{Base: "shape", Concrete: "triangle"}
	m.WriteBack(root, s)
	assert.IsType(t, &testdata.Box{}, e.Shape)

	shape.Value = tree.Variant{Base: "shape"}
	m.WriteBack(root, s)
	assert.Nil(t, e.Shape)
}

func TestNewElementFromTemplate(t *testing.T) {
	e := testdata.NewEntity("orc")
	m := New(nil)
	s := serial.Reflect(e)
	root := m.Build(nil, s, nil)
	items := root.ChildByName("Items")
	tmpl := m.Registry.DefaultByName("testdata.Item", "testdata.Item")
	require.NotNil(t, tmpl)
	assert.Same(t, tmpl, items.Template)

	e.Items = append(e.Items, testdata.Item{Name: "rope", Weight: 1})
	m.Build(root, s, nil)
	require.Equal(t, 2, items.NumChildren())
	el := items.Child(1)
	assert.NotSame(t, tmpl, el)
	assert.Equal(t, names(tmpl.Children), names(el.Children))
	assert.Equal(t, tree.Text("rope"), el.ChildByName("Name").Value)
	assert.Same(t, &e.Items[1].Name, el.ChildByName("Name").Handle)
	assert.True(t, items.Is(tree.LayoutChanged))
	assert.Nil(t, tmpl.ChildByName("Name").Handle)
}

func TestContainerOps(t *testing.T) {
	e := testdata.NewEntity("orc")
	e.Tags = []string{"a", "b", "c"}
	m := New(nil)
	s := serial.Reflect(e)
	root := m.Build(nil, s, nil)
	tags := root.ChildByName("Tags")

	tags.QueueOp(tree.ContainerOp{Kind: tree.OpRemove, Index: 0})
	tags.DeleteChildAt(0)
	tags.Value = tree.Container{ElementType: "string", Len: 2}
	m.WriteBack(root, s)
	assert.Equal(t, []string{"b", "c"}, e.Tags)
	root.ClearOps()

	m.Build(root, s, nil)
	tags.QueueOp(tree.ContainerOp{Kind: tree.OpMove, Index: 1, To: 0})
	tags.Children[0], tags.Children[1] = tags.Children[1], tags.Children[0]
	m.WriteBack(root, s)
	assert.Equal(t, []string{"c", "b"}, e.Tags)
	root.ClearOps()

	m.Build(root, s, nil)
	tags.QueueOp(tree.ContainerOp{Kind: tree.OpInsert, Index: 2})
	el := tags.Template.Clone()
	el.Value = tree.Text("d")
	el.SetFlag(true, tree.Edited)
	tags.AddChild(el)
	tags.Value = tree.Container{ElementType: "string", Len: 3}
	m.WriteBack(root, s)
	assert.Equal(t, []string{"c", "b", "d"}, e.Tags)
	root.ClearOps()

	m.Build(root, s, nil)
	tags.QueueOp(tree.ContainerOp{Kind: tree.OpResize, To: 0})
	tags.SetChildren(nil)
	tags.Value = tree.Container{ElementType: "string"}
	m.WriteBack(root, s)
	assert.Empty(t, e.Tags)
}

func TestFixedContainer(t *testing.T) {
	e := testdata.NewEntity("orc")
	m := New(nil)
	s := serial.Reflect(e)
	root := m.Build(nil, s, nil)
	pos := root.ChildByName("Position")
	pos.QueueOp(tree.ContainerOp{Kind: tree.OpRemove, Index: 0})
	pos.Child(2).Value = tree.Float{V: 9, Bits: 64}
	m.WriteBack(root, s)
	assert.Equal(t, [3]float64{1, 2, 9}, e.Position)
}

func TestRegistry(t *testing.T) {
	m := New(nil)
	m.Build(nil, serial.Reflect(testdata.NewEntity("orc")), nil)
	r := m.Registry
	assert.True(t, r.IsRegistered("shape", ""))
	assert.True(t, r.IsRegistered("shape", "circle"))
	assert.False(t, r.IsRegistered("shape", "triangle"))

	null := r.Default("shape", 0)
	require.NotNil(t, null)
	assert.Equal(t, "[ null ]", null.ValueString())
	assert.Same(t, r.DefaultByName("shape", "circle"), r.Default("shape", 1))
	assert.Nil(t, r.Default("shape", 3))
	assert.Nil(t, r.Default("missing", 0))

	td, ok := r.Desc("shape", "box")
	require.True(t, ok)
	assert.Equal(t, "Box", td.Label)
	assert.Len(t, r.Types("shape"), 3)

	r.Clear()
	assert.Zero(t, r.Len())
	assert.Empty(t, r.Labels("shape"))
}

type chain struct {
	Name string
	Next []chain
}

func TestRegistryRecursion(t *testing.T) {
	m := New(nil)
	c := &chain{Name: "a", Next: []chain{{Name: "b"}}}
	root := m.Build(nil, serial.Reflect(c), nil)
	next := root.ChildByName("Next")
	require.Equal(t, 1, next.NumChildren())
	assert.Equal(t, tree.Text("b"), next.Child(0).ChildByName("Name").Value)
	tmpl := m.Registry.DefaultByName("model.chain", "model.chain")
	require.NotNil(t, tmpl)
	assert.Equal(t, []string{"Name", "Next"}, names(tmpl.Children))
}

func TestValidate(t *testing.T) {
	e := testdata.NewEntity("")
	e.Stats.HP = -1
	m := New(nil)
	index := &validate.Index{}
	root := m.Build(nil, serial.Reflect(e), index)
	require.Equal(t, 2, index.Len())
	assert.Zero(t, m.Validate(root, index))

	name := root.ChildByName("Name")
	assert.Equal(t, 1, name.ValidatorCount)
	assert.True(t, name.Is(tree.HasWarnings))
	assert.Equal(t, "name is empty", index.At(name.ValidatorIndex).Message)

	stats := root.ChildByName("Stats")
	hp := stats.ChildByName("HP")
	assert.Equal(t, 1, hp.ValidatorCount)
	assert.True(t, hp.Is(tree.HasErrors))
	assert.True(t, stats.Is(tree.HasErrors))
	assert.False(t, root.Is(tree.HasErrors))
	assert.Zero(t, root.ValidatorCount)
}
