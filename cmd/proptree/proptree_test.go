// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"cogentcore.org/proptree/config"
	"cogentcore.org/proptree/internal/testdata"
)

const level = `name: cave
entities:
  - name: goblin
    level: 3
    speed: 1.5
    alive: true
    stats:
      hp: 10
      mana: 5
    shape:
      type: circle
      radius: 2
    tags: [hostile, green]
    items:
      - name: club
        weight: 4
    position: [1, 2, 3]
  - name: rat
    level: 1
    speed: 2
    alive: true
    stats:
      hp: 3
    shape:
      type: box
      width: 1
      height: 0.5
`

func writeLevel(t *testing.T) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "cave.yaml")
	require.NoError(t, os.WriteFile(filename, []byte(level), 0o666))
	return filename
}

func TestDocument(t *testing.T) {
	filename := writeLevel(t)
	doc, err := openDocument(filename)
	require.NoError(t, err)
	assert.Equal(t, "cave", doc.Name)

	ents, err := doc.entities()
	require.NoError(t, err)
	require.Len(t, ents, 2)
	assert.Equal(t, "goblin", ents[0].Name)
	assert.Equal(t, testdata.Stats{HP: 10, Mana: 5}, ents[0].Stats)
	assert.Equal(t, &testdata.Circle{Radius: 2}, ents[0].Shape)
	assert.Equal(t, [3]float64{1, 2, 3}, ents[0].Position)
	assert.Equal(t, &testdata.Box{Width: 1, Height: 0.5}, ents[1].Shape)

	ents[1].Name = "big rat"
	doc.setEntities(ents)
	require.NoError(t, doc.save(filename))
	doc, err = openDocument(filename)
	require.NoError(t, err)
	again, err := doc.entities()
	require.NoError(t, err)
	assert.Equal(t, "big rat", again[1].Name)
	assert.Equal(t, ents[0], again[0])
}

func TestDocumentBadShape(t *testing.T) {
	doc := &document{Entities: []entityDoc{{Name: "x", Shape: &shapeDoc{Type: "blob"}}}}
	_, err := doc.entities()
	assert.ErrorContains(t, err, "blob")
}

func TestSelectEntities(t *testing.T) {
	ents := []*testdata.Entity{testdata.NewEntity("a"), testdata.NewEntity("b")}
	sel, err := selectEntities(ents, nil)
	require.NoError(t, err)
	assert.Len(t, sel, 2)
	sel, err = selectEntities(ents, []int{1})
	require.NoError(t, err)
	assert.Equal(t, []any{ents[1]}, sel)
	_, err = selectEntities(ents, []int{2})
	assert.Error(t, err)
}

func TestResolve(t *testing.T) {
	opts := &options{settings: config.Default(), entities: []int{0}}
	sess, _, _, err := opts.open(writeLevel(t))
	require.NoError(t, err)

	root := sess.Root()
	n, err := resolve(root, "")
	require.NoError(t, err)
	assert.Same(t, root, n)
	n, err = resolve(root, "Stats.HP")
	require.NoError(t, err)
	assert.Equal(t, "10", n.ValueString())
	n, err = resolve(root, "Items.0.Name")
	require.NoError(t, err)
	assert.Equal(t, "club", n.ValueString())
	_, err = resolve(root, "Tags.5")
	assert.ErrorIs(t, err, errNoNode)
	_, err = resolve(root, "Nope")
	assert.ErrorIs(t, err, errNoNode)
}

func TestEditScript(t *testing.T) {
	filename := writeLevel(t)
	opts := &options{settings: config.Default(), entities: []int{0}}
	sess, doc, ents, err := opts.open(filename)
	require.NoError(t, err)

	var out bytes.Buffer
	ed := newEditor(&out, sess, doc, ents, filename)
	script := `
# rename and retype the goblin
set Name "goblin chief"
set Stats.HP 20
insert Tags
set Tags.2 brown
type Shape box
set Shape.Width 3
remove Items 0
set Level lots
save
quit
set Name ignored
`
	require.NoError(t, ed.run(context.Background(), strings.NewReader(script)))
	assert.Contains(t, out.String(), "error:")

	doc, err = openDocument(filename)
	require.NoError(t, err)
	saved, err := doc.entities()
	require.NoError(t, err)
	g := saved[0]
	assert.Equal(t, "goblin chief", g.Name)
	assert.Equal(t, 20, g.Stats.HP)
	assert.Equal(t, []string{"hostile", "green", "brown"}, g.Tags)
	assert.Equal(t, &testdata.Box{Width: 3, Height: 1}, g.Shape)
	assert.Empty(t, g.Items)
	assert.Equal(t, 3, g.Level)
	assert.Equal(t, "rat", saved[1].Name)
}

func TestEditUndo(t *testing.T) {
	opts := &options{settings: config.Default()}
	sess, doc, ents, err := opts.open(writeLevel(t))
	require.NoError(t, err)

	var out bytes.Buffer
	ed := newEditor(&out, sess, doc, ents, "")
	require.NoError(t, ed.exec([]string{"set", "Alive", "false"}))
	assert.False(t, ents[0].Alive)
	assert.False(t, ents[1].Alive)
	require.NoError(t, ed.exec([]string{"undo"}))
	assert.True(t, ents[0].Alive)
	assert.True(t, ents[1].Alive)
	require.NoError(t, ed.exec([]string{"undo"}))
	assert.Contains(t, out.String(), "nothing to undo")
	assert.ErrorIs(t, ed.exec([]string{"save"}), errNotSaved)
	assert.ErrorIs(t, ed.exec([]string{"remove", "Tags"}), errUsage)
}

func TestPrint(t *testing.T) {
	opts := &options{settings: config.Default()}
	sess, _, _, err := opts.open(writeLevel(t))
	require.NoError(t, err)

	var out bytes.Buffer
	p := newPrinter(&out, sess)
	p.print()
	s := out.String()
	assert.Contains(t, s, "Experience level")
	assert.Contains(t, s, "<multiple values>")
	assert.NotContains(t, s, "Mana")

	out.Reset()
	p.all = true
	p.print()
	assert.Contains(t, out.String(), "Mana")
}

func TestDumpYAML(t *testing.T) {
	opts := &options{settings: config.Default()}
	sess, _, _, err := opts.open(writeLevel(t))
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, dumpYAML(&out, sess))
	var m map[string]any
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &m))
	assert.Nil(t, m["Name"])
	assert.Equal(t, true, m["Alive"])
	assert.Equal(t, map[string]any{"HP": nil, "Mana": nil}, m["Stats"])
	assert.Nil(t, m["Shape"])
	assert.Contains(t, out.String(), "# multiple values")

	opts.entities = []int{0}
	sess, _, _, err = opts.open(writeLevel(t))
	require.NoError(t, err)
	out.Reset()
	require.NoError(t, dumpYAML(&out, sess))
	m = nil
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &m))
	assert.Equal(t, "goblin", m["Name"])
	assert.Equal(t, 3, m["Level"])
	assert.Equal(t, []any{"hostile", "green"}, m["Tags"])
	assert.Equal(t, map[string]any{"type": "circle", "Radius": 2}, m["Shape"])
}
