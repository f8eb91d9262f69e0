// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"cogentcore.org/proptree/internal/testdata"
)

// document is a level document: a named list of entities, stored as YAML.
type document struct {
	Name     string      `yaml:"name"`
	Entities []entityDoc `yaml:"entities"`
}

type entityDoc struct {
	Name     string          `yaml:"name"`
	Level    int             `yaml:"level"`
	Speed    float32         `yaml:"speed"`
	Alive    bool            `yaml:"alive"`
	Stats    testdata.Stats  `yaml:"stats"`
	Shape    *shapeDoc       `yaml:"shape,omitempty"`
	Tags     []string        `yaml:"tags,omitempty"`
	Items    []testdata.Item `yaml:"items,omitempty"`
	Position [3]float64      `yaml:"position,flow"`
}

type shapeDoc struct {
	Type   string  `yaml:"type"`
	Radius float64 `yaml:"radius,omitempty"`
	Width  float64 `yaml:"width,omitempty"`
	Height float64 `yaml:"height,omitempty"`
}

// openDocument reads the document in the given YAML file.
func openDocument(filename string) (*document, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	d := &document{}
	if err := yaml.Unmarshal(b, d); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return d, nil
}

// save writes the document to the given YAML file.
func (d *document) save(filename string) error {
	b, err := yaml.Marshal(d)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0o666)
}

// entities returns the entities of the document as live objects.
func (d *document) entities() ([]*testdata.Entity, error) {
	es := make([]*testdata.Entity, len(d.Entities))
	for i, ed := range d.Entities {
		sh, err := ed.Shape.shape()
		if err != nil {
			return nil, fmt.Errorf("entity %d (%s): %w", i, ed.Name, err)
		}
		es[i] = &testdata.Entity{
			Name:     ed.Name,
			Level:    ed.Level,
			Speed:    ed.Speed,
			Alive:    ed.Alive,
			Stats:    ed.Stats,
			Shape:    sh,
			Tags:     ed.Tags,
			Items:    ed.Items,
			Position: ed.Position,
		}
	}
	return es, nil
}

// setEntities replaces the entities of the document.
func (d *document) setEntities(es []*testdata.Entity) {
	d.Entities = make([]entityDoc, len(es))
	for i, e := range es {
		d.Entities[i] = entityDoc{
			Name:     e.Name,
			Level:    e.Level,
			Speed:    e.Speed,
			Alive:    e.Alive,
			Stats:    e.Stats,
			Shape:    shapeDocOf(e.Shape),
			Tags:     e.Tags,
			Items:    e.Items,
			Position: e.Position,
		}
	}
}

func (sd *shapeDoc) shape() (testdata.Shape, error) {
	if sd == nil {
		return nil, nil
	}
	switch s := testdata.Shapes.New(sd.Type).(type) {
	case *testdata.Circle:
		s.Radius = sd.Radius
		return s, nil
	case *testdata.Box:
		s.Width, s.Height = sd.Width, sd.Height
		return s, nil
	}
	return nil, fmt.Errorf("unknown shape type %q", sd.Type)
}

func shapeDocOf(s testdata.Shape) *shapeDoc {
	switch s := s.(type) {
	case *testdata.Circle:
		return &shapeDoc{Type: testdata.Shapes.NameOf(s), Radius: s.Radius}
	case *testdata.Box:
		return &shapeDoc{Type: testdata.Shapes.NameOf(s), Width: s.Width, Height: s.Height}
	}
	return nil
}
