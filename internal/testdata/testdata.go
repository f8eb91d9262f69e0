// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package testdata provides example types for tests and the command line
// tool: an entity with nested structs, containers and a polymorphic shape.
package testdata

import (
	"cogentcore.org/proptree/serial"
)

// Shape is a polymorphic field type.
type Shape interface {
	Area() float64
}

// Circle is a [Shape].
type Circle struct {
	Radius float64
}

func (c *Circle) Area() float64 { return 3.14159 * c.Radius * c.Radius }

// Box is a [Shape].
type Box struct {
	Width  float64
	Height float64
}

func (b *Box) Area() float64 { return b.Width * b.Height }

// Shapes is the factory of the concrete [Shape] types.
var Shapes = serial.RegisterFactory(serial.NewFactory[Shape]("shape").
	Add("circle", "Circle", func() Shape { return &Circle{Radius: 1} }).
	Add("box", "Box", func() Shape { return &Box{Width: 1, Height: 1} }))

// Stats are nested numbers.
type Stats struct {
	HP   int
	Mana int
}

// Item is a container element.
type Item struct {
	Name   string
	Weight float32
}

// Entity is the main example object.
type Entity struct {
	Name     string
	Level    int `label:"Experience level"`
	Speed    float32
	Alive    bool
	Stats    Stats
	Shape    Shape
	Tags     []string
	Items    []Item
	Position [3]float64
}

// Validate reports an empty name as a warning and
// negative hit points as an error.
func (e *Entity) Validate(ar serial.Archive) {
	if e.Name == "" {
		ar.Warning(&e.Name, "name is empty")
	}
	if e.Stats.HP < 0 {
		ar.Error(&e.Stats.HP, "hit points are negative")
	}
}

// NewEntity returns a populated [Entity].
func NewEntity(name string) *Entity {
	return &Entity{
		Name:     name,
		Level:    3,
		Speed:    1.5,
		Alive:    true,
		Stats:    Stats{HP: 10, Mana: 5},
		Shape:    &Circle{Radius: 2},
		Tags:     []string{"hostile", "green"},
		Items:    []Item{{Name: "club", Weight: 4}},
		Position: [3]float64{1, 2, 3},
	}
}

// Prop shares some fields with [Entity], for editing
// objects of different types together.
type Prop struct {
	Name  string
	Level int `label:"Experience level"`
	Solid bool
}
