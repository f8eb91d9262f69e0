// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package serial

import (
	"fmt"
	"reflect"
	"sync"

	"cogentcore.org/proptree/base/keylist"
)

// Pointer is the protocol for a polymorphic field: a slot that holds
// either nothing or a value of one of the concrete types known to its
// [Factory].
type Pointer interface {

	// BaseTypeName returns the name of the base type of the slot.
	BaseTypeName() string

	// ConcreteName returns the registered name of the concrete type
	// currently held, or "" when the slot is empty.
	ConcreteName() string

	// Factory returns the factory of the concrete types.
	Factory() Factory

	// Create replaces the held value with a new default value of the
	// concrete type with the given registered name. The empty name
	// empties the slot. It returns false if the name is unknown.
	Create(name string) bool

	// Serializer returns the serializer of the held value,
	// or nil when the slot is empty.
	Serializer() Serializer
}

// TypeDesc describes one concrete type known to a [Factory].
type TypeDesc struct {

	// Name is the stable registered name of the type.
	Name string

	// Label is the user facing name of the type.
	Label string
}

// Factory enumerates and creates the concrete types of one base type.
type Factory interface {
	BaseTypeName() string

	// Len returns the number of concrete types.
	Len() int

	// Desc returns the descriptor of the concrete type at the given index.
	Desc(i int) TypeDesc

	// New returns a new default value of the concrete type with
	// the given name, or nil if there is no such type.
	New(name string) any

	// NameOf returns the registered name of the concrete type of
	// the given value, or "" if it is nil or of an unknown type.
	NameOf(v any) string
}

type factoryEntry[B any] struct {
	desc TypeDesc
	typ  reflect.Type
	new  func() B
}

// TypeFactory is a [Factory] of the concrete types implementing B.
type TypeFactory[B any] struct {
	base  string
	types *keylist.List[string, *factoryEntry[B]]
}

// NewFactory returns a new [TypeFactory] for the base type B.
// An empty base name uses the Go name of B.
func NewFactory[B any](base string) *TypeFactory[B] {
	if base == "" {
		base = reflect.TypeOf((*B)(nil)).Elem().String()
	}
	return &TypeFactory[B]{base: base, types: keylist.New[string, *factoryEntry[B]]()}
}

// Add registers a concrete type under the given name and label.
// The new function must return a non-nil value of the concrete type.
// It panics on a duplicate name, like other init time registrations.
func (f *TypeFactory[B]) Add(name, label string, new func() B) *TypeFactory[B] {
	typ := reflect.TypeOf(new())
	if typ == nil {
		panic(fmt.Sprintf("serial.TypeFactory.Add: %q creates a nil value", name))
	}
	if label == "" {
		label = name
	}
	err := f.types.Add(name, &factoryEntry[B]{desc: TypeDesc{Name: name, Label: label}, typ: typ, new: new})
	if err != nil {
		panic(fmt.Sprintf("serial.TypeFactory.Add: %v", err))
	}
	return f
}

func (f *TypeFactory[B]) BaseTypeName() string { return f.base }

func (f *TypeFactory[B]) Len() int { return f.types.Len() }

func (f *TypeFactory[B]) Desc(i int) TypeDesc { return f.types.Values[i].desc }

func (f *TypeFactory[B]) New(name string) any {
	e, ok := f.types.AtTry(name)
	if !ok {
		return nil
	}
	return e.new()
}

func (f *TypeFactory[B]) NameOf(v any) string {
	typ := reflect.TypeOf(v)
	if typ == nil {
		return ""
	}
	for _, e := range f.types.Values {
		if e.typ == typ {
			return e.desc.Name
		}
	}
	return ""
}

var (
	factoriesMu sync.RWMutex
	factories   = map[reflect.Type]Factory{}
)

// RegisterFactory registers the given factory for interface fields of
// type B, so that [Field] and [Reflect] visit them as pointers.
func RegisterFactory[B any](f *TypeFactory[B]) *TypeFactory[B] {
	factoriesMu.Lock()
	factories[reflect.TypeOf((*B)(nil)).Elem()] = f
	factoriesMu.Unlock()
	return f
}

// FactoryFor returns the factory registered for the given
// interface type, or nil if there is none.
func FactoryFor(typ reflect.Type) Factory {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()
	return factories[typ]
}

// Poly is a [Pointer] for an interface typed Go variable.
type Poly struct {
	v       reflect.Value
	factory Factory
}

// PolyOf returns a [Pointer] for the variable ptr points to,
// with concrete types from the given factory.
func PolyOf[B any](ptr *B, f *TypeFactory[B]) *Poly {
	return &Poly{v: reflect.ValueOf(ptr).Elem(), factory: f}
}

func (p *Poly) BaseTypeName() string { return p.factory.BaseTypeName() }

// TypeName returns the Go name of the interface type of the variable.
func (p *Poly) TypeName() string { return p.v.Type().String() }

func (p *Poly) ConcreteName() string {
	if p.v.IsNil() {
		return ""
	}
	return p.factory.NameOf(p.v.Interface())
}

func (p *Poly) Factory() Factory { return p.factory }

func (p *Poly) Create(name string) bool {
	if name == "" {
		p.v.SetZero()
		return true
	}
	nv := p.factory.New(name)
	if nv == nil {
		return false
	}
	rv := reflect.ValueOf(nv)
	if !rv.Type().AssignableTo(p.v.Type()) {
		return false
	}
	p.v.Set(rv)
	return true
}

func (p *Poly) Serializer() Serializer {
	if p.v.IsNil() {
		return nil
	}
	return SerializerOf(p.v.Interface())
}

// Address returns the address of the interface variable.
func (p *Poly) Address() uintptr { return p.v.Addr().Pointer() }
