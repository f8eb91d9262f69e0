// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package keylist provides a list of values in registration order
// that can also be looked up by key.
package keylist

import "fmt"

// List is a slice of values with a key index. Lookups on a nil
// *List behave like lookups on an empty list.
type List[K comparable, V any] struct {

	// Values are the values in the order they were first added.
	Values []V

	// Keys are the keys of [List.Values], in the same order.
	Keys []K

	index map[K]int
}

// New returns a new empty [List].
func New[K comparable, V any]() *List[K, V] {
	return &List[K, V]{index: map[K]int{}}
}

func (kl *List[K, V]) push(key K, val V) {
	if kl.index == nil {
		kl.index = map[K]int{}
	}
	kl.index[key] = len(kl.Values)
	kl.Values = append(kl.Values, val)
	kl.Keys = append(kl.Keys, key)
}

// Set replaces the value of the given key in place,
// or appends it if the key is new.
func (kl *List[K, V]) Set(key K, val V) {
	if i, ok := kl.index[key]; ok {
		kl.Values[i] = val
		return
	}
	kl.push(key, val)
}

// Add appends the given value, failing if the key is taken.
func (kl *List[K, V]) Add(key K, val V) error {
	if _, ok := kl.index[key]; ok {
		return fmt.Errorf("keylist.Add: duplicate key %v", key)
	}
	kl.push(key, val)
	return nil
}

// AtTry returns the value of the given key and whether it was found.
func (kl *List[K, V]) AtTry(key K) (V, bool) {
	var zero V
	if kl == nil {
		return zero, false
	}
	i, ok := kl.index[key]
	if !ok {
		return zero, false
	}
	return kl.Values[i], true
}

// IndexByKey returns the position of the given key, or -1.
func (kl *List[K, V]) IndexByKey(key K) int {
	if kl == nil {
		return -1
	}
	if i, ok := kl.index[key]; ok {
		return i
	}
	return -1
}

// Len returns the number of values.
func (kl *List[K, V]) Len() int {
	if kl == nil {
		return 0
	}
	return len(kl.Values)
}
