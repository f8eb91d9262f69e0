// Copyright (c) 2018, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bitflag provides simple bit flag setting, checking, and clearing
// functions that take bit positions as ordinal values (from const iota
// enums) and do the bit shifting from there. The flag set and the ordinals
// share one named type, so a node can declare a single Flags type.
package bitflag

// Flag is the constraint for ordinal bit flag types.
type Flag interface {
	~int64
}

// Mask makes a mask for checking multiple different flags.
func Mask[F Flag](flags ...F) F {
	var mask F
	for _, f := range flags {
		mask |= 1 << uint32(f)
	}
	return mask
}

// Set sets bit value(s) for ordinal bit position flags.
func Set[F Flag](bits *F, flags ...F) {
	*bits |= Mask(flags...)
}

// Clear clears bit value(s) for ordinal bit position flags.
func Clear[F Flag](bits *F, flags ...F) {
	*bits &^= Mask(flags...)
}

// SetState sets or clears bit value(s) depending on state (on / off)
// for ordinal bit position flags.
func SetState[F Flag](bits *F, state bool, flags ...F) {
	if state {
		Set(bits, flags...)
	} else {
		Clear(bits, flags...)
	}
}

// Has checks if given bit value is set for ordinal bit position flag.
func Has[F Flag](bits F, flag F) bool {
	return bits&(1<<uint32(flag)) != 0
}
