// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package slicesx provides additional slice functions
// beyond those in the standard [slices] package.
package slicesx

// SearchWrap returns the index of the first item in the given slice that
// matches, scanning forward from the given start index to the end and
// then wrapping around once to scan from the start up to the start index.
// Repeated matching of equal keys with an advancing start index therefore
// finds them in slice order. It returns -1 if nothing matches.
func SearchWrap[E any](slice []E, match func(e E) bool, start int) int {
	n := len(slice)
	start = min(max(start, 0), n)
	for i := start; i < n; i++ {
		if match(slice[i]) {
			return i
		}
	}
	for i := 0; i < start; i++ {
		if match(slice[i]) {
			return i
		}
	}
	return -1
}
