// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package session

import (
	"cogentcore.org/proptree/base/plan"
	"cogentcore.org/proptree/tree"
)

// Intersect prunes from the tree rooted at primary every node without a
// node of the same name and type name at the same place in the tree
// rooted at secondary, and marks the remaining nodes as multi-value
// where the value strings differ or secondary is already multi-value.
// The roots are always considered to match. Elements of containers
// are matched by position.
func Intersect(primary, secondary *tree.Node) {
	if secondary.Is(tree.MultiValue) || primary.ValueString() != secondary.ValueString() {
		primary.SetFlag(true, tree.MultiValue)
	}
	positional := primary.IsContainer()
	kids := make([]*tree.Node, 0, len(primary.Children))
	next := 0
	for i, k := range primary.Children {
		var other *tree.Node
		if positional {
			other = secondary.Child(i)
			if other != nil && !plan.Matches(other, k.Name, k.TypeName) {
				other = nil
			}
		} else if j := plan.Find(secondary.Children, k.Name, k.TypeName, next); j >= 0 {
			other = secondary.Children[j]
			next = j + 1
		}
		if other == nil {
			k.Parent = nil
			continue
		}
		Intersect(k, other)
		kids = append(kids, k)
	}
	if len(kids) != len(primary.Children) {
		primary.SetFlag(true, tree.LayoutChanged)
	}
	primary.Children = kids
}
