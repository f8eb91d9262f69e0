// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package session

import (
	"strings"

	"cogentcore.org/proptree/tree"
)

// Filter marks the nodes matching the given query and returns their
// number. The query is a list of space separated tokens that must all
// match: "=text" matches the value, ":text" the type name, and any other
// token the label or the name, each as a case insensitive substring.
// Matching nodes get [tree.MatchFilter], their descendants
// [tree.BelongsToFiltered], and their ancestors are expanded. An empty
// query clears the filter. The filter is applied again on every rebuild.
func (s *Session) Filter(query string) (int, error) {
	if s.root == nil {
		return 0, ErrNotAttached
	}
	s.filter = strings.TrimSpace(query)
	n := applyFilter(s.root, s.filter)
	s.stale = true
	s.request(s.root, false)
	return n, nil
}

func applyFilter(root *tree.Node, query string) int {
	root.WalkDown(func(n *tree.Node) bool {
		n.SetFlag(false, tree.MatchFilter, tree.BelongsToFiltered)
		return tree.Continue
	})
	tokens := strings.Fields(strings.ToLower(query))
	if len(tokens) == 0 {
		return 0
	}
	count := 0
	root.WalkDown(func(n *tree.Node) bool {
		if !matches(n, tokens) {
			return tree.Continue
		}
		count++
		n.SetFlag(true, tree.MatchFilter)
		for _, k := range n.Children {
			k.WalkDown(func(d *tree.Node) bool {
				d.SetFlag(true, tree.BelongsToFiltered)
				return tree.Continue
			})
		}
		n.WalkUpParent(func(p *tree.Node) bool {
			p.SetFlag(true, tree.Expanded)
			return tree.Continue
		})
		return tree.Continue
	})
	return count
}

func matches(n *tree.Node, tokens []string) bool {
	for _, tok := range tokens {
		var ok bool
		switch {
		case strings.HasPrefix(tok, "="):
			ok = strings.Contains(strings.ToLower(n.ValueString()), tok[1:])
		case strings.HasPrefix(tok, ":"):
			ok = strings.Contains(strings.ToLower(n.TypeName), tok[1:])
		default:
			ok = strings.Contains(strings.ToLower(n.Label), tok) || strings.Contains(strings.ToLower(n.Name), tok)
		}
		if !ok {
			return false
		}
	}
	return true
}
