// Copyright (c) 2020, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

const (
	// Continue = true can be returned from tree iteration functions to continue
	// processing down the tree, as compared to Break = false which stops this branch.
	Continue = true

	// Break = false can be returned from tree iteration functions to stop processing
	// this branch of the tree.
	Break = false
)

// WalkUp calls the given function on the node and all of its parents.
// It stops walking if the function returns [Break] and keeps walking if
// it returns [Continue]. It returns whether walking was finished (false
// if it was aborted with [Break]).
func (n *Node) WalkUp(fun func(n *Node) bool) bool {
	for cur := n; cur != nil; cur = cur.Parent {
		if !fun(cur) {
			return false
		}
	}
	return true
}

// WalkUpParent calls the given function on all of the node's parents
// (but not the node itself), with the same semantics as [Node.WalkUp].
func (n *Node) WalkUpParent(fun func(n *Node) bool) bool {
	if n.Parent == nil {
		return true
	}
	return n.Parent.WalkUp(fun)
}

// WalkDown calls the given function on the node and all of its children
// in a depth-first manner. It stops walking the current branch of the
// tree if the function returns [Break] and keeps walking if it returns
// [Continue].
func (n *Node) WalkDown(fun func(n *Node) bool) {
	if !fun(n) {
		return
	}
	for _, k := range n.Children {
		k.WalkDown(fun)
	}
}

// WalkDownPost iterates in a depth-first manner over the children, calling
// shouldContinue on each node to test if processing should proceed (if it
// returns [Break] then that branch of the tree is not further processed),
// and then calls the given function after all of a node's children have
// been iterated over. In effect, this means that the given function is
// called for deeper nodes first.
func (n *Node) WalkDownPost(shouldContinue func(n *Node) bool, fun func(n *Node) bool) {
	if !shouldContinue(n) {
		return
	}
	for _, k := range n.Children {
		k.WalkDownPost(shouldContinue, fun)
	}
	fun(n)
}

// Last returns the last node in the tree below the given node,
// or the node itself if it has no children.
func Last(n *Node) *Node {
	for n.HasChildren() {
		n = n.Child(n.NumChildren() - 1)
	}
	return n
}

// Previous returns the previous node in the tree,
// or nil if this is the root node.
func Previous(n *Node) *Node {
	if n.Parent == nil {
		return nil
	}
	myidx := n.IndexInParent()
	if myidx > 0 {
		return Last(n.Parent.Child(myidx - 1))
	}
	return n.Parent
}

// Next returns next node in the tree,
// or nil if this is the last node.
func Next(n *Node) *Node {
	if !n.HasChildren() {
		return NextSibling(n)
	}
	return n.Child(0)
}

// NextSibling returns the next sibling of this node, or of its
// nearest ancestor that has one, or nil if there is none.
func NextSibling(n *Node) *Node {
	if n.Parent == nil {
		return nil
	}
	myidx := n.IndexInParent()
	if myidx >= 0 && myidx < n.Parent.NumChildren()-1 {
		return n.Parent.Child(myidx + 1)
	}
	return NextSibling(n.Parent)
}

// NextVisible returns the next node in display order, skipping the
// children of collapsed nodes, or nil if there is none.
func NextVisible(n *Node) *Node {
	if n.HasChildren() && n.Is(Expanded) {
		return n.Child(0)
	}
	return NextSibling(n)
}
