// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package session

import (
	"fmt"

	"cogentcore.org/proptree/clipboard"
	"cogentcore.org/proptree/tree"
)

// Copy returns the clipboard payload of the subtree rooted at the given node.
func (s *Session) Copy(n *tree.Node) ([]byte, error) {
	if err := s.check(n); err != nil {
		return nil, err
	}
	return clipboard.Encode(n), nil
}

type pasteMode int

const (
	pasteAppend pasteMode = iota
	pasteReplace
)

// pasteTarget decodes the given payload and decides how it is pasted onto dest.
func pasteTarget(dest *tree.Node, data []byte) (*tree.Node, pasteMode, error) {
	src, err := clipboard.Decode(data)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrCannotPaste, err)
	}
	dv, destContainer := dest.Value.(tree.Container)
	switch {
	case destContainer && !dv.Fixed && src.TypeName == dv.ElementType:
		return src, pasteAppend, nil
	case src.TypeName == dest.TypeName:
		return src, pasteReplace, nil
	case destContainer:
		if sv, ok := src.Value.(tree.Container); ok && sv.ElementType == dv.ElementType && (!dv.Fixed || sv.Len == dv.Len) {
			return src, pasteReplace, nil
		}
	}
	return nil, 0, fmt.Errorf("%w: %q onto %q", ErrCannotPaste, src.TypeName, dest.TypeName)
}

// CanPaste returns whether the given payload can be pasted onto the given node.
func (s *Session) CanPaste(dest *tree.Node, data []byte) bool {
	if s.check(dest) != nil {
		return false
	}
	_, _, err := pasteTarget(dest, data)
	return err == nil
}

// Paste pastes the given payload onto the given node. A payload of the
// element type of a variable size container is appended to it as a new
// element. A payload of the type of the node, or a container with the
// same element type, replaces the content of the node, keeping its name,
// label and user interface state. Other payloads are rejected with
// [ErrCannotPaste].
func (s *Session) Paste(dest *tree.Node, data []byte) error {
	if err := s.check(dest); err != nil {
		return err
	}
	src, mode, err := pasteTarget(dest, data)
	if err != nil {
		return fmt.Errorf("session.Paste: %w", err)
	}
	src.WalkDown(func(n *tree.Node) bool {
		n.Flags = 0
		n.SetFlag(true, tree.Edited)
		return tree.Continue
	})
	if mode == pasteAppend {
		cv := dest.Value.(tree.Container)
		s.save("paste element", dest)
		src.Name = s.Settings.ElementName
		src.Label = ""
		dest.AddChild(src)
		dest.QueueOp(tree.ContainerOp{Kind: tree.OpInsert, Index: cv.Len})
		cv.Len++
		s.edited(dest, cv)
		return nil
	}
	s.save("paste", dest)
	src.Name = dest.Name
	src.Label = dest.Label
	src.TypeName = dest.TypeName
	src.Handle = dest.Handle
	src.Template = dest.Template
	src.CopyStateFrom(dest)
	if sv, ok := src.Value.(tree.Container); ok {
		if dv, ok := dest.Value.(tree.Container); ok {
			sv.ElementType, sv.Fixed = dv.ElementType, dv.Fixed
			src.Value = sv
		}
	}
	if dest.Parent == nil {
		s.root = src
	} else {
		dest.Parent.ReplaceChild(dest.IndexInParent(), src)
	}
	src.SetLabelChanged()
	src.SetLayoutChangedToChildren()
	s.request(src, true)
	return nil
}
