// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"

	"cogentcore.org/proptree/session"
	"cogentcore.org/proptree/tree"
	"cogentcore.org/proptree/validate"
)

// printer renders the tree of a session as indented text.
type printer struct {
	out  *termenv.Output
	sess *session.Session

	// all prints collapsed nodes too.
	all bool

	// changed marks nodes whose label changed since the last print.
	changed bool
}

func newPrinter(w io.Writer, sess *session.Session) *printer {
	return &printer{out: termenv.NewOutput(w), sess: sess}
}

func (p *printer) print() {
	root := p.sess.Root()
	if root == nil {
		fmt.Fprintln(p.out, "(nothing attached)")
		return
	}
	p.node(root, 0)
	root.ClearDirty()
}

func (p *printer) node(n *tree.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	marker := " "
	if n.HasChildren() {
		marker = "+"
		if n.Is(tree.Expanded) {
			marker = "-"
		}
	}
	label := n.DisplayLabel(p.sess.Settings.ShowContainerIndices)
	if label == "" {
		label = n.Name
	}
	ls := p.out.String(label)
	if n.Is(tree.MatchFilter) {
		ls = ls.Bold()
	}
	switch {
	case n.Is(tree.HasErrors):
		ls = ls.Foreground(p.out.Color("1"))
	case n.Is(tree.HasWarnings):
		ls = ls.Foreground(p.out.Color("3"))
	}
	line := indent + marker + " " + ls.String()
	if v := p.value(n); v != "" {
		line += ": " + v
	}
	if p.changed && n.Is(tree.LabelChanged) {
		line += " " + p.out.String("~").Foreground(p.out.Color("2")).String()
	}
	fmt.Fprintln(p.out, line)
	for _, e := range p.sess.Messages(n) {
		sev := p.out.String(e.Severity.String()).Foreground(p.out.Color("3"))
		if e.Severity == validate.Error {
			sev = sev.Foreground(p.out.Color("1"))
		}
		fmt.Fprintf(p.out, "%s    %s: %s\n", indent, sev, e.Message)
	}
	if !n.Is(tree.Expanded) && !p.all {
		return
	}
	for _, k := range n.Children {
		p.node(k, depth+1)
	}
}

func (p *printer) value(n *tree.Node) string {
	if n.Is(tree.MultiValue) {
		return p.out.String("<multiple values>").Faint().String()
	}
	switch v := n.Value.(type) {
	case tree.Text:
		return fmt.Sprintf("%q", string(v))
	case tree.Struct, nil:
		return ""
	}
	return n.ValueString()
}

// dumpYAML writes the tree of the session as a YAML document keyed by
// node names, with container elements as sequences.
func dumpYAML(w io.Writer, sess *session.Session) error {
	root := sess.Root()
	if root == nil {
		return session.ErrNotAttached
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(yamlNode(root)); err != nil {
		return err
	}
	return enc.Close()
}

func yamlNode(n *tree.Node) *yaml.Node {
	if n.Is(tree.MultiValue) && (n.IsLeaf() || n.IsVariant()) {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "~", LineComment: "multiple values"}
	}
	switch v := n.Value.(type) {
	case tree.Container:
		y := &yaml.Node{Kind: yaml.SequenceNode}
		for _, k := range n.Children {
			y.Content = append(y.Content, yamlNode(k))
		}
		return y
	case tree.Struct:
		return yamlMapping(n, nil)
	case tree.Variant:
		if v.Concrete == "" {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "~"}
		}
		return yamlMapping(n, []*yaml.Node{yamlString("type"), yamlString(v.Concrete)})
	case tree.Text:
		return yamlString(string(v))
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Value: n.ValueString()}
}

func yamlMapping(n *tree.Node, content []*yaml.Node) *yaml.Node {
	y := &yaml.Node{Kind: yaml.MappingNode, Content: content}
	for _, k := range n.Children {
		y.Content = append(y.Content, yamlString(k.Name), yamlNode(k))
	}
	return y
}

func yamlString(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}
