// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/mattn/go-shellwords"

	"cogentcore.org/proptree/base/errors"
	"cogentcore.org/proptree/internal/testdata"
	"cogentcore.org/proptree/session"
	"cogentcore.org/proptree/tree"
)

var (
	errNoNode   = errors.New("no such node")
	errUsage    = errors.New("wrong number of arguments")
	errQuit     = errors.New("quit")
	errNotSaved = errors.New("nothing to save")
)

// editor runs line commands against a session.
type editor struct {
	out      io.Writer
	sess     *session.Session
	doc      *document
	ents     []*testdata.Entity
	filename string
	printer  *printer

	// clip is the last copied subtree.
	clip []byte
}

func newEditor(out io.Writer, sess *session.Session, doc *document, ents []*testdata.Entity, filename string) *editor {
	ed := &editor{out: out, sess: sess, doc: doc, ents: ents, filename: filename, printer: newPrinter(out, sess)}
	sess.OnChanged = func(ch session.Change) {
		slog.Debug("changed", "nodes", len(ch.Nodes), "objects", len(ch.Objects), "writeBack", ch.WriteBack)
	}
	return ed
}

// run reads and runs commands from r, one per line, until the end of
// the input, a quit command or the end of the context.
func (ed *editor) run(ctx context.Context, r io.Reader) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return nil
		}
		args, err := shellwords.Parse(sc.Text())
		if err != nil {
			fmt.Fprintln(ed.out, "error:", err)
			continue
		}
		if len(args) == 0 || strings.HasPrefix(args[0], "#") {
			continue
		}
		err = ed.exec(args)
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintln(ed.out, "error:", err)
		}
	}
	return sc.Err()
}

// exec runs one command.
func (ed *editor) exec(args []string) error {
	cmd, args := args[0], args[1:]
	switch cmd {
	case "quit", "exit":
		return errQuit
	case "show":
		ed.printer.all = len(args) > 0 && args[0] == "all"
		ed.printer.print()
		return nil
	case "undo":
		ok, err := ed.sess.Undo()
		if err == nil && !ok {
			fmt.Fprintln(ed.out, "nothing to undo")
		}
		return err
	case "revert":
		return ed.sess.Revert()
	case "save":
		return ed.save()
	case "filter":
		n, err := ed.sess.Filter(strings.Join(args, " "))
		if err == nil {
			fmt.Fprintf(ed.out, "%d matching\n", n)
		}
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%s: %w", cmd, errUsage)
	}
	n, err := resolve(ed.sess.Root(), args[0])
	if err != nil {
		return err
	}
	args = args[1:]
	switch cmd {
	case "set":
		if len(args) != 1 {
			return fmt.Errorf("set: %w", errUsage)
		}
		return ed.sess.SetValue(n, args[0])
	case "expand", "collapse":
		return ed.sess.SetExpanded(n, cmd == "expand")
	case "select":
		return ed.sess.Select(n, len(args) > 0 && args[0] == "add")
	case "insert":
		index := -1
		if len(args) > 0 {
			index, err = strconv.Atoi(args[0])
			if err != nil {
				return err
			}
		} else if cv, ok := n.Value.(tree.Container); ok {
			index = cv.Len
		}
		return ed.sess.InsertElement(n, index)
	case "remove":
		ints, err := atois(args, 1)
		if err != nil {
			return fmt.Errorf("remove: %w", err)
		}
		return ed.sess.RemoveElement(n, ints[0])
	case "move":
		ints, err := atois(args, 2)
		if err != nil {
			return fmt.Errorf("move: %w", err)
		}
		return ed.sess.MoveElement(n, ints[0], ints[1])
	case "clear":
		return ed.sess.ClearElements(n)
	case "type":
		name := ""
		if len(args) > 0 {
			name = args[0]
		}
		return ed.sess.ChangeType(n, name)
	case "copy":
		ed.clip, err = ed.sess.Copy(n)
		if err == nil {
			fmt.Fprintln(ed.out, base64.StdEncoding.EncodeToString(ed.clip))
		}
		return err
	case "paste":
		if len(args) > 0 {
			ed.clip, err = base64.StdEncoding.DecodeString(args[0])
			if err != nil {
				return err
			}
		}
		return ed.sess.Paste(n, ed.clip)
	}
	return fmt.Errorf("unknown command %q", cmd)
}

// save applies pending edits and writes all the entities to the document file.
func (ed *editor) save() error {
	if ed.filename == "" {
		return errNotSaved
	}
	if err := ed.sess.Apply(); err != nil {
		return err
	}
	ed.doc.setEntities(ed.ents)
	if err := ed.doc.save(ed.filename); err != nil {
		return err
	}
	slog.Info("saved", "file", ed.filename, "entities", len(ed.ents))
	return nil
}

// resolve returns the node at the given dot separated path of names
// below root. Elements of containers are named by their index.
func resolve(root *tree.Node, path string) (*tree.Node, error) {
	if root == nil {
		return nil, session.ErrNotAttached
	}
	n := root
	if path == "" || path == "." {
		return n, nil
	}
	for _, seg := range strings.Split(path, ".") {
		var k *tree.Node
		if i, err := strconv.Atoi(seg); err == nil && n.IsContainer() {
			k = n.Child(i)
		} else {
			k = n.ChildByName(seg)
		}
		if k == nil {
			return nil, fmt.Errorf("%w: %q in %q", errNoNode, seg, path)
		}
		n = k
	}
	return n, nil
}

func atois(args []string, count int) ([]int, error) {
	if len(args) != count {
		return nil, errUsage
	}
	ints := make([]int, count)
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, err
		}
		ints[i] = v
	}
	return ints, nil
}
