// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"cogentcore.org/proptree/base/errors"
)

// watch reattaches the entities of the given document to the session of
// the printer every time the file is written, and prints the tree with
// the changed nodes marked. It returns when the context is done.
func watch(ctx context.Context, filename string, opts *options, p *printer) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	filename = filepath.Clean(filename)
	// editors often replace the file, so the directory is watched
	if err := w.Add(filepath.Dir(filename)); err != nil {
		return err
	}
	p.changed = true
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filename || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			slog.Debug("file changed", "file", filename, "op", event.Op)
			if errors.Log(reload(filename, opts, p)) == nil {
				p.print()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Error("watching file", "file", filename, "err", err)
		}
	}
}

func reload(filename string, opts *options, p *printer) error {
	doc, err := openDocument(filename)
	if err != nil {
		return err
	}
	_, err = opts.attach(p.sess, doc)
	return err
}
