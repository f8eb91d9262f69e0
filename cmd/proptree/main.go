// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command proptree shows and edits the entities of YAML level documents
// through a property tree.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"cogentcore.org/proptree/config"
	"cogentcore.org/proptree/internal/testdata"
	"cogentcore.org/proptree/session"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// options are the flags shared by all commands.
type options struct {
	configFile string
	verbose    bool
	entities   []int
	settings   *config.Settings
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:          "proptree",
		Short:        "Show and edit level documents as property trees",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if opts.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
			if opts.configFile == "" {
				opts.settings = config.Default()
				return nil
			}
			var err error
			opts.settings, err = config.Open(opts.configFile)
			return err
		},
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configFile, "config", "c", "", "TOML settings file")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug messages")
	pf.IntSliceVarP(&opts.entities, "entities", "e", nil, "indices of the entities to attach (default all)")
	root.AddCommand(newShowCmd(opts), newEditCmd(opts), newWatchCmd(opts))
	return root
}

// open opens the given document and attaches the selected entities
// to a new session.
func (o *options) open(filename string) (*session.Session, *document, []*testdata.Entity, error) {
	doc, err := openDocument(filename)
	if err != nil {
		return nil, nil, nil, err
	}
	sess := session.New(o.settings)
	ents, err := o.attach(sess, doc)
	if err != nil {
		return nil, nil, nil, err
	}
	return sess, doc, ents, nil
}

// attach attaches the selected entities of the given document to the
// given session and returns all the entities of the document.
func (o *options) attach(sess *session.Session, doc *document) ([]*testdata.Entity, error) {
	ents, err := doc.entities()
	if err != nil {
		return nil, err
	}
	sel, err := selectEntities(ents, o.entities)
	if err != nil {
		return nil, err
	}
	if err := sess.AttachMany(sel...); err != nil {
		return nil, err
	}
	slog.Debug("attached", "session", sess.ID, "objects", len(sel))
	return ents, nil
}

func selectEntities(ents []*testdata.Entity, indices []int) ([]any, error) {
	if len(indices) == 0 {
		sel := make([]any, len(ents))
		for i, e := range ents {
			sel[i] = e
		}
		return sel, nil
	}
	sel := make([]any, len(indices))
	for i, idx := range indices {
		if idx < 0 || idx >= len(ents) {
			return nil, fmt.Errorf("entity index %d out of range [0, %d)", idx, len(ents))
		}
		sel[i] = ents[idx]
	}
	return sel, nil
}

func newShowCmd(opts *options) *cobra.Command {
	var all, asYAML bool
	cmd := &cobra.Command{
		Use:   "show <file>",
		Short: "Print the property tree of a level document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, _, _, err := opts.open(args[0])
			if err != nil {
				return err
			}
			if asYAML {
				return dumpYAML(cmd.OutOrStdout(), sess)
			}
			p := newPrinter(cmd.OutOrStdout(), sess)
			p.all = all
			p.print()
			return nil
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "print collapsed nodes too")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print the tree as YAML")
	return cmd
}

func newEditCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <file>",
		Short: "Edit a level document with line commands read from standard input",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, doc, ents, err := opts.open(args[0])
			if err != nil {
				return err
			}
			ed := newEditor(cmd.OutOrStdout(), sess, doc, ents, args[0])
			return ed.run(cmd.Context(), cmd.InOrStdin())
		},
	}
}

func newWatchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <file>",
		Short: "Print the property tree of a level document every time it changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, _, _, err := opts.open(args[0])
			if err != nil {
				return err
			}
			p := newPrinter(cmd.OutOrStdout(), sess)
			p.print()
			return watch(cmd.Context(), args[0], opts, p)
		},
	}
}
