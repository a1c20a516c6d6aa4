package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"zinc/internal/diag"
	"zinc/internal/diagfmt"
	"zinc/internal/parser"
	"zinc/internal/source"
)

var treeCmd = &cobra.Command{
	Use:          "tree <file.zn>",
	Short:        "Print the parse tree of a zinc source file",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runTree,
}

func init() {
	treeCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
}

func runTree(cmd *cobra.Command, args []string) error {
	path := args[0]
	if filepath.Ext(path) != ".zn" {
		return fmt.Errorf("%q: input must be a .zn file", path)
	}

	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return err
	}
	bag := diag.NewBag(maxDiagnostics(cmd))
	file := parser.ParseFile(fs.Get(id), diag.BagReporter{Bag: bag})

	if bag.Len() > 0 {
		bag.Sort()
		diagfmt.Pretty(cmd.ErrOrStderr(), bag, fs, diagfmt.PrettyOpts{Color: useColor(cmd)})
	}
	if bag.HasErrors() {
		return fmt.Errorf("%s: parse failed", path)
	}

	diagfmt.FormatASTPretty(cmd.OutOrStdout(), file, fs, diagfmt.PrettyOpts{})
	return nil
}
