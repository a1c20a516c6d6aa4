package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"zinc/internal/driver"
	"zinc/internal/project"
)

var compileCmd = &cobra.Command{
	Use:          "compile [flags] [file.zn]",
	Short:        "Compile a zinc source file to Rust",
	Long:         `Compile a .zn file into a Rust program. Without an argument the entry point is taken from the nearest zinc.toml.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runCompile,
}

func init() {
	compileCmd.Flags().StringP("output", "o", "", "output path (default: input with .rs, '-' for stdout)")
	compileCmd.Flags().Bool("no-cache", false, "skip the on-disk generation cache")
	compileCmd.Flags().String("format", "pretty", "diagnostic format (pretty|short|json)")
	compileCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
}

func runCompile(cmd *cobra.Command, args []string) error {
	input, output, err := resolveCompileTarget(cmd, args)
	if err != nil {
		return err
	}

	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}

	opts := driver.Options{MaxDiagnostics: maxDiagnostics(cmd)}
	if !noCache {
		if cache, err := driver.OpenDiskCache("zinc"); err == nil {
			opts.Cache = cache
		}
	}

	res, err := driver.Compile(input, opts)
	if err != nil {
		return err
	}

	if res.Bag.Len() > 0 {
		if err := printDiagnostics(cmd, res); err != nil {
			return err
		}
	}
	if res.HasErrors() {
		return fmt.Errorf("%s: compilation failed", input)
	}

	if output == "-" {
		fmt.Fprint(cmd.OutOrStdout(), res.Rust)
	} else {
		if dir := filepath.Dir(output); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}
		if err := os.WriteFile(output, []byte(res.Rust), 0o644); err != nil {
			return fmt.Errorf("failed to write %q: %w", output, err)
		}
		if !quietMode(cmd) {
			note := ""
			if res.FromCache {
				note = " (cached)"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s%s\n", output, note)
		}
	}

	if showTimings(cmd) {
		printTimings(cmd.ErrOrStderr(), res.Timing)
	}
	return nil
}

// resolveCompileTarget picks the input and output paths from the argument,
// the -o flag and the nearest manifest, in that order of preference.
func resolveCompileTarget(cmd *cobra.Command, args []string) (input, output string, err error) {
	output, err = cmd.Flags().GetString("output")
	if err != nil {
		return "", "", fmt.Errorf("failed to get output flag: %w", err)
	}

	if len(args) > 0 && args[0] != "" {
		input = args[0]
		if filepath.Ext(input) != ".zn" {
			return "", "", fmt.Errorf("%q: input must be a .zn file", input)
		}
		if output == "" {
			output = strings.TrimSuffix(input, ".zn") + ".rs"
		}
		return input, output, nil
	}

	manifest, ok, err := project.Load(".")
	if err != nil {
		return "", "", err
	}
	if !ok {
		return "", "", fmt.Errorf("no zinc.toml found\nplease specify the file explicitly, e.g.:\n  zinc compile path/to/main.zn")
	}
	input, err = manifest.EntryPath()
	if err != nil {
		return "", "", err
	}
	if output == "" {
		output = manifest.OutputPath()
	}
	return input, output, nil
}
