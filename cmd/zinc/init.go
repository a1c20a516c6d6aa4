package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:          "init [name]",
	Short:        "Create a new zinc project",
	Long:         "Scaffold a zinc.toml and an entry file in a new directory (or the current one with '.').",
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runInit,
}

const initMainSource = `fn main() {
    print("hello from zinc")
}
`

func runInit(cmd *cobra.Command, args []string) error {
	name := "."
	if len(args) > 0 && args[0] != "" {
		name = args[0]
	}

	root := name
	pkg := filepath.Base(name)
	if name == "." {
		abs, err := filepath.Abs(".")
		if err != nil {
			return err
		}
		pkg = filepath.Base(abs)
	} else if err := os.MkdirAll(root, 0o755); err != nil {
		return fmt.Errorf("failed to create %q: %w", root, err)
	}

	manifestPath := filepath.Join(root, "zinc.toml")
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("%s already exists", manifestPath)
	}

	manifest := fmt.Sprintf("[package]\nname = %q\n\n[build]\nentry = \"src/main.zn\"\n", pkg)
	if err := os.MkdirAll(filepath.Join(root, "src"), 0o755); err != nil {
		return fmt.Errorf("failed to create src directory: %w", err)
	}
	if err := os.WriteFile(manifestPath, []byte(manifest), 0o644); err != nil {
		return fmt.Errorf("failed to write zinc.toml: %w", err)
	}
	mainPath := filepath.Join(root, "src", "main.zn")
	if err := os.WriteFile(mainPath, []byte(initMainSource), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", mainPath, err)
	}

	if !quietMode(cmd) {
		fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", manifestPath)
		fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", mainPath)
	}
	return nil
}
