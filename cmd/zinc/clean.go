package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"zinc/internal/driver"
)

var cleanCmd = &cobra.Command{
	Use:          "clean",
	Short:        "Remove the zinc generation cache",
	Long:         "Remove cached Rust output so the next compile regenerates everything.",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runClean,
}

func runClean(cmd *cobra.Command, _ []string) error {
	cache, err := driver.OpenDiskCache("zinc")
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	if err := cache.DropAll(); err != nil {
		return fmt.Errorf("failed to drop cache: %w", err)
	}
	if !quietMode(cmd) {
		fmt.Fprintln(cmd.OutOrStdout(), "cache cleared")
	}
	return nil
}
