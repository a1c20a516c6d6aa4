package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"zinc/internal/prof"
	"zinc/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "zinc",
	Short: "Zinc language compiler",
	Long:  `Zinc compiles .zn source files into standalone Rust programs`,
}

// main initializes the CLI by setting the command version, registering
// subcommands and persistent flags, and then executes the root command.
func main() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("cpuprofile", "", "write a CPU profile to the given path")
	rootCmd.PersistentFlags().String("memprofile", "", "write a heap profile to the given path")

	rootCmd.PersistentPreRunE = startProfiling
	rootCmd.PersistentPostRunE = stopProfiling

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func startProfiling(cmd *cobra.Command, _ []string) error {
	path, err := cmd.Root().PersistentFlags().GetString("cpuprofile")
	if err != nil {
		return err
	}
	if path != "" {
		return prof.StartCPU(path)
	}
	return nil
}

func stopProfiling(cmd *cobra.Command, _ []string) error {
	cpuPath, err := cmd.Root().PersistentFlags().GetString("cpuprofile")
	if err != nil {
		return err
	}
	if cpuPath != "" {
		prof.StopCPU()
	}
	memPath, err := cmd.Root().PersistentFlags().GetString("memprofile")
	if err != nil {
		return err
	}
	if memPath != "" {
		return prof.WriteMem(memPath)
	}
	return nil
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves the --color mode against the terminal state.
func useColor(cmd *cobra.Command) bool {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false
	}
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(os.Stdout) && !color.NoColor
	}
}

func maxDiagnostics(cmd *cobra.Command) int {
	n, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return 100
	}
	return n
}

func quietMode(cmd *cobra.Command) bool {
	q, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return false
	}
	return q
}

func showTimings(cmd *cobra.Command) bool {
	t, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return false
	}
	return t
}
