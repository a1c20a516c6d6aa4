package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"zinc/internal/driver"
	"zinc/internal/ui"
)

var checkCmd = &cobra.Command{
	Use:          "check [flags] [directory]",
	Short:        "Type-check every .zn file under a directory",
	Long:         `Run the front half of the compiler over all .zn files under a directory in parallel, without generating Rust.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runCheck,
}

func init() {
	checkCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	checkCmd.Flags().String("ui", "auto", "progress display (auto|on|off)")
	checkCmd.Flags().String("format", "pretty", "diagnostic format (pretty|short|json)")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
}

func runCheck(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 && args[0] != "" {
		dir = args[0]
	}

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiMode, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}

	files, err := driver.ListSourceFiles(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		if !quietMode(cmd) {
			fmt.Fprintf(cmd.OutOrStdout(), "no .zn files under %s\n", dir)
		}
		return nil
	}

	opts := driver.Options{MaxDiagnostics: maxDiagnostics(cmd), CheckOnly: true}
	events := make(chan driver.Event, len(files)*4)

	var results []*driver.Result
	var checkErr error
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer close(events)
		results, checkErr = driver.CheckDir(cmd.Context(), dir, opts, jobs, driver.ChannelSink{Ch: events})
	}()

	if shouldUseTUI(uiMode) && !quietMode(cmd) {
		model := ui.NewProgressModel(fmt.Sprintf("checking %s", dir), files, events)
		if _, err := tea.NewProgram(model).Run(); err != nil {
			// Сломанный терминал не должен ронять проверку
			for range events {
			}
		}
	} else {
		quiet := quietMode(cmd)
		for ev := range events {
			if quiet || ev.File == "" {
				continue
			}
			switch ev.Status {
			case driver.StatusDone:
				fmt.Fprintf(cmd.OutOrStdout(), "ok    %s\n", ev.File)
			case driver.StatusError:
				fmt.Fprintf(cmd.OutOrStdout(), "fail  %s\n", ev.File)
			}
		}
	}
	<-done
	if checkErr != nil {
		return checkErr
	}

	failed := 0
	for _, res := range results {
		if res == nil {
			continue
		}
		if res.HasErrors() {
			failed++
			if err := printDiagnostics(cmd, res); err != nil {
				return err
			}
		}
	}
	if !quietMode(cmd) {
		fmt.Fprintf(cmd.OutOrStdout(), "checked %d files, %d failed\n", len(files), failed)
	}
	if failed > 0 {
		return fmt.Errorf("check failed for %d of %d files", failed, len(files))
	}
	return nil
}

func shouldUseTUI(mode string) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(os.Stdout)
	}
}
