package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"zinc/internal/diag"
	"zinc/internal/diagfmt"
	"zinc/internal/driver"
	"zinc/internal/observ"
)

// printDiagnostics renders the result's bag to stderr in the format chosen
// by the command's --format flag.
func printDiagnostics(cmd *cobra.Command, res *driver.Result) error {
	format := "pretty"
	if f := cmd.Flags().Lookup("format"); f != nil {
		format = f.Value.String()
	}
	withNotes := false
	if f := cmd.Flags().Lookup("with-notes"); f != nil {
		withNotes = f.Value.String() == "true"
	}
	out := cmd.ErrOrStderr()

	res.Bag.Sort()
	switch format {
	case "pretty":
		diagfmt.Pretty(out, res.Bag, res.FileSet, diagfmt.PrettyOpts{
			Color:     useColor(cmd),
			ShowNotes: withNotes,
		})
		return nil
	case "short":
		fmt.Fprint(out, diag.FormatShort(res.Bag, res.FileSet, withNotes))
		return nil
	case "json":
		return diagfmt.WriteJSON(out, res.Bag, res.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     withNotes,
		})
	default:
		return fmt.Errorf("unsupported format %q (must be pretty, short or json)", format)
	}
}

func printTimings(out io.Writer, report observ.Report) {
	fmt.Fprintln(out, "timings:")
	for _, p := range report.Phases {
		fmt.Fprintf(out, "  %-10s %7.2f ms\n", p.Name, p.DurationMS)
	}
	fmt.Fprintf(out, "  %-10s %7.2f ms\n", "total", report.TotalMS)
}
