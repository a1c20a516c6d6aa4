package observ

import (
	"strings"
	"testing"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	p := tm.Begin("parse")
	tm.End(p, "")
	p = tm.Begin("codegen")
	tm.End(p, "cached")

	report := tm.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("phases = %d, want 2", len(report.Phases))
	}
	if report.Phases[0].Name != "parse" || report.Phases[1].Name != "codegen" {
		t.Fatalf("phase order: %+v", report.Phases)
	}
	if report.Phases[1].Note != "cached" {
		t.Fatalf("note lost: %+v", report.Phases[1])
	}
}

func TestTimerEndOutOfRange(t *testing.T) {
	tm := NewTimer()
	tm.End(3, "ignored")
	if got := len(tm.Report().Phases); got != 0 {
		t.Fatalf("phases = %d, want 0", got)
	}
}

func TestSummaryListsPhases(t *testing.T) {
	tm := NewTimer()
	p := tm.Begin("symbols")
	tm.End(p, "")

	out := tm.Summary()
	if !strings.Contains(out, "symbols") || !strings.Contains(out, "total") {
		t.Fatalf("summary missing entries:\n%s", out)
	}
}
