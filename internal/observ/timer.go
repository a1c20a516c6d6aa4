package observ

import (
	"fmt"
	"strings"
	"time"
)

// Phase holds the wall-clock measurement of one pipeline stage, such as
// parse, atlas, symbols or codegen.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer collects phase timings across a single compilation.
type Timer struct {
	phases []Phase
}

// NewTimer returns an empty timer sized for the usual stage count.
func NewTimer() *Timer { return &Timer{phases: make([]Phase, 0, 8)} }

// Begin opens a phase and returns the index End expects.
func (t *Timer) Begin(name string) int {
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	return len(t.phases) - 1
}

// End closes the phase at idx and attaches an optional note, for example
// "cached" on a codegen stage served from the disk cache. An index that
// Begin never issued is ignored.
func (t *Timer) End(idx int, note string) {
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.Dur = time.Since(p.Start)
	p.Note = note
}

// PhaseReport сжатое представление фазы для вывода и сериализации.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report агрегированные тайминги компиляции в миллисекундах.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report converts the recorded phases into millisecond figures plus a
// running total.
func (t *Timer) Report() Report {
	if len(t.phases) == 0 {
		return Report{}
	}
	out := Report{Phases: make([]PhaseReport, 0, len(t.phases))}
	var total time.Duration
	for _, phase := range t.phases {
		total += phase.Dur
		out.Phases = append(out.Phases, PhaseReport{
			Name:       phase.Name,
			DurationMS: millis(phase.Dur),
			Note:       phase.Note,
		})
	}
	out.TotalMS = millis(total)
	return out
}

// Summary renders the report as an aligned text block for --timings.
func (t *Timer) Summary() string {
	report := t.Report()
	var b strings.Builder
	b.WriteString("timings:\n")
	for _, p := range report.Phases {
		fmt.Fprintf(&b, "  %-20s %7.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			b.WriteString("  // " + p.Note)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "  %-20s %7.2f ms\n", "total", report.TotalMS)
	return b.String()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
