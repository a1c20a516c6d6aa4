package driver

import "time"

// Stage describes a high-level compilation phase.
type Stage string

const (
	// StageParse covers lexing and parsing.
	StageParse Stage = "parse"
	// StageCheck covers reachability and type resolution.
	StageCheck Stage = "check"
	// StageCodegen covers Rust emission.
	StageCodegen Stage = "codegen"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the file is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the file is being processed.
	StatusWorking Status = "working"
	// StatusDone indicates the file finished cleanly.
	StatusDone Status = "done"
	// StatusError indicates the file produced diagnostics or failed to load.
	StatusError Status = "error"
)

// Event reports progress for one file (or for the whole run when File is
// empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func emit(sink ProgressSink, ev Event) {
	if sink == nil {
		return
	}
	sink.OnEvent(ev)
}
