// Package genpipeline orchestrates per-file generation work: walking a tree,
// running the markup passes, and writing results back atomically. The
// transform passes themselves stay pure; this package owns IO, concurrency
// and progress reporting.
package genpipeline

import "time"

// Stage describes a high-level step in a file's lifecycle.
type Stage string

const (
	// StageRender is template rendering during scaffolding.
	StageRender Stage = "render"
	// StageDirectives applies removal directives.
	StageDirectives Stage = "directives"
	// StageComments strips remaining comments.
	StageComments Stage = "comments"
	// StageWrite is the atomic write-back.
	StageWrite Stage = "write"
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
	// StatusSkipped indicates the file was left untouched.
	StatusSkipped Status = "skipped"
	// StatusError indicates processing failed for the file.
	StatusError Status = "error"
)

// Event reports progress for a file (or for the overall run when File is
// empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Implementations must tolerate
// concurrent OnEvent calls.
type ProgressSink interface {
	OnEvent(Event)
}
