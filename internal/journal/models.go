package journal

import "time"

// Status is the lifecycle state of a run.
type Status string

const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusFailed    Status = "failed"
)

// File outcome states.
const (
	FileOK     = "ok"
	FileEmpty  = "empty"
	FileFailed = "failed"
)

// Run is one pipeline execution.
type Run struct {
	ID             string
	StartedAt      time.Time
	FinishedAt     time.Time
	OutputPath     string
	WindowStart    time.Time
	WindowEnd      time.Time
	Workers        int
	Status         Status
	FilesTotal     int
	FilesEmpty     int
	FilesFailed    int
	RecordsWritten int
}

// FileOutcome is the terminal state of one input file within a run.
type FileOutcome struct {
	RunID      string
	Path       string
	Status     string
	Records    int
	Detail     string
	RecordedAt time.Time
}
