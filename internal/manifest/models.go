package manifest

import (
	"errors"
	"time"
)

// ErrRunNotFound is returned when a run ID has no manifest row.
var ErrRunNotFound = errors.New("run not found")

// Status is the lifecycle state of a run.
type Status string

const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Run is a single preprocessing run.
type Run struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	OutputDir  string     `json:"output_dir"`
	Subset     string     `json:"subset"`
	ConfigJSON string     `json:"config_json,omitempty"`
	Status     Status     `json:"status"`
	Records    int        `json:"records"`
	Files      int        `json:"files"`
	Error      string     `json:"error,omitempty"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// Duration reports how long the run took, or zero while it is running.
func (r *Run) Duration() time.Duration {
	if r == nil || r.FinishedAt == nil {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Output is a file written by a run.
type Output struct {
	RunID       string `json:"run_id"`
	RecordIndex int    `json:"record_index"`
	Label       string `json:"label"`
	SourcePath  string `json:"source_path"`
	OutputPath  string `json:"output_path"`
	Shape       string `json:"shape"`
}
