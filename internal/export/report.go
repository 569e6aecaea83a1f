package export

import (
	"time"
)

// Status is the terminal state of one track's export.
type Status string

const (
	// StatusSuccess means the audio exported and its tags were written.
	StatusSuccess Status = "success"
	// StatusFailed means no output file exists for the track.
	StatusFailed Status = "failed"
	// StatusDegraded means the audio exported but tagging failed; the file
	// is playable without tags.
	StatusDegraded Status = "degraded"
)

// Result is the immutable outcome of one span's export.
type Result struct {
	Index        int           `json:"index"`
	Title        string        `json:"title"`
	OutputPath   string        `json:"output_path,omitempty"`
	Status       Status        `json:"status"`
	ErrorKind    string        `json:"error_kind,omitempty"`
	ErrorMessage string        `json:"error_message,omitempty"`
	Elapsed      time.Duration `json:"elapsed_ns"`
}

// Exported reports whether an output file exists for this result.
func (r Result) Exported() bool {
	return r.Status == StatusSuccess || r.Status == StatusDegraded
}

// Report aggregates one run's results, ordered by span index.
type Report struct {
	RunID      string        `json:"run_id"`
	SourcePath string        `json:"source_path"`
	Album      string        `json:"album"`
	Results    []Result      `json:"results"`
	Success    bool          `json:"success"`
	Elapsed    time.Duration `json:"elapsed_ns"`
	StartedAt  time.Time     `json:"started_at"`
}

// Counts returns how many tracks succeeded, degraded, and failed.
func (r Report) Counts() (succeeded, degraded, failed int) {
	for _, res := range r.Results {
		switch res.Status {
		case StatusSuccess:
			succeeded++
		case StatusDegraded:
			degraded++
		case StatusFailed:
			failed++
		}
	}
	return succeeded, degraded, failed
}
