package runner

import (
	"time"

	"muxage/internal/plan"
)

// Status classifies one episode job outcome.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// JobResult is the outcome of one episode job, whether it failed during
// planning or execution.
type JobResult struct {
	Key      string
	Plan     plan.Plan
	Status   Status
	Detail   string
	Err      error
	Duration time.Duration
}

// Summary aggregates job results into the counters the run report shows.
type Summary struct {
	Planned   int
	Succeeded int
	Failed    int
	Skipped   int
}

// Summarize counts results by status.
func Summarize(results []JobResult) Summary {
	summary := Summary{Planned: len(results)}
	for _, result := range results {
		switch result.Status {
		case StatusSuccess:
			summary.Succeeded++
		case StatusSkipped:
			summary.Skipped++
		default:
			summary.Failed++
		}
	}
	return summary
}
