package runner

import (
	"context"
	"sort"

	"muxage/internal/episode"
	"muxage/internal/plan"
)

// RunReport is the complete outcome of one batch invocation.
type RunReport struct {
	Pairs   episode.PairSet
	Plans   []plan.Plan
	Results []JobResult
	Summary Summary
}

// Run drives the full batch: discover, plan, execute. Planning failures
// and execution results land in the same result list, ordered by episode
// key, so every discovered pair is accounted for.
func (r *Runner) Run(ctx context.Context) (*RunReport, error) {
	pairs, err := r.Discover()
	if err != nil {
		return nil, err
	}

	outcome := r.PlanJobs(ctx, pairs.Pairs)
	executed := r.Execute(ctx, outcome.Plans)

	results := make([]JobResult, 0, len(outcome.Failures)+len(executed))
	results = append(results, outcome.Failures...)
	results = append(results, executed...)
	sortResults(results)

	return &RunReport{
		Pairs:   pairs,
		Plans:   outcome.Plans,
		Results: results,
		Summary: Summarize(results),
	}, nil
}

// Dry plans the batch without touching ffmpeg for execution. The caller
// renders the plans.
func (r *Runner) Dry(ctx context.Context) (*RunReport, error) {
	pairs, err := r.Discover()
	if err != nil {
		return nil, err
	}

	outcome := r.PlanJobs(ctx, pairs.Pairs)
	sortResults(outcome.Failures)

	return &RunReport{
		Pairs:   pairs,
		Plans:   outcome.Plans,
		Results: outcome.Failures,
		Summary: Summarize(outcome.Failures),
	}, nil
}

// sortResults orders by key length then key, matching pair order, so E99
// reports before E100.
func sortResults(results []JobResult) {
	sort.SliceStable(results, func(i, j int) bool {
		if len(results[i].Key) != len(results[j].Key) {
			return len(results[i].Key) < len(results[j].Key)
		}
		return results[i].Key < results[j].Key
	})
}
