package runner

import (
	"context"

	"muxage/internal/episode"
	"muxage/internal/logging"
	"muxage/internal/plan"
	"muxage/internal/selection"
	"muxage/internal/speedfix"
)

// PlanOutcome carries the executable plans plus the pairs that failed
// before any ffmpeg work: probe errors and track-selection failures.
type PlanOutcome struct {
	Plans    []plan.Plan
	Failures []JobResult
}

// PlanJobs probes every pair and resolves it into an executable plan.
// Pairs that cannot be planned become failed results instead of aborting
// the batch.
func (r *Runner) PlanJobs(ctx context.Context, pairs []episode.Pair) PlanOutcome {
	var outcome PlanOutcome
	for _, pair := range pairs {
		if err := ctx.Err(); err != nil {
			outcome.Failures = append(outcome.Failures, JobResult{
				Key: pair.Key, Status: StatusFailed, Detail: "canceled", Err: err,
			})
			continue
		}

		p, err := r.planPair(ctx, pair)
		if err != nil {
			r.logger.Warn("planning failed",
				logging.String(logging.FieldEpisode, pair.Key),
				logging.Error(err))
			outcome.Failures = append(outcome.Failures, JobResult{
				Key: pair.Key, Status: StatusFailed, Detail: err.Error(), Err: err,
			})
			continue
		}
		outcome.Plans = append(outcome.Plans, p)
	}
	return outcome
}

func (r *Runner) planPair(ctx context.Context, pair episode.Pair) (plan.Plan, error) {
	basePath, donorPath := pair.PathA, pair.PathB

	base, err := r.prober.Inspect(ctx, basePath)
	if err != nil {
		return plan.Plan{}, err
	}
	donor, err := r.prober.Inspect(ctx, donorPath)
	if err != nil {
		return plan.Plan{}, err
	}

	sel, err := selection.Select(base, donor, basePath, donorPath, r.opts.Plan.Direction.VOFromBase())
	if err != nil {
		return plan.Plan{}, err
	}

	decision := speedfix.Decide(base.FPS(), donor.FPS(), r.opts.Speedfix)
	offsetMs := r.offsets.Lookup(pair.Key)

	p := plan.Build(pair.Key, basePath, donorPath, sel, decision, offsetMs, r.opts.Plan)

	r.logger.Debug("planned",
		logging.String(logging.FieldEpisode, p.Key),
		logging.Bool("speedfix", p.Speedfix.Apply),
		logging.Int("offset_ms", p.OffsetMs),
		logging.Bool("preprocess", p.PreprocessRequired))

	return p, nil
}
