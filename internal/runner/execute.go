package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"muxage/internal/ffmpeg"
	"muxage/internal/fileutil"
	"muxage/internal/logging"
	"muxage/internal/plan"
)

// workDirName is the per-output-directory scratch area for preprocessed
// donor audio. Intermediates are removed after each job; the directory
// itself is removed once the batch finishes if nothing is left in it.
const workDirName = ".muxage_tmp"

// Execute runs the plans on a bounded worker pool and returns one result
// per plan, in plan order.
func (r *Runner) Execute(ctx context.Context, plans []plan.Plan) []JobResult {
	results := make([]JobResult, len(plans))
	if len(plans) == 0 {
		return results
	}

	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < r.workerCount(len(plans)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = r.executeOne(ctx, plans[i])
			}
		}()
	}

	for i := range plans {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	r.cleanupWorkDirs(plans)
	return results
}

func (r *Runner) executeOne(ctx context.Context, p plan.Plan) JobResult {
	result := JobResult{Key: p.Key, Plan: p}
	if err := ctx.Err(); err != nil {
		result.Status = StatusFailed
		result.Detail = "canceled"
		result.Err = err
		return result
	}

	start := time.Now()
	logger := r.logger.With(logging.String(logging.FieldEpisode, p.Key))

	if fileutil.Exists(p.OutputPath) && !p.Force {
		logger.Info("skipping, output exists", logging.String("output", p.OutputPath))
		result.Status = StatusSkipped
		result.Detail = "output exists"
		return result
	}

	donorInput := p.DonorPath
	usePreprocessed := false
	var tempPath string

	if p.PreprocessRequired {
		workDir := filepath.Join(filepath.Dir(p.OutputPath), workDirName)
		if err := os.MkdirAll(workDir, 0o755); err != nil {
			return r.failed(result, start, fmt.Errorf("create work directory: %w", err))
		}
		tempPath = filepath.Join(workDir, p.Key+"_donor.flac")
		defer func() {
			_ = fileutil.RemoveIfExists(tempPath)
		}()

		logger.Info("preprocessing donor audio",
			logging.Bool("speedfix", p.Speedfix.Apply),
			logging.Int("offset_ms", p.OffsetMs))
		if err := r.ffmpeg.Run(ctx, ffmpeg.PreprocessArgs(p, tempPath)); err != nil {
			return r.failed(result, start, err)
		}
		donorInput = tempPath
		usePreprocessed = true
	}

	logger.Info("muxing", logging.String("output", p.OutputPath))
	if err := r.ffmpeg.Run(ctx, ffmpeg.MuxArgs(p, donorInput, usePreprocessed)); err != nil {
		// A failed mux can leave a truncated container behind.
		_ = fileutil.RemoveIfExists(p.OutputPath)
		return r.failed(result, start, err)
	}

	if p.ExportAudioPath != "" {
		if err := r.exportAudio(ctx, p, tempPath, usePreprocessed); err != nil {
			return r.failed(result, start, err)
		}
	}

	result.Status = StatusSuccess
	result.Duration = time.Since(start)
	logger.Info("done", logging.Duration("elapsed", result.Duration))
	return result
}

// exportAudio writes the standalone donor-audio FLAC. When a preprocessed
// intermediate exists it already carries every correction, so a verified
// copy beats re-encoding.
func (r *Runner) exportAudio(ctx context.Context, p plan.Plan, tempPath string, usePreprocessed bool) error {
	if usePreprocessed {
		return fileutil.CopyFileVerified(tempPath, p.ExportAudioPath)
	}
	return r.ffmpeg.Run(ctx, ffmpeg.ExportArgs(p))
}

func (r *Runner) failed(result JobResult, start time.Time, err error) JobResult {
	result.Status = StatusFailed
	result.Detail = err.Error()
	result.Err = err
	result.Duration = time.Since(start)
	r.logger.Error("job failed",
		logging.String(logging.FieldEpisode, result.Key),
		logging.Error(err))
	return result
}

// cleanupWorkDirs removes scratch directories that ended the batch empty.
func (r *Runner) cleanupWorkDirs(plans []plan.Plan) {
	seen := make(map[string]struct{})
	for _, p := range plans {
		dir := filepath.Join(filepath.Dir(p.OutputPath), workDirName)
		if _, ok := seen[dir]; ok {
			continue
		}
		seen[dir] = struct{}{}
		// Fails on non-empty directories, which is the point.
		_ = os.Remove(dir)
	}
}
