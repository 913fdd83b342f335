package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"muxage/internal/config"
	"muxage/internal/ffmpeg"
	"muxage/internal/logging"
	"muxage/internal/preflight"
	"muxage/internal/report"
	"muxage/internal/runner"
)

func newRunCommand(cmdCtx *commandContext) *cobra.Command {
	var flags muxFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Pair episodes and mux them into MULTi files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			if err := flags.apply(cmd, cfg); err != nil {
				return err
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return err
			}

			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}

			table, err := loadOffsets(cfg)
			if err != nil {
				return err
			}
			opts, err := runnerOptions(cfg, table)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			checks := preflight.RunAll(cfg, opts.BaseDir, opts.DonorDir)
			if failed := preflight.Failed(checks); len(failed) > 0 {
				for _, check := range failed {
					fmt.Fprintf(out, "preflight: %s: %s\n", check.Name, check.Detail)
				}
				return fmt.Errorf("%d preflight check(s) failed", len(failed))
			}

			// One run per output directory at a time. Concurrent runs would
			// race on outputs and the scratch directory.
			lock := flock.New(filepath.Join(cfg.Paths.OutputDir, ".muxage.lock"))
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire output lock: %w", err)
			}
			if !locked {
				return fmt.Errorf("another muxage run is already using %s", cfg.Paths.OutputDir)
			}
			defer func() {
				_ = lock.Unlock()
			}()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			runID := uuid.NewString()
			logger = logger.With(logging.String(logging.FieldRunID, runID))

			prober := runner.NewProber(cfg.FFprobeBinary())
			executor := ffmpeg.NewExecutor(cfg.FFmpegBinary(), logger)
			batch := runner.New(prober, executor, logger, opts)

			started := time.Now().UTC()
			rep, err := batch.Run(ctx)
			if err != nil {
				return err
			}

			recordHistory(ctx, cfg, logger, runID, started, opts, rep)

			renderSeries(out, rep.Plans)
			renderPairingIssues(out, rep.Pairs)
			renderResults(out, rep.Results)
			renderSummary(out, rep.Summary)

			if rep.Summary.Failed > 0 {
				return fmt.Errorf("%d job(s) failed", rep.Summary.Failed)
			}
			return ctx.Err()
		},
	}

	flags.register(cmd)
	return cmd
}

// recordHistory persists the run outcome. History is best-effort: a broken
// database must never fail a batch that already muxed its files.
func recordHistory(ctx context.Context, cfg *config.Config, logger *slog.Logger, runID string, started time.Time, opts runner.Options, rep *runner.RunReport) {
	if !cfg.History.Enabled {
		return
	}

	path, err := cfg.HistoryPath()
	if err != nil {
		logger.Warn("history disabled", logging.Error(err))
		return
	}
	store, err := report.Open(path)
	if err != nil {
		logger.Warn("history disabled", logging.Error(err))
		return
	}
	defer store.Close()

	run := report.Run{
		ID:        runID,
		StartedAt: started,
		Direction: string(opts.Plan.Direction),
		BaseDir:   opts.BaseDir,
		DonorDir:  opts.DonorDir,
		OutputDir: opts.Plan.OutputDir,
		Planned:   rep.Summary.Planned,
	}
	if err := store.BeginRun(ctx, run); err != nil {
		logger.Warn("history write failed", logging.Error(err))
		return
	}
	for _, result := range rep.Results {
		record := report.Result{
			RunID:      runID,
			EpisodeKey: result.Key,
			BaseFile:   result.Plan.BasePath,
			DonorFile:  result.Plan.DonorPath,
			Status:     string(result.Status),
			Detail:     result.Detail,
			OffsetMs:   result.Plan.OffsetMs,
			Speedfix:   result.Plan.Speedfix.Apply,
			DurationMs: result.Duration.Milliseconds(),
		}
		if result.Status == runner.StatusSuccess {
			record.OutputFile = result.Plan.OutputPath
		}
		if err := store.RecordResult(ctx, record); err != nil {
			logger.Warn("history write failed", logging.Error(err))
			return
		}
	}
	if err := store.FinishRun(ctx, runID, rep.Summary.Succeeded, rep.Summary.Failed, rep.Summary.Skipped); err != nil {
		logger.Warn("history write failed", logging.Error(err))
	}
}
