package runner

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"muxage/internal/episode"
	"muxage/internal/logging"
	"muxage/internal/media/ffprobe"
	"muxage/internal/offsets"
	"muxage/internal/plan"
	"muxage/internal/services"
)

// Prober inspects one media file. The production implementation shells out
// to ffprobe; tests substitute canned results.
type Prober interface {
	Inspect(ctx context.Context, path string) (ffprobe.Result, error)
}

// Commander executes one external tool invocation. The production
// implementation is the ffmpeg executor.
type Commander interface {
	Run(ctx context.Context, args []string) error
}

// NewProber returns a Prober backed by the given ffprobe binary.
func NewProber(binary string) Prober {
	return binaryProber{binary: binary}
}

type binaryProber struct {
	binary string
}

func (p binaryProber) Inspect(ctx context.Context, path string) (ffprobe.Result, error) {
	return ffprobe.Inspect(ctx, p.binary, path)
}

// Options is the read-only batch configuration the runner works from.
// BaseDir and DonorDir are already role-assigned by the caller according
// to the direction.
type Options struct {
	BaseDir  string
	DonorDir string
	Relaxed  bool
	Speedfix bool
	Workers  int
	Offsets  *offsets.Table
	Plan     plan.Options
}

// Runner drives a batch from directory scan to final results.
type Runner struct {
	prober  Prober
	ffmpeg  Commander
	logger  *slog.Logger
	opts    Options
	offsets *offsets.Table
}

// New assembles a runner. A nil offsets table means no per-episode offsets.
func New(prober Prober, ffmpeg Commander, logger *slog.Logger, opts Options) *Runner {
	table := opts.Offsets
	if table == nil {
		table = offsets.Empty()
	}
	return &Runner{
		prober:  prober,
		ffmpeg:  ffmpeg,
		logger:  logging.NewComponentLogger(logger, "runner"),
		opts:    opts,
		offsets: table,
	}
}

// Discover scans both role directories and pairs their media files by
// episode key.
func (r *Runner) Discover() (episode.PairSet, error) {
	baseFiles, err := listMediaFiles(r.opts.BaseDir)
	if err != nil {
		return episode.PairSet{}, services.Wrap(services.ErrValidation, "runner", "discover", "scan base directory", err)
	}
	donorFiles, err := listMediaFiles(r.opts.DonorDir)
	if err != nil {
		return episode.PairSet{}, services.Wrap(services.ErrValidation, "runner", "discover", "scan donor directory", err)
	}

	set := episode.BuildPairs(baseFiles, donorFiles, r.opts.Relaxed)

	r.logger.Info("discovery complete",
		logging.Int("pairs", len(set.Pairs)),
		logging.Int("unmatched_base", len(set.UnmatchedA)),
		logging.Int("unmatched_donor", len(set.UnmatchedB)),
		logging.Int("ambiguous", len(set.AmbiguousA)+len(set.AmbiguousB)))

	return set, nil
}

func listMediaFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !episode.IsMediaFile(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

func (r *Runner) workerCount(jobs int) int {
	workers := r.opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > jobs {
		workers = jobs
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}
