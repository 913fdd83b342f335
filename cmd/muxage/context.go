package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"muxage/internal/config"
	"muxage/internal/logging"
	"muxage/internal/offsets"
	"muxage/internal/plan"
	"muxage/internal/runner"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// newLogger builds the run logger from the config: the chosen format on
// stderr, plus a log file when a log directory is configured.
func newLogger(cfg *config.Config) (*slog.Logger, error) {
	outputs := []string{"stderr"}
	if cfg.Paths.LogDir != "" {
		outputs = append(outputs, filepath.Join(cfg.Paths.LogDir, "muxage.log"))
	}
	return logging.New(logging.Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		OutputPaths: outputs,
	})
}

// roleDirs maps the configured directories onto base and donor roles. The
// base side keeps its video, subtitles, attachments, and chapters; the
// donor side contributes one audio track.
func roleDirs(cfg *config.Config, direction plan.Direction) (base, donor string, err error) {
	if cfg.Paths.VOSTFRDir == "" || cfg.Paths.VFDir == "" {
		return "", "", fmt.Errorf("paths.vostfr_dir and paths.vf_dir must be configured")
	}
	if direction == plan.DirectionVFToVOSTFR {
		return cfg.Paths.VOSTFRDir, cfg.Paths.VFDir, nil
	}
	return cfg.Paths.VFDir, cfg.Paths.VOSTFRDir, nil
}

// runnerOptions builds the batch options from the merged config.
func runnerOptions(cfg *config.Config, table *offsets.Table) (runner.Options, error) {
	direction, err := plan.ParseDirection(cfg.Mux.Direction)
	if err != nil {
		return runner.Options{}, err
	}
	base, donor, err := roleDirs(cfg, direction)
	if err != nil {
		return runner.Options{}, err
	}
	if cfg.Paths.OutputDir == "" {
		return runner.Options{}, fmt.Errorf("paths.output_dir must be configured")
	}

	return runner.Options{
		BaseDir:  base,
		DonorDir: donor,
		Relaxed:  cfg.Mux.RelaxExtract,
		Speedfix: cfg.Mux.Speedfix,
		Workers:  cfg.Mux.Workers,
		Offsets:  table,
		Plan: plan.Options{
			Direction:       direction,
			OutputDir:       cfg.Paths.OutputDir,
			DefaultVF:       cfg.Mux.DefaultVF,
			Force:           cfg.Mux.Force,
			ForcePreprocess: cfg.Mux.ForcePreprocess,
			ExportAudio:     cfg.Mux.ExportAudio,
			ExportAudioDir:  cfg.Paths.ExportAudioDir,
		},
	}, nil
}

// loadOffsets reads the configured offsets table, or returns an empty one
// when none is configured.
func loadOffsets(cfg *config.Config) (*offsets.Table, error) {
	if cfg.Mux.OffsetsCSV == "" {
		return offsets.Empty(), nil
	}
	return offsets.Load(cfg.Mux.OffsetsCSV)
}
