package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"muxage/internal/services"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.toml")
	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Error("exists should be false for a missing file")
	}
	if resolved != path {
		t.Errorf("resolved = %q, want %q", resolved, path)
	}
	if cfg.Mux.Direction != "vf_to_vostfr" {
		t.Errorf("default direction = %q", cfg.Mux.Direction)
	}
	if !cfg.Mux.Speedfix {
		t.Error("speedfix should default on")
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Errorf("logging defaults = %q/%q", cfg.Logging.Format, cfg.Logging.Level)
	}
	if !cfg.History.Enabled {
		t.Error("history should default on")
	}
}

func TestLoadParsesAndExpandsPaths(t *testing.T) {
	path := writeConfig(t, `
[paths]
vostfr_dir = "~/vostfr"
output_dir = "./out"

[mux]
direction = "VOSTFR_TO_VF"
workers = 4
`)
	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("exists should be true")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("UserHomeDir: %v", err)
	}
	if want := filepath.Join(home, "vostfr"); cfg.Paths.VOSTFRDir != want {
		t.Errorf("vostfr_dir = %q, want %q", cfg.Paths.VOSTFRDir, want)
	}
	if !filepath.IsAbs(cfg.Paths.OutputDir) {
		t.Errorf("output_dir not absolutized: %q", cfg.Paths.OutputDir)
	}
	if cfg.Mux.Direction != "vostfr_to_vf" {
		t.Errorf("direction not lowercased: %q", cfg.Mux.Direction)
	}
	if cfg.Mux.Workers != 4 {
		t.Errorf("workers = %d", cfg.Mux.Workers)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"direction", "[mux]\ndirection = \"sideways\"\n"},
		{"workers", "[mux]\nworkers = -2\n"},
		{"log format", "[logging]\nformat = \"yaml\"\n"},
		{"log level", "[logging]\nlevel = \"trace\"\n"},
		{"export without dir", "[mux]\nexport_audio = true\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			_, _, _, err := Load(path)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, services.ErrConfiguration) {
				t.Errorf("error not ErrConfiguration: %v", err)
			}
		})
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	path := writeConfig(t, "[mux\ndirection =")
	_, _, _, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "parse config") {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestEnsureDirectories(t *testing.T) {
	base := t.TempDir()
	cfg := Default()
	cfg.Paths.OutputDir = filepath.Join(base, "out")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Mux.ExportAudio = true
	cfg.Paths.ExportAudioDir = filepath.Join(base, "audio")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	for _, dir := range []string{cfg.Paths.OutputDir, cfg.Paths.LogDir, cfg.Paths.ExportAudioDir} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Errorf("directory %q missing", dir)
		}
	}
}

func TestBinaryFallbacks(t *testing.T) {
	cfg := Default()
	cfg.Tools.FFmpeg = "  "
	cfg.Tools.FFprobe = ""
	if got := cfg.FFmpegBinary(); got != "ffmpeg" {
		t.Errorf("FFmpegBinary = %q", got)
	}
	if got := cfg.FFprobeBinary(); got != "ffprobe" {
		t.Errorf("FFprobeBinary = %q", got)
	}
}

func TestHistoryPathHonorsXDGDataHome(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	cfg := Default()
	got, err := cfg.HistoryPath()
	if err != nil {
		t.Fatalf("HistoryPath: %v", err)
	}
	if want := filepath.Join(os.Getenv("XDG_DATA_HOME"), "muxage", "history.db"); got != want {
		t.Errorf("HistoryPath = %q, want %q", got, want)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}
	if !exists {
		t.Fatal("sample config not found after CreateSample")
	}
	if cfg.Mux.Direction != "vf_to_vostfr" {
		t.Errorf("sample direction = %q", cfg.Mux.Direction)
	}
}
