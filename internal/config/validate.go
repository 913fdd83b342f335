package config

import (
	"fmt"
	"strings"

	"muxage/internal/services"
)

var validDirections = map[string]bool{
	"vf_to_vostfr": true,
	"vostfr_to_vf": true,
}

var validLogFormats = map[string]bool{
	"console": true,
	"json":    true,
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// normalize expands and absolutizes every path field and lowercases the
// enumerated string fields. Called once by Load before validation.
func (c *Config) normalize() error {
	c.Mux.Direction = strings.ToLower(strings.TrimSpace(c.Mux.Direction))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))

	fields := []*string{
		&c.Paths.VOSTFRDir,
		&c.Paths.VFDir,
		&c.Paths.OutputDir,
		&c.Paths.ExportAudioDir,
		&c.Paths.LogDir,
		&c.Mux.OffsetsCSV,
	}
	for _, field := range fields {
		if strings.TrimSpace(*field) == "" {
			*field = ""
			continue
		}
		expanded, err := expandPath(*field)
		if err != nil {
			return services.Wrap(services.ErrConfiguration, "config", "normalize", "expand path", err)
		}
		*field = expanded
	}
	return nil
}

// Validate checks configuration invariants that do not depend on the
// filesystem. Missing directories are a preflight concern, not a parse one.
func (c *Config) Validate() error {
	fail := func(message string) error {
		return services.Wrap(services.ErrConfiguration, "config", "validate", message, nil)
	}

	if !validDirections[c.Mux.Direction] {
		return fail(fmt.Sprintf("mux.direction must be vf_to_vostfr or vostfr_to_vf, got %q", c.Mux.Direction))
	}
	if c.Mux.Workers < 0 {
		return fail(fmt.Sprintf("mux.workers must be zero or positive, got %d", c.Mux.Workers))
	}
	if !validLogFormats[c.Logging.Format] {
		return fail(fmt.Sprintf("logging.format must be console or json, got %q", c.Logging.Format))
	}
	if !validLogLevels[c.Logging.Level] {
		return fail(fmt.Sprintf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level))
	}
	if c.Mux.ExportAudio && c.Paths.ExportAudioDir == "" {
		return fail("mux.export_audio requires paths.export_audio_dir")
	}
	return nil
}
