package preflight

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"muxage/internal/config"
	"muxage/internal/deps"
	"muxage/internal/offsets"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every applicable check for the given config. Checks run
// unconditionally where the feature is always on, and only when the
// corresponding option is enabled otherwise.
func RunAll(cfg *config.Config, baseDir, donorDir string) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	results = append(results, CheckReadableDirectory("Base directory", baseDir))
	results = append(results, CheckReadableDirectory("Donor directory", donorDir))
	results = append(results, CheckWritableDirectory("Output directory", cfg.Paths.OutputDir))

	if cfg.Mux.ExportAudio {
		results = append(results, CheckWritableDirectory("Export audio directory", cfg.Paths.ExportAudioDir))
	}

	if cfg.Mux.OffsetsCSV != "" {
		results = append(results, CheckOffsetsTable(cfg.Mux.OffsetsCSV))
	}

	for _, status := range deps.CheckBinaries(deps.Requirements(cfg)) {
		result := Result{Name: status.Name, Passed: status.Available}
		if status.Available {
			result.Detail = status.Command
		} else {
			result.Detail = status.Detail
		}
		results = append(results, result)
	}

	return results
}

// Failed filters results down to the checks that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, result := range results {
		if !result.Passed {
			failed = append(failed, result)
		}
	}
	return failed
}

// CheckReadableDirectory verifies that the directory exists and is readable.
func CheckReadableDirectory(name, path string) Result {
	if result, ok := statDirectory(name, path); !ok {
		return result
	}
	if err := unix.Access(path, unix.R_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read ok)", path)}
}

// CheckWritableDirectory verifies that the directory exists and is readable and writable.
func CheckWritableDirectory(name, path string) Result {
	if result, ok := statDirectory(name, path); !ok {
		return result
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

func statDirectory(name, path string) (Result, bool) {
	if path == "" {
		return Result{Name: name, Detail: "not configured"}, false
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}, false
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}, false
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}, false
	}
	return Result{}, true
}

// CheckOffsetsTable verifies the offsets CSV parses cleanly.
func CheckOffsetsTable(path string) Result {
	const name = "Offsets table"
	table, err := offsets.Load(path)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d entries)", path, table.Len())}
}
