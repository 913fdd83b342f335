package ffmpeg

import (
	"bytes"
	"context"
	"log/slog"
	"os/exec"
	"strings"

	"muxage/internal/logging"
	"muxage/internal/services"
)

// Executor shells out to the configured ffmpeg binary.
type Executor struct {
	binary string
	logger *slog.Logger
}

// NewExecutor returns an executor bound to the given binary name or path.
func NewExecutor(binary string, logger *slog.Logger) *Executor {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	return &Executor{
		binary: binary,
		logger: logging.NewComponentLogger(logger, "ffmpeg"),
	}
}

// Binary returns the executable this executor invokes.
func (e *Executor) Binary() string {
	return e.binary
}

// Run executes one ffmpeg invocation and waits for completion. Stderr is
// captured into the returned error; ffmpeg runs with -v error so anything
// it prints is diagnostic.
func (e *Executor) Run(ctx context.Context, args []string) error {
	e.logger.Debug("invoking", logging.String("command", CommandLine(e.binary, args)))

	cmd := exec.CommandContext(ctx, e.binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = err.Error()
		}
		return services.Wrap(services.ErrExternalTool, "ffmpeg", "run", detail, err)
	}
	return nil
}
