// Package ffmpeg builds the preprocess and mux argument lists a job plan
// resolves to, and executes them against the ffmpeg binary. Builders are
// pure so dry runs can display exactly what would be executed.
package ffmpeg
