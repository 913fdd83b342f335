// Package ffprobe wraps ffprobe JSON inspection and exposes the stream
// classification helpers the selector and planner consume.
package ffprobe
