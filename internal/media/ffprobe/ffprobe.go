package ffprobe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"muxage/internal/language"
	"muxage/internal/services"
)

// Result represents the parsed output from an ffprobe inspection. It is the
// per-file media descriptor the rest of the pipeline consumes; it is never
// mutated after Inspect returns.
type Result struct {
	Streams  []Stream  `json:"streams"`
	Chapters []Chapter `json:"chapters"`
	Format   Format    `json:"format"`
}

// Stream describes a single stream in the media container.
type Stream struct {
	Index        int               `json:"index"`
	CodecName    string            `json:"codec_name"`
	CodecType    string            `json:"codec_type"`
	Channels     int               `json:"channels"`
	AvgFrameRate string            `json:"avg_frame_rate"`
	RFrameRate   string            `json:"r_frame_rate"`
	TimeBase     string            `json:"time_base"`
	Tags         map[string]string `json:"tags"`
}

// Chapter is carried only for presence detection; chapter payloads are
// copied verbatim by ffmpeg at mux time.
type Chapter struct {
	ID int64 `json:"id"`
}

// Format captures container-level metadata extracted by ffprobe.
type Format struct {
	Filename   string `json:"filename"`
	NBStreams  int    `json:"nb_streams"`
	Duration   string `json:"duration"`
	FormatName string `json:"format_name"`
}

// Inspect executes ffprobe against the provided path and decodes the JSON response.
func Inspect(ctx context.Context, binary string, path string) (Result, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{}, errors.New("ffprobe inspect: empty path")
	}

	cmd := exec.CommandContext(ctx, binary,
		"-v", "error",
		"-print_format", "json",
		"-show_streams",
		"-show_format",
		"-show_chapters",
		"--", path)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return Result{}, services.Wrap(services.ErrExternalTool, "ffprobe", "inspect", path,
			fmt.Errorf("%w: %s", err, strings.TrimSpace(string(output))))
	}

	var result Result
	if err := json.Unmarshal(output, &result); err != nil {
		return Result{}, services.Wrap(services.ErrExternalTool, "ffprobe", "parse", path, err)
	}
	return result, nil
}

// Language returns the normalized language tag of the stream, or "".
func (s Stream) Language() string {
	return language.ExtractFromTags(s.Tags)
}

// Title returns the stream title tag, or "".
func (s Stream) Title() string {
	if s.Tags == nil {
		return ""
	}
	return strings.TrimSpace(s.Tags["title"])
}

// VideoStreams returns the video streams in container order.
func (r Result) VideoStreams() []Stream { return r.streamsOfType("video") }

// AudioStreams returns the audio streams in container order.
func (r Result) AudioStreams() []Stream { return r.streamsOfType("audio") }

// SubtitleStreams returns the subtitle streams in container order.
func (r Result) SubtitleStreams() []Stream { return r.streamsOfType("subtitle") }

// AttachmentStreams returns attachment streams (fonts, mostly) in container order.
func (r Result) AttachmentStreams() []Stream { return r.streamsOfType("attachment") }

// HasChapters reports whether the container carries chapter metadata.
func (r Result) HasChapters() bool { return len(r.Chapters) > 0 }

func (r Result) streamsOfType(codecType string) []Stream {
	var out []Stream
	for _, stream := range r.Streams {
		if strings.EqualFold(stream.CodecType, codecType) {
			out = append(out, stream)
		}
	}
	return out
}

// FPS returns the frame rate of the first video stream, or nil when the
// container has no video or the rate cannot be measured.
func (r Result) FPS() *float64 {
	for _, stream := range r.Streams {
		if !strings.EqualFold(stream.CodecType, "video") {
			continue
		}
		return streamFPS(stream)
	}
	return nil
}

func streamFPS(stream Stream) *float64 {
	for _, rate := range []string{stream.AvgFrameRate, stream.RFrameRate} {
		if fps, ok := parseRational(rate); ok {
			return &fps
		}
	}
	// Last resort: invert the time base.
	if num, den, ok := splitRational(stream.TimeBase); ok && num != 0 {
		fps := den / num
		return &fps
	}
	return nil
}

func parseRational(value string) (float64, bool) {
	if value == "" || value == "0/0" {
		return 0, false
	}
	num, den, ok := splitRational(value)
	if !ok || den == 0 {
		return 0, false
	}
	return num / den, true
}

func splitRational(value string) (num, den float64, ok bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, 0, false
	}
	numPart, denPart, found := strings.Cut(value, "/")
	num, err := strconv.ParseFloat(numPart, 64)
	if err != nil {
		return 0, 0, false
	}
	den = 1
	if found {
		den, err = strconv.ParseFloat(denPart, 64)
		if err != nil {
			return 0, 0, false
		}
	}
	return num, den, true
}
