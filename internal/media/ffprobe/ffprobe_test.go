package ffprobe

import (
	"encoding/json"
	"math"
	"testing"
)

const sampleJSON = `{
  "streams": [
    {"index": 0, "codec_name": "h264", "codec_type": "video", "avg_frame_rate": "24000/1001", "r_frame_rate": "24000/1001"},
    {"index": 1, "codec_name": "aac", "codec_type": "audio", "channels": 2, "tags": {"language": "jpn", "title": "VO"}},
    {"index": 2, "codec_name": "ass", "codec_type": "subtitle", "tags": {"language": "fre"}},
    {"index": 3, "codec_name": "ttf", "codec_type": "attachment"}
  ],
  "chapters": [{"id": 1}],
  "format": {"filename": "ep.mkv", "nb_streams": 4}
}`

func decodeSample(t *testing.T) Result {
	t.Helper()
	var result Result
	if err := json.Unmarshal([]byte(sampleJSON), &result); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	return result
}

func TestStreamClassification(t *testing.T) {
	result := decodeSample(t)

	if got := len(result.VideoStreams()); got != 1 {
		t.Errorf("video streams = %d, want 1", got)
	}
	if got := len(result.AudioStreams()); got != 1 {
		t.Errorf("audio streams = %d, want 1", got)
	}
	if got := len(result.SubtitleStreams()); got != 1 {
		t.Errorf("subtitle streams = %d, want 1", got)
	}
	if got := len(result.AttachmentStreams()); got != 1 {
		t.Errorf("attachment streams = %d, want 1", got)
	}
	if !result.HasChapters() {
		t.Error("expected chapters present")
	}

	audio := result.AudioStreams()[0]
	if audio.Language() != "jpn" {
		t.Errorf("audio language = %q, want jpn", audio.Language())
	}
	if audio.Title() != "VO" {
		t.Errorf("audio title = %q, want VO", audio.Title())
	}
}

func TestFPSParsing(t *testing.T) {
	tests := []struct {
		name     string
		stream   Stream
		expected float64
		none     bool
	}{
		{"ntsc film", Stream{CodecType: "video", AvgFrameRate: "24000/1001"}, 24000.0 / 1001.0, false},
		{"pal", Stream{CodecType: "video", AvgFrameRate: "25/1"}, 25.0, false},
		{"avg zero falls back to r", Stream{CodecType: "video", AvgFrameRate: "0/0", RFrameRate: "25/1"}, 25.0, false},
		{"integer rate", Stream{CodecType: "video", AvgFrameRate: "24"}, 24.0, false},
		{"time base fallback", Stream{CodecType: "video", AvgFrameRate: "0/0", RFrameRate: "0/0", TimeBase: "1/25"}, 25.0, false},
		{"unmeasurable", Stream{CodecType: "video"}, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Result{Streams: []Stream{tt.stream}}
			fps := result.FPS()
			if tt.none {
				if fps != nil {
					t.Fatalf("FPS = %v, want nil", *fps)
				}
				return
			}
			if fps == nil {
				t.Fatal("FPS = nil, want value")
			}
			if math.Abs(*fps-tt.expected) > 1e-9 {
				t.Errorf("FPS = %v, want %v", *fps, tt.expected)
			}
		})
	}
}

func TestFPSNoVideo(t *testing.T) {
	result := Result{Streams: []Stream{{CodecType: "audio", Index: 0}}}
	if fps := result.FPS(); fps != nil {
		t.Errorf("FPS for audio-only container = %v, want nil", *fps)
	}
}
