package ffmpeg

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"muxage/internal/plan"
)

// PreprocessArgs builds the donor-audio transcode invocation: extract the
// selected stream, apply pad/trim and tempo filters, encode to lossless
// FLAC at tempPath. Only called when the plan requires preprocessing.
func PreprocessArgs(p plan.Plan, tempPath string) []string {
	args := []string{
		"-y",
		"-v", "error",
		"-i", p.DonorPath,
		"-map", fmt.Sprintf("0:%d", p.Selection.DonorAudio.Index),
		"-vn",
		"-sn",
	}
	if chain := filterChain(p); chain != "" {
		args = append(args, "-af", chain)
	}
	args = append(args, "-c:a", "flac", tempPath)
	return args
}

func filterChain(p plan.Plan) string {
	var filters []string
	switch {
	case p.OffsetMs < 0:
		startSec := float64(-p.OffsetMs) / 1000.0
		filters = append(filters,
			"atrim=start="+strconv.FormatFloat(startSec, 'f', -1, 64),
			"asetpts=PTS-STARTPTS")
	case p.OffsetMs > 0:
		// adelay wants one delay per channel.
		delays := make([]string, p.Selection.DonorChannels)
		for i := range delays {
			delays[i] = strconv.Itoa(p.OffsetMs)
		}
		filters = append(filters, "adelay="+strings.Join(delays, "|"))
	}
	if p.Speedfix.Apply {
		filters = append(filters, "atempo="+strconv.FormatFloat(p.Speedfix.Tempo, 'f', -1, 64))
	}
	return strings.Join(filters, ",")
}

// MuxArgs builds the final copy-only mux invocation. donorInput is either
// the donor file itself or the preprocessed FLAC; usePreprocessed states
// which, since a preprocessed input always maps its sole audio stream.
// Audio output order is fixed: VO first, FR second.
func MuxArgs(p plan.Plan, donorInput string, usePreprocessed bool) []string {
	args := []string{
		"-y",
		"-v", "error",
		"-i", p.BasePath,
		"-i", donorInput,
		"-map_chapters", "0",
		"-map", "0:v:0",
	}

	donorMap := fmt.Sprintf("1:%d", p.Selection.DonorAudio.Index)
	if usePreprocessed {
		donorMap = "1:a:0"
	}
	baseMap := fmt.Sprintf("0:%d", p.Selection.BaseAudio.Index)

	if p.Direction.VOFromBase() {
		args = append(args, "-map", baseMap, "-map", donorMap)
	} else {
		args = append(args, "-map", donorMap, "-map", baseMap)
	}

	if len(p.Selection.Subtitles) > 0 {
		args = append(args, "-map", "0:s?")
	}
	args = append(args, "-map", "0:t?")

	args = append(args, "-c:v", "copy", "-c:s", "copy", "-c:a", "copy")

	voDisposition, frDisposition := "default", "0"
	if p.DefaultVF {
		voDisposition, frDisposition = "0", "default"
	}
	args = append(args,
		"-metadata:s:a:0", "language=jpn",
		"-metadata:s:a:0", "title=VO (Japonais)",
		"-disposition:a:0", voDisposition,
		"-metadata:s:a:1", "language=fra",
		"-metadata:s:a:1", "title=VF",
		"-disposition:a:1", frDisposition,
	)

	if p.Selection.FRSubtitle >= 0 {
		args = append(args, fmt.Sprintf("-disposition:s:%d", p.Selection.FRSubtitle), "default")
	}

	args = append(args, p.OutputPath)
	return args
}

// ExportArgs builds the standalone donor-audio FLAC export invocation used
// when no preprocessed intermediate exists to copy from.
func ExportArgs(p plan.Plan) []string {
	return []string{
		"-y",
		"-v", "error",
		"-i", p.DonorPath,
		"-map", fmt.Sprintf("0:%d", p.Selection.DonorAudio.Index),
		"-vn",
		"-sn",
		"-c:a", "flac",
		p.ExportAudioPath,
	}
}

var plainToken = regexp.MustCompile(`^[\w@%+=:,./-]+$`)

// CommandLine renders a display-friendly shell-quoted command for logs and
// dry-run output.
func CommandLine(binary string, args []string) string {
	tokens := make([]string, 0, len(args)+1)
	for _, token := range append([]string{binary}, args...) {
		if token != "" && plainToken.MatchString(token) {
			tokens = append(tokens, token)
			continue
		}
		tokens = append(tokens, "'"+strings.ReplaceAll(token, "'", `'"'"'`)+"'")
	}
	return strings.Join(tokens, " ")
}
