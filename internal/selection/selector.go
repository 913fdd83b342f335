package selection

import (
	"fmt"

	"muxage/internal/language"
	"muxage/internal/media/ffprobe"
	"muxage/internal/services"
)

// Classified selection failures. Each marks services.ErrValidation so the
// runner reports them as per-episode validation failures, never run-fatal.
var (
	ErrNoVideo   = fmt.Errorf("%w: base has no video", services.ErrValidation)
	ErrNoVOAudio = fmt.Errorf("%w: no VO (jpn) audio found", services.ErrValidation)
	ErrNoFRAudio = fmt.Errorf("%w: no FR audio found", services.ErrValidation)
)

// Selection is the resolved track set for one episode pair. Video,
// subtitles, attachments and chapters always come from the base role; the
// donor contributes exactly one audio stream.
type Selection struct {
	Video      ffprobe.Stream
	BaseAudio  ffprobe.Stream // VO when the base carries VO, FR otherwise
	DonorAudio ffprobe.Stream

	// DonorChannels feeds adelay, which needs one delay per channel.
	// Defaults to 2 when the probe reports nothing.
	DonorChannels int

	Subtitles   []ffprobe.Stream
	Attachments []ffprobe.Stream
	HasChapters bool

	// FRSubtitle is the position of the first French subtitle relative to
	// the retained subtitle order, or -1. It receives the default
	// disposition at mux time.
	FRSubtitle int
}

// Select resolves tracks for a base/donor descriptor pair. voFromBase
// states which role carries the Japanese VO track: the base in the usual
// VF->VOSTFR direction, the donor in the reverse one. The other role must
// carry the French track. Duplicate-tagged streams resolve to the first by
// stream index; that tie-break is policy, not an error.
func Select(base, donor ffprobe.Result, basePath, donorPath string, voFromBase bool) (Selection, error) {
	videos := base.VideoStreams()
	if len(videos) == 0 {
		return Selection{}, fmt.Errorf("%s: %w", basePath, ErrNoVideo)
	}

	var sel Selection
	sel.Video = videos[0]

	baseAudio, donorAudio, err := pickAudio(base, donor, basePath, donorPath, voFromBase)
	if err != nil {
		return Selection{}, err
	}
	sel.BaseAudio = baseAudio
	sel.DonorAudio = donorAudio
	sel.DonorChannels = donorAudio.Channels
	if sel.DonorChannels <= 0 {
		sel.DonorChannels = 2
	}

	sel.Subtitles = base.SubtitleStreams()
	sel.Attachments = base.AttachmentStreams()
	sel.HasChapters = base.HasChapters()
	sel.FRSubtitle = firstFrenchSubtitle(sel.Subtitles)

	return sel, nil
}

func pickAudio(base, donor ffprobe.Result, basePath, donorPath string, voFromBase bool) (ffprobe.Stream, ffprobe.Stream, error) {
	if voFromBase {
		vo, ok := firstAudio(base, language.IsJapanese)
		if !ok {
			return ffprobe.Stream{}, ffprobe.Stream{}, fmt.Errorf("%s: %w", basePath, ErrNoVOAudio)
		}
		fr, ok := firstAudio(donor, language.IsFrench)
		if !ok {
			return ffprobe.Stream{}, ffprobe.Stream{}, fmt.Errorf("%s: %w", donorPath, ErrNoFRAudio)
		}
		return vo, fr, nil
	}

	fr, ok := firstAudio(base, language.IsFrench)
	if !ok {
		return ffprobe.Stream{}, ffprobe.Stream{}, fmt.Errorf("%s: %w", basePath, ErrNoFRAudio)
	}
	vo, ok := firstAudio(donor, language.IsJapanese)
	if !ok {
		return ffprobe.Stream{}, ffprobe.Stream{}, fmt.Errorf("%s: %w", donorPath, ErrNoVOAudio)
	}
	return fr, vo, nil
}

func firstAudio(result ffprobe.Result, match func(string) bool) (ffprobe.Stream, bool) {
	for _, stream := range result.AudioStreams() {
		if match(stream.Language()) {
			return stream, true
		}
	}
	return ffprobe.Stream{}, false
}

func firstFrenchSubtitle(subs []ffprobe.Stream) int {
	for i, stream := range subs {
		if language.IsFrench(stream.Language()) {
			return i
		}
	}
	return -1
}
