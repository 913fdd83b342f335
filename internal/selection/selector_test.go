package selection

import (
	"errors"
	"testing"

	"muxage/internal/media/ffprobe"
)

func video(index int) ffprobe.Stream {
	return ffprobe.Stream{Index: index, CodecType: "video", CodecName: "h264", AvgFrameRate: "24000/1001"}
}

func audio(index int, lang string, channels int) ffprobe.Stream {
	return ffprobe.Stream{Index: index, CodecType: "audio", CodecName: "aac", Channels: channels, Tags: map[string]string{"language": lang}}
}

func subtitle(index int, lang string) ffprobe.Stream {
	return ffprobe.Stream{Index: index, CodecType: "subtitle", CodecName: "ass", Tags: map[string]string{"language": lang}}
}

func attachment(index int) ffprobe.Stream {
	return ffprobe.Stream{Index: index, CodecType: "attachment", CodecName: "ttf"}
}

func baseDescriptor() ffprobe.Result {
	return ffprobe.Result{
		Streams: []ffprobe.Stream{
			video(0),
			audio(1, "jpn", 2),
			subtitle(2, "eng"),
			subtitle(3, "fre"),
			attachment(4),
		},
		Chapters: []ffprobe.Chapter{{ID: 1}},
	}
}

func donorDescriptor() ffprobe.Result {
	return ffprobe.Result{
		Streams: []ffprobe.Stream{
			video(0),
			audio(1, "fra", 6),
		},
	}
}

func TestSelectForward(t *testing.T) {
	sel, err := Select(baseDescriptor(), donorDescriptor(), "base.mkv", "donor.mkv", true)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if sel.Video.Index != 0 {
		t.Errorf("video index = %d, want 0", sel.Video.Index)
	}
	if sel.BaseAudio.Index != 1 || sel.BaseAudio.Language() != "jpn" {
		t.Errorf("base audio = %+v, want jpn at 1", sel.BaseAudio)
	}
	if sel.DonorAudio.Index != 1 || sel.DonorAudio.Language() != "fra" {
		t.Errorf("donor audio = %+v, want fra at 1", sel.DonorAudio)
	}
	if sel.DonorChannels != 6 {
		t.Errorf("donor channels = %d, want 6", sel.DonorChannels)
	}
	if len(sel.Subtitles) != 2 || len(sel.Attachments) != 1 {
		t.Errorf("subs/attachments = %d/%d, want 2/1", len(sel.Subtitles), len(sel.Attachments))
	}
	if !sel.HasChapters {
		t.Error("chapters flag not carried")
	}
	if sel.FRSubtitle != 1 {
		t.Errorf("FR subtitle position = %d, want 1", sel.FRSubtitle)
	}
}

func TestSelectReverseRoles(t *testing.T) {
	base := ffprobe.Result{Streams: []ffprobe.Stream{video(0), audio(1, "fra", 2)}}
	donor := ffprobe.Result{Streams: []ffprobe.Stream{video(0), audio(1, "jpn", 2), subtitle(2, "fre")}}

	sel, err := Select(base, donor, "vf.mkv", "vostfr.mkv", false)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if sel.BaseAudio.Language() != "fra" {
		t.Errorf("base audio language = %q, want fra", sel.BaseAudio.Language())
	}
	if sel.DonorAudio.Language() != "jpn" {
		t.Errorf("donor audio language = %q, want jpn", sel.DonorAudio.Language())
	}
	// Subtitles always follow the base role.
	if len(sel.Subtitles) != 0 {
		t.Errorf("subtitles = %d, want 0 (base has none)", len(sel.Subtitles))
	}
}

func TestSelectNoVideo(t *testing.T) {
	base := ffprobe.Result{Streams: []ffprobe.Stream{audio(0, "jpn", 2)}}
	_, err := Select(base, donorDescriptor(), "base.mka", "donor.mkv", true)
	if !errors.Is(err, ErrNoVideo) {
		t.Fatalf("err = %v, want ErrNoVideo", err)
	}
}

func TestSelectNoVOAudio(t *testing.T) {
	base := ffprobe.Result{Streams: []ffprobe.Stream{video(0), audio(1, "eng", 2)}}
	_, err := Select(base, donorDescriptor(), "base.mkv", "donor.mkv", true)
	if !errors.Is(err, ErrNoVOAudio) {
		t.Fatalf("err = %v, want ErrNoVOAudio", err)
	}
}

func TestSelectNoFRAudio(t *testing.T) {
	donor := ffprobe.Result{Streams: []ffprobe.Stream{audio(0, "eng", 2)}}
	_, err := Select(baseDescriptor(), donor, "base.mkv", "donor.mkv", true)
	if !errors.Is(err, ErrNoFRAudio) {
		t.Fatalf("err = %v, want ErrNoFRAudio", err)
	}
}

func TestSelectFirstMatchTieBreak(t *testing.T) {
	donor := ffprobe.Result{Streams: []ffprobe.Stream{
		audio(0, "eng", 2),
		audio(1, "fra", 2),
		audio(2, "fra", 6),
	}}
	sel, err := Select(baseDescriptor(), donor, "base.mkv", "donor.mkv", true)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if sel.DonorAudio.Index != 1 {
		t.Errorf("donor audio index = %d, want first match 1", sel.DonorAudio.Index)
	}
}

func TestSelectDonorChannelsDefault(t *testing.T) {
	donor := ffprobe.Result{Streams: []ffprobe.Stream{audio(0, "fra", 0)}}
	sel, err := Select(baseDescriptor(), donor, "base.mkv", "donor.mka", true)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if sel.DonorChannels != 2 {
		t.Errorf("donor channels = %d, want default 2", sel.DonorChannels)
	}
}

func TestSelectNoFRSubtitle(t *testing.T) {
	base := ffprobe.Result{Streams: []ffprobe.Stream{video(0), audio(1, "jpn", 2), subtitle(2, "eng")}}
	sel, err := Select(base, donorDescriptor(), "base.mkv", "donor.mkv", true)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if sel.FRSubtitle != -1 {
		t.Errorf("FR subtitle position = %d, want -1", sel.FRSubtitle)
	}
}
