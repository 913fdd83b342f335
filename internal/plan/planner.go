package plan

import (
	"fmt"
	"path/filepath"

	"muxage/internal/selection"
	"muxage/internal/services"
	"muxage/internal/speedfix"
)

// Direction states which directory plays the base role.
type Direction string

const (
	// DirectionVFToVOSTFR muxes FR donor audio into VOSTFR base video.
	DirectionVFToVOSTFR Direction = "vf_to_vostfr"
	// DirectionVOSTFRToVF muxes VO donor audio into VF base video.
	DirectionVOSTFRToVF Direction = "vostfr_to_vf"
)

// ParseDirection validates a direction string from config or flags.
func ParseDirection(value string) (Direction, error) {
	switch Direction(value) {
	case DirectionVFToVOSTFR, DirectionVOSTFRToVF:
		return Direction(value), nil
	default:
		return "", services.Wrap(services.ErrConfiguration, "plan", "direction",
			fmt.Sprintf("unknown value %q (want %s or %s)", value, DirectionVFToVOSTFR, DirectionVOSTFRToVF), nil)
	}
}

// VOFromBase reports whether the base role carries the Japanese VO track.
func (d Direction) VOFromBase() bool {
	return d != DirectionVOSTFRToVF
}

// DonorLabel names the donor audio track for export filenames.
func (d Direction) DonorLabel() string {
	if d.VOFromBase() {
		return "VF"
	}
	return "VO"
}

// Options is the read-only planning snapshot taken before dispatch.
type Options struct {
	Direction       Direction
	OutputDir       string
	DefaultVF       bool // FR audio gets the default disposition instead of VO
	Force           bool // overwrite existing outputs
	ForcePreprocess bool // re-encode donor audio even without offset/speedfix
	ExportAudio     bool // keep a standalone FLAC of the donor audio
	ExportAudioDir  string
}

// Plan is the immutable description of the work required to produce one
// MULTi container from one episode pair. The runner consumes plans; it
// never mutates them.
type Plan struct {
	Key       string
	Direction Direction
	BasePath  string
	DonorPath string

	Selection selection.Selection
	Speedfix  speedfix.Decision
	OffsetMs  int

	OutputPath         string
	PreprocessRequired bool
	DefaultVF          bool
	Force              bool

	// ExportAudioPath is empty when no standalone audio export is wanted.
	ExportAudioPath string
}

// Build assembles the plan for one selected episode pair. Any nonzero
// offset or active speedfix forces donor-audio preprocessing: a copy-only
// mux cannot apply tempo change or sample-accurate pad/trim.
func Build(key, basePath, donorPath string, sel selection.Selection, decision speedfix.Decision, offsetMs int, opts Options) Plan {
	p := Plan{
		Key:       key,
		Direction: opts.Direction,
		BasePath:  basePath,
		DonorPath: donorPath,
		Selection: sel,
		Speedfix:  decision,
		OffsetMs:  offsetMs,
		DefaultVF: opts.DefaultVF,
		Force:     opts.Force,
	}

	p.OutputPath = filepath.Join(opts.OutputDir, OutputName(filepath.Base(basePath)))
	p.PreprocessRequired = decision.Apply || offsetMs != 0 || opts.ForcePreprocess

	if opts.ExportAudio {
		exportDir := opts.ExportAudioDir
		if exportDir == "" {
			exportDir = opts.OutputDir
		}
		stem := strippedExt(filepath.Base(basePath))
		p.ExportAudioPath = filepath.Join(exportDir, fmt.Sprintf("%s.%s.flac", stem, opts.Direction.DonorLabel()))
	}

	return p
}

func strippedExt(name string) string {
	ext := filepath.Ext(name)
	return name[:len(name)-len(ext)]
}
