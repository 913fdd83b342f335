package main

import (
	"strings"

	"github.com/spf13/cobra"

	"muxage/internal/config"
)

// muxFlags holds the per-invocation overrides shared by `run` and `plan`.
// A flag only overrides the config when it was set on the command line.
type muxFlags struct {
	direction       string
	vostfrDir       string
	vfDir           string
	outputDir       string
	workers         int
	force           bool
	defaultVF       bool
	noSpeedfix      bool
	relax           bool
	forcePreprocess bool
	exportAudio     bool
	exportAudioDir  string
	offsetsCSV      string
}

func (f *muxFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.direction, "direction", "d", "", "Mux direction: vf_to_vostfr or vostfr_to_vf")
	flags.StringVar(&f.vostfrDir, "vostfr", "", "Directory holding the VOSTFR releases")
	flags.StringVar(&f.vfDir, "vf", "", "Directory holding the VF releases")
	flags.StringVarP(&f.outputDir, "output", "o", "", "Output directory for MULTi files")
	flags.IntVarP(&f.workers, "workers", "w", 0, "Parallel episode jobs (0 = one per CPU)")
	flags.BoolVarP(&f.force, "force", "f", false, "Overwrite outputs that already exist")
	flags.BoolVar(&f.defaultVF, "default-vf", false, "Make the French track the default audio")
	flags.BoolVar(&f.noSpeedfix, "no-speedfix", false, "Disable PAL speed correction")
	flags.BoolVar(&f.relax, "relax", false, "Relax episode key extraction (accept e.g. xE07)")
	flags.BoolVar(&f.forcePreprocess, "force-preprocess", false, "Always route donor audio through the FLAC intermediate")
	flags.BoolVar(&f.exportAudio, "export-audio", false, "Also write the donor audio as a standalone FLAC")
	flags.StringVar(&f.exportAudioDir, "export-audio-dir", "", "Destination for exported donor audio")
	flags.StringVar(&f.offsetsCSV, "offsets", "", "CSV of per-episode donor audio offsets (key,offset_ms)")
}

// apply folds changed flags into the config snapshot.
func (f *muxFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	if flags.Changed("direction") {
		cfg.Mux.Direction = strings.ToLower(strings.TrimSpace(f.direction))
	}
	if flags.Changed("workers") {
		cfg.Mux.Workers = f.workers
	}
	if flags.Changed("force") {
		cfg.Mux.Force = f.force
	}
	if flags.Changed("default-vf") {
		cfg.Mux.DefaultVF = f.defaultVF
	}
	if flags.Changed("no-speedfix") {
		cfg.Mux.Speedfix = !f.noSpeedfix
	}
	if flags.Changed("relax") {
		cfg.Mux.RelaxExtract = f.relax
	}
	if flags.Changed("force-preprocess") {
		cfg.Mux.ForcePreprocess = f.forcePreprocess
	}
	if flags.Changed("export-audio") {
		cfg.Mux.ExportAudio = f.exportAudio
	}

	for flag, target := range map[string]*string{
		"vostfr":           &cfg.Paths.VOSTFRDir,
		"vf":               &cfg.Paths.VFDir,
		"output":           &cfg.Paths.OutputDir,
		"export-audio-dir": &cfg.Paths.ExportAudioDir,
		"offsets":          &cfg.Mux.OffsetsCSV,
	} {
		if !flags.Changed(flag) {
			continue
		}
		value := f.flagValue(flag)
		expanded, err := config.ExpandPath(value)
		if err != nil {
			return err
		}
		*target = expanded
	}

	return cfg.Validate()
}

func (f *muxFlags) flagValue(name string) string {
	switch name {
	case "vostfr":
		return f.vostfrDir
	case "vf":
		return f.vfDir
	case "output":
		return f.outputDir
	case "export-audio-dir":
		return f.exportAudioDir
	case "offsets":
		return f.offsetsCSV
	}
	return ""
}
