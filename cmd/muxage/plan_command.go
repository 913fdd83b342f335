package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"muxage/internal/ffmpeg"
	"muxage/internal/logging"
	"muxage/internal/runner"
)

func newPlanCommand(cmdCtx *commandContext) *cobra.Command {
	var flags muxFlags
	var showCommands bool

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show what a run would do without invoking ffmpeg",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			if err := flags.apply(cmd, cfg); err != nil {
				return err
			}

			table, err := loadOffsets(cfg)
			if err != nil {
				return err
			}
			opts, err := runnerOptions(cfg, table)
			if err != nil {
				return err
			}

			// Planning still probes files, so ffprobe must resolve; ffmpeg
			// is not needed here.
			prober := runner.NewProber(cfg.FFprobeBinary())
			batch := runner.New(prober, nil, logging.NewNop(), opts)

			rep, err := batch.Dry(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			renderSeries(out, rep.Plans)
			renderPairingIssues(out, rep.Pairs)
			renderPlans(out, rep.Plans)
			if len(rep.Results) > 0 {
				fmt.Fprintln(out, "Pairs that could not be planned:")
				renderResults(out, rep.Results)
			}

			if showCommands {
				binary := cfg.FFmpegBinary()
				for _, p := range rep.Plans {
					donorInput := p.DonorPath
					if p.PreprocessRequired {
						tempPath := p.Key + "_donor.flac"
						fmt.Fprintln(out, ffmpeg.CommandLine(binary, ffmpeg.PreprocessArgs(p, tempPath)))
						donorInput = tempPath
					}
					fmt.Fprintln(out, ffmpeg.CommandLine(binary, ffmpeg.MuxArgs(p, donorInput, p.PreprocessRequired)))
				}
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&showCommands, "commands", false, "Print the ffmpeg command lines")
	return cmd
}
