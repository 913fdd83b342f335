package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"muxage/internal/plan"
	"muxage/internal/preflight"
)

func newCheckCommand(cmdCtx *commandContext) *cobra.Command {
	var flags muxFlags

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run the preflight checks and report each outcome",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			if err := flags.apply(cmd, cfg); err != nil {
				return err
			}

			direction, err := plan.ParseDirection(cfg.Mux.Direction)
			if err != nil {
				return err
			}
			base, donor, err := roleDirs(cfg, direction)
			if err != nil {
				return err
			}

			checks := preflight.RunAll(cfg, base, donor)
			rows := make([][]string, 0, len(checks))
			for _, check := range checks {
				status := "ok"
				if !check.Passed {
					status = "FAIL"
				}
				rows = append(rows, []string{check.Name, status, check.Detail})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"CHECK", "STATUS", "DETAIL"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft},
			))

			if failed := preflight.Failed(checks); len(failed) > 0 {
				return fmt.Errorf("%d preflight check(s) failed", len(failed))
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
