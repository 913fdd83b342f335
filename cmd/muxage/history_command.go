package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"muxage/internal/report"
)

func newHistoryCommand(cmdCtx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withHistoryStore(cmdCtx, func(store *report.Store) error {
				runs, err := store.RecentRuns(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if len(runs) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No recorded runs.")
					return nil
				}

				rows := make([][]string, 0, len(runs))
				for _, run := range runs {
					rows = append(rows, []string{
						run.ID,
						run.StartedAt.Local().Format("2006-01-02 15:04:05"),
						run.Direction,
						strconv.Itoa(run.Planned),
						strconv.Itoa(run.Succeeded),
						strconv.Itoa(run.Failed),
						strconv.Itoa(run.Skipped),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"RUN", "STARTED", "DIRECTION", "PLANNED", "OK", "FAILED", "SKIPPED"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight},
				))
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of runs to list")

	cmd.AddCommand(newHistoryShowCommand(cmdCtx))
	return cmd
}

func newHistoryShowCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show the per-episode results of one run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withHistoryStore(cmdCtx, func(store *report.Store) error {
				results, err := store.RunResults(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if len(results) == 0 {
					return fmt.Errorf("no results recorded for run %s", args[0])
				}

				rows := make([][]string, 0, len(results))
				for _, result := range results {
					offset := "-"
					if result.OffsetMs != 0 {
						offset = strconv.Itoa(result.OffsetMs) + " ms"
					}
					speedfix := "-"
					if result.Speedfix {
						speedfix = "yes"
					}
					elapsed := "-"
					if result.DurationMs > 0 {
						elapsed = (time.Duration(result.DurationMs) * time.Millisecond).String()
					}
					rows = append(rows, []string{
						result.EpisodeKey, result.Status, speedfix, offset, elapsed, result.Detail,
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"KEY", "STATUS", "SPEEDFIX", "OFFSET", "ELAPSED", "DETAIL"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
				))
				return nil
			})
		},
	}
}

func withHistoryStore(cmdCtx *commandContext, fn func(*report.Store) error) error {
	cfg, err := cmdCtx.ensureConfig()
	if err != nil {
		return err
	}
	if !cfg.History.Enabled {
		return fmt.Errorf("history is disabled in the configuration")
	}
	path, err := cfg.HistoryPath()
	if err != nil {
		return err
	}
	store, err := report.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}
