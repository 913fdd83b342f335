package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"muxage/internal/config"
	"muxage/internal/offsets"
)

func newOffsetsCommand(cmdCtx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "offsets [csv-path]",
		Short: "Validate and display an episode offsets table",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				expanded, err := config.ExpandPath(args[0])
				if err != nil {
					return err
				}
				path = expanded
			} else {
				cfg, err := cmdCtx.ensureConfig()
				if err != nil {
					return err
				}
				path = cfg.Mux.OffsetsCSV
			}
			if path == "" {
				return fmt.Errorf("no offsets table: pass a path or set mux.offsets_csv")
			}

			table, err := offsets.Load(path)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, table.Len())
			for _, key := range table.Keys() {
				rows = append(rows, []string{key, strconv.Itoa(table.Lookup(key))})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"KEY", "OFFSET (MS)"},
				rows,
				[]columnAlignment{alignLeft, alignRight},
			))
			fmt.Fprintf(out, "%d entr%s in %s\n", table.Len(), pluralY(table.Len()), path)
			return nil
		},
	}
	return cmd
}

func pluralY(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
