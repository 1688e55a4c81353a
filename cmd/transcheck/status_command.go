package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var resetStuck bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show catalog state for every source",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openCatalog()
			if err != nil {
				return err
			}
			defer store.Close()

			out := cmd.OutOrStdout()

			if resetStuck {
				reset, err := store.ResetStuckProcessing(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Reset %d stuck sources\n", reset)
			}

			records, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(out, "Catalog is empty; run `transcheck analyze` first")
				return nil
			}

			rows := make([][]string, 0, len(records))
			for _, record := range records {
				rows = append(rows, []string{
					record.SourceID,
					string(record.Status),
					strconv.Itoa(record.SegmentCount),
					strconv.Itoa(record.UnusualCount),
					record.LastRunID,
					record.UpdatedAt.Format("2006-01-02 15:04"),
					truncate(record.ErrorMessage, 48),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"SOURCE", "STATUS", "SEGMENTS", "UNUSUAL", "RUN", "UPDATED", "ERROR"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft, alignLeft, alignLeft},
			))

			health, err := store.Health(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%d total: %d pending, %d processing, %d completed, %d failed\n",
				health.Total, health.Pending, health.Processing, health.Completed, health.Failed)
			return nil
		},
	}

	cmd.Flags().BoolVar(&resetStuck, "reset-stuck", false, "Roll sources stuck in a processing state back to their last settled state")
	return cmd
}
