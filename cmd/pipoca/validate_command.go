package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Remove catalog records whose video files are gone",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.ensureCatalog()
			if err != nil {
				return err
			}

			// Opening the catalog already ran the prune; report its outcome.
			report := store.OpenReport()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d valid records\n", report.ValidCount)
			if report.RemovedCount == 0 {
				return nil
			}
			fmt.Fprintf(out, "Removed %d stale records:\n", report.RemovedCount)
			for _, title := range report.RemovedTitles {
				fmt.Fprintf(out, "  - %s\n", title)
			}

			if notifier := ctx.notifier(); notifier != nil {
				if err := notifier.NotifyPruned(cmd.Context(), report.RemovedCount, report.RemovedTitles); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "prune notification failed: %v\n", err)
				}
			}
			return nil
		},
	}
}
