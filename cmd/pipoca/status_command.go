package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pipoca/internal/deps"
	"pipoca/internal/preflight"
	"pipoca/internal/version"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show catalog, dependency, and readiness status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := ctx.ensureCatalog()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Pipoca %s\n", version.Current)
			fmt.Fprintf(out, "Catalog: %s (%d movies)\n\n", store.Path(), store.Count())

			results := preflight.RunAll(cmd.Context(), cfg)
			printPreflight(out, results)

			statuses := deps.CheckBinaries(deps.Default(cfg.FFprobeBinary()))
			rows := make([][]string, 0, len(statuses))
			for _, status := range statuses {
				state := "missing"
				if status.Available {
					state = "ok"
				}
				detail := status.Detail
				if detail == "" {
					detail = status.Description
				}
				rows = append(rows, []string{
					status.Name,
					status.Command,
					state,
					yesNo(status.Optional),
					detail,
				})
			}
			fmt.Fprintln(out, renderTable([]string{"Dependency", "Command", "Status", "Optional", "Detail"}, rows, nil))

			if !preflight.AllPassed(results) {
				return fmt.Errorf("one or more readiness checks failed")
			}
			return nil
		},
	}
}
