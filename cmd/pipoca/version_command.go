package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pipoca/internal/version"
)

func newVersionCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the pipoca version",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "pipoca %s\n", version.Current)

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			previous, err := version.Sync(cfg.VersionFilePath())
			if err != nil {
				return err
			}
			if previous != "" && previous != version.Current {
				fmt.Fprintf(out, "Upgraded from %s\n", previous)
			}
			return nil
		},
	}
}
