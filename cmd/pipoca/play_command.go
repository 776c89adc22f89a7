package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pipoca/internal/player"
)

func newPlayCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "play <id>",
		Short: "Open a catalog movie in the default video player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			localID, err := parseLocalID(args[0])
			if err != nil {
				return err
			}
			store, err := ctx.ensureCatalog()
			if err != nil {
				return err
			}
			movie, ok := store.ByLocalID(localID)
			if !ok {
				return fmt.Errorf("no movie with id %d", localID)
			}
			if _, err := os.Stat(movie.FilePath); err != nil {
				return fmt.Errorf("video file for #%d is missing: %s", localID, movie.FilePath)
			}
			if err := player.Open(cmd.Context(), movie.FilePath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Playing %s\n", movie.Title)
			return nil
		},
	}
}
