package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	var all bool
	var force bool

	cmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Remove a movie from the catalog (the video file is untouched)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.ensureCatalog()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if all {
				if len(args) != 0 {
					return fmt.Errorf("cannot combine --all with an id")
				}
				count := store.Count()
				if count == 0 {
					fmt.Fprintln(out, "Catalog is already empty")
					return nil
				}
				if !force && !confirm(cmd, fmt.Sprintf("Delete all %d catalog records?", count)) {
					fmt.Fprintln(out, "Aborted")
					return nil
				}
				if err := store.DeleteAll(); err != nil {
					return err
				}
				fmt.Fprintf(out, "Deleted %d records\n", count)
				return nil
			}

			if len(args) != 1 {
				return fmt.Errorf("a catalog id is required (or --all)")
			}
			localID, err := parseLocalID(args[0])
			if err != nil {
				return err
			}
			movie, found := store.ByLocalID(localID)
			if !found {
				return fmt.Errorf("no catalog record with id %d", localID)
			}
			ok, err := store.Delete(localID)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no catalog record with id %d", localID)
			}
			fmt.Fprintf(out, "Deleted #%d %s\n", localID, movie.Title)
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Delete every record in the catalog")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip the confirmation prompt")
	return cmd
}

func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", prompt)
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
