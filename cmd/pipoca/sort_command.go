package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pipoca/internal/catalog"
)

func newSortCommand(ctx *commandContext) *cobra.Command {
	keys := []string{catalog.SortByTitle, catalog.SortByDateAdded, catalog.SortByVoteAverage, catalog.SortByReleaseDate}

	return &cobra.Command{
		Use:       "sort <key>",
		Short:     "Reorder the catalog and persist the new order",
		Long:      "Reorder the catalog by " + strings.Join(keys, ", ") + " and persist the result as the new insertion order.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: keys,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.ensureCatalog()
			if err != nil {
				return err
			}
			key := strings.ToLower(strings.TrimSpace(args[0]))
			if err := store.Sort(key); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Catalog sorted by %s\n", key)
			return nil
		},
	}
}
