package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cataloged movies",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.ensureCatalog()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			movies := store.All()
			if len(movies) == 0 {
				fmt.Fprintln(out, "Catalog is empty")
				return nil
			}

			rows := make([][]string, 0, len(movies))
			for _, movie := range movies {
				rating := ""
				if movie.VoteAverage > 0 {
					rating = strconv.FormatFloat(movie.VoteAverage, 'f', 1, 64)
				}
				rows = append(rows, []string{
					strconv.FormatInt(movie.LocalID, 10),
					truncate(movie.Title, 48),
					movie.ReleaseYear(),
					rating,
					truncate(strings.Join(movie.Genres, ", "), 32),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "Title", "Year", "Rating", "Genres"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft},
			))
			fmt.Fprintf(out, "%d movies\n", len(movies))
			return nil
		},
	}
}
