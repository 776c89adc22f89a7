package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pipoca/internal/catalog"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show the full record for one movie",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.ensureCatalog()
			if err != nil {
				return err
			}
			localID, err := parseLocalID(args[0])
			if err != nil {
				return err
			}
			movie, ok := store.ByLocalID(localID)
			if !ok {
				return fmt.Errorf("no catalog record with id %d", localID)
			}

			out := cmd.OutOrStdout()
			rows := [][]string{
				{"ID", fmt.Sprintf("%d", movie.LocalID)},
				{"Title", movie.Title},
				{"Original title", movie.OriginalTitle},
				{"Release date", movie.ReleaseDate},
				{"Genres", strings.Join(movie.Genres, ", ")},
				{"Runtime", runtimeLabel(movie.Runtime)},
				{"Rating", ratingLabel(movie.VoteAverage)},
				{"Directors", personNames(movie.Directors)},
				{"Cast", castLabel(movie.Cast)},
				{"Trailer", trailerLabel(movie.TrailerKey)},
				{"File", movie.FilePath},
				{"Poster", movie.LocalPosterPath},
				{"Backdrop", movie.BackdropLocalPath},
				{"Added", movie.DateAdded.Format("2006-01-02 15:04")},
				{"Updated", movie.LastUpdated.Format("2006-01-02 15:04")},
			}
			fmt.Fprintln(out, renderTable([]string{"Field", "Value"}, rows, nil))
			if movie.Overview != "" {
				fmt.Fprintf(out, "\n%s\n", movie.Overview)
			}
			return nil
		},
	}
}

func runtimeLabel(minutes int) string {
	if minutes <= 0 {
		return ""
	}
	return fmt.Sprintf("%dh%02dm", minutes/60, minutes%60)
}

func ratingLabel(vote float64) string {
	if vote <= 0 {
		return ""
	}
	return fmt.Sprintf("%.1f/10", vote)
}

func trailerLabel(key string) string {
	if key == "" {
		return ""
	}
	return "https://www.youtube.com/watch?v=" + key
}

func personNames(people []catalog.Person) string {
	names := make([]string, 0, len(people))
	for _, person := range people {
		names = append(names, person.Name)
	}
	return strings.Join(names, ", ")
}

func castLabel(people []catalog.Person) string {
	entries := make([]string, 0, len(people))
	for _, person := range people {
		if person.Character != "" {
			entries = append(entries, fmt.Sprintf("%s (%s)", person.Name, person.Character))
			continue
		}
		entries = append(entries, person.Name)
	}
	return strings.Join(entries, ", ")
}
