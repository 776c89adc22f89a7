package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"pipoca/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show recent batch runs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openHistory()
			if err != nil {
				return err
			}
			defer store.Close()

			if len(args) == 1 {
				return printRunItems(cmd, store, args[0])
			}
			return printRecentRuns(cmd, store, limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show")
	return cmd
}

func printRecentRuns(cmd *cobra.Command, store *history.Store, limit int) error {
	runs, err := store.RecentRuns(cmd.Context(), limit)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No batch runs recorded")
		return nil
	}

	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		status := "running"
		if run.Finished() {
			status = run.FinishedAt.Sub(run.StartedAt).Round(time.Second).String()
		}
		rows = append(rows, []string{
			run.ID[:8],
			run.StartedAt.Local().Format("2006-01-02 15:04"),
			truncate(run.Folder, 36),
			strconv.Itoa(run.Discovered),
			strconv.Itoa(run.Added),
			strconv.Itoa(run.Skipped),
			strconv.Itoa(run.Failed),
			status,
		})
	}
	headers := []string{"Run", "Started", "Folder", "Files", "Added", "Skipped", "Failed", "Duration"}
	aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignLeft}
	fmt.Fprintln(out, renderTable(headers, rows, aligns))
	fmt.Fprintln(out, "Use 'pipoca history <run-id>' for per-file outcomes")
	return nil
}

func printRunItems(cmd *cobra.Command, store *history.Store, prefix string) error {
	run, err := findRun(cmd, store, prefix)
	if err != nil {
		return err
	}
	items, err := store.RunItems(cmd.Context(), run.ID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run %s in %s (%d files)\n", run.ID[:8], run.Folder, run.Discovered)
	if len(items) == 0 {
		fmt.Fprintln(out, "No per-file outcomes recorded")
		return nil
	}

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		detail := item.Detail
		if item.Outcome == history.OutcomeAdded && item.RemoteID != 0 {
			detail = fmt.Sprintf("tmdb:%d", item.RemoteID)
		}
		rows = append(rows, []string{truncate(item.Title, 44), item.Outcome, truncate(detail, 40)})
	}
	fmt.Fprintln(out, renderTable([]string{"Title", "Outcome", "Detail"}, rows, nil))
	return nil
}

// findRun resolves a full or abbreviated run id.
func findRun(cmd *cobra.Command, store *history.Store, prefix string) (history.Run, error) {
	runs, err := store.RecentRuns(cmd.Context(), 500)
	if err != nil {
		return history.Run{}, err
	}
	var match *history.Run
	for i := range runs {
		if runs[i].ID == prefix {
			return runs[i], nil
		}
		if len(prefix) >= 4 && len(runs[i].ID) >= len(prefix) && runs[i].ID[:len(prefix)] == prefix {
			if match != nil {
				return history.Run{}, fmt.Errorf("run id %q is ambiguous", prefix)
			}
			match = &runs[i]
		}
	}
	if match == nil {
		return history.Run{}, fmt.Errorf("no run matching %q", prefix)
	}
	return *match, nil
}
