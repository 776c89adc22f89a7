package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"pipoca/internal/config"
	"pipoca/internal/enrich"
	"pipoca/internal/preflight"
	"pipoca/internal/scanner"
	"pipoca/internal/textutil"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var folderFlag string
	var dryRun bool
	var skipPreflight bool

	cmd := &cobra.Command{
		Use:   "scan [folder]",
		Short: "Scan a folder and enrich new video files",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			folder := strings.TrimSpace(folderFlag)
			if len(args) == 1 {
				folder = args[0]
			}
			if folder == "" {
				folder = cfg.Paths.LibraryDir
			}
			folder, err = config.ExpandPath(folder)
			if err != nil {
				return err
			}

			if !skipPreflight && !dryRun {
				results := preflight.RunAll(cmd.Context(), cfg)
				if !preflight.AllPassed(results) {
					printPreflight(out, results)
					return fmt.Errorf("preflight checks failed (use --skip-preflight to force)")
				}
			}

			candidates, err := scanFolder(ctx, cmd, folder)
			if err != nil {
				return err
			}
			if len(candidates) == 0 {
				fmt.Fprintln(out, "No video files found")
				return nil
			}

			if dryRun {
				rows := make([][]string, 0, len(candidates))
				for _, candidate := range candidates {
					rows = append(rows, []string{candidate.RawName, candidate.Title})
				}
				fmt.Fprintln(out, renderTable([]string{"File", "Search title"}, rows, nil))
				return nil
			}

			return enrichCandidates(ctx, cmd, folder, candidates)
		},
	}

	cmd.Flags().StringVarP(&folderFlag, "folder", "f", "", "Folder to scan (defaults to the configured library folder)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "List candidates without contacting the metadata provider")
	cmd.Flags().BoolVar(&skipPreflight, "skip-preflight", false, "Skip readiness checks before the batch")
	return cmd
}

// scanFolder discovers candidates with progress feedback on stderr.
func scanFolder(ctx *commandContext, cmd *cobra.Command, folder string) ([]scanner.Candidate, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return nil, err
	}

	normalizer := textutil.NewNormalizer(logger, cfg.Scan.ExtraNoiseTokens...)
	s := scanner.New(logger, normalizer, scanner.Options{
		MinDuration:     time.Duration(cfg.Scan.MinDurationMinutes) * time.Minute,
		RequireDuration: cfg.Scan.RequireDuration,
		Probe:           scanner.FFprobe(cfg.FFprobeBinary()),
	})

	errOut := cmd.ErrOrStderr()
	return s.Scan(cmd.Context(), folder, func(done, total int, path string) {
		fmt.Fprintf(errOut, "\rScanning %d/%d", done, total)
		if done == total {
			fmt.Fprintln(errOut)
		}
	})
}

// enrichCandidates runs the batch pipeline under the workflow lock and
// prints a per-item log plus the final summary.
func enrichCandidates(ctx *commandContext, cmd *cobra.Command, folder string, candidates []scanner.Candidate) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}

	release, err := acquireWorkflowLock(cfg.LockFilePath())
	if err != nil {
		return err
	}
	defer release()

	enricher, cleanup, err := ctx.newEnricher(ctx.notifier(), cfg.Scan.SkipDuplicates)
	if err != nil {
		return err
	}
	defer cleanup()

	out := cmd.OutOrStdout()
	summary, err := enricher.EnrichBatch(cmd.Context(), folder, candidates, func(done, total int, result enrich.ItemResult) {
		label := result.Outcome
		if result.Detail != "" {
			label = fmt.Sprintf("%s: %s", result.Outcome, result.Detail)
		}
		title := result.Candidate.RawName
		if result.Outcome == enrich.OutcomeAdded {
			title = result.Movie.Title
		}
		fmt.Fprintf(out, "[%d/%d] %-60s %s\n", done, total, truncate(title, 60), label)
	})
	if summary != nil {
		fmt.Fprintf(out, "\nBatch complete in %s: %d added, %d skipped, %d failed\n",
			summary.Duration.Round(time.Second), summary.Added, summary.Skipped, summary.Failed)
	}
	return err
}

func printPreflight(out io.Writer, results []preflight.Result) {
	rows := make([][]string, 0, len(results))
	for _, result := range results {
		status := "FAIL"
		if result.Passed {
			status = "ok"
		}
		rows = append(rows, []string{result.Name, status, result.Detail})
	}
	fmt.Fprintln(out, renderTable([]string{"Check", "Status", "Detail"}, rows, nil))
}
