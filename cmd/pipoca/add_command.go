package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"pipoca/internal/config"
	"pipoca/internal/enrich"
	"pipoca/internal/fileutil"
	"pipoca/internal/scanner"
	"pipoca/internal/textutil"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	var titleFlag string

	cmd := &cobra.Command{
		Use:   "add <video-file>",
		Short: "Identify and catalog a single video file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			path, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			if !fileutil.IsVideoFile(path) {
				return fmt.Errorf("%s is not an existing video file", path)
			}

			rawName := filepath.Base(path)
			title := strings.TrimSpace(titleFlag)
			if title == "" {
				normalizer := textutil.NewNormalizer(logger, cfg.Scan.ExtraNoiseTokens...)
				title = normalizer.Normalize(rawName)
			}
			if title == "" {
				return fmt.Errorf("could not derive a search title from %q (use --title)", rawName)
			}

			// Duplicate-skipping is off: re-adding a cataloged file
			// refreshes its record instead of skipping it.
			enricher, cleanup, err := ctx.newEnricher(nil, false)
			if err != nil {
				return err
			}
			defer cleanup()

			candidate := scanner.Candidate{Path: path, RawName: rawName, Title: title}
			summary, err := enricher.EnrichBatch(cmd.Context(), filepath.Dir(path), []scanner.Candidate{candidate}, nil)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			result := summary.Results[0]
			if result.Outcome != enrich.OutcomeAdded {
				return fmt.Errorf("could not catalog %s (%s)", rawName, result.Detail)
			}
			year := result.Movie.ReleaseYear()
			if year != "" {
				year = " (" + year + ")"
			}
			fmt.Fprintf(out, "Added #%d %s%s\n", result.Movie.LocalID, result.Movie.Title, year)
			return nil
		},
	}

	cmd.Flags().StringVarP(&titleFlag, "title", "t", "", "Search title override (skips file name cleaning)")
	return cmd
}
