package main

import (
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"pipoca/internal/config"
	"pipoca/internal/logging"
	"pipoca/internal/watch"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var folderFlag string
	var debounceSeconds int

	cmd := &cobra.Command{
		Use:   "watch [folder]",
		Short: "Watch a folder and enrich video files as they arrive",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			folder := strings.TrimSpace(folderFlag)
			if len(args) == 1 {
				folder = args[0]
			}
			if folder == "" {
				folder = cfg.Paths.LibraryDir
			}
			if folder == "" {
				return errors.New("no folder given and no library folder configured")
			}
			folder, err = config.ExpandPath(folder)
			if err != nil {
				return err
			}

			watcher, err := watch.New(logger, folder, watch.Options{
				Debounce: time.Duration(debounceSeconds) * time.Second,
			})
			if err != nil {
				return err
			}
			defer watcher.Close()

			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			cmd.SetContext(signalCtx)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Watching %s (Ctrl-C to stop)\n", folder)

			// Catch up on anything already sitting in the folder first.
			if err := runBatch(ctx, cmd, folder); err != nil {
				return err
			}

			go func() { _ = watcher.Run(signalCtx) }()

			for {
				select {
				case <-signalCtx.Done():
					fmt.Fprintln(out, "\nStopped watching")
					return nil
				case <-watcher.Triggers():
					if err := runBatch(ctx, cmd, folder); err != nil {
						if signalCtx.Err() != nil {
							continue
						}
						// Keep watching across transient batch failures.
						fmt.Fprintf(cmd.ErrOrStderr(), "batch failed: %v\n", err)
						logger.Error("watch batch failed", logging.Error(err))
					}
				}
			}
		},
	}

	cmd.Flags().StringVarP(&folderFlag, "folder", "f", "", "Folder to watch (defaults to the configured library folder)")
	cmd.Flags().IntVar(&debounceSeconds, "debounce", 0, "Seconds the folder must stay quiet before a batch starts")
	return cmd
}

func runBatch(ctx *commandContext, cmd *cobra.Command, folder string) error {
	candidates, err := scanFolder(ctx, cmd, folder)
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		return nil
	}
	return enrichCandidates(ctx, cmd, folder, candidates)
}
