package preflight

import (
	"context"

	"pipoca/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	if cfg.Paths.LibraryDir != "" {
		results = append(results, CheckDirectoryAccess("Library folder", cfg.Paths.LibraryDir))
	}
	results = append(results, CheckDirectoryAccess("Assets folder", cfg.Paths.AssetsDir))
	results = append(results, CheckDirectoryAccess("State folder", cfg.Paths.StateDir))
	results = append(results, CheckDiskSpace("Assets disk space", cfg.Paths.AssetsDir, minFreeBytes))
	results = append(results, CheckTMDB(ctx, cfg.TMDB.BaseURL, cfg.TMDB.APIKey))

	return results
}

// AllPassed reports whether every check in results succeeded.
func AllPassed(results []Result) bool {
	for _, result := range results {
		if !result.Passed {
			return false
		}
	}
	return true
}
