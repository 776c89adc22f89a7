package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofrs/flock"
)

// acquireWorkflowLock takes the batch workflow lock so only one scan or
// watch runs at a time. The returned release function must be called on
// exit.
func acquireWorkflowLock(lockPath string) (release func(), err error) {
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("another pipoca batch is already running (lock: %s)", lockPath)
	}
	return func() { _ = lock.Unlock() }, nil
}

func parseLocalID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid catalog id %q", arg)
	}
	return id, nil
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

func truncate(value string, limit int) string {
	runes := []rune(value)
	if limit <= 3 || len(runes) <= limit {
		return value
	}
	return string(runes[:limit-3]) + "..."
}
