// Package player launches video files in the OS default player.
package player

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"pipoca/internal/fileutil"
)

// openCommand returns the platform command that hands a file to the
// desktop environment's default application.
func openCommand(path string) (string, []string) {
	switch runtime.GOOS {
	case "darwin":
		return "open", []string{path}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", path}
	default:
		return "xdg-open", []string{path}
	}
}

// Open launches the OS default player for the video at path. The player
// process is detached; Open returns once it has been started.
func Open(ctx context.Context, path string) error {
	if !fileutil.IsVideoFile(path) {
		return fmt.Errorf("play: %s is not a playable video file", path)
	}

	binary, args := openCommand(path)
	if _, err := exec.LookPath(binary); err != nil {
		return fmt.Errorf("play: %w", err)
	}

	cmd := exec.CommandContext(ctx, binary, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("play %s: %w", path, err)
	}
	// Detach rather than wait; reap the process in the background so it
	// does not linger as a zombie while the CLI exits.
	go func() { _ = cmd.Wait() }()
	return nil
}
