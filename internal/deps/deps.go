// Package deps reports the availability of external binaries pipoca
// shells out to. ffprobe is the only hard-ish dependency, and even that is
// advisory: scans degrade to extension-only filtering without it.
package deps

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// Requirement defines an external binary pipoca relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Default returns the requirements for the given configuration.
func Default(ffprobeBinary string) []Requirement {
	return []Requirement{
		{
			Name:        "FFprobe",
			Command:     ffprobeBinary,
			Description: "Used to read video durations during scans",
			Optional:    true,
		},
		{
			Name:        "Player opener",
			Command:     openerCommand(),
			Description: "Used to launch the OS default video player",
			Optional:    true,
		},
	}
}

// openerCommand returns the platform's open-with-default-app command.
func openerCommand() string {
	switch runtime.GOOS {
	case "darwin":
		return "open"
	case "windows":
		return "rundll32"
	default:
		return "xdg-open"
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}
