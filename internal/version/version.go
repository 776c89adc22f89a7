// Package version carries the application version and the persisted
// version file used to detect upgrades between runs.
package version

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"pipoca/internal/fileutil"
)

// Current is the application version.
const Current = "0.1.0"

type fileDocument struct {
	Version string `json:"version"`
}

// ReadFile returns the version recorded at path, or "" when the file is
// missing or unreadable.
func ReadFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	var doc fileDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return ""
	}
	return doc.Version
}

// WriteFile records the current version at path.
func WriteFile(path string) error {
	data, err := json.Marshal(fileDocument{Version: Current})
	if err != nil {
		return fmt.Errorf("marshal version: %w", err)
	}
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("persist version: %w", err)
	}
	return nil
}

// Sync updates the version file and reports the previously recorded
// version. A missing file is not an error; it reads as "".
func Sync(path string) (previous string, err error) {
	previous = ReadFile(path)
	if _, statErr := os.Stat(path); statErr != nil && !errors.Is(statErr, fs.ErrNotExist) {
		return previous, statErr
	}
	return previous, WriteFile(path)
}
