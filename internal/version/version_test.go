package version

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadFileMissing(t *testing.T) {
	if got := ReadFile(filepath.Join(t.TempDir(), "version.json")); got != "" {
		t.Fatalf("expected empty version, got %q", got)
	}
}

func TestWriteAndReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "version.json")
	if err := WriteFile(path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if got := ReadFile(path); got != Current {
		t.Fatalf("expected %q, got %q", Current, got)
	}
}

func TestReadFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "version.json")
	if err := os.WriteFile(path, []byte("{oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := ReadFile(path); got != "" {
		t.Fatalf("expected empty version for malformed file, got %q", got)
	}
}

func TestSyncReportsPrevious(t *testing.T) {
	path := filepath.Join(t.TempDir(), "version.json")
	if err := os.WriteFile(path, []byte(`{"version":"0.0.9"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	previous, err := Sync(path)
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if previous != "0.0.9" {
		t.Fatalf("expected previous 0.0.9, got %q", previous)
	}
	if got := ReadFile(path); got != Current {
		t.Fatalf("expected %q after sync, got %q", Current, got)
	}
}
