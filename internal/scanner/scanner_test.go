package scanner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"pipoca/internal/logging"
	"pipoca/internal/textutil"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("payload"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func newTestScanner(t *testing.T, opts Options) *Scanner {
	t.Helper()
	return New(logging.NewNop(), textutil.NewNormalizer(logging.NewNop()), opts)
}

func TestScanFiltersByExtension(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "Movie.2021.1080p.mkv"))
	writeFile(t, filepath.Join(dir, "nested", "Another.Film.mp4"))
	writeFile(t, filepath.Join(dir, "notes.txt"))
	writeFile(t, filepath.Join(dir, "cover.jpg"))

	s := newTestScanner(t, Options{})
	candidates, err := s.Scan(context.Background(), dir, nil)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d: %+v", len(candidates), candidates)
	}
	if candidates[0].Title != "Movie" {
		t.Fatalf("unexpected title %q", candidates[0].Title)
	}
	if candidates[1].Title != "Another Film" {
		t.Fatalf("unexpected title %q", candidates[1].Title)
	}
	if candidates[0].RawName != "Movie.2021.1080p.mkv" {
		t.Fatalf("unexpected raw name %q", candidates[0].RawName)
	}
}

func TestScanSkipsHiddenDirectories(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "visible.mkv"))
	writeFile(t, filepath.Join(dir, ".cache", "hidden.mkv"))

	s := newTestScanner(t, Options{})
	candidates, err := s.Scan(context.Background(), dir, nil)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(candidates) != 1 || candidates[0].RawName != "visible.mkv" {
		t.Fatalf("expected only the visible file, got %+v", candidates)
	}
}

func TestScanDurationGate(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "feature.mkv"))
	writeFile(t, filepath.Join(dir, "sample.mkv"))
	writeFile(t, filepath.Join(dir, "unprobeable.mkv"))

	probe := func(ctx context.Context, path string) (time.Duration, error) {
		switch filepath.Base(path) {
		case "feature.mkv":
			return 2 * time.Hour, nil
		case "sample.mkv":
			return 3 * time.Minute, nil
		default:
			return 0, errors.New("no duration")
		}
	}

	s := newTestScanner(t, Options{MinDuration: time.Hour, Probe: probe})
	candidates, err := s.Scan(context.Background(), dir, nil)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	// The short sample is dropped; the unprobeable file is kept because
	// durations are advisory by default.
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %+v", candidates)
	}

	strict := newTestScanner(t, Options{MinDuration: time.Hour, RequireDuration: true, Probe: probe})
	candidates, err = strict.Scan(context.Background(), dir, nil)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(candidates) != 1 || candidates[0].RawName != "feature.mkv" {
		t.Fatalf("expected only the probed feature, got %+v", candidates)
	}
}

func TestScanReportsProgress(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.mkv"))
	writeFile(t, filepath.Join(dir, "b.mkv"))

	var calls []int
	total := 0
	s := newTestScanner(t, Options{})
	_, err := s.Scan(context.Background(), dir, func(done, all int, path string) {
		calls = append(calls, done)
		total = all
	})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if total != 2 || len(calls) != 2 || calls[0] != 1 || calls[1] != 2 {
		t.Fatalf("unexpected progress: calls=%v total=%d", calls, total)
	}
}

func TestScanMissingFolder(t *testing.T) {
	s := newTestScanner(t, Options{})
	if _, err := s.Scan(context.Background(), filepath.Join(t.TempDir(), "absent"), nil); err == nil {
		t.Fatal("expected error for missing folder")
	}
}

func TestScanCancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.mkv"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := newTestScanner(t, Options{})
	if _, err := s.Scan(ctx, dir, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
