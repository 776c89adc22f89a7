package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestHasVideoExtension(t *testing.T) {
	cases := []struct {
		path string
		want bool
	}{
		{"movie.mkv", true},
		{"movie.MP4", true},
		{"clip.webm", true},
		{"notes.txt", false},
		{"archive.zip", false},
		{"noext", false},
	}
	for _, tc := range cases {
		if got := HasVideoExtension(tc.path); got != tc.want {
			t.Errorf("HasVideoExtension(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func TestIsVideoFile(t *testing.T) {
	dir := t.TempDir()

	videoPath := filepath.Join(dir, "movie.mkv")
	if err := os.WriteFile(videoPath, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	textPath := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(textPath, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if !IsVideoFile(videoPath) {
		t.Error("expected existing .mkv file to be a video file")
	}
	if IsVideoFile(textPath) {
		t.Error("expected .txt file to be rejected")
	}
	if IsVideoFile(filepath.Join(dir, "missing.mkv")) {
		t.Error("expected missing file to be rejected")
	}
	if IsVideoFile(dir) {
		t.Error("expected directory to be rejected")
	}
}

func TestWriteFileAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "catalog.json")
	if err := WriteFileAtomic(path, []byte(`{"movies":[]}`), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != `{"movies":[]}` {
		t.Fatalf("unexpected contents: %s", data)
	}

	// No temp file should be left behind.
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatal("temp file left behind")
	}

	// Overwrite keeps the newest contents.
	if err := WriteFileAtomic(path, []byte("second"), 0o644); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != "second" {
		t.Fatalf("expected overwrite, got %s", data)
	}
}

func TestRemoveIfExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "poster.jpg")
	if err := os.WriteFile(path, []byte("img"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := RemoveIfExists(path); err != nil {
		t.Fatalf("remove existing: %v", err)
	}
	if err := RemoveIfExists(path); err != nil {
		t.Fatalf("remove missing should be nil, got %v", err)
	}
	if err := RemoveIfExists(""); err != nil {
		t.Fatalf("remove empty path should be nil, got %v", err)
	}
}
