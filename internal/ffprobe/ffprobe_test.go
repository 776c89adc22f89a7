package ffprobe

import (
	"testing"
	"time"
)

func TestResultHelpers(t *testing.T) {
	result := Result{
		Streams: []Stream{
			{CodecType: "video", Width: 1920, Height: 1080},
			{CodecType: "audio", Channels: 6},
		},
		Format: Format{
			Duration: "5400.5",
			Size:     "1000",
		},
	}
	if !result.HasVideoStream() {
		t.Fatal("expected a video stream")
	}
	if got := result.Duration(); got != time.Duration(5400.5*float64(time.Second)) {
		t.Fatalf("unexpected duration: %v", got)
	}
	width, height := result.Resolution()
	if width != 1920 || height != 1080 {
		t.Fatalf("unexpected resolution: %dx%d", width, height)
	}
	if result.SizeBytes() != 1000 {
		t.Fatalf("unexpected size: %d", result.SizeBytes())
	}
}

func TestResultHandlesInvalidNumbers(t *testing.T) {
	result := Result{
		Format: Format{
			Duration: "bad",
			Size:     "-1",
		},
	}
	if result.HasVideoStream() {
		t.Fatal("expected no video stream")
	}
	if result.Duration() != 0 {
		t.Fatalf("expected zero duration, got %v", result.Duration())
	}
	if result.SizeBytes() != 0 {
		t.Fatalf("expected size 0, got %d", result.SizeBytes())
	}
	if width, height := result.Resolution(); width != 0 || height != 0 {
		t.Fatalf("expected zero resolution, got %dx%d", width, height)
	}
}

func TestResultDurationFallsBackToStreams(t *testing.T) {
	result := Result{
		Streams: []Stream{
			{CodecType: "video", Duration: "7200"},
		},
	}
	if got := result.Duration(); got != 2*time.Hour {
		t.Fatalf("expected stream duration fallback, got %v", got)
	}
}
