// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// Scanning uses it to read container durations when filtering short clips
// out of a library folder; failures are treated as advisory by callers, so
// a missing ffprobe binary never blocks a scan.
package ffprobe
