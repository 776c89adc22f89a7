// Package logging builds the application's structured loggers on top of
// log/slog and provides shared attribute helpers so components log with
// consistent keys.
package logging
