// Package notifications delivers batch enrichment events via ntfy.
//
// The default implementation publishes to the topic configured in
// config.toml and gracefully degrades to a no-op when notifications are
// disabled. Per-event toggles let users opt into batch summaries, prune
// reports, and error alerts independently.
package notifications
