// Package history persists an audit trail of batch enrichment runs in
// SQLite: one row per run plus a row per file processed, so past scans can
// be reviewed from the CLI.
package history
