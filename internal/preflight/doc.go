// Package preflight provides readiness checks for the folders and the
// metadata provider pipoca depends on.
//
// The scan command runs RunAll before a batch so a bad API key or an
// unwritable assets folder surfaces immediately instead of failing every
// item; the status command shows the same checks individually.
package preflight
