// Package config loads, validates, and normalizes Pipoca's TOML
// configuration. Defaults live in defaults.go; path expansion and
// environment fallbacks in normalize.go.
package config
