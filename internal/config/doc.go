// Package config loads, normalizes, and validates muxage configuration.
//
// Configuration comes from a TOML file resolved at ~/.config/muxage/config.toml
// (or ./muxage.toml for project-local use); command-line flags override
// individual values per invocation. Once a run starts the merged snapshot
// is read-only.
package config
