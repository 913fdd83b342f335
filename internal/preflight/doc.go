// Package preflight runs the environment checks a batch needs to pass
// before any job starts: source directories exist and are readable, the
// output directory is writable, external binaries resolve, and the offsets
// table parses.
package preflight
