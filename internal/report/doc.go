// Package report persists run history in a local SQLite database.
//
// Each batch run is recorded with its settings and counters, and every
// episode job gets a per-run result row. The `muxage history` command reads
// this store; the pipeline itself never depends on it being present.
package report
