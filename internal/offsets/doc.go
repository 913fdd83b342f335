// Package offsets loads the per-episode audio offset table. A malformed
// table is more dangerous than a missing one, so any bad row fails the
// whole load before a run starts.
package offsets
