// Package plan composes pairing, selection, speedfix and offset inputs into
// immutable per-episode job plans. Planning never touches the filesystem
// and never invokes external tools, so a plan can be printed as-is for
// dry inspection.
package plan
