// Package episode extracts episode keys from filenames and pairs two
// directory listings of the same show into per-episode work units.
package episode
