// Package deps checks for the external binaries muxage shells out to.
package deps
