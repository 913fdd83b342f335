// Command muxage batch-muxes paired VOSTFR and VF episode releases into
// MULTi MKV files.
package main
