// Package selection turns probed base/donor media descriptors into the
// track selection a mux plan is built from, or fails with a classified
// reason. The algorithm is symmetric over roles; the caller decides which
// file is base and which audio language each role must contribute.
package selection
