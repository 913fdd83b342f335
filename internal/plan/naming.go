package plan

import (
	"path/filepath"
	"regexp"
)

// Role labels are matched as whole words, case-insensitively; VOSTFR first
// so its VF-free remainder is never touched by the second pattern.
var (
	vostfrLabel = regexp.MustCompile(`(?i)\bVOSTFR\b`)
	vfLabel     = regexp.MustCompile(`(?i)\bVF\b`)
)

// OutputName derives the MULTi output filename from the base filename:
// the VOSTFR or VF role label becomes MULTi. A name carrying neither label
// keeps its stem and gains a .MULTi suffix before the extension. The
// output container is always Matroska.
func OutputName(baseName string) string {
	ext := filepath.Ext(baseName)
	stem := baseName[:len(baseName)-len(ext)]

	replaced := vostfrLabel.ReplaceAllString(stem, "MULTi")
	replaced = vfLabel.ReplaceAllString(replaced, "MULTi")
	if replaced == stem {
		replaced = stem + ".MULTi"
	}
	return replaced + ".mkv"
}
