package episode

import (
	"regexp"
	"strings"
)

// strictKeyPattern matches a standalone EXX/EXXX token. relaxedKeyPattern
// drops the leading word boundary so season-prefixed tokens like S01E07
// still match; it only applies when relaxed extraction is requested.
var (
	strictKeyPattern  = regexp.MustCompile(`\b[Ee](\d{2,3})\b`)
	relaxedKeyPattern = regexp.MustCompile(`(?i)E(\d{2,3})\b`)
	keyShapePattern   = regexp.MustCompile(`^[Ee]\d{2,3}$`)
)

// ExtractKey parses the episode key out of a filename. The strict pattern is
// tried first; the relaxed pattern only when enabled. The leftmost match
// wins when a name carries several tokens. Absence of a match is a normal
// outcome, not an error.
func ExtractKey(name string, relaxed bool) (string, bool) {
	if m := strictKeyPattern.FindStringSubmatch(name); m != nil {
		return "E" + m[1], true
	}
	if relaxed {
		if m := relaxedKeyPattern.FindStringSubmatch(name); m != nil {
			return "E" + m[1], true
		}
	}
	return "", false
}

// ValidKey reports whether value is shaped like an episode key (E07, e123).
// Used by the offsets table loader to reject malformed rows.
func ValidKey(value string) bool {
	return keyShapePattern.MatchString(strings.TrimSpace(value))
}

// NormalizeKey uppercases the E prefix of an already-validated key.
func NormalizeKey(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	return "E" + value[1:]
}

// mediaExtensions lists the container and raw-audio extensions considered
// for pairing. Donor sides are allowed to be audio-only files.
var mediaExtensions = map[string]struct{}{
	".mkv": {}, ".mp4": {}, ".m4v": {}, ".mov": {}, ".avi": {}, ".mpg": {}, ".ts": {},
	".mka": {}, ".flac": {}, ".aac": {}, ".ac3": {}, ".dts": {}, ".opus": {}, ".mp3": {}, ".wav": {}, ".m4a": {},
}

// IsMediaFile reports whether the filename carries a recognized media extension.
func IsMediaFile(name string) bool {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return false
	}
	_, ok := mediaExtensions[strings.ToLower(name[idx:])]
	return ok
}
