package episode

import (
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// releaseTokens are dropped from derived display titles.
var releaseTokens = map[string]struct{}{
	"vostfr": {}, "vf": {}, "multi": {}, "1080p": {}, "720p": {}, "480p": {},
	"bluray": {}, "bdrip": {}, "webrip": {}, "web": {}, "dl": {}, "x264": {}, "x265": {},
	"hevc": {}, "aac": {}, "flac": {}, "opus": {}, "10bit": {}, "hi10p": {},
}

// DeriveTitle turns a release filename into a human-readable series title
// for summaries and the run history. Separator runes collapse to spaces,
// release tokens and the episode key are dropped, and the remainder is
// title-cased.
func DeriveTitle(path string) string {
	if path == "" {
		return "Unknown Series"
	}
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	cleaned := strings.Builder{}
	prevSpace := false
	for _, r := range base {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			cleaned.WriteRune(r)
			prevSpace = false
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '.':
			if !prevSpace {
				cleaned.WriteRune(' ')
				prevSpace = true
			}
		}
	}

	var kept []string
	for _, word := range strings.Fields(cleaned.String()) {
		lower := strings.ToLower(word)
		if _, drop := releaseTokens[lower]; drop {
			continue
		}
		if ValidKey(word) {
			continue
		}
		kept = append(kept, word)
	}

	title := strings.Join(kept, " ")
	if title == "" {
		return "Unknown Series"
	}
	return cases.Title(language.Und).String(title)
}
