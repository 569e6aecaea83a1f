package textutil

import (
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DeriveAlbumTitle builds a human-readable album title from a source file
// path. Separator characters collapse into single spaces and the result is
// title-cased. Returns "Unknown Album" when nothing usable remains.
func DeriveAlbumTitle(sourcePath string) string {
	if sourcePath == "" {
		return "Unknown Album"
	}
	base := filepath.Base(sourcePath)
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
	title := strings.TrimSpace(cleaned.String())
	if title == "" {
		return "Unknown Album"
	}
	return cases.Title(language.Und).String(title)
}
