package productform

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	slugInvalid    = regexp.MustCompile(`[^a-z0-9\s\p{Z}\x{FEFF}-]`)
	slugWhitespace = regexp.MustCompile(`[\s\p{Z}\x{FEFF}]+`)
	slugHyphens    = regexp.MustCompile(`-+`)
)

// Slugify derives the URL slug for a product name.
func Slugify(name string) string {
	s := strings.TrimFunc(strings.ToLower(name), isSlugSpace)
	s = strings.ReplaceAll(s, "&", "and")
	s = slugInvalid.ReplaceAllString(s, "")
	s = slugWhitespace.ReplaceAllString(s, "-")
	return slugHyphens.ReplaceAllString(s, "-")
}

func isSlugSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}
