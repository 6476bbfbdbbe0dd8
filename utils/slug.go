package utils

import (
	"math/rand/v2"
	"regexp"
	"strings"
)

const (
	slugSuffixLength = 8
	base36Alphabet   = "0123456789abcdefghijklmnopqrstuvwxyz"
)

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9 ]`)
	whitespace   = regexp.MustCompile(`\s+`)
)

// GenerateSlug derives a URL-safe slug from title plus a random base-36 suffix.
// No uniqueness check is made against the store.
func GenerateSlug(title string) string {
	return generateSlug(title, rand.IntN)
}

func generateSlug(title string, intN func(n int) int) string {
	base := strings.ToLower(title)
	base = nonSlugChars.ReplaceAllString(base, "")
	base = whitespace.ReplaceAllString(base, "-")

	suffix := make([]byte, slugSuffixLength)
	for i := range suffix {
		suffix[i] = base36Alphabet[intN(len(base36Alphabet))]
	}

	return base + "-" + string(suffix)
}
