package repository

import (
	"strings"
	"unicode"
)

// SearchTokens splits text into unique lower-case words of letters and digits,
// in first-seen order.
func SearchTokens(text string) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	seen := make(map[string]struct{}, len(words))
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		tokens = append(tokens, w)
	}
	return tokens
}

// SearchTerms builds the space-padded word set stored alongside a blog, so
// that a whole-word match is a LIKE on " word ".
func SearchTerms(title, content string) string {
	tokens := SearchTokens(title + " " + content)
	if len(tokens) == 0 {
		return ""
	}
	return " " + strings.Join(tokens, " ") + " "
}

func likeWord(token string) string {
	return "% " + token + " %"
}

// unmatchableSearch reports a search that was given but holds no words, which
// matches no blog.
func unmatchableSearch(search string) bool {
	return strings.TrimSpace(search) != "" && len(SearchTokens(search)) == 0
}
