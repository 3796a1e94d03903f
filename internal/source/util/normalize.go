package util

import "strings"

func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

// MatchesAnyWord reports whether any of words occurs in title, ignoring case.
// No words matches everything.
func MatchesAnyWord(title string, words []string) bool {
	if len(words) == 0 {
		return true
	}
	lt := strings.ToLower(title)
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" && strings.Contains(lt, w) {
			return true
		}
	}
	return false
}
