package domain

import "strings"

// NormalizeText prepares a spelling for storage and lookup: surrounding
// whitespace is trimmed, letters are lowercased and inner whitespace runs
// collapse to a single space. Hyphens, apostrophes and diacritics are kept.
func NormalizeText(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(strings.Join(fields, " "))
}
