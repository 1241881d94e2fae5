package strcase

import (
	"strings"
	"unicode"
)

// ToLowerCamel converts a Go identifier to lowerCamelCase (initialism-safe).
//
//	DateOfBirth -> dateOfBirth
//	UserID      -> userId
//	HTTPServer  -> httpServer
func ToLowerCamel(s string) string {
	words := splitWords(s)
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))

	for i, w := range words {
		w = strings.ToLower(w)
		if i == 0 {
			b.WriteString(w)
			continue
		}

		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		b.WriteString(string(runes))
	}

	return b.String()
}

func splitWords(s string) []string {
	if s == "" {
		return nil
	}

	runes := []rune(s)
	words := make([]string, 0, 4)
	start := 0

	for i := range runes {
		r := runes[i]
		if r == '_' || r == '-' || r == ' ' {
			if i > start {
				words = append(words, string(runes[start:i]))
			}
			start = i + 1
			continue
		}

		if i == start || !unicode.IsUpper(r) {
			continue
		}

		prev := runes[i-1]
		var next rune
		if i+1 < len(runes) {
			next = runes[i+1]
		}

		// lower/digit -> upper (userID), or acronym -> word (HTTPServer)
		if unicode.IsLower(prev) || unicode.IsDigit(prev) ||
			(unicode.IsUpper(prev) && next != 0 && unicode.IsLower(next)) {
			words = append(words, string(runes[start:i]))
			start = i
		}
	}

	if start < len(runes) {
		words = append(words, string(runes[start:]))
	}

	return words
}
