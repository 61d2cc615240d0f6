package generator

import (
	"strings"
	"unicode"
)

// Schema names arrive in snake_case; the emitted declarations use
// camelCase for callables and PascalCase for enum members.

// camelCase converts to camelCase.
func camelCase(s string) string {
	if s == "" {
		return s
	}
	pascal := pascalCase(s)
	runes := []rune(pascal)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

// pascalCase converts to PascalCase.
func pascalCase(s string) string {
	words := splitWords(s)
	for i, word := range words {
		if len(word) > 0 {
			runes := []rune(word)
			runes[0] = unicode.ToUpper(runes[0])
			for j := 1; j < len(runes); j++ {
				runes[j] = unicode.ToLower(runes[j])
			}
			words[i] = string(runes)
		}
	}
	return strings.Join(words, "")
}

// splitWords splits a string into words (handles camelCase, PascalCase,
// snake_case, etc.).
func splitWords(s string) []string {
	var words []string
	var current []rune

	for i, r := range s {
		if r == '_' || r == '-' || r == ' ' {
			if len(current) > 0 {
				words = append(words, string(current))
				current = nil
			}
			continue
		}

		if unicode.IsUpper(r) && i > 0 {
			// Check if this is the start of a new word
			prev := rune(s[i-1])
			if unicode.IsLower(prev) || (i+1 < len(s) && unicode.IsLower(rune(s[i+1]))) {
				if len(current) > 0 {
					words = append(words, string(current))
					current = nil
				}
			}
		}

		current = append(current, r)
	}

	if len(current) > 0 {
		words = append(words, string(current))
	}

	return words
}

func joinComma(parts []string) string {
	return strings.Join(parts, ", ")
}
