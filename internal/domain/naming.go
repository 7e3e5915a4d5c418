package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Camelize turns an identifier into a parameter name: whitespace is removed,
// the first letter is lowercased and the rest is kept. Purely numeric tokens
// yield "".
func Camelize(identifier string) string {
	token := strings.Join(strings.Fields(identifier), "")
	if token == "" || isNumeric(token) {
		return ""
	}

	first, size := utf8.DecodeRuneInString(token)

	return string(unicode.ToLower(first)) + token[size:]
}

// Capitalize uppercases the first character and keeps the rest.
func Capitalize(identifier string) string {
	if identifier == "" {
		return ""
	}

	first, size := utf8.DecodeRuneInString(identifier)

	return string(unicode.ToUpper(first)) + identifier[size:]
}

func isNumeric(token string) bool {
	for _, r := range token {
		if !unicode.IsDigit(r) {
			return false
		}
	}

	return true
}
