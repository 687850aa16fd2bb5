package security

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
)

const (
	// MaxSearchKeywordLength defines the maximum allowed length for search keywords
	MaxSearchKeywordLength = 100
)

// dangerousPatterns contains regex patterns that could indicate injection attempts
var dangerousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(union|select|insert|update|delete|drop|create|alter|exec|execute)\b`),
	regexp.MustCompile(`(?i)\b(or|and)\b\s+\d+\s*=\s*\d+`),
	regexp.MustCompile(`(--|#|/\*|\*/)`),
	regexp.MustCompile(`(?i)\b(waitfor|benchmark|sleep)\b`),
	regexp.MustCompile(`(?i)(<script|</script|javascript:|onload=|onerror=)`),
}

// ValidateSearchKeyword validates a list-endpoint search keyword before it is
// used in a LIKE clause. Returns the trimmed keyword or an error.
func ValidateSearchKeyword(keyword string) (string, error) {
	if keyword == "" {
		return "", nil
	}

	if len(keyword) > MaxSearchKeywordLength {
		return "", errors.New("search keyword too long")
	}

	keyword = strings.TrimSpace(keyword)

	for _, pattern := range dangerousPatterns {
		if pattern.MatchString(keyword) {
			return "", errors.New("search keyword contains invalid characters")
		}
	}

	for _, char := range keyword {
		if !isValidSearchChar(char) {
			return "", errors.New("search keyword contains invalid characters")
		}
	}

	return keyword, nil
}

// isValidSearchChar checks if a character is safe for search keywords
func isValidSearchChar(char rune) bool {
	return unicode.IsLetter(char) || unicode.IsNumber(char) ||
		char == ' ' || char == '-' || char == '_' || char == '.' ||
		char == '@' || char == '+'
}

// EscapeLike escapes LIKE wildcards so a keyword matches literally.
func EscapeLike(keyword string) string {
	keyword = strings.ReplaceAll(keyword, `\`, `\\`)
	keyword = strings.ReplaceAll(keyword, "%", `\%`)
	keyword = strings.ReplaceAll(keyword, "_", `\_`)
	return keyword
}
