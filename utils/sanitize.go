package utils

import "github.com/microcosm-cc/bluemonday"

// The board renders user text as plain content, so markup is stripped
// entirely rather than allowlisted.
var sanitizer = bluemonday.StrictPolicy()

// Sanitize cleans user-submitted content to prevent XSS attacks.
func Sanitize(input string) string {
	return sanitizer.Sanitize(input)
}
