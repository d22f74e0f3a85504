package util

import (
	"regexp"
	"strings"
)

var (
	// htmlTagPattern matches HTML tags like <span>, </span>, <div>, </div>, etc.
	htmlTagPattern = regexp.MustCompile(`<[^>]*>`)
	// multiSpacePattern matches multiple consecutive whitespace characters
	multiSpacePattern = regexp.MustCompile(`\s+`)
)

// CleanAddress normalizes a free-form address typed or pasted by a user
// before it is sent to the geocoder.
func CleanAddress(s string) string {
	if s == "" {
		return ""
	}

	// Pasted listings sometimes carry markup.
	s = strings.ReplaceAll(s, `<\/`, `</`)
	s = htmlTagPattern.ReplaceAllString(s, "")

	s = strings.ReplaceAll(s, "&amp;", "&")
	s = strings.ReplaceAll(s, "&nbsp;", " ")
	s = strings.ReplaceAll(s, "&#39;", "'")

	s = multiSpacePattern.ReplaceAllString(s, " ")
	s = strings.Trim(s, " ,")
	return s
}

// NeedsCleanup reports whether CleanAddress would change s.
func NeedsCleanup(s string) bool {
	return CleanAddress(s) != s
}
