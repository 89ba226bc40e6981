package extract

import (
	"regexp"
	"strings"
)

// find returns the trimmed first capture group of the first match, or "".
func find(re *regexp.Regexp, text string) string {
	return findGroup(re, text, 1)
}

// findGroup returns the trimmed n-th capture group of the first match, or "".
// Group 0 is the whole match.
func findGroup(re *regexp.Regexp, text string, n int) string {
	m := re.FindStringSubmatch(text)
	if m == nil || n >= len(m) {
		return ""
	}
	return strings.TrimSpace(m[n])
}

// firstNonEmpty returns the first non-empty candidate. It encodes the shared
// resolution precedence: positional signal, then key/value index, then text
// pattern.
func firstNonEmpty(candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return ""
}

// dropEmpty removes keys whose value is empty. Mapping sections carry only
// found fields; absence means "not found".
func dropEmpty(m map[string]string) map[string]string {
	for k, v := range m {
		if v == "" {
			delete(m, k)
		}
	}
	return m
}
