package util

import (
	"regexp"
	"strings"
)

var htmlTagRegex = regexp.MustCompile("<[^>]*>")

func ContainsString(s []string, str string) bool {
	for _, v := range s {
		if v == str {
			return true
		}
	}

	return false
}

func FirstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}

	return ""
}

// StripTags removes markup such as the <b></b> highlighting search APIs put around matches
func StripTags(s string) string {
	return htmlTagRegex.ReplaceAllString(s, "")
}

// RemoveWhitespace drops every space, used to normalise line names before table lookups
func RemoveWhitespace(s string) string {
	return strings.Join(strings.Fields(s), "")
}
