package drafts

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// DefaultWorkspace is used when no workspace is given.
const DefaultWorkspace = "default"

// Normalize trims, lowercases and collapses internal whitespace to single spaces.
// Workspace and name lookups compare normalized values.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return whitespaceRegex.ReplaceAllString(s, " ")
}

// NormalizeWorkspace is Normalize with the empty result mapped to DefaultWorkspace.
func NormalizeWorkspace(s string) string {
	if n := Normalize(s); n != "" {
		return n
	}
	return DefaultWorkspace
}
