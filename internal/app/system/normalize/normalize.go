// Package normalize provides canonical forms for user-entered identity
// fields so lookups and uniqueness checks behave predictably.
package normalize

import "strings"

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name collapses surrounding whitespace in a display name.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Status lowercases a status tag, defaulting empty to "active".
func Status(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "active"
	}
	return s
}

// Role lowercases a role tag, defaulting empty to "user".
func Role(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "user"
	}
	return s
}
