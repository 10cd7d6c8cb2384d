// Package htmlsanitize strips dangerous HTML from user-generated content
// (note bodies and comments) before it is stored.
package htmlsanitize

import (
	"html/template"

	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.UGCPolicy()

// Sanitize removes scripts, event handlers, and javascript: URLs while
// preserving common formatting tags and safe links.
func Sanitize(s string) string {
	return policy.Sanitize(s)
}

// SanitizeHTML sanitizes and returns the result as template.HTML for
// rendering contexts that need a pre-approved fragment.
func SanitizeHTML(s string) template.HTML {
	return template.HTML(policy.Sanitize(s))
}
