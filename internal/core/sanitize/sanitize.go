// Package sanitize strips unsafe markup from user content.
package sanitize

import (
	"html"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy = bluemonday.StrictPolicy()
	ugcPolicy    = bluemonday.UGCPolicy()
)

// Plain removes all markup and returns the unescaped text. Used for titles,
// comments and other single-line fields that templates escape themselves.
func Plain(val string) string {
	return html.UnescapeString(strictPolicy.Sanitize(val))
}

// Rich keeps the user-generated-content subset of HTML (links, emphasis,
// lists) and is safe to render unescaped.
func Rich(val string) template.HTML {
	return template.HTML(ugcPolicy.Sanitize(val))
}
