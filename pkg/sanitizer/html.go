package sanitizer

import (
	"html"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy *bluemonday.Policy
	initOnce     sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		// StrictPolicy strips ALL HTML, returns escaped plain text
		strictPolicy = bluemonday.StrictPolicy()
	})
}

// StripHTML removes all HTML tags and dangerous content.
// The result is HTML-escaped plain text, safe to embed into markup.
func StripHTML(s string) string {
	initPolicies()
	return strictPolicy.Sanitize(s)
}

// PlainText removes all tags and decodes HTML entities, so "Tom &amp; Jerry"
// becomes "Tom & Jerry". Tags are removed without inserting whitespace, so
// "Sl<b>ug</b>" reads "Slug". Script and style contents are dropped entirely.
// The result is NOT safe to embed into markup; use it for derived values
// such as slugs or search keys.
func PlainText(s string) string {
	if s == "" {
		return ""
	}
	return html.UnescapeString(StripHTML(s))
}
