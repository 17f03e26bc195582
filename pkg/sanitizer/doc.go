// Package sanitizer turns user-supplied markup into plain text.
//
// It wraps [github.com/microcosm-cc/bluemonday] with two entry points:
//
//	sanitizer.StripHTML(`<p>Hello <b>world</b></p>`) // "Hello world", HTML-escaped
//	sanitizer.PlainText(`Tom &amp; Jerry`)            // "Tom & Jerry", entities decoded
//
// StripHTML output is safe to render. PlainText output is meant for derived
// identifiers (the slug normalizer uses it) and must be escaped again before
// it is rendered.
package sanitizer
