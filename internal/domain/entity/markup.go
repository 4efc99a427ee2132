package entity

import (
	"fmt"
	"regexp"
)

var tagPattern = regexp.MustCompile(`<[^>]+>`)

// StripTags removes all markup tags from s, leaving the inner text.
// It is pure and total: applying it to already-plain text is a no-op,
// which is what guarantees the rich and plain renderings never diverge.
func StripTags(s string) string {
	return tagPattern.ReplaceAllString(s, "")
}

// Bold wraps s in bold markup.
func Bold(s string) string {
	return "<b>" + s + "</b>"
}

// Code wraps s in monospace markup.
func Code(s string) string {
	return "<code>" + s + "</code>"
}

// Link builds an anchor with the given text and target URL.
func Link(text, url string) string {
	return fmt.Sprintf(`<a href="%s">%s</a>`, url, text)
}
