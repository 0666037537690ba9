package catalog

import (
	"regexp"
	"strings"
)

const (
	// MaxSeoTitleLength is the longest search engines render in full.
	MaxSeoTitleLength = 70
	// MaxSeoDescriptionLength matches the usual snippet cutoff.
	MaxSeoDescriptionLength = 160
)

var htmlTag = regexp.MustCompile(`<[^>]*>`)

var htmlEntities = strings.NewReplacer(
	"&nbsp;", " ",
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
)

// StripHTML removes tags, unescapes the common named entities and collapses
// whitespace. Best effort for plain-text previews only; this is not a
// sanitizer and must not be used for security-sensitive cleanup.
func StripHTML(html string) string {
	s := htmlTag.ReplaceAllString(html, "")
	s = htmlEntities.Replace(s)
	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Truncate hard-cuts s to max characters, appending "..." when it was longer.
// The cut ignores word boundaries; that is the documented behavior.
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

// SeoTitle returns the title unchanged when it fits, otherwise truncated to
// the 70-character limit.
func SeoTitle(title string) string {
	return Truncate(title, MaxSeoTitleLength)
}

// SeoDescription strips the HTML description down to plain text and truncates
// it to the 160-character limit.
func SeoDescription(html string) string {
	return Truncate(StripHTML(html), MaxSeoDescriptionLength)
}
