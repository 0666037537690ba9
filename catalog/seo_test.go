package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "soft cotton tee", "soft cotton tee"},
		{"tags removed", "<p>Soft <strong>cotton</strong> tee</p>", "Soft cotton tee"},
		{"entities unescaped", "Fit &amp; Flare &lt;3 &quot;relaxed&quot; &#39;cut&#39;", `Fit & Flare <3 "relaxed" 'cut'`},
		{"nbsp becomes space", "one&nbsp;two", "one two"},
		{"whitespace collapsed", "<div>\n  a\n\n  b  </div>", "a b"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripHTML(tt.input))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 10))
	assert.Equal(t, "abcdefghij", Truncate("abcdefghij", 10))
	// Hard cut: max-3 characters plus the ellipsis, no word awareness.
	assert.Equal(t, "abcdefg...", Truncate("abcdefghijk", 10))
}

func TestSeoTitle(t *testing.T) {
	short := "Classic Tee"
	assert.Equal(t, short, SeoTitle(short))

	exact := strings.Repeat("a", MaxSeoTitleLength)
	assert.Equal(t, exact, SeoTitle(exact))

	long := strings.Repeat("a", MaxSeoTitleLength+1)
	got := SeoTitle(long)
	assert.Len(t, []rune(got), MaxSeoTitleLength)
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestSeoDescription(t *testing.T) {
	html := "<p>" + strings.Repeat("lorem ", 40) + "</p>"
	got := SeoDescription(html)
	assert.Len(t, []rune(got), MaxSeoDescriptionLength)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.NotContains(t, got, "<p>")

	assert.Equal(t, "short and sweet", SeoDescription("<em>short and sweet</em>"))
}
