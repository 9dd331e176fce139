package bookmarks

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmojiForURL(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://github.com/foo", "🐙"},
		{"https://gist.github.com/foo", "🐙"},
		{"https://www.youtube.com/watch?v=x", "📺"},
		{"https://zhihu.com/question/1", "🤔"},
		{"https://whitehouse.gov", "🏛️"},
		{"https://mit.edu/about", "🎓"},
		{"https://example.org", "🌐"},
		{"https://tool.io", "💾"},
		{"https://unknown-site.example.com", LinkEmoji},
		{"not a url", LinkEmoji},
		{"", LinkEmoji},
		{"://missing-scheme", LinkEmoji},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, EmojiForURL(tc.url), "url %q", tc.url)
	}
}

func TestEmojiForURLTableOrder(t *testing.T) {
	// netflix.com contains "x.com" as a substring; the table entry for
	// netflix has to lose to x.com's earlier position, same as the
	// original insertion-ordered lookup.
	assert.Equal(t, "❌", EmojiForURL("https://netflix.com"))
}

func TestFaviconURL(t *testing.T) {
	assert.Equal(t,
		"https://www.google.com/s2/favicons?domain=github.com&sz=64",
		FaviconURL("https://github.com/foo"))
	assert.Equal(t, "", FaviconURL("not a url"))
}
