package bookmarks

import (
	"fmt"
	"net/url"
	"strings"
)

// domainEmojis maps well-known hosts to a display glyph. Matching is
// by substring, so order matters: an entry earlier in the table wins
// even when a later domain would also match (e.g. x.com hits before
// netflix.com is reached).
var domainEmojis = []struct {
	domain string
	emoji  string
}{
	{"github.com", "🐙"},
	{"google.com", "🔍"},
	{"youtube.com", "📺"},
	{"twitter.com", "🐦"},
	{"x.com", "❌"},
	{"facebook.com", "📘"},
	{"instagram.com", "📷"},
	{"linkedin.com", "💼"},
	{"reddit.com", "🤖"},
	{"stackoverflow.com", "💻"},
	{"medium.com", "📝"},
	{"dev.to", "👨‍💻"},
	{"notion.so", "📋"},
	{"figma.com", "🎨"},
	{"dribbble.com", "🏀"},
	{"behance.net", "🎭"},
	{"amazon.com", "📦"},
	{"netflix.com", "🎬"},
	{"spotify.com", "🎵"},
	{"apple.com", "🍎"},
	{"microsoft.com", "🪟"},
	{"wikipedia.org", "📚"},
	{"bilibili.com", "📺"},
	{"zhihu.com", "🤔"},
	{"weibo.com", "📱"},
	{"baidu.com", "🔍"},
	{"taobao.com", "🛒"},
	{"jd.com", "🛍️"},
}

// LinkEmoji is the generic fallback glyph.
const LinkEmoji = "🔗"

// EmojiForURL derives a single-glyph icon for a bookmark that has none
// of its own: known hosts get their table entry, then a few TLD rules
// apply, then the generic link glyph. It never fails; malformed URLs
// get the generic glyph too.
func EmojiForURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return LinkEmoji
	}
	hostname := strings.ToLower(u.Hostname())
	if hostname == "" {
		return LinkEmoji
	}

	for _, e := range domainEmojis {
		if strings.Contains(hostname, e.domain) {
			return e.emoji
		}
	}

	switch {
	case strings.HasSuffix(hostname, ".gov"):
		return "🏛️"
	case strings.HasSuffix(hostname, ".edu"):
		return "🎓"
	case strings.HasSuffix(hostname, ".org"):
		return "🌐"
	case strings.HasSuffix(hostname, ".io"):
		return "💾"
	}

	return LinkEmoji
}

// FaviconURL builds a Google favicon service URL for the site, or ""
// when the URL has no usable host.
func FaviconURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	return fmt.Sprintf("https://www.google.com/s2/favicons?domain=%s&sz=64", u.Hostname())
}
