package bookmarks

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/html"
)

// ParseHTML reads a browser-exported bookmark file (the Netscape
// DL/DT/H3/A convention used by Chrome, Firefox and Edge) and groups
// its links by their immediate enclosing folder. Nested folders are
// flattened: a link inside "A > B" is filed under "B" only. Links
// sitting in the root list outside any folder end up uncategorized.
//
// Browser exports vary in dialect, so this parser never rejects a
// document: anything without recognizable folders or links simply
// yields an empty result.
func ParseHTML(r io.Reader) (*ParsedDocument, error) {
	node, err := html.Parse(r)
	if err != nil {
		return nil, errors.Wrap(err, "parse bookmark html")
	}

	doc := NewParsedDocument()
	if root := findElement(node, "dl"); root != nil {
		parseFolder(root, "", doc)
	}
	return doc, nil
}

func parseFolder(dl *html.Node, category string, doc *ParsedDocument) {
	for dt := dl.FirstChild; dt != nil; dt = dt.NextSibling {
		if !isElement(dt, "dt") {
			continue
		}

		if h3 := findElement(dt, "h3"); h3 != nil {
			name := strings.TrimSpace(textContent(h3))
			if name == "" {
				name = UnnamedCategory
			}
			if sub := findElement(dt, "dl"); sub != nil {
				parseFolder(sub, name, doc)
			}
			continue
		}

		a := findElement(dt, "a")
		if a == nil {
			continue
		}
		href := attrValue(a, "href")
		if href == "" {
			continue
		}
		name := strings.TrimSpace(textContent(a))
		if name == "" {
			name = UnnamedBookmark
		}
		doc.add(category, BookmarkRecord{Name: name, URL: href})
	}
}

func isElement(n *html.Node, tag string) bool {
	return n.Type == html.ElementNode && strings.EqualFold(n.Data, tag)
}

// findElement returns the first descendant with the given tag, in
// document order, or nil.
func findElement(n *html.Node, tag string) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if isElement(c, tag) {
			return c
		}
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(textContent(c))
	}
	return b.String()
}
