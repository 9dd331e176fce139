package bookmarks

import (
	"bytes"
	"encoding/json"
)

// InvalidJSONMessage is shown to the user when an imported file is not
// valid JSON or matches none of the accepted shapes.
const InvalidJSONMessage = "无效的 JSON 格式"

type (
	// exportedCategory / exportedSite cover the system's own export
	// shape. Foreign exports carry string ids while ours are numeric,
	// so ids decode through flexID.
	exportedCategory struct {
		ID   flexID `json:"id"`
		Name string `json:"name"`
	}

	exportedSite struct {
		CategoryID flexID `json:"category_id"`
		Name       string `json:"name"`
		URL        string `json:"url"`
		Logo       string `json:"logo"`
	}

	// looseEntry covers the generic bookmark-list shapes, where every
	// field has a couple of customary spellings.
	looseEntry struct {
		Name     string `json:"name"`
		Title    string `json:"title"`
		URL      string `json:"url"`
		Link     string `json:"link"`
		Category string `json:"category"`
		Folder   string `json:"folder"`
		Icon     string `json:"icon"`
	}
)

// ParseJSON converts a JSON bookmark file into a ParsedDocument. Three
// shapes are accepted, tried in this order:
//
//  1. {"categories": [...], "sites": [...]} — our own export shape;
//     sites resolve their category name through the category id, or
//     fall back to 默认分类 when the id is unknown.
//  2. A bare array of bookmark objects.
//  3. {"bookmarks": [...]} with the same entry shape as 2.
//
// Anything else, malformed JSON included, fails with a ParseError so
// the caller can abort before touching persistence.
func ParseJSON(data []byte) (*ParsedDocument, error) {
	trimmed := bytes.TrimSpace(data)

	if len(trimmed) > 0 && trimmed[0] == '[' {
		var entries []looseEntry
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, &ParseError{Reason: InvalidJSONMessage, Err: err}
		}
		return fromLooseEntries(entries), nil
	}

	var head struct {
		Categories []exportedCategory `json:"categories"`
		Sites      []exportedSite     `json:"sites"`
		Bookmarks  []looseEntry       `json:"bookmarks"`
	}
	if err := json.Unmarshal(trimmed, &head); err != nil {
		return nil, &ParseError{Reason: InvalidJSONMessage, Err: err}
	}

	switch {
	case head.Categories != nil && head.Sites != nil:
		return fromExportShape(head.Categories, head.Sites), nil
	case head.Bookmarks != nil:
		return fromLooseEntries(head.Bookmarks), nil
	default:
		return nil, &ParseError{Reason: InvalidJSONMessage}
	}
}

func fromExportShape(categories []exportedCategory, sites []exportedSite) *ParsedDocument {
	names := make(map[flexID]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	doc := NewParsedDocument()
	for _, s := range sites {
		category, ok := names[s.CategoryID]
		if !ok || category == "" {
			category = DefaultCategory
		}
		doc.add(category, BookmarkRecord{Name: s.Name, URL: s.URL, Icon: s.Logo})
	}
	return doc
}

func fromLooseEntries(entries []looseEntry) *ParsedDocument {
	doc := NewParsedDocument()
	for _, e := range entries {
		doc.add(firstNonEmpty(e.Category, e.Folder), BookmarkRecord{
			Name: firstNonEmpty(e.Name, e.Title, UnnamedBookmark),
			URL:  firstNonEmpty(e.URL, e.Link),
			Icon: e.Icon,
		})
	}
	return doc
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// flexID accepts both string and numeric ids so exports from the old
// hosted backend (uuid strings) and from this one (integers) both
// resolve.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}
