package bookmarks

// Placeholder names used when an imported file carries no usable text.
// These match the strings the web UI displays, so imported data looks
// the same as data entered by hand.
const (
	UnnamedBookmark = "未命名"
	UnnamedCategory = "未命名分类"
	DefaultCategory = "默认分类"
	Uncategorized   = "未分类"
)

type (
	// BookmarkRecord is the transient representation of one bookmark
	// between parsing and persistence.
	BookmarkRecord struct {
		Name string
		URL  string
		Icon string
	}

	// ParsedDocument groups parsed bookmarks by category name and keeps
	// the order category names were first seen in, plus a bucket for
	// bookmarks that belong to no folder at all.
	ParsedDocument struct {
		names         []string
		categories    map[string][]BookmarkRecord
		Uncategorized []BookmarkRecord
	}
)

func NewParsedDocument() *ParsedDocument {
	return &ParsedDocument{
		categories: map[string][]BookmarkRecord{},
	}
}

func (d *ParsedDocument) add(category string, r BookmarkRecord) {
	if category == "" {
		d.Uncategorized = append(d.Uncategorized, r)
		return
	}
	if _, ok := d.categories[category]; !ok {
		d.names = append(d.names, category)
	}
	d.categories[category] = append(d.categories[category], r)
}

// Categories returns category names in first-seen order.
func (d *ParsedDocument) Categories() []string {
	return d.names
}

// Records returns the bookmarks filed under the given category name.
func (d *ParsedDocument) Records(category string) []BookmarkRecord {
	return d.categories[category]
}

// Len counts every bookmark in the document, uncategorized included.
func (d *ParsedDocument) Len() int {
	n := len(d.Uncategorized)
	for _, recs := range d.categories {
		n += len(recs)
	}
	return n
}

// ParseError marks input that matches no accepted bookmark file shape.
// It is fatal for the whole import attempt and is raised before any
// persistence call happens.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return e.Reason + ": " + e.Err.Error()
	}
	return e.Reason
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
