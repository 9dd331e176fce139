package bookmarks

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/Rogue-Bear-Innovations/navigator-back/internal/db"
)

// ExportVersion is written into every export and checked nowhere yet;
// it exists so a future format change can tell old files apart.
const ExportVersion = "1.0"

// ExportMIME is the content type of the export download.
const ExportMIME = "application/json"

// ExportDocument is the portable full-state backup: everything one
// user owns, in a single JSON file. The same shape is what the
// whole-state importer consumes.
type ExportDocument struct {
	Categories []db.Category `json:"categories"`
	Sites      []db.Site     `json:"sites"`
	Settings   *db.Settings  `json:"settings"`
	ExportDate time.Time     `json:"exportDate"`
	Version    string        `json:"version"`
}

// NewExportDocument snapshots the given state. It does no filtering
// and no persistence; serialization is the caller's next step.
func NewExportDocument(categories []db.Category, sites []db.Site, settings *db.Settings, now time.Time) *ExportDocument {
	if categories == nil {
		categories = []db.Category{}
	}
	if sites == nil {
		sites = []db.Site{}
	}
	return &ExportDocument{
		Categories: categories,
		Sites:      sites,
		Settings:   settings,
		ExportDate: now.UTC(),
		Version:    ExportVersion,
	}
}

// Marshal renders the document the way the download endpoint serves
// it: 2-space indented JSON.
func (d *ExportDocument) Marshal() ([]byte, error) {
	b, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "marshal export document")
	}
	return b, nil
}

// DecodeExportDocument is the strict counterpart to Marshal for the
// whole-state import path. Marshal always emits both arrays, so a
// document missing either one is rejected; looser bookmark files go
// through ParseJSON instead.
func DecodeExportDocument(data []byte) (*ExportDocument, error) {
	doc := ExportDocument{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Reason: InvalidJSONMessage, Err: err}
	}
	if doc.Categories == nil || doc.Sites == nil {
		return nil, &ParseError{Reason: InvalidJSONMessage}
	}
	return &doc, nil
}

// ExportFilename names the download, e.g. navigation-data-2024-01-31.json.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("navigation-data-%s.json", now.UTC().Format("2006-01-02"))
}
