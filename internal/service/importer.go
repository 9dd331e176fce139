package service

import (
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Rogue-Bear-Innovations/navigator-back/internal/bookmarks"
	"github.com/Rogue-Bear-Innovations/navigator-back/internal/db"
)

// Importer turns parsed bookmark documents into rows and builds the
// export snapshot going the other way.
type Importer struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
	now    func() time.Time
}

func NewImporter(db *gorm.DB, l *zap.SugaredLogger) *Importer {
	return &Importer{
		db:     db,
		logger: l,
		now:    time.Now,
	}
}

// ImportResult reports how many rows an import created.
type ImportResult struct {
	Categories int `json:"categories"`
	Sites      int `json:"sites"`
}

// importState tracks what the sequential import has seen so far, so
// every order_index is computed before its write goes out.
type importState struct {
	byName     map[string]uint64
	total      int
	siteCounts map[uint64]int
}

// ImportBookmarks files a parsed bookmark document into the user's
// existing structure: categories are matched by exact name (first
// match wins) and created at the end of the list otherwise; sites are
// appended behind whatever the category already holds. Uncategorized
// bookmarks land in 未分类.
//
// Writes are issued one at a time and the first failure aborts the
// rest. Rows written before the failure stay; the caller reports the
// partial result to the user.
func (s *Importer) ImportBookmarks(user *db.User, doc *bookmarks.ParsedDocument) (*ImportResult, error) {
	existing := make([]db.Category, 0)
	res := s.db.Where("user_id = ?", user.ID).Order("order_index").Find(&existing)
	if res.Error != nil {
		return nil, res.Error
	}

	state := importState{
		byName:     make(map[string]uint64, len(existing)),
		total:      len(existing),
		siteCounts: map[uint64]int{},
	}
	for _, c := range existing {
		// First match by name is authoritative; duplicates are left alone.
		if _, ok := state.byName[c.Name]; !ok {
			state.byName[c.Name] = c.ID
		}
	}

	result := &ImportResult{}
	for _, name := range doc.Categories() {
		if err := s.fileUnder(user, name, doc.Records(name), &state, result); err != nil {
			return result, err
		}
	}
	if len(doc.Uncategorized) > 0 {
		if err := s.fileUnder(user, bookmarks.Uncategorized, doc.Uncategorized, &state, result); err != nil {
			return result, err
		}
	}

	s.logger.Infof("imported %d sites into %d new categories for user %d",
		result.Sites, result.Categories, user.ID)
	return result, nil
}

func (s *Importer) fileUnder(user *db.User, name string, records []bookmarks.BookmarkRecord, state *importState, result *ImportResult) error {
	categoryID, ok := state.byName[name]
	if !ok {
		model := db.Category{
			UserID:     user.ID,
			Name:       name,
			OrderIndex: state.total,
		}
		if res := s.db.Create(&model); res.Error != nil {
			return errors.Wrapf(res.Error, "create category %q", name)
		}
		categoryID = model.ID
		state.byName[name] = categoryID
		state.siteCounts[categoryID] = 0
		state.total++
		result.Categories++
	} else if _, seen := state.siteCounts[categoryID]; !seen {
		var n int64
		if res := s.db.Model(&db.Site{}).Where("category_id = ?", categoryID).Count(&n); res.Error != nil {
			return errors.Wrapf(res.Error, "count sites of category %q", name)
		}
		state.siteCounts[categoryID] = int(n)
	}

	next := state.siteCounts[categoryID]
	for i, r := range records {
		logo := r.Icon
		if logo == "" {
			logo = bookmarks.EmojiForURL(r.URL)
		}
		site := db.Site{
			CategoryID: categoryID,
			UserID:     user.ID,
			Name:       r.Name,
			URL:        r.URL,
			Logo:       logo,
			Visits:     0,
			OrderIndex: next + i,
		}
		if res := s.db.Create(&site); res.Error != nil {
			return errors.Wrapf(res.Error, "create site %q", r.Name)
		}
		result.Sites++
		state.siteCounts[categoryID] = next + i + 1
	}
	return nil
}

// ImportFull replaces the user's whole state with the document:
// existing sites and categories are deleted, then the document's
// arrays are replayed with their order_index values kept verbatim,
// then the settings row's mutable fields are overwritten (never
// inserted). Sites are re-attached through the document's category
// ids, which get remapped to the freshly created rows.
//
// The whole replay runs in one transaction, so a failure partway
// through rolls everything back instead of leaving the user with less
// data than before.
func (s *Importer) ImportFull(user *db.User, doc *bookmarks.ExportDocument) (*ImportResult, error) {
	result := &ImportResult{}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if res := tx.Where("user_id = ?", user.ID).Delete(&db.Site{}); res.Error != nil {
			return errors.Wrap(res.Error, "delete sites")
		}
		if res := tx.Where("user_id = ?", user.ID).Delete(&db.Category{}); res.Error != nil {
			return errors.Wrap(res.Error, "delete categories")
		}

		idMap := make(map[uint64]uint64, len(doc.Categories))
		for i := range doc.Categories {
			model := db.Category{
				UserID:     user.ID,
				Name:       doc.Categories[i].Name,
				OrderIndex: doc.Categories[i].OrderIndex,
			}
			if res := tx.Create(&model); res.Error != nil {
				return errors.Wrapf(res.Error, "create category %q", model.Name)
			}
			idMap[doc.Categories[i].ID] = model.ID
			result.Categories++
		}

		for i := range doc.Sites {
			categoryID, ok := idMap[doc.Sites[i].CategoryID]
			if !ok {
				return errors.Errorf("site %q references unknown category %d",
					doc.Sites[i].Name, doc.Sites[i].CategoryID)
			}
			model := db.Site{
				CategoryID: categoryID,
				UserID:     user.ID,
				Name:       doc.Sites[i].Name,
				URL:        doc.Sites[i].URL,
				Logo:       doc.Sites[i].Logo,
				Visits:     doc.Sites[i].Visits,
				OrderIndex: doc.Sites[i].OrderIndex,
			}
			if res := tx.Create(&model); res.Error != nil {
				return errors.Wrapf(res.Error, "create site %q", model.Name)
			}
			result.Sites++
		}

		if doc.Settings != nil {
			settings := db.Settings{}
			res := tx.Where("user_id = ?", user.ID).First(&settings)
			if res.Error != nil {
				if res.Error == gorm.ErrRecordNotFound {
					return nil
				}
				return errors.Wrap(res.Error, "load settings")
			}
			res = tx.Model(&settings).Updates(map[string]interface{}{
				"site_title":            doc.Settings.SiteTitle,
				"logo_type":             doc.Settings.LogoType,
				"logo_content":          doc.Settings.LogoContent,
				"default_search_engine": doc.Settings.DefaultSearchEngine,
				"city":                  doc.Settings.City,
				"temperature":           doc.Settings.Temperature,
				"weather_condition":     doc.Settings.WeatherCondition,
			})
			if res.Error != nil {
				return errors.Wrap(res.Error, "overwrite settings")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infof("replaced state of user %d: %d categories, %d sites",
		user.ID, result.Categories, result.Sites)
	return result, nil
}

// Export snapshots everything the user owns into the portable backup
// document.
func (s *Importer) Export(user *db.User) (*bookmarks.ExportDocument, error) {
	categories := make([]db.Category, 0)
	res := s.db.Where("user_id = ?", user.ID).Order("order_index").Find(&categories)
	if res.Error != nil {
		return nil, res.Error
	}

	sites := make([]db.Site, 0)
	res = s.db.Where("user_id = ?", user.ID).Order("category_id").Order("order_index").Find(&sites)
	if res.Error != nil {
		return nil, res.Error
	}

	var settings *db.Settings
	row := db.Settings{}
	res = s.db.Where("user_id = ?", user.ID).First(&row)
	if res.Error != nil {
		if res.Error != gorm.ErrRecordNotFound {
			return nil, res.Error
		}
	} else {
		settings = &row
	}

	return bookmarks.NewExportDocument(categories, sites, settings, s.now()), nil
}
