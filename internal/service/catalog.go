package service

import (
	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Rogue-Bear-Innovations/navigator-back/internal/bookmarks"
	"github.com/Rogue-Bear-Innovations/navigator-back/internal/db"
)

var (
	ErrNotOwned         = errors.New("entity does not belong to user")
	ErrReorderMismatch  = errors.New("reorder list does not cover the existing entities")
	ErrCategoryNotFound = errors.New("category not found")
)

// Catalog owns the category/site/settings CRUD the admin screens talk
// to, including drag-reorder and visit counting.
type Catalog struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

func NewCatalog(db *gorm.DB, l *zap.SugaredLogger) *Catalog {
	return &Catalog{
		db:     db,
		logger: l,
	}
}

func (s *Catalog) CategoryList(user *db.User) ([]db.Category, error) {
	categories := make([]db.Category, 0)
	res := s.db.Where("user_id = ?", user.ID).Order("order_index").Find(&categories)
	if res.Error != nil {
		return nil, res.Error
	}
	return categories, nil
}

// CategoryCreate appends a category at the end of the user's list.
func (s *Catalog) CategoryCreate(user *db.User, name string) (*db.Category, error) {
	var count int64
	res := s.db.Model(&db.Category{}).Where("user_id = ?", user.ID).Count(&count)
	if res.Error != nil {
		return nil, res.Error
	}

	model := db.Category{
		UserID:     user.ID,
		Name:       name,
		OrderIndex: int(count),
	}
	res = s.db.Create(&model)
	if res.Error != nil {
		return nil, res.Error
	}
	return &model, nil
}

func (s *Catalog) CategoryUpdate(user *db.User, id uint64, name string) (*db.Category, error) {
	model, err := s.categoryOwned(user, id)
	if err != nil {
		return nil, err
	}
	res := s.db.Model(model).Update("name", name)
	if res.Error != nil {
		return nil, res.Error
	}
	return model, nil
}

// CategoryDelete removes the category together with its sites, then
// closes the order_index gap it left behind.
func (s *Catalog) CategoryDelete(user *db.User, id uint64) error {
	if _, err := s.categoryOwned(user, id); err != nil {
		return err
	}
	res := s.db.Where("category_id = ? AND user_id = ?", id, user.ID).Delete(&db.Site{})
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete category sites")
	}
	res = s.db.Delete(&db.Category{}, id)
	if res.Error != nil {
		return res.Error
	}

	remaining := make([]db.Category, 0)
	res = s.db.Where("user_id = ?", user.ID).Order("order_index").Find(&remaining)
	if res.Error != nil {
		return res.Error
	}
	return s.reindexCategories(remaining)
}

// CategoryReorder applies a drag-reorder result: ids holds every
// category of the user in its new display order. The dense index
// sequence is computed up front; writes then go out one by one.
func (s *Catalog) CategoryReorder(user *db.User, ids []uint64) error {
	existing, err := s.CategoryList(user)
	if err != nil {
		return err
	}
	if err := coversExactly(ids, categoryIDs(existing)); err != nil {
		return err
	}

	for i, id := range ids {
		res := s.db.Model(&db.Category{}).Where("id = ?", id).Update("order_index", i)
		if res.Error != nil {
			return errors.Wrapf(res.Error, "reorder category %d", id)
		}
	}
	return nil
}

func (s *Catalog) SiteList(user *db.User, categoryID *uint64) ([]db.Site, error) {
	sites := make([]db.Site, 0)
	q := s.db.Where("user_id = ?", user.ID)
	if categoryID != nil {
		q = q.Where("category_id = ?", *categoryID)
	}
	res := q.Order("category_id").Order("order_index").Find(&sites)
	if res.Error != nil {
		return nil, res.Error
	}
	return sites, nil
}

// SiteCreate appends a site at the end of its category. An empty logo
// falls back to the emoji the icon resolver derives from the URL.
func (s *Catalog) SiteCreate(user *db.User, categoryID uint64, name, url, logo string) (*db.Site, error) {
	if _, err := s.categoryOwned(user, categoryID); err != nil {
		return nil, err
	}

	var count int64
	res := s.db.Model(&db.Site{}).Where("category_id = ?", categoryID).Count(&count)
	if res.Error != nil {
		return nil, res.Error
	}

	if logo == "" {
		logo = bookmarks.EmojiForURL(url)
	}

	model := db.Site{
		CategoryID: categoryID,
		UserID:     user.ID,
		Name:       name,
		URL:        url,
		Logo:       logo,
		Visits:     0,
		OrderIndex: int(count),
	}
	res = s.db.Create(&model)
	if res.Error != nil {
		return nil, res.Error
	}
	return &model, nil
}

func (s *Catalog) SiteUpdate(user *db.User, id uint64, name, url, logo string) (*db.Site, error) {
	model, err := s.siteOwned(user, id)
	if err != nil {
		return nil, err
	}
	res := s.db.Model(model).Updates(map[string]interface{}{
		"name": name,
		"url":  url,
		"logo": logo,
	})
	if res.Error != nil {
		return nil, res.Error
	}
	return model, nil
}

func (s *Catalog) SiteDelete(user *db.User, id uint64) error {
	model, err := s.siteOwned(user, id)
	if err != nil {
		return err
	}
	categoryID := model.CategoryID

	res := s.db.Delete(&db.Site{}, id)
	if res.Error != nil {
		return res.Error
	}

	remaining := make([]db.Site, 0)
	res = s.db.Where("category_id = ?", categoryID).Order("order_index").Find(&remaining)
	if res.Error != nil {
		return res.Error
	}
	return s.reindexSites(remaining)
}

// SiteReorder applies a drag-reorder within one category.
func (s *Catalog) SiteReorder(user *db.User, categoryID uint64, ids []uint64) error {
	existing, err := s.SiteList(user, &categoryID)
	if err != nil {
		return err
	}
	if err := coversExactly(ids, siteIDs(existing)); err != nil {
		return err
	}

	for i, id := range ids {
		res := s.db.Model(&db.Site{}).Where("id = ?", id).Update("order_index", i)
		if res.Error != nil {
			return errors.Wrapf(res.Error, "reorder site %d", id)
		}
	}
	return nil
}

// SiteVisit counts one user-initiated open. The transport layer only
// calls this for logged-in users; guest opens are never counted.
func (s *Catalog) SiteVisit(user *db.User, id uint64) error {
	res := s.db.Model(&db.Site{}).
		Where("id = ? AND user_id = ?", id, user.ID).
		UpdateColumn("visits", gorm.Expr("visits + ?", 1))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotOwned
	}
	return nil
}

// TopSites lists the user's most-visited sites across all categories,
// for the "frequently used" strip on the start page.
func (s *Catalog) TopSites(user *db.User, limit uint64) ([]db.Site, error) {
	sql, args, err := squirrel.
		Select("s.id", "s.category_id", "s.user_id", "s.name", "s.url", "s.logo", "s.visits", "s.order_index").
		From("sites s").
		Where(squirrel.And{
			squirrel.Eq{"s.user_id": user.ID},
			squirrel.Gt{"s.visits": 0},
		}).
		OrderBy("s.visits DESC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build sql")
	}

	sites := make([]db.Site, 0)
	res := s.db.Raw(sql, args...).Scan(&sites)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "scan")
	}
	return sites, nil
}

// SettingsGet returns the persisted settings row, or the default
// object when none exists yet. The default is not written back.
func (s *Catalog) SettingsGet(user *db.User) (*db.Settings, error) {
	settings := db.Settings{}
	res := s.db.Where("user_id = ?", user.ID).First(&settings)
	if res.Error != nil {
		if res.Error == gorm.ErrRecordNotFound {
			d := db.DefaultSettings(user.ID)
			return &d, nil
		}
		return nil, res.Error
	}
	return &settings, nil
}

// SettingsSave persists the mutable settings fields, creating the row
// if registration never did.
func (s *Catalog) SettingsSave(user *db.User, in db.Settings) (*db.Settings, error) {
	settings := db.Settings{}
	res := s.db.Where("user_id = ?", user.ID).First(&settings)
	if res.Error != nil {
		if res.Error != gorm.ErrRecordNotFound {
			return nil, res.Error
		}
		settings = db.DefaultSettings(user.ID)
	}

	settings.SiteTitle = in.SiteTitle
	settings.LogoType = in.LogoType
	settings.LogoContent = in.LogoContent
	settings.DefaultSearchEngine = in.DefaultSearchEngine
	settings.City = in.City
	settings.Temperature = in.Temperature
	settings.WeatherCondition = in.WeatherCondition

	res = s.db.Save(&settings)
	if res.Error != nil {
		return nil, res.Error
	}
	return &settings, nil
}

////////

func (s *Catalog) categoryOwned(user *db.User, id uint64) (*db.Category, error) {
	model := db.Category{}
	res := s.db.Where("id = ? AND user_id = ?", id, user.ID).First(&model)
	if res.Error != nil {
		if res.Error == gorm.ErrRecordNotFound {
			return nil, ErrCategoryNotFound
		}
		return nil, res.Error
	}
	return &model, nil
}

func (s *Catalog) siteOwned(user *db.User, id uint64) (*db.Site, error) {
	model := db.Site{}
	res := s.db.Where("id = ? AND user_id = ?", id, user.ID).First(&model)
	if res.Error != nil {
		if res.Error == gorm.ErrRecordNotFound {
			return nil, ErrNotOwned
		}
		return nil, res.Error
	}
	return &model, nil
}

func (s *Catalog) reindexCategories(ordered []db.Category) error {
	for i := range ordered {
		if ordered[i].OrderIndex == i {
			continue
		}
		res := s.db.Model(&ordered[i]).Update("order_index", i)
		if res.Error != nil {
			return errors.Wrapf(res.Error, "reindex category %d", ordered[i].ID)
		}
	}
	return nil
}

func (s *Catalog) reindexSites(ordered []db.Site) error {
	for i := range ordered {
		if ordered[i].OrderIndex == i {
			continue
		}
		res := s.db.Model(&ordered[i]).Update("order_index", i)
		if res.Error != nil {
			return errors.Wrapf(res.Error, "reindex site %d", ordered[i].ID)
		}
	}
	return nil
}

func categoryIDs(categories []db.Category) []uint64 {
	ids := make([]uint64, len(categories))
	for i := range categories {
		ids[i] = categories[i].ID
	}
	return ids
}

func siteIDs(sites []db.Site) []uint64 {
	ids := make([]uint64, len(sites))
	for i := range sites {
		ids[i] = sites[i].ID
	}
	return ids
}

// coversExactly checks that got is a permutation of want.
func coversExactly(got, want []uint64) error {
	if len(got) != len(want) {
		return ErrReorderMismatch
	}
	seen := make(map[uint64]bool, len(want))
	for _, id := range want {
		seen[id] = true
	}
	for _, id := range got {
		if !seen[id] {
			return ErrReorderMismatch
		}
		delete(seen, id)
	}
	return nil
}
