package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rogue-Bear-Innovations/navigator-back/internal/db"
)

func TestCategoryCreateAppends(t *testing.T) {
	gdb := newTestDB(t)
	user := newTestUser(t, gdb, "cat-create@test.com")
	catalog := NewCatalog(gdb, testLogger())

	a, err := catalog.CategoryCreate(user, "A")
	require.Nil(t, err)
	b, err := catalog.CategoryCreate(user, "B")
	require.Nil(t, err)

	assert.Equal(t, 0, a.OrderIndex)
	assert.Equal(t, 1, b.OrderIndex)
}

func TestCategoryReorderAssignsDenseIndices(t *testing.T) {
	gdb := newTestDB(t)
	user := newTestUser(t, gdb, "cat-reorder@test.com")
	catalog := NewCatalog(gdb, testLogger())

	a, _ := catalog.CategoryCreate(user, "A")
	b, _ := catalog.CategoryCreate(user, "B")
	c, _ := catalog.CategoryCreate(user, "C")

	require.Nil(t, catalog.CategoryReorder(user, []uint64{c.ID, a.ID, b.ID}))

	ordered, err := catalog.CategoryList(user)
	require.Nil(t, err)
	require.Len(t, ordered, 3)
	assert.Equal(t, "C", ordered[0].Name)
	assert.Equal(t, "A", ordered[1].Name)
	assert.Equal(t, "B", ordered[2].Name)
	for i := range ordered {
		assert.Equal(t, i, ordered[i].OrderIndex)
	}
}

func TestCategoryReorderRejectsPartialList(t *testing.T) {
	gdb := newTestDB(t)
	user := newTestUser(t, gdb, "cat-partial@test.com")
	catalog := NewCatalog(gdb, testLogger())

	a, _ := catalog.CategoryCreate(user, "A")
	_, _ = catalog.CategoryCreate(user, "B")

	err := catalog.CategoryReorder(user, []uint64{a.ID})
	assert.Equal(t, ErrReorderMismatch, err)
}

func TestCategoryDeleteRemovesSitesAndClosesGap(t *testing.T) {
	gdb := newTestDB(t)
	user := newTestUser(t, gdb, "cat-delete@test.com")
	catalog := NewCatalog(gdb, testLogger())

	a, _ := catalog.CategoryCreate(user, "A")
	b, _ := catalog.CategoryCreate(user, "B")
	c, _ := catalog.CategoryCreate(user, "C")
	_, err := catalog.SiteCreate(user, b.ID, "Doomed", "https://doomed.example.com", "")
	require.Nil(t, err)

	require.Nil(t, catalog.CategoryDelete(user, b.ID))

	var siteCount int64
	require.Nil(t, gdb.Model(&db.Site{}).Where("user_id = ?", user.ID).Count(&siteCount).Error)
	assert.EqualValues(t, 0, siteCount)

	ordered, err := catalog.CategoryList(user)
	require.Nil(t, err)
	require.Len(t, ordered, 2)
	assert.Equal(t, a.ID, ordered[0].ID)
	assert.Equal(t, 0, ordered[0].OrderIndex)
	assert.Equal(t, c.ID, ordered[1].ID)
	assert.Equal(t, 1, ordered[1].OrderIndex)
}

func TestCategoryMissReturnsNotFound(t *testing.T) {
	gdb := newTestDB(t)
	user := newTestUser(t, gdb, "cat-miss@test.com")
	other := newTestUser(t, gdb, "cat-miss-other@test.com")
	catalog := NewCatalog(gdb, testLogger())

	cat, _ := catalog.CategoryCreate(user, "A")

	// Nonexistent id and someone else's id look the same.
	_, err := catalog.CategoryUpdate(user, 9999, "renamed")
	assert.Equal(t, ErrCategoryNotFound, err)
	_, err = catalog.CategoryUpdate(other, cat.ID, "renamed")
	assert.Equal(t, ErrCategoryNotFound, err)
	_, err = catalog.SiteCreate(other, cat.ID, "S", "https://s.example.com", "")
	assert.Equal(t, ErrCategoryNotFound, err)
}

func TestSiteVisitIncrements(t *testing.T) {
	gdb := newTestDB(t)
	user := newTestUser(t, gdb, "visit@test.com")
	other := newTestUser(t, gdb, "visit-other@test.com")
	catalog := NewCatalog(gdb, testLogger())

	cat, _ := catalog.CategoryCreate(user, "A")
	site, err := catalog.SiteCreate(user, cat.ID, "S", "https://s.example.com", "")
	require.Nil(t, err)

	require.Nil(t, catalog.SiteVisit(user, site.ID))
	require.Nil(t, catalog.SiteVisit(user, site.ID))

	got := db.Site{}
	require.Nil(t, gdb.First(&got, site.ID).Error)
	assert.Equal(t, 2, got.Visits)

	// Another user cannot bump someone else's counter.
	assert.Equal(t, ErrNotOwned, catalog.SiteVisit(other, site.ID))
}

func TestTopSitesOrdersByVisits(t *testing.T) {
	gdb := newTestDB(t)
	user := newTestUser(t, gdb, "top@test.com")
	catalog := NewCatalog(gdb, testLogger())

	cat, _ := catalog.CategoryCreate(user, "A")
	cold, _ := catalog.SiteCreate(user, cat.ID, "Cold", "https://cold.example.com", "")
	warm, _ := catalog.SiteCreate(user, cat.ID, "Warm", "https://warm.example.com", "")
	hot, _ := catalog.SiteCreate(user, cat.ID, "Hot", "https://hot.example.com", "")

	_ = cold
	require.Nil(t, catalog.SiteVisit(user, warm.ID))
	for i := 0; i < 3; i++ {
		require.Nil(t, catalog.SiteVisit(user, hot.ID))
	}

	top, err := catalog.TopSites(user, 10)
	require.Nil(t, err)
	// Unvisited sites are excluded.
	require.Len(t, top, 2)
	assert.Equal(t, "Hot", top[0].Name)
	assert.Equal(t, "Warm", top[1].Name)
}

func TestSettingsDefaultNotPersisted(t *testing.T) {
	gdb := newTestDB(t)
	user := newTestUser(t, gdb, "settings@test.com")
	catalog := NewCatalog(gdb, testLogger())

	settings, err := catalog.SettingsGet(user)
	require.Nil(t, err)
	assert.Equal(t, "导航站", settings.SiteTitle)
	assert.Equal(t, db.LogoTypeEmoji, settings.LogoType)
	assert.Equal(t, "google", settings.DefaultSearchEngine)

	var count int64
	require.Nil(t, gdb.Model(&db.Settings{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestSettingsSaveCreatesThenUpdates(t *testing.T) {
	gdb := newTestDB(t)
	user := newTestUser(t, gdb, "settings-save@test.com")
	catalog := NewCatalog(gdb, testLogger())

	saved, err := catalog.SettingsSave(user, db.Settings{
		SiteTitle:           "mine",
		LogoType:            db.LogoTypeURL,
		LogoContent:         "https://logo.example.com/x.png",
		DefaultSearchEngine: "bing",
		City:                "上海",
	})
	require.Nil(t, err)
	assert.Equal(t, "mine", saved.SiteTitle)

	again, err := catalog.SettingsSave(user, db.Settings{
		SiteTitle:           "renamed",
		LogoType:            db.LogoTypeURL,
		LogoContent:         "https://logo.example.com/x.png",
		DefaultSearchEngine: "bing",
		City:                "上海",
	})
	require.Nil(t, err)
	assert.Equal(t, "renamed", again.SiteTitle)

	var count int64
	require.Nil(t, gdb.Model(&db.Settings{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSiteReorderWithinCategory(t *testing.T) {
	gdb := newTestDB(t)
	user := newTestUser(t, gdb, "site-reorder@test.com")
	catalog := NewCatalog(gdb, testLogger())

	cat, _ := catalog.CategoryCreate(user, "A")
	s1, _ := catalog.SiteCreate(user, cat.ID, "S1", "https://s1.example.com", "")
	s2, _ := catalog.SiteCreate(user, cat.ID, "S2", "https://s2.example.com", "")
	s3, _ := catalog.SiteCreate(user, cat.ID, "S3", "https://s3.example.com", "")

	require.Nil(t, catalog.SiteReorder(user, cat.ID, []uint64{s3.ID, s1.ID, s2.ID}))

	sites, err := catalog.SiteList(user, &cat.ID)
	require.Nil(t, err)
	require.Len(t, sites, 3)
	assert.Equal(t, "S3", sites[0].Name)
	assert.Equal(t, "S1", sites[1].Name)
	assert.Equal(t, "S2", sites[2].Name)
}
