package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Rogue-Bear-Innovations/navigator-back/internal/db"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.Nil(t, err)
	require.Nil(t, db.Migrate(gdb))

	t.Cleanup(func() {
		for _, model := range []interface{}{&db.Site{}, &db.Category{}, &db.Settings{}, &db.User{}} {
			gdb.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model)
		}
	})
	return gdb
}

func newTestUser(t *testing.T, gdb *gorm.DB, email string) *db.User {
	t.Helper()

	user := db.User{
		Email:    email,
		Password: "irrelevant",
		Token:    "token-" + email,
	}
	require.Nil(t, gdb.Create(&user).Error)
	return &user
}

func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
