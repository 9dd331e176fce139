package db

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Rogue-Bear-Innovations/navigator-back/internal/config"
)

const (
	LogoTypeURL    = "url"
	LogoTypeUpload = "upload"
	LogoTypeEmoji  = "emoji"
)

type (
	GormForkedModel struct {
		ID        uint64    `gorm:"primarykey" json:"id"`
		CreatedAt time.Time `json:"created_at"`
		UpdatedAt time.Time `json:"updated_at"`
	}

	User struct {
		GormForkedModel
		Email      string `gorm:"unique;not null" json:"-"`
		Password   string `gorm:"not null" json:"-"`
		Token      string `gorm:"not null" json:"-"`
		Categories []Category
		Sites      []Site
	}

	// Category is a named, drag-reorderable group of sites. OrderIndex
	// values are dense and gapless within one user.
	Category struct {
		GormForkedModel
		UserID     uint64 `gorm:"not null;index" json:"user_id"`
		User       User   `json:"-"`
		Name       string `gorm:"not null" json:"name"`
		OrderIndex int    `gorm:"not null" json:"order_index"`
	}

	// Site is a single bookmark entry. OrderIndex is dense per
	// category; Visits only ever goes up.
	Site struct {
		GormForkedModel
		CategoryID uint64 `gorm:"not null;index" json:"category_id"`
		UserID     uint64 `gorm:"not null;index" json:"user_id"`
		User       User   `json:"-"`
		Name       string `gorm:"not null" json:"name"`
		URL        string `gorm:"not null" json:"url"`
		Logo       string `json:"logo"`
		Visits     int    `gorm:"not null;default:0" json:"visits"`
		OrderIndex int    `gorm:"not null" json:"order_index"`
	}

	// Settings holds one user's start-page preferences. The row is
	// created lazily; callers substitute DefaultSettings until the
	// user saves explicitly.
	Settings struct {
		GormForkedModel
		UserID              uint64 `gorm:"not null;uniqueIndex" json:"user_id"`
		User                User   `json:"-"`
		SiteTitle           string `json:"site_title"`
		LogoType            string `json:"logo_type"`
		LogoContent         string `json:"logo_content"`
		DefaultSearchEngine string `json:"default_search_engine"`
		City                string `json:"city"`
		Temperature         string `json:"temperature"`
		WeatherCondition    string `json:"weather_condition"`
	}
)

// DefaultSettings is the object served when the user has no settings
// row yet. It is not persisted until the user saves.
func DefaultSettings(userID uint64) Settings {
	return Settings{
		UserID:              userID,
		SiteTitle:           "导航站",
		LogoType:            LogoTypeEmoji,
		LogoContent:         "🚀",
		DefaultSearchEngine: "google",
	}
}

func NewGormClient(cfg *config.Config) (*gorm.DB, error) {
	newLogger := logger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Info,
		Colorful:                  true,
		IgnoreRecordNotFoundError: false,
	})

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect database")
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate runs the schema migrations. Split out so tests can run them
// against sqlite.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&User{}); err != nil {
		return errors.Wrap(err, "migrate user")
	}
	if err := db.AutoMigrate(&Category{}); err != nil {
		return errors.Wrap(err, "migrate category")
	}
	if err := db.AutoMigrate(&Site{}); err != nil {
		return errors.Wrap(err, "migrate site")
	}
	if err := db.AutoMigrate(&Settings{}); err != nil {
		return errors.Wrap(err, "migrate settings")
	}
	return nil
}
