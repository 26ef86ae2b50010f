// Package database contains database infrastructure
package database

import (
	"fmt"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/yourusername/movie-search-bot/config"
	"github.com/yourusername/movie-search-bot/internal/domain/bot/entities"
)

// New creates a database connection for the configured driver
// and applies schema migrations.
func New(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	switch cfg.Driver {
	case "sqlite":
		db, err = gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{})
		if err == nil {
			db.Exec("PRAGMA journal_mode=WAL;")
			db.Exec("PRAGMA foreign_keys=ON;")
			db.Exec("PRAGMA busy_timeout=5000;")
		}
	case "postgres":
		dsn := fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode,
		)
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate applies the schema. AutoMigrate is additive; the explicit column
// pass keeps databases created by earlier schema versions in sync.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&entities.User{},
		&entities.SearchHistory{},
		&entities.FavoriteMovie{},
	); err != nil {
		return fmt.Errorf("failed to auto migrate: %w", err)
	}

	return ensureSnapshotColumns(db)
}

// ensureSnapshotColumns adds the denormalized movie snapshot columns when
// missing. Columns are nullable, so the migration is safe to re-run.
func ensureSnapshotColumns(db *gorm.DB) error {
	migrator := db.Migrator()

	historyColumns := []string{
		"movie_title", "movie_description", "movie_rating",
		"movie_year", "movie_genre", "movie_age_limit", "movie_poster_url",
	}
	for _, column := range historyColumns {
		if !migrator.HasColumn(&entities.SearchHistory{}, column) {
			if err := migrator.AddColumn(&entities.SearchHistory{}, column); err != nil {
				return fmt.Errorf("failed to add search_history column %s: %w", column, err)
			}
		}
	}

	favoriteColumns := []string{
		"description", "rating", "movie_year",
		"movie_genre", "movie_age_limit", "movie_poster_url",
	}
	for _, column := range favoriteColumns {
		if !migrator.HasColumn(&entities.FavoriteMovie{}, column) {
			if err := migrator.AddColumn(&entities.FavoriteMovie{}, column); err != nil {
				return fmt.Errorf("failed to add favorite_movies column %s: %w", column, err)
			}
		}
	}

	return nil
}
