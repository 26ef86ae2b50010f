package persistent

import (
	"context"

	"gorm.io/gorm"

	"github.com/yourusername/movie-search-bot/internal/domain/bot/deps"
	"github.com/yourusername/movie-search-bot/internal/domain/bot/entities"
)

type favoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository creates a new favorites repository
func NewFavoriteRepository(db *gorm.DB) deps.FavoriteRepository {
	return &favoriteRepository{db: db}
}

// Exists reports whether the user already favorited the movie
func (r *favoriteRepository) Exists(ctx context.Context, userID uint, movieID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.FavoriteMovie{}).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Add inserts a favorite snapshot. The unique index on (user_id, movie_id)
// backs the caller's existence check.
func (r *favoriteRepository) Add(ctx context.Context, favorite *entities.FavoriteMovie) error {
	return r.db.WithContext(ctx).Create(favorite).Error
}

// Remove deletes the favorite and reports whether a row was deleted
func (r *favoriteRepository) Remove(ctx context.Context, userID uint, movieID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		Delete(&entities.FavoriteMovie{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListByUser returns all favorites of a user
func (r *favoriteRepository) ListByUser(ctx context.Context, userID uint) ([]entities.FavoriteMovie, error) {
	var favorites []entities.FavoriteMovie
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&favorites).Error
	if err != nil {
		return nil, err
	}
	return favorites, nil
}
