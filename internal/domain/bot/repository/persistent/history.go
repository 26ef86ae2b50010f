package persistent

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/movie-search-bot/internal/domain/bot/deps"
	"github.com/yourusername/movie-search-bot/internal/domain/bot/entities"
)

type historyRepository struct {
	db *gorm.DB
}

// NewHistoryRepository creates a new search history repository
func NewHistoryRepository(db *gorm.DB) deps.HistoryRepository {
	return &historyRepository{db: db}
}

// Insert records one search attempt
func (r *historyRepository) Insert(ctx context.Context, entry *entities.SearchHistory) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// Update persists snapshot fields set after insertion
func (r *historyRepository) Update(ctx context.Context, entry *entities.SearchHistory) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

// ListByUser returns the newest entries for a user, newest first
func (r *historyRepository) ListByUser(ctx context.Context, userID uint, limit int) ([]entities.SearchHistory, error) {
	var entries []entities.SearchHistory
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// ListByUserAndDate returns entries created on the given calendar day
func (r *historyRepository) ListByUserAndDate(ctx context.Context, userID uint, date time.Time, limit int) ([]entities.SearchHistory, error) {
	var entries []entities.SearchHistory
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND DATE(created_at) = ?", userID, date.Format("2006-01-02")).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
