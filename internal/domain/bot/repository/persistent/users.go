// Package persistent contains gorm-backed repositories for the bot domain
package persistent

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/movie-search-bot/internal/domain/bot/deps"
	"github.com/yourusername/movie-search-bot/internal/domain/bot/entities"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) deps.UserRepository {
	return &userRepository{db: db}
}

// GetOrCreate returns an existing user by external id or creates one.
// Profile fields are only applied on creation.
func (r *userRepository) GetOrCreate(ctx context.Context, userID string, username, firstName *string) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user = entities.User{
		UserID:    userID,
		Username:  username,
		FirstName: firstName,
	}
	if err := r.db.WithContext(ctx).Create(&user).Error; err != nil {
		// Lost a concurrent create race: the unique index on user_id
		// rejected the insert, so the row exists now.
		var existing entities.User
		if lookupErr := r.db.WithContext(ctx).
			Where("user_id = ?", userID).
			First(&existing).Error; lookupErr == nil {
			return &existing, nil
		}
		return nil, err
	}
	return &user, nil
}
