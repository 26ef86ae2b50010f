// Package deps contains interface definitions for the bot domain dependencies
package deps

import (
	"context"
	"time"

	"github.com/yourusername/movie-search-bot/internal/domain/bot/entities"
)

// MovieCatalog defines the external movie query service.
// Search methods return empty slices for "nothing found" and for
// upstream errors already handled at the transport level.
type MovieCatalog interface {
	// SearchByName searches movies by title substring, bounded to ~10 results
	SearchByName(ctx context.Context, name string) ([]entities.Movie, error)

	// SearchByGenre searches movies by genre name
	SearchByGenre(ctx context.Context, genre string) ([]entities.Movie, error)

	// SearchByMinRating searches movies rated at or above min
	SearchByMinRating(ctx context.Context, min float64, limit int) ([]entities.Movie, error)

	// SearchByBudget over-fetches unfiltered records and filters them
	// client-side by budget tier
	SearchByBudget(ctx context.Context, tier entities.BudgetTier, limit int) ([]entities.Movie, error)

	// GetByID fetches full movie detail, errors.ErrMovieNotFound when missing
	GetByID(ctx context.Context, movieID string) (*entities.Movie, error)
}

// UserRepository defines user data access
type UserRepository interface {
	// GetOrCreate returns an existing user by external id or creates one.
	// Never duplicates; profile fields are only set on first creation.
	GetOrCreate(ctx context.Context, userID string, username, firstName *string) (*entities.User, error)
}

// HistoryRepository defines search history data access.
// An entry is inserted before the catalog answers, the movie
// snapshot fields are attached afterwards.
type HistoryRepository interface {
	// Insert records one search attempt
	Insert(ctx context.Context, entry *entities.SearchHistory) error

	// Update persists snapshot fields set after insertion
	Update(ctx context.Context, entry *entities.SearchHistory) error

	// ListByUser returns the newest entries for a user, newest first
	ListByUser(ctx context.Context, userID uint, limit int) ([]entities.SearchHistory, error)

	// ListByUserAndDate returns entries created on the given calendar day
	ListByUserAndDate(ctx context.Context, userID uint, date time.Time, limit int) ([]entities.SearchHistory, error)
}

// FavoriteRepository defines favorites data access.
// The (user, movie_id) pair is unique.
type FavoriteRepository interface {
	// Exists reports whether the user already favorited the movie
	Exists(ctx context.Context, userID uint, movieID string) (bool, error)

	// Add inserts a favorite snapshot
	Add(ctx context.Context, favorite *entities.FavoriteMovie) error

	// Remove deletes the favorite and reports whether a row was deleted
	Remove(ctx context.Context, userID uint, movieID string) (bool, error)

	// ListByUser returns all favorites of a user
	ListByUser(ctx context.Context, userID uint) ([]entities.FavoriteMovie, error)
}
