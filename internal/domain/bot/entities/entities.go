// Package entities contains domain entities for the bot
package entities

import (
	"strconv"
	"time"
)

// User is a Telegram user known to the bot.
// Created lazily on first interaction, never duplicated.
type User struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    string `gorm:"uniqueIndex;not null"`
	Username  *string
	FirstName *string
}

// SearchHistory is a record of a user query, written before the
// catalog answers. Movie snapshot fields are populated only when
// a concrete movie result accompanied the query.
type SearchHistory struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"index;not null"`
	User      User `gorm:"constraint:OnDelete:CASCADE"`
	Query     string
	Command   *string
	CreatedAt time.Time

	MovieTitle       *string
	MovieDescription *string
	MovieRating      *string
	MovieYear        *string
	MovieGenre       *string
	MovieAgeLimit    *string
	MoviePosterURL   *string
}

// FavoriteMovie is a denormalized snapshot of a movie saved by a user.
// A user cannot favorite the same movie twice.
type FavoriteMovie struct {
	ID      uint   `gorm:"primaryKey"`
	UserID  uint   `gorm:"uniqueIndex:idx_user_movie;not null"`
	User    User   `gorm:"constraint:OnDelete:CASCADE"`
	MovieID string `gorm:"uniqueIndex:idx_user_movie;not null"`

	Title          string
	Description    *string
	Rating         *string
	MovieYear      *string
	MovieGenre     *string
	MovieAgeLimit  *string
	MoviePosterURL *string
}

// Movie is a movie record as returned by the catalog API
type Movie struct {
	ID              int64        `json:"id"`
	Name            string       `json:"name"`
	AlternativeName string       `json:"alternativeName"`
	Description     string       `json:"description"`
	Year            int          `json:"year"`
	Rating          MovieRating  `json:"rating"`
	Genres          []MovieGenre `json:"genres"`
	AgeLimits       *AgeLimits   `json:"ratingAgeLimits,omitempty"`
	Poster          *Poster      `json:"poster,omitempty"`
	Budget          *Budget      `json:"budget,omitempty"`
}

// MovieRating carries the two rating sources of a movie
type MovieRating struct {
	KP   float64 `json:"kp"`
	IMDB float64 `json:"imdb"`
}

// MovieGenre is a single genre entry of a movie
type MovieGenre struct {
	Name string `json:"name"`
}

// AgeLimits carries the age restriction label of a movie
type AgeLimits struct {
	Name string `json:"name"`
}

// Poster carries the poster URL of a movie
type Poster struct {
	URL string `json:"url"`
}

// Budget carries the production budget of a movie.
// Value is absent for most catalog records.
type Budget struct {
	Value *int64 `json:"value"`
}

// ExternalID returns the movie identifier used in callback tokens and favorites
func (m *Movie) ExternalID() string {
	return strconv.FormatInt(m.ID, 10)
}

// BudgetTier classifies movies by production budget
type BudgetTier string

const (
	BudgetLow  BudgetTier = "low"
	BudgetHigh BudgetTier = "high"
)

const (
	lowBudgetMax  = 5_000_000
	highBudgetMin = 10_000_000
)

// InBudgetTier reports whether the movie belongs to the given tier.
// A record with no budget field counts as low-budget, never as high-budget.
func (m *Movie) InBudgetTier(tier BudgetTier) bool {
	value := (*int64)(nil)
	if m.Budget != nil {
		value = m.Budget.Value
	}

	switch tier {
	case BudgetLow:
		return value == nil || *value <= lowBudgetMax
	case BudgetHigh:
		return value != nil && *value >= highBudgetMin
	default:
		return false
	}
}
