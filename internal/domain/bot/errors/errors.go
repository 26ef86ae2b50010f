// Package errors contains domain-specific errors for the bot domain
package errors

import (
	pkgerrors "github.com/yourusername/movie-search-bot/pkg/errors"
)

// Domain errors for bot operations
var (
	ErrMovieNotFound    = pkgerrors.NewNotFoundError("movie not found")
	ErrFavoriteNotFound = pkgerrors.NewNotFoundError("favorite not found")
	ErrAlreadyFavorite  = pkgerrors.NewConflictError("movie already in favorites")
	ErrEmptyInput       = pkgerrors.NewValidationError("input text is empty")
	ErrDigitsOnlyInput  = pkgerrors.NewValidationError("input must not consist of digits only")
	ErrInvalidRating    = pkgerrors.NewValidationError("rating must be a decimal number")
	ErrInvalidDate      = pkgerrors.NewValidationError("date must be in dd.mm.yyyy format")
	ErrCatalogFailed    = pkgerrors.NewInternalError("movie catalog request failed")
)
