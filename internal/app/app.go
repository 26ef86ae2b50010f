// Package app contains application bootstrap
package app

import (
	"go.uber.org/fx"

	"github.com/yourusername/movie-search-bot/config"
	"github.com/yourusername/movie-search-bot/internal/domain"
	"github.com/yourusername/movie-search-bot/internal/infrastructure"
)

// CreateApp creates fx application with all modules
func CreateApp() fx.Option {
	return fx.Options(
		// Configuration
		fx.Provide(config.Out),

		// Infrastructure (logger, database, telegram bot)
		infrastructure.Module,

		// Domain (bot business logic)
		domain.Module,
	)
}
