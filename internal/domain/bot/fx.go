// Package bot contains the bot domain module
package bot

import (
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/yourusername/movie-search-bot/config"
	telegramDelivery "github.com/yourusername/movie-search-bot/internal/domain/bot/delivery/telegram"
	"github.com/yourusername/movie-search-bot/internal/domain/bot/deps"
	"github.com/yourusername/movie-search-bot/internal/domain/bot/repository/kinopoisk"
	"github.com/yourusername/movie-search-bot/internal/domain/bot/repository/persistent"
	"github.com/yourusername/movie-search-bot/internal/domain/bot/states"
	"github.com/yourusername/movie-search-bot/internal/domain/bot/usecase/buissines"
	"github.com/yourusername/movie-search-bot/internal/infrastructure/telegram"
)

// Module provides bot domain components for fx dependency injection
var Module = fx.Module("bot",
	// Repositories
	fx.Provide(persistent.NewUserRepository),
	fx.Provide(persistent.NewHistoryRepository),
	fx.Provide(persistent.NewFavoriteRepository),
	fx.Provide(provideCatalog),

	// Conversation state
	fx.Provide(states.NewStore),

	// UseCase
	fx.Provide(buissines.NewUseCase),

	// Delivery
	fx.Provide(provideTelegramHandlers),
	fx.Provide(telegramDelivery.NewRouter),

	fx.Invoke(registerRoutes),
)

// provideCatalog binds the Kinopoisk client as the movie catalog
func provideCatalog(cfg *config.KinopoiskConfig, logger zerolog.Logger) deps.MovieCatalog {
	return kinopoisk.NewClient(cfg, logger)
}

// provideTelegramHandlers creates Telegram handlers with the raw bot
func provideTelegramHandlers(uc *buissines.UseCase, bot *telegram.Bot, logger zerolog.Logger) *telegramDelivery.Handlers {
	return telegramDelivery.NewHandlers(uc, bot.Raw(), logger)
}

// registerRoutes wires all command and callback routes onto the bot
func registerRoutes(router *telegramDelivery.Router, bot *telegram.Bot) {
	router.RegisterRoutes(bot)
}
