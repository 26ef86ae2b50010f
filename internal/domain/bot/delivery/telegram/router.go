// Package telegram contains Telegram delivery layer
package telegram

import (
	tgbot "github.com/go-telegram/bot"
	"github.com/rs/zerolog"

	infratelegram "github.com/yourusername/movie-search-bot/internal/infrastructure/telegram"
)

// Router registers Telegram bot handlers
type Router struct {
	handlers *Handlers
	logger   zerolog.Logger
}

// NewRouter creates new Telegram router
func NewRouter(handlers *Handlers, logger zerolog.Logger) *Router {
	return &Router{
		handlers: handlers,
		logger:   logger,
	}
}

// RegisterRoutes registers all command, callback and text handlers
func (r *Router) RegisterRoutes(bot *infratelegram.Bot) {
	raw := bot.Raw()

	raw.RegisterHandler(tgbot.HandlerTypeMessageText, "/start", tgbot.MatchTypeExact, r.handlers.Start())
	raw.RegisterHandler(tgbot.HandlerTypeMessageText, "/help", tgbot.MatchTypeExact, r.handlers.Help())
	raw.RegisterHandler(tgbot.HandlerTypeMessageText, "/stop", tgbot.MatchTypeExact, r.handlers.Stop())
	raw.RegisterHandler(tgbot.HandlerTypeMessageText, "/movie_search", tgbot.MatchTypeExact, r.handlers.MovieSearch())
	raw.RegisterHandler(tgbot.HandlerTypeMessageText, "/movie_by_genre", tgbot.MatchTypeExact, r.handlers.MovieByGenre())
	raw.RegisterHandler(tgbot.HandlerTypeMessageText, "/movie_by_rating", tgbot.MatchTypeExact, r.handlers.MovieByRating())
	raw.RegisterHandler(tgbot.HandlerTypeMessageText, "/low_budget_movie", tgbot.MatchTypeExact, r.handlers.LowBudget())
	raw.RegisterHandler(tgbot.HandlerTypeMessageText, "/high_budget_movie", tgbot.MatchTypeExact, r.handlers.HighBudget())
	raw.RegisterHandler(tgbot.HandlerTypeMessageText, "/history", tgbot.MatchTypeExact, r.handlers.History())
	raw.RegisterHandler(tgbot.HandlerTypeMessageText, "/favorites", tgbot.MatchTypeExact, r.handlers.Favorites())
	raw.RegisterHandler(tgbot.HandlerTypeMessageText, "/add_favorite", tgbot.MatchTypePrefix, r.handlers.AddFavorite())
	raw.RegisterHandler(tgbot.HandlerTypeMessageText, "/remove_favorite", tgbot.MatchTypePrefix, r.handlers.RemoveFavorite())

	// Текстовые кнопки reply-клавиатуры дублируют основные команды
	raw.RegisterHandler(tgbot.HandlerTypeMessageText, "Старт", tgbot.MatchTypeExact, r.handlers.Start())
	raw.RegisterHandler(tgbot.HandlerTypeMessageText, "Стоп", tgbot.MatchTypeExact, r.handlers.Stop())
	raw.RegisterHandler(tgbot.HandlerTypeMessageText, "Помощь", tgbot.MatchTypeExact, r.handlers.Help())

	raw.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, favoriteAddPrefix, tgbot.MatchTypePrefix, r.handlers.FavoriteCallback())
	raw.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, favoriteRemovePrefix, tgbot.MatchTypePrefix, r.handlers.FavoriteCallback())

	for _, token := range []string{
		tokenMovieSearch,
		tokenMovieByRating,
		tokenMovieByGenre,
		tokenLowBudget,
		tokenHighBudget,
		tokenHistory,
		tokenHelp,
		tokenShowFavorites,
	} {
		raw.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, token, tgbot.MatchTypeExact, r.handlers.MenuCallback())
	}

	// Свободный текст уходит в машину состояний
	bot.SetDefaultHandler(r.handlers.Text())

	r.logger.Info().Msg("All Telegram command handlers registered successfully")
}
