// Package telegram contains Telegram delivery handlers
package telegram

import (
	"context"
	"strings"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"

	"github.com/yourusername/movie-search-bot/internal/domain/bot/dto"
	"github.com/yourusername/movie-search-bot/internal/domain/bot/format"
	"github.com/yourusername/movie-search-bot/internal/domain/bot/usecase/buissines"
)

// RequestTimeout bounds a single Telegram API call
const RequestTimeout = 30 * time.Second

const (
	msgCommandError = "Ошибка при обработке команды. Попробуйте позже."
	answerError     = "Произошла ошибка. Попробуйте позже."
)

// commandFunc is a use case entry point invoked for one inbound command
type commandFunc func(ctx context.Context, req *dto.CommandRequest) (*dto.Reply, error)

// Handlers contains Telegram command handlers
type Handlers struct {
	uc     *buissines.UseCase
	bot    *tgbot.Bot
	logger zerolog.Logger
}

// NewHandlers creates new Telegram handlers
func NewHandlers(uc *buissines.UseCase, bot *tgbot.Bot, logger zerolog.Logger) *Handlers {
	return &Handlers{
		uc:     uc,
		bot:    bot,
		logger: logger,
	}
}

// Start handles /start
func (h *Handlers) Start() tgbot.HandlerFunc {
	return h.command("/start", h.uc.Start)
}

// Help handles /help
func (h *Handlers) Help() tgbot.HandlerFunc {
	return h.command("/help", func(ctx context.Context, _ *dto.CommandRequest) (*dto.Reply, error) {
		return h.uc.Help(ctx)
	})
}

// Stop handles /stop
func (h *Handlers) Stop() tgbot.HandlerFunc {
	return h.command("/stop", h.uc.Stop)
}

// MovieSearch handles /movie_search
func (h *Handlers) MovieSearch() tgbot.HandlerFunc {
	return h.command("/movie_search", h.uc.BeginNameSearch)
}

// MovieByGenre handles /movie_by_genre
func (h *Handlers) MovieByGenre() tgbot.HandlerFunc {
	return h.command("/movie_by_genre", h.uc.BeginGenreSearch)
}

// MovieByRating handles /movie_by_rating
func (h *Handlers) MovieByRating() tgbot.HandlerFunc {
	return h.command("/movie_by_rating", h.uc.BeginRatingSearch)
}

// History handles /history
func (h *Handlers) History() tgbot.HandlerFunc {
	return h.command("/history", h.uc.BeginHistory)
}

// LowBudget handles /low_budget_movie
func (h *Handlers) LowBudget() tgbot.HandlerFunc {
	return h.command("/low_budget_movie", h.uc.LowBudget)
}

// HighBudget handles /high_budget_movie
func (h *Handlers) HighBudget() tgbot.HandlerFunc {
	return h.command("/high_budget_movie", h.uc.HighBudget)
}

// Favorites handles /favorites
func (h *Handlers) Favorites() tgbot.HandlerFunc {
	return h.command("/favorites", h.uc.ListFavorites)
}

// AddFavorite handles /add_favorite <movie_id>
func (h *Handlers) AddFavorite() tgbot.HandlerFunc {
	return h.command("/add_favorite", func(ctx context.Context, req *dto.CommandRequest) (*dto.Reply, error) {
		return h.uc.AddFavorite(ctx, req, commandArgument(req.Text))
	})
}

// RemoveFavorite handles /remove_favorite <movie_id>
func (h *Handlers) RemoveFavorite() tgbot.HandlerFunc {
	return h.command("/remove_favorite", func(ctx context.Context, req *dto.CommandRequest) (*dto.Reply, error) {
		return h.uc.RemoveFavorite(ctx, req, commandArgument(req.Text))
	})
}

// Text handles free text: the answer to whatever conversation step is pending
func (h *Handlers) Text() tgbot.HandlerFunc {
	return h.command("text", h.uc.ConsumeText)
}

// FavoriteCallback handles the add_fav:/remove_fav: inline buttons
func (h *Handlers) FavoriteCallback() tgbot.HandlerFunc {
	return func(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
		cb := update.CallbackQuery
		if cb == nil {
			return
		}
		defer h.recover(cb.From.ID, "favorite_callback")

		action, movieID, ok := strings.Cut(cb.Data, ":")
		if !ok {
			h.answerCallback(ctx, cb.ID, answerError)
			return
		}

		h.logger.Info().
			Int64("user_id", cb.From.ID).
			Str("callback_data", cb.Data).
			Msg("Favorite button pressed")

		req := &dto.CallbackRequest{
			UserID:  cb.From.ID,
			ChatID:  callbackChatID(cb),
			Action:  action,
			MovieID: movieID,
		}

		reply, err := h.uc.ToggleFavorite(ctx, req)
		if err != nil {
			h.logError(cb.From.ID, "favorite_callback", err)
			h.answerCallback(ctx, cb.ID, answerError)
			return
		}

		h.answerCallback(ctx, cb.ID, reply.Answer)

		if reply.Favorite != nil && cb.Message.Message != nil {
			msgCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
			defer cancel()

			_, err := h.bot.EditMessageReplyMarkup(msgCtx, &tgbot.EditMessageReplyMarkupParams{
				ChatID:      cb.Message.Message.Chat.ID,
				MessageID:   cb.Message.Message.ID,
				ReplyMarkup: favoriteKeyboard(reply.Favorite.MovieID, reply.Favorite.IsFavorite),
			})
			if err != nil {
				h.logger.Warn().Err(err).Int64("user_id", cb.From.ID).Msg("Failed to update favorite button")
			}
		}
	}
}

// MenuCallback handles the main menu inline buttons
func (h *Handlers) MenuCallback() tgbot.HandlerFunc {
	return func(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
		cb := update.CallbackQuery
		if cb == nil {
			return
		}
		defer h.recover(cb.From.ID, "menu_callback")

		h.logger.Info().
			Int64("user_id", cb.From.ID).
			Str("callback_data", cb.Data).
			Msg("Menu button pressed")

		h.answerCallback(ctx, cb.ID, "")

		req := &dto.CommandRequest{
			UserID:    cb.From.ID,
			ChatID:    callbackChatID(cb),
			Username:  cb.From.Username,
			FirstName: cb.From.FirstName,
		}

		var (
			reply *dto.Reply
			err   error
		)
		switch cb.Data {
		case tokenMovieSearch:
			reply, err = h.uc.BeginNameSearch(ctx, req)
		case tokenMovieByRating:
			reply, err = h.uc.BeginRatingSearch(ctx, req)
		case tokenMovieByGenre:
			reply, err = h.uc.BeginGenreSearch(ctx, req)
		case tokenLowBudget:
			reply, err = h.uc.LowBudget(ctx, req)
		case tokenHighBudget:
			reply, err = h.uc.HighBudget(ctx, req)
		case tokenHistory:
			reply, err = h.uc.BeginHistory(ctx, req)
		case tokenHelp:
			reply, err = h.uc.Help(ctx)
		case tokenShowFavorites:
			reply, err = h.uc.ListFavorites(ctx, req)
		default:
			h.logger.Warn().Str("callback_data", cb.Data).Msg("Unknown menu token")
			return
		}
		if err != nil {
			h.logError(cb.From.ID, cb.Data, err)
			h.sendText(ctx, req.ChatID, msgCommandError)
			return
		}

		h.sendReply(ctx, req.ChatID, reply)
	}
}

// command wraps a use case call with request extraction, panic recovery
// and delivery of the produced reply
func (h *Handlers) command(name string, fn commandFunc) tgbot.HandlerFunc {
	return func(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
		if update.Message == nil || update.Message.From == nil {
			return
		}

		req := &dto.CommandRequest{
			UserID:    update.Message.From.ID,
			ChatID:    update.Message.Chat.ID,
			Username:  update.Message.From.Username,
			FirstName: update.Message.From.FirstName,
			Text:      update.Message.Text,
		}

		defer h.recoverWithReply(ctx, req, name)

		h.logCommand(req.UserID, name, "processing")

		reply, err := fn(ctx, req)
		if err != nil {
			h.logError(req.UserID, name, err)
			h.sendText(ctx, req.ChatID, msgCommandError)
			return
		}

		h.sendReply(ctx, req.ChatID, reply)
		h.logCommand(req.UserID, name, "success")
	}
}

// sendReply delivers all reply messages, paginating each one. The inline
// keyboard, when present, is attached to the last sent chunk, the control
// keyboard to the first one.
func (h *Handlers) sendReply(ctx context.Context, chatID int64, reply *dto.Reply) {
	if reply == nil || len(reply.Messages) == 0 {
		return
	}

	var markup models.ReplyMarkup
	if reply.Favorite != nil {
		markup = favoriteKeyboard(reply.Favorite.MovieID, reply.Favorite.IsFavorite)
	} else if reply.MainMenu {
		markup = mainMenuKeyboard()
	}

	var parts []string
	for _, message := range reply.Messages {
		parts = append(parts, format.Split(message, format.MaxMessageLength)...)
	}

	for i, part := range parts {
		params := &tgbot.SendMessageParams{
			ChatID: chatID,
			Text:   part,
		}
		switch {
		case markup != nil && i == len(parts)-1:
			params.ReplyMarkup = markup
		case reply.ControlKeyboard && i == 0:
			params.ReplyMarkup = controlKeyboard()
		}

		msgCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
		_, err := h.bot.SendMessage(msgCtx, params)
		cancel()
		if err != nil {
			h.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send message")
			return
		}
	}
}

func (h *Handlers) sendText(ctx context.Context, chatID int64, text string) {
	h.sendReply(ctx, chatID, dto.TextReply(text))
}

func (h *Handlers) answerCallback(ctx context.Context, callbackID, text string) {
	msgCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	_, err := h.bot.AnswerCallbackQuery(msgCtx, &tgbot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
	})
	if err != nil {
		h.logger.Warn().Err(err).Msg("Failed to answer callback query")
	}
}

// recoverWithReply converts a handler panic into a logged error and an
// apology message. One bad update must not kill the process.
func (h *Handlers) recoverWithReply(ctx context.Context, req *dto.CommandRequest, command string) {
	if r := recover(); r != nil {
		h.logger.Error().
			Int64("user_id", req.UserID).
			Str("command", command).
			Interface("panic", r).
			Msg("Recovered from panic in handler")
		h.sendText(ctx, req.ChatID, msgCommandError)
	}
}

func (h *Handlers) recover(userID int64, command string) {
	if r := recover(); r != nil {
		h.logger.Error().
			Int64("user_id", userID).
			Str("command", command).
			Interface("panic", r).
			Msg("Recovered from panic in handler")
	}
}

func (h *Handlers) logCommand(userID int64, command, result string) {
	h.logger.Info().Int64("user_id", userID).Str("command", command).Str("result", result).Msg("Telegram command processed")
}

func (h *Handlers) logError(userID int64, command string, err error) {
	h.logger.Error().Int64("user_id", userID).Str("command", command).Err(err).Msg("Telegram command failed")
}

// commandArgument returns the first argument after the command itself
func commandArgument(text string) string {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return ""
	}
	return fields[1]
}

// callbackChatID resolves the chat of a callback, falling back to the
// pressing user when the source message is inaccessible
func callbackChatID(cb *models.CallbackQuery) int64 {
	if cb.Message.Message != nil {
		return cb.Message.Message.Chat.ID
	}
	return cb.From.ID
}
