package telegram

import (
	"github.com/go-telegram/bot/models"
)

// Callback tokens of the main menu buttons
const (
	tokenMovieSearch   = "movie_search"
	tokenMovieByRating = "movie_by_rating"
	tokenMovieByGenre  = "movie_by_genre"
	tokenLowBudget     = "low_budget_movie"
	tokenHighBudget    = "high_budget_movie"
	tokenHistory       = "history"
	tokenHelp          = "help"
	tokenShowFavorites = "show_favorites"

	favoriteAddPrefix    = "add_fav:"
	favoriteRemovePrefix = "remove_fav:"
)

// mainMenuKeyboard builds the inline menu attached to /start and /help replies
func mainMenuKeyboard() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{
				{Text: "Поиск по названию", CallbackData: tokenMovieSearch},
				{Text: "Поиск по рейтингу", CallbackData: tokenMovieByRating},
			},
			{
				{Text: "Поиск по жанру", CallbackData: tokenMovieByGenre},
				{Text: "Низкий бюджет", CallbackData: tokenLowBudget},
			},
			{
				{Text: "Высокий бюджет", CallbackData: tokenHighBudget},
				{Text: "История", CallbackData: tokenHistory},
			},
			{
				{Text: "Просмотр избранного", CallbackData: tokenShowFavorites},
			},
		},
	}
}

// controlKeyboard builds the persistent reply keyboard attached on /start.
// Its buttons arrive as plain text and are routed as command aliases.
func controlKeyboard() *models.ReplyKeyboardMarkup {
	return &models.ReplyKeyboardMarkup{
		Keyboard: [][]models.KeyboardButton{
			{
				{Text: "Старт"},
				{Text: "Стоп"},
				{Text: "Помощь"},
			},
		},
		ResizeKeyboard: true,
	}
}

// favoriteKeyboard builds the favorite-toggle button under a movie card.
// The label reflects the current stored state.
func favoriteKeyboard(movieID string, isFavorite bool) *models.InlineKeyboardMarkup {
	button := models.InlineKeyboardButton{
		Text:         "Добавить в избранное",
		CallbackData: favoriteAddPrefix + movieID,
	}
	if isFavorite {
		button = models.InlineKeyboardButton{
			Text:         "Удалить из избранного",
			CallbackData: favoriteRemovePrefix + movieID,
		}
	}

	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{{button}},
	}
}
