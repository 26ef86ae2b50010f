// Package buissines contains business logic for the bot domain
package buissines

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/yourusername/movie-search-bot/internal/domain/bot/deps"
	"github.com/yourusername/movie-search-bot/internal/domain/bot/dto"
	"github.com/yourusername/movie-search-bot/internal/domain/bot/entities"
	boterrors "github.com/yourusername/movie-search-bot/internal/domain/bot/errors"
	"github.com/yourusername/movie-search-bot/internal/domain/bot/format"
	"github.com/yourusername/movie-search-bot/internal/domain/bot/states"
)

const (
	genreResultLimit  = 5
	ratingResultLimit = 10
	budgetResultLimit = 5
	historyLimit      = 10

	historyDateLayout = "02.01.2006"
)

const (
	msgBotStarted = "Бот запущен! Используйте кнопки для управления."
	msgWelcome    = "Привет! Я бот для поиска фильмов.\nИспользуйте клавиатуру или /help для просмотра команд."
	msgHelp       = "Доступные команды:\n" +
		"/movie_search - Поиск фильма по названию\n" +
		"/movie_by_rating - Поиск фильмов по рейтингу\n" +
		"/movie_by_genre - Поиск фильма по жанру\n" +
		"/low_budget_movie - Фильмы с низким бюджетом\n" +
		"/high_budget_movie - Фильмы с высоким бюджетом\n" +
		"/history - История запросов\n" +
		"/favorites - Просмотр избранного\n" +
		"/help - Вывод этого сообщения\n\n" +
		"Выберите команду с помощью кнопок ниже."
	msgStopped = "Обработка остановлена. Для возобновления нажмите /start."
	msgUnknown = "Неизвестная команда. Используйте /help для просмотра команд."

	msgAskName        = "Введите название фильма:"
	msgAskGenre       = "Введите жанр фильма (например: комедия, боевик, фантастика):"
	msgAskRating      = "Введите минимальный рейтинг IMDB (например, 7.5):"
	msgAskHistoryDate = "Введите дату в формате дд.мм.гггг для фильтрации истории или 'все' для всей истории:"

	msgEmptyName     = "Пожалуйста, введите название фильма."
	msgDigitsName    = "Название не может состоять только из цифр. Попробуйте снова."
	msgEmptyGenre    = "Вы не ввели жанр. Пожалуйста, попробуйте снова."
	msgDigitsGenre   = "Жанр не может состоять только из цифр. Пожалуйста, введите корректный жанр."
	msgBadRating     = "Некорректный формат. Введите число, например, 7.5."
	msgBadDate       = "Неверный формат даты. Введите дату в формате дд.мм.гггг или 'все'. Попробуйте снова."
	msgAPIError      = "Ошибка при обращении к API. Попробуйте позже."
	msgNameNotFound  = "Фильмы с таким названием не найдены. Попробуйте другой запрос."
	msgGenreNotFound = "Фильмы по такому жанру не найдены. Попробуйте другой жанр."
	msgNothingFound  = "По вашему запросу фильмы не найдены."
	msgLowNotFound   = "Фильмы с низким бюджетом не найдены."
	msgHighNotFound  = "Фильмы с высоким бюджетом не найдены."
	msgHistoryEmpty  = "По вашему запросу история пустая."

	msgFavoritesEmpty     = "Ваш список избранных фильмов пуст."
	msgFavoritesHeader    = "Ваши избранные фильмы:\n\n"
	msgAlreadyFavorite    = "Этот фильм уже добавлен в избранное."
	msgFavoriteFetchFail  = "Не удалось получить данные фильма по ID."
	msgAddFavoriteUsage   = "Неверный формат команды. Используйте:\n/add_favorite <movie_id>"
	msgRemoveFavUsage     = "Неверный формат команды. Используйте:\n/remove_favorite <movie_id>"
	msgFavoriteNotInList  = "Фильм не найден в вашем избранном."
	msgLowBudgetHeader    = "Фильмы с низким бюджетом:\n\n"
	msgHighBudgetHeader   = "Фильмы с высоким бюджетом:\n\n"
	msgBudgetDataWarning  = "⚠️ На Кинопоиске отсутствуют точные данные о бюджете фильмов, поэтому результаты могут содержать неточную информацию.\n\n"

	answerAdded        = "Добавлено в избранное"
	answerRemoved      = "Удалено из избранного"
	answerAlreadyFav   = "Фильм уже в избранном"
	answerNotInFav     = "Фильм не найден в избранном"
	answerFetchFailed  = "Не удалось получить данные фильма"
	answerUnknownToken = "Неизвестное действие"
)

// UseCase contains business logic for bot operations
type UseCase struct {
	catalog   deps.MovieCatalog
	users     deps.UserRepository
	history   deps.HistoryRepository
	favorites deps.FavoriteRepository
	states    *states.Store
	logger    zerolog.Logger
}

// NewUseCase creates a new UseCase instance
func NewUseCase(
	catalog deps.MovieCatalog,
	users deps.UserRepository,
	history deps.HistoryRepository,
	favorites deps.FavoriteRepository,
	store *states.Store,
	logger zerolog.Logger,
) *UseCase {
	return &UseCase{
		catalog:   catalog,
		users:     users,
		history:   history,
		favorites: favorites,
		states:    store,
		logger:    logger,
	}
}

// Start handles /start: registers the user and greets with the control
// keyboard and the main menu
func (uc *UseCase) Start(ctx context.Context, req *dto.CommandRequest) (*dto.Reply, error) {
	uc.logger.Info().
		Int64("user_id", req.UserID).
		Str("username", req.Username).
		Msg("User started bot")

	if _, err := uc.ensureUser(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	return &dto.Reply{
		Messages:        []string{msgBotStarted, msgWelcome},
		MainMenu:        true,
		ControlKeyboard: true,
	}, nil
}

// Help handles /help: command list with the main menu
func (uc *UseCase) Help(ctx context.Context) (*dto.Reply, error) {
	return &dto.Reply{Messages: []string{msgHelp}, MainMenu: true}, nil
}

// Stop handles /stop: drops any pending conversation state
func (uc *UseCase) Stop(ctx context.Context, req *dto.CommandRequest) (*dto.Reply, error) {
	uc.states.Clear(uc.stateKey(req.UserID, req.ChatID))

	uc.logger.Info().Int64("user_id", req.UserID).Msg("User stopped bot")
	return dto.TextReply(msgStopped), nil
}

// BeginNameSearch handles /movie_search: prompts for a movie title
func (uc *UseCase) BeginNameSearch(ctx context.Context, req *dto.CommandRequest) (*dto.Reply, error) {
	uc.states.Set(uc.stateKey(req.UserID, req.ChatID), states.AwaitingMovieName)
	return dto.TextReply(msgAskName), nil
}

// BeginGenreSearch handles /movie_by_genre: prompts for a genre
func (uc *UseCase) BeginGenreSearch(ctx context.Context, req *dto.CommandRequest) (*dto.Reply, error) {
	uc.states.Set(uc.stateKey(req.UserID, req.ChatID), states.AwaitingGenre)
	return dto.TextReply(msgAskGenre), nil
}

// BeginRatingSearch handles /movie_by_rating: prompts for a minimum rating
func (uc *UseCase) BeginRatingSearch(ctx context.Context, req *dto.CommandRequest) (*dto.Reply, error) {
	uc.states.Set(uc.stateKey(req.UserID, req.ChatID), states.AwaitingRating)
	return dto.TextReply(msgAskRating), nil
}

// BeginHistory handles /history: prompts for a date filter
func (uc *UseCase) BeginHistory(ctx context.Context, req *dto.CommandRequest) (*dto.Reply, error) {
	uc.states.Set(uc.stateKey(req.UserID, req.ChatID), states.AwaitingHistoryDate)
	return dto.TextReply(msgAskHistoryDate), nil
}

// ConsumeText routes free text to the pending conversation step.
// Text outside any conversation gets a command hint.
func (uc *UseCase) ConsumeText(ctx context.Context, req *dto.CommandRequest) (*dto.Reply, error) {
	key := uc.stateKey(req.UserID, req.ChatID)

	switch uc.states.Get(key) {
	case states.AwaitingMovieName:
		return uc.finishNameSearch(ctx, req, key)
	case states.AwaitingGenre:
		return uc.finishGenreSearch(ctx, req, key)
	case states.AwaitingRating:
		return uc.finishRatingSearch(ctx, req, key)
	case states.AwaitingHistoryDate:
		return uc.finishHistory(ctx, req, key)
	default:
		return dto.TextReply(msgUnknown), nil
	}
}

// finishNameSearch consumes the movie title. An empty catalog result keeps
// the state so the user can retry with another title.
func (uc *UseCase) finishNameSearch(ctx context.Context, req *dto.CommandRequest, key states.Key) (*dto.Reply, error) {
	name, vErr := validateSearchInput(req.Text)
	if vErr != nil {
		if errors.Is(vErr, boterrors.ErrDigitsOnlyInput) {
			return dto.TextReply(msgDigitsName), nil
		}
		return dto.TextReply(msgEmptyName), nil
	}

	uc.logger.Info().Str("query", name).Int64("user_id", req.UserID).Msg("Searching movies by name")

	// Попытка фиксируется в истории до обращения к каталогу
	entry := uc.recordHistory(ctx, req, name, "/movie_search")

	movies, err := uc.catalog.SearchByName(ctx, name)
	if err != nil {
		uc.logger.Error().Err(err).Str("query", name).Msg("Name search failed")
		uc.states.Clear(key)
		return dto.TextReply(msgAPIError), nil
	}

	if len(movies) == 0 {
		// Состояние сохраняем, чтобы дать возможность повторить ввод
		return dto.TextReply(msgNameNotFound), nil
	}

	top := &movies[0]
	uc.attachSnapshot(ctx, entry, top)
	uc.states.Clear(key)

	isFavorite, err := uc.isFavorite(ctx, req, top.ExternalID())
	if err != nil {
		uc.logger.Error().Err(err).Msg("Failed to check favorite status")
	}

	return &dto.Reply{
		Messages: []string{format.Movie(top)},
		Favorite: &dto.FavoriteButton{MovieID: top.ExternalID(), IsFavorite: isFavorite},
	}, nil
}

// finishGenreSearch consumes the genre. The state clears regardless of
// whether anything was found.
func (uc *UseCase) finishGenreSearch(ctx context.Context, req *dto.CommandRequest, key states.Key) (*dto.Reply, error) {
	input, vErr := validateSearchInput(req.Text)
	if vErr != nil {
		if errors.Is(vErr, boterrors.ErrDigitsOnlyInput) {
			return dto.TextReply(msgDigitsGenre), nil
		}
		return dto.TextReply(msgEmptyGenre), nil
	}

	genre := strings.ToLower(input)
	uc.logger.Info().Str("genre", genre).Int64("user_id", req.UserID).Msg("Searching movies by genre")

	uc.recordHistory(ctx, req, req.Text, "/movie_by_genre")

	movies, err := uc.catalog.SearchByGenre(ctx, genre)
	if err != nil {
		uc.logger.Error().Err(err).Str("genre", genre).Msg("Genre search failed")
		uc.states.Clear(key)
		return dto.TextReply(msgAPIError), nil
	}

	uc.states.Clear(key)

	if len(movies) == 0 {
		return dto.TextReply(msgGenreNotFound), nil
	}
	if len(movies) > genreResultLimit {
		movies = movies[:genreResultLimit]
	}

	reply := fmt.Sprintf("Фильмы жанра '%s':\n\n", genre) + format.MovieList(movies)
	return dto.TextReply(reply), nil
}

// finishRatingSearch consumes the minimum rating. Both '.' and ',' are
// accepted as the decimal separator.
func (uc *UseCase) finishRatingSearch(ctx context.Context, req *dto.CommandRequest, key states.Key) (*dto.Reply, error) {
	minRating, vErr := parseMinRating(req.Text)
	if vErr != nil {
		return dto.TextReply(msgBadRating), nil
	}

	uc.logger.Info().Float64("min_rating", minRating).Int64("user_id", req.UserID).Msg("Searching movies by rating")

	uc.recordHistory(ctx, req, req.Text, "/movie_by_rating")

	movies, err := uc.catalog.SearchByMinRating(ctx, minRating, ratingResultLimit)
	if err != nil {
		uc.logger.Error().Err(err).Float64("min_rating", minRating).Msg("Rating search failed")
		uc.states.Clear(key)
		return dto.TextReply(msgAPIError), nil
	}

	uc.states.Clear(key)

	if len(movies) == 0 {
		return dto.TextReply(msgNothingFound), nil
	}
	return dto.TextReply(format.MovieList(movies)), nil
}

// finishHistory consumes the date filter and renders one message per entry
func (uc *UseCase) finishHistory(ctx context.Context, req *dto.CommandRequest, key states.Key) (*dto.Reply, error) {
	input := strings.ToLower(strings.TrimSpace(req.Text))

	user, err := uc.ensureUser(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	var entries []entities.SearchHistory
	if input == "все" {
		entries, err = uc.history.ListByUser(ctx, user.ID, historyLimit)
	} else {
		date, parseErr := parseHistoryDate(input)
		if parseErr != nil {
			return dto.TextReply(msgBadDate), nil
		}
		entries, err = uc.history.ListByUserAndDate(ctx, user.ID, date, historyLimit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	uc.states.Clear(key)

	if len(entries) == 0 {
		return dto.TextReply(msgHistoryEmpty), nil
	}

	messages := make([]string, len(entries))
	for i := range entries {
		messages[i] = format.HistoryEntry(&entries[i])
	}
	return &dto.Reply{Messages: messages}, nil
}

// LowBudget handles /low_budget_movie: no conversation state involved
func (uc *UseCase) LowBudget(ctx context.Context, req *dto.CommandRequest) (*dto.Reply, error) {
	return uc.budgetSearch(ctx, req, entities.BudgetLow)
}

// HighBudget handles /high_budget_movie
func (uc *UseCase) HighBudget(ctx context.Context, req *dto.CommandRequest) (*dto.Reply, error) {
	return uc.budgetSearch(ctx, req, entities.BudgetHigh)
}

func (uc *UseCase) budgetSearch(ctx context.Context, req *dto.CommandRequest, tier entities.BudgetTier) (*dto.Reply, error) {
	command := "/low_budget_movie"
	header := msgBudgetDataWarning + msgLowBudgetHeader
	notFound := msgLowNotFound
	if tier == entities.BudgetHigh {
		command = "/high_budget_movie"
		header = msgHighBudgetHeader
		notFound = msgHighNotFound
	}

	uc.logger.Info().Str("tier", string(tier)).Int64("user_id", req.UserID).Msg("Searching movies by budget")

	uc.recordHistory(ctx, req, command, command)

	movies, err := uc.catalog.SearchByBudget(ctx, tier, budgetResultLimit)
	if err != nil {
		uc.logger.Error().Err(err).Str("tier", string(tier)).Msg("Budget search failed")
		return dto.TextReply(msgAPIError), nil
	}

	if len(movies) == 0 {
		return dto.TextReply(notFound), nil
	}
	return dto.TextReply(header + format.MovieList(movies)), nil
}

// AddFavorite handles /add_favorite <id>: checks for a duplicate first,
// then fetches fresh movie detail and stores the snapshot.
func (uc *UseCase) AddFavorite(ctx context.Context, req *dto.CommandRequest, movieID string) (*dto.Reply, error) {
	if movieID == "" {
		return dto.TextReply(msgAddFavoriteUsage), nil
	}

	user, err := uc.ensureUser(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	movie, err := uc.addFavorite(ctx, user, movieID)
	switch {
	case err == nil:
	case errors.Is(err, boterrors.ErrAlreadyFavorite):
		return dto.TextReply(msgAlreadyFavorite), nil
	case errors.Is(err, boterrors.ErrMovieNotFound), errors.Is(err, boterrors.ErrCatalogFailed):
		return dto.TextReply(msgFavoriteFetchFail), nil
	default:
		return nil, err
	}

	uc.logger.Info().
		Int64("user_id", req.UserID).
		Str("movie_id", movieID).
		Msg("Movie added to favorites")

	return dto.TextReply(fmt.Sprintf("Фильм \"%s\" добавлен в избранное.", movie.Name)), nil
}

// RemoveFavorite handles /remove_favorite <id>. A missing favorite is
// reported to the user, not treated as an error.
func (uc *UseCase) RemoveFavorite(ctx context.Context, req *dto.CommandRequest, movieID string) (*dto.Reply, error) {
	if movieID == "" {
		return dto.TextReply(msgRemoveFavUsage), nil
	}

	user, err := uc.ensureUser(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	if err := uc.removeFavorite(ctx, user, movieID); err != nil {
		if errors.Is(err, boterrors.ErrFavoriteNotFound) {
			return dto.TextReply(msgFavoriteNotInList), nil
		}
		return nil, err
	}

	uc.logger.Info().
		Int64("user_id", req.UserID).
		Str("movie_id", movieID).
		Msg("Movie removed from favorites")

	return dto.TextReply(fmt.Sprintf("Фильм с ID %s удалён из избранного.", movieID)), nil
}

// ListFavorites handles /favorites: renders stored snapshots without
// re-fetching anything from the catalog.
func (uc *UseCase) ListFavorites(ctx context.Context, req *dto.CommandRequest) (*dto.Reply, error) {
	user, err := uc.ensureUser(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	favorites, err := uc.favorites.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	if len(favorites) == 0 {
		return dto.TextReply(msgFavoritesEmpty), nil
	}

	return dto.TextReply(msgFavoritesHeader + format.FavoriteList(favorites)), nil
}

// ToggleFavorite handles the add_fav/remove_fav inline buttons.
// The button state is recomputed from storage after the write.
func (uc *UseCase) ToggleFavorite(ctx context.Context, req *dto.CallbackRequest) (*dto.CallbackReply, error) {
	user, err := uc.users.GetOrCreate(ctx, strconv.FormatInt(req.UserID, 10), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	var answer string
	switch req.Action {
	case "add_fav":
		answer, err = uc.addFavoriteByCallback(ctx, user, req.MovieID)
	case "remove_fav":
		answer, err = uc.removeFavoriteByCallback(ctx, user, req.MovieID)
	default:
		return &dto.CallbackReply{Answer: answerUnknownToken}, nil
	}
	if err != nil {
		return nil, err
	}

	isFavorite, err := uc.favorites.Exists(ctx, user.ID, req.MovieID)
	if err != nil {
		return nil, fmt.Errorf("failed to recheck favorite: %w", err)
	}

	return &dto.CallbackReply{
		Answer:   answer,
		Favorite: &dto.FavoriteButton{MovieID: req.MovieID, IsFavorite: isFavorite},
	}, nil
}

func (uc *UseCase) addFavoriteByCallback(ctx context.Context, user *entities.User, movieID string) (string, error) {
	_, err := uc.addFavorite(ctx, user, movieID)
	switch {
	case err == nil:
		return answerAdded, nil
	case errors.Is(err, boterrors.ErrAlreadyFavorite):
		return answerAlreadyFav, nil
	case errors.Is(err, boterrors.ErrMovieNotFound), errors.Is(err, boterrors.ErrCatalogFailed):
		return answerFetchFailed, nil
	default:
		return "", err
	}
}

func (uc *UseCase) removeFavoriteByCallback(ctx context.Context, user *entities.User, movieID string) (string, error) {
	if err := uc.removeFavorite(ctx, user, movieID); err != nil {
		if errors.Is(err, boterrors.ErrFavoriteNotFound) {
			return answerNotInFav, nil
		}
		return "", err
	}
	return answerRemoved, nil
}

// addFavorite stores a snapshot of the movie in the user's favorites.
// Returns boterrors.ErrAlreadyFavorite for a duplicate and the catalog
// error when the movie detail could not be fetched.
func (uc *UseCase) addFavorite(ctx context.Context, user *entities.User, movieID string) (*entities.Movie, error) {
	exists, err := uc.favorites.Exists(ctx, user.ID, movieID)
	if err != nil {
		return nil, fmt.Errorf("failed to check favorite: %w", err)
	}
	if exists {
		return nil, boterrors.ErrAlreadyFavorite
	}

	movie, err := uc.catalog.GetByID(ctx, movieID)
	if err != nil {
		uc.logger.Error().Err(err).Str("movie_id", movieID).Msg("Failed to fetch movie detail")
		return nil, err
	}

	if err := uc.favorites.Add(ctx, favoriteSnapshot(user.ID, movieID, movie)); err != nil {
		return nil, fmt.Errorf("failed to add favorite: %w", err)
	}
	return movie, nil
}

// removeFavorite returns boterrors.ErrFavoriteNotFound when nothing was stored
func (uc *UseCase) removeFavorite(ctx context.Context, user *entities.User, movieID string) error {
	removed, err := uc.favorites.Remove(ctx, user.ID, movieID)
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	if !removed {
		return boterrors.ErrFavoriteNotFound
	}
	return nil
}

// recordHistory inserts a history entry before the catalog is asked,
// best effort. Returns the entry so a snapshot can be attached later.
func (uc *UseCase) recordHistory(ctx context.Context, req *dto.CommandRequest, query, command string) *entities.SearchHistory {
	user, err := uc.ensureUser(ctx, req)
	if err != nil {
		uc.logger.Error().Err(err).Int64("user_id", req.UserID).Msg("Failed to resolve user for history")
		return nil
	}

	entry := &entities.SearchHistory{
		UserID:    user.ID,
		Query:     query,
		Command:   &command,
		CreatedAt: time.Now(),
	}

	if err := uc.history.Insert(ctx, entry); err != nil {
		uc.logger.Error().Err(err).Str("query", query).Msg("Failed to record history")
		return nil
	}

	uc.logger.Info().
		Str("user_id", user.UserID).
		Str("query", query).
		Msg("History recorded")
	return entry
}

// attachSnapshot fills the movie snapshot of an already recorded entry
func (uc *UseCase) attachSnapshot(ctx context.Context, entry *entities.SearchHistory, movie *entities.Movie) {
	if entry == nil {
		return
	}

	applyMovieSnapshot(entry, movie)
	if err := uc.history.Update(ctx, entry); err != nil {
		uc.logger.Error().Err(err).Str("query", entry.Query).Msg("Failed to attach history snapshot")
	}
}

func (uc *UseCase) ensureUser(ctx context.Context, req *dto.CommandRequest) (*entities.User, error) {
	return uc.users.GetOrCreate(
		ctx,
		strconv.FormatInt(req.UserID, 10),
		strPtrOrNil(req.Username),
		strPtrOrNil(req.FirstName),
	)
}

func (uc *UseCase) isFavorite(ctx context.Context, req *dto.CommandRequest, movieID string) (bool, error) {
	user, err := uc.ensureUser(ctx, req)
	if err != nil {
		return false, err
	}
	return uc.favorites.Exists(ctx, user.ID, movieID)
}

func (uc *UseCase) stateKey(userID, chatID int64) states.Key {
	return states.Key{UserID: userID, ChatID: chatID}
}

// favoriteSnapshot denormalizes a movie into a favorites row
func favoriteSnapshot(userID uint, movieID string, m *entities.Movie) *entities.FavoriteMovie {
	title := m.Name
	if title == "" {
		title = m.AlternativeName
	}
	if title == "" {
		title = "Название неизвестно"
	}

	return &entities.FavoriteMovie{
		UserID:         userID,
		MovieID:        movieID,
		Title:          title,
		Description:    strPtrOrNil(m.Description),
		Rating:         ratingPtr(m.Rating),
		MovieYear:      yearPtr(m.Year),
		MovieGenre:     strPtrOrNil(format.Genres(m.Genres)),
		MovieAgeLimit:  ageLimitPtr(m.AgeLimits),
		MoviePosterURL: posterPtr(m.Poster),
	}
}

func applyMovieSnapshot(entry *entities.SearchHistory, m *entities.Movie) {
	title := m.Name
	if title == "" {
		title = m.AlternativeName
	}
	entry.MovieTitle = strPtrOrNil(title)
	entry.MovieDescription = strPtrOrNil(m.Description)
	entry.MovieRating = ratingPtr(m.Rating)
	entry.MovieYear = yearPtr(m.Year)
	entry.MovieGenre = strPtrOrNil(format.Genres(m.Genres))
	entry.MovieAgeLimit = ageLimitPtr(m.AgeLimits)
	entry.MoviePosterURL = posterPtr(m.Poster)
}

func ratingPtr(r entities.MovieRating) *string {
	if r.KP > 0 {
		s := strconv.FormatFloat(r.KP, 'f', -1, 64)
		return &s
	}
	if r.IMDB != 0 {
		s := strconv.FormatFloat(r.IMDB, 'f', -1, 64)
		return &s
	}
	return nil
}

func yearPtr(year int) *string {
	if year == 0 {
		return nil
	}
	s := strconv.Itoa(year)
	return &s
}

func ageLimitPtr(limits *entities.AgeLimits) *string {
	if limits == nil || limits.Name == "" {
		return nil
	}
	return &limits.Name
}

func posterPtr(poster *entities.Poster) *string {
	if poster == nil || poster.URL == "" {
		return nil
	}
	return &poster.URL
}

func strPtrOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// validateSearchInput rejects blank and digits-only queries
func validateSearchInput(text string) (string, error) {
	input := strings.TrimSpace(text)
	if input == "" {
		return "", boterrors.ErrEmptyInput
	}
	if isDigitsOnly(input) {
		return "", boterrors.ErrDigitsOnlyInput
	}
	return input, nil
}

// parseMinRating accepts both '.' and ',' as the decimal separator
func parseMinRating(text string) (float64, error) {
	input := strings.ReplaceAll(strings.TrimSpace(text), ",", ".")
	value, err := strconv.ParseFloat(input, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", boterrors.ErrInvalidRating, err)
	}
	return value, nil
}

func parseHistoryDate(input string) (time.Time, error) {
	date, err := time.Parse(historyDateLayout, input)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", boterrors.ErrInvalidDate, err)
	}
	return date, nil
}

func isDigitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
