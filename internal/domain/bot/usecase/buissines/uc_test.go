package buissines

import (
	"context"
	"strings"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yourusername/movie-search-bot/internal/domain/bot/dto"
	"github.com/yourusername/movie-search-bot/internal/domain/bot/entities"
	boterrors "github.com/yourusername/movie-search-bot/internal/domain/bot/errors"
	"github.com/yourusername/movie-search-bot/internal/domain/bot/repository/persistent"
	"github.com/yourusername/movie-search-bot/internal/domain/bot/states"
)

// fakeCatalog подменяет внешний API каталога в тестах
type fakeCatalog struct {
	movies []entities.Movie
	detail *entities.Movie
	err    error

	lastName      string
	lastGenre     string
	lastMinRating float64
	lastTier      entities.BudgetTier
}

func (f *fakeCatalog) SearchByName(ctx context.Context, name string) ([]entities.Movie, error) {
	f.lastName = name
	return f.movies, f.err
}

func (f *fakeCatalog) SearchByGenre(ctx context.Context, genre string) ([]entities.Movie, error) {
	f.lastGenre = genre
	return f.movies, f.err
}

func (f *fakeCatalog) SearchByMinRating(ctx context.Context, min float64, limit int) ([]entities.Movie, error) {
	f.lastMinRating = min
	return f.movies, f.err
}

func (f *fakeCatalog) SearchByBudget(ctx context.Context, tier entities.BudgetTier, limit int) ([]entities.Movie, error) {
	f.lastTier = tier
	return f.movies, f.err
}

func (f *fakeCatalog) GetByID(ctx context.Context, movieID string) (*entities.Movie, error) {
	if f.detail == nil {
		return nil, boterrors.ErrMovieNotFound
	}
	return f.detail, nil
}

type testEnv struct {
	uc      *UseCase
	catalog *fakeCatalog
	store   *states.Store
	db      *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	db.Exec("PRAGMA foreign_keys=ON;")
	require.NoError(t, db.AutoMigrate(
		&entities.User{},
		&entities.SearchHistory{},
		&entities.FavoriteMovie{},
	))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	catalog := &fakeCatalog{}
	store := states.NewStore()
	uc := NewUseCase(
		catalog,
		persistent.NewUserRepository(db),
		persistent.NewHistoryRepository(db),
		persistent.NewFavoriteRepository(db),
		store,
		zerolog.Nop(),
	)

	return &testEnv{uc: uc, catalog: catalog, store: store, db: db}
}

func request(text string) *dto.CommandRequest {
	return &dto.CommandRequest{UserID: 100, ChatID: 200, Username: "tester", Text: text}
}

func stateOf(env *testEnv) states.State {
	return env.store.Get(states.Key{UserID: 100, ChatID: 200})
}

func sampleMovie() entities.Movie {
	return entities.Movie{
		ID:          447301,
		Name:        "Начало",
		Description: "Вор проникает в чужие сны.",
		Year:        2010,
		Rating:      entities.MovieRating{KP: 8.7},
		Genres:      []entities.MovieGenre{{Name: "фантастика"}, {Name: "триллер"}},
	}
}

// TestNameSearchFlow проверяет полный сценарий поиска по названию
func TestNameSearchFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	reply, err := env.uc.BeginNameSearch(ctx, request("/movie_search"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Введите название фильма:"}, reply.Messages)
	assert.Equal(t, states.AwaitingMovieName, stateOf(env))

	env.catalog.movies = []entities.Movie{sampleMovie()}
	reply, err = env.uc.ConsumeText(ctx, request("Начало"))
	require.NoError(t, err)

	assert.Equal(t, "Начало", env.catalog.lastName)
	require.Len(t, reply.Messages, 1)
	assert.Contains(t, reply.Messages[0], "Название: Начало")
	assert.Contains(t, reply.Messages[0], "Рейтинг: 8.7")
	require.NotNil(t, reply.Favorite)
	assert.Equal(t, "447301", reply.Favorite.MovieID)
	assert.False(t, reply.Favorite.IsFavorite)
	assert.Equal(t, states.Idle, stateOf(env))

	// История записана со снимком первого результата
	var entry entities.SearchHistory
	require.NoError(t, env.db.First(&entry).Error)
	assert.Equal(t, "Начало", entry.Query)
	require.NotNil(t, entry.Command)
	assert.Equal(t, "/movie_search", *entry.Command)
	require.NotNil(t, entry.MovieTitle)
	assert.Equal(t, "Начало", *entry.MovieTitle)
}

// TestNameSearch_EmptyResultKeepsState проверяет что пустой результат не сбрасывает состояние
func TestNameSearch_EmptyResultKeepsState(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.uc.BeginNameSearch(ctx, request("/movie_search"))
	require.NoError(t, err)

	reply, err := env.uc.ConsumeText(ctx, request("несуществующий фильм"))
	require.NoError(t, err)
	assert.Equal(t, "Фильмы с таким названием не найдены. Попробуйте другой запрос.", reply.Messages[0])
	assert.Equal(t, states.AwaitingMovieName, stateOf(env))

	// Повторный ввод обрабатывается тем же шагом
	env.catalog.movies = []entities.Movie{sampleMovie()}
	reply, err = env.uc.ConsumeText(ctx, request("Начало"))
	require.NoError(t, err)
	assert.Contains(t, reply.Messages[0], "Название: Начало")
	assert.Equal(t, states.Idle, stateOf(env))
}

// TestNameSearch_Validation проверяет валидацию ввода названия
func TestNameSearch_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.uc.BeginNameSearch(ctx, request("/movie_search"))
	require.NoError(t, err)

	reply, err := env.uc.ConsumeText(ctx, request("   "))
	require.NoError(t, err)
	assert.Equal(t, "Пожалуйста, введите название фильма.", reply.Messages[0])
	assert.Equal(t, states.AwaitingMovieName, stateOf(env))

	reply, err = env.uc.ConsumeText(ctx, request("12345"))
	require.NoError(t, err)
	assert.Equal(t, "Название не может состоять только из цифр. Попробуйте снова.", reply.Messages[0])
	assert.Equal(t, states.AwaitingMovieName, stateOf(env))

	// Корректный ввод после отказа обрабатывается обычным путём
	env.catalog.movies = []entities.Movie{sampleMovie()}
	reply, err = env.uc.ConsumeText(ctx, request("Начало"))
	require.NoError(t, err)
	assert.Contains(t, reply.Messages[0], "Название: Начало")
}

// TestNameSearch_APIErrorClearsState проверяет обработку ошибки каталога
func TestNameSearch_APIErrorClearsState(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.uc.BeginNameSearch(ctx, request("/movie_search"))
	require.NoError(t, err)

	env.catalog.err = boterrors.ErrCatalogFailed
	reply, err := env.uc.ConsumeText(ctx, request("Начало"))
	require.NoError(t, err)
	assert.Equal(t, "Ошибка при обращении к API. Попробуйте позже.", reply.Messages[0])
	assert.Equal(t, states.Idle, stateOf(env))

	// Попытка записана в историю несмотря на ошибку, без снимка фильма
	var entries []entities.SearchHistory
	require.NoError(t, env.db.Find(&entries).Error)
	require.Len(t, entries, 1)
	assert.Equal(t, "Начало", entries[0].Query)
	assert.Nil(t, entries[0].MovieTitle)
}

// TestGenreSearch проверяет поиск по жанру и сброс состояния при любом исходе
func TestGenreSearch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.uc.BeginGenreSearch(ctx, request("/movie_by_genre"))
	require.NoError(t, err)
	assert.Equal(t, states.AwaitingGenre, stateOf(env))

	// Цифры отклоняются с сохранением состояния
	reply, err := env.uc.ConsumeText(ctx, request("12345"))
	require.NoError(t, err)
	assert.Equal(t, "Жанр не может состоять только из цифр. Пожалуйста, введите корректный жанр.", reply.Messages[0])
	assert.Equal(t, states.AwaitingGenre, stateOf(env))

	// Жанр приводится к нижнему регистру, пустой результат сбрасывает состояние
	reply, err = env.uc.ConsumeText(ctx, request("Комедия"))
	require.NoError(t, err)
	assert.Equal(t, "комедия", env.catalog.lastGenre)
	assert.Equal(t, "Фильмы по такому жанру не найдены. Попробуйте другой жанр.", reply.Messages[0])
	assert.Equal(t, states.Idle, stateOf(env))
}

// TestGenreSearch_APIErrorClearsState проверяет что жанровый поиск сбрасывает
// состояние при ошибке каталога, в отличие от поиска по названию
func TestGenreSearch_APIErrorClearsState(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.uc.BeginGenreSearch(ctx, request("/movie_by_genre"))
	require.NoError(t, err)

	env.catalog.err = boterrors.ErrCatalogFailed
	reply, err := env.uc.ConsumeText(ctx, request("комедия"))
	require.NoError(t, err)
	assert.Equal(t, "Ошибка при обращении к API. Попробуйте позже.", reply.Messages[0])
	assert.Equal(t, states.Idle, stateOf(env))

	var count int64
	require.NoError(t, env.db.Model(&entities.SearchHistory{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

// TestGenreSearch_LimitsResults проверяет отсечение списка жанрового поиска
func TestGenreSearch_LimitsResults(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.uc.BeginGenreSearch(ctx, request("/movie_by_genre"))
	require.NoError(t, err)

	for i := 0; i < 8; i++ {
		m := sampleMovie()
		m.ID = int64(i + 1)
		env.catalog.movies = append(env.catalog.movies, m)
	}

	reply, err := env.uc.ConsumeText(ctx, request("фантастика"))
	require.NoError(t, err)
	assert.Contains(t, reply.Messages[0], "Фильмы жанра 'фантастика':")
	assert.Equal(t, 5, strings.Count(reply.Messages[0], "Название: "))
}

// TestRatingSearch проверяет разбор рейтинга с запятой и точкой
func TestRatingSearch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	reply, err := env.uc.BeginRatingSearch(ctx, request("/movie_by_rating"))
	require.NoError(t, err)
	assert.Equal(t, "Введите минимальный рейтинг IMDB (например, 7.5):", reply.Messages[0])

	// Нечисловой ввод переспрашивает и сохраняет состояние
	reply, err = env.uc.ConsumeText(ctx, request("abc"))
	require.NoError(t, err)
	assert.Equal(t, "Некорректный формат. Введите число, например, 7.5.", reply.Messages[0])
	assert.Equal(t, states.AwaitingRating, stateOf(env))

	// Запятая принимается как десятичный разделитель
	env.catalog.movies = []entities.Movie{sampleMovie()}
	reply, err = env.uc.ConsumeText(ctx, request("7,5"))
	require.NoError(t, err)
	assert.Equal(t, 7.5, env.catalog.lastMinRating)
	assert.Contains(t, reply.Messages[0], "Название: Начало")
	assert.Equal(t, states.Idle, stateOf(env))
}

// TestHistoryFlow проверяет запрос истории по дате и ключевому слову 'все'
func TestHistoryFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Наполняем историю через обычный поиск
	_, err := env.uc.BeginNameSearch(ctx, request("/movie_search"))
	require.NoError(t, err)
	env.catalog.movies = []entities.Movie{sampleMovie()}
	_, err = env.uc.ConsumeText(ctx, request("Начало"))
	require.NoError(t, err)

	_, err = env.uc.BeginHistory(ctx, request("/history"))
	require.NoError(t, err)
	assert.Equal(t, states.AwaitingHistoryDate, stateOf(env))

	// Неверный формат даты переспрашивает, состояние сохраняется
	reply, err := env.uc.ConsumeText(ctx, request("31-12-2024"))
	require.NoError(t, err)
	assert.Equal(t, "Неверный формат даты. Введите дату в формате дд.мм.гггг или 'все'. Попробуйте снова.", reply.Messages[0])
	assert.Equal(t, states.AwaitingHistoryDate, stateOf(env))

	reply, err = env.uc.ConsumeText(ctx, request("все"))
	require.NoError(t, err)
	require.Len(t, reply.Messages, 1)
	assert.Contains(t, reply.Messages[0], "Команда: /movie_search")
	assert.Contains(t, reply.Messages[0], "Дата поиска: ")
	assert.Equal(t, states.Idle, stateOf(env))
}

// TestHistoryFlow_EmptyHistory проверяет ответ на пустую историю
func TestHistoryFlow_EmptyHistory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.uc.BeginHistory(ctx, request("/history"))
	require.NoError(t, err)

	reply, err := env.uc.ConsumeText(ctx, request("01.01.2020"))
	require.NoError(t, err)
	assert.Equal(t, "По вашему запросу история пустая.", reply.Messages[0])
	assert.Equal(t, states.Idle, stateOf(env))
}

// TestBudgetSearch проверяет прямые команды поиска по бюджету
func TestBudgetSearch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.catalog.movies = []entities.Movie{sampleMovie()}

	reply, err := env.uc.LowBudget(ctx, request("/low_budget_movie"))
	require.NoError(t, err)
	assert.Equal(t, entities.BudgetLow, env.catalog.lastTier)
	assert.Contains(t, reply.Messages[0], "отсутствуют точные данные о бюджете")
	assert.Contains(t, reply.Messages[0], "Фильмы с низким бюджетом:")

	reply, err = env.uc.HighBudget(ctx, request("/high_budget_movie"))
	require.NoError(t, err)
	assert.Equal(t, entities.BudgetHigh, env.catalog.lastTier)
	assert.Contains(t, reply.Messages[0], "Фильмы с высоким бюджетом:")
	assert.NotContains(t, reply.Messages[0], "отсутствуют точные данные")

	env.catalog.movies = nil
	reply, err = env.uc.LowBudget(ctx, request("/low_budget_movie"))
	require.NoError(t, err)
	assert.Equal(t, "Фильмы с низким бюджетом не найдены.", reply.Messages[0])
}

// TestBudgetSearch_APIErrorRecordsHistory проверяет что команда попадает
// в историю даже когда каталог недоступен
func TestBudgetSearch_APIErrorRecordsHistory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.catalog.err = boterrors.ErrCatalogFailed
	reply, err := env.uc.LowBudget(ctx, request("/low_budget_movie"))
	require.NoError(t, err)
	assert.Equal(t, "Ошибка при обращении к API. Попробуйте позже.", reply.Messages[0])

	var entries []entities.SearchHistory
	require.NoError(t, env.db.Find(&entries).Error)
	require.Len(t, entries, 1)
	assert.Equal(t, "/low_budget_movie", entries[0].Query)
	assert.Nil(t, entries[0].MovieTitle)
}

// TestFavorites проверяет добавление, показ и удаление избранного
func TestFavorites(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	movie := sampleMovie()
	env.catalog.detail = &movie

	reply, err := env.uc.AddFavorite(ctx, request("/add_favorite 447301"), "447301")
	require.NoError(t, err)
	assert.Equal(t, "Фильм \"Начало\" добавлен в избранное.", reply.Messages[0])

	// Повторное добавление отклоняется до запроса к каталогу
	reply, err = env.uc.AddFavorite(ctx, request("/add_favorite 447301"), "447301")
	require.NoError(t, err)
	assert.Equal(t, "Этот фильм уже добавлен в избранное.", reply.Messages[0])

	reply, err = env.uc.ListFavorites(ctx, request("/favorites"))
	require.NoError(t, err)
	assert.Contains(t, reply.Messages[0], "Ваши избранные фильмы:")
	assert.Contains(t, reply.Messages[0], "Название: Начало")

	reply, err = env.uc.RemoveFavorite(ctx, request("/remove_favorite 447301"), "447301")
	require.NoError(t, err)
	assert.Equal(t, "Фильм с ID 447301 удалён из избранного.", reply.Messages[0])

	reply, err = env.uc.RemoveFavorite(ctx, request("/remove_favorite 447301"), "447301")
	require.NoError(t, err)
	assert.Equal(t, "Фильм не найден в вашем избранном.", reply.Messages[0])

	reply, err = env.uc.ListFavorites(ctx, request("/favorites"))
	require.NoError(t, err)
	assert.Equal(t, "Ваш список избранных фильмов пуст.", reply.Messages[0])
}

// TestFavorites_MissingArgument проверяет подсказку о формате команды
func TestFavorites_MissingArgument(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	reply, err := env.uc.AddFavorite(ctx, request("/add_favorite"), "")
	require.NoError(t, err)
	assert.Contains(t, reply.Messages[0], "/add_favorite <movie_id>")

	reply, err = env.uc.RemoveFavorite(ctx, request("/remove_favorite"), "")
	require.NoError(t, err)
	assert.Contains(t, reply.Messages[0], "/remove_favorite <movie_id>")
}

// TestToggleFavorite проверяет работу inline-кнопки избранного
func TestToggleFavorite(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	movie := sampleMovie()
	env.catalog.detail = &movie
	callback := &dto.CallbackRequest{UserID: 100, ChatID: 200, Action: "add_fav", MovieID: "447301"}

	reply, err := env.uc.ToggleFavorite(ctx, callback)
	require.NoError(t, err)
	assert.Equal(t, "Добавлено в избранное", reply.Answer)
	require.NotNil(t, reply.Favorite)
	assert.True(t, reply.Favorite.IsFavorite)

	// Повторное нажатие на уже добавленном фильме
	reply, err = env.uc.ToggleFavorite(ctx, callback)
	require.NoError(t, err)
	assert.Equal(t, "Фильм уже в избранном", reply.Answer)
	assert.True(t, reply.Favorite.IsFavorite)

	callback.Action = "remove_fav"
	reply, err = env.uc.ToggleFavorite(ctx, callback)
	require.NoError(t, err)
	assert.Equal(t, "Удалено из избранного", reply.Answer)
	assert.False(t, reply.Favorite.IsFavorite)

	reply, err = env.uc.ToggleFavorite(ctx, callback)
	require.NoError(t, err)
	assert.Equal(t, "Фильм не найден в избранном", reply.Answer)

	callback.Action = "bogus"
	reply, err = env.uc.ToggleFavorite(ctx, callback)
	require.NoError(t, err)
	assert.Equal(t, "Неизвестное действие", reply.Answer)
}

// TestStopClearsState проверяет что /stop сбрасывает ожидание ввода
func TestStopClearsState(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.uc.BeginRatingSearch(ctx, request("/movie_by_rating"))
	require.NoError(t, err)

	reply, err := env.uc.Stop(ctx, request("/stop"))
	require.NoError(t, err)
	assert.Equal(t, "Обработка остановлена. Для возобновления нажмите /start.", reply.Messages[0])
	assert.Equal(t, states.Idle, stateOf(env))

	// Текст после /stop больше не воспринимается как ответ на команду
	reply, err = env.uc.ConsumeText(ctx, request("7.5"))
	require.NoError(t, err)
	assert.Equal(t, "Неизвестная команда. Используйте /help для просмотра команд.", reply.Messages[0])
}

// TestStartRegistersUser проверяет регистрацию пользователя при /start
func TestStartRegistersUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	reply, err := env.uc.Start(ctx, request("/start"))
	require.NoError(t, err)
	assert.True(t, reply.MainMenu)
	assert.True(t, reply.ControlKeyboard)
	require.Len(t, reply.Messages, 2)
	assert.Equal(t, "Бот запущен! Используйте кнопки для управления.", reply.Messages[0])
	assert.Contains(t, reply.Messages[1], "Привет! Я бот для поиска фильмов.")

	var user entities.User
	require.NoError(t, env.db.First(&user, "user_id = ?", "100").Error)
	require.NotNil(t, user.Username)
	assert.Equal(t, "tester", *user.Username)
}
