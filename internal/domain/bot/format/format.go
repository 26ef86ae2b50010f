// Package format renders movie records and history entries into
// user-facing text and splits long messages for delivery.
package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yourusername/movie-search-bot/internal/domain/bot/entities"
)

// MaxMessageLength is the message size limit used for pagination,
// kept below the Telegram hard limit with a safety margin.
const MaxMessageLength = 4000

// Separator divides rendered movie blocks in list output
const Separator = "\n---\n"

const (
	placeholderTitle       = "Название неизвестно"
	placeholderDescription = "Нет описания"
	placeholderRating      = "Нет данных"
	placeholderYear        = "неизвестно"
	placeholderGenre       = "Неизвестно"
	placeholderAgeLimit    = "—"
	placeholderCommand     = "неизвестная команда"
)

// Movie renders one movie record into a fixed-order multi-line block.
// The poster line is omitted entirely when the URL is absent.
func Movie(m *entities.Movie) string {
	title := m.Name
	if title == "" {
		title = m.AlternativeName
	}
	if title == "" {
		title = placeholderTitle
	}

	description := m.Description
	if description == "" {
		description = placeholderDescription
	}

	year := placeholderYear
	if m.Year != 0 {
		year = strconv.Itoa(m.Year)
	}

	genres := Genres(m.Genres)
	if genres == "" {
		genres = placeholderGenre
	}

	ageLimit := placeholderAgeLimit
	if m.AgeLimits != nil && m.AgeLimits.Name != "" {
		ageLimit = m.AgeLimits.Name
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Название: %s\n", title)
	fmt.Fprintf(&b, "Описание: %s\n", description)
	fmt.Fprintf(&b, "Рейтинг: %s\n", Rating(m.Rating))
	fmt.Fprintf(&b, "Год: %s\n", year)
	fmt.Fprintf(&b, "Жанр: %s\n", genres)
	fmt.Fprintf(&b, "Возрастной рейтинг: %s\n", ageLimit)
	if m.Poster != nil && m.Poster.URL != "" {
		fmt.Fprintf(&b, "Постер: %s\n", m.Poster.URL)
	}
	return b.String()
}

// MovieList renders a list of movies joined by a separator line
func MovieList(movies []entities.Movie) string {
	blocks := make([]string, len(movies))
	for i := range movies {
		blocks[i] = Movie(&movies[i])
	}
	return strings.Join(blocks, Separator)
}

// Rating picks the displayed rating: the primary source when positive,
// otherwise the secondary one. The two are never averaged.
func Rating(r entities.MovieRating) string {
	if r.KP > 0 {
		return formatFloat(r.KP)
	}
	if r.IMDB != 0 {
		return formatFloat(r.IMDB)
	}
	return placeholderRating
}

// Genres joins genre names with commas
func Genres(genres []entities.MovieGenre) string {
	names := make([]string, 0, len(genres))
	for _, g := range genres {
		if g.Name != "" {
			names = append(names, g.Name)
		}
	}
	return strings.Join(names, ", ")
}

// HistoryEntry renders one search history record from its denormalized snapshot
func HistoryEntry(e *entities.SearchHistory) string {
	command := placeholderCommand
	if e.Command != nil && *e.Command != "" {
		command = *e.Command
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Дата поиска: %s\n", e.CreatedAt.Format("02.01.2006 15:04:05"))
	fmt.Fprintf(&b, "Команда: %s\n", command)
	fmt.Fprintf(&b, "Название: %s\n", stringOr(e.MovieTitle, placeholderTitle))
	fmt.Fprintf(&b, "Описание: %s\n", stringOr(e.MovieDescription, placeholderDescription))
	fmt.Fprintf(&b, "Рейтинг: %s\n", stringOr(e.MovieRating, placeholderRating))
	fmt.Fprintf(&b, "Год: %s\n", stringOr(e.MovieYear, placeholderYear))
	fmt.Fprintf(&b, "Жанр: %s\n", stringOr(e.MovieGenre, placeholderGenre))
	fmt.Fprintf(&b, "Возрастной рейтинг: %s\n", stringOr(e.MovieAgeLimit, placeholderAgeLimit))
	if e.MoviePosterURL != nil && *e.MoviePosterURL != "" {
		fmt.Fprintf(&b, "Постер: %s\n", *e.MoviePosterURL)
	}
	return b.String()
}

// Favorite renders a favorite movie from its snapshot, without re-fetching
// anything from the catalog.
func Favorite(f *entities.FavoriteMovie) string {
	title := f.Title
	if title == "" {
		title = placeholderTitle
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Название: %s\n", title)
	fmt.Fprintf(&b, "Описание: %s\n", stringOr(f.Description, placeholderDescription))
	fmt.Fprintf(&b, "Рейтинг: %s\n", stringOr(f.Rating, placeholderRating))
	fmt.Fprintf(&b, "Год: %s\n", stringOr(f.MovieYear, placeholderYear))
	fmt.Fprintf(&b, "Жанр: %s\n", stringOr(f.MovieGenre, placeholderGenre))
	fmt.Fprintf(&b, "Возрастной рейтинг: %s\n", stringOr(f.MovieAgeLimit, placeholderAgeLimit))
	if f.MoviePosterURL != nil && *f.MoviePosterURL != "" {
		fmt.Fprintf(&b, "Постер: %s\n", *f.MoviePosterURL)
	}
	return b.String()
}

// FavoriteList renders the favorites list joined by a separator line
func FavoriteList(favorites []entities.FavoriteMovie) string {
	blocks := make([]string, len(favorites))
	for i := range favorites {
		blocks[i] = Favorite(&favorites[i])
	}
	return strings.Join(blocks, Separator)
}

// Split greedily splits text into chunks not exceeding limit, backing off
// to the last line break within each chunk so no line is cut mid-record.
// A line longer than the limit is hard-cut. Counts runes, not bytes.
func Split(text string, limit int) []string {
	if limit <= 0 {
		limit = MaxMessageLength
	}

	var parts []string
	runes := []rune(text)
	for len(runes) > 0 {
		if len(runes) <= limit {
			parts = append(parts, string(runes))
			break
		}

		lastBreak := -1
		for i := limit - 1; i >= 0; i-- {
			if runes[i] == '\n' {
				lastBreak = i
				break
			}
		}

		if lastBreak != -1 {
			parts = append(parts, string(runes[:lastBreak]))
			runes = runes[lastBreak+1:]
		} else {
			parts = append(parts, string(runes[:limit]))
			runes = runes[limit:]
		}
	}
	return parts
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func stringOr(v *string, fallback string) string {
	if v != nil && *v != "" {
		return *v
	}
	return fallback
}
