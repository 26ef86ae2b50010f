// Package kinopoisk implements the movie catalog over the Kinopoisk HTTP API
package kinopoisk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/yourusername/movie-search-bot/config"
	"github.com/yourusername/movie-search-bot/internal/domain/bot/entities"
	"github.com/yourusername/movie-search-bot/internal/domain/bot/errors"
)

const (
	searchLimit = 10

	// budget searches fetch unfiltered records, so over-fetch to have
	// enough left after client-side filtering
	budgetOverfetchFactor = 5

	detailCacheTTL     = 10 * time.Minute
	detailCacheCleanup = 15 * time.Minute
)

// Client queries a Kinopoisk-style movie API.
// Detail lookups are deduplicated with singleflight and cached.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     zerolog.Logger

	group singleflight.Group
	cache *gocache.Cache
}

// NewClient creates a movie catalog client from configuration
func NewClient(cfg *config.KinopoiskConfig, logger zerolog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		logger:     logger.With().Str("component", "kinopoisk").Logger(),
		cache:      gocache.New(detailCacheTTL, detailCacheCleanup),
	}
}

type searchResponse struct {
	Docs []entities.Movie `json:"docs"`
}

// SearchByName searches movies by title
func (c *Client) SearchByName(ctx context.Context, name string) ([]entities.Movie, error) {
	query := url.Values{}
	query.Set("query", name)
	query.Set("limit", strconv.Itoa(searchLimit))
	query.Set("page", "1")

	return c.search(ctx, "/movie/search", query)
}

// SearchByGenre searches movies by genre name
func (c *Client) SearchByGenre(ctx context.Context, genre string) ([]entities.Movie, error) {
	query := url.Values{}
	query.Set("genres.name", genre)
	query.Set("limit", strconv.Itoa(searchLimit))
	query.Set("page", "1")

	return c.search(ctx, "/movie", query)
}

// SearchByMinRating searches movies rated at or above min on IMDB
func (c *Client) SearchByMinRating(ctx context.Context, min float64, limit int) ([]entities.Movie, error) {
	query := url.Values{}
	query.Set("rating.imdb", fmt.Sprintf("%s-10", strconv.FormatFloat(min, 'f', -1, 64)))
	query.Set("limit", strconv.Itoa(limit))
	query.Set("page", "1")

	return c.search(ctx, "/movie", query)
}

// SearchByBudget returns up to limit movies in the given budget tier.
// The API has no budget filter, records are filtered client-side.
func (c *Client) SearchByBudget(ctx context.Context, tier entities.BudgetTier, limit int) ([]entities.Movie, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit*budgetOverfetchFactor))
	query.Set("page", "1")

	movies, err := c.search(ctx, "/movie", query)
	if err != nil {
		return nil, err
	}

	filtered := make([]entities.Movie, 0, limit)
	for i := range movies {
		if !movies[i].InBudgetTier(tier) {
			continue
		}
		filtered = append(filtered, movies[i])
		if len(filtered) == limit {
			break
		}
	}
	return filtered, nil
}

// GetByID fetches full movie detail by its catalog identifier
func (c *Client) GetByID(ctx context.Context, movieID string) (*entities.Movie, error) {
	if cached, ok := c.cache.Get(movieID); ok {
		return cached.(*entities.Movie), nil
	}

	val, err, _ := c.group.Do(movieID, func() (interface{}, error) {
		// the flight is shared with other waiters, it must not be
		// cancelled together with the first caller's context
		return c.fetchByID(context.WithoutCancel(ctx), movieID)
	})
	if err != nil {
		return nil, err
	}
	return val.(*entities.Movie), nil
}

func (c *Client) fetchByID(ctx context.Context, movieID string) (*entities.Movie, error) {
	body, status, err := c.doRequest(ctx, "/movie/"+url.PathEscape(movieID), nil)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, errors.ErrMovieNotFound
	}

	var movie entities.Movie
	if err := json.Unmarshal(body, &movie); err != nil {
		c.logger.Error().Err(err).Str("movie_id", movieID).Msg("Failed to decode movie detail")
		return nil, fmt.Errorf("%w: %v", errors.ErrCatalogFailed, err)
	}

	c.cache.Set(movieID, &movie, gocache.DefaultExpiration)
	return &movie, nil
}

// search runs one catalog query. A non-2xx status is treated as an
// empty result, transport and decode failures are returned as errors.
func (c *Client) search(ctx context.Context, path string, query url.Values) ([]entities.Movie, error) {
	body, status, err := c.doRequest(ctx, path, query)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		c.logger.Warn().Int("status", status).Str("path", path).Msg("Catalog returned non-success status, treating as empty result")
		return []entities.Movie{}, nil
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		c.logger.Error().Err(err).Str("path", path).Msg("Failed to decode search response")
		return nil, fmt.Errorf("%w: %v", errors.ErrCatalogFailed, err)
	}
	if parsed.Docs == nil {
		return []entities.Movie{}, nil
	}
	return parsed.Docs, nil
}

func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, int, error) {
	requestURL := c.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", errors.ErrCatalogFailed, err)
	}
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().
		Str("method", req.Method).
		Str("url", requestURL).
		Interface("headers", redactHeaders(req.Header)).
		Msg("Catalog request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("url", requestURL).Msg("Catalog request failed")
		return nil, 0, fmt.Errorf("%w: %v", errors.ErrCatalogFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error().Err(err).Str("url", requestURL).Msg("Failed to read catalog response body")
		return nil, 0, fmt.Errorf("%w: %v", errors.ErrCatalogFailed, err)
	}

	c.logger.Debug().
		Str("url", requestURL).
		Int("status", resp.StatusCode).
		Interface("headers", resp.Header).
		Str("body", string(body)).
		Msg("Catalog response")

	return body, resp.StatusCode, nil
}

// redactHeaders masks the API key in request logs
func redactHeaders(headers http.Header) http.Header {
	out := headers.Clone()
	if out.Get("X-API-KEY") != "" {
		out.Set("X-API-KEY", "***")
	}
	return out
}
