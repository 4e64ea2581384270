package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"moviegrip/internal/config"
	"moviegrip/internal/domain"
)

var (
	ErrAPIKeyMissing = errors.New("TMDB credentials are not configured")
	ErrUnauthorized  = errors.New("TMDB rejected the credentials")
	ErrAPIError      = errors.New("TMDB API error")
	ErrRateLimited   = errors.New("TMDB API rate limited")
)

// Poster sizes accepted by the image CDN
const (
	PosterSizeSmall = "w185"
	PosterSizeLarge = "w500"
	BackdropSize    = "w780"
)

// Client is a TMDB API client.
type Client struct {
	httpClient *http.Client
	config     config.TMDBConfig
	logger     zerolog.Logger
}

// NewClient creates a new TMDB client.
func NewClient(cfg config.TMDBConfig, logger zerolog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		config: cfg,
		logger: logger.With().Str("component", "tmdb").Logger(),
	}
}

// IsConfigured returns true if an API key or access token is set.
func (c *Client) IsConfigured() bool {
	return c.config.APIKey != "" || c.config.AccessToken != ""
}

// SearchMovies fetches one page of results for query. page is one-based.
func (c *Client) SearchMovies(ctx context.Context, query string, page int) (*domain.ResultPage, error) {
	if !c.IsConfigured() {
		return nil, ErrAPIKeyMissing
	}
	if page < 1 {
		page = 1
	}

	endpoint := fmt.Sprintf("%s/search/movie", strings.TrimRight(c.config.BaseURL, "/"))
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("include_adult", strconv.FormatBool(c.config.IncludeAdult))
	if c.config.Language != "" {
		params.Set("language", c.config.Language)
	}

	var response SearchMoviesResponse
	if err := c.doRequest(ctx, endpoint, params, &response); err != nil {
		return nil, err
	}

	result := toResultPage(response, page)

	c.logger.Debug().
		Str("query", query).
		Int("page", page).
		Int("results", len(result.Results)).
		Int("total_pages", result.TotalPages).
		Msg("Movie search completed")

	return result, nil
}

// ImageURL returns a full image URL for a given path and size.
func (c *Client) ImageURL(path, size string) string {
	if path == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s%s", strings.TrimRight(c.config.ImageBaseURL, "/"), size, path)
}

// doRequest performs an HTTP GET request and decodes the JSON response.
func (c *Client) doRequest(ctx context.Context, endpoint string, params url.Values, result interface{}) error {
	if c.config.AccessToken == "" {
		params.Set("api_key", c.config.APIKey)
	}
	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.config.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.AccessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("url", endpoint).Msg("HTTP request failed")
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil {
			c.logger.Error().
				Int("status", resp.StatusCode).
				Str("message", errResp.StatusMessage).
				Msg("TMDB API error")
		}

		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return ErrUnauthorized
		case http.StatusTooManyRequests:
			return ErrRateLimited
		default:
			return fmt.Errorf("%w: status %d", ErrAPIError, resp.StatusCode)
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// toResultPage converts a search response, guaranteeing TotalPages >= 1
// whenever results are present.
func toResultPage(response SearchMoviesResponse, requested int) *domain.ResultPage {
	movies := make([]*domain.Movie, 0, len(response.Results))
	for _, r := range response.Results {
		movies = append(movies, toMovie(r))
	}

	page := response.Page
	if page < 1 {
		page = requested
	}
	totalPages := response.TotalPages
	if len(movies) > 0 && totalPages < 1 {
		totalPages = 1
	}

	return &domain.ResultPage{
		Page:         page,
		Results:      movies,
		TotalPages:   totalPages,
		TotalResults: response.TotalResults,
	}
}

func toMovie(r MovieResult) *domain.Movie {
	movie := &domain.Movie{
		ID:          r.ID,
		Title:       r.Title,
		ReleaseDate: r.ReleaseDate,
		Overview:    r.Overview,
		VoteAverage: r.VoteAverage,
	}
	if r.PosterPath != nil {
		movie.PosterPath = *r.PosterPath
	}
	if r.BackdropPath != nil {
		movie.BackdropPath = *r.BackdropPath
	}
	return movie
}
