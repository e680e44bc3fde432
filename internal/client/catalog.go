package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"animedb/client/internal/config"
	"animedb/client/internal/domain"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

type CatalogClient interface {
	GetStats(ctx context.Context) (*domain.StatsSummary, error)
	ListAnime(ctx context.Context, params url.Values) (*domain.CatalogPage, error)
	GetAnime(ctx context.Context, id int) (*domain.CatalogItem, error)
	// WithBaseURL returns a client sharing transport and rate limit but targeting baseURL.
	WithBaseURL(baseURL string) CatalogClient
	BaseURL() string
}

type catalogClient struct {
	rl         ratelimit.Limiter
	baseURL    string
	httpClient *resty.Client
}

func NewCatalogClient(cfg config.APIConfig) CatalogClient {
	client := resty.New().
		SetRetryCount(0).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "animedb-client/1.0")

	if cfg.Timeout > 0 {
		client.SetTimeout(time.Duration(cfg.Timeout) * time.Second)
	}

	if cfg.Proxy != "" {
		client.SetProxy(cfg.Proxy)
		log.Infof("🔗 Using API proxy: %s", cfg.Proxy)
	}

	rl := ratelimit.NewUnlimited()
	if cfg.MaxRequestsPerSecond > 0 {
		rl = ratelimit.New(cfg.MaxRequestsPerSecond)
	}

	return &catalogClient{
		rl:         rl,
		baseURL:    ResolveBaseURL(cfg, ""),
		httpClient: client,
	}
}

// Close releases the underlying transport.
func Close(c CatalogClient) error {
	if cc, ok := c.(*catalogClient); ok {
		return cc.httpClient.Close()
	}
	return nil
}

func (c *catalogClient) WithBaseURL(baseURL string) CatalogClient {
	clone := *c
	clone.baseURL = strings.TrimRight(baseURL, "/")
	return &clone
}

func (c *catalogClient) BaseURL() string {
	return c.baseURL
}

type statsWire struct {
	TotalAnime       *int     `json:"total_anime"`
	AvgRating        *float64 `json:"avg_rating"`
	TotalCollections *int64   `json:"total_collections"`
	EarliestYear     *int     `json:"earliest_year"`
	LatestYear       *int     `json:"latest_year"`
	TotalWatched     *int64   `json:"total_watched"`
}

func (c *catalogClient) GetStats(ctx context.Context) (*domain.StatsSummary, error) {
	var wire statsWire
	if err := c.getJSON(ctx, "/api/stats", nil, &wire); err != nil {
		return nil, fmt.Errorf("failed to load stats: %w", err)
	}

	if wire.TotalAnime == nil {
		return nil, malformed("stats: missing total_anime")
	}

	return &domain.StatsSummary{
		TotalAnime:       *wire.TotalAnime,
		AvgRating:        wire.AvgRating,
		TotalCollections: wire.TotalCollections,
		EarliestYear:     wire.EarliestYear,
		LatestYear:       wire.LatestYear,
		TotalWatched:     wire.TotalWatched,
	}, nil
}

type catalogPageWire struct {
	Data       *[]domain.CatalogItem `json:"data"`
	Total      *int                  `json:"total"`
	Page       *int                  `json:"page"`
	TotalPages *int                  `json:"total_pages"`
	PageSize   int                   `json:"page_size"`
}

func (w *catalogPageWire) validate() error {
	switch {
	case w.Data == nil:
		return malformed("catalog page: missing data")
	case w.Total == nil || *w.Total < 0:
		return malformed("catalog page: missing or negative total")
	case w.Page == nil || *w.Page < 1:
		return malformed("catalog page: missing or invalid page")
	case w.TotalPages == nil || *w.TotalPages < 0:
		return malformed("catalog page: missing or negative total_pages")
	}
	return nil
}

func (c *catalogClient) ListAnime(ctx context.Context, params url.Values) (*domain.CatalogPage, error) {
	var wire catalogPageWire
	if err := c.getJSON(ctx, "/api/anime", params, &wire); err != nil {
		return nil, fmt.Errorf("failed to load catalog page: %w", err)
	}

	if err := wire.validate(); err != nil {
		return nil, err
	}

	page := &domain.CatalogPage{
		Items:      *wire.Data,
		Total:      *wire.Total,
		Page:       *wire.Page,
		TotalPages: *wire.TotalPages,
		PageSize:   wire.PageSize,
	}

	log.Debugf("Fetched page %d of %d with %d items", page.Page, page.TotalPages, len(page.Items))
	return page, nil
}

func (c *catalogClient) GetAnime(ctx context.Context, id int) (*domain.CatalogItem, error) {
	var item domain.CatalogItem
	if err := c.getJSON(ctx, "/api/anime/"+strconv.Itoa(id), nil, &item); err != nil {
		return nil, fmt.Errorf("failed to load anime %d: %w", id, err)
	}
	return &item, nil
}

func (c *catalogClient) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	c.rl.Take()

	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		Get(endpoint)

	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("request cancelled: %w", ctx.Err())
		}
		return fmt.Errorf("failed to fetch URL: %w", err)
	}

	if resp.IsError() {
		return &StatusError{Code: resp.StatusCode(), Status: resp.Status()}
	}

	if err := json.Unmarshal([]byte(resp.String()), out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return nil
}

// ResolveBaseURL picks the API origin. An explicit base URL wins; a request served
// on the development host targets the local API port; anything else uses the
// configured public origin. The host only selects between configured URLs.
// With no public origin (or no host, for command-line use) the development URL
// is used.
func ResolveBaseURL(cfg config.APIConfig, host string) string {
	if cfg.BaseURL != "" {
		return strings.TrimRight(cfg.BaseURL, "/")
	}

	hostname := host
	if h, _, err := net.SplitHostPort(host); err == nil {
		hostname = h
	}
	if host == "" || strings.EqualFold(hostname, cfg.DevHost) || cfg.PublicOrigin == "" {
		return strings.TrimRight(cfg.DevBaseURL, "/")
	}

	return strings.TrimRight(cfg.PublicOrigin, "/")
}
