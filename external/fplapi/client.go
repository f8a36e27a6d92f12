// Package fplapi is a thin client for the public Fantasy Premier League
// API. Calls are paced by a fixed inter-request delay and carry no retry
// policy; a failed call surfaces immediately with the failing URL attached.
package fplapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"golang.org/x/time/rate"

	"github.com/fpl-analytics/fpl-pipeline/internal/platform/logging"
)

const (
	defaultBaseURL   = "https://fantasy.premierleague.com/api"
	defaultUserAgent = "FPL-Data-Pipeline/1.0"
	maxResponseBytes = 16 << 20
)

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	UserAgent      string
	Timeout        time.Duration
	RateLimitDelay time.Duration
	Logger         *logging.Logger
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	limiter    *rate.Limiter
	logger     *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 30 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RateLimitDelay > 0 {
		limiter = rate.NewLimiter(rate.Every(cfg.RateLimitDelay), 1)
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		userAgent:  userAgent,
		limiter:    limiter,
		logger:     logger,
	}
}

// FetchBootstrap fetches the bootstrap-static season snapshot.
func (c *Client) FetchBootstrap(ctx context.Context) (Bootstrap, error) {
	var out Bootstrap
	if err := c.getJSON(ctx, "/bootstrap-static/", nil, &out); err != nil {
		return Bootstrap{}, err
	}
	return out, nil
}

// FetchFixtures fetches fixtures, optionally restricted to one gameweek.
// event 0 returns the whole season.
func (c *Client) FetchFixtures(ctx context.Context, event int) ([]Fixture, error) {
	var query url.Values
	if event > 0 {
		query = url.Values{"event": []string{fmt.Sprintf("%d", event)}}
	}
	var out []Fixture
	if err := c.getJSON(ctx, "/fixtures/", query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FetchPlayerDetail fetches the element-summary payload for one player.
func (c *Client) FetchPlayerDetail(ctx context.Context, playerID int) (ElementSummary, error) {
	var out ElementSummary
	if err := c.getJSON(ctx, fmt.Sprintf("/element-summary/%d/", playerID), nil, &out); err != nil {
		return ElementSummary{}, err
	}
	return out, nil
}

// FetchEventLive fetches the live points payload for one gameweek.
func (c *Client) FetchEventLive(ctx context.Context, event int) (EventLive, error) {
	var out EventLive
	if err := c.getJSON(ctx, fmt.Sprintf("/event/%d/live/", event), nil, &out); err != nil {
		return EventLive{}, err
	}
	return out, nil
}

// FetchAllPlayerDetails fetches the element-summary payload for every player
// in the bootstrap roster, one request per player. maxPlayers > 0 caps the
// roster (for testing). A failed per-player fetch is logged and skipped; only
// context cancellation aborts the batch early.
func (c *Client) FetchAllPlayerDetails(ctx context.Context, maxPlayers int) ([]PlayerHistory, error) {
	bootstrap, err := c.FetchBootstrap(ctx)
	if err != nil {
		return nil, err
	}

	elements := bootstrap.Elements
	if maxPlayers > 0 && maxPlayers < len(elements) {
		elements = elements[:maxPlayers]
	}

	out := make([]PlayerHistory, 0, len(elements))
	for _, element := range elements {
		detail, err := c.FetchPlayerDetail(ctx, element.ID)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.logger.WarnContext(ctx, "fetch player detail failed, skipping",
				"player_id", element.ID,
				"error", err,
			)
			continue
		}
		out = append(out, PlayerHistory{PlayerID: element.ID, Data: detail})
	}

	return out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, target any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	fullURL := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return crerr.Wrapf(err, "build request %s", fullURL)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return crerr.Wrapf(err, "fetch %s", fullURL)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return crerr.Wrapf(err, "read response %s", fullURL)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return crerr.Newf("fetch %s: status=%d body=%s", fullURL, resp.StatusCode, abbreviateBody(raw))
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return crerr.Wrapf(err, "decode %s", fullURL)
	}

	return nil
}

func abbreviateBody(raw []byte) string {
	const limit = 256
	body := strings.TrimSpace(string(raw))
	if len(body) > limit {
		return body[:limit] + "..."
	}
	return body
}
