// Package federation retrieves competitor payloads, avatars and leaderboard
// sizes from the federation's read-only JSON APIs.
package federation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/okian/cubestand/internal/domain/record"
	"github.com/okian/cubestand/pkg/logger"
	"github.com/okian/cubestand/pkg/metrics"
)

const (
	defaultTimeout   = 15 * time.Second
	defaultUserAgent = "cubestand/1.0"
	maxBodyBytes     = 4 << 20

	endpointCompetitor = "competitor"
	endpointAvatar     = "avatar"
	endpointTotal      = "total"
)

// Client talks to the federation APIs.
type Client struct {
	httpClient *http.Client
	baseURL    string
	avatarURL  string
	userAgent  string
	maxBody    int64
	logger     logger.Logger
}

// New creates a client for the competitor/leaderboard API rooted at baseURL.
// The avatar API defaults to the same root.
func New(baseURL string, opts ...Option) *Client {
	base := strings.TrimRight(baseURL, "/")
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    base,
		avatarURL:  base,
		userAgent:  defaultUserAgent,
		maxBody:    maxBodyBytes,
		logger:     logger.Get().Named("federation"),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Competitor fetches the raw payload of competitor id.
func (c *Client) Competitor(ctx context.Context, id string) (record.RawCompetitor, error) {
	u := fmt.Sprintf("%s/persons/%s.json", c.baseURL, url.PathEscape(id))

	body, err := c.fetch(ctx, endpointCompetitor, u)
	if err != nil {
		if errors.Is(err, errNotFound) {
			return record.RawCompetitor{}, fmt.Errorf("%w: %s", ErrCompetitorNotFound, id)
		}
		return record.RawCompetitor{}, err
	}

	raw, err := record.DecodeRaw(body)
	if err != nil {
		return record.RawCompetitor{}, err
	}
	if raw.ID == "" {
		raw.ID = id
	}
	return raw, nil
}

type avatarResponse struct {
	Person struct {
		Avatar struct {
			URL       string `json:"url"`
			IsDefault bool   `json:"is_default"`
		} `json:"avatar"`
	} `json:"person"`
}

// Avatar looks up the avatar of competitor id. It returns nil when the
// competitor has no avatar or only the federation's default picture.
func (c *Client) Avatar(ctx context.Context, id string) (*record.RawAvatar, error) {
	u := fmt.Sprintf("%s/persons/%s", c.avatarURL, url.PathEscape(id))

	body, err := c.fetch(ctx, endpointAvatar, u)
	if err != nil {
		if errors.Is(err, errNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var resp avatarResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: decoding avatar: %w", ErrUpstream, err)
	}
	avatar := resp.Person.Avatar
	if avatar.URL == "" || avatar.IsDefault {
		return nil, nil
	}
	return &record.RawAvatar{URL: avatar.URL}, nil
}

type totalResponse struct {
	Total      *int `json:"total"`
	Pagination struct {
		Total *int `json:"total"`
	} `json:"pagination"`
}

// LeaderboardTotal returns the number of competitors ranked on a leaderboard.
func (c *Client) LeaderboardTotal(ctx context.Context, key record.LeaderboardKey) (int, error) {
	u := fmt.Sprintf("%s/rank/%s/%s/%s.json",
		c.baseURL, url.PathEscape(key.Scope), url.PathEscape(string(key.Discipline)), url.PathEscape(key.Event))

	body, err := c.fetch(ctx, endpointTotal, u)
	if err != nil {
		if errors.Is(err, errNotFound) {
			return 0, fmt.Errorf("%w: %s/%s/%s", ErrLeaderboardNotFound, key.Scope, key.Discipline, key.Event)
		}
		return 0, err
	}

	var resp totalResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, fmt.Errorf("%w: decoding total: %w", ErrUpstream, err)
	}
	switch {
	case resp.Total != nil:
		return *resp.Total, nil
	case resp.Pagination.Total != nil:
		return *resp.Pagination.Total, nil
	default:
		return 0, fmt.Errorf("%w: leaderboard response has no total", ErrUpstream)
	}
}

var errNotFound = errors.New("not found")

// fetch performs a GET and returns the body of a 2xx response.
func (c *Client) fetch(ctx context.Context, endpoint, u string) ([]byte, error) {
	start := time.Now()
	outcome := metrics.OutcomeError
	defer func() {
		metrics.RecordFederationRequest(endpoint, outcome, float64(time.Since(start).Milliseconds()))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug(ctx, "federation request failed", logger.String("endpoint", endpoint), logger.Error(err))
		return nil, fmt.Errorf("%w: %s: %w", ErrUpstream, endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s response: %w", ErrUpstream, endpoint, err)
	}
	if int64(len(body)) > c.maxBody {
		return nil, fmt.Errorf("%w: %s response too large (limit %d bytes)", ErrUpstream, endpoint, c.maxBody)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		outcome = metrics.OutcomeNotFound
		return nil, errNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		c.logger.Debug(ctx, "federation returned non-success status",
			logger.String("endpoint", endpoint),
			logger.Int("status", resp.StatusCode),
		)
		return nil, fmt.Errorf("%w: %s: status=%d", ErrUpstream, endpoint, resp.StatusCode)
	}

	outcome = metrics.OutcomeOK
	return body, nil
}
