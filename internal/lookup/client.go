// Package lookup queries a public game database by title so personal
// ratings can be compared with aggregated critic scores.
package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the search proxy used when none is configured.
const DefaultBaseURL = "http://localhost:8787/igdb/games"

// ResultLimit is how many games one search returns.
const ResultLimit = 5

// Platform is a platform a game was released on.
type Platform struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Game is one search result.
type Game struct {
	ID               int        `json:"id"`
	Name             string     `json:"name"`
	AggregatedRating *float64   `json:"aggregated_rating,omitempty"`
	FirstReleaseDate *int64     `json:"first_release_date,omitempty"`
	Platforms        []Platform `json:"platforms,omitempty"`
}

// Rating5 converts the 0-100 aggregated rating to the 0-5 vote scale.
func (g Game) Rating5() *float64 {
	if g.AggregatedRating == nil {
		return nil
	}
	v := *g.AggregatedRating / 20
	return &v
}

// ReleaseYear is the UTC year of the first release date.
func (g Game) ReleaseYear() *int {
	if g.FirstReleaseDate == nil {
		return nil
	}
	y := time.Unix(*g.FirstReleaseDate, 0).UTC().Year()
	return &y
}

type Client struct {
	httpClient       *http.Client
	baseURL          string
	retryMaxAttempts int
	retryBaseDelay   time.Duration
	retryMaxDelay    time.Duration
}

// NewClient allows customizing HTTP timeout and retry/backoff behavior.
func NewClient(baseURL string, httpTimeout time.Duration, retryMax int, baseDelay, maxDelay time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpTimeout <= 0 {
		httpTimeout = 30 * time.Second
	}
	if retryMax <= 0 {
		retryMax = 3
	}
	if baseDelay <= 0 {
		baseDelay = 500 * time.Millisecond
	}
	if maxDelay <= 0 {
		maxDelay = 4 * time.Second
	}
	return &Client{
		httpClient:       &http.Client{Timeout: httpTimeout},
		baseURL:          baseURL,
		retryMaxAttempts: retryMax,
		retryBaseDelay:   baseDelay,
		retryMaxDelay:    maxDelay,
	}
}

// SearchQuery builds the query language body for a title search.
func SearchQuery(title string) string {
	escaped := strings.ReplaceAll(title, `"`, `\"`)
	return fmt.Sprintf(`search "%s"; fields name,aggregated_rating,first_release_date,platforms.name; limit %d;`, escaped, ResultLimit)
}

// Search returns up to ResultLimit games matching title. 429 and 5xx
// responses and network timeouts are retried with backoff.
func (c *Client) Search(ctx context.Context, title string) ([]Game, error) {
	if strings.TrimSpace(title) == "" {
		return nil, errors.New("title cannot be empty")
	}
	body := SearchQuery(title)
	backoff := c.retryBaseDelay

	var lastErr error
	for attempt := 1; attempt <= c.retryMaxAttempts; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Content-Type", "text/plain")
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if isRetryableNetErr(err) && attempt < c.retryMaxAttempts {
				lastErr = err
				if serr := sleepCtx(ctx, c.capDelay(withJitter(backoff))); serr != nil {
					return nil, serr
				}
				backoff *= 2
				continue
			}
			return nil, &UnreachableError{Host: hostOf(c.baseURL), Err: err}
		}

		games, wait, err := c.readResponse(resp)
		if err == nil {
			return games, nil
		}
		lastErr = err
		if wait < 0 || attempt == c.retryMaxAttempts {
			break
		}
		if wait == 0 {
			wait = c.capDelay(withJitter(backoff))
			backoff *= 2
		}
		if serr := sleepCtx(ctx, wait); serr != nil {
			return nil, serr
		}
	}
	return nil, lastErr
}

// readResponse decodes a response. wait is negative when the error must not
// be retried, positive when the server asked for a specific delay.
func (c *Client) readResponse(resp *http.Response) ([]Game, time.Duration, error) {
	defer resp.Body.Close()
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		var games []Game
		if err := json.NewDecoder(resp.Body).Decode(&games); err != nil {
			return nil, -1, fmt.Errorf("decode response: %w", err)
		}
		return games, 0, nil
	}

	b, _ := io.ReadAll(io.LimitReader(resp.Body, 8<<10))
	var raw map[string]any
	_ = json.Unmarshal(b, &raw)
	apiErr := &APIError{StatusCode: resp.StatusCode, Raw: raw, RequestID: extractRequestID(resp)}
	if v, ok := raw["error"].(map[string]any); ok {
		if msg, ok := v["message"].(string); ok {
			apiErr.Message = msg
		}
	} else if msg, ok := raw["message"].(string); ok {
		apiErr.Message = msg
	} else if len(b) > 0 && raw == nil {
		apiErr.Message = strings.TrimSpace(string(b))
	}

	typed := classifyAPIError(apiErr, resp)
	if resp.StatusCode != http.StatusTooManyRequests && resp.StatusCode < 500 {
		return nil, -1, typed
	}
	var wait time.Duration
	if rl, ok := typed.(*RateLimitError); ok && rl.RetryAfter > 0 {
		wait = rl.RetryAfter
	}
	return nil, wait, typed
}

func (c *Client) capDelay(d time.Duration) time.Duration {
	if c.retryMaxDelay > 0 && d > c.retryMaxDelay {
		return c.retryMaxDelay
	}
	return d
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func isRetryableNetErr(err error) bool {
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return true
	}
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}

// parseRetryAfterSeconds interprets Retry-After as seconds or an HTTP date.
func parseRetryAfterSeconds(v string) (int, error) {
	if s, err := strconv.Atoi(v); err == nil {
		return s, nil
	}
	if t, err := http.ParseTime(v); err == nil {
		d := time.Until(t)
		if d < 0 {
			d = 0
		}
		return int(d.Seconds()), nil
	}
	return 0, fmt.Errorf("invalid Retry-After: %q", v)
}

// classifyAPIError maps an APIError to a typed error.
func classifyAPIError(apiErr *APIError, resp *http.Response) error {
	sc := apiErr.StatusCode
	switch {
	case sc == http.StatusUnauthorized || sc == http.StatusForbidden:
		return &AuthError{APIError: apiErr}
	case sc == http.StatusTooManyRequests:
		var ra time.Duration
		if v := resp.Header.Get("Retry-After"); v != "" {
			if secs, err := parseRetryAfterSeconds(v); err == nil && secs > 0 {
				ra = time.Duration(secs) * time.Second
			}
		}
		return &RateLimitError{APIError: apiErr, RetryAfter: ra}
	case sc == http.StatusNotFound:
		return &NotFoundError{APIError: apiErr}
	case sc == http.StatusBadRequest:
		return &BadRequestError{APIError: apiErr}
	case sc >= 500 && sc <= 599:
		return &ServerError{APIError: apiErr}
	}
	return apiErr
}

func extractRequestID(resp *http.Response) string {
	for _, k := range []string{"X-Request-Id", "Cf-Ray", "X-Amzn-Requestid"} {
		if v := resp.Header.Get(k); v != "" {
			return v
		}
	}
	return ""
}

// withJitter returns a backoff duration with +/- 20% jitter applied.
func withJitter(d time.Duration) time.Duration {
	if d <= 0 {
		return 500 * time.Millisecond
	}
	f := 0.8 + rand.Float64()*0.4
	out := time.Duration(float64(d) * f)
	if out <= 0 {
		return d
	}
	return out
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return u.Host
}
