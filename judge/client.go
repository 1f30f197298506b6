// Package judge fetches solving statistics from LeetCode and Codeforces.
package judge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"github.com/rs/zerolog"

	"github.com/quantonganh/codebinge"
)

const (
	DefaultLeetCodeURL   = "https://leetcode.com"
	DefaultCodeforcesURL = "https://codeforces.com"

	defaultTimeout = 30 * time.Second
)

// Client talks to both judge platforms.
type Client struct {
	leetcodeURL   string
	codeforcesURL string
	httpClient    *http.Client
	logger        zerolog.Logger

	attempts   uint
	retryDelay time.Duration
	now        func() time.Time
}

var _ codebinge.JudgeService = (*Client)(nil)

// NewClient returns a judge client from the Judge section of config
func NewClient(config *codebinge.Config, logger zerolog.Logger) *Client {
	timeout := config.Judge.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	c := &Client{
		leetcodeURL:   config.Judge.LeetCodeURL,
		codeforcesURL: config.Judge.CodeforcesURL,
		httpClient:    &http.Client{Timeout: timeout},
		logger:        logger,
		attempts:      3,
		retryDelay:    time.Second,
		now:           time.Now,
	}
	if c.leetcodeURL == "" {
		c.leetcodeURL = DefaultLeetCodeURL
	}
	if c.codeforcesURL == "" {
		c.codeforcesURL = DefaultCodeforcesURL
	}

	return c
}

// statusError is a non-2xx response from a platform.
type statusError struct {
	StatusCode int
	Body       string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

func retryable(err error) bool {
	switch codebinge.ErrorCode(err) {
	case codebinge.ErrInvalid, codebinge.ErrNotFound:
		return false
	}
	if se, ok := err.(*statusError); ok {
		return se.StatusCode == http.StatusTooManyRequests || se.StatusCode >= http.StatusInternalServerError
	}
	return true
}

// do runs fn with retries; fn reports terminal conditions as *codebinge.Error.
func (c *Client) do(ctx context.Context, op string, fn func() error) error {
	var last error
	err := retry.Do(
		func() error {
			last = fn()
			return last
		},
		retry.Attempts(c.attempts),
		retry.Delay(c.retryDelay),
		retry.MaxDelay(30*time.Second),
		retry.MaxJitter(c.retryDelay),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Info().Str("op", op).Uint("attempt", n).Err(err).Msg("retrying judge request")
		}),
		retry.RetryIf(retryable),
	)
	if err == nil {
		return nil
	}

	if last != nil && !retryable(last) {
		if _, ok := last.(*codebinge.Error); ok {
			return last
		}
	}
	return &codebinge.Error{Code: codebinge.ErrUnavailable, Op: op, Err: err}
}

// roundTrip sends req and decodes a JSON body into out. Codeforces answers some
// failures with 400 and a JSON body, so okStatus lists statuses whose body is decoded.
func (c *Client) roundTrip(ctx context.Context, method, url string, body []byte, out interface{}, okStatus ...int) (int, error) {
	var reader io.Reader = http.NoBody
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Str("url", url).Err(err).Msg("judge request failed")
		return 0, err
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Warn().Err(closeErr).Msg("failed to close response body")
		}
	}()

	c.logger.Debug().
		Str("url", url).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("judge request completed")

	decode := resp.StatusCode >= 200 && resp.StatusCode < 300
	for _, s := range okStatus {
		if resp.StatusCode == s {
			decode = true
		}
	}
	if !decode {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return resp.StatusCode, &statusError{StatusCode: resp.StatusCode, Body: string(b)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("decode response: %w", err)
	}
	return resp.StatusCode, nil
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
