// Package tiingo provides a client for the Tiingo end-of-day data API, used
// as the upstream source of dividend distribution history.
package tiingo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"dividend-lab/internal/domain"
)

// Default configuration values.
const (
	DefaultBaseURL     = "https://api.tiingo.com"
	DefaultTimeout     = 30 * time.Second
	DefaultMaxRetries  = 3
	DefaultRetryDelay  = 1 * time.Second
	DefaultMaxDelay    = 10 * time.Second
	DefaultBackoffMult = 2.0
)

// Client fetches daily price and distribution data from Tiingo.
type Client struct {
	baseURL     string
	token       string
	client      *http.Client
	maxRetries  int
	retryDelay  time.Duration
	maxDelay    time.Duration
	backoffMult float64
}

// ClientOption configures Client.
type ClientOption func(*Client)

// WithBaseURL overrides the API base URL, mainly for tests.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithTimeout sets HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.client.Timeout = d
	}
}

// WithMaxRetries sets maximum retry attempts.
func WithMaxRetries(n int) ClientOption {
	return func(c *Client) {
		c.maxRetries = n
	}
}

// WithRetryDelay sets initial retry delay.
func WithRetryDelay(d time.Duration) ClientOption {
	return func(c *Client) {
		c.retryDelay = d
	}
}

// WithHTTPClient sets custom http.Client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.client = client
	}
}

// NewClient creates a new Tiingo API client.
func NewClient(token string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:     DefaultBaseURL,
		token:       token,
		client:      &http.Client{Timeout: DefaultTimeout},
		maxRetries:  DefaultMaxRetries,
		retryDelay:  DefaultRetryDelay,
		maxDelay:    DefaultMaxDelay,
		backoffMult: DefaultBackoffMult,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// dailyRecord is one row of the Tiingo daily endpoint. Only the distribution
// fields matter here; price fields are ignored.
type dailyRecord struct {
	Date        string  `json:"date"`
	DivCash     float64 `json:"divCash"`
	AdjDivCash  float64 `json:"adjDivCash"`
	SplitFactor float64 `json:"splitFactor"`
}

// Dividend is one cash distribution reported by the provider.
type Dividend struct {
	ExDate    time.Time // ex-dividend date, midnight UTC
	Amount    float64   // declared amount per share
	AdjAmount *float64  // split-adjusted amount when the provider supplies one
}

// GetDividends fetches daily records for [start, end] and extracts the days
// carrying a cash distribution.
func (c *Client) GetDividends(ctx context.Context, ticker string, start, end time.Time) ([]*Dividend, error) {
	endpoint := fmt.Sprintf("%s/tiingo/daily/%s/prices", c.baseURL, url.PathEscape(ticker))

	params := url.Values{}
	params.Set("startDate", start.UTC().Format("2006-01-02"))
	params.Set("endDate", end.UTC().Format("2006-01-02"))
	params.Set("token", c.token)

	var records []dailyRecord
	if err := c.getJSON(ctx, endpoint+"?"+params.Encode(), &records); err != nil {
		return nil, fmt.Errorf("fetch daily records for %s: %w", ticker, err)
	}

	var dividends []*Dividend
	for _, r := range records {
		if r.DivCash <= 0 {
			continue
		}
		exDate, err := time.Parse("2006-01-02", truncateDate(r.Date))
		if err != nil {
			return nil, fmt.Errorf("parse ex-date %q for %s: %w", r.Date, ticker, err)
		}
		d := &Dividend{
			ExDate: domain.Day(exDate),
			Amount: r.DivCash,
		}
		if r.AdjDivCash > 0 && r.AdjDivCash != r.DivCash {
			adj := r.AdjDivCash
			d.AdjAmount = &adj
		}
		dividends = append(dividends, d)
	}

	return dividends, nil
}

// getJSON performs a GET with retries and exponential backoff.
func (c *Client) getJSON(ctx context.Context, rawURL string, result interface{}) error {
	delay := c.retryDelay
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			// Exponential backoff
			delay = time.Duration(float64(delay) * c.backoffMult)
			if delay > c.maxDelay {
				delay = c.maxDelay
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("http request: %w", err)
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("read response: %w", err)
			continue
		}

		// Handle rate limiting
		if resp.StatusCode == http.StatusTooManyRequests {
			lastErr = fmt.Errorf("rate limited (429)")
			continue
		}

		if resp.StatusCode != http.StatusOK {
			lastErr = fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
			continue
		}

		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
		return nil
	}

	return fmt.Errorf("all %d attempts failed: %w", c.maxRetries+1, lastErr)
}

// truncateDate extracts YYYY-MM-DD from the provider's timestamp format.
func truncateDate(s string) string {
	if len(s) > 10 {
		return s[:10]
	}
	return s
}
