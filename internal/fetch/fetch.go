// Package fetch issues the single outbound POST against the PXWeb table API.
package fetch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// TransportError reports a failed table fetch: either the request never
// completed or the API answered with a non-2xx status.
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Config captures the parameters for the API client.
type Config struct {
	// BaseURL is the API root up to and including the subject-tree START
	// segment, without a trailing slash.
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// Client wraps a resty client pointed at one PXWeb API root.
type Client struct {
	rc      *resty.Client
	baseURL string
	logger  *zap.Logger
}

// New builds a Client. There is no retry: the tool surfaces the first
// transport failure and terminates.
func New(cfg Config, logger *zap.Logger) *Client {
	rc := resty.New()
	rc.SetTimeout(cfg.Timeout)
	if cfg.UserAgent != "" {
		rc.SetHeader("User-Agent", cfg.UserAgent)
	}
	return &Client{
		rc:      rc,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		logger:  logger,
	}
}

// FetchTable POSTs the payload to <base>/<areaPath>/<tableID> and returns the
// raw response body. The payload is sent byte-for-byte as received from the
// query spec.
func (c *Client) FetchTable(ctx context.Context, areaPath, tableID string, payload []byte) ([]byte, error) {
	url := fmt.Sprintf("%s/%s/%s", c.baseURL, strings.Trim(areaPath, "/"), tableID)

	c.logger.Info("fetching table",
		zap.String("url", url),
		zap.String("table_id", tableID),
	)

	res, err := c.rc.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(url)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	if !res.IsSuccess() {
		return nil, &TransportError{URL: url, StatusCode: res.StatusCode()}
	}

	c.logger.Info("table fetched",
		zap.String("url", url),
		zap.Int("status", res.StatusCode()),
		zap.Int("bytes", len(res.Body())),
		zap.Duration("duration", res.Time()),
	)
	return res.Body(), nil
}
