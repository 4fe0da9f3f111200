// Package fetch loads remote datasets behind single-resolution futures.
//
// There are no retries, no caching and no client timeout: a request lives
// as long as its context, and a failure rejects the future once.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/meteorite-map/internal/observability"
)

// ErrStatus marks a response with a non-2xx status code.
var ErrStatus = errors.New("unexpected status")

// maxErrorBody bounds how much of a failed response is kept in the error.
const maxErrorBody = 512

// Client fetches datasets over HTTP.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates a dataset client.
func NewClient(logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		httpClient: &http.Client{},
		logger:     logger,
		metrics:    metrics,
	}
}

// Get starts fetching url immediately and returns a future of the decoded body.
// dataset labels logs and metrics.
func Get[T any](ctx context.Context, c *Client, dataset, url string, decode Decoder[T]) *Future[T] {
	f := newFuture[T]()
	go func() {
		start := time.Now()
		v, err := fetchAndDecode(ctx, c, url, decode)
		c.observe(dataset, url, start, err)
		f.settle(v, err)
	}()
	return f
}

// GetJSON fetches url and decodes its body as JSON into a T.
func GetJSON[T any](ctx context.Context, c *Client, dataset, url string) *Future[T] {
	return Get(ctx, c, dataset, url, JSON[T]())
}

// JSON fetches url and returns the body once it is known to be valid JSON.
func (c *Client) JSON(ctx context.Context, dataset, url string) *Future[json.RawMessage] {
	return Get(ctx, c, dataset, url, JSON[json.RawMessage]())
}

// Text fetches url as plain text.
func (c *Client) Text(ctx context.Context, dataset, url string) *Future[string] {
	return Get(ctx, c, dataset, url, Text)
}

// HTML fetches url as an HTML string.
func (c *Client) HTML(ctx context.Context, dataset, url string) *Future[string] {
	return Get(ctx, c, dataset, url, Text)
}

// CSV fetches url as comma-separated rows.
func (c *Client) CSV(ctx context.Context, dataset, url string) *Future[[][]string] {
	return Get(ctx, c, dataset, url, CSV)
}

// TSV fetches url as tab-separated rows.
func (c *Client) TSV(ctx context.Context, dataset, url string) *Future[[][]string] {
	return Get(ctx, c, dataset, url, TSV)
}

func fetchAndDecode[T any](ctx context.Context, c *Client, url string, decode Decoder[T]) (T, error) {
	body, err := c.open(ctx, url)
	if err != nil {
		var zero T
		return zero, err
	}
	defer body.Close()
	return decode(body)
}

// open issues the GET and returns the body of a 2xx response. Other statuses
// become an ErrStatus error carrying the start of the response body.
func (c *Client) open(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("fetch %s: %w %d: %s", url, ErrStatus, resp.StatusCode, body)
	}
	return resp.Body, nil
}

func (c *Client) observe(dataset, url string, start time.Time, err error) {
	elapsed := time.Since(start)
	c.metrics.FetchDuration.WithLabelValues(dataset).Observe(elapsed.Seconds())

	if err != nil {
		c.metrics.FetchRequests.WithLabelValues(dataset, "error").Inc()
		c.logger.Error("fetch failed", "dataset", dataset, "url", url, "error", err)
		return
	}
	c.metrics.FetchRequests.WithLabelValues(dataset, "success").Inc()
	c.logger.Info("dataset fetched", "dataset", dataset, "duration", elapsed)
}
