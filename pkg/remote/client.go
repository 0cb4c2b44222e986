package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/rstore/internal/logging"
)

// ErrMalformedJSON is wrapped by Get when the response body can't be decoded.
var ErrMalformedJSON = errors.New("remote: malformed JSON body")

const defaultTracerName = "github.com/vango-dev/rstore/pkg/remote"

// Observer is notified after every request. code is 0 when no response was
// received.
type Observer interface {
	ObserveRequest(method string, code int, elapsed time.Duration, err error)
}

// Client issues CRUD requests against one resource URL.
// It holds no state besides its configuration and is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	tracer     trace.Tracer
	observer   Observer
}

// New creates a client for the resource at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		logger:     logging.Nop(),
		tracer:     otel.Tracer(defaultTracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the resource URL the client is bound to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get issues GET {base}?{params} and decodes the JSON body into out.
// It fails on a transport error or a body that isn't valid JSON for out.
// The status code is not inspected.
func (c *Client) Get(ctx context.Context, params url.Values, out any) error {
	target := c.baseURL + "?" + params.Encode()

	resp, err := c.do(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedJSON, err)
	}
	return nil
}

// Post sends model as JSON to the base URL.
func (c *Client) Post(ctx context.Context, model any) (*http.Response, error) {
	body, err := json.Marshal(model)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPost, c.baseURL, body)
}

// Put sends model as JSON to the base URL.
func (c *Client) Put(ctx context.Context, model any) (*http.Response, error) {
	body, err := json.Marshal(model)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPut, c.baseURL, body)
}

// Delete issues DELETE {base}/{id}.
func (c *Client) Delete(ctx context.Context, id string) (*http.Response, error) {
	return c.do(ctx, http.MethodDelete, c.baseURL+"/"+url.PathEscape(id), nil)
}

// do sends a single request. Mutating verbs always carry a JSON content type.
func (c *Client) do(ctx context.Context, method, target string, body []byte) (*http.Response, error) {
	ctx, span := c.tracer.Start(ctx, "remote "+method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.full", target),
		),
	)
	defer span.End()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if method != http.MethodGet {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(start)

	code := 0
	if resp != nil {
		code = resp.StatusCode
	}
	if c.observer != nil {
		c.observer.ObserveRequest(method, code, elapsed, err)
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.Debug("remote request failed", "method", method, "url", target, "error", err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("http.response.status_code", code))
	c.logger.Debug("remote request", "method", method, "url", target, "status", code, "elapsed", elapsed)
	return resp, nil
}
