package remote

import (
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the http.Client used for requests.
// Default: http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger for request debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithObserver registers an observer for every request.
func WithObserver(o Observer) Option {
	return func(c *Client) {
		c.observer = o
	}
}

// WithTracerName resolves the tracer from the global provider under name.
func WithTracerName(name string) Option {
	return func(c *Client) {
		c.tracer = otel.Tracer(name)
	}
}
