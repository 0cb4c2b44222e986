// Package metrics exports store and remote-client activity to Prometheus.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/rstore/pkg/remote"
	"github.com/vango-dev/rstore/pkg/store"
)

// Config configures the collectors.
type Config struct {
	// Namespace is the metrics namespace (default: "rstore").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for durations.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures the collectors.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "rstore",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics implements store.Observer and remote.Observer.
type Metrics struct {
	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	items             *prometheus.GaugeVec
	requestsTotal     *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
}

var (
	_ store.Observer  = (*Metrics)(nil)
	_ remote.Observer = (*Metrics)(nil)
)

// New registers the collectors with the configured registry. Registering
// twice against the same registry panics, as with promauto.
//
// Metrics collected:
//   - rstore_store_operations_total: operations by store, op and result
//   - rstore_store_operation_duration_seconds: operation latency by store and op
//   - rstore_store_items: current item count by store
//   - rstore_remote_requests_total: requests by method and status code
//   - rstore_remote_request_duration_seconds: request latency by method
func New(opts ...Option) *Metrics {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if config.Registry == nil {
		config.Registry = prometheus.DefaultRegisterer
	}
	if len(config.Buckets) == 0 {
		config.Buckets = prometheus.DefBuckets
	}

	factory := promauto.With(config.Registry)

	return &Metrics{
		operationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "store_operations_total",
			Help:        "Total number of store operations by result",
			ConstLabels: config.ConstLabels,
		}, []string{"store", "op", "result"}),

		operationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "store_operation_duration_seconds",
			Help:        "Store operation duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"store", "op"}),

		items: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "store_items",
			Help:        "Number of items held by each store",
			ConstLabels: config.ConstLabels,
		}, []string{"store"}),

		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "remote_requests_total",
			Help:        "Total number of remote resource requests",
			ConstLabels: config.ConstLabels,
		}, []string{"method", "code"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "remote_request_duration_seconds",
			Help:        "Remote resource request duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"method"}),
	}
}

// ObserveOperation records a completed store operation.
func (m *Metrics) ObserveOperation(storeName, op string, result store.Status, elapsed time.Duration) {
	m.operationsTotal.WithLabelValues(storeName, op, result.String()).Inc()
	m.operationDuration.WithLabelValues(storeName, op).Observe(elapsed.Seconds())
}

// ObserveItems records a store's item count.
func (m *Metrics) ObserveItems(storeName string, count int) {
	m.items.WithLabelValues(storeName).Set(float64(count))
}

// ObserveRequest records a remote request. code 0 is exported as "error".
func (m *Metrics) ObserveRequest(method string, code int, elapsed time.Duration, _ error) {
	label := "error"
	if code != 0 {
		label = strconv.Itoa(code)
	}
	m.requestsTotal.WithLabelValues(method, label).Inc()
	m.requestDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}
