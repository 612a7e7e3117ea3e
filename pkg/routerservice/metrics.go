package routerservice

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus metrics of a Service.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "vango").
	Namespace string

	// Subsystem is the metrics subsystem (default: "router_service").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "vango",
		Subsystem: "router_service",
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the Prometheus collectors of a Service.
// A nil *Metrics records nothing.
type Metrics struct {
	transitionsTotal    *prometheus.CounterVec
	activeChecksTotal   *prometheus.CounterVec
	urlGenerationsTotal *prometheus.CounterVec
}

// NewMetrics creates and registers the collectors.
//
// Metrics collected:
//   - vango_router_service_transitions_total: transitions by target kind (route, url) and method (navigate, replace)
//   - vango_router_service_active_checks_total: activity checks by result
//   - vango_router_service_url_generations_total: URL generations by status
//
// Registering twice against the same registry panics, so create one
// Metrics per registry and share it between services.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		transitionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "transitions_total",
			Help:        "Total number of transitions requested through the router service",
			ConstLabels: config.ConstLabels,
		}, []string{"target", "method"}),

		activeChecksTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "active_checks_total",
			Help:        "Total number of active route checks by result",
			ConstLabels: config.ConstLabels,
		}, []string{"result"}),

		urlGenerationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "url_generations_total",
			Help:        "Total number of URL generations by status",
			ConstLabels: config.ConstLabels,
		}, []string{"status"}),
	}
}

func (m *Metrics) recordTransition(req Request) {
	if m == nil {
		return
	}
	target := "route"
	if req.IsURL {
		target = "url"
	}
	method := ModeNavigate
	if req.Replace {
		method = ModeReplace
	}
	m.transitionsTotal.WithLabelValues(target, method.String()).Inc()
}

func (m *Metrics) recordActiveCheck(active bool) {
	if m == nil {
		return
	}
	result := "false"
	if active {
		result = "true"
	}
	m.activeChecksTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) recordURLGeneration(err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.urlGenerationsTotal.WithLabelValues(status).Inc()
}
