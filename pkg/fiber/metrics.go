package fiber

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the renderer's Prometheus metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "weft").
	Namespace string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// MetricsOption configures the renderer's Prometheus metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) { c.Namespace = namespace }
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) { c.ConstLabels = labels }
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) { c.Registry = registry }
}

// Metrics holds the Prometheus metrics for one renderer. A nil *Metrics
// is valid and records nothing.
type Metrics struct {
	passesStarted   prometheus.Counter
	fibersProcessed prometheus.Counter
	commitsTotal    prometheus.Counter
	effectsApplied  *prometheus.CounterVec
	errorsTotal     prometheus.Counter
	commitDuration  prometheus.Histogram
	sliceDuration   prometheus.Histogram
}

// NewMetrics creates and registers the renderer metrics.
//
// Metrics collected:
//   - weft_passes_started_total: Counter of render passes started
//   - weft_fibers_processed_total: Counter of units of work performed
//   - weft_commits_total: Counter of completed commits
//   - weft_effects_applied_total: Counter of committed effects by tag
//   - weft_errors_total: Counter of reported engine errors
//   - weft_commit_duration_seconds: Histogram of commit-phase duration
//   - weft_slice_duration_seconds: Histogram of idle-slice duration
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := MetricsConfig{
		Namespace: "weft",
		Registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &Metrics{
		passesStarted: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "passes_started_total",
			Help:        "Total number of render passes started",
			ConstLabels: config.ConstLabels,
		}),
		fibersProcessed: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "fibers_processed_total",
			Help:        "Total number of units of work performed",
			ConstLabels: config.ConstLabels,
		}),
		commitsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "commits_total",
			Help:        "Total number of completed commits",
			ConstLabels: config.ConstLabels,
		}),
		effectsApplied: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "effects_applied_total",
			Help:        "Total number of committed effects by tag",
			ConstLabels: config.ConstLabels,
		}, []string{"effect"}),
		errorsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "errors_total",
			Help:        "Total number of reported engine errors",
			ConstLabels: config.ConstLabels,
		}),
		commitDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Name:        "commit_duration_seconds",
			Help:        "Commit-phase duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     prometheus.DefBuckets,
		}),
		sliceDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Name:        "slice_duration_seconds",
			Help:        "Idle-slice duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) recordPassStarted() {
	if m != nil {
		m.passesStarted.Inc()
	}
}

func (m *Metrics) recordFiber() {
	if m != nil {
		m.fibersProcessed.Inc()
	}
}

func (m *Metrics) recordCommit(d time.Duration) {
	if m != nil {
		m.commitsTotal.Inc()
		m.commitDuration.Observe(d.Seconds())
	}
}

func (m *Metrics) recordEffect(tag EffectTag) {
	if m != nil {
		m.effectsApplied.WithLabelValues(tag.String()).Inc()
	}
}

func (m *Metrics) recordError() {
	if m != nil {
		m.errorsTotal.Inc()
	}
}

func (m *Metrics) recordSlice(d time.Duration) {
	if m != nil {
		m.sliceDuration.Observe(d.Seconds())
	}
}
