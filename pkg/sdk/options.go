package boiledegg

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/NathanielBerney/boiledegg/internal/domain"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	rdkitBaseURL string
	rdkitTimeout time.Duration
	includeSandP bool

	source domain.DescriptorSource

	cacheAddrs    []string
	cachePassword string
	cacheTTL      time.Duration

	workers int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithRDKit configures an RDKit descriptor sidecar as the descriptor source.
func WithRDKit(baseURL string) Option {
	return optionFunc(func(c *clientConfig) {
		c.rdkitBaseURL = baseURL
	})
}

// WithRDKitTimeout sets the per-request timeout for the RDKit sidecar.
// Default: 10s.
func WithRDKitTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.rdkitTimeout = d
	})
}

// WithoutSandP excludes sulfur and phosphorus contributions from TPSA.
// Default is to include them, matching the published BOILED-Egg model.
func WithoutSandP() Option {
	return optionFunc(func(c *clientConfig) {
		c.includeSandP = false
	})
}

// WithDescriptorSource sets a custom descriptor source, replacing the
// RDKit sidecar. Takes precedence over WithRDKit.
func WithDescriptorSource(s domain.DescriptorSource) Option {
	return optionFunc(func(c *clientConfig) {
		c.source = s
	})
}

// WithCache enables a Redis-backed descriptor cache.
func WithCache(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheAddrs = []string{addr}
		c.cachePassword = password
	})
}

// WithCacheTTL sets the descriptor cache entry TTL. Default: 720h.
func WithCacheTTL(ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheTTL = ttl
	})
}

// WithWorkers sets batch classification concurrency. Default: 4.
func WithWorkers(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.workers = n
	})
}

// WithLogger enables structured logging for client operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers client metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}

// classifyConfig holds per-call options.
type classifyConfig struct {
	properties []string
}

// ClassifyOption configures a single classification call.
type ClassifyOption func(*classifyConfig)

// WithProperties restricts the evaluation to the named properties.
// Unknown names are ignored. Default: all supported properties.
func WithProperties(names ...string) ClassifyOption {
	return func(c *classifyConfig) {
		c.properties = names
	}
}
