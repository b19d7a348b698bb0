package cache

// config.go defines the functional options shared by ConfigCache and
// ConnectionCache, in exactly the shape of the teacher's pkg/config.go:
// immutable once applied, defaults computed in defaultOptions, applied and
// resolved (metrics sink) in applyOptions. The one configuration directive named in the design
// (§6 "object_cache_inherit on|off") is WithInherit; parsing the directive
// out of a configuration file is the embedder's job (§1 lists the
// configuration parser as an external collaborator).
//
// © 2025 sslcache authors. MIT License.

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// defaultPasswordBufSize mirrors OpenSSL's PEM_BUFSIZE, the historical size
// of the stack buffer pass-phrase callbacks copy into.
const defaultPasswordBufSize = 1024

type options struct {
	pathPrefix string
	inherit    bool
	engines    *EngineRegistry
	pwBufSize  int
	logger     *zap.Logger
	registry   *prometheus.Registry
	nowFn      func() time.Time

	// resolved during applyOptions
	metrics metricsSink
}

func defaultOptions() *options {
	return &options{
		inherit:   true,
		pwBufSize: defaultPasswordBufSize,
		logger:    zap.NewNop(),
		nowFn:     time.Now,
	}
}

// Option configures a ConfigCache or ConnectionCache at construction time.
type Option func(*options)

// WithPathPrefix sets the directory PATH references are resolved against
// when they are not already absolute (§4.1 rule 3).
func WithPathPrefix(prefix string) Option {
	return func(o *options) { o.pathPrefix = prefix }
}

// WithInherit toggles cross-generation adoption for a configuration cache
// (§6's `object_cache_inherit` directive). It has no effect on a
// ConnectionCache, which never inherits.
func WithInherit(enabled bool) Option {
	return func(o *options) { o.inherit = enabled }
}

// WithEngines supplies the hardware-engine registry the PKEY loader's
// ENGINE branch consults.
func WithEngines(r *EngineRegistry) Option {
	return func(o *options) { o.engines = r }
}

// WithPasswordBufSize overrides the password callback's copy buffer size
// (§4.2); the zero value keeps the default.
func WithPasswordBufSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.pwBufSize = n
		}
	}
}

// WithLogger plugs an external zap.Logger. Passing nil leaves the default
// no-op logger in place — the cache never constructs its own sink (§1 lists
// logging as an external collaborator).
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics enables Prometheus metrics collection. Passing nil disables
// metrics (the default).
func WithMetrics(reg *prometheus.Registry) Option {
	return func(o *options) { o.registry = reg }
}

// WithClock overrides the cache's time source. Intended for deterministic
// tests of the validity/inactivity lifetimes (§8 scenarios 5 and 6); real
// embedders should leave this at its time.Now default.
func WithClock(fn func() time.Time) Option {
	return func(o *options) {
		if fn != nil {
			o.nowFn = fn
		}
	}
}

func applyOptions(opts []Option) *options {
	cfg := defaultOptions()
	for _, o := range opts {
		o(cfg)
	}
	cfg.metrics = newMetricsSink(cfg.registry)
	return cfg
}

func (o *options) loadDeps() loadDeps {
	return loadDeps{
		pathPrefix: o.pathPrefix,
		engines:    o.engines,
		pwBufSize:  o.pwBufSize,
		logger:     o.logger,
	}
}
