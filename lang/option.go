package lang

import (
	"github.com/liuhuayun/spider-flow/lang/parser"
	"github.com/liuhuayun/spider-flow/log"
)

// DefaultMaxDepth is the default maximum expression nesting depth.
const DefaultMaxDepth = parser.DefaultMaxDepth

type config struct {
	maxDepth int
	noCache  bool
	logger   log.Logger
}

// Option configures a parse call.
type Option func(*config)

func makeConfig(opts ...Option) config {
	cfg := config{
		maxDepth: DefaultMaxDepth,
		logger:   log.Default(),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithMaxDepth bounds expression nesting. Nesting beyond depth fails the
// parse with [ErrMaxDepth] instead of exhausting the call stack.
func WithMaxDepth(depth int) Option {
	return func(cfg *config) {
		if depth > 0 {
			cfg.maxDepth = depth
		}
	}
}

// WithoutCache disables the content-hash template cache for this call.
func WithoutCache() Option {
	return func(cfg *config) {
		cfg.noCache = true
	}
}

// WithLogger routes parse diagnostics to l instead of the package
// default logger.
func WithLogger(l log.Logger) Option {
	return func(cfg *config) {
		cfg.logger = l
	}
}
