package lang

import (
	"bytes"
	"context"
	"encoding/gob"
	"log/slog"
	"sync"

	"github.com/zeebo/xxh3"
)

// templateCache stores successfully parsed templates keyed by the
// combined hash of source text and parse options. Templates are
// immutable, so a cached value is shared by every caller.
//
//nolint:gochecknoglobals
var templateCache sync.Map

type cacheEntry struct {
	source   string
	template *Template
}

// cacheKey hashes the source together with the options that affect the
// resulting tree.
func cacheKey(source string, cfg config) uint64 {
	var buf bytes.Buffer

	enc := gob.NewEncoder(&buf)

	_ = enc.Encode(cfg.maxDepth)

	buf.WriteString(source)

	return xxh3.Hash(buf.Bytes())
}

// parseCached returns the cached template for source, parsing and
// caching it on first sight. Failed parses are never cached.
func parseCached(ctx context.Context, source string, cfg config) (*Template, error) {
	key := cacheKey(source, cfg)

	if cached, ok := templateCache.Load(key); ok {
		entry := cached.(*cacheEntry)

		// Guard against a hash collision before trusting the entry.
		if entry.source == source {
			cfg.logger.TraceContext(ctx, "template cache hit",
				slog.Uint64("key", key),
			)

			return entry.template, nil
		}
	}

	template, err := parse(ctx, source, cfg)
	if err != nil {
		return nil, err
	}

	templateCache.Store(key, &cacheEntry{source: source, template: template})

	return template, nil
}

// PurgeCache drops every cached template. Intended for tests and
// long-running hosts that recompile many one-off sources.
func PurgeCache() {
	templateCache.Range(func(key, _ any) bool {
		templateCache.Delete(key)

		return true
	})
}
