// Package lang compiles expression-template source text into an abstract
// syntax tree.
//
// A template interleaves literal text with ${...} expression segments
// supporting arithmetic, logic, comparisons, ternary conditionals,
// variable/member/index access, function and method calls, map and list
// literals, and inline lambdas for collection-processing methods:
//
//	Hello ${user.name}, you have ${orders.filter(o->o.open).count} open orders.
//
// [Parse] tokenizes the source, parses it, and returns a [Template]
// holding the ordered statement nodes. The tree is handed to an external
// evaluator; this package defines no evaluation semantics beyond the
// parse-time pre-resolution of registered collection operations.
//
// Parsing is synchronous and holds no shared mutable state, so
// independent calls may run concurrently. Successfully parsed templates
// are cached by content hash; see [WithoutCache].
package lang

import (
	"context"
	"io"
	"log/slog"

	"github.com/klauspost/readahead"

	"github.com/liuhuayun/spider-flow/lang/ast"
	"github.com/liuhuayun/spider-flow/lang/lexer"
	"github.com/liuhuayun/spider-flow/lang/parser"
)

// Template is the compiled form of one template source: the ordered
// sequence of statement nodes the parser produced. A Template is
// immutable once returned and safe to share across goroutines.
type Template struct {
	Source string
	Nodes  []ast.Node
}

// Parse compiles source into a Template.
func Parse(ctx context.Context, source string, opts ...Option) (*Template, error) {
	cfg := makeConfig(opts...)

	if cfg.noCache {
		return parse(ctx, source, cfg)
	}

	return parseCached(ctx, source, cfg)
}

// ParseReader compiles a template read from r. The reader is wrapped
// with asynchronous read-ahead so input is pre-fetched while earlier
// chunks are consumed.
func ParseReader(ctx context.Context, r io.Reader, opts ...Option) (*Template, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err)
	}

	return Parse(ctx, string(data), opts...)
}

// parse runs the lexer and parser without consulting the cache.
func parse(ctx context.Context, source string, cfg config) (*Template, error) {
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		return nil, wrapParseError(err)
	}

	cfg.logger.TraceContext(ctx, "tokenized",
		slog.Int("source_bytes", len(source)),
		slog.Int("tokens", len(tokens)),
	)

	nodes, err := parser.Parser{MaxDepth: cfg.maxDepth}.Parse(parser.NewStream(source, tokens))
	if err != nil {
		return nil, wrapParseError(err)
	}

	cfg.logger.DebugContext(ctx, "parsed template",
		slog.Int("statements", len(nodes)),
	)

	return &Template{Source: source, Nodes: nodes}, nil
}
