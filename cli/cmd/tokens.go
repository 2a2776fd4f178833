package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/liuhuayun/spider-flow/lang"
	"github.com/liuhuayun/spider-flow/lang/lexer"
	"github.com/liuhuayun/spider-flow/log"
)

// Tokens dumps the token stream of template sources, one token per line
// with its position, type, and lexeme.
type Tokens struct {
	Source string `arg:"" default:"-" help:"Template source file or '-' for stdin" name:"source" optional:""`
}

// Run executes the tokens command.
func (t *Tokens) Run(ctx context.Context) error {
	name, source, err := openSource(ctx, t.Source)
	if err != nil {
		return err
	}
	defer source.Close()

	data, err := io.ReadAll(source)
	if err != nil {
		return err
	}

	tokens, err := lexer.Tokenize(string(data))
	if err != nil {
		fmt.Fprintln(stderr(ctx), lang.FormatError(err))

		return ErrCheckFailed.Wrap(err).
			With(slog.String("source", name))
	}

	log.DebugContext(ctx, "source tokenized",
		slog.String("source", name),
		slog.Int("tokens", len(tokens)),
	)

	w := tabwriter.NewWriter(stdout(ctx), 0, 0, 2, ' ', 0)

	for _, tok := range tokens {
		line, column := tok.Span.Position()
		fmt.Fprintf(w, "%d:%d\t%s\t%q\n", line, column, tok.Type, tok.Text())
	}

	return w.Flush()
}
