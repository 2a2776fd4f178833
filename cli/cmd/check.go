package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/liuhuayun/spider-flow/lang"
	"github.com/liuhuayun/spider-flow/log"
)

// Check validates template sources without producing output on success.
type Check struct {
	Source string `arg:"" default:"-" help:"Template source file or '-' for stdin" name:"source" optional:""`

	MaxDepth int  `default:"0"     help:"Maximum expression nesting depth (0 for default)"`
	Quiet    bool `default:"false" help:"Suppress the error report, exit status only" short:"q"`
}

// Run executes the check command. A parse failure is reported with
// source context on stderr and a non-zero exit status.
func (c *Check) Run(ctx context.Context) error {
	name, source, err := openSource(ctx, c.Source)
	if err != nil {
		return err
	}
	defer source.Close()

	opts := []lang.Option{
		lang.WithLogger(log.Default()),
		lang.WithoutCache(),
	}

	if c.MaxDepth > 0 {
		opts = append(opts, lang.WithMaxDepth(c.MaxDepth))
	}

	template, err := lang.ParseReader(ctx, source, opts...)
	if err != nil {
		if !c.Quiet {
			fmt.Fprintln(stderr(ctx), lang.FormatError(err))
		}

		return ErrCheckFailed.Wrap(err).
			With(slog.String("source", name))
	}

	log.DebugContext(ctx, "template valid",
		slog.String("source", name),
		slog.Int("statements", len(template.Nodes)),
	)

	return nil
}
