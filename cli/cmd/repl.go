package cmd

import (
	"context"

	"github.com/liuhuayun/spider-flow/cli/cmd/repl"
	"github.com/liuhuayun/spider-flow/log"
)

// Repl opens an interactive parser session.
type Repl struct {
	Cache string `default:"${cache}" help:"Directory for REPL history" hidden:""`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) error {
	return repl.Run(ctx, r.Cache, log.Default())
}
