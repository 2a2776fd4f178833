package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/liuhuayun/spider-flow/cli/cmd"
	"github.com/liuhuayun/spider-flow/pkg"
)

// CLI is the top-level command-line interface for spiderflow.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Source []string `help:"Template source file(s) or '-' for stdin" name:"source" short:"s" type:"existingfile"`

	Version kong.VersionFlag `help:"Print version and exit" short:"V"`

	Check  cmd.Check  `cmd:"" help:"Validate templates and report the first error"`
	Tokens cmd.Tokens `cmd:"" help:"Dump the token stream of templates"`
	Repl   cmd.Repl   `cmd:"" help:"Parse expressions interactively"`

	Parse cmd.Parse `cmd:"" default:"withargs" help:"Parse templates and dump their syntax trees"`
}

// Run executes the spiderflow CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon
// completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	if err := mkdirAllRequired(); err != nil {
		return err
	}

	configFilePath := configPath(baseConfig)

	vars := kong.Vars{
		cmd.ConfigIdentifier:  configFilePath,
		cmd.CacheIdentifier:   cacheDir(),
		cmd.VersionIdentifier: pkg.Version,
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags so the logger is configured before kong
	// starts parsing, regardless of flag position. TextUnmarshaler on
	// logFormat/logLevel covers those flags during normal parsing, but
	// boolean flags like --log-pretty bypass that interface.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configFilePath+".json"),
		kong.Configuration(resolveYAML, configFilePath+".yaml"),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Stuff additional context values for use by commands.
	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithSourceFiles(ctx, cli.Source)

	// Finalize logger configuration with all parsed values including
	// TimeLayout and Caller, which don't use TextUnmarshaler.
	defer cli.Log.start(ctx)()

	// No-op unless built with tag pprof and a mode is selected.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}
