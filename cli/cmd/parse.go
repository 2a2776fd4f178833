package cmd

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/goccy/go-yaml"

	"github.com/liuhuayun/spider-flow/lang"
	"github.com/liuhuayun/spider-flow/log"
)

// Parse parses template sources and dumps their syntax trees.
type Parse struct {
	Source string `arg:"" default:"-" help:"Template source file or '-' for stdin" name:"source" optional:""`

	Format   string `default:"yaml" enum:"yaml,json" help:"Tree output format" short:"o"`
	Indent   int    `default:"2"                     help:"Indent width for tree output" short:"i"`
	MaxDepth int    `default:"0"                     help:"Maximum expression nesting depth (0 for default)"`
	NoCache  bool   `default:"false"                 help:"Bypass the template cache"`
}

// Run executes the parse command.
func (p *Parse) Run(ctx context.Context) error {
	template, err := p.load(ctx)
	if err != nil {
		return err
	}

	return p.dump(ctx, template)
}

// load reads and parses the selected template source.
func (p *Parse) load(ctx context.Context) (*lang.Template, error) {
	name, source, err := openSource(ctx, p.Source)
	if err != nil {
		return nil, err
	}
	defer source.Close()

	opts := []lang.Option{lang.WithLogger(log.Default())}

	if p.MaxDepth > 0 {
		opts = append(opts, lang.WithMaxDepth(p.MaxDepth))
	}

	if p.NoCache {
		opts = append(opts, lang.WithoutCache())
	}

	template, err := lang.ParseReader(ctx, source, opts...)
	if err != nil {
		return nil, err
	}

	log.DebugContext(ctx, "template parsed",
		slog.String("source", name),
		slog.Int("statements", len(template.Nodes)),
	)

	return template, nil
}

// dump writes the template's node tree to the command output stream.
func (p *Parse) dump(ctx context.Context, template *lang.Template) error {
	out := stdout(ctx)
	tree := template.ToMap()

	switch p.Format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", indent(p.Indent))

		if err := enc.Encode(tree); err != nil {
			return ErrJSONMarshal.Wrap(err)
		}

	default:
		data, err := yaml.MarshalWithOptions(tree, yaml.Indent(p.Indent))
		if err != nil {
			return ErrYAMLMarshal.Wrap(err)
		}

		if _, err := out.Write(data); err != nil {
			return ErrYAMLMarshal.Wrap(err)
		}
	}

	return nil
}

func indent(width int) string {
	if width < 1 {
		width = 1
	}

	spaces := make([]byte, width)
	for i := range spaces {
		spaces[i] = ' '
	}

	return string(spaces)
}
