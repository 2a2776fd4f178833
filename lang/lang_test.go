package lang_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/liuhuayun/spider-flow/lang"
	"github.com/liuhuayun/spider-flow/lang/ast"
)

func TestParse(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name   string
		source string
		nodes  int
	}{
		{name: "empty", source: "", nodes: 0},
		{name: "text only", source: "hello world", nodes: 1},
		{name: "expression only", source: "${a + b}", nodes: 1},
		{name: "mixed", source: "Hello ${user.name}, bye", nodes: 3},
		{name: "adjacent segments", source: "${a}${b}", nodes: 2},
		{name: "statements", source: "${a; b; c}", nodes: 3},
		{
			name:   "collection pipeline",
			source: `${orders.filter(o->o.open).map(o->o.total)}`,
			nodes:  1,
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmpl, err := lang.Parse(context.Background(), tt.source, lang.WithoutCache())
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.source, err)
			}

			if tmpl.Source != tt.source {
				t.Errorf("Source = %q, want %q", tmpl.Source, tt.source)
			}

			if len(tmpl.Nodes) != tt.nodes {
				t.Errorf("len(Nodes) = %d, want %d", len(tmpl.Nodes), tt.nodes)
			}
		})
	}
}

func TestParseNodeKinds(t *testing.T) {
	t.Parallel()

	tmpl, err := lang.Parse(context.Background(),
		"before ${a + 1} after", lang.WithoutCache())
	if err != nil {
		t.Fatal(err)
	}

	if len(tmpl.Nodes) != 3 {
		t.Fatalf("len(Nodes) = %d, want 3", len(tmpl.Nodes))
	}

	if _, ok := tmpl.Nodes[0].(*ast.Text); !ok {
		t.Errorf("Nodes[0] = %T, want *ast.Text", tmpl.Nodes[0])
	}

	if _, ok := tmpl.Nodes[1].(*ast.BinaryOperation); !ok {
		t.Errorf("Nodes[1] = %T, want *ast.BinaryOperation", tmpl.Nodes[1])
	}

	if _, ok := tmpl.Nodes[2].(*ast.Text); !ok {
		t.Errorf("Nodes[2] = %T, want *ast.Text", tmpl.Nodes[2])
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name     string
		source   string
		opts     []lang.Option
		sentinel error
	}{
		{
			name:     "unterminated string",
			source:   `${"abc}`,
			sentinel: lang.ErrLexical,
		},
		{
			name:     "invalid escape",
			source:   `${"a\z"}`,
			sentinel: lang.ErrLexical,
		},
		{
			name:     "missing operand",
			source:   "${a + }",
			sentinel: lang.ErrSyntax,
		},
		{
			name:     "unclosed paren",
			source:   "${f(a}",
			sentinel: lang.ErrSyntax,
		},
		{
			name:     "too deep",
			source:   "${" + strings.Repeat("(", 50) + "a" + strings.Repeat(")", 50) + "}",
			opts:     []lang.Option{lang.WithMaxDepth(10)},
			sentinel: lang.ErrMaxDepth,
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := append([]lang.Option{lang.WithoutCache()}, tt.opts...)

			_, err := lang.Parse(context.Background(), tt.source, opts...)
			if err == nil {
				t.Fatalf("Parse(%q): expected error", tt.source)
			}

			if !errors.Is(err, tt.sentinel) {
				t.Errorf("Parse(%q) = %v, want %v", tt.source, err, tt.sentinel)
			}
		})
	}
}

func TestParseReader(t *testing.T) {
	t.Parallel()

	source := "Total: ${items.reduce((a, b) -> a + b)}"

	tmpl, err := lang.ParseReader(context.Background(),
		strings.NewReader(source), lang.WithoutCache())
	if err != nil {
		t.Fatal(err)
	}

	if tmpl.Source != source {
		t.Errorf("Source = %q, want %q", tmpl.Source, source)
	}

	if len(tmpl.Nodes) != 2 {
		t.Errorf("len(Nodes) = %d, want 2", len(tmpl.Nodes))
	}
}

func TestErrorSpan(t *testing.T) {
	t.Parallel()

	_, err := lang.Parse(context.Background(), "line one\n${a + }", lang.WithoutCache())
	if err == nil {
		t.Fatal("expected error")
	}

	span, ok := lang.ErrorSpan(err)
	if !ok {
		t.Fatal("ErrorSpan: no span")
	}

	line, _ := span.Position()
	if line != 2 {
		t.Errorf("line = %d, want 2", line)
	}
}

func TestFormatError(t *testing.T) {
	t.Parallel()

	t.Run("with span", func(t *testing.T) {
		t.Parallel()

		_, err := lang.Parse(context.Background(), "${a + }", lang.WithoutCache())
		if err == nil {
			t.Fatal("expected error")
		}

		out := lang.FormatError(err)

		if !strings.Contains(out, "1 | ${a + }") {
			t.Errorf("missing source line:\n%s", out)
		}

		if !strings.Contains(out, "^") {
			t.Errorf("missing caret marker:\n%s", out)
		}
	})

	t.Run("without span", func(t *testing.T) {
		t.Parallel()

		err := errors.New("plain failure")
		if got := lang.FormatError(err); got != "plain failure" {
			t.Errorf("FormatError = %q, want message only", got)
		}
	})
}

func TestErrorWrapping(t *testing.T) {
	t.Parallel()

	cause := errors.New("disk gone")
	wrapped := lang.ErrReadInput.Wrap(cause)

	if !errors.Is(wrapped, lang.ErrReadInput) {
		t.Error("wrapped error does not match its sentinel")
	}

	if !errors.Is(wrapped, cause) {
		t.Error("wrapped error does not unwrap to its cause")
	}

	if errors.Is(wrapped, lang.ErrSyntax) {
		t.Error("wrapped error matches an unrelated sentinel")
	}
}
