package lexer

import (
	"errors"
	"testing"

	"github.com/liuhuayun/spider-flow/lang/token"
)

func types(tokens []token.Token) []token.Type {
	typs := make([]token.Type, len(tokens))
	for i, tok := range tokens {
		typs[i] = tok.Type
	}

	return typs
}

func equalTypes(a, b []token.Type) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

func TestTokenize_TextAndSegments(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []token.Type
	}{
		{
			name:   "plain text only",
			source: "hello world",
			want:   []token.Type{token.TextBlock},
		},
		{
			name:   "single expression",
			source: "${name}",
			want:   []token.Type{token.Identifier},
		},
		{
			name:   "text around expression",
			source: "Hello ${name}, welcome!",
			want:   []token.Type{token.TextBlock, token.Identifier, token.TextBlock},
		},
		{
			name:   "adjacent expressions",
			source: "${a}${b}",
			want:   []token.Type{token.Identifier, token.Identifier},
		},
		{
			name:   "dollar without brace is text",
			source: "cost: $100",
			want:   []token.Type{token.TextBlock},
		},
		{
			name:   "empty segment",
			source: "${}",
			want:   []token.Type{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.source)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got := types(tokens); !equalTypes(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestTokenize_TextBlockVerbatim(t *testing.T) {
	tokens, err := Tokenize("  leading and trailing  ${x} tail ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tokens[0].Text() != "  leading and trailing  " {
		t.Errorf("leading text not verbatim: %q", tokens[0].Text())
	}

	if tokens[2].Text() != " tail " {
		t.Errorf("trailing text not verbatim: %q", tokens[2].Text())
	}
}

func TestTokenize_Literals(t *testing.T) {
	tests := []struct {
		name   string
		source string
		typ    token.Type
		text   string
	}{
		{name: "integer", source: "${42}", typ: token.IntegerLiteral, text: "42"},
		{name: "double from fraction", source: "${3.14}", typ: token.DoubleLiteral, text: "3.14"},
		{name: "double suffix", source: "${2d}", typ: token.DoubleLiteral, text: "2d"},
		{name: "float suffix", source: "${2.5f}", typ: token.FloatLiteral, text: "2.5f"},
		{name: "byte suffix", source: "${7b}", typ: token.ByteLiteral, text: "7b"},
		{name: "short suffix", source: "${7s}", typ: token.ShortLiteral, text: "7s"},
		{name: "long suffix", source: "${7L}", typ: token.LongLiteral, text: "7L"},
		{name: "boolean true", source: "${true}", typ: token.BooleanLiteral, text: "true"},
		{name: "boolean false", source: "${false}", typ: token.BooleanLiteral, text: "false"},
		{name: "null", source: "${null}", typ: token.NullLiteral, text: "null"},
		{name: "string", source: `${"hi"}`, typ: token.StringLiteral, text: `"hi"`},
		{name: "string with escapes", source: `${"a\n\"b\""}`, typ: token.StringLiteral, text: `"a\n\"b\""`},
		{name: "character", source: "${'x'}", typ: token.CharacterLiteral, text: "'x'"},
		{name: "character escape", source: `${'\n'}`, typ: token.CharacterLiteral, text: `'\n'`},
		{name: "unicode identifier", source: "${标题}", typ: token.Identifier, text: "标题"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.source)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(tokens) != 1 {
				t.Fatalf("expected 1 token, got %d: %v", len(tokens), tokens)
			}

			if tokens[0].Type != tt.typ {
				t.Errorf("expected %s, got %s", tt.typ, tokens[0].Type)
			}

			if tokens[0].Text() != tt.text {
				t.Errorf("expected text %q, got %q", tt.text, tokens[0].Text())
			}
		})
	}
}

func TestTokenize_NumbersInExpressions(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []token.Type
	}{
		{
			name:   "product",
			source: "${2*3}",
			want: []token.Type{
				token.IntegerLiteral, token.Asterisk, token.IntegerLiteral,
			},
		},
		{
			name:   "sum of product",
			source: "${1+2*3}",
			want: []token.Type{
				token.IntegerLiteral, token.Plus,
				token.IntegerLiteral, token.Asterisk, token.IntegerLiteral,
			},
		},
		{
			name:   "index and argument",
			source: "${a.b[0].c(1)}",
			want: []token.Type{
				token.Identifier, token.Period, token.Identifier,
				token.LeftBracket, token.IntegerLiteral, token.RightBracket,
				token.Period, token.Identifier,
				token.LeftParantheses, token.IntegerLiteral, token.RightParantheses,
			},
		},
		{
			name:   "suffixed operand",
			source: "${x+2.5f}",
			want: []token.Type{
				token.Identifier, token.Plus, token.FloatLiteral,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.source)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got := types(tokens); !equalTypes(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestTokenize_Operators(t *testing.T) {
	tokens, err := Tokenize("${a == b != c <= d >= e && f || g ^^ h -> !i = j ? k : l}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []token.Type{
		token.Identifier, token.Equal,
		token.Identifier, token.NotEqual,
		token.Identifier, token.LessEqual,
		token.Identifier, token.GreaterEqual,
		token.Identifier, token.And,
		token.Identifier, token.Or,
		token.Identifier, token.Xor,
		token.Identifier, token.Lambda,
		token.Not, token.Identifier, token.Assignment,
		token.Identifier, token.Questionmark,
		token.Identifier, token.Colon,
		token.Identifier,
	}

	if got := types(tokens); !equalTypes(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestTokenize_ArrowBeforeMinus(t *testing.T) {
	tokens, err := Tokenize("${x->x-1}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []token.Type{
		token.Identifier, token.Lambda,
		token.Identifier, token.Minus, token.IntegerLiteral,
	}

	if got := types(tokens); !equalTypes(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestTokenize_NestedCurlies(t *testing.T) {
	tokens, err := Tokenize(`${{"k":1}} after`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []token.Type{
		token.LeftCurly, token.StringLiteral, token.Colon,
		token.IntegerLiteral, token.RightCurly,
		token.TextBlock,
	}

	if got := types(tokens); !equalTypes(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	if tokens[len(tokens)-1].Text() != " after" {
		t.Errorf("text after segment not preserved: %q", tokens[len(tokens)-1].Text())
	}
}

func TestTokenize_Errors(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{name: "unclosed segment", source: "${a + b"},
		{name: "unterminated string", source: `${"abc}`},
		{name: "unterminated character", source: "${'a"},
		{name: "empty character", source: "${''}"},
		{name: "invalid escape", source: `${"\q"}`},
		{name: "unrecognized character", source: "${a @ b}"},
		{name: "fraction on long", source: "${1.5L}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.source)
			if err == nil {
				t.Fatal("expected error, got none")
			}

			lexErr := &Error{}
			if !errors.As(err, &lexErr) {
				t.Fatalf("expected *lexer.Error, got %T", err)
			}

			if lexErr.Span.Source != tt.source {
				t.Error("error span does not reference the source")
			}
		})
	}
}

func TestTokenize_SpanOffsets(t *testing.T) {
	source := "ab${cd}ef"

	tokens, err := Tokenize(source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	spans := []struct{ start, end int }{{0, 2}, {4, 6}, {7, 9}}
	for i, want := range spans {
		got := tokens[i].Span
		if got.Start != want.start || got.End != want.end {
			t.Errorf("token %d: expected [%d,%d), got [%d,%d)",
				i, want.start, want.end, got.Start, got.End)
		}
	}
}

func FuzzTokenize(f *testing.F) {
	f.Add("plain text")
	f.Add("${a + b * c}")
	f.Add(`${list.filter(x->x>1)}`)
	f.Add(`${{"k":1,"j":2}}`)
	f.Add("${'\\n'}")
	f.Add("${1.5f + 2L}")
	f.Add("text ${a} more ${b}")
	f.Add("${")
	f.Add("$")

	f.Fuzz(func(t *testing.T, source string) {
		tokens, err := Tokenize(source)
		if err != nil {
			return
		}

		// Every span must lie within the source it references.
		for _, tok := range tokens {
			if tok.Span.Start < 0 || tok.Span.End > len(source) || tok.Span.Start > tok.Span.End {
				t.Errorf("span out of bounds: %+v", tok.Span)
			}
		}
	})
}
