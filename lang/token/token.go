// Package token defines the lexical vocabulary shared by the lexer and
// parser: source spans, classified tokens, and the token type enumeration.
//
// A [Span] is an immutable reference into a source text. Tokens never copy
// lexeme text; they slice it out of the original source on demand, so a
// span is also the unit of error location reporting.
package token

import "fmt"

// Span references the half-open range [Start, End) of a source text.
// The zero value is an empty span of an empty source.
type Span struct {
	Source string
	Start  int
	End    int
}

// NewSpan returns a span over source[start:end].
func NewSpan(source string, start, end int) Span {
	return Span{Source: source, Start: start, End: end}
}

// Text returns the lexeme text the span covers.
func (s Span) Text() string {
	return s.Source[s.Start:s.End]
}

// Merge returns a new span covering both s and other.
// Both spans must reference the same source.
func (s Span) Merge(other Span) Span {
	merged := s
	if other.Start < merged.Start {
		merged.Start = other.Start
	}

	if other.End > merged.End {
		merged.End = other.End
	}

	return merged
}

// Position returns the 1-based line and column of the span's start offset.
func (s Span) Position() (line, column int) {
	line, column = 1, 1

	for _, r := range s.Source[:s.Start] {
		if r == '\n' {
			line++
			column = 1
		} else {
			column++
		}
	}

	return line, column
}

// String implements fmt.Stringer for diagnostics.
func (s Span) String() string {
	line, column := s.Position()

	return fmt.Sprintf("%d:%d", line, column)
}

// Token is a classified lexeme: a type tag plus the span it was scanned
// from. Tokens are produced once by the lexer and never mutated.
type Token struct {
	Type Type
	Span Span
}

// New returns a token of the given type over span.
func New(typ Type, span Span) Token {
	return Token{Type: typ, Span: span}
}

// Text returns the lexeme text of the token.
func (t Token) Text() string { return t.Span.Text() }

// String implements fmt.Stringer for diagnostics.
func (t Token) String() string {
	return fmt.Sprintf("%s %q", t.Type, t.Text())
}

// Type identifies the category of a scanned token.
type Type int

// The fixed token taxonomy. TextBlock covers literal template text outside
// ${...} segments; everything else appears only inside expressions.
const (
	TextBlock Type = iota

	Identifier

	StringLiteral
	BooleanLiteral
	DoubleLiteral
	FloatLiteral
	ByteLiteral
	ShortLiteral
	IntegerLiteral
	LongLiteral
	CharacterLiteral
	NullLiteral

	Plus
	Minus
	Asterisk
	ForwardSlash
	Percentage

	Equal
	NotEqual
	Less
	LessEqual
	Greater
	GreaterEqual

	And
	Or
	Xor
	Not

	Assignment

	Questionmark
	Colon

	LeftParantheses
	RightParantheses
	LeftBracket
	RightBracket
	LeftCurly
	RightCurly

	Period
	Comma
	Semicolon

	Lambda
)

var typeName = map[Type]string{
	TextBlock:        "text block",
	Identifier:       "identifier",
	StringLiteral:    "string literal",
	BooleanLiteral:   "boolean literal",
	DoubleLiteral:    "double literal",
	FloatLiteral:     "float literal",
	ByteLiteral:      "byte literal",
	ShortLiteral:     "short literal",
	IntegerLiteral:   "integer literal",
	LongLiteral:      "long literal",
	CharacterLiteral: "character literal",
	NullLiteral:      "null literal",
	Plus:             "'+'",
	Minus:            "'-'",
	Asterisk:         "'*'",
	ForwardSlash:     "'/'",
	Percentage:       "'%'",
	Equal:            "'=='",
	NotEqual:         "'!='",
	Less:             "'<'",
	LessEqual:        "'<='",
	Greater:          "'>'",
	GreaterEqual:     "'>='",
	And:              "'&&'",
	Or:               "'||'",
	Xor:              "'^^'",
	Not:              "'!'",
	Assignment:       "'='",
	Questionmark:     "'?'",
	Colon:            "':'",
	LeftParantheses:  "'('",
	RightParantheses: "')'",
	LeftBracket:      "'['",
	RightBracket:     "']'",
	LeftCurly:        "'{'",
	RightCurly:       "'}'",
	Period:           "'.'",
	Comma:            "','",
	Semicolon:        "';'",
	Lambda:           "'->'",
}

// String returns a human-readable name for the token type, suitable for
// "expected X but found Y" error messages.
func (t Type) String() string {
	if name, ok := typeName[t]; ok {
		return name
	}

	return fmt.Sprintf("token(%d)", int(t))
}
