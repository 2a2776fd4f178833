// Package lexer turns expression-template source text into the ordered
// token sequence consumed by the parser.
//
// A template interleaves literal text with ${...} expression segments.
// Text outside a segment becomes a single TextBlock token per run and is
// never inspected further; inside a segment the lexer recognizes the full
// expression vocabulary: identifiers, literals with Java-style numeric
// suffixes, operators, punctuation, and the lambda arrow. Curly braces
// nest inside a segment so that map literals work; a '}' at nesting depth
// zero closes the segment.
//
// The complete token sequence is produced before parsing begins. The lexer
// performs no semantic analysis: it rejects only lexical shape, never
// grammar.
package lexer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/liuhuayun/spider-flow/lang/token"
)

// exprOpen starts an expression segment inside template text.
const exprOpen = "${"

// Error describes a lexical failure: an unrecognized or malformed lexeme.
type Error struct {
	Message string
	Span    token.Span
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("lexical error at %s: %s", e.Span, e.Message)
}

// Tokenize scans source and returns its complete token sequence.
func Tokenize(source string) ([]token.Token, error) {
	l := &lexer{source: source}

	for l.pos < len(l.source) {
		l.text()

		if l.pos >= len(l.source) {
			break
		}

		// Cursor is at "${".
		open := l.pos
		l.pos += len(exprOpen)

		if err := l.expression(open); err != nil {
			return nil, err
		}
	}

	return l.tokens, nil
}

type lexer struct {
	source string
	pos    int
	tokens []token.Token
}

func (l *lexer) emit(typ token.Type, start, end int) {
	l.tokens = append(l.tokens, token.New(typ, token.NewSpan(l.source, start, end)))
}

func (l *lexer) errorAt(start, end int, format string, args ...any) *Error {
	if end > len(l.source) {
		end = len(l.source)
	}

	return &Error{
		Message: fmt.Sprintf(format, args...),
		Span:    token.NewSpan(l.source, start, end),
	}
}

// text scans a literal text run up to the next "${" or end of input and
// emits it verbatim as a TextBlock. Empty runs emit nothing.
func (l *lexer) text() {
	start := l.pos

	for l.pos < len(l.source) && !strings.HasPrefix(l.source[l.pos:], exprOpen) {
		_, size := utf8.DecodeRuneInString(l.source[l.pos:])
		l.pos += size
	}

	if l.pos > start {
		l.emit(token.TextBlock, start, l.pos)
	}
}

// expression scans tokens until the '}' closing the segment opened at open.
func (l *lexer) expression(open int) error {
	depth := 0

	for {
		l.skipSpace()

		if l.pos >= len(l.source) {
			return l.errorAt(open, open+len(exprOpen), "unclosed expression segment")
		}

		r, size := utf8.DecodeRuneInString(l.source[l.pos:])
		start := l.pos

		switch {
		case r == '}':
			l.pos += size

			if depth == 0 {
				return nil
			}

			depth--

			l.emit(token.RightCurly, start, l.pos)

		case r == '{':
			depth++

			l.pos += size
			l.emit(token.LeftCurly, start, l.pos)

		case r >= '0' && r <= '9':
			if err := l.number(); err != nil {
				return err
			}

		case r == '"':
			if err := l.stringLiteral(); err != nil {
				return err
			}

		case r == '\'':
			if err := l.characterLiteral(); err != nil {
				return err
			}

		case isIdentifierStart(r):
			l.identifier()

		default:
			if !l.operator() {
				return l.errorAt(start, start+size, "unexpected character %q", r)
			}
		}
	}
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.source) {
		switch l.source[l.pos] {
		case ' ', '\t', '\r', '\n':
			l.pos++
		default:
			return
		}
	}
}

// operatorTokens maps fixed operator and punctuation lexemes to their token
// types. Two-rune lexemes must be tried before their one-rune prefixes.
var operatorTokens = []struct {
	text string
	typ  token.Type
}{
	{"->", token.Lambda},
	{"==", token.Equal},
	{"!=", token.NotEqual},
	{"<=", token.LessEqual},
	{">=", token.GreaterEqual},
	{"&&", token.And},
	{"||", token.Or},
	{"^^", token.Xor},
	{"+", token.Plus},
	{"-", token.Minus},
	{"*", token.Asterisk},
	{"/", token.ForwardSlash},
	{"%", token.Percentage},
	{"<", token.Less},
	{">", token.Greater},
	{"!", token.Not},
	{"=", token.Assignment},
	{"?", token.Questionmark},
	{":", token.Colon},
	{"(", token.LeftParantheses},
	{")", token.RightParantheses},
	{"[", token.LeftBracket},
	{"]", token.RightBracket},
	{".", token.Period},
	{",", token.Comma},
	{";", token.Semicolon},
}

func (l *lexer) operator() bool {
	rest := l.source[l.pos:]

	for _, op := range operatorTokens {
		if strings.HasPrefix(rest, op.text) {
			l.emit(op.typ, l.pos, l.pos+len(op.text))
			l.pos += len(op.text)

			return true
		}
	}

	return false
}

// number scans a numeric literal: digits, an optional fraction, and an
// optional type suffix. The suffix selects the token type; an unsuffixed
// literal is an integer, or a double when it carries a fraction.
func (l *lexer) number() error {
	start := l.pos

	l.digits()

	decimal := false
	if l.pos+1 < len(l.source) && l.source[l.pos] == '.' && isDigit(l.source[l.pos+1]) {
		decimal = true
		l.pos++

		l.digits()
	}

	typ := token.IntegerLiteral
	if decimal {
		typ = token.DoubleLiteral
	}

	if l.pos < len(l.source) {
		switch l.source[l.pos] {
		case 'b', 'B':
			typ = token.ByteLiteral
			l.pos++
		case 's', 'S':
			typ = token.ShortLiteral
			l.pos++
		case 'l', 'L':
			typ = token.LongLiteral
			l.pos++
		case 'f', 'F':
			typ = token.FloatLiteral
			l.pos++
		case 'd', 'D':
			typ = token.DoubleLiteral
			l.pos++
		}
	}

	if decimal && (typ == token.ByteLiteral || typ == token.ShortLiteral || typ == token.LongLiteral) {
		return l.errorAt(start, l.pos, "integer literal cannot have a fraction: %q", l.source[start:l.pos])
	}

	l.emit(typ, start, l.pos)

	return nil
}

func (l *lexer) digits() {
	for l.pos < len(l.source) && isDigit(l.source[l.pos]) {
		l.pos++
	}
}

// stringLiteral scans a double-quoted string. The emitted span includes
// the quotes; escape sequences are validated here and decoded by the AST.
func (l *lexer) stringLiteral() error {
	start := l.pos
	l.pos++ // opening quote

	for l.pos < len(l.source) {
		r, size := utf8.DecodeRuneInString(l.source[l.pos:])

		switch r {
		case '"':
			l.pos += size
			l.emit(token.StringLiteral, start, l.pos)

			return nil

		case '\\':
			l.pos += size

			if err := l.escape(start); err != nil {
				return err
			}

		default:
			l.pos += size
		}
	}

	return l.errorAt(start, l.pos, "unterminated string literal")
}

// characterLiteral scans a single-quoted character, which holds exactly
// one rune or one escape sequence.
func (l *lexer) characterLiteral() error {
	start := l.pos
	l.pos++ // opening quote

	if l.pos >= len(l.source) {
		return l.errorAt(start, l.pos, "unterminated character literal")
	}

	r, size := utf8.DecodeRuneInString(l.source[l.pos:])
	l.pos += size

	if r == '\\' {
		if err := l.escape(start); err != nil {
			return err
		}
	} else if r == '\'' {
		return l.errorAt(start, l.pos, "empty character literal")
	}

	if l.pos >= len(l.source) || l.source[l.pos] != '\'' {
		return l.errorAt(start, l.pos, "unterminated character literal")
	}

	l.pos++ // closing quote
	l.emit(token.CharacterLiteral, start, l.pos)

	return nil
}

// escape validates the escape sequence at the cursor, which sits just past
// a backslash, and advances over it.
func (l *lexer) escape(start int) error {
	if l.pos >= len(l.source) {
		return l.errorAt(start, l.pos, "unterminated escape sequence")
	}

	switch l.source[l.pos] {
	case 'n', 'r', 't', '\\', '"', '\'':
		l.pos++

		return nil
	}

	r, size := utf8.DecodeRuneInString(l.source[l.pos:])

	return l.errorAt(l.pos-1, l.pos+size, "invalid escape sequence %q", "\\"+string(r))
}

// identifier scans an identifier or one of the literal keywords.
func (l *lexer) identifier() {
	start := l.pos

	for l.pos < len(l.source) {
		r, size := utf8.DecodeRuneInString(l.source[l.pos:])
		if !isIdentifierPart(r) {
			break
		}

		l.pos += size
	}

	typ := token.Identifier

	switch l.source[start:l.pos] {
	case "true", "false":
		typ = token.BooleanLiteral
	case "null":
		typ = token.NullLiteral
	}

	l.emit(typ, start, l.pos)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// Identifiers follow Java rules so that non-ASCII names, common in crawler
// templates, keep working.
func isIdentifierStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentifierPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
