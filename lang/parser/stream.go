package parser

import (
	"github.com/liuhuayun/spider-flow/lang/token"
)

// Stream is a cursor over a token sequence. It is owned by exactly one
// parse invocation and must not be shared across goroutines.
//
// All matching operations look at most one token ahead. Bounded
// multi-token lookahead is built from [Stream.Mark] and [Stream.ResetTo],
// which make exact rollback a mechanical property instead of a counting
// discipline.
type Stream struct {
	source string
	tokens []token.Token
	cursor int
}

// NewStream returns a stream over tokens scanned from source.
func NewStream(source string, tokens []token.Token) *Stream {
	return &Stream{source: source, tokens: tokens}
}

// Mark is a cursor checkpoint captured by [Stream.Mark].
type Mark int

// Mark captures the current cursor position.
func (s *Stream) Mark() Mark { return Mark(s.cursor) }

// ResetTo restores the cursor to a previously captured checkpoint.
func (s *Stream) ResetTo(m Mark) { s.cursor = int(m) }

// HasMore reports whether a token remains under the cursor.
func (s *Stream) HasMore() bool { return s.cursor < len(s.tokens) }

// HasNext reports whether the cursor can step forward.
func (s *Stream) HasNext() bool { return s.cursor+1 < len(s.tokens) }

// Next steps the cursor one token forward and returns the token now under
// it. It has no consuming semantics beyond moving the cursor.
func (s *Stream) Next() token.Token {
	s.cursor++

	return s.current()
}

// Prev steps the cursor one token back and returns the token now under it.
func (s *Stream) Prev() token.Token {
	s.cursor--

	return s.current()
}

// Consume returns the current token and advances past it.
func (s *Stream) Consume() token.Token {
	tok := s.current()
	s.cursor++

	return tok
}

// Match tests whether the current token has the given type, advancing
// past it on success when consume is set.
func (s *Stream) Match(typ token.Type, consume bool) bool {
	if !s.HasMore() || s.tokens[s.cursor].Type != typ {
		return false
	}

	if consume {
		s.cursor++
	}

	return true
}

// MatchText tests whether the current token's lexeme equals text,
// advancing past it on success when consume is set.
func (s *Stream) MatchText(text string, consume bool) bool {
	if !s.HasMore() || s.tokens[s.cursor].Text() != text {
		return false
	}

	if consume {
		s.cursor++
	}

	return true
}

// MatchAny tests whether the current token's type is any of types,
// advancing past it on success when consume is set.
func (s *Stream) MatchAny(consume bool, types ...token.Type) bool {
	for _, typ := range types {
		if s.Match(typ, consume) {
			return true
		}
	}

	return false
}

// Expect consumes and returns the current token, or fails with a syntax
// error naming the expected type and the token actually found.
func (s *Stream) Expect(typ token.Type) (token.Token, error) {
	if s.Match(typ, false) {
		return s.Consume(), nil
	}

	return token.Token{}, s.expectError(typ.String())
}

// ExpectText consumes and returns the current token, or fails with a
// syntax error naming the expected lexeme and the token actually found.
func (s *Stream) ExpectText(text string) (token.Token, error) {
	if s.MatchText(text, false) {
		return s.Consume(), nil
	}

	return token.Token{}, s.expectError("'" + text + "'")
}

func (s *Stream) expectError(expected string) error {
	if !s.HasMore() {
		return &Error{
			Message:  "expected " + expected + " but reached the end of the source",
			Span:     s.endSpan(),
			Expected: expected,
			Actual:   "end of source",
		}
	}

	tok := s.tokens[s.cursor]

	return &Error{
		Message:  "expected " + expected + " but found " + tok.String(),
		Span:     tok.Span,
		Expected: expected,
		Actual:   tok.String(),
	}
}

// current returns the token under the cursor, or the zero token when the
// cursor is out of range.
func (s *Stream) current() token.Token {
	if s.cursor < 0 || s.cursor >= len(s.tokens) {
		return token.Token{}
	}

	return s.tokens[s.cursor]
}

// endSpan is the empty span at the end of the source, used as the
// location of end-of-input errors.
func (s *Stream) endSpan() token.Span {
	return token.NewSpan(s.source, len(s.source), len(s.source))
}

// span returns the span of the current token, or the end-of-source span
// when the stream is exhausted.
func (s *Stream) span() token.Span {
	if !s.HasMore() {
		return s.endSpan()
	}

	return s.tokens[s.cursor].Span
}
