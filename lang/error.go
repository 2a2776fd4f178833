package lang

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/liuhuayun/spider-flow/lang/lexer"
	"github.com/liuhuayun/spider-flow/lang/parser"
	"github.com/liuhuayun/spider-flow/lang/token"
)

// Predefined errors (sentinel values).
var (
	ErrLexical   = NewError("lexical error")
	ErrSyntax    = NewError("syntax error")
	ErrMaxDepth  = NewError("maximum nesting depth exceeded")
	ErrReadInput = NewError("failed to read input")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer.
type Error struct {
	msg   string
	err   error       // wrapped error (for errors.Unwrap)
	attrs []slog.Attr // attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the same sentinel this error was built
// from, matching on the base message.
func (e *Error) Is(target error) bool {
	te := &Error{}
	if !errors.As(target, &te) {
		return false
	}

	return e.msg == te.msg
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs, // share attrs
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}

// wrapParseError classifies a lexer or parser failure under the matching
// sentinel and attaches its source location.
func wrapParseError(err error) *Error {
	sentinel := ErrSyntax

	lexErr := &lexer.Error{}
	depthErr := &parser.DepthError{}

	switch {
	case errors.As(err, &lexErr):
		sentinel = ErrLexical
	case errors.As(err, &depthErr):
		sentinel = ErrMaxDepth
	}

	wrapped := sentinel.Wrap(err)

	if span, ok := ErrorSpan(err); ok {
		line, column := span.Position()
		wrapped = wrapped.With(
			slog.Int("line", line),
			slog.Int("column", column),
		)
	}

	return wrapped
}

// ErrorSpan extracts the source span a parse failure refers to.
func ErrorSpan(err error) (token.Span, bool) {
	lexErr := &lexer.Error{}
	if errors.As(err, &lexErr) {
		return lexErr.Span, true
	}

	syntaxErr := &parser.Error{}
	if errors.As(err, &syntaxErr) {
		return syntaxErr.Span, true
	}

	depthErr := &parser.DepthError{}
	if errors.As(err, &depthErr) {
		return depthErr.Span, true
	}

	return token.Span{}, false
}

// FormatError renders a parse failure with source context: the error
// message, the offending source line, and a caret marker under the
// failing column. Errors without a span render as their message alone.
func FormatError(err error) string {
	span, ok := ErrorSpan(err)
	if !ok {
		return err.Error()
	}

	line, column := span.Position()
	lines := strings.Split(span.Source, "\n")

	var buf strings.Builder

	buf.WriteString(err.Error())
	buf.WriteRune('\n')

	if line > 0 && line <= len(lines) {
		lineNum := strconv.Itoa(line)

		buf.WriteString("  ")
		buf.WriteString(lineNum)
		buf.WriteString(" | ")
		buf.WriteString(lines[line-1])
		buf.WriteRune('\n')

		// Marker under the failing column, past the line-number gutter.
		padding := strings.Repeat(" ", len(lineNum)+5)
		if column > 0 {
			padding += strings.Repeat(" ", column-1)
		}

		buf.WriteString(padding + "^")
	}

	return buf.String()
}
