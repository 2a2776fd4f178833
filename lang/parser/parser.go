// Package parser turns a token stream into the ordered sequence of AST
// nodes for an expression template.
//
// The grammar is parsed by recursive descent with precedence climbing:
// ternary conditionals bind loosest, then six tiers of left-associative
// binary operators, prefix unary operators, and finally primaries with
// their access-or-call chains. The only construct that needs more than
// one token of lookahead is the multi-parameter lambda, which is
// disambiguated from ordinary call arguments by a bounded forward scan
// with exact rollback.
//
// The parser is a stateless value: all parse state lives in the [Stream]
// it is handed, so independent parses may run concurrently. Any grammar
// violation aborts the parse with a single error; there is no recovery
// and no partial result.
package parser

import (
	"fmt"

	"github.com/liuhuayun/spider-flow/lang/ast"
	"github.com/liuhuayun/spider-flow/lang/token"
)

// DefaultMaxDepth is the default maximum expression nesting depth.
const DefaultMaxDepth = 100

// Error describes a syntax failure: what was expected and what was found,
// with the offending span.
type Error struct {
	Message  string
	Span     token.Span
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("syntax error at %s: %s", e.Span, e.Message)
}

// DepthError reports expression nesting beyond the configured maximum.
// It aborts the parse before the call stack can be exhausted by
// adversarial input.
type DepthError struct {
	Span  token.Span
	Limit int
}

// Error implements the error interface.
func (e *DepthError) Error() string {
	return fmt.Sprintf("syntax error at %s: expression nesting exceeds the maximum depth of %d", e.Span, e.Limit)
}

// Parser parses token streams. The zero value is ready to use with
// [DefaultMaxDepth]; a Parser holds no per-parse state and is safe for
// concurrent use.
type Parser struct {
	// MaxDepth bounds expression nesting. Zero selects DefaultMaxDepth.
	MaxDepth int
}

// Parse consumes the stream and returns its statements: one Text or
// expression node per source segment.
func (p Parser) Parse(s *Stream) ([]ast.Node, error) {
	var nodes []ast.Node

	for s.HasMore() {
		node, err := p.statement(s)
		if err != nil {
			return nil, err
		}

		nodes = append(nodes, node)
	}

	return nodes, nil
}

// statement parses a text block or an expression, then discards any
// trailing semicolons.
func (p Parser) statement(s *Stream) (ast.Node, error) {
	var node ast.Node

	if s.Match(token.TextBlock, false) {
		node = ast.NewText(s.Consume().Span)
	} else {
		expr, err := p.expression(s, 0)
		if err != nil {
			return nil, err
		}

		node = expr
	}

	for s.MatchText(";", true) {
	}

	return node, nil
}

func (p Parser) maxDepth() int {
	if p.MaxDepth > 0 {
		return p.MaxDepth
	}

	return DefaultMaxDepth
}

func (p Parser) checkDepth(s *Stream, depth int) error {
	if depth >= p.maxDepth() {
		return &DepthError{Span: s.span(), Limit: p.maxDepth()}
	}

	return nil
}

func (p Parser) expression(s *Stream, depth int) (ast.Expr, error) {
	if err := p.checkDepth(s, depth); err != nil {
		return nil, err
	}

	return p.ternary(s, depth+1)
}

// ternary parses cond ? a : b. Both branches are full ternary
// expressions, so chains nest to the right: a?b:c?d:e is a?b:(c?d:e).
func (p Parser) ternary(s *Stream, depth int) (ast.Expr, error) {
	condition, err := p.binary(s, depth, 0)
	if err != nil {
		return nil, err
	}

	if !s.Match(token.Questionmark, true) {
		return condition, nil
	}

	trueBranch, err := p.expression(s, depth)
	if err != nil {
		return nil, err
	}

	if _, err := s.Expect(token.Colon); err != nil {
		return nil, err
	}

	falseBranch, err := p.expression(s, depth)
	if err != nil {
		return nil, err
	}

	return ast.NewTernaryOperation(condition, trueBranch, falseBranch), nil
}

// binaryOperatorPrecedence orders the binary operator tiers from loosest
// to tightest binding. Every tier is left-associative.
var binaryOperatorPrecedence = [][]token.Type{
	{token.Assignment},
	{token.Or, token.And, token.Xor},
	{token.Equal, token.NotEqual},
	{token.Less, token.LessEqual, token.Greater, token.GreaterEqual},
	{token.Plus, token.Minus},
	{token.ForwardSlash, token.Asterisk, token.Percentage},
}

func (p Parser) binary(s *Stream, depth, level int) (ast.Expr, error) {
	next := level + 1

	operand := func() (ast.Expr, error) {
		if next == len(binaryOperatorPrecedence) {
			return p.unary(s, depth)
		}

		return p.binary(s, depth, next)
	}

	left, err := operand()
	if err != nil {
		return nil, err
	}

	for s.HasMore() && s.MatchAny(false, binaryOperatorPrecedence[level]...) {
		operator := s.Consume()

		right, err := operand()
		if err != nil {
			return nil, err
		}

		left = ast.NewBinaryOperation(left, operator, right)
	}

	return left, nil
}

var unaryOperators = []token.Type{token.Not, token.Plus, token.Minus}

func (p Parser) unary(s *Stream, depth int) (ast.Expr, error) {
	if err := p.checkDepth(s, depth); err != nil {
		return nil, err
	}

	if s.MatchAny(false, unaryOperators...) {
		operator := s.Consume()

		operand, err := p.unary(s, depth+1)
		if err != nil {
			return nil, err
		}

		return ast.NewUnaryOperation(operator, operand), nil
	}

	if s.Match(token.LeftParantheses, true) {
		expr, err := p.expression(s, depth)
		if err != nil {
			return nil, err
		}

		if _, err := s.Expect(token.RightParantheses); err != nil {
			return nil, err
		}

		return expr, nil
	}

	return p.primary(s, depth)
}

func (p Parser) primary(s *Stream, depth int) (ast.Expr, error) {
	switch {
	case s.Match(token.Identifier, false):
		return p.accessOrCall(s, depth, token.Identifier)

	case s.Match(token.LeftCurly, false):
		return p.mapLiteral(s, depth)

	case s.Match(token.LeftBracket, false):
		return p.listLiteral(s, depth)

	case s.Match(token.StringLiteral, false):
		// A quoted string is a chain base only when '.' follows,
		// allowing method calls on a literal string.
		mark := s.Mark()
		s.Next()
		chained := s.Match(token.Period, false)
		s.ResetTo(mark)

		if chained {
			return p.accessOrCall(s, depth, token.StringLiteral)
		}

		return ast.NewStringLiteral(s.Consume().Span), nil

	case s.Match(token.BooleanLiteral, false):
		return ast.NewBooleanLiteral(s.Consume().Span), nil

	case s.Match(token.NullLiteral, false):
		return ast.NewNullLiteral(s.Consume().Span), nil

	case s.Match(token.CharacterLiteral, false):
		return ast.NewCharacterLiteral(s.Consume().Span), nil

	case s.Match(token.ByteLiteral, false):
		return numberLiteral(s.Consume(), func(sp token.Span) (ast.Expr, error) {
			return ast.NewByteLiteral(sp)
		})

	case s.Match(token.ShortLiteral, false):
		return numberLiteral(s.Consume(), func(sp token.Span) (ast.Expr, error) {
			return ast.NewShortLiteral(sp)
		})

	case s.Match(token.IntegerLiteral, false):
		return numberLiteral(s.Consume(), func(sp token.Span) (ast.Expr, error) {
			return ast.NewIntegerLiteral(sp)
		})

	case s.Match(token.LongLiteral, false):
		return numberLiteral(s.Consume(), func(sp token.Span) (ast.Expr, error) {
			return ast.NewLongLiteral(sp)
		})

	case s.Match(token.FloatLiteral, false):
		return numberLiteral(s.Consume(), func(sp token.Span) (ast.Expr, error) {
			return ast.NewFloatLiteral(sp)
		})

	case s.Match(token.DoubleLiteral, false):
		return numberLiteral(s.Consume(), func(sp token.Span) (ast.Expr, error) {
			return ast.NewDoubleLiteral(sp)
		})

	case s.Match(token.Lambda, false):
		return p.accessOrCall(s, depth, token.Lambda)

	default:
		return nil, p.primaryError(s)
	}
}

func (p Parser) primaryError(s *Stream) *Error {
	const expected = "a variable, field, map, array, function or method call, or literal"

	actual := "end of source"
	if s.HasMore() {
		actual = s.tokens[s.cursor].String()
	}

	return &Error{
		Message:  "expected " + expected + " but found " + actual,
		Span:     s.span(),
		Expected: expected,
		Actual:   actual,
	}
}

// numberLiteral builds a numeric literal node, converting a value parse
// failure (for example byte overflow) into a syntax error at the lexeme.
func numberLiteral(tok token.Token, build func(token.Span) (ast.Expr, error)) (ast.Expr, error) {
	lit, err := build(tok.Span)
	if err != nil {
		return nil, &Error{
			Message:  fmt.Sprintf("malformed %s %q", tok.Type, tok.Text()),
			Span:     tok.Span,
			Expected: tok.Type.String(),
			Actual:   fmt.Sprintf("%q", tok.Text()),
		}
	}

	return lit, nil
}

// accessOrCall parses a chain of call, index, member, and lambda
// operations applied to a base token of the given type: an identifier, a
// quoted string, or the bare lambda arrow.
func (p Parser) accessOrCall(s *Stream, depth int, base token.Type) (ast.Expr, error) {
	tok, err := s.Expect(base)
	if err != nil {
		return nil, err
	}

	var result ast.Expr

	switch base {
	case token.StringLiteral:
		result = ast.NewStringLiteral(tok.Span)
	case token.Lambda:
		result = ast.NewLambdaPlaceholder(tok.Span)
	default:
		result = ast.NewVariableAccess(tok.Span)
	}

	for s.MatchAny(false, token.LeftParantheses, token.LeftBracket, token.Period, token.Lambda) {
		switch {
		// function or method call
		case s.Match(token.LeftParantheses, true):
			arguments, closing, err := p.arguments(s, depth)
			if err != nil {
				return nil, err
			}

			callSpan := result.Span().Merge(closing.Span)

			switch target := result.(type) {
			case *ast.VariableAccess, *ast.MapOrArrayAccess:
				result = ast.NewFunctionCall(callSpan, result, arguments)

			case *ast.MemberAccess:
				for _, argument := range arguments {
					if lambda, ok := argument.(*ast.LambdaAccess); ok {
						lambda.Owner = target
					}
				}

				result = ast.NewMethodCall(callSpan, target, arguments)

			default:
				return nil, &Error{
					Message:  "expected a variable, field or method",
					Span:     result.Span(),
					Expected: "a variable, field or method",
					Actual:   fmt.Sprintf("%T", result),
				}
			}

		// map or array access
		case s.Match(token.LeftBracket, true):
			key, err := p.expression(s, depth)
			if err != nil {
				return nil, err
			}

			closing, err := s.Expect(token.RightBracket)
			if err != nil {
				return nil, err
			}

			result = ast.NewMapOrArrayAccess(result.Span().Merge(closing.Span), result, key)

		// field or method access
		case s.Match(token.Period, true):
			name, err := s.Expect(token.Identifier)
			if err != nil {
				return nil, err
			}

			result = ast.NewMemberAccess(result, name.Span)

		// single-parameter lambda: the chain so far is the parameter
		case s.Match(token.Lambda, true):
			body, err := p.expression(s, depth)
			if err != nil {
				return nil, err
			}

			result = ast.NewLambdaAccess(
				result.Span().Merge(body.Span()),
				[]ast.Expr{result},
				body,
			)
		}
	}

	return result, nil
}

// arguments parses a call-argument list after the opening parenthesis has
// been consumed, and consumes the closing parenthesis.
//
// Before each argument, a bounded lookahead decides whether a leading
// '(' opens a multi-parameter lambda rather than a parenthesized
// expression. When it does, the lambda becomes the call's sole argument
// and any previously accumulated arguments are discarded.
func (p Parser) arguments(s *Stream, depth int) ([]ast.Expr, token.Token, error) {
	var arguments []ast.Expr

	for s.HasMore() && !s.Match(token.RightParantheses, false) {
		if s.Match(token.LeftParantheses, false) && p.lambdaAhead(s) {
			lambda, err := p.parenthesizedLambda(s, depth)
			if err != nil {
				return nil, token.Token{}, err
			}

			arguments = append(arguments[:0], lambda)

			break
		}

		argument, err := p.expression(s, depth)
		if err != nil {
			return nil, token.Token{}, err
		}

		arguments = append(arguments, argument)

		if !s.Match(token.RightParantheses, false) {
			if _, err := s.Expect(token.Comma); err != nil {
				return nil, token.Token{}, err
			}
		}
	}

	closing, err := s.Expect(token.RightParantheses)
	if err != nil {
		return nil, token.Token{}, err
	}

	return arguments, closing, nil
}

// lambdaAhead scans forward for the pattern '(' identifier (','
// identifier)* ')' '->' (the identifier list may be empty). The deferred
// reset guarantees the cursor is exactly where it started, whatever the
// scan saw.
func (p Parser) lambdaAhead(s *Stream) bool {
	mark := s.Mark()
	defer s.ResetTo(mark)

	if !s.Match(token.LeftParantheses, true) {
		return false
	}

	if s.Match(token.Identifier, true) {
		for s.Match(token.Comma, true) {
			if !s.Match(token.Identifier, true) {
				return false
			}
		}
	}

	return s.Match(token.RightParantheses, true) && s.Match(token.Lambda, false)
}

// parenthesizedLambda parses '(' params ')' '->' body after lambdaAhead
// committed to the pattern. The parameters are parsed once, as ordinary
// sub-expressions.
func (p Parser) parenthesizedLambda(s *Stream, depth int) (*ast.LambdaAccess, error) {
	open, err := s.Expect(token.LeftParantheses)
	if err != nil {
		return nil, err
	}

	var parameters []ast.Expr

	for !s.Match(token.RightParantheses, false) {
		parameter, err := p.expression(s, depth)
		if err != nil {
			return nil, err
		}

		parameters = append(parameters, parameter)

		if !s.Match(token.RightParantheses, false) {
			if _, err := s.Expect(token.Comma); err != nil {
				return nil, err
			}
		}
	}

	s.Consume() // the ')' lambdaAhead verified

	if _, err := s.Expect(token.Lambda); err != nil {
		return nil, err
	}

	body, err := p.expression(s, depth)
	if err != nil {
		return nil, err
	}

	return ast.NewLambdaAccess(open.Span.Merge(body.Span()), parameters, body), nil
}

// mapLiteral parses { key : value, ... } with string-literal or
// identifier keys. Keys and values are kept as parallel sequences in
// source order.
func (p Parser) mapLiteral(s *Stream, depth int) (ast.Expr, error) {
	open, err := s.Expect(token.LeftCurly)
	if err != nil {
		return nil, err
	}

	var (
		keys   []token.Token
		values []ast.Expr
	)

	for s.HasMore() && !s.MatchText("}", false) {
		var key token.Token
		if s.Match(token.StringLiteral, false) {
			key = s.Consume()
		} else {
			key, err = s.Expect(token.Identifier)
			if err != nil {
				return nil, err
			}
		}

		keys = append(keys, key)

		if _, err := s.ExpectText(":"); err != nil {
			return nil, err
		}

		value, err := p.expression(s, depth)
		if err != nil {
			return nil, err
		}

		values = append(values, value)

		if !s.MatchText("}", false) {
			if _, err := s.Expect(token.Comma); err != nil {
				return nil, err
			}
		}
	}

	closing, err := s.ExpectText("}")
	if err != nil {
		return nil, err
	}

	return ast.NewMapLiteral(open.Span.Merge(closing.Span), keys, values), nil
}

// listLiteral parses [ value, ... ].
func (p Parser) listLiteral(s *Stream, depth int) (ast.Expr, error) {
	open, err := s.Expect(token.LeftBracket)
	if err != nil {
		return nil, err
	}

	var values []ast.Expr

	for s.HasMore() && !s.Match(token.RightBracket, false) {
		value, err := p.expression(s, depth)
		if err != nil {
			return nil, err
		}

		values = append(values, value)

		if !s.Match(token.RightBracket, false) {
			if _, err := s.Expect(token.Comma); err != nil {
				return nil, err
			}
		}
	}

	closing, err := s.Expect(token.RightBracket)
	if err != nil {
		return nil, err
	}

	return ast.NewListLiteral(open.Span.Merge(closing.Span), values), nil
}
