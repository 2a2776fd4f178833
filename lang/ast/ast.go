// Package ast defines the closed set of nodes produced by the parser.
//
// A parse yields an ordered sequence of statement-level nodes: verbatim
// [Text] blocks and expression statements. Every node is created once
// during parsing, owns its children exclusively, and is immutable
// afterward; the whole tree shares the source string through spans, so a
// node can always report the exact range it was built from.
//
// Evaluation of the tree is an external concern. The only evaluation
// artifact recorded here is the optional pre-resolved operation reference
// on [MethodCall], attached at parse time for registered collection
// methods.
package ast

import (
	"strconv"
	"strings"

	"github.com/liuhuayun/spider-flow/lang/ops"
	"github.com/liuhuayun/spider-flow/lang/token"
)

// Node is any statement-level parse result.
type Node interface {
	// Span returns the full source range the node was built from.
	Span() token.Span
}

// Expr is the closed set of expression nodes. The unexported marker
// method keeps the set closed so consumers can switch exhaustively.
type Expr interface {
	Node
	expr()
}

// span implements the Node interface for every concrete node type.
type span struct {
	s token.Span
}

func (n span) Span() token.Span { return n.s }

// Text is a verbatim run of template text outside expression segments.
type Text struct {
	span
}

// NewText returns a Text node covering s.
func NewText(s token.Span) *Text {
	return &Text{span{s}}
}

// Content returns the literal text.
func (t *Text) Content() string { return t.Span().Text() }

// StringLiteral is a double-quoted string with its escapes decoded.
type StringLiteral struct {
	span
	Value string
}

// NewStringLiteral decodes the quoted lexeme at s. The lexer has already
// validated the escape sequences.
func NewStringLiteral(s token.Span) *StringLiteral {
	return &StringLiteral{span{s}, unescape(trimQuotes(s.Text()))}
}

// BooleanLiteral is true or false.
type BooleanLiteral struct {
	span
	Value bool
}

// NewBooleanLiteral parses the lexeme at s.
func NewBooleanLiteral(s token.Span) *BooleanLiteral {
	return &BooleanLiteral{span{s}, s.Text() == "true"}
}

// NullLiteral is the null keyword.
type NullLiteral struct {
	span
}

// NewNullLiteral returns a NullLiteral covering s.
func NewNullLiteral(s token.Span) *NullLiteral {
	return &NullLiteral{span{s}}
}

// CharacterLiteral is a single-quoted character.
type CharacterLiteral struct {
	span
	Value rune
}

// NewCharacterLiteral decodes the quoted lexeme at s.
func NewCharacterLiteral(s token.Span) *CharacterLiteral {
	runes := []rune(unescape(trimQuotes(s.Text())))

	var value rune
	if len(runes) > 0 {
		value = runes[0]
	}

	return &CharacterLiteral{span{s}, value}
}

// ByteLiteral is an integer literal with a b/B suffix.
type ByteLiteral struct {
	span
	Value int8
}

// NewByteLiteral parses the lexeme at s.
func NewByteLiteral(s token.Span) (*ByteLiteral, error) {
	v, err := strconv.ParseInt(trimSuffix(s.Text()), 10, 8)
	if err != nil {
		return nil, err
	}

	return &ByteLiteral{span{s}, int8(v)}, nil
}

// ShortLiteral is an integer literal with an s/S suffix.
type ShortLiteral struct {
	span
	Value int16
}

// NewShortLiteral parses the lexeme at s.
func NewShortLiteral(s token.Span) (*ShortLiteral, error) {
	v, err := strconv.ParseInt(trimSuffix(s.Text()), 10, 16)
	if err != nil {
		return nil, err
	}

	return &ShortLiteral{span{s}, int16(v)}, nil
}

// IntegerLiteral is an unsuffixed whole-number literal.
type IntegerLiteral struct {
	span
	Value int32
}

// NewIntegerLiteral parses the lexeme at s.
func NewIntegerLiteral(s token.Span) (*IntegerLiteral, error) {
	v, err := strconv.ParseInt(s.Text(), 10, 32)
	if err != nil {
		return nil, err
	}

	return &IntegerLiteral{span{s}, int32(v)}, nil
}

// LongLiteral is an integer literal with an l/L suffix.
type LongLiteral struct {
	span
	Value int64
}

// NewLongLiteral parses the lexeme at s.
func NewLongLiteral(s token.Span) (*LongLiteral, error) {
	v, err := strconv.ParseInt(trimSuffix(s.Text()), 10, 64)
	if err != nil {
		return nil, err
	}

	return &LongLiteral{span{s}, v}, nil
}

// FloatLiteral is a numeric literal with an f/F suffix.
type FloatLiteral struct {
	span
	Value float32
}

// NewFloatLiteral parses the lexeme at s.
func NewFloatLiteral(s token.Span) (*FloatLiteral, error) {
	v, err := strconv.ParseFloat(trimSuffix(s.Text()), 32)
	if err != nil {
		return nil, err
	}

	return &FloatLiteral{span{s}, float32(v)}, nil
}

// DoubleLiteral is a decimal literal, with or without a d/D suffix.
type DoubleLiteral struct {
	span
	Value float64
}

// NewDoubleLiteral parses the lexeme at s.
func NewDoubleLiteral(s token.Span) (*DoubleLiteral, error) {
	v, err := strconv.ParseFloat(trimSuffix(s.Text()), 64)
	if err != nil {
		return nil, err
	}

	return &DoubleLiteral{span{s}, v}, nil
}

// VariableAccess reads a variable from the evaluation context.
type VariableAccess struct {
	span
	Name token.Span
}

// NewVariableAccess returns a VariableAccess for the identifier at name.
func NewVariableAccess(name token.Span) *VariableAccess {
	return &VariableAccess{span{name}, name}
}

// MemberAccess reads a named member of a target expression.
type MemberAccess struct {
	span
	Target Expr
	Name   token.Span
}

// NewMemberAccess returns target.name.
func NewMemberAccess(target Expr, name token.Span) *MemberAccess {
	return &MemberAccess{span{target.Span().Merge(name)}, target, name}
}

// MapOrArrayAccess indexes a target with a key expression: target[key].
type MapOrArrayAccess struct {
	span
	Target Expr
	Key    Expr
}

// NewMapOrArrayAccess returns target[key] covering s.
func NewMapOrArrayAccess(s token.Span, target, key Expr) *MapOrArrayAccess {
	return &MapOrArrayAccess{span{s}, target, key}
}

// FunctionCall invokes a callee resolved from the evaluation context.
type FunctionCall struct {
	span
	Callee    Expr
	Arguments []Expr
}

// NewFunctionCall returns callee(arguments...) covering s.
func NewFunctionCall(s token.Span, callee Expr, arguments []Expr) *FunctionCall {
	return &FunctionCall{span{s}, callee, arguments}
}

// MethodCall invokes a member of a receiver expression. When the member
// name matches a registered collection operation, Operation references it
// directly so the evaluator can skip dynamic lookup.
type MethodCall struct {
	span
	Receiver  *MemberAccess
	Arguments []Expr
	Operation *ops.Operation
}

// NewMethodCall returns receiver(arguments...) covering s, pre-resolving
// the receiver's member name against the operation registry.
func NewMethodCall(s token.Span, receiver *MemberAccess, arguments []Expr) *MethodCall {
	call := &MethodCall{span: span{s}, Receiver: receiver, Arguments: arguments}

	if op, ok := ops.Lookup(receiver.Name.Text()); ok {
		call.Operation = op
	}

	return call
}

// Resolved reports whether the call was statically resolved at parse time.
func (m *MethodCall) Resolved() bool { return m.Operation != nil }

// UnaryOperation applies a prefix operator to an operand.
type UnaryOperation struct {
	span
	Operator token.Token
	Operand  Expr
}

// NewUnaryOperation returns op operand.
func NewUnaryOperation(op token.Token, operand Expr) *UnaryOperation {
	return &UnaryOperation{span{op.Span.Merge(operand.Span())}, op, operand}
}

// BinaryOperation applies an infix operator to two operands.
type BinaryOperation struct {
	span
	Left     Expr
	Operator token.Token
	Right    Expr
}

// NewBinaryOperation returns left op right.
func NewBinaryOperation(left Expr, op token.Token, right Expr) *BinaryOperation {
	return &BinaryOperation{span{left.Span().Merge(right.Span())}, left, op, right}
}

// TernaryOperation is the conditional cond ? true : false.
type TernaryOperation struct {
	span
	Condition   Expr
	TrueBranch  Expr
	FalseBranch Expr
}

// NewTernaryOperation returns cond ? trueBranch : falseBranch.
func NewTernaryOperation(cond, trueBranch, falseBranch Expr) *TernaryOperation {
	return &TernaryOperation{
		span{cond.Span().Merge(falseBranch.Span())},
		cond, trueBranch, falseBranch,
	}
}

// MapLiteral is {k: v, ...}. Keys and Values are parallel sequences of
// equal length, in source order; keys are string-literal or identifier
// tokens.
type MapLiteral struct {
	span
	Keys   []token.Token
	Values []Expr
}

// NewMapLiteral returns a MapLiteral covering s.
func NewMapLiteral(s token.Span, keys []token.Token, values []Expr) *MapLiteral {
	return &MapLiteral{span{s}, keys, values}
}

// ListLiteral is [v, ...].
type ListLiteral struct {
	span
	Values []Expr
}

// NewListLiteral returns a ListLiteral covering s.
func NewListLiteral(s token.Span, values []Expr) *ListLiteral {
	return &ListLiteral{span{s}, values}
}

// LambdaAccess is an inline callback: one or more parameter expressions
// and a body. When the lambda is an argument of a method call, Owner
// records the member access the call was made through, giving the
// evaluator the collection context.
type LambdaAccess struct {
	span
	Parameters []Expr
	Body       Expr
	Owner      *MemberAccess
}

// NewLambdaAccess returns a lambda covering s.
func NewLambdaAccess(s token.Span, parameters []Expr, body Expr) *LambdaAccess {
	return &LambdaAccess{span: span{s}, Parameters: parameters, Body: body}
}

// LambdaPlaceholder is the base of an access chain that begins directly
// with the lambda arrow: an implicit, unnamed binding. Its evaluation
// semantics are defined by the evaluator's contract, not here.
type LambdaPlaceholder struct {
	span
}

// NewLambdaPlaceholder returns a placeholder covering the arrow at s.
func NewLambdaPlaceholder(s token.Span) *LambdaPlaceholder {
	return &LambdaPlaceholder{span{s}}
}

func (*StringLiteral) expr()     {}
func (*BooleanLiteral) expr()    {}
func (*NullLiteral) expr()       {}
func (*CharacterLiteral) expr()  {}
func (*ByteLiteral) expr()       {}
func (*ShortLiteral) expr()      {}
func (*IntegerLiteral) expr()    {}
func (*LongLiteral) expr()       {}
func (*FloatLiteral) expr()      {}
func (*DoubleLiteral) expr()     {}
func (*VariableAccess) expr()    {}
func (*MemberAccess) expr()      {}
func (*MapOrArrayAccess) expr()  {}
func (*FunctionCall) expr()      {}
func (*MethodCall) expr()        {}
func (*UnaryOperation) expr()    {}
func (*BinaryOperation) expr()   {}
func (*TernaryOperation) expr()  {}
func (*MapLiteral) expr()        {}
func (*ListLiteral) expr()       {}
func (*LambdaAccess) expr()      {}
func (*LambdaPlaceholder) expr() {}

func trimQuotes(s string) string {
	if len(s) >= 2 {
		return s[1 : len(s)-1]
	}

	return s
}

// trimSuffix drops a trailing numeric type suffix, if present.
func trimSuffix(s string) string {
	if len(s) == 0 {
		return s
	}

	switch s[len(s)-1] {
	case 'b', 'B', 's', 'S', 'l', 'L', 'f', 'F', 'd', 'D':
		return s[:len(s)-1]
	}

	return s
}

var unescaper = strings.NewReplacer(
	`\n`, "\n",
	`\r`, "\r",
	`\t`, "\t",
	`\"`, `"`,
	`\'`, "'",
	`\\`, `\`,
)

func unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}

	return unescaper.Replace(s)
}
