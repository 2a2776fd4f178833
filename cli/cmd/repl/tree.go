package repl

import (
	"fmt"
	"strings"

	"github.com/liuhuayun/spider-flow/lang"
	"github.com/liuhuayun/spider-flow/lang/ast"
	"github.com/liuhuayun/spider-flow/lang/ops"
)

// renderTemplate renders the statement nodes of a template as an
// indented tree with box-drawing branches.
func renderTemplate(t *lang.Template) string {
	var b strings.Builder

	for i, node := range t.Nodes {
		renderNode(&b, node, "", i == len(t.Nodes)-1)
	}

	return strings.TrimRight(b.String(), "\n")
}

// renderOps lists the registered collection operations.
func renderOps() string {
	return kindStyle.Render(strings.Join(ops.Names(), "  "))
}

func renderNode(b *strings.Builder, node ast.Node, prefix string, last bool) {
	branch, childPrefix := "├── ", prefix+"│   "
	if last {
		branch, childPrefix = "└── ", prefix+"    "
	}

	b.WriteString(branchStyle.Render(prefix + branch))
	b.WriteString(nodeLabel(node))
	b.WriteString("\n")

	children := nodeChildren(node)
	for i, child := range children {
		renderNode(b, child, childPrefix, i == len(children)-1)
	}
}

// ellipsize shortens long literal previews so a pasted template does not
// wrap the tree.
func ellipsize(s string) string {
	const max = 32

	if runes := []rune(s); len(runes) > max {
		return string(runes[:max-1]) + "…"
	}

	return s
}

func nodeLabel(node ast.Node) string {
	kind := func(name string) string { return kindStyle.Render(name) }
	detail := func(v string) string { return " " + detailStyle.Render(v) }

	switch n := node.(type) {
	case *ast.Text:
		return kind("Text") + detail(fmt.Sprintf("%q", ellipsize(n.Content())))

	case *ast.StringLiteral:
		return kind("String") + detail(fmt.Sprintf("%q", ellipsize(n.Value)))

	case *ast.BooleanLiteral:
		return kind("Boolean") + detail(fmt.Sprintf("%t", n.Value))

	case *ast.NullLiteral:
		return kind("Null")

	case *ast.CharacterLiteral:
		return kind("Char") + detail(fmt.Sprintf("%q", n.Value))

	case *ast.ByteLiteral:
		return kind("Byte") + detail(fmt.Sprintf("%d", n.Value))

	case *ast.ShortLiteral:
		return kind("Short") + detail(fmt.Sprintf("%d", n.Value))

	case *ast.IntegerLiteral:
		return kind("Int") + detail(fmt.Sprintf("%d", n.Value))

	case *ast.LongLiteral:
		return kind("Long") + detail(fmt.Sprintf("%d", n.Value))

	case *ast.FloatLiteral:
		return kind("Float") + detail(fmt.Sprintf("%g", n.Value))

	case *ast.DoubleLiteral:
		return kind("Double") + detail(fmt.Sprintf("%g", n.Value))

	case *ast.VariableAccess:
		return kind("Variable") + detail(n.Name.Text())

	case *ast.MemberAccess:
		return kind("Member") + detail("."+n.Name.Text())

	case *ast.MapOrArrayAccess:
		return kind("Index")

	case *ast.FunctionCall:
		return kind("Call")

	case *ast.MethodCall:
		label := kind("Method") + detail("."+n.Receiver.Name.Text())
		if n.Resolved() {
			label += hintStyle.Render(" (operation)")
		}

		return label

	case *ast.UnaryOperation:
		return kind("Unary") + detail(n.Operator.Text())

	case *ast.BinaryOperation:
		return kind("Binary") + detail(n.Operator.Text())

	case *ast.TernaryOperation:
		return kind("Ternary")

	case *ast.MapLiteral:
		keys := make([]string, len(n.Keys))
		for i, key := range n.Keys {
			keys[i] = key.Text()
		}

		return kind("Map") + detail(ellipsize(strings.Join(keys, ", ")))

	case *ast.ListLiteral:
		return kind("List")

	case *ast.LambdaAccess:
		return kind("Lambda")

	case *ast.LambdaPlaceholder:
		return kind("Lambda") + detail("->")
	}

	return kindStyle.Render("Unknown")
}

func nodeChildren(node ast.Node) []ast.Node {
	asNodes := func(exprs []ast.Expr) []ast.Node {
		nodes := make([]ast.Node, len(exprs))
		for i, expr := range exprs {
			nodes[i] = expr
		}

		return nodes
	}

	switch n := node.(type) {
	case *ast.MemberAccess:
		return []ast.Node{n.Target}

	case *ast.MapOrArrayAccess:
		return []ast.Node{n.Target, n.Key}

	case *ast.FunctionCall:
		return append([]ast.Node{n.Callee}, asNodes(n.Arguments)...)

	case *ast.MethodCall:
		return append([]ast.Node{n.Receiver}, asNodes(n.Arguments)...)

	case *ast.UnaryOperation:
		return []ast.Node{n.Operand}

	case *ast.BinaryOperation:
		return []ast.Node{n.Left, n.Right}

	case *ast.TernaryOperation:
		return []ast.Node{n.Condition, n.TrueBranch, n.FalseBranch}

	case *ast.MapLiteral:
		return asNodes(n.Values)

	case *ast.ListLiteral:
		return asNodes(n.Values)

	case *ast.LambdaAccess:
		return append(asNodes(n.Parameters), n.Body)
	}

	return nil
}
