package lang

import (
	"encoding/json"

	"github.com/liuhuayun/spider-flow/lang/ast"
)

// ToMap converts the template's statement sequence to a native Go
// structure of maps and slices, suitable for YAML or JSON dumps. The
// statement order is preserved.
func (t *Template) ToMap() []any {
	statements := make([]any, len(t.Nodes))
	for i, node := range t.Nodes {
		statements[i] = nodeMap(node)
	}

	return statements
}

// MarshalJSON implements json.Marshaler for Template.
func (t *Template) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.ToMap())
}

// nodeMap renders one node. The switch is exhaustive over the closed
// node set; an unknown node indicates a parser bug.
func nodeMap(node ast.Node) map[string]any {
	switch n := node.(type) {
	case *ast.Text:
		return kind("Text", "text", n.Content())

	case *ast.StringLiteral:
		return kind("StringLiteral", "value", n.Value)

	case *ast.BooleanLiteral:
		return kind("BooleanLiteral", "value", n.Value)

	case *ast.NullLiteral:
		return map[string]any{"kind": "NullLiteral"}

	case *ast.CharacterLiteral:
		return kind("CharacterLiteral", "value", string(n.Value))

	case *ast.ByteLiteral:
		return kind("ByteLiteral", "value", n.Value)

	case *ast.ShortLiteral:
		return kind("ShortLiteral", "value", n.Value)

	case *ast.IntegerLiteral:
		return kind("IntegerLiteral", "value", n.Value)

	case *ast.LongLiteral:
		return kind("LongLiteral", "value", n.Value)

	case *ast.FloatLiteral:
		return kind("FloatLiteral", "value", n.Value)

	case *ast.DoubleLiteral:
		return kind("DoubleLiteral", "value", n.Value)

	case *ast.VariableAccess:
		return kind("VariableAccess", "name", n.Name.Text())

	case *ast.MemberAccess:
		return map[string]any{
			"kind":   "MemberAccess",
			"target": nodeMap(n.Target),
			"name":   n.Name.Text(),
		}

	case *ast.MapOrArrayAccess:
		return map[string]any{
			"kind":   "MapOrArrayAccess",
			"target": nodeMap(n.Target),
			"key":    nodeMap(n.Key),
		}

	case *ast.FunctionCall:
		return map[string]any{
			"kind":      "FunctionCall",
			"callee":    nodeMap(n.Callee),
			"arguments": exprMaps(n.Arguments),
		}

	case *ast.MethodCall:
		m := map[string]any{
			"kind":      "MethodCall",
			"receiver":  nodeMap(n.Receiver),
			"arguments": exprMaps(n.Arguments),
		}

		if n.Resolved() {
			m["operation"] = n.Operation.Name
		}

		return m

	case *ast.UnaryOperation:
		return map[string]any{
			"kind":     "UnaryOperation",
			"operator": n.Operator.Text(),
			"operand":  nodeMap(n.Operand),
		}

	case *ast.BinaryOperation:
		return map[string]any{
			"kind":     "BinaryOperation",
			"operator": n.Operator.Text(),
			"left":     nodeMap(n.Left),
			"right":    nodeMap(n.Right),
		}

	case *ast.TernaryOperation:
		return map[string]any{
			"kind":      "TernaryOperation",
			"condition": nodeMap(n.Condition),
			"true":      nodeMap(n.TrueBranch),
			"false":     nodeMap(n.FalseBranch),
		}

	case *ast.MapLiteral:
		keys := make([]any, len(n.Keys))
		for i, key := range n.Keys {
			keys[i] = key.Text()
		}

		return map[string]any{
			"kind":   "MapLiteral",
			"keys":   keys,
			"values": exprMaps(n.Values),
		}

	case *ast.ListLiteral:
		return map[string]any{
			"kind":   "ListLiteral",
			"values": exprMaps(n.Values),
		}

	case *ast.LambdaAccess:
		m := map[string]any{
			"kind":       "LambdaAccess",
			"parameters": exprMaps(n.Parameters),
			"body":       nodeMap(n.Body),
		}

		if n.Owner != nil {
			m["owner"] = n.Owner.Name.Text()
		}

		return m

	case *ast.LambdaPlaceholder:
		return map[string]any{"kind": "LambdaPlaceholder"}
	}

	return map[string]any{"kind": "unknown"}
}

func kind(name, field string, value any) map[string]any {
	return map[string]any{"kind": name, field: value}
}

func exprMaps(exprs []ast.Expr) []any {
	rendered := make([]any, len(exprs))
	for i, expr := range exprs {
		rendered[i] = nodeMap(expr)
	}

	return rendered
}
