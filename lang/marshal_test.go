package lang_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/liuhuayun/spider-flow/lang"
)

func mustParse(t *testing.T, source string) *lang.Template {
	t.Helper()

	tmpl, err := lang.Parse(context.Background(), source, lang.WithoutCache())
	if err != nil {
		t.Fatalf("Parse(%q): %v", source, err)
	}

	return tmpl
}

func TestToMap(t *testing.T) {
	t.Parallel()

	t.Run("mixed statements", func(t *testing.T) {
		t.Parallel()

		nodes := mustParse(t, "hi ${name}").ToMap()

		if len(nodes) != 2 {
			t.Fatalf("len = %d, want 2", len(nodes))
		}

		text := nodes[0].(map[string]any)
		if text["kind"] != "Text" || text["text"] != "hi " {
			t.Errorf("nodes[0] = %v", text)
		}

		access := nodes[1].(map[string]any)
		if access["kind"] != "VariableAccess" || access["name"] != "name" {
			t.Errorf("nodes[1] = %v", access)
		}
	})

	t.Run("binary tree", func(t *testing.T) {
		t.Parallel()

		nodes := mustParse(t, "${1 + 2 * 3}").ToMap()

		root := nodes[0].(map[string]any)
		if root["kind"] != "BinaryOperation" || root["operator"] != "+" {
			t.Fatalf("root = %v", root)
		}

		right := root["right"].(map[string]any)
		if right["kind"] != "BinaryOperation" || right["operator"] != "*" {
			t.Errorf("right = %v", right)
		}
	})

	t.Run("resolved method call", func(t *testing.T) {
		t.Parallel()

		nodes := mustParse(t, "${list.map(v -> v)}").ToMap()

		call := nodes[0].(map[string]any)
		if call["kind"] != "MethodCall" {
			t.Fatalf("kind = %v", call["kind"])
		}

		if call["operation"] != "map" {
			t.Errorf("operation = %v, want map", call["operation"])
		}

		args := call["arguments"].([]any)
		if len(args) != 1 {
			t.Fatalf("len(arguments) = %d, want 1", len(args))
		}

		lambda := args[0].(map[string]any)
		if lambda["kind"] != "LambdaAccess" {
			t.Errorf("argument kind = %v, want LambdaAccess", lambda["kind"])
		}

		if lambda["owner"] != "map" {
			t.Errorf("owner = %v, want map", lambda["owner"])
		}
	})

	t.Run("unresolved method call", func(t *testing.T) {
		t.Parallel()

		nodes := mustParse(t, "${user.greet()}").ToMap()

		call := nodes[0].(map[string]any)
		if _, ok := call["operation"]; ok {
			t.Error("unresolved call carries an operation name")
		}
	})

	t.Run("map literal", func(t *testing.T) {
		t.Parallel()

		nodes := mustParse(t, `${{name: "wu", age: 3}}`).ToMap()

		lit := nodes[0].(map[string]any)
		if lit["kind"] != "MapLiteral" {
			t.Fatalf("kind = %v", lit["kind"])
		}

		keys := lit["keys"].([]any)
		if len(keys) != 2 || keys[0] != "name" || keys[1] != "age" {
			t.Errorf("keys = %v", keys)
		}

		values := lit["values"].([]any)
		if len(values) != 2 {
			t.Fatalf("len(values) = %d, want 2", len(values))
		}
	})

	t.Run("ternary and unary", func(t *testing.T) {
		t.Parallel()

		nodes := mustParse(t, "${!ok ? a : b}").ToMap()

		cond := nodes[0].(map[string]any)
		if cond["kind"] != "TernaryOperation" {
			t.Fatalf("kind = %v", cond["kind"])
		}

		not := cond["condition"].(map[string]any)
		if not["kind"] != "UnaryOperation" || not["operator"] != "!" {
			t.Errorf("condition = %v", not)
		}
	})
}

func TestMarshalJSON(t *testing.T) {
	t.Parallel()

	tmpl := mustParse(t, `${items[0].name == "x"}`)

	data, err := json.Marshal(tmpl)
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		`"MapOrArrayAccess"`,
		`"MemberAccess"`,
		`"BinaryOperation"`,
		`"StringLiteral"`,
	} {
		if !strings.Contains(string(data), want) {
			t.Errorf("JSON missing %s:\n%s", want, data)
		}
	}
}
