package ops

import (
	"errors"
	"testing"
)

func TestLookup(t *testing.T) {
	for _, name := range []string{"map", "filter", "reduce", "sort", "find", "findOne"} {
		t.Run(name, func(t *testing.T) {
			op, ok := Lookup(name)
			if !ok {
				t.Fatalf("operation %q not registered", name)
			}

			if op.Name != name {
				t.Errorf("expected name %q, got %q", name, op.Name)
			}

			if op.Apply == nil {
				t.Error("operation has no Apply")
			}
		})
	}

	if _, ok := Lookup("explode"); ok {
		t.Error("unregistered name resolved")
	}
}

func TestNames(t *testing.T) {
	names := Names()
	if len(names) == 0 {
		t.Fatal("no registered names")
	}

	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("names not sorted: %v", names)
		}
	}
}

func TestApply(t *testing.T) {
	items := []any{int64(3), int64(1), int64(2)}

	tests := []struct {
		name  string
		fn    Callback
		check func(t *testing.T, result any)
	}{
		{
			name: "map",
			fn: func(args ...any) (any, error) {
				return args[0].(int64) * 10, nil
			},
			check: func(t *testing.T, result any) {
				got := result.([]any)
				want := []any{int64(30), int64(10), int64(20)}

				for i := range want {
					if got[i] != want[i] {
						t.Errorf("index %d: expected %v, got %v", i, want[i], got[i])
					}
				}
			},
		},
		{
			name: "filter",
			fn: func(args ...any) (any, error) {
				return args[0].(int64) > 1, nil
			},
			check: func(t *testing.T, result any) {
				got := result.([]any)
				if len(got) != 2 || got[0] != int64(3) || got[1] != int64(2) {
					t.Errorf("expected [3 2], got %v", got)
				}
			},
		},
		{
			name: "reduce",
			fn: func(args ...any) (any, error) {
				return args[0].(int64) + args[1].(int64), nil
			},
			check: func(t *testing.T, result any) {
				if result != int64(6) {
					t.Errorf("expected 6, got %v", result)
				}
			},
		},
		{
			name: "sort",
			fn: func(args ...any) (any, error) {
				return args[0].(int64) - args[1].(int64), nil
			},
			check: func(t *testing.T, result any) {
				got := result.([]any)
				want := []any{int64(1), int64(2), int64(3)}

				for i := range want {
					if got[i] != want[i] {
						t.Errorf("index %d: expected %v, got %v", i, want[i], got[i])
					}
				}
			},
		},
		{
			name: "findOne",
			fn: func(args ...any) (any, error) {
				return args[0].(int64) < 3, nil
			},
			check: func(t *testing.T, result any) {
				if result != int64(1) {
					t.Errorf("expected 1, got %v", result)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, ok := Lookup(tt.name)
			if !ok {
				t.Fatalf("operation %q not registered", tt.name)
			}

			result, err := op.Apply(items, tt.fn)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			tt.check(t, result)
		})
	}
}

func TestApply_SortDoesNotMutateInput(t *testing.T) {
	items := []any{int64(3), int64(1), int64(2)}

	op, _ := Lookup("sort")

	_, err := op.Apply(items, func(args ...any) (any, error) {
		return args[0].(int64) - args[1].(int64), nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if items[0] != int64(3) || items[1] != int64(1) || items[2] != int64(2) {
		t.Errorf("input mutated: %v", items)
	}
}

func TestApply_ReduceEmpty(t *testing.T) {
	op, _ := Lookup("reduce")

	result, err := op.Apply(nil, func(args ...any) (any, error) {
		t.Fatal("callback invoked for empty input")

		return nil, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result != nil {
		t.Errorf("expected nil, got %v", result)
	}
}

func TestApply_CallbackError(t *testing.T) {
	sentinel := errors.New("boom")

	for _, name := range []string{"map", "filter", "sort", "findOne"} {
		t.Run(name, func(t *testing.T) {
			op, _ := Lookup(name)

			_, err := op.Apply([]any{int64(1), int64(2)}, func(...any) (any, error) {
				return nil, sentinel
			})
			if !errors.Is(err, sentinel) {
				t.Errorf("expected callback error, got %v", err)
			}
		})
	}
}
