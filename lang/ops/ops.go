// Package ops maintains the fixed registry of collection-processing
// operations that the parser pre-resolves at parse time.
//
// When a method call's member name matches a registered operation, the
// parser annotates the call node with a direct reference to the operation
// so an evaluator can skip dynamic method lookup. The registry is built
// once at process start and never mutated afterward.
package ops

import (
	"fmt"
	"sort"
)

// Callback is an evaluated lambda body invoked by an operation. Element
// operations receive (item, index); pairwise operations receive (a, b).
type Callback func(args ...any) (any, error)

// Operation is a registered collection-processing operation.
type Operation struct {
	// Name is the method name the parser matches against.
	Name string

	// Apply runs the operation over items, invoking fn per element or
	// pair. It is referenced by pre-resolved method-call nodes.
	Apply func(items []any, fn Callback) (any, error)
}

//nolint:gochecknoglobals
var registry = func() map[string]*Operation {
	table := []*Operation{
		{Name: "map", Apply: applyMap},
		{Name: "filter", Apply: applyFilter},
		{Name: "reduce", Apply: applyReduce},
		{Name: "sort", Apply: applySort},
		{Name: "find", Apply: applyFind},
		{Name: "findOne", Apply: applyFindOne},
	}

	m := make(map[string]*Operation, len(table))
	for _, op := range table {
		m[op.Name] = op
	}

	return m
}()

// Lookup returns the operation registered under name.
func Lookup(name string) (*Operation, bool) {
	op, ok := registry[name]

	return op, ok
}

// Names returns the sorted names of all registered operations.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

func applyMap(items []any, fn Callback) (any, error) {
	result := make([]any, len(items))

	for i, item := range items {
		mapped, err := fn(item, i)
		if err != nil {
			return nil, err
		}

		result[i] = mapped
	}

	return result, nil
}

func applyFilter(items []any, fn Callback) (any, error) {
	result := make([]any, 0, len(items))

	for i, item := range items {
		keep, err := fn(item, i)
		if err != nil {
			return nil, err
		}

		if truthy(keep) {
			result = append(result, item)
		}
	}

	return result, nil
}

// applyReduce folds left with the first element as the seed. Reducing an
// empty collection yields nil.
func applyReduce(items []any, fn Callback) (any, error) {
	if len(items) == 0 {
		return nil, nil
	}

	acc := items[0]

	for _, item := range items[1:] {
		next, err := fn(acc, item)
		if err != nil {
			return nil, err
		}

		acc = next
	}

	return acc, nil
}

// applySort orders items by the sign of fn(a, b). The input is not
// modified; the callback must return a numeric comparison result.
func applySort(items []any, fn Callback) (any, error) {
	result := make([]any, len(items))
	copy(result, items)

	var callbackErr error

	sort.SliceStable(result, func(i, j int) bool {
		if callbackErr != nil {
			return false
		}

		cmp, err := fn(result[i], result[j])
		if err != nil {
			callbackErr = err

			return false
		}

		sign, err := numeric(cmp)
		if err != nil {
			callbackErr = err

			return false
		}

		return sign < 0
	})

	if callbackErr != nil {
		return nil, callbackErr
	}

	return result, nil
}

func applyFind(items []any, fn Callback) (any, error) {
	return applyFilter(items, fn)
}

// applyFindOne returns the first matching element, or nil when none match.
func applyFindOne(items []any, fn Callback) (any, error) {
	for i, item := range items {
		match, err := fn(item, i)
		if err != nil {
			return nil, err
		}

		if truthy(match) {
			return item, nil
		}
	}

	return nil, nil
}

// truthy reports whether a callback result selects its element. Booleans
// are taken directly; nil is false; numbers are true when nonzero; any
// other value is true.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	default:
		n, err := numeric(v)
		if err != nil {
			return true
		}

		return n != 0
	}
}

func numeric(v any) (float64, error) {
	switch t := v.(type) {
	case int:
		return float64(t), nil
	case int8:
		return float64(t), nil
	case int16:
		return float64(t), nil
	case int32:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case float32:
		return float64(t), nil
	case float64:
		return t, nil
	}

	return 0, fmt.Errorf("not a numeric value: %T", v)
}
