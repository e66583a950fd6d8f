package handler

import (
	"errors"
	"fmt"
	"strings"

	"go.starlark.net/starlark"
)

// ErrScriptExport is returned when a tree is dumped to the script
// format. Configuration scripts are executed, never generated.
var ErrScriptExport = errors.New("script export is not supported")

// ErrUnsupportedValue is returned when a script binding cannot be
// represented in the generic tree shape.
var ErrUnsupportedValue = errors.New("unsupported script value")

// Script implements the Handler interface for Starlark configuration
// scripts. The script is executed in a sandboxed interpreter with no
// predeclared environment, and its module-level bindings become the
// resulting mapping. Names starting with an underscore and callable
// bindings are treated as script-private and skipped.
type Script struct {
	// Filename is used in script error messages and stack traces.
	// Defaults to "config.star" when empty.
	Filename string
}

// Load executes a Starlark program and collects its exported bindings.
func (h Script) Load(raw []byte) (any, error) {
	filename := h.Filename
	if filename == "" {
		filename = "config.star"
	}

	thread := &starlark.Thread{Name: "kapten"}

	globals, err := starlark.ExecFile(thread, filename, raw, nil)
	if err != nil {
		return nil, fmt.Errorf("execute script %q: %w", filename, err)
	}

	tree := make(map[string]any, len(globals))

	for name, value := range globals {
		if strings.HasPrefix(name, "_") {
			continue
		}

		converted, convErr := fromStarlark(value)
		if convErr != nil {
			// Functions and other non-data bindings are not configuration.
			continue
		}

		tree[name] = converted
	}

	return tree, nil
}

// Dump implements the Handler interface. It always fails with
// ErrScriptExport.
func (Script) Dump(_ any, _ ...DumpOption) ([]byte, error) {
	return nil, ErrScriptExport
}

func fromStarlark(value starlark.Value) (any, error) {
	switch v := value.(type) {
	case starlark.NoneType:
		return nil, nil
	case starlark.Bool:
		return bool(v), nil
	case starlark.Int:
		i, ok := v.Int64()
		if !ok {
			return nil, fmt.Errorf("%w: integer out of range", ErrUnsupportedValue)
		}

		return i, nil
	case starlark.Float:
		return float64(v), nil
	case starlark.String:
		return string(v), nil
	case *starlark.List:
		return fromStarlarkSequence(v.Len(), v.Index)
	case starlark.Tuple:
		return fromStarlarkSequence(v.Len(), v.Index)
	case *starlark.Dict:
		out := make(map[string]any, v.Len())

		for _, item := range v.Items() {
			key, ok := item[0].(starlark.String)
			if !ok {
				return nil, fmt.Errorf("%w: mapping key %s is not a string", ErrUnsupportedValue, item[0].String())
			}

			converted, err := fromStarlark(item[1])
			if err != nil {
				return nil, err
			}

			out[string(key)] = converted
		}

		return out, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedValue, value.Type())
	}
}

func fromStarlarkSequence(length int, index func(int) starlark.Value) (any, error) {
	out := make([]any, length)

	for i := range length {
		converted, err := fromStarlark(index(i))
		if err != nil {
			return nil, err
		}

		out[i] = converted
	}

	return out, nil
}
