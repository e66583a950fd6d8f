package handler

import (
	"errors"
	"fmt"
)

// ErrNativeOnly is returned when the dict handler is asked to parse raw
// text. Native mappings are imported directly via Store.Import without a
// serialization step.
var ErrNativeOnly = errors.New("dict handler accepts native mappings only")

// Dict is the pass-through handler for native Go mappings. It exists so
// that a store populated from a map[string]any still has a resolved
// handler for later export.
type Dict struct{}

// Load implements the Handler interface. The dict format has no textual
// representation to parse, so Load always fails with ErrNativeOnly.
func (Dict) Load(_ []byte) (any, error) {
	return nil, ErrNativeOnly
}

// Dump implements the Handler interface. It renders the tree with Go's
// default value formatting, without any serialization.
func (Dict) Dump(tree any, _ ...DumpOption) ([]byte, error) {
	return fmt.Appendf(nil, "%v", tree), nil
}

// CopyTree returns a deep copy of a configuration tree. Mappings and
// sequences are copied recursively; scalars are returned as-is.
func CopyTree(node any) any {
	switch n := node.(type) {
	case map[string]any:
		out := make(map[string]any, len(n))
		for k, v := range n {
			out[k] = CopyTree(v)
		}

		return out
	case []any:
		out := make([]any, len(n))
		for i, v := range n {
			out[i] = CopyTree(v)
		}

		return out
	default:
		return node
	}
}
