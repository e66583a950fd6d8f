// Package handler converts between serialized configuration formats and
// the generic tree shape used by the kapten store.
//
// Five formats are supported, selected through the closed Format enum:
//
//   - dict: pass-through for native Go mappings
//   - json: JSON documents (encoding/json)
//   - yaml: YAML documents (github.com/goccy/go-yaml)
//   - ini: INI documents (gopkg.in/ini.v1)
//   - script: Starlark configuration scripts (go.starlark.net)
//
// Every handler implements the two-method Handler interface: Load parses
// raw bytes into a tree of map[string]any, []any, and scalar values;
// Dump serializes such a tree back to the format. Dump accepts
// functional DumpOption values as an opaque settings bag; each format
// reads only the options that apply to it.
//
// Handler construction goes through Format.New rather than a
// string-keyed registry, keeping the supported set closed:
//
//	f, err := handler.ParseFormat("yaml")
//	if err != nil {
//		return err
//	}
//
//	out, err := f.New().Dump(tree, handler.WithIndent(2))
package handler
