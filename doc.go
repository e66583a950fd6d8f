// Package kapten is a format-agnostic configuration accessor. It loads
// configuration from JSON, YAML, INI, Starlark scripts, or native Go
// mappings into a single nested tree, exposes dotted-path reads and
// writes over that tree, and serializes it back to any supported
// format.
//
// # Dotted paths
//
// A path is a string of dot-separated segments. Each segment is a
// mapping key, or a decimal index when the node reached at that step is
// a sequence:
//
//	store := kapten.New()
//	_ = store.Import(map[string]any{
//		"servers": map[string]any{
//			"web": []any{"alpha", "beta"},
//		},
//	})
//
//	name, _ := store.Get("servers.web.1") // "beta"
//
// Writes create missing intermediate mappings automatically, and adding
// to a key that already holds a sequence appends to it. Mutating calls
// return the store for chaining; the first failure is latched and
// reported by Err:
//
//	err := store.Add("servers.web", "gamma").
//		Replace("servers.timeout", 30).
//		Err()
//
// # Handlers
//
// Parsing and serialization are delegated to the handler package. The
// handler used by Import sticks to the store and is reused by Export;
// ExportTo converts to a different format:
//
//	out, err := store.ExportTo(handler.FormatYAML)
//
// A Store is owned by a single goroutine; concurrent use must be
// serialized by the caller.
package kapten
