package handler

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnknownFormat is returned when a format name cannot be resolved.
var ErrUnknownFormat = errors.New("unknown format")

// Handler converts between raw serialized configuration and the generic
// tree shape used by kapten: map[string]any for mappings, []any for
// sequences, and plain Go values for scalars.
//
// Implementations are pure transformations and hold no shared state.
type Handler interface {
	Load(raw []byte) (any, error)
	Dump(tree any, opts ...DumpOption) ([]byte, error)
}

// DumpOptions holds format-specific serialization settings. Each handler
// reads only the options it understands and ignores the rest.
type DumpOptions struct {
	Indent int
}

// DumpOption defines a function type for configuring serialization.
type DumpOption func(*DumpOptions)

// WithIndent sets the indentation width for formats that support
// pretty-printing (JSON and YAML).
func WithIndent(width int) DumpOption {
	return func(opts *DumpOptions) {
		opts.Indent = width
	}
}

func newDumpOptions(opts ...DumpOption) DumpOptions {
	var options DumpOptions

	for _, apply := range opts {
		apply(&options)
	}

	return options
}

// Format identifies one of the supported configuration formats.
// The set is closed: handlers are selected via this enum rather than a
// string-keyed registry.
type Format int

const (
	// FormatDict is the pass-through handler for native Go mappings.
	FormatDict Format = iota
	// FormatJSON handles JSON documents.
	FormatJSON
	// FormatYAML handles YAML documents.
	FormatYAML
	// FormatINI handles INI documents.
	FormatINI
	// FormatScript handles Starlark configuration scripts.
	FormatScript
)

// String returns the canonical name of the format.
func (f Format) String() string {
	switch f {
	case FormatDict:
		return "dict"
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatINI:
		return "ini"
	case FormatScript:
		return "script"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// New constructs the Handler implementation for the format.
func (f Format) New() Handler {
	switch f {
	case FormatJSON:
		return JSON{}
	case FormatYAML:
		return YAML{}
	case FormatINI:
		return INI{}
	case FormatScript:
		return Script{}
	default:
		return Dict{}
	}
}

// ParseFormat resolves a format name. Extension aliases ("yml", "conf",
// "star") are accepted alongside the canonical names.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "dict":
		return FormatDict, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "ini", "conf":
		return FormatINI, nil
	case "script", "star":
		return FormatScript, nil
	default:
		return FormatDict, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// FromPath infers the format from a file path's extension.
// Recognized extensions: ini|conf -> ini, yaml|yml -> yaml, json -> json,
// star -> script.
func FromPath(path string) (Format, bool) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")

	switch strings.ToLower(ext) {
	case "ini", "conf":
		return FormatINI, true
	case "yaml", "yml":
		return FormatYAML, true
	case "json":
		return FormatJSON, true
	case "star":
		return FormatScript, true
	default:
		return FormatDict, false
	}
}
