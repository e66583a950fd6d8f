package handler

import (
	"fmt"

	"github.com/goccy/go-yaml"
)

// YAML implements the Handler interface for YAML documents.
// It uses github.com/goccy/go-yaml, which decodes mappings into
// map[string]any directly.
type YAML struct{}

// Load parses a YAML document into the generic tree shape.
func (YAML) Load(raw []byte) (any, error) {
	if len(raw) == 0 {
		return nil, ErrEmptyData
	}

	var tree any

	err := yaml.Unmarshal(raw, &tree)
	if err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}

	return tree, nil
}

// Dump serializes a tree to YAML. WithIndent overrides the encoder's
// default two-space indentation.
func (YAML) Dump(tree any, opts ...DumpOption) ([]byte, error) {
	options := newDumpOptions(opts...)

	var encodeOpts []yaml.EncodeOption

	if options.Indent > 0 {
		encodeOpts = append(encodeOpts, yaml.Indent(options.Indent))
	}

	out, err := yaml.MarshalWithOptions(tree, encodeOpts...)
	if err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}

	return out, nil
}
