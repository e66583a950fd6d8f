package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyData is returned when the input data is empty.
var ErrEmptyData = errors.New("empty data")

// JSON implements the Handler interface for JSON documents using the
// standard library encoder.
type JSON struct{}

// Load parses a JSON document into the generic tree shape.
func (JSON) Load(raw []byte) (any, error) {
	if len(raw) == 0 {
		return nil, ErrEmptyData
	}

	var tree any

	err := json.Unmarshal(raw, &tree)
	if err != nil {
		return nil, fmt.Errorf("unmarshal json: %w", err)
	}

	return tree, nil
}

// Dump serializes a tree to JSON. WithIndent enables pretty-printing;
// the default output is compact.
func (JSON) Dump(tree any, opts ...DumpOption) ([]byte, error) {
	options := newDumpOptions(opts...)

	var (
		out []byte
		err error
	)

	if options.Indent > 0 {
		out, err = json.MarshalIndent(tree, "", strings.Repeat(" ", options.Indent))
	} else {
		out, err = json.Marshal(tree)
	}

	if err != nil {
		return nil, fmt.Errorf("marshal json: %w", err)
	}

	return out, nil
}
