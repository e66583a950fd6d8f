package handler

import (
	"bytes"
	"errors"
	"fmt"
	"maps"
	"slices"

	"gopkg.in/ini.v1"
)

// ErrTopLevelNotMapping is returned when a tree whose root is not a
// mapping is dumped to a format that requires one.
var ErrTopLevelNotMapping = errors.New("top level is not a mapping")

// INI implements the Handler interface for INI documents using
// gopkg.in/ini.v1. Sections become nested mappings keyed by section
// name; keys of the unnamed default section appear at the top level.
// INI carries no type information, so all loaded values are strings.
type INI struct{}

// Load parses an INI document into the generic tree shape.
func (INI) Load(raw []byte) (any, error) {
	cfg, err := ini.Load(raw)
	if err != nil {
		return nil, fmt.Errorf("parse ini: %w", err)
	}

	tree := make(map[string]any)

	for _, section := range cfg.Sections() {
		pairs := section.KeysHash()

		if section.Name() == ini.DefaultSection {
			for k, v := range pairs {
				tree[k] = v
			}

			continue
		}

		values := make(map[string]any, len(pairs))
		for k, v := range pairs {
			values[k] = v
		}

		tree[section.Name()] = values
	}

	return tree, nil
}

// Dump serializes a tree to INI. Top-level mapping values become
// sections; everything else is written to the default section with Go's
// default value formatting. Keys are emitted in sorted order since the
// generic tree carries no insertion order.
func (INI) Dump(tree any, _ ...DumpOption) ([]byte, error) {
	root, ok := tree.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("dump ini: %w", ErrTopLevelNotMapping)
	}

	cfg := ini.Empty()

	for _, key := range slices.Sorted(maps.Keys(root)) {
		section, isSection := root[key].(map[string]any)
		if !isSection {
			cfg.Section(ini.DefaultSection).Key(key).SetValue(fmt.Sprint(root[key]))

			continue
		}

		target := cfg.Section(key)
		for _, name := range slices.Sorted(maps.Keys(section)) {
			target.Key(name).SetValue(fmt.Sprint(section[name]))
		}
	}

	var buf bytes.Buffer

	_, err := cfg.WriteTo(&buf)
	if err != nil {
		return nil, fmt.Errorf("write ini: %w", err)
	}

	return buf.Bytes(), nil
}
