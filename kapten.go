package kapten

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"

	"github.com/0xalexb/kapten/handler"

	"github.com/go-viper/mapstructure/v2"
)

// ErrNoHandler is returned by Export when no handler has been selected.
var ErrNoHandler = errors.New("no handler set")

// ErrNotMapping is returned when a write operation traverses a node that
// exists but is not a mapping.
var ErrNotMapping = errors.New("not a mapping")

// Store owns a single in-memory configuration tree and the handler it
// was loaded with. All reads and writes go through the dotted-path
// engine; Import and Export delegate parsing and serialization to the
// selected handler.
//
// A Store is owned by a single goroutine. Concurrent use must be
// serialized by the caller.
type Store struct {
	tree    any
	handler handler.Handler
	logger  *slog.Logger
	err     error
}

// New creates an empty Store. The tree starts as an empty mapping and
// is replaced wholesale by Import.
func New(opts ...Option) *Store {
	var options Options

	for _, apply := range opts {
		apply(&options)
	}

	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	store := &Store{
		tree:   make(map[string]any),
		logger: logger,
	}

	if options.Format != nil {
		store.handler = options.Format.New()
	}

	return store
}

// Err returns the first error recorded by a chained mutating call
// (Add, Replace, Remove, RemoveAt, Upsert, Merge). Once an error is
// recorded, later chained calls are no-ops; reads and Import are not
// affected.
func (s *Store) Err() error {
	return s.err
}

// Upsert sets a top-level key, overwriting any existing value.
// It mutates the tree in place and returns the store for chaining.
func (s *Store) Upsert(key string, value any) *Store {
	if s.err != nil {
		return s
	}

	root, ok := s.tree.(map[string]any)
	if !ok {
		s.err = fmt.Errorf("upsert %q: top level: %w", key, ErrNotMapping)

		return s
	}

	root[key] = value

	return s
}

// Merge overwrites top-level keys with the entries of m. The merge is
// shallow: nested values are replaced, not combined. Returns the store
// for chaining.
func (s *Store) Merge(m map[string]any) *Store {
	if s.err != nil {
		return s
	}

	root, ok := s.tree.(map[string]any)
	if !ok {
		s.err = fmt.Errorf("merge: top level: %w", ErrNotMapping)

		return s
	}

	maps.Copy(root, m)

	return s
}

// Export serializes the entire current tree with the store's active
// handler, which is the one resolved by the last Import unless a format
// was pre-selected. Fails with ErrNoHandler if none is set.
func (s *Store) Export(opts ...handler.DumpOption) ([]byte, error) {
	if s.handler == nil {
		return nil, fmt.Errorf("export: %w", ErrNoHandler)
	}

	return s.handler.Dump(s.tree, opts...)
}

// ExportTo serializes the entire current tree to an explicit target
// format, which may differ from the one used to load. The store's
// active handler is left unchanged.
func (s *Store) ExportTo(format handler.Format, opts ...handler.DumpOption) ([]byte, error) {
	return format.New().Dump(s.tree, opts...)
}

// Unmarshal decodes the subtree at the given dotted path into v using
// mapstructure with the "config" tag. An empty path decodes the whole
// tree.
func (s *Store) Unmarshal(path string, v any) error {
	node, err := s.Get(path)
	if err != nil {
		return err
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "config",
		Result:           v,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("building decoder: %w", err)
	}

	err = dec.Decode(node)
	if err != nil {
		return fmt.Errorf("decoding path %q: %w", path, err)
	}

	return nil
}
