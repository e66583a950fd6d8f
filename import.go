package kapten

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/0xalexb/kapten/fetcher/file"
	"github.com/0xalexb/kapten/handler"
)

// ErrUnresolvedHandler is returned when Import cannot determine which
// handler to use for a value.
var ErrUnresolvedHandler = errors.New("unable to determine handler")

// ErrFileNotFound is returned when a configuration script path does not
// resolve to an existing file.
var ErrFileNotFound = errors.New("file not found")

const scriptExtension = ".star"

// Import replaces the store's tree with the parsed form of value and
// records the handler that parsed it for later Export calls.
//
// Resolution happens in priority order:
//
//  1. A map[string]any is deep-copied into the store directly, with the
//     dict handler recorded.
//  2. A string naming a Starlark script (a ".star" path, or a path with
//     a same-named ".star" file beside it) is executed by the script
//     handler. Fails with ErrFileNotFound if the script is missing.
//  3. A string naming an existing file is read whole and parsed by the
//     handler inferred from its extension, unless a handler was already
//     selected, in which case that one is used.
//  4. Any other string is treated as raw content in the pre-selected
//     handler's format.
//  5. Otherwise the call fails with ErrUnresolvedHandler.
func (s *Store) Import(value any) error {
	switch v := value.(type) {
	case map[string]any:
		s.handler = handler.Dict{}
		s.tree = handler.CopyTree(v)

		s.logger.Debug("configuration imported", "handler", handler.FormatDict.String())

		return nil
	case string:
		return s.importString(v)
	default:
		return fmt.Errorf("import value of type %T: %w", value, ErrUnresolvedHandler)
	}
}

// ImportFile reads the file at path and parses it with the given
// format, overriding any extension inference. The format becomes the
// store's active handler.
func (s *Store) ImportFile(path string, format handler.Format) error {
	if format == handler.FormatScript {
		return s.importScript(path)
	}

	s.handler = format.New()

	return s.importFile(path)
}

func (s *Store) importString(value string) error {
	if s.isScriptPath(value) {
		return s.importScript(value)
	}

	if isFile(file.ExpandHome(value)) {
		if s.handler == nil {
			format, ok := handler.FromPath(value)
			if !ok {
				return fmt.Errorf("file %q: %w", value, ErrUnresolvedHandler)
			}

			s.handler = format.New()
		}

		return s.importFile(value)
	}

	if s.handler == nil {
		return fmt.Errorf("raw value: %w", ErrUnresolvedHandler)
	}

	return s.load([]byte(value))
}

func (s *Store) importFile(path string) error {
	fetcher, err := file.New(path)
	if err != nil {
		return fmt.Errorf("import %q: %w", path, err)
	}

	raw, err := fetcher.Fetch()
	if err != nil {
		return fmt.Errorf("import %q: %w", path, err)
	}

	return s.load(raw)
}

// importScript resolves a script path the way a module reference would
// be: the extension is appended if missing and the path is made
// absolute before execution.
func (s *Store) importScript(path string) error {
	resolved := file.ExpandHome(path)
	if filepath.Ext(resolved) != scriptExtension {
		resolved += scriptExtension
	}

	resolved, err := filepath.Abs(resolved)
	if err != nil {
		return fmt.Errorf("resolving script %q: %w", path, err)
	}

	if !isFile(resolved) {
		return fmt.Errorf("script %q: %w", resolved, ErrFileNotFound)
	}

	s.handler = handler.Script{Filename: resolved}

	return s.importFile(resolved)
}

func (s *Store) load(raw []byte) error {
	tree, err := s.handler.Load(raw)
	if err != nil {
		return err
	}

	s.tree = tree

	s.logger.Debug("configuration imported", "bytes", len(raw))

	return nil
}

// isScriptPath reports whether value refers to a Starlark script,
// either by its extension or by a same-named script file next to it.
func (s *Store) isScriptPath(value string) bool {
	resolved := file.ExpandHome(value)

	if filepath.Ext(resolved) == scriptExtension {
		return true
	}

	return isFile(resolved + scriptExtension)
}

func isFile(path string) bool {
	stat, err := os.Stat(path)

	return err == nil && !stat.IsDir()
}
