package kapten

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ErrNotFound is returned when a mapping key required by a path is absent.
var ErrNotFound = errors.New("key not found")

// ErrInvalidIndex is returned when a non-integer segment is applied to a sequence.
var ErrInvalidIndex = errors.New("sequence index is not an integer")

// ErrIndexOutOfRange is returned when a sequence index is out of range.
var ErrIndexOutOfRange = errors.New("sequence index out of range")

// ErrDuplicateKey is returned by Add when the target key already holds a
// non-sequence value.
var ErrDuplicateKey = errors.New("key already exists")

// Get walks the tree along a dotted path and returns the node it
// reaches. Each segment is a mapping key, or a decimal index when the
// current node is a sequence. A scalar reached before the segments are
// exhausted is returned as-is; the remaining segments are ignored.
//
// An empty path returns the whole tree as a structural view, not a
// serialized form.
func (s *Store) Get(path string) (any, error) {
	if path == "" {
		return s.tree, nil
	}

	current := s.tree

	for _, segment := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			value, ok := node[segment]
			if !ok {
				return nil, fmt.Errorf("key %q: %w", segment, ErrNotFound)
			}

			current = value
		case []any:
			index, err := strconv.Atoi(segment)
			if err != nil {
				return nil, fmt.Errorf("segment %q: %w", segment, ErrInvalidIndex)
			}

			if index < 0 || index >= len(node) {
				return nil, fmt.Errorf("index %d: %w", index, ErrIndexOutOfRange)
			}

			current = node[index]
		default:
			// Scalar short-circuit: remaining segments cannot be resolved
			// against a leaf, so the leaf itself is the result.
			return current, nil
		}
	}

	return current, nil
}

// GetDefault is Get with a fallback: traversal failures (missing key,
// non-integer index, index out of range) yield def instead of an error.
func (s *Store) GetDefault(path string, def any) any {
	value, err := s.Get(path)
	if err != nil {
		// Get only produces the three swallowable traversal errors.
		return def
	}

	return value
}

// Add inserts value at the dotted path. Missing intermediate mappings
// are created on the way (auto-vivification). If the target key already
// holds a sequence, value is appended to it; if it holds anything else,
// the call fails with ErrDuplicateKey. The tree is mutated in place and
// the store is returned for chaining; check Err after the chain.
//
// Intermediate mappings created before a failing final step are left in
// place.
func (s *Store) Add(path string, value any) *Store {
	if s.err != nil {
		return s
	}

	err := s.add(path, value, false)
	if err != nil {
		s.err = fmt.Errorf("add %q: %w", path, err)
	}

	return s
}

// Replace sets value at the dotted path unconditionally, overwriting
// any existing value. Missing intermediate mappings are created the
// same way as in Add.
func (s *Store) Replace(path string, value any) *Store {
	if s.err != nil {
		return s
	}

	err := s.add(path, value, true)
	if err != nil {
		s.err = fmt.Errorf("replace %q: %w", path, err)
	}

	return s
}

// Remove deletes the target key of the dotted path from its containing
// mapping. Intermediate segments must exist; there is no
// auto-vivification on remove.
func (s *Store) Remove(path string) *Store {
	if s.err != nil {
		return s
	}

	err := s.remove(path, 0, false)
	if err != nil {
		s.err = fmt.Errorf("remove %q: %w", path, err)
	}

	return s
}

// RemoveAt removes the element at index from the sequence held by the
// target key. If the target value is not a sequence, the key is deleted
// entirely, as with Remove.
func (s *Store) RemoveAt(path string, index int) *Store {
	if s.err != nil {
		return s
	}

	err := s.remove(path, index, true)
	if err != nil {
		s.err = fmt.Errorf("remove %q index %d: %w", path, index, err)
	}

	return s
}

func (s *Store) add(path string, value any, replace bool) error {
	segments := strings.Split(path, ".")
	target := segments[len(segments)-1]

	container, err := s.vivify(segments[:len(segments)-1])
	if err != nil {
		return err
	}

	existing, exists := container[target]

	switch {
	case replace:
		container[target] = value
	case !exists:
		container[target] = value
	default:
		sequence, isSequence := existing.([]any)
		if !isSequence {
			return fmt.Errorf("key %q: %w", target, ErrDuplicateKey)
		}

		container[target] = append(sequence, value)
	}

	return nil
}

func (s *Store) remove(path string, index int, byIndex bool) error {
	segments := strings.Split(path, ".")
	target := segments[len(segments)-1]

	container, err := s.walk(segments[:len(segments)-1])
	if err != nil {
		return err
	}

	existing, exists := container[target]
	if !exists {
		return fmt.Errorf("key %q: %w", target, ErrNotFound)
	}

	if byIndex {
		sequence, isSequence := existing.([]any)
		if isSequence {
			if index < 0 || index >= len(sequence) {
				return fmt.Errorf("index %d: %w", index, ErrIndexOutOfRange)
			}

			container[target] = slices.Delete(sequence, index, index+1)

			return nil
		}
	}

	delete(container, target)

	return nil
}

// vivify walks the container path, creating empty mappings for missing
// segments.
func (s *Store) vivify(segments []string) (map[string]any, error) {
	current, ok := s.tree.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("top level: %w", ErrNotMapping)
	}

	for _, segment := range segments {
		next, exists := current[segment]
		if !exists {
			created := make(map[string]any)
			current[segment] = created
			current = created

			continue
		}

		mapping, isMapping := next.(map[string]any)
		if !isMapping {
			return nil, fmt.Errorf("segment %q: %w", segment, ErrNotMapping)
		}

		current = mapping
	}

	return current, nil
}

// walk is vivify without the creation: missing segments fail with
// ErrNotFound.
func (s *Store) walk(segments []string) (map[string]any, error) {
	current, ok := s.tree.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("top level: %w", ErrNotMapping)
	}

	for _, segment := range segments {
		next, exists := current[segment]
		if !exists {
			return nil, fmt.Errorf("key %q: %w", segment, ErrNotFound)
		}

		mapping, isMapping := next.(map[string]any)
		if !isMapping {
			return nil, fmt.Errorf("segment %q: %w", segment, ErrNotMapping)
		}

		current = mapping
	}

	return current, nil
}
