package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrPathIsDirectory is returned when the path provided to the Fetcher points to a directory instead of a file.
var ErrPathIsDirectory = errors.New("path is a directory, not a file")

// Fetcher reads configuration data from a file. The file is read once at
// construction time and its contents are cached.
type Fetcher struct {
	filepath string
	data     []byte
}

// New creates a file-based Fetcher for the given path. A leading "~/" is
// expanded to the user's home directory and the path is cleaned before
// reading. Returns an error if the file cannot be read or if the path
// points to a directory.
func New(fpath string) (*Fetcher, error) {
	cleanPath := filepath.Clean(ExpandHome(fpath))

	stat, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("stat file %q: %w", cleanPath, err)
	}

	if stat.IsDir() {
		return nil, fmt.Errorf("path %q: %w", cleanPath, ErrPathIsDirectory)
	}

	data, err := os.ReadFile(cleanPath) // #nosec G304 -- path is cleaned and validated
	if err != nil {
		return nil, fmt.Errorf("reading file %q: %w", cleanPath, err)
	}

	return &Fetcher{
		filepath: cleanPath,
		data:     data,
	}, nil
}

// Path returns the cleaned path the Fetcher was constructed with.
func (f *Fetcher) Path() string {
	return f.filepath
}

// Fetch returns a copy of the cached configuration data that was read at construction time.
// A copy is returned to prevent callers from mutating the cached data.
func (f *Fetcher) Fetch() ([]byte, error) {
	result := make([]byte, len(f.data))
	copy(result, f.data)

	return result, nil
}

// ExpandHome replaces a leading "~/" with the user's home directory.
// The path is returned unchanged if the home directory cannot be
// resolved.
func ExpandHome(fpath string) string {
	if fpath != "~" && !strings.HasPrefix(fpath, "~/") {
		return fpath
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fpath
	}

	if fpath == "~" {
		return home
	}

	return filepath.Join(home, fpath[2:])
}
