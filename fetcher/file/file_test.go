package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch_Success(t *testing.T) {
	t.Parallel()

	content := []byte(`{"name": "test-app", "version": "1.0"}`)

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	err := os.WriteFile(configPath, content, 0o600)
	require.NoError(t, err)

	fetcher, err := New(configPath)
	require.NoError(t, err)

	data, err := fetcher.Fetch()

	require.NoError(t, err)
	assert.Equal(t, content, data)
	assert.Equal(t, configPath, fetcher.Path())
}

func TestNew_FileNotFound(t *testing.T) {
	t.Parallel()

	fetcher, err := New("/nonexistent/path/config.yaml")

	require.Error(t, err)
	assert.Nil(t, fetcher)
	assert.Contains(t, err.Error(), "stat file")
	assert.Contains(t, err.Error(), "nonexistent")
}

func TestNew_EmptyFile(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "empty.yaml")

	err := os.WriteFile(configPath, []byte{}, 0o600)
	require.NoError(t, err)

	fetcher, err := New(configPath)
	require.NoError(t, err)

	data, err := fetcher.Fetch()

	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestNew_DirectoryPath(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	fetcher, err := New(tmpDir)

	require.Error(t, err)
	assert.Nil(t, fetcher)
	require.ErrorIs(t, err, ErrPathIsDirectory)
	assert.Contains(t, err.Error(), "is a directory")
}

func TestFetcher_Fetch_FileModifiedAfterConstruction_ReturnsCachedData(t *testing.T) {
	t.Parallel()

	originalContent := []byte(`version: "1.0"`)
	modifiedContent := []byte(`version: "2.0"`)

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	err := os.WriteFile(configPath, originalContent, 0o600)
	require.NoError(t, err)

	fetcher, err := New(configPath)
	require.NoError(t, err)

	// The fetcher caches at construction time.
	err = os.WriteFile(configPath, modifiedContent, 0o600)
	require.NoError(t, err)

	data, err := fetcher.Fetch()
	require.NoError(t, err)

	assert.Equal(t, originalContent, data, "Fetch should return cached data, not current file content")
}

func TestFetcher_Fetch_ReturnsCopy_MutationSafe(t *testing.T) {
	t.Parallel()

	content := []byte(`original: value`)

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	err := os.WriteFile(configPath, content, 0o600)
	require.NoError(t, err)

	fetcher, err := New(configPath)
	require.NoError(t, err)

	data1, err := fetcher.Fetch()
	require.NoError(t, err)

	data1[0] = 'X' // Mutate the returned slice

	data2, err := fetcher.Fetch()
	require.NoError(t, err)

	assert.Equal(t, content, data2, "Fetch should return unmodified cached data")
}

func TestExpandHome(t *testing.T) {
	t.Parallel()

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	testCases := []struct {
		name     string
		path     string
		expected string
	}{
		{
			name:     "bare tilde",
			path:     "~",
			expected: home,
		},
		{
			name:     "tilde prefix",
			path:     "~/configs/app.yaml",
			expected: filepath.Join(home, "configs", "app.yaml"),
		},
		{
			name:     "absolute path unchanged",
			path:     "/etc/app.yaml",
			expected: "/etc/app.yaml",
		},
		{
			name:     "tilde in the middle unchanged",
			path:     "configs/~backup.yaml",
			expected: "configs/~backup.yaml",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.expected, ExpandHome(testCase.path))
		})
	}
}
