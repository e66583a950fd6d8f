package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDict_Load_Rejected(t *testing.T) {
	t.Parallel()

	_, err := Dict{}.Load([]byte(`anything`))

	require.ErrorIs(t, err, ErrNativeOnly)
}

func TestDict_Dump(t *testing.T) {
	t.Parallel()

	out, err := Dict{}.Dump(map[string]any{"key": "value"})

	require.NoError(t, err)
	assert.Equal(t, "map[key:value]", string(out))
}

func TestCopyTree_DeepCopy(t *testing.T) {
	t.Parallel()

	original := map[string]any{
		"nested": map[string]any{"key": "value"},
		"seq":    []any{1, 2, 3},
		"scalar": "text",
	}

	copied, ok := CopyTree(original).(map[string]any)
	require.True(t, ok)
	require.Equal(t, original, copied)

	// Mutating the copy must not leak into the original.
	copied["nested"].(map[string]any)["key"] = "changed"
	copied["seq"].([]any)[0] = 99

	assert.Equal(t, "value", original["nested"].(map[string]any)["key"])
	assert.Equal(t, 1, original["seq"].([]any)[0])
}

func TestCopyTree_Scalar(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 42, CopyTree(42))
	assert.Equal(t, "text", CopyTree("text"))
	assert.Nil(t, CopyTree(nil))
}
