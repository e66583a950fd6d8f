package kapten_test

import (
	"testing"

	"github.com/0xalexb/kapten"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *kapten.Store {
	t.Helper()

	store := kapten.New()

	err := store.Import(map[string]any{
		"a": map[string]any{
			"b": []any{1, 2},
		},
		"name": "test-app",
	})
	require.NoError(t, err)

	return store
}

func TestGet_MappingKey(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	value, err := store.Get("name")

	require.NoError(t, err)
	assert.Equal(t, "test-app", value)
}

func TestGet_SequenceIndex(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	value, err := store.Get("a.b.1")

	require.NoError(t, err)
	assert.Equal(t, 2, value)
}

func TestGet_MissingKey(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	_, err := store.Get("a.missing")

	require.ErrorIs(t, err, kapten.ErrNotFound)
}

func TestGet_NonIntegerIndex(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	_, err := store.Get("a.b.first")

	require.ErrorIs(t, err, kapten.ErrInvalidIndex)
}

func TestGet_IndexOutOfRange(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	_, err := store.Get("a.b.5")

	require.ErrorIs(t, err, kapten.ErrIndexOutOfRange)

	_, err = store.Get("a.b.-1")

	require.ErrorIs(t, err, kapten.ErrIndexOutOfRange)
}

func TestGet_ScalarShortCircuit(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	// Traversal stops at the scalar; the trailing segments are ignored.
	value, err := store.Get("name.anything.else")

	require.NoError(t, err)
	assert.Equal(t, "test-app", value)
}

func TestGet_EmptyPathReturnsWholeTree(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	tree, err := store.Get("")

	require.NoError(t, err)

	root, ok := tree.(map[string]any)
	require.True(t, ok)
	assert.Contains(t, root, "a")
	assert.Contains(t, root, "name")
}

func TestGetDefault(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	testCases := []struct {
		name     string
		path     string
		expected any
	}{
		{"missing key", "a.missing", -1},
		{"non-integer index", "a.b.first", -1},
		{"index out of range", "a.b.5", -1},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.expected, store.GetDefault(testCase.path, -1))
		})
	}
}

func TestGetDefault_PresentValueIgnoresDefault(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	assert.Equal(t, 2, store.GetDefault("a.b.1", -1))
}

func TestGetDefault_Idempotent(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	first := store.GetDefault("a.b.5", -1)
	second := store.GetDefault("a.b.5", -1)

	assert.Equal(t, first, second)
}

func TestAdd_NewKey(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	err := store.Add("a.c", "fresh").Err()

	require.NoError(t, err)

	value, err := store.Get("a.c")
	require.NoError(t, err)
	assert.Equal(t, "fresh", value)
}

func TestAdd_AppendsToSequence(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	err := store.Add("a.b", 3).Err()

	require.NoError(t, err)

	value, err := store.Get("a.b")
	require.NoError(t, err)
	assert.Equal(t, []any{1, 2, 3}, value)
}

func TestAdd_DuplicateKey(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	err := store.Add("name", "other").Err()

	require.ErrorIs(t, err, kapten.ErrDuplicateKey)

	// The collision leaves the tree unmodified.
	value, getErr := store.Get("name")
	require.NoError(t, getErr)
	assert.Equal(t, "test-app", value)
}

func TestAdd_AutoVivification(t *testing.T) {
	t.Parallel()

	store := kapten.New()

	err := store.Add("x.y.z", 5).Err()

	require.NoError(t, err)

	value, err := store.Get("x.y.z")
	require.NoError(t, err)
	assert.Equal(t, 5, value)

	tree, err := store.Get("")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"x": map[string]any{
			"y": map[string]any{
				"z": 5,
			},
		},
	}, tree)
}

func TestAdd_NonMappingIntermediate(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	err := store.Add("name.sub", 1).Err()

	require.ErrorIs(t, err, kapten.ErrNotMapping)
}

func TestReplace_OverwritesExisting(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	err := store.Replace("name", "renamed").Err()

	require.NoError(t, err)

	value, err := store.Get("name")
	require.NoError(t, err)
	assert.Equal(t, "renamed", value)
}

func TestReplace_OverwritesSequence(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	err := store.Replace("a.b", "scalar now").Err()

	require.NoError(t, err)

	value, err := store.Get("a.b")
	require.NoError(t, err)
	assert.Equal(t, "scalar now", value)
}

func TestRemove_DeletesKey(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	err := store.Remove("a.b").Err()

	require.NoError(t, err)

	_, err = store.Get("a.b")
	require.ErrorIs(t, err, kapten.ErrNotFound)

	// The containing mapping stays in place.
	value, err := store.Get("a")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{}, value)
}

func TestRemove_MissingKey(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	err := store.Remove("a.missing").Err()

	require.ErrorIs(t, err, kapten.ErrNotFound)
}

func TestRemove_MissingIntermediate(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	// No auto-vivification on remove.
	err := store.Remove("ghost.key").Err()

	require.ErrorIs(t, err, kapten.ErrNotFound)
}

func TestRemoveAt_PopsSequenceElement(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	err := store.Add("a.b", 3).RemoveAt("a.b", 0).Err()

	require.NoError(t, err)

	value, err := store.Get("a.b")
	require.NoError(t, err)
	assert.Equal(t, []any{2, 3}, value)
}

func TestRemoveAt_IndexOutOfRange(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	err := store.RemoveAt("a.b", 7).Err()

	require.ErrorIs(t, err, kapten.ErrIndexOutOfRange)
}

func TestRemoveAt_NonSequenceDeletesKey(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	err := store.RemoveAt("name", 0).Err()

	require.NoError(t, err)

	_, err = store.Get("name")
	require.ErrorIs(t, err, kapten.ErrNotFound)
}

func TestChaining_LatchesFirstError(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	err := store.
		Add("name", "collision").
		Replace("a.c", "never applied").
		Err()

	require.ErrorIs(t, err, kapten.ErrDuplicateKey)

	// The call after the failure is a no-op.
	_, getErr := store.Get("a.c")
	assert.ErrorIs(t, getErr, kapten.ErrNotFound)
}

func TestMutation_ObservedThroughSubReferences(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	before, err := store.Get("a")
	require.NoError(t, err)

	require.NoError(t, store.Replace("a.c", "added").Err())

	// The tree is mutated in place, so the earlier sub-reference
	// observes the change.
	mapping, ok := before.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "added", mapping["c"])
}
