package api

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mozilla-ai/mcpdir/internal/errors"
	"github.com/mozilla-ai/mcpdir/internal/store"
)

func TestAPI_HandleAddEntry(t *testing.T) {
	t.Parallel()

	cat := testCatalog(t)
	mgr := testManager(t, nil)

	resp, err := handleAddEntry(cat, mgr, 1)
	require.NoError(t, err)
	require.False(t, resp.Body.AlreadyInPackage)
	require.Equal(t, 1, resp.Body.Entry.ID)
	require.Len(t, resp.Body.Package.Entries, 1)

	resp, err = handleAddEntry(cat, mgr, 1)
	require.NoError(t, err)
	require.True(t, resp.Body.AlreadyInPackage)
	require.Len(t, resp.Body.Package.Entries, 1)

	_, err = handleAddEntry(cat, mgr, 42)
	require.ErrorIs(t, err, errors.ErrEntryNotFound)
	require.Len(t, mgr.Current().Entries, 1)
}

func TestAPI_HandleSavePackage(t *testing.T) {
	t.Parallel()

	t.Run("empty package is refused", func(t *testing.T) {
		t.Parallel()

		mgr := testManager(t, nil)
		_, err := handleSavePackage(mgr)
		require.ErrorIs(t, err, errors.ErrEmptyPackage)
		require.Empty(t, mgr.Saved())
	})

	t.Run("saves a copy", func(t *testing.T) {
		t.Parallel()

		st := store.NewMemoryStore()
		mgr := testManager(t, st)
		_, err := handleAddEntry(testCatalog(t), mgr, 3)
		require.NoError(t, err)

		resp, err := handleSavePackage(mgr)
		require.NoError(t, err)
		require.NotEqual(t, "current", resp.Body.ID)
		require.Len(t, resp.Body.Entries, 1)
		require.Len(t, mgr.Saved(), 1)

		_, ok, err := st.Get("mcp-saved-packages")
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("persistence failure", func(t *testing.T) {
		t.Parallel()

		mgr := testManager(t, failingStore{})
		_, err := handleAddEntry(testCatalog(t), mgr, 3)
		require.NoError(t, err)

		_, err = handleSavePackage(mgr)
		require.ErrorIs(t, err, errors.ErrPersistenceFailed)
	})
}

func TestAPI_HandleSavedPackage(t *testing.T) {
	t.Parallel()

	mgr := testManager(t, nil)
	mgr.AddEntry(testEntries()[0])
	saved, err := mgr.Save()
	require.NoError(t, err)

	resp, err := handleSavedPackage(mgr, saved.ID)
	require.NoError(t, err)
	require.Equal(t, saved, resp.Body)

	_, err = handleSavedPackage(mgr, "missing")
	require.ErrorIs(t, err, errors.ErrPackageNotFound)
}
