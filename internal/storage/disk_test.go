package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"house-preview-backend/internal/storage"
)

func newStore(t *testing.T) *storage.DiskStore {
	t.Helper()
	s, err := storage.NewDiskStore(t.TempDir(), "http://localhost:8080/")
	require.NoError(t, err)
	return s
}

func TestDiskStore_PutExistsDelete(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	path := "house_previews/images/a.png"

	exists, err := s.Exists(ctx, path)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, s.Put(ctx, path, []byte("data"), "image/png"))

	data, err := os.ReadFile(filepath.Join(s.Root(), "house_previews", "images", "a.png"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(data))

	exists, err = s.Exists(ctx, path)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, s.Delete(ctx, path))
	exists, err = s.Exists(ctx, path)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDiskStore_DeleteMissingIsNoop(t *testing.T) {
	s := newStore(t)
	assert.NoError(t, s.Delete(context.Background(), "house_previews/svg/missing.svg"))
}

func TestDiskStore_RejectsEscapingPaths(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	for _, p := range []string{"", "../outside.png", "house_previews/../../outside.png", "/etc/passwd"} {
		assert.ErrorIs(t, s.Put(ctx, p, []byte("x"), ""), storage.ErrInvalidPath, p)
	}
}

func TestDiskStore_PublicURL(t *testing.T) {
	s := newStore(t)
	assert.Equal(t,
		"http://localhost:8080/storage/house_previews/images/a.png",
		s.PublicURL("house_previews/images/a.png"))
}
