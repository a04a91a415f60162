// Package testutil provides blueprint stores for tests in other packages.
// Every store is isolated and cleaned up when the test finishes.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/dyluth/architect/internal/store"
	"github.com/dyluth/architect/pkg/blueprint"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// NewRedisStore starts an in-memory Redis server and returns a store for
// workspace backed by it.
func NewRedisStore(t *testing.T, workspace string) (*store.RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	s, err := store.NewRedisStore(&redis.Options{Addr: mr.Addr()}, workspace)
	require.NoError(t, err, "Failed to create Redis store")
	t.Cleanup(func() { s.Close() })

	return s, mr
}

// NewFileStore returns a store whose blueprint file lives in a temp directory.
// The file does not exist until the first save.
func NewFileStore(t *testing.T) *store.FileStore {
	t.Helper()
	return store.NewFileStore(filepath.Join(t.TempDir(), "blueprint.json"))
}

// Seed saves bp into s and fails the test on error.
func Seed(t *testing.T, s store.Store, bp blueprint.Blueprint) {
	t.Helper()
	require.NoError(t, s.Save(context.Background(), bp), "Failed to seed blueprint")
}
