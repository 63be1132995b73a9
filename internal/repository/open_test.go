package repository

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"goboard/internal/bootstrap"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()
	log := zap.NewNop().Sugar()

	t.Run("memory", func(t *testing.T) {
		s := Open(ctx, &bootstrap.Config{StorageBackend: "memory"}, log)
		assert.Equal(t, bootstrap.StorageMemory, s.Backend)
		assert.IsType(t, &MemoryStore{}, s.Store)
		assert.NoError(t, s.Ping(ctx))
		assert.NoError(t, s.Close(ctx))
	})

	t.Run("file", func(t *testing.T) {
		dir := t.TempDir()
		s := Open(ctx, &bootstrap.Config{StorageBackend: "FILE", DataDir: dir}, log)
		assert.Equal(t, bootstrap.StorageFile, s.Backend)
		require.IsType(t, &FileStore{}, s.Store)
		assert.Equal(t, dir, s.Store.(*FileStore).Dir())
	})

	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		s := Open(ctx, &bootstrap.Config{StorageBackend: "redis", RedisUrl: mr.Addr()}, log)
		defer s.Close(ctx)

		assert.Equal(t, bootstrap.StorageRedis, s.Backend)
		assert.IsType(t, &RedisStore{}, s.Store)
		assert.NoError(t, s.Ping(ctx))
		exerciseStore(t, s.Store)
	})

	t.Run("unreachable redis falls back to memory", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		s := Open(ctx, &bootstrap.Config{StorageBackend: "redis", RedisUrl: addr}, log)
		assert.Equal(t, bootstrap.StorageMemory, s.Backend)
		assert.IsType(t, &MemoryStore{}, s.Store)
	})

	t.Run("unknown backend falls back to memory", func(t *testing.T) {
		s := Open(ctx, &bootstrap.Config{StorageBackend: "floppy"}, log)
		assert.Equal(t, bootstrap.StorageMemory, s.Backend)
	})
}
