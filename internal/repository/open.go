package repository

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"goboard/internal/adapters"
	"goboard/internal/bootstrap"
)

// Store is the string blob store every backend implements.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Storage is an opened backend together with its health check and cleanup.
type Storage struct {
	Backend string
	Store   Store

	ping  func(ctx context.Context) error
	close func(ctx context.Context) error
}

// Ping reports whether the backend is reachable. Local backends always are.
func (s *Storage) Ping(ctx context.Context) error {
	if s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

func (s *Storage) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// Open connects the backend named by cfg.StorageBackend. A backend that
// cannot be opened is replaced by an in-memory store: the game stays
// playable, it just forgets everything on exit.
func Open(ctx context.Context, cfg *bootstrap.Config, log *zap.SugaredLogger) *Storage {
	s, err := open(ctx, cfg, log)
	if err != nil {
		log.Warnw("storage unavailable, falling back to memory", "backend", cfg.StorageBackend, "error", err)
		return &Storage{Backend: bootstrap.StorageMemory, Store: NewMemoryStore()}
	}
	log.Infow("storage ready", "backend", s.Backend)
	return s
}

func open(ctx context.Context, cfg *bootstrap.Config, log *zap.SugaredLogger) (*Storage, error) {
	switch backend := strings.ToLower(cfg.StorageBackend); backend {
	case bootstrap.StorageMemory:
		return &Storage{Backend: backend, Store: NewMemoryStore()}, nil

	case bootstrap.StorageFile, "":
		fs, err := NewFileStore(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		return &Storage{Backend: bootstrap.StorageFile, Store: fs}, nil

	case bootstrap.StorageRedis:
		a := adapters.NewAdapterRedis(cfg, log)
		if err := a.Init(ctx); err != nil {
			return nil, err
		}
		return &Storage{
			Backend: backend,
			Store:   NewRedisStore(a.GetClient()),
			ping:    a.Ping,
			close:   a.Close,
		}, nil

	case bootstrap.StorageMongo:
		a := adapters.NewAdapterMongo(cfg, log)
		if err := a.Init(ctx); err != nil {
			return nil, err
		}
		return &Storage{
			Backend: backend,
			Store:   NewMongoStore(a.Database),
			ping:    a.Ping,
			close:   a.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
