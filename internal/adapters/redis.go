package adapters

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"goboard/internal/bootstrap"
)

type AdapterRedis struct {
	client *redis.Client
	cfg    *bootstrap.Config
	log    *zap.SugaredLogger
}

func NewAdapterRedis(cfg *bootstrap.Config, log *zap.SugaredLogger) *AdapterRedis {
	return &AdapterRedis{
		cfg: cfg,
		log: log,
	}
}

// Init подключается и пингует. REDIS_URL может быть host:port или
// redis:// URL.
func (a *AdapterRedis) Init(ctx context.Context) error {
	opts, err := redisOptions(a.cfg.RedisUrl)
	if err != nil {
		return err
	}
	a.client = redis.NewClient(opts)

	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := a.client.Ping(ctxPing).Err(); err != nil {
		a.client.Close()
		a.client = nil
		return fmt.Errorf("connect to redis: %w", err)
	}

	a.log.Infow("connected to redis", "addr", opts.Addr)
	return nil
}

func redisOptions(url string) (*redis.Options, error) {
	if strings.Contains(url, "://") {
		opts, err := redis.ParseURL(url)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		return opts, nil
	}
	return &redis.Options{
		Addr: url,
		DB:   0,
	}, nil
}

func (a *AdapterRedis) GetClient() *redis.Client {
	return a.client
}

// Ping reports whether the server is reachable.
func (a *AdapterRedis) Ping(ctx context.Context) error {
	if a.client == nil {
		return fmt.Errorf("redis is not initialized")
	}
	return a.client.Ping(ctx).Err()
}

func (a *AdapterRedis) Close(ctx context.Context) error {
	if a.client != nil {
		return a.client.Close()
	}
	return nil
}
