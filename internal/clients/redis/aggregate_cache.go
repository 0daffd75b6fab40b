package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/seqmeta-backend/internal/platform/logger"
)

// AggregateCache is the fast tier in front of graphic_json_data. Keys are
// prefix + graphic name; a zero TTL keeps entries until they are deleted.
type AggregateCache struct {
	log    *logger.Logger
	rdb    *goredis.Client
	prefix string
	ttl    time.Duration
}

type Config struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
	TTL      time.Duration
}

func NewAggregateCache(log *logger.Logger, cfg Config) (*AggregateCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "seqmeta:graphic:"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &AggregateCache{
		log:    log.With("service", "RedisAggregateCache"),
		rdb:    rdb,
		prefix: prefix,
		ttl:    cfg.TTL,
	}, nil
}

func (c *AggregateCache) key(name string) string {
	return c.prefix + name
}

func (c *AggregateCache) Get(ctx context.Context, name string) ([]byte, bool, error) {
	if c == nil || c.rdb == nil {
		return nil, false, fmt.Errorf("redis aggregate cache not initialized")
	}
	raw, err := c.rdb.Get(ctx, c.key(name)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

func (c *AggregateCache) Set(ctx context.Context, name string, data []byte) error {
	if c == nil || c.rdb == nil {
		return fmt.Errorf("redis aggregate cache not initialized")
	}
	return c.rdb.Set(ctx, c.key(name), data, c.ttl).Err()
}

func (c *AggregateCache) Delete(ctx context.Context, name string) error {
	if c == nil || c.rdb == nil {
		return fmt.Errorf("redis aggregate cache not initialized")
	}
	return c.rdb.Del(ctx, c.key(name)).Err()
}

func (c *AggregateCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
