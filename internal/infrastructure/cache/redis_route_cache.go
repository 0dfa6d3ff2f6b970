package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"invoice_dashboard/internal/application/revalidate"
	"invoice_dashboard/internal/config"
)

const (
	routeKeyPrefix   = "route:"
	versionKeyPrefix = "route:version:"
)

type RedisRouteCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func NewRedisRouteCache(rdb *redis.Client, ttl time.Duration) *RedisRouteCache {
	return &RedisRouteCache{rdb: rdb, ttl: ttl}
}

func routeKey(path string) string {
	return routeKeyPrefix + path
}

func versionKey(path string) string {
	return versionKeyPrefix + path
}

func (r *RedisRouteCache) Get(ctx context.Context, path string) ([]byte, bool, error) {
	body, err := r.rdb.Get(ctx, routeKey(path)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return body, true, nil
}

func (r *RedisRouteCache) Version(ctx context.Context, path string) (uint64, error) {
	return readVersion(ctx, r.rdb, path)
}

// SetIfUnchanged watches the version key, so an Invalidate from any node
// between Version and the write aborts the transaction.
func (r *RedisRouteCache) SetIfUnchanged(ctx context.Context, path string, body []byte, version uint64) (bool, error) {
	stored := false
	err := r.rdb.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := readVersion(ctx, tx, path)
		if err != nil {
			return err
		}
		if cur != version {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, routeKey(path), body, r.ttl)
			return nil
		})
		if err != nil {
			return err
		}
		stored = true
		return nil
	}, versionKey(path))
	if errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return stored, nil
}

func (r *RedisRouteCache) Invalidate(ctx context.Context, path string) error {
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, versionKey(path))
		pipe.Del(ctx, routeKey(path))
		return nil
	})
	return err
}

type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readVersion(ctx context.Context, c stringGetter, path string) (uint64, error) {
	v, err := c.Get(ctx, versionKey(path)).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

var _ revalidate.RouteCache = (*RedisRouteCache)(nil)
