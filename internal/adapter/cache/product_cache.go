package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/polkiloo/storefront/internal/domain/model"
)

const keyPrefix = "product:"

// ProductCache is a cache-aside layer for catalog entries. Concurrent misses
// for one product share a single load. Redis failures degrade to a miss.
type ProductCache struct {
	client *goredis.Client
	ttl    time.Duration
	group  singleflight.Group
	logger *slog.Logger
}

// NewProductCache constructs ProductCache.
func NewProductCache(client *goredis.Client, ttl time.Duration, logger *slog.Logger) *ProductCache {
	return &ProductCache{client: client, ttl: ttl, logger: logger}
}

func key(id int64) string {
	return keyPrefix + strconv.FormatInt(id, 10)
}

// GetOrLoad returns the cached product or calls load and caches its result.
// Load errors are returned as-is and never cached. A caller that gives up
// does not fail others waiting on the same key.
func (c *ProductCache) GetOrLoad(ctx context.Context, id int64, load func(context.Context) (*model.Product, error)) (*model.Product, error) {
	k := key(id)
	if p, ok := c.get(ctx, k); ok {
		return p, nil
	}

	// The shared load must outlive any single caller, so it runs detached from ctx.
	loadCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(k, func() (any, error) {
		if p, ok := c.get(loadCtx, k); ok {
			return p, nil
		}
		p, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		c.set(loadCtx, k, p)
		return p, nil
	})

	var v any
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		v = res.Val
	}

	out := *v.(*model.Product)
	return &out, nil
}

// Invalidate drops the cached entry.
func (c *ProductCache) Invalidate(ctx context.Context, id int64) error {
	return c.client.Del(ctx, key(id)).Err()
}

func (c *ProductCache) get(ctx context.Context, k string) (*model.Product, bool) {
	raw, err := c.client.Get(ctx, k).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			c.logger.Warn("product cache read failed", slog.String("key", k), slog.Any("error", err))
		}
		return nil, false
	}

	var p model.Product
	if err := json.Unmarshal(raw, &p); err != nil {
		c.logger.Warn("product cache entry corrupt", slog.String("key", k), slog.Any("error", err))
		return nil, false
	}
	return &p, true
}

func (c *ProductCache) set(ctx context.Context, k string, p *model.Product) {
	data, err := json.Marshal(p)
	if err != nil {
		c.logger.Warn("product cache encode failed", slog.String("key", k), slog.Any("error", err))
		return
	}
	if err := c.client.Set(ctx, k, data, c.ttl).Err(); err != nil {
		c.logger.Warn("product cache write failed", slog.String("key", k), slog.Any("error", err))
	}
}
