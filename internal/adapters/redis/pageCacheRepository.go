package redis

import (
	"context"
	"errors"
	"time"

	"inkwell/internal/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const defaultPrefix = "page:"

// PageCacheRedis stores rendered pages as plain Redis strings with a TTL.
type PageCacheRedis struct {
	Client *redis.Client
	Prefix string
}

func NewPageCacheRedis(client *redis.Client) *PageCacheRedis {
	return &PageCacheRedis{
		Client: client,
		Prefix: defaultPrefix,
	}
}

func (r *PageCacheRedis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	body, err := r.Client.Get(ctx, r.Prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return body, true, nil
}

func (r *PageCacheRedis) Set(ctx context.Context, key string, body []byte, ttl time.Duration) error {
	return r.Client.Set(ctx, r.Prefix+key, body, ttl).Err()
}

// Clear drops every cached page. Other keys in the same Redis DB are left alone.
func (r *PageCacheRedis) Clear(ctx context.Context) error {
	var cursor uint64
	removed := 0
	for {
		keys, next, err := r.Client.Scan(ctx, cursor, r.Prefix+"*", 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := r.Client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
			removed += len(keys)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	config.Logger.Info("Page cache cleared", zap.Int("keys", removed))
	return nil
}
