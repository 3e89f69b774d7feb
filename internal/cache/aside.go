package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"weave/internal/middleware"

	"github.com/redis/go-redis/v9"
)

// Aside implements the cache-aside pattern. On a hit it unmarshals the cached
// value into dest and returns without calling load. On a miss it calls load
// (which must populate dest), then stores dest under key with the given TTL.
// When no Redis client is configured, load is called directly.
func Aside(ctx context.Context, key string, dest interface{}, ttl time.Duration, load func() error) error {
	if client == nil {
		return load()
	}

	raw, err := client.Get(ctx, key).Bytes()
	if err == nil {
		if unmarshalErr := json.Unmarshal(raw, dest); unmarshalErr == nil {
			return nil
		}
		// Corrupt entry: drop it and fall through to the loader.
		client.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		middleware.Logger.WarnContext(ctx, "cache read failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}

	if err := load(); err != nil {
		return err
	}

	if encoded, marshalErr := json.Marshal(dest); marshalErr == nil {
		if setErr := client.Set(ctx, key, encoded, ttl).Err(); setErr != nil {
			middleware.Logger.WarnContext(ctx, "cache write failed",
				slog.String("key", key),
				slog.String("error", setErr.Error()),
			)
		}
	}

	return nil
}
