package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pecuadex/pecuadex-api/internal/application/ports"
)

const keyPrefix = "pecuadex:token:"

// NewRedisClient crea y valida la conexión a Redis.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

// Redis almacén de tokens compartido entre instancias. La expiración la aplica Redis.
type Redis struct {
	rdb redis.Cmdable
}

// NewRedis envuelve un cliente existente.
func NewRedis(rdb redis.Cmdable) *Redis {
	return &Redis{rdb: rdb}
}

func (r *Redis) Put(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := r.rdb.Set(ctx, keyPrefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("token store put: %w", err)
	}
	return nil
}

// Take usa GETDEL para que un token no pueda consumirse dos veces.
func (r *Redis) Take(ctx context.Context, key string) (string, error) {
	v, err := r.rdb.GetDel(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ports.ErrTokenNotFound
	}
	if err != nil {
		return "", fmt.Errorf("token store take: %w", err)
	}
	return v, nil
}
