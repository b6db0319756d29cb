// Package cache adapta Redis como caché de catálogo (marcas y ubicaciones).
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/backoffice-inventario/internal/application/inventory"
)

const keyPrefix = "backoffice:catalogo:"

// Redis implementa inventory.Cache sobre go-redis.
type Redis struct {
	rdb *redis.Client
}

var _ inventory.Cache = (*Redis)(nil)

// NewRedis crea el cliente desde una URL redis:// y valida la conexión al arrancar.
func NewRedis(ctx context.Context, redisURL string) (*Redis, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("cache: url inválida: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("cache: ping: %w", err)
	}
	return &Redis{rdb: rdb}, nil
}

// Get devuelve inventory.ErrCacheMiss si la clave no existe.
func (c *Redis) Get(ctx context.Context, key string) (string, error) {
	v, err := c.rdb.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", inventory.ErrCacheMiss
	}
	return v, err
}

func (c *Redis) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.rdb.Set(ctx, keyPrefix+key, value, ttl).Err()
}

// Close cierra el cliente.
func (c *Redis) Close() error {
	return c.rdb.Close()
}
