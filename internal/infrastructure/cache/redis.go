// Package cache guarda documentos renderizados en Redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/facturacion-gst/internal/application/billing"
	"github.com/jhoicas/facturacion-gst/pkg/config"
)

const pingTimeout = 5 * time.Second

// RedisCache implementa billing.DocumentCache.
type RedisCache struct {
	client *redis.Client
}

var _ billing.DocumentCache = (*RedisCache)(nil)

// Connect abre la conexión y verifica que Redis responda.
// Si el ping falla la conexión se cierra y el llamador sigue sin caché.
func Connect(ctx context.Context, cfg config.RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("cache: ping redis %s: %w", cfg.Addr, err)
	}
	return &RedisCache{client: client}, nil
}

// New envuelve un cliente ya construido.
func New(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// Get devuelve el documento si existe. Una clave ausente no es error.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set guarda el documento con expiración.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, data, ttl).Err()
}

// Close libera la conexión.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
