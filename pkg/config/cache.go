package config

import (
	"context"
	"time"

	"github.com/matzehuels/chromaplane/pkg/cache"
	cperrors "github.com/matzehuels/chromaplane/pkg/errors"
)

const redisDialTimeout = 5 * time.Second

// OpenCache opens the configured cache backend. defaultDir is used by the
// file backend when cache.dir is unset.
func (c *Config) OpenCache(ctx context.Context, defaultDir string) (cache.Cache, error) {
	switch c.Cache.Backend {
	case BackendNone:
		return cache.NewNullCache(), nil
	case BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:        c.Cache.RedisAddr,
			Password:    c.Cache.RedisPassword,
			DB:          c.Cache.RedisDB,
			Prefix:      "chromaplane:",
			DialTimeout: redisDialTimeout,
		})
		if err != nil {
			return nil, err
		}
		return rc, nil
	case BackendFile, "":
		dir := c.Cache.Dir
		if dir == "" {
			dir = defaultDir
		}
		if dir == "" {
			return cache.NewNullCache(), nil
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, err
		}
		return fc, nil
	}
	return nil, cperrors.New(cperrors.ErrCodeInvalidConfig, "cache.backend: %q", c.Cache.Backend)
}

// TTL returns the configured entry lifetime, or fallback when unset.
func (c *Config) TTL(fallback time.Duration) time.Duration {
	if c.Cache.TTL.Duration > 0 {
		return c.Cache.TTL.Duration
	}
	return fallback
}
