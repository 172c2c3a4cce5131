package config

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient builds a Redis client from REDIS_URL, or from
// REDIS_ADDR / REDIS_HOST+REDIS_PORT, REDIS_PASSWORD, REDIS_DB and REDIS_TLS.
// It returns nil when the server does not answer a ping; callers then run
// without caching, rate limiting and session revocation.
func NewRedisClient() *redis.Client {
	opts := redisOptions()
	if opts == nil {
		return nil
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil
	}
	return client
}

func redisOptions() *redis.Options {
	if raw := envStr("REDIS_URL", ""); raw != "" {
		opts, err := redis.ParseURL(raw)
		if err != nil {
			return nil
		}
		return opts
	}

	addr := envStr("REDIS_ADDR", "localhost:6379")
	if host, port := envStr("REDIS_HOST", ""), envStr("REDIS_PORT", ""); host != "" && port != "" {
		addr = host + ":" + port
	}
	opts := &redis.Options{
		Addr:     addr,
		Password: envStr("REDIS_PASSWORD", ""),
		DB:       envInt("REDIS_DB", 0),
	}
	if envBool("REDIS_TLS", false) {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return opts
}
