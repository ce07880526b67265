// Package redis constructs the optional go-redis client shared by the server.
package redis

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotConfigured is returned when REDIS_HOST is unset.
var ErrNotConfigured = errors.New("redis is not configured")

// Options は接続先を表します。
type Options struct {
	Host     string
	Port     string
	Password string
}

// OptionsFromEnv reads REDIS_HOST, REDIS_PORT (default 6379) and REDIS_PASSWORD.
func OptionsFromEnv() Options {
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}
	return Options{
		Host:     os.Getenv("REDIS_HOST"),
		Port:     port,
		Password: os.Getenv("REDIS_PASSWORD"),
	}
}

// NewRedisClient connects and pings. The caller owns the returned client and must Close it.
func NewRedisClient(ctx context.Context, opts Options) (*redis.Client, error) {
	if opts.Host == "" {
		return nil, ErrNotConfigured
	}
	addr := opts.Host + ":" + opts.Port

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: opts.Password,
		DB:       0,
	})

	// 接続確認
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		slog.Error("Redis connection failed", "address", addr, "error", err)
		_ = rdb.Close()
		return nil, err
	}

	slog.Info("Redis connection successful", "address", addr)
	return rdb, nil
}
