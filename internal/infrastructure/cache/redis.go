package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// OpenRedis connects and pings; the idempotency middleware is unusable without a live server.
func OpenRedis(addr string, db int, log *zap.Logger) (*redis.Client, error) {
	r := redis.NewClient(&redis.Options{
		Addr:         addr,
		DB:           db,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.Ping(ctx).Err(); err != nil {
		_ = r.Close()
		return nil, err
	}
	if log != nil {
		log.Info("redis: connected", zap.String("addr", addr), zap.Int("db", db))
	}
	return r, nil
}
