package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"skillmatrix_backend/internal/config"

	"github.com/go-redis/redis/v8"
)

// InitRedis connects the dashboard cache. Redis only ever holds rebuildable
// snapshots here, so callers may treat a failed connection as a degraded
// start rather than a fatal one.
func InitRedis(cfg *config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     50,
		MinIdleConns: 5,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		rdb.Close()
		return nil, err
	}

	log.Println("Redis connection established")
	return rdb, nil
}
