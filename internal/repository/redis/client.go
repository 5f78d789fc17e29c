package redis

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

const pingTimeout = 5 * time.Second

// Connect opens a Redis client and verifies it with a ping.
func Connect(addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Errorf("--> failed to ping redis at %s: %s", addr, err)
		_ = rdb.Close()
		return nil, err
	}
	log.Debugf("redis connected: %s", addr)
	return rdb, nil
}
