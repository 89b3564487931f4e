package database

import (
	"context"
	"fmt"
	"time"

	"galon/config"

	"github.com/redis/go-redis/v9"
)

var RDB *redis.Client

// InitRedis 连接 Redis，仅用于多实例部署下的准入分布式锁
func InitRedis(cfg *config.Config) error {
	if !cfg.Redis.Enabled {
		return nil
	}
	RDB = redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: 100,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := RDB.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("connect redis %s: %w", cfg.Redis.Addr, err)
	}
	config.Logger().WithField("addr", cfg.Redis.Addr).Info("connected to redis")
	return nil
}

// CloseRedis 关闭 Redis 连接
func CloseRedis() {
	if RDB != nil {
		_ = RDB.Close()
	}
}
