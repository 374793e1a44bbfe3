package config

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Hàm kết nối đến Redis
func ConnectRedis(cfg AppConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Username: cfg.Redis.User,
		Password: cfg.Redis.Password,
		DB:       0,
	})

	// Kiểm tra kết nối
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	res, err := rdb.Ping(ctx).Result()
	if err != nil {
		rdb.Close()
		return nil, err
	}

	log.Println("Kết nối Redis thành công:", res)
	return rdb, nil
}
