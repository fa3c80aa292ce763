package database

import (
	"context"
	"dessert_shop/config"
	"log"

	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client

// ConnectRedis kết nối Redis dùng cho khoá đặt hàng và pub/sub bảng đơn
func ConnectRedis() {
	addr := config.Config("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	Redis = redis.NewClient(&redis.Options{Addr: addr})

	if err := Redis.Ping(context.Background()).Err(); err != nil {
		log.Printf("⚠️ Không kết nối được Redis (%s): %v", addr, err)
	}
}
