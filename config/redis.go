package config

import (
	"log"

	"blogapp/global"

	"github.com/go-redis/redis"
)

func initRedis() {
	addr := AppConfig.Redis.Addr
	if addr == "" {
		log.Println("redis addr empty, skipping redis init")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		DB:       AppConfig.Redis.DB,
		Password: AppConfig.Redis.Password,
	})

	if _, err := client.Ping().Result(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	global.RedisDB = client
}
