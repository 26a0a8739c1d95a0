package config

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	RedisClient *redis.Client
	Ctx         = context.Background()
)

// ConnectRedis dials the Redis instance behind the rate limiter. The
// process refuses to start without it rather than running unlimited.
func ConnectRedis() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
		log.Println("⚠️ REDIS_URL not set, using local Redis:", redisURL)
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatalf("❌ Invalid REDIS_URL: %v", err)
	}
	opt.PoolSize = 10

	RedisClient = redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(Ctx, 5*time.Second)
	defer cancel()
	if err := RedisClient.Ping(pingCtx).Err(); err != nil {
		log.Fatalf("❌ Failed to connect to Redis: %v", err)
	}
	log.Println("✅ Connected to Redis")
}

// CloseRedis releases the connection pool on shutdown.
func CloseRedis() {
	if RedisClient != nil {
		if err := RedisClient.Close(); err != nil {
			log.Printf("⚠️ Error closing Redis client: %v", err)
		}
	}
}
