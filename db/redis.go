package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client
var redisEnabled bool

// InitRedis initializes the Redis connection used as a guest-session
// cache. Redis is optional; the server runs fine without it.
func InitRedis(addr, password string) error {
	if addr == "" {
		log.Println("[REDIS] No REDIS_URL configured, guest-session cache disabled")
		redisEnabled = false
		return nil
	}

	RedisClient = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx := context.Background()
	if err := RedisClient.Ping(ctx).Err(); err != nil {
		log.Printf("[REDIS] Warning: Could not connect to Redis: %v. Guest-session cache disabled.", err)
		redisEnabled = false
		return nil // don't fail startup if Redis is unavailable
	}

	redisEnabled = true
	log.Println("[REDIS] Connected successfully")
	return nil
}

// IsRedisEnabled returns whether Redis is available
func IsRedisEnabled() bool {
	return redisEnabled
}

// CloseRedis closes the Redis connection
func CloseRedis() error {
	if RedisClient != nil {
		return RedisClient.Close()
	}
	return nil
}

func guestKey(tokenID string) string {
	return fmt.Sprintf("guest:%s", tokenID)
}

// CacheGuestSession stores an issued guest identity token-id -> player
// profile with a TTL matching the token lifetime.
func CacheGuestSession(ctx context.Context, tokenID, playerID, name string, ttl time.Duration) error {
	if !redisEnabled {
		return nil
	}

	err := RedisClient.HSet(ctx, guestKey(tokenID), "player_id", playerID, "name", name).Err()
	if err != nil {
		return fmt.Errorf("failed to cache guest session: %v", err)
	}
	return RedisClient.Expire(ctx, guestKey(tokenID), ttl).Err()
}

// TouchGuestSession refreshes the TTL of a cached guest session when the
// guest reconnects.
func TouchGuestSession(ctx context.Context, tokenID string, ttl time.Duration) {
	if !redisEnabled {
		return
	}

	if err := RedisClient.Expire(ctx, guestKey(tokenID), ttl).Err(); err != nil {
		log.Printf("[REDIS] failed to refresh guest session %s: %v", tokenID, err)
	}
}
