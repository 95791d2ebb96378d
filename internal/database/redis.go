package database

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient is shared by the product cache, the rate limiter, and the chat
// pub/sub fan-out.
var RedisClient *redis.Client

// Pool sizing for our three Redis consumers. The chat subscriber holds one
// connection open; cache reads and rate-limit checks are short-lived.
const (
	redisPoolSize     = 16
	redisMinIdleConns = 2
	redisMaxRetries   = 2

	redisDialTimeout  = 5 * time.Second
	redisOpTimeout    = 2 * time.Second
	redisPoolTimeout  = 3 * time.Second
	redisIdleConnTime = 10 * time.Minute
)

// ConnectRedis parses the REDIS_URI connection string and verifies the server
// is reachable before the router starts taking traffic.
func ConnectRedis(redisURI string) error {
	opt, err := redis.ParseURL(redisURI)
	if err != nil {
		return err
	}

	opt.PoolSize = redisPoolSize
	opt.MinIdleConns = redisMinIdleConns
	opt.MaxRetries = redisMaxRetries
	opt.DialTimeout = redisDialTimeout
	opt.ReadTimeout = redisOpTimeout
	opt.WriteTimeout = redisOpTimeout
	opt.PoolTimeout = redisPoolTimeout
	opt.ConnMaxIdleTime = redisIdleConnTime

	RedisClient = redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), redisDialTimeout)
	defer cancel()

	if err := RedisClient.Ping(ctx).Err(); err != nil {
		return err
	}

	log.Println("✅ Connected to Redis")
	return nil
}

// DisconnectRedis closes the shared client during shutdown.
func DisconnectRedis() error {
	if RedisClient != nil {
		return RedisClient.Close()
	}
	return nil
}
