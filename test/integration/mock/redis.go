package mock

import (
	"context"
	"sync"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var redisConnOnce sync.Once
var redisConn *redis.Client
var redisServer *miniredis.Miniredis

// NewRedis returns a client bound to a shared in-process miniredis server.
func NewRedis() *redis.Client {
	redisConnOnce.Do(func() {
		redisConn = openRedisConn()
	})
	return redisConn
}

func openRedisConn() *redis.Client {
	server, err := miniredis.Run()
	if err != nil {
		panic(err)
	}
	redisServer = server

	return redis.NewClient(&redis.Options{
		Addr: server.Addr(),
	})
}

func ClearRedis(client *redis.Client) error {
	return client.FlushAll(context.TODO()).Err()
}

// FastForwardRedis expires keys as if d had passed.
func FastForwardRedis(d time.Duration) {
	if redisServer != nil {
		redisServer.FastForward(d)
	}
}
