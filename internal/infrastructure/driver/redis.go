package driver

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisClient .
type RedisClient struct {
	conn *redis.Client
}

var _ KeyValueDB = &RedisClient{}

// NewRedisClient create a redis client
func NewRedisClient(host string, port int, password string) *RedisClient {
	conn := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: password,
	})
	return &RedisClient{
		conn: conn,
	}
}

// Get implement KeyValueDB
func (rdb *RedisClient) Get(ctx context.Context, key string) (string, error) {
	val, err := rdb.conn.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", ErrKeyNotFound
	}
	return val, err
}

// Set implement KeyValueDB
func (rdb *RedisClient) Set(ctx context.Context, key string, value string) error {
	return rdb.conn.Set(ctx, key, value, 0).Err()
}

// SetEX implement KeyValueDB
func (rdb *RedisClient) SetEX(ctx context.Context, key string, value string, expiration time.Duration) error {
	return rdb.conn.Set(ctx, key, value, expiration).Err()
}

// Remove implement KeyValueDB
func (rdb *RedisClient) Remove(ctx context.Context, key string) error {
	return rdb.conn.Del(ctx, key).Err()
}

// ListKeys implement KeyValueDB
func (rdb *RedisClient) ListKeys(ctx context.Context, pattern string) ([]string, error) {
	return rdb.conn.Keys(ctx, pattern).Result()
}

// MultiGet implement KeyValueDB
func (rdb *RedisClient) MultiGet(ctx context.Context, keys []string) ([]KeyValue, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	values, err := rdb.conn.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	result := make([]KeyValue, len(keys))
	for i, key := range keys {
		result[i].Key = key
		if s, ok := values[i].(string); ok {
			result[i].Value = s
			result[i].OK = true
		}
	}
	return result, nil
}

// MultiRemove implement KeyValueDB
func (rdb *RedisClient) MultiRemove(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	return rdb.conn.Del(ctx, keys...).Err()
}

// Exists implement KeyValueDB
func (rdb *RedisClient) Exists(ctx context.Context, key string) (bool, error) {
	cmd := rdb.conn.Exists(ctx, key)
	if ok, err := cmd.Result(); err == nil {
		return ok == 1, nil
	} else {
		return false, err
	}
}

// Ping implement KeyValueDB
func (rdb *RedisClient) Ping() error {
	return rdb.conn.Ping(context.Background()).Err()
}
