package ratelimiter

import (
	"context"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const (
	countPrefix = "ratelimiter:count:"
	blockPrefix = "ratelimiter:block:"
)

type RedisBackend struct {
	client *redis.Client
}

func NewRedisBackend(addr string) *RedisBackend {
	return NewRedisBackendFromClient(redis.NewClient(&redis.Options{
		Addr: addr,
	}))
}

func NewRedisBackendFromClient(client *redis.Client) *RedisBackend {
	return &RedisBackend{client: client}
}

func (rb *RedisBackend) Ping(ctx context.Context) error {
	return errors.Wrap(rb.client.Ping(ctx).Err(), "redis indisponível")
}

func (rb *RedisBackend) Close() error {
	return rb.client.Close()
}

// Increment cria o contador com o TTL da janela (SET NX EX) e soma a
// requisição na mesma transação, então o contador nunca fica sem TTL.
func (rb *RedisBackend) Increment(ctx context.Context, key string, window time.Duration) (int, error) {
	countKey := countPrefix + key

	var incr *redis.IntCmd
	_, err := rb.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SetNX(ctx, countKey, 0, window)
		incr = pipe.Incr(ctx, countKey)
		return nil
	})
	if err != nil {
		return 0, errors.Wrapf(err, "incr %s", countKey)
	}

	return int(incr.Val()), nil
}

func (rb *RedisBackend) Block(ctx context.Context, key string, duration time.Duration) error {
	until := time.Now().Add(duration)

	_, err := rb.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, countPrefix+key)
		pipe.Set(ctx, blockPrefix+key, until.UnixNano(), duration)
		return nil
	})
	return errors.Wrapf(err, "block %s", key)
}

func (rb *RedisBackend) BlockedUntil(ctx context.Context, key string) (time.Time, error) {
	result, err := rb.client.Get(ctx, blockPrefix+key).Result()
	if err == redis.Nil {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "get %s", blockPrefix+key)
	}

	nanos, err := strconv.ParseInt(result, 10, 64)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "bloqueio corrompido para %s", key)
	}

	until := time.Unix(0, nanos)
	if !until.After(time.Now()) {
		return time.Time{}, nil
	}
	return until, nil
}
