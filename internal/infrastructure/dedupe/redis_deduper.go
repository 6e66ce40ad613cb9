package dedupe

import (
	"context"
	"log"
	"time"

	"salespipeline/internal/usecase/interfaces"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "webhook:delivery:"

// RedisDeliveryDeduper claims delivery keys with SET NX so concurrent
// replicas do not process the same webhook delivery twice.
type RedisDeliveryDeduper struct {
	client *redis.Client
}

var _ interfaces.IDeliveryDeduper = (*RedisDeliveryDeduper)(nil)

func NewRedisDeliveryDeduper(client *redis.Client) *RedisDeliveryDeduper {
	return &RedisDeliveryDeduper{client: client}
}

// Connect opens a client and pings it once.
func Connect(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	log.Printf("[dedupe][redis] connected addr=%s", addr)
	return client, nil
}

func (d *RedisDeliveryDeduper) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := d.client.SetNX(ctx, keyPrefix+key, 1, ttl).Result()
	if err != nil {
		return false, err
	}
	return ok, nil
}

func (d *RedisDeliveryDeduper) Release(ctx context.Context, key string) error {
	return d.client.Del(ctx, keyPrefix+key).Err()
}
