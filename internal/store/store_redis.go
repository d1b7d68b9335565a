package store

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// RedisCredentialStore keeps the credential in redis, keyed per device so
// multiple client sessions on the same host do not clobber each other.
type RedisCredentialStore struct {
	rdclient *redis.Client
	deviceID string
}

func NewRedisCredentialStore(redisURL string, redisPW string, redisDB int, deviceID string) *RedisCredentialStore {
	rdclient := redis.NewClient(&redis.Options{
		Addr:     redisURL,
		Password: redisPW,
		DB:       redisDB,
	})
	return &RedisCredentialStore{
		rdclient: rdclient,
		deviceID: deviceID,
	}
}

func (r *RedisCredentialStore) key() string {
	return fmt.Sprintf("auth_key:%s", r.deviceID)
}

func (r *RedisCredentialStore) Load() (string, error) {
	key, err := r.rdclient.Get(context.Background(), r.key()).Result()
	if err == redis.Nil {
		return "", nil
	} else if err != nil {
		return "", err
	}
	return key, nil
}

func (r *RedisCredentialStore) Save(key string) error {
	return r.rdclient.Set(context.Background(), r.key(), key, 0).Err()
}

func (r *RedisCredentialStore) Remove() error {
	return r.rdclient.Del(context.Background(), r.key()).Err()
}
