package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/navetta/shuttle-booking/internal/model"
)

const keyPrefix = "session:"

// Redis is a session store backed by a Redis server, letting every
// instance of the service see the same live sessions. Values are the
// JSON user snapshot with the session TTL applied as key expiry.
type Redis struct {
	client *redis.Client
}

// NewRedis wraps an already-connected Redis client.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

// Put stores the snapshot under the prefixed key with ttl.
func (r *Redis) Put(ctx context.Context, key string, u model.User, ttl time.Duration) error {
	doc, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, keyPrefix+key, doc, ttl).Err()
}

// Get loads and decodes the snapshot, mapping redis.Nil and decode
// failures to ErrNotFound so callers only ever branch on one error.
func (r *Redis) Get(ctx context.Context, key string) (model.User, error) {
	doc, err := r.client.Get(ctx, keyPrefix+key).Bytes()
	if err == redis.Nil {
		return model.User{}, ErrNotFound
	}
	if err != nil {
		return model.User{}, err
	}
	var u model.User
	if err := json.Unmarshal(doc, &u); err != nil {
		return model.User{}, ErrNotFound
	}
	return u, nil
}

// Delete removes the session key.
func (r *Redis) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, keyPrefix+key).Err()
}
