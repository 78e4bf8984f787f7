package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store on top of a shared Redis instance. Expiry is
// delegated entirely to Redis via per-key TTL; nothing polls or sweeps.
type RedisStore struct {
	client redis.UniversalClient
	ttl    time.Duration
	prefix string
}

// NewRedisStore creates a redis-backed session store. The client's lifecycle
// is owned by the caller.
func NewRedisStore(client redis.UniversalClient, cfg Config) *RedisStore {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultConfig().TTL
	}
	return &RedisStore{
		client: client,
		ttl:    ttl,
		prefix: cfg.KeyPrefix,
	}
}

func (s *RedisStore) key(id string) string {
	return s.prefix + id
}

// Save serializes the record to JSON and writes it with the fixed TTL,
// overwriting any existing entry and restarting the expiry window.
func (s *RedisStore) Save(ctx context.Context, rec Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	payload, err := json.Marshal(rec)
	if err != nil {
		return errors.Join(ErrStore, err)
	}

	if err := s.client.Set(ctx, s.key(rec.ID), payload, s.ttl).Err(); err != nil {
		return errors.Join(ErrStore, err)
	}
	return nil
}

// Fetch reads and deserializes the record. Absent or expired keys map to
// ErrNotFound; undecodable payloads map to ErrStore so the gateway can log
// them as internal errors while still failing closed.
func (s *RedisStore) Fetch(ctx context.Context, id string) (Record, error) {
	payload, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Record{}, ErrNotFound
		}
		return Record{}, errors.Join(ErrStore, err)
	}

	var rec Record
	if err := json.Unmarshal(payload, &rec); err != nil {
		return Record{}, errors.Join(ErrStore, err)
	}
	return rec, nil
}

// Delete removes the record. Redis DEL succeeds whether or not the key
// existed, which gives idempotency for free.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return errors.Join(ErrStore, err)
	}
	return nil
}

// Ping probes the backing Redis instance.
func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return errors.Join(ErrStore, err)
	}
	return nil
}
