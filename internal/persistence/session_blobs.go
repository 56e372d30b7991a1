package persistence

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// SessionBlobStore persists serialized session slots in Redis. It satisfies
// the session package's BlobStore interface.
type SessionBlobStore struct {
	client *redis.Client
}

// NewSessionBlobStore wraps the shared Redis client.
func NewSessionBlobStore(r *Redis) *SessionBlobStore {
	if r == nil {
		return &SessionBlobStore{}
	}
	return &SessionBlobStore{client: r.Client}
}

// Get returns the stored slot value, or nil when the key is absent.
func (s *SessionBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	if s.client == nil {
		return nil, errors.New("redis client not configured")
	}
	value, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Set overwrites the slot value. Overwrite semantics are intentional; the
// last writer wins.
func (s *SessionBlobStore) Set(ctx context.Context, key string, value []byte) error {
	if s.client == nil {
		return errors.New("redis client not configured")
	}
	return s.client.Set(ctx, key, value, 0).Err()
}

// Delete removes the slot. Deleting an absent key is not an error.
func (s *SessionBlobStore) Delete(ctx context.Context, key string) error {
	if s.client == nil {
		return errors.New("redis client not configured")
	}
	return s.client.Del(ctx, key).Err()
}
