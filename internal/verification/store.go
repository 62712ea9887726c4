package verification

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store holds the hash of the outstanding code per user until it expires.
type Store interface {
	// Put replaces any outstanding code for userID.
	Put(ctx context.Context, userID, codeHash string, ttl time.Duration) error
	// Get returns the code hash for userID. ok is false when none is outstanding or it expired.
	Get(ctx context.Context, userID string) (codeHash string, ok bool, err error)
	Delete(ctx context.Context, userID string) error
}

type entry struct {
	codeHash  string
	expiresAt time.Time
}

// MemoryStore is an in-process Store for development and tests.
type MemoryStore struct {
	mu   sync.RWMutex
	m    map[string]entry
	nowF func() time.Time
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		m:    make(map[string]entry),
		nowF: func() time.Time { return time.Now().UTC() },
	}
}

func (s *MemoryStore) Put(ctx context.Context, userID, codeHash string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[userID] = entry{codeHash: codeHash, expiresAt: s.nowF().Add(ttl)}
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, userID string) (string, bool, error) {
	s.mu.RLock()
	e, ok := s.m[userID]
	s.mu.RUnlock()
	if !ok {
		return "", false, nil
	}
	now := s.nowF()
	if !e.expiresAt.After(now) {
		s.mu.Lock()
		// A Put may have replaced the entry since the read lock was released.
		if cur, ok := s.m[userID]; ok && !cur.expiresAt.After(now) {
			delete(s.m, userID)
		}
		s.mu.Unlock()
		return "", false, nil
	}
	return e.codeHash, true, nil
}

func (s *MemoryStore) Delete(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, userID)
	return nil
}

const redisKeyPrefix = "mpesa:verification:"

// RedisStore keeps code hashes in Redis with a key TTL, so expiry is enforced by the server.
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore returns a Store backed by client.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Put(ctx context.Context, userID, codeHash string, ttl time.Duration) error {
	if err := s.client.Set(ctx, redisKeyPrefix+userID, codeHash, ttl).Err(); err != nil {
		return fmt.Errorf("verification: store code: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, userID string) (string, bool, error) {
	codeHash, err := s.client.Get(ctx, redisKeyPrefix+userID).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("verification: load code: %w", err)
	}
	return codeHash, true, nil
}

func (s *RedisStore) Delete(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, redisKeyPrefix+userID).Err(); err != nil {
		return fmt.Errorf("verification: delete code: %w", err)
	}
	return nil
}
