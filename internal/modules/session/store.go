// README: Session repositories: in-process map and Redis JSON blobs with TTL.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

type MemoryRepository struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{sessions: make(map[string]*Session)}
}

func (r *MemoryRepository) Get(ctx context.Context, id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s.Clone(), nil
}

func (r *MemoryRepository) Save(ctx context.Context, s *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s.Clone()
	return nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

func (r *MemoryRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions), nil
}

// EvictIdle deletes sessions the policy reports as expired at now.
func (r *MemoryRepository) EvictIdle(ctx context.Context, policy EvictionPolicy, now time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, s := range r.sessions {
		if policy.Expired(s, now) {
			delete(r.sessions, id)
			n++
		}
	}
	return n, nil
}

const sessionKeyPrefix = "foodiespot:session:"

// RedisRepository stores each session as a JSON blob. Expiry is delegated to
// Redis: every Save refreshes the key TTL from the eviction policy.
type RedisRepository struct {
	redis  *redis.Client
	policy EvictionPolicy
}

func NewRedisRepository(client *redis.Client, policy EvictionPolicy) *RedisRepository {
	return &RedisRepository{redis: client, policy: policy}
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

func (r *RedisRepository) Get(ctx context.Context, id string) (*Session, error) {
	data, err := r.redis.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get session: %w", err)
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &s, nil
}

func (r *RedisRepository) Save(ctx context.Context, s *Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", s.ID, err)
	}
	ttl := time.Duration(0)
	if r.policy.Enabled() {
		ttl = r.policy.IdleTTL
	}
	return r.redis.Set(ctx, sessionKey(s.ID), data, ttl).Err()
}

func (r *RedisRepository) Delete(ctx context.Context, id string) error {
	return r.redis.Del(ctx, sessionKey(id)).Err()
}

func (r *RedisRepository) Count(ctx context.Context) (int, error) {
	n := 0
	iter := r.redis.Scan(ctx, 0, sessionKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		n++
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("redis scan sessions: %w", err)
	}
	return n, nil
}
