package cache

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-redis/redis/v8"

	"github.com/nailroom/salon-scheduler/internal/config"
)

// VisitCounter tracks how many times a user opened the dashboard.
type VisitCounter interface {
	Increment(ctx context.Context, userID uint) (int64, error)
}

// ------------------------------
// Redis-backed counter
// ------------------------------

type RedisVisits struct {
	client *redis.Client
}

func NewRedisVisits(cfg *config.Config) *RedisVisits {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	return &RedisVisits{client: client}
}

func (r *RedisVisits) Increment(ctx context.Context, userID uint) (int64, error) {
	return r.client.Incr(ctx, visitKey(userID)).Result()
}

func (r *RedisVisits) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func visitKey(userID uint) string {
	return fmt.Sprintf("visits:user:%d", userID)
}

// ------------------------------
// In-memory fallback
// ------------------------------

// MemoryVisits keeps counts in-process. Used when REDIS_ADDR is unset and by
// tests; counts reset on restart.
type MemoryVisits struct {
	mu     sync.Mutex
	counts map[uint]int64
}

func NewMemoryVisits() *MemoryVisits {
	return &MemoryVisits{counts: make(map[uint]int64)}
}

func (m *MemoryVisits) Increment(_ context.Context, userID uint) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[userID]++
	return m.counts[userID], nil
}

var (
	_ VisitCounter = (*RedisVisits)(nil)
	_ VisitCounter = (*MemoryVisits)(nil)
)
