package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/forgefit/forgefit-backend/internal/logger"
)

// UserLocker serializes plan generation per user. Two concurrent generation
// requests for the same user otherwise race to create two active plans; the
// unique active-plan index is the backstop, this lock is the polite front
// door.
type UserLocker interface {
	// Acquire returns ok=false when the user already holds the lock.
	Acquire(ctx context.Context, userID uuid.UUID) (release func(), ok bool, err error)
}

const userLockTTL = 2 * time.Minute

func NewUserLocker(baseLog *logger.Logger, redisAddr string) UserLocker {
	if redisAddr == "" {
		return newMemoryUserLocker()
	}
	client := redis.NewClient(&redis.Options{Addr: redisAddr})
	return &redisUserLocker{
		log:    baseLog.With("service", "UserLocker"),
		client: client,
	}
}

type redisUserLocker struct {
	log    *logger.Logger
	client *redis.Client
}

func (l *redisUserLocker) Acquire(ctx context.Context, userID uuid.UUID) (func(), bool, error) {
	key := "plan_generation_lock:" + userID.String()
	ok, err := l.client.SetNX(ctx, key, "1", userLockTTL).Result()
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}
	release := func() {
		// Release must not depend on the request context still being alive.
		delCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := l.client.Del(delCtx, key).Err(); err != nil {
			l.log.Warn("Failed to release user lock; TTL will expire it", "key", key, "error", err)
		}
	}
	return release, true, nil
}

// memoryUserLocker is the single-process fallback used when Redis is not
// configured (and in tests).
type memoryUserLocker struct {
	mu   sync.Mutex
	held map[uuid.UUID]bool
}

func newMemoryUserLocker() *memoryUserLocker {
	return &memoryUserLocker{held: map[uuid.UUID]bool{}}
}

func (l *memoryUserLocker) Acquire(ctx context.Context, userID uuid.UUID) (func(), bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[userID] {
		return nil, false, nil
	}
	l.held[userID] = true
	release := func() {
		l.mu.Lock()
		delete(l.held, userID)
		l.mu.Unlock()
	}
	return release, true, nil
}
