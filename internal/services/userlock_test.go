package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/forgefit/forgefit-backend/internal/logger"
)

func TestMemoryUserLockerSerializesPerUser(t *testing.T) {
	locks := NewUserLocker(logger.NewNop(), "")
	ctx := context.Background()
	userA := uuid.New()
	userB := uuid.New()

	releaseA, ok, err := locks.Acquire(ctx, userA)
	if err != nil || !ok {
		t.Fatalf("first acquire: ok=%v err=%v", ok, err)
	}

	// Same user is blocked, a different user is not.
	if _, ok, _ := locks.Acquire(ctx, userA); ok {
		t.Fatal("second acquire for same user should fail")
	}
	releaseB, ok, err := locks.Acquire(ctx, userB)
	if err != nil || !ok {
		t.Fatalf("acquire for other user: ok=%v err=%v", ok, err)
	}
	releaseB()

	releaseA()
	releaseA2, ok, err := locks.Acquire(ctx, userA)
	if err != nil || !ok {
		t.Fatalf("re-acquire after release: ok=%v err=%v", ok, err)
	}
	releaseA2()
}
