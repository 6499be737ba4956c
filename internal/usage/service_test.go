package usage

import (
	"context"
	"errors"
	"testing"
)

func TestConsumeWithinLimit(t *testing.T) {
	svc := NewService()
	ctx := context.Background()

	u, err := svc.Get(ctx, "user-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if u.Used != 0 || u.Limit <= 0 {
		t.Fatalf("unexpected defaults: %+v", u)
	}

	u, err = svc.Consume(ctx, "user-1", 1)
	if err != nil {
		t.Fatalf("Consume: %v", err)
	}
	if u.Used != 1 {
		t.Fatalf("used = %d", u.Used)
	}
}

func TestConsumeAtLimitFails(t *testing.T) {
	svc := NewService()
	ctx := context.Background()

	u, err := svc.Get(ctx, "user-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if _, err := svc.Consume(ctx, "user-1", u.Limit); err != nil {
		t.Fatalf("Consume to limit: %v", err)
	}

	ok, _, err := svc.CanConsume(ctx, "user-1", 1)
	if err != nil {
		t.Fatalf("CanConsume: %v", err)
	}
	if ok {
		t.Fatalf("expected CanConsume false at limit")
	}
	if _, err := svc.Consume(ctx, "user-1", 1); !errors.Is(err, ErrLimitReached) {
		t.Fatalf("expected ErrLimitReached, got %v", err)
	}
}

func TestResetRestoresCredits(t *testing.T) {
	svc := NewService()
	ctx := context.Background()

	if _, err := svc.Consume(ctx, "user-1", 3); err != nil {
		t.Fatalf("Consume: %v", err)
	}
	u, err := svc.Reset(ctx, "user-1")
	if err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if u.Used != 0 {
		t.Fatalf("used after reset = %d", u.Used)
	}
}
