package janitor_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/shahadathhs/blogman/internal/janitor"
)

type fakeStore struct {
	cleared int64
	err     error
	calls   int
	lastNow time.Time
}

func (s *fakeStore) ClearExpiredCredentials(_ context.Context, now time.Time) (int64, error) {
	s.calls++
	s.lastNow = now
	return s.cleared, s.err
}

func TestNew_InvalidSchedule(t *testing.T) {
	_, err := janitor.New(&fakeStore{}, "not a schedule", slog.Default())
	if err == nil {
		t.Fatal("expected error for an invalid cron expression")
	}
}

func TestRunOnce_SweepsWithCurrentTime(t *testing.T) {
	store := &fakeStore{cleared: 3}
	j, err := janitor.New(store, "@every 10m", slog.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	before := time.Now()
	j.RunOnce()

	if store.calls != 1 {
		t.Fatalf("calls = %d, want 1", store.calls)
	}
	if store.lastNow.Before(before) {
		t.Errorf("sweep used a stale timestamp %v", store.lastNow)
	}
}

func TestRunOnce_StoreErrorDoesNotPanic(t *testing.T) {
	store := &fakeStore{err: errors.New("db down")}
	j, err := janitor.New(store, "@every 10m", slog.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	j.RunOnce()

	if store.calls != 1 {
		t.Fatalf("calls = %d, want 1", store.calls)
	}
}
