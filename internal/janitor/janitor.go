package janitor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shahadathhs/blogman/internal/metrics"
)

const sweepTimeout = 30 * time.Second

// credentialStore is the slice of the user repository the janitor needs.
type credentialStore interface {
	ClearExpiredCredentials(ctx context.Context, now time.Time) (int64, error)
}

// Janitor periodically nulls out expired reset tokens and login codes so
// stale credentials do not linger in the users table.
type Janitor struct {
	store  credentialStore
	logger *slog.Logger
	cron   *cron.Cron
}

func New(store credentialStore, schedule string, logger *slog.Logger) (*Janitor, error) {
	j := &Janitor{
		store:  store,
		logger: logger.With("component", "janitor"),
		cron:   cron.New(),
	}
	if _, err := j.cron.AddFunc(schedule, j.sweep); err != nil {
		return nil, fmt.Errorf("janitor schedule %q: %w", schedule, err)
	}
	return j, nil
}

func (j *Janitor) Start() {
	j.cron.Start()
}

// Stop halts scheduling and waits for a running sweep to finish.
func (j *Janitor) Stop() {
	<-j.cron.Stop().Done()
}

// RunOnce triggers a single sweep outside the schedule.
func (j *Janitor) RunOnce() {
	j.sweep()
}

func (j *Janitor) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	cleared, err := j.store.ClearExpiredCredentials(ctx, time.Now())
	if err != nil {
		j.logger.Error("credential sweep", "error", err)
		return
	}

	metrics.JanitorSweepsTotal.Inc()
	metrics.JanitorClearedTotal.Add(float64(cleared))
	if cleared > 0 {
		j.logger.Info("cleared expired credentials", "rows", cleared)
	}
}
