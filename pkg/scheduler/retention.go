package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/fadedpez/cardsharp/internal/logging"
)

// PruneTaskName is the name the retention task is registered under
const PruneTaskName = "prune-resolutions"

// Pruner deletes records older than a cutoff and reports how many went
type Pruner interface {
	PruneBefore(ctx context.Context, cutoff time.Time) (int, error)
}

// RetentionScheduler periodically deletes resolutions older than the retention window
type RetentionScheduler struct {
	scheduler *Scheduler
	pruner    Pruner
	retention time.Duration
	logger    *logging.Logger
	now       func() time.Time
}

// NewRetentionScheduler creates a scheduler that prunes every interval
func NewRetentionScheduler(pruner Pruner, retention, interval time.Duration, logger *logging.Logger) *RetentionScheduler {
	r := &RetentionScheduler{
		scheduler: NewScheduler(logger),
		pruner:    pruner,
		retention: retention,
		logger:    logging.OrDefault(logger),
		now:       time.Now,
	}
	r.scheduler.AddTask(PruneTaskName, interval, r.Prune)
	return r
}

// Start runs a prune straight away and then every interval
func (r *RetentionScheduler) Start(ctx context.Context) {
	r.scheduler.Start(ctx)
	r.logger.Info("Retention scheduler started, keeping %s of resolutions", r.retention)
}

// Stop stops the retention scheduler
func (r *RetentionScheduler) Stop() {
	r.scheduler.Stop()
}

// Prune deletes everything resolved before now minus the retention window
func (r *RetentionScheduler) Prune(ctx context.Context) error {
	cutoff := r.now().Add(-r.retention)
	pruned, err := r.pruner.PruneBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("error pruning resolutions before %s: %w", cutoff.Format(time.RFC3339), err)
	}

	if pruned > 0 {
		r.logger.Info("Pruned %d resolutions older than %s", pruned, cutoff.Format(time.RFC3339))
	}
	return nil
}
