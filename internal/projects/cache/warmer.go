package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const warmTimeout = 10 * time.Second

// Warmer periodically refreshes the cached project list so landing page
// visitors rarely hit the database.
type Warmer struct {
	cron   *cron.Cron
	store  *CachedStore
	logger *zap.Logger
}

// NewWarmer schedules cache refreshes. schedule accepts six-field cron
// expressions (with seconds) and descriptors such as "@every 5m".
func NewWarmer(store *CachedStore, schedule string, logger *zap.Logger) (*Warmer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	w := &Warmer{
		cron:   cron.New(cron.WithSeconds()),
		store:  store,
		logger: logger,
	}
	if _, err := w.cron.AddFunc(schedule, w.warm); err != nil {
		return nil, fmt.Errorf("invalid cache warm schedule %q: %w", schedule, err)
	}
	return w, nil
}

// Start runs one refresh immediately and then follows the schedule.
func (w *Warmer) Start() {
	w.warm()
	w.cron.Start()
	w.logger.Info("project cache warmer started")
}

// Stop halts scheduling and waits for a running refresh to finish.
func (w *Warmer) Stop() {
	<-w.cron.Stop().Done()
}

func (w *Warmer) warm() {
	ctx, cancel := context.WithTimeout(context.Background(), warmTimeout)
	defer cancel()

	items, err := w.store.Refresh(ctx)
	if err != nil {
		w.logger.Warn("project cache warm failed", zap.Error(err))
		return
	}
	w.logger.Debug("project cache warmed", zap.Int("projects", len(items)))
}
