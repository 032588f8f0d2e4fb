package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/slumbersage/gjirafa50/logger"
	"github.com/slumbersage/gjirafa50/services/categories"
	"github.com/slumbersage/gjirafa50/services/publisher"
)

// PublishKey is the stream field carrying a category snapshot
const PublishKey = "b64_categories"

// Refresher produces a new category snapshot
type Refresher interface {
	Refresh(ctx context.Context) (*categories.Snapshot, error)
}

// Worker refreshes the category snapshot on a fixed interval and publishes
// each new snapshot
type Worker struct {
	refresher Refresher
	publisher publisher.Publisher
	interval  time.Duration
	log       *logger.Logger
}

// NewWorker creates a new worker
func NewWorker(refresher Refresher, pub publisher.Publisher, interval time.Duration) *Worker {
	if pub == nil {
		pub = publisher.Nop{}
	}
	return &Worker{
		refresher: refresher,
		publisher: pub,
		interval:  interval,
		log:       logger.ForWorker(),
	}
}

// Start runs refresh cycles until ctx is cancelled. The first cycle runs
// after one interval, since the snapshot is built at startup.
func (w *Worker) Start(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.log.Info().Dur("interval", w.interval).Msg("Category refresh worker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Category refresh worker stopped")
			return nil
		case <-ticker.C:
			start := time.Now()
			w.RunOnce(ctx)
			w.log.Debug().Dur("elapsed", time.Since(start)).Msg("Refresh cycle finished")
		}
	}
}

// RunOnce refreshes the snapshot, publishes it and trims the streams.
// Failures are logged; the previous snapshot keeps serving.
func (w *Worker) RunOnce(ctx context.Context) {
	snapshot, err := w.refresher.Refresh(ctx)
	if err != nil {
		logger.LogError("worker", err, "Category refresh failed")
		return
	}

	data, err := json.Marshal(snapshot.Categories)
	if err != nil {
		logger.LogError("worker", err, "Failed to encode category snapshot")
		return
	}

	if err := w.publisher.Publish(ctx, PublishKey, data); err != nil {
		logger.LogError("worker", err, "Failed to publish category snapshot")
		return
	}

	if err := w.publisher.TrimStreams(ctx); err != nil {
		logger.LogError("worker", err, "Failed to trim streams")
	}
}
