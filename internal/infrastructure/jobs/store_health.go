package jobs

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"creatorverse.backend/pkg/logger"
)

const defaultHealthInterval = 30 * time.Second

type storePinger interface {
	Ping(ctx context.Context) error
}

type healthRecorder interface {
	SetStoreUp(up bool)
}

// StoreHealthJob pings the creators store on a fixed interval and records
// the outcome.
type StoreHealthJob struct {
	repo     storePinger
	metrics  healthRecorder
	interval time.Duration
	timeout  time.Duration
	stop     chan struct{}
	stopOnce sync.Once
	up       atomic.Bool
	checked  atomic.Bool
}

func NewStoreHealthJob(repo storePinger, metrics healthRecorder, interval time.Duration) *StoreHealthJob {
	if interval <= 0 {
		interval = defaultHealthInterval
	}
	return &StoreHealthJob{
		repo:     repo,
		metrics:  metrics,
		interval: interval,
		timeout:  interval / 2,
		stop:     make(chan struct{}),
	}
}

// Start blocks until ctx is cancelled or Stop is called. The first check
// runs immediately.
func (j *StoreHealthJob) Start(ctx context.Context) {
	logger.Info(ctx, "starting store health job", zap.Duration("interval", j.interval))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.check(ctx)
	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "store health job stopped (context cancelled)")
			return
		case <-j.stop:
			logger.Info(ctx, "store health job stopped")
			return
		case <-ticker.C:
			j.check(ctx)
		}
	}
}

func (j *StoreHealthJob) Stop() {
	j.stopOnce.Do(func() { close(j.stop) })
}

// Healthy reports the result of the latest check. Before the first check
// completes the store is assumed reachable.
func (j *StoreHealthJob) Healthy() bool {
	if !j.checked.Load() {
		return true
	}
	return j.up.Load()
}

func (j *StoreHealthJob) check(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	err := j.repo.Ping(pingCtx)
	up := err == nil
	if ctx.Err() != nil {
		return
	}

	previous := j.Healthy()
	j.up.Store(up)
	j.checked.Store(true)
	if j.metrics != nil {
		j.metrics.SetStoreUp(up)
	}

	switch {
	case !up && previous:
		logger.Warn(ctx, "creators store unreachable", zap.Error(err))
	case up && !previous:
		logger.Info(ctx, "creators store reachable again")
	}
}
