package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/jekabolt/salesboard/internal/metrics"
)

// Refresher refreshes the dashboard on a jittered timer. Scheduled refreshes
// are skipped while nobody is viewing the dashboard.
type Refresher struct {
	svc  *Service
	ctx  context.Context
	stop context.CancelFunc
	done chan struct{}

	// jitter returns a uniform offset in [-max, max].
	jitter func(max time.Duration) time.Duration
}

// NewRefresher creates a refresher for svc.
func NewRefresher(svc *Service) *Refresher {
	return &Refresher{
		svc:    svc,
		jitter: uniformJitter,
	}
}

func uniformJitter(max time.Duration) time.Duration {
	if max <= 0 {
		return 0
	}
	return time.Duration(rand.Int64N(int64(2*max)+1)) - max
}

// Start starts the worker.
func (r *Refresher) Start(ctx context.Context) error {
	if r.ctx != nil && r.stop != nil {
		return fmt.Errorf("dashboard refresher already started")
	}
	r.ctx, r.stop = context.WithCancel(ctx)
	r.done = make(chan struct{})
	go r.worker(r.ctx)
	return nil
}

// Stop stops the worker and waits for an in-flight refresh to return.
func (r *Refresher) Stop() error {
	if r.stop == nil {
		return fmt.Errorf("dashboard refresher already stopped or not started")
	}
	r.stop()
	<-r.done
	r.stop = nil
	r.ctx = nil
	return nil
}

// next returns the delay before the following scheduled tick.
func (r *Refresher) next() time.Duration {
	d := r.svc.c.WorkerInterval + r.jitter(r.svc.c.Jitter)
	if d <= 0 {
		d = r.svc.c.WorkerInterval
	}
	return d
}

// idle reports whether scheduled refreshes should be skipped now. Before the
// first snapshot exists the dashboard is never idle.
func (r *Refresher) idle() bool {
	if r.svc.c.IdleAfter < 0 {
		return false
	}
	if r.svc.Current().Snapshot == nil {
		return false
	}
	last := r.svc.LastViewed()
	return last.IsZero() || r.svc.now().Sub(last) > r.svc.c.IdleAfter
}

func (r *Refresher) worker(ctx context.Context) {
	defer close(r.done)

	timer := time.NewTimer(r.svc.c.InitialDelay)
	defer timer.Stop()

	for {
		select {
		case <-timer.C:
			r.tick(ctx)
			timer.Reset(r.next())
		case <-ctx.Done():
			return
		}
	}
}

func (r *Refresher) tick(ctx context.Context) {
	if r.idle() {
		r.svc.metrics.ObserveRefresh(metrics.ResultSkipped, 0)
		slog.Default().DebugContext(ctx, "dashboard idle, refresh skipped",
			slog.Time("last_viewed", r.svc.LastViewed()),
		)
		return
	}
	// errors are recorded on the service and logged by Refresh
	_, _ = r.svc.Refresh(ctx)
}
