// Package dashboard builds and serves the sales dashboard snapshot.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/jekabolt/salesboard/internal/dependency"
	"github.com/jekabolt/salesboard/internal/entity"
	gerr "github.com/jekabolt/salesboard/internal/errors"
	"github.com/jekabolt/salesboard/internal/kpi"
	"github.com/jekabolt/salesboard/internal/metrics"
	"golang.org/x/sync/errgroup"
)

// State is the served snapshot together with the outcome of the latest refresh.
type State struct {
	Snapshot  *Snapshot
	LastError error
	ErrorAt   time.Time
}

// Service refreshes and holds the current dashboard snapshot.
type Service struct {
	c       Config
	loc     *time.Location
	wh      dependency.Warehouse
	targets dependency.Targets
	metrics *metrics.Manager
	now     func() time.Time

	mu      sync.RWMutex
	snap    *Snapshot
	lastErr error
	errAt   time.Time

	lastViewed atomic.Int64
}

// New creates a dashboard service. m may be nil.
func New(c *Config, wh dependency.Warehouse, targets dependency.Targets, m *metrics.Manager) (*Service, error) {
	if c == nil {
		dc := DefaultConfig()
		c = &dc
	}
	cfg := c.withDefaults()
	loc, err := cfg.location()
	if err != nil {
		return nil, err
	}
	return &Service{
		c:       cfg,
		loc:     loc,
		wh:      wh,
		targets: targets,
		metrics: m,
		now:     time.Now,
	}, nil
}

// Calendar returns the reference calendar at the current instant.
func (s *Service) Calendar() kpi.Calendar {
	return kpi.NewCalendar(s.now(), s.loc)
}

// FinancialYearStart returns the first day of the financial year containing m.
func (s *Service) FinancialYearStart(m entity.Month) civil.Date {
	return m.FinancialYearStart(time.Month(s.c.FYStartMonth))
}

// Location returns the reference timezone.
func (s *Service) Location() *time.Location {
	return s.loc
}

// Refresh fetches every input concurrently and, when all succeed, replaces the
// served snapshot. On failure the previous snapshot stays and the error is
// remembered. Concurrent refreshes are allowed; the last to finish wins.
func (s *Service) Refresh(ctx context.Context) (*Snapshot, error) {
	id := uuid.NewString()
	started := time.Now()
	cal := s.Calendar()
	month := cal.Month()
	from := cal.MonthStart()
	fyStart := s.FinancialYearStart(month)

	ctx, cancel := context.WithTimeout(ctx, s.c.FetchTimeout)
	defer cancel()

	var (
		in   Inputs
		mtd  *entity.MonthToDate
		high *entity.Highlights
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		mtd, err = s.wh.MonthToDate(gctx, from)
		return err
	})
	g.Go(func() error {
		var err error
		in.Reps, err = s.wh.RepTable(gctx, from)
		return err
	})
	g.Go(func() error {
		var err error
		high, err = s.wh.Highlights(gctx, from, fyStart)
		return err
	})
	g.Go(func() error {
		var err error
		in.Targets, err = s.targets.ListTargets(gctx, month)
		return err
	})
	g.Go(func() error {
		var err error
		in.SalesLog, err = s.wh.SalesLog(gctx, from)
		return err
	})

	if err := g.Wait(); err != nil {
		took := time.Since(started)
		s.mu.Lock()
		s.lastErr = err
		s.errAt = s.now()
		s.mu.Unlock()
		s.metrics.ObserveRefresh(metrics.ResultError, took)
		slog.Default().ErrorContext(ctx, "dashboard refresh failed",
			slog.String("refresh_id", id),
			slog.String("err", err.Error()),
			slog.Duration("took", took),
		)
		return nil, fmt.Errorf("refresh %s: %w", id, err)
	}

	if mtd != nil {
		in.MonthToDate = *mtd
	}
	if high != nil {
		in.Highlights = *high
	}
	if dups := kpi.DuplicateTargets(in.Targets); len(dups) > 0 {
		slog.Default().WarnContext(ctx, "duplicate targets, first row wins",
			slog.String("refresh_id", id),
			slog.String("month", month.String()),
			slog.String("targets", strings.Join(dups, ",")),
		)
	}

	snap := Build(in, cal, s.now().UTC())
	snap.RefreshID = id

	s.mu.Lock()
	s.snap = snap
	s.lastErr = nil
	s.errAt = time.Time{}
	s.mu.Unlock()

	took := time.Since(started)
	s.metrics.ObserveRefresh(metrics.ResultOK, took)
	s.metrics.SetSnapshotTime(snap.AsOf)
	slog.Default().InfoContext(ctx, "dashboard refreshed",
		slog.String("refresh_id", id),
		slog.String("month", month.String()),
		slog.Int("reps", len(snap.Reps)),
		slog.Int("orders", len(snap.SalesLog)),
		slog.Duration("took", took),
	)
	return snap, nil
}

// Current returns the last successful snapshot and the last refresh error.
func (s *Service) Current() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{Snapshot: s.snap, LastError: s.lastErr, ErrorAt: s.errAt}
}

// Snapshot returns the served snapshot or gerr.ErrNoSnapshot before the first
// successful refresh.
func (s *Service) Snapshot() (*Snapshot, error) {
	st := s.Current()
	if st.Snapshot == nil {
		if st.LastError != nil {
			return nil, fmt.Errorf("%w: %w", gerr.ErrNoSnapshot, st.LastError)
		}
		return nil, gerr.ErrNoSnapshot
	}
	return st.Snapshot, nil
}

// MarkViewed records that a client looked at the dashboard.
func (s *Service) MarkViewed() {
	s.lastViewed.Store(s.now().UnixNano())
}

// LastViewed returns when the dashboard was last viewed, zero if never.
func (s *Service) LastViewed() time.Time {
	n := s.lastViewed.Load()
	if n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n)
}
