package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"github.com/jekabolt/salesboard/internal/dashboard"
	"github.com/jekabolt/salesboard/internal/entity"
	gerr "github.com/jekabolt/salesboard/internal/errors"
	"github.com/jekabolt/salesboard/internal/form"
	"github.com/jekabolt/salesboard/internal/kpi"
)

const defaultUpdatedBy = "admin"

// status reports liveness and fails with 503 while target storage is unreachable.
func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			render.Render(w, r, ErrFromError(r, fmt.Errorf("%w: %w", gerr.ErrStorageUnavailable, err)))
			return
		}
	}
	render.Render(w, r, statusResponse{OK: true, TS: time.Now().UTC()})
}

func (s *Server) getDashboard(w http.ResponseWriter, r *http.Request) {
	s.dash.MarkViewed()
	st := s.dash.Current()
	if st.Snapshot == nil {
		_, err := s.dash.Snapshot()
		render.Render(w, r, ErrFromError(r, err))
		return
	}
	render.Render(w, r, newDashboardResponse(st))
}

func (s *Server) refreshDashboard(w http.ResponseWriter, r *http.Request) {
	s.dash.MarkViewed()
	if _, err := s.dash.Refresh(r.Context()); err != nil {
		render.Render(w, r, ErrFromError(r, err))
		return
	}
	render.Render(w, r, newDashboardResponse(s.dash.Current()))
}

func (s *Server) getMonthToDate(w http.ResponseWriter, r *http.Request) {
	month, err := s.monthParam(r)
	if err != nil {
		render.Render(w, r, ErrFromError(r, err))
		return
	}
	mtd, err := s.wh.MonthToDate(r.Context(), month.First())
	if err != nil {
		render.Render(w, r, ErrFromError(r, err))
		return
	}
	render.Render(w, r, &monthToDateResponse{Month: month, MonthToDate: mtd})
}

func (s *Server) getRepTable(w http.ResponseWriter, r *http.Request) {
	month, err := s.monthParam(r)
	if err != nil {
		render.Render(w, r, ErrFromError(r, err))
		return
	}
	reps, err := s.wh.RepTable(r.Context(), month.First())
	if err != nil {
		render.Render(w, r, ErrFromError(r, err))
		return
	}
	render.Render(w, r, &repTableResponse{Month: month, Reps: kpi.Leaderboard(reps)})
}

func (s *Server) getHighlights(w http.ResponseWriter, r *http.Request) {
	month, err := s.monthParam(r)
	if err != nil {
		render.Render(w, r, ErrFromError(r, err))
		return
	}
	h, err := s.wh.Highlights(r.Context(), month.First(), s.dash.FinancialYearStart(month))
	if err != nil {
		render.Render(w, r, ErrFromError(r, err))
		return
	}
	render.Render(w, r, &highlightsResponse{Month: month, Highlights: h})
}

// getSalesLog filters the order log of the served snapshot. An unknown scope
// means all orders.
func (s *Server) getSalesLog(w http.ResponseWriter, r *http.Request) {
	s.dash.MarkViewed()
	snap, err := s.dash.Snapshot()
	if err != nil {
		render.Render(w, r, ErrFromError(r, err))
		return
	}
	q := r.URL.Query()
	orders := kpi.Filter(snap.SalesLog, entity.ParseScope(q.Get("scope")))
	sl := dashboard.FilterSalesLog(orders, dashboard.SalesLogFilter{
		Source:      q.Get("source"),
		Salesperson: q.Get("salesperson"),
	})
	render.Render(w, r, &salesLogResponse{SalesLog: sl, AsOf: snap.AsOf})
}

func (s *Server) getTargets(w http.ResponseWriter, r *http.Request) {
	month, err := s.monthParam(r)
	if err != nil {
		render.Render(w, r, ErrFromError(r, err))
		return
	}
	rows, err := s.targets.ListTargets(r.Context(), month)
	if err != nil {
		render.Render(w, r, ErrFromError(r, err))
		return
	}
	if rows == nil {
		rows = []entity.TargetRow{}
	}
	render.Render(w, r, &targetsResponse{Month: month, Rows: rows})
}

func (s *Server) upsertTargets(w http.ResponseWriter, r *http.Request) {
	req := &form.UpsertTargetsRequest{}
	if err := render.Bind(r, req); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	updatedBy := req.UpdatedBy
	if updatedBy == "" {
		updatedBy = defaultUpdatedBy
	}
	month := req.ParsedMonth()
	items := req.TargetItems()

	if err := s.targets.UpsertTargets(r.Context(), month, updatedBy, items); err != nil {
		render.Render(w, r, ErrFromError(r, err))
		return
	}
	slog.Default().InfoContext(r.Context(), "targets upserted",
		slog.String("month", month.String()),
		slog.String("updated_by", updatedBy),
		slog.Int("count", len(items)),
	)

	if month == s.dash.Calendar().Month() {
		go s.refreshAfterUpsert(context.WithoutCancel(r.Context()))
	}

	render.Render(w, r, &upsertResponse{OK: true, Month: month, Count: len(items)})
}

func (s *Server) refreshAfterUpsert(ctx context.Context) {
	// Refresh logs its own failure.
	_, _ = s.dash.Refresh(ctx)
}

// monthParam reads ?month=, defaulting to the current month in the reference timezone.
func (s *Server) monthParam(r *http.Request) (entity.Month, error) {
	raw := r.URL.Query().Get("month")
	if raw == "" {
		return s.dash.Calendar().Month(), nil
	}
	m, err := entity.ParseMonth(raw)
	if err != nil {
		return entity.Month{}, fmt.Errorf("%w: %w", gerr.ErrInvalidMonth, err)
	}
	return m, nil
}
