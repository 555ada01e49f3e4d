// Package httpapi serves the dashboard, KPI and target endpoints over JSON.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"github.com/jekabolt/salesboard/internal/dashboard"
	"github.com/jekabolt/salesboard/internal/dependency"
	"github.com/jekabolt/salesboard/internal/metrics"
	mw "github.com/jekabolt/salesboard/internal/middleware"
	"github.com/jekabolt/salesboard/internal/ratelimit"
	"github.com/jekabolt/salesboard/log"
)

// Config is the configuration for the http server
type Config struct {
	Port           string   `mapstructure:"port"`
	Address        string   `mapstructure:"address"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// AdminConfig guards the target upsert endpoint.
type AdminConfig struct {
	Key             string        `mapstructure:"key"`
	RateLimitWindow time.Duration `mapstructure:"rate_limit_window"`
	RateLimitMax    int           `mapstructure:"rate_limit_max"`
}

const (
	defaultRateLimitWindow = time.Minute
	defaultRateLimitMax    = 10
	adminKeyHeader         = "X-Admin-Key"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server is the http server
type Server struct {
	c       *Config
	admin   AdminConfig
	dash    *dashboard.Service
	wh      dependency.Warehouse
	targets dependency.Targets
	db      Pinger
	metrics *metrics.Manager
	limiter *ratelimit.Limiter
	hs      *http.Server
	done    chan struct{}
}

// New creates a new server. db and m may be nil.
func New(c *Config, ac *AdminConfig, dash *dashboard.Service, wh dependency.Warehouse, targets dependency.Targets, db Pinger, m *metrics.Manager) *Server {
	admin := AdminConfig{}
	if ac != nil {
		admin = *ac
	}
	if admin.RateLimitWindow <= 0 {
		admin.RateLimitWindow = defaultRateLimitWindow
	}
	if admin.RateLimitMax <= 0 {
		admin.RateLimitMax = defaultRateLimitMax
	}
	return &Server{
		c:       c,
		admin:   admin,
		dash:    dash,
		wh:      wh,
		targets: targets,
		db:      db,
		metrics: m,
		limiter: ratelimit.NewLimiter(admin.RateLimitWindow, admin.RateLimitMax),
		done:    make(chan struct{}),
	}
}

// Done returns a channel that is closed when the http server exits
func (s *Server) Done() <-chan struct{} {
	return s.done
}

// Router builds the handler tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.New(cors.Options{
		AllowOriginFunc: func(_ *http.Request, origin string) bool {
			return isOriginAllowed(origin, s.c.AllowedOrigins)
		},
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"Accept", "Content-Type", "Content-Length", adminKeyHeader},
		MaxAge:         300,
	}).Handler)
	r.Use(middleware.RequestID)
	r.Use(mw.ClientIdentifier)
	r.Use(log.RequestLogger(slog.Default()))
	r.Use(s.instrument)
	r.Use(middleware.Recoverer)
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/status", s.status)

	r.Get("/dashboard", s.getDashboard)
	r.Post("/dashboard/refresh", s.refreshDashboard)

	r.Get("/kpis/mtd", s.getMonthToDate)
	r.Get("/kpis/highlights", s.getHighlights)
	r.Get("/rep-table", s.getRepTable)
	r.Get("/sales-log", s.getSalesLog)

	r.Get("/targets", s.getTargets)
	r.Group(func(r chi.Router) {
		r.Use(s.rateLimit)
		r.Use(s.requireAdmin)
		r.Post("/targets/upsert", s.upsertTargets)
	})

	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	return r
}

// instrument counts requests by route pattern so path values don't explode label cardinality.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.metrics.ObserveHTTP(route, r.Method, status)
	})
}

// Start listens on the configured address and serves in the background.
func (s *Server) Start(ctx context.Context) error {
	listenerAddr := fmt.Sprintf("%s:%s", s.c.Address, s.c.Port)
	ln, err := net.Listen("tcp", listenerAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", listenerAddr, err)
	}

	s.hs = &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		defer close(s.done)
		slog.Default().InfoContext(ctx, "salesboard listening",
			slog.String("addr", ln.Addr().String()),
		)
		err := s.hs.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) {
			slog.Default().InfoContext(ctx, "http server returned")
			return
		}
		slog.Default().ErrorContext(ctx, "http server exited with an error",
			slog.String("err", err.Error()),
		)
	}()
	return nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	s.limiter.Stop()
	if s.hs == nil {
		return nil
	}
	return s.hs.Shutdown(ctx)
}

func isOriginAllowed(origin string, allowedOrigins []string) bool {
	// Always allow localhost origins
	if strings.HasPrefix(origin, "http://localhost:") || strings.HasPrefix(origin, "https://localhost:") {
		return true
	}
	return slices.Contains(allowedOrigins, origin)
}
