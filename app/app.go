package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jekabolt/salesboard/config"
	httpapi "github.com/jekabolt/salesboard/internal/api/http"
	"github.com/jekabolt/salesboard/internal/dashboard"
	"github.com/jekabolt/salesboard/internal/dependency"
	"github.com/jekabolt/salesboard/internal/metrics"
	"github.com/jekabolt/salesboard/internal/store"
	"github.com/jekabolt/salesboard/internal/warehouse"
)

const shutdownTimeout = 15 * time.Second

// App is the main application
type App struct {
	hs        *httpapi.Server
	db        dependency.Repository
	wh        *warehouse.Client
	refresher *dashboard.Refresher
	c         *config.Config
	done      chan struct{}
	closeOnce sync.Once
}

// New returns a new instance of App
func New(c *config.Config) *App {
	return &App{
		c:    c,
		done: make(chan struct{}),
	}
}

// Start connects the collaborators, starts the refresher and the http server.
func (a *App) Start(ctx context.Context) error {
	slog.Default().InfoContext(ctx, "starting salesboard")

	db, err := store.New(ctx, a.c.DB)
	if err != nil {
		slog.Default().ErrorContext(ctx, "couldn't connect to mysql", slog.String("err", err.Error()))
		return err
	}
	a.db = db

	wh, err := warehouse.New(ctx, &a.c.Warehouse)
	if err != nil {
		slog.Default().ErrorContext(ctx, "couldn't create warehouse client", slog.String("err", err.Error()))
		return err
	}
	a.wh = wh

	m := metrics.NewManager()
	svc, err := dashboard.New(&a.c.Dashboard, a.wh, a.db.Targets(), m)
	if err != nil {
		slog.Default().ErrorContext(ctx, "couldn't create dashboard service", slog.String("err", err.Error()))
		return err
	}

	a.refresher = dashboard.NewRefresher(svc)
	if err := a.refresher.Start(ctx); err != nil {
		return err
	}

	a.hs = httpapi.New(&a.c.HTTP, &a.c.Admin, svc, a.wh, a.db.Targets(), a.db, m)
	if err := a.hs.Start(ctx); err != nil {
		slog.Default().ErrorContext(ctx, "cannot start http server", slog.String("err", err.Error()))
		return err
	}

	go func() {
		<-a.hs.Done()
		a.closeDone()
	}()

	return nil
}

// Stop stops the application and waits for all services to exit
func (a *App) Stop(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if a.hs != nil {
		if err := a.hs.Stop(ctx); err != nil {
			slog.Default().ErrorContext(ctx, "http server shutdown", slog.String("err", err.Error()))
		}
	}
	if a.refresher != nil {
		if err := a.refresher.Stop(); err != nil {
			slog.Default().WarnContext(ctx, "dashboard refresher stop", slog.String("err", err.Error()))
		}
	}
	if a.wh != nil {
		if err := a.wh.Close(); err != nil {
			slog.Default().WarnContext(ctx, "warehouse close", slog.String("err", err.Error()))
		}
	}
	if a.db != nil {
		a.db.Close()
	}
	a.closeDone()
}

// Done returns a channel that is closed after the application has exited
func (a *App) Done() <-chan struct{} {
	return a.done
}

func (a *App) closeDone() {
	a.closeOnce.Do(func() { close(a.done) })
}
