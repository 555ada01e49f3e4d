package dependency

import (
	"context"
	"database/sql"
	"time"

	"cloud.google.com/go/civil"
	"github.com/jekabolt/salesboard/internal/entity"
	"github.com/jekabolt/salesboard/internal/kpi"
	"github.com/jmoiron/sqlx"
)

//go:generate mockery --with-expecter --case underscore --name Warehouse --name Targets --output=./mocks
type (
	// Warehouse answers the month-to-date questions the dashboard asks.
	Warehouse interface {
		// MonthToDate returns total/east/west sums since monthStart.
		MonthToDate(ctx context.Context, monthStart civil.Date) (*entity.MonthToDate, error)
		// RepTable returns per-salesperson aggregates since monthStart, online orders excluded.
		RepTable(ctx context.Context, monthStart civil.Date) ([]entity.RepAggregate, error)
		// Highlights returns leaderboard call-outs and org totals.
		Highlights(ctx context.Context, monthStart, fyStart civil.Date) (*entity.Highlights, error)
		// SalesLog returns the raw order rows since monthStart.
		SalesLog(ctx context.Context, monthStart civil.Date) ([]kpi.RawRow, error)
	}

	Targets interface {
		// ListTargets returns every target row stored for month.
		ListTargets(ctx context.Context, month entity.Month) ([]entity.TargetRow, error)
		// UpsertTargets inserts or replaces items for month in one transaction.
		UpsertTargets(ctx context.Context, month entity.Month, updatedBy string, items []entity.TargetItem) error
	}

	Repository interface {
		Targets() Targets
		Tx(ctx context.Context, f func(context.Context, Repository) error) error
		TxBegin(ctx context.Context) (Repository, error)
		TxCommit(ctx context.Context) error
		TxRollback(ctx context.Context) error
		Now() time.Time
		InTx() bool
		Close()
		Ping(ctx context.Context) error
		IsErrorRepeat(err error) bool
		DB() DB
	}

	// DB represents database interface.
	DB interface {
		BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
		ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)

		// sqlx methods
		GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
		QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
		QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error)
		SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	}
)
