// Package warehouse reads order aggregates from BigQuery.
package warehouse

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"regexp"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"
	gerr "github.com/jekabolt/salesboard/internal/errors"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// Config holds BigQuery client configuration.
type Config struct {
	ProjectID       string `mapstructure:"project_id"`
	Dataset         string `mapstructure:"dataset"`
	OrdersTable     string `mapstructure:"orders_table"`
	Location        string `mapstructure:"location"`
	CredentialsJSON string `mapstructure:"credentials_json"` // path to service account JSON file, or raw JSON (for env vars)
	Timezone        string `mapstructure:"timezone"`         // IANA zone orders are bucketed in
	Enabled         bool   `mapstructure:"enabled"`
}

const (
	DefaultOrdersTable = "orders_for_sheets_live_v2"
	DefaultTimezone    = "Australia/Perth"
)

var identifier = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// row is one result row keyed by column name.
type row map[string]bigquery.Value

// runner executes a parameterized query and returns every row.
type runner func(ctx context.Context, sql string, params []bigquery.QueryParameter) ([]row, error)

// Client wraps the BigQuery client.
type Client struct {
	bq      *bigquery.Client
	run     runner
	orders  string
	tz      string
	enabled bool
}

// New creates a new warehouse client. A nil or disabled config yields a client
// whose queries fail with gerr.ErrWarehouseDisabled.
func New(ctx context.Context, cfg *Config) (*Client, error) {
	if cfg == nil || !cfg.Enabled {
		slog.Default().InfoContext(ctx, "warehouse disabled")
		return &Client{enabled: false}, nil
	}

	orders, err := ordersTable(cfg)
	if err != nil {
		return nil, err
	}

	var opts []option.ClientOption
	if cfg.CredentialsJSON != "" {
		jsonBytes := []byte(cfg.CredentialsJSON)
		if jsonBytes[0] == '{' {
			opts = append(opts, option.WithCredentialsJSON(jsonBytes))
		} else {
			opts = append(opts, option.WithCredentialsFile(cfg.CredentialsJSON))
		}
	}

	bq, err := bigquery.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create bigquery client: %w", err)
	}
	bq.Location = cfg.Location

	slog.Default().InfoContext(ctx, "warehouse client initialized",
		slog.String("project_id", cfg.ProjectID),
		slog.String("table", orders))

	c := &Client{
		bq:      bq,
		orders:  orders,
		tz:      cmp.Or(cfg.Timezone, DefaultTimezone),
		enabled: true,
	}
	c.run = c.read
	return c, nil
}

// newWithRunner is used by tests to bypass BigQuery.
func newWithRunner(orders string, run runner) *Client {
	return &Client{run: run, orders: orders, tz: DefaultTimezone, enabled: true}
}

// Close releases the underlying BigQuery client.
func (c *Client) Close() error {
	if c.bq == nil {
		return nil
	}
	return c.bq.Close()
}

// ordersTable returns the backquoted project.dataset.table name.
func ordersTable(cfg *Config) (string, error) {
	table := cfg.OrdersTable
	if table == "" {
		table = DefaultOrdersTable
	}
	for _, part := range []string{cfg.ProjectID, cfg.Dataset, table} {
		if !identifier.MatchString(part) {
			return "", fmt.Errorf("bad warehouse identifier %q", part)
		}
	}
	return fmt.Sprintf("`%s.%s.%s`", cfg.ProjectID, cfg.Dataset, table), nil
}

// query runs sql over orders whose local day is on or after since. The
// since and tz parameters are appended to params.
func (c *Client) query(ctx context.Context, sql string, since civil.Date, params ...bigquery.QueryParameter) ([]row, error) {
	if !c.enabled {
		return nil, gerr.ErrWarehouseDisabled
	}
	params = append(params,
		bigquery.QueryParameter{Name: "since", Value: since},
		bigquery.QueryParameter{Name: "tz", Value: c.tz},
	)
	return c.run(ctx, fmt.Sprintf(sql, c.orders), params)
}

func (c *Client) read(ctx context.Context, sql string, params []bigquery.QueryParameter) ([]row, error) {
	q := c.bq.Query(sql)
	q.Parameters = params
	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to run query: %w", err)
	}
	var rows []row
	for {
		var r map[string]bigquery.Value
		err := it.Next(&r)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		rows = append(rows, r)
	}
	return rows, nil
}
