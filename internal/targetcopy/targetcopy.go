// Package targetcopy copies one month's targets to another through the HTTP API.
package targetcopy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/jekabolt/salesboard/internal/entity"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	updatedBy      = "admin"
	adminKeyHeader = "X-Admin-Key"
)

var ErrMissingKey = errors.New("admin key is required: set ADMIN_KEY or pass --key")

type Config struct {
	APIBase  string        `mapstructure:"api_base"`
	AdminKey string        `mapstructure:"admin_key"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type Client struct {
	cli *resty.Client
	key string
	out io.Writer
	p   *message.Printer
}

func New(c *Config, out io.Writer) (*Client, error) {
	if strings.TrimSpace(c.AdminKey) == "" {
		return nil, ErrMissingKey
	}
	if c.APIBase == "" {
		return nil, errors.New("api base url is required")
	}
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	cli := resty.New()
	cli.SetBaseURL(strings.TrimRight(c.APIBase, "/"))
	cli.SetTimeout(timeout)
	cli.SetHeader("Accept", "application/json")

	return &Client{
		cli: cli,
		key: c.AdminKey,
		out: out,
		p:   message.NewPrinter(language.English),
	}, nil
}

// Result summarizes one copy.
type Result struct {
	From   entity.Month
	To     entity.Month
	Copied int
}

type listResponse struct {
	Month entity.Month       `json:"month"`
	Rows  []entity.TargetRow `json:"rows"`
}

type upsertRequest struct {
	Month     string              `json:"month"`
	UpdatedBy string              `json:"updated_by"`
	Items     []entity.TargetItem `json:"items"`
}

type upsertResponse struct {
	OK    bool `json:"ok"`
	Count int  `json:"count"`
}

// Copy reads every target of from and upserts it into to. A month without
// targets is a no-op.
func (c *Client) Copy(ctx context.Context, from, to entity.Month) (*Result, error) {
	c.p.Fprintf(c.out, "Copying targets from %s to %s...\n", from, to)

	rows, err := c.list(ctx, from)
	if err != nil {
		return nil, err
	}
	res := &Result{From: from, To: to}
	c.p.Fprintf(c.out, "Found %d target rows for %s\n", len(rows), from)
	if len(rows) == 0 {
		c.p.Fprintln(c.out, "No targets to copy")
		return res, nil
	}

	c.printTable(rows)

	items := make([]entity.TargetItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, entity.TargetItem{
			Scope:  r.Scope,
			Key:    r.Key,
			Metric: r.Metric,
			Target: r.Target,
		})
	}

	n, err := c.upsert(ctx, to, items)
	if err != nil {
		return nil, err
	}
	res.Copied = n
	c.p.Fprintf(c.out, "Upserted %d targets into %s\n", n, to)
	return res, nil
}

func (c *Client) list(ctx context.Context, month entity.Month) ([]entity.TargetRow, error) {
	var out listResponse
	resp, err := c.cli.R().
		SetContext(ctx).
		SetQueryParam("month", month.String()).
		SetResult(&out).
		Get("/targets")
	if err != nil {
		return nil, fmt.Errorf("fetch targets %s: %w", month, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch targets %s: %s: %s", month, resp.Status(), resp.String())
	}
	return out.Rows, nil
}

func (c *Client) upsert(ctx context.Context, month entity.Month, items []entity.TargetItem) (int, error) {
	var out upsertResponse
	resp, err := c.cli.R().
		SetContext(ctx).
		SetHeader(adminKeyHeader, c.key).
		SetBody(upsertRequest{Month: month.String(), UpdatedBy: updatedBy, Items: items}).
		SetResult(&out).
		Post("/targets/upsert")
	if err != nil {
		return 0, fmt.Errorf("upsert targets %s: %w", month, err)
	}
	if resp.IsError() {
		return 0, fmt.Errorf("upsert targets %s: %s: %s", month, resp.Status(), resp.String())
	}
	return out.Count, nil
}

func (c *Client) printTable(rows []entity.TargetRow) {
	tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SCOPE\tKEY\tMETRIC\tTARGET")
	for _, r := range rows {
		c.p.Fprintf(tw, "%s\t%s\t%s\t%.2f\n", r.Scope, r.Key, r.Metric, r.Target.InexactFloat64())
	}
	tw.Flush()
}
