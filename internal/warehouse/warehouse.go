package warehouse

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"
	"github.com/jekabolt/salesboard/internal/entity"
	"github.com/jekabolt/salesboard/internal/kpi"
)

func monthStart(d civil.Date) bigquery.QueryParameter {
	return bigquery.QueryParameter{Name: "month_start", Value: d}
}

// MonthToDate returns total, east and west sales since monthStart.
func (c *Client) MonthToDate(ctx context.Context, from civil.Date) (*entity.MonthToDate, error) {
	rows, err := c.query(ctx, monthToDateSQL, from, monthStart(from))
	if err != nil {
		return nil, fmt.Errorf("month to date: %w", err)
	}
	mtd := &entity.MonthToDate{AsOf: time.Now().UTC()}
	if len(rows) > 0 {
		r := rows[0]
		mtd.Total = decimalOf(r["total_mtd"])
		mtd.East = decimalOf(r["east_mtd"])
		mtd.West = decimalOf(r["west_mtd"])
	}
	return mtd, nil
}

// RepTable returns per-salesperson aggregates, online orders excluded.
func (c *Client) RepTable(ctx context.Context, from civil.Date) ([]entity.RepAggregate, error) {
	rows, err := c.query(ctx, repTableSQL, from, monthStart(from))
	if err != nil {
		return nil, fmt.Errorf("rep table: %w", err)
	}
	reps := make([]entity.RepAggregate, 0, len(rows))
	for _, r := range rows {
		rep := stringOf(r["rep"])
		if rep == "" {
			rep = entity.UnassignedRep
		}
		reps = append(reps, entity.RepAggregate{
			Rep:        rep,
			Sales:      decimalOf(r["sales"]),
			Deposits:   decimalOf(r["deposits"]),
			SalesCount: intOf(r["sales_count"]),
		})
	}
	return reps, nil
}

// Highlights returns leaderboard call-outs for the month and financial year.
func (c *Client) Highlights(ctx context.Context, from, fyStart civil.Date) (*entity.Highlights, error) {
	since := from
	if fyStart.Before(from) {
		since = fyStart
	}
	rows, err := c.query(ctx, highlightsSQL, since,
		monthStart(from),
		bigquery.QueryParameter{Name: "fy_start", Value: fyStart},
	)
	if err != nil {
		return nil, fmt.Errorf("highlights: %w", err)
	}
	h := &entity.Highlights{AsOf: time.Now().UTC()}
	if len(rows) == 0 {
		return h, nil
	}
	r := rows[0]
	h.LargestSaleMTD = entity.RepAmount{Rep: stringOf(r["largest_sale_rep"]), Amount: decimalOf(r["largest_sale_amount"])}
	h.LargestDepositsMTD = entity.RepAmount{Rep: stringOf(r["largest_deposits_rep"]), Amount: decimalOf(r["largest_deposits_amount"])}
	h.MostSalesCountMTD = entity.RepCount{Rep: stringOf(r["most_sales_count_rep"]), Count: intOf(r["most_sales_count"])}
	h.HighestSalesFY = entity.RepAmount{Rep: stringOf(r["highest_sales_fy_rep"]), Amount: decimalOf(r["highest_sales_fy_amount"])}
	h.Totals = entity.HighlightTotals{
		TotalDepositsMTD: decimalOf(r["total_deposits_mtd"]),
		OnlineSalesMTD:   decimalOf(r["online_sales_mtd"]),
		PartnerSalesMTD:  decimalOf(r["partner_sales_mtd"]),
	}
	return h, nil
}

// SalesLog returns raw order rows since monthStart, newest first.
func (c *Client) SalesLog(ctx context.Context, from civil.Date) ([]kpi.RawRow, error) {
	rows, err := c.query(ctx, salesLogSQL, from, monthStart(from))
	if err != nil {
		return nil, fmt.Errorf("sales log: %w", err)
	}
	out := make([]kpi.RawRow, len(rows))
	for i, r := range rows {
		raw := make(kpi.RawRow, len(r))
		for k, v := range r {
			raw[k] = v
		}
		out[i] = raw
	}
	return out, nil
}
