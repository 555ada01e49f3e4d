package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthToDate holds warehouse MTD sums. East and West exclude online orders.
type MonthToDate struct {
	Total decimal.Decimal `json:"total_mtd"`
	East  decimal.Decimal `json:"east_mtd"`
	West  decimal.Decimal `json:"west_mtd"`
	AsOf  time.Time       `json:"as_of"`
}

// ByScope returns the MTD sum shown on the card for scope.
func (m MonthToDate) ByScope(s Scope) decimal.Decimal {
	switch s {
	case ScopeEast:
		return m.East
	case ScopeWest:
		return m.West
	default:
		return m.Total
	}
}

// RepAmount names the rep behind a highlight figure.
type RepAmount struct {
	Rep    string          `json:"rep"`
	Amount decimal.Decimal `json:"amount"`
}

// RepCount names the rep behind a count highlight.
type RepCount struct {
	Rep   string `json:"rep"`
	Count int    `json:"count"`
}

// HighlightTotals are org totals that feed target progress.
type HighlightTotals struct {
	TotalDepositsMTD decimal.Decimal `json:"total_deposits_mtd"`
	OnlineSalesMTD   decimal.Decimal `json:"online_sales_mtd"`
	PartnerSalesMTD  decimal.Decimal `json:"partner_sales_mtd"`
}

// Highlights are the leaderboard call-outs.
type Highlights struct {
	LargestSaleMTD     RepAmount       `json:"largest_sale_mtd"`
	LargestDepositsMTD RepAmount       `json:"largest_deposits_mtd"`
	MostSalesCountMTD  RepCount        `json:"most_sales_count_mtd"`
	HighestSalesFY     RepAmount       `json:"highest_sales_fy"`
	Totals             HighlightTotals `json:"totals"`
	AsOf               time.Time       `json:"as_of"`
}
