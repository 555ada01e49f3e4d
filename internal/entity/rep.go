package entity

import "github.com/shopspring/decimal"

// RepAggregate is a salesperson's month-to-date totals, produced by the warehouse.
type RepAggregate struct {
	Rep        string          `json:"rep"`
	Sales      decimal.Decimal `json:"sales"`
	Deposits   decimal.Decimal `json:"deposits"`
	SalesCount int             `json:"salesCount"`
}

// AOV is the average order value, 0 when the rep has no sales.
func (r RepAggregate) AOV() decimal.Decimal {
	if r.SalesCount <= 0 {
		return decimal.Zero
	}
	return r.Sales.Div(decimal.NewFromInt(int64(r.SalesCount)))
}

// RankedRep is a leaderboard entry.
type RankedRep struct {
	RepAggregate
	Position int             `json:"position"`
	Share    float64         `json:"share"`
	AOV      decimal.Decimal `json:"aov"`
}
