package kpi

import (
	"math"

	"github.com/jekabolt/salesboard/internal/entity"
	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// DailyTotals sums positive amounts per day of the current month for scope,
// from day 1 through today. Undated orders and orders outside the month are
// skipped.
func DailyTotals(orders []entity.Order, scope entity.Scope, cal Calendar) []decimal.Decimal {
	days := cal.DayOfMonth()
	if days < 0 {
		days = 0
	}
	sums := make([]decimal.Decimal, days)
	month := cal.Month()
	for _, o := range orders {
		if !o.HasDate || entity.MonthOf(o.OccurredOn) != month {
			continue
		}
		i := o.OccurredOn.Day - 1
		if i < 0 || i >= days {
			continue
		}
		if !o.Amount.IsPositive() || !Includes(o, scope) {
			continue
		}
		sums[i] = sums[i].Add(o.Amount)
	}
	return sums
}

// BuildSeries returns the MTD sparkline for scope: DailyTotals rescaled by
// max(1, peak) and clamped to [0,1]. Its length is always today's day number.
func BuildSeries(orders []entity.Order, scope entity.Scope, cal Calendar) []float64 {
	return Rescale(DailyTotals(orders, scope, cal))
}

// Rescale divides each value by max(1, max(values)) and clamps to [0,1].
func Rescale(values []decimal.Decimal) []float64 {
	peak := one
	for _, v := range values {
		if v.GreaterThan(peak) {
			peak = v
		}
	}
	out := make([]float64, len(values))
	for i, v := range values {
		f, _ := v.Div(peak).Float64()
		out[i] = clamp01(f)
	}
	return out
}

// HasActivityToday reports whether any in-scope order dated today has a
// positive amount.
func HasActivityToday(orders []entity.Order, scope entity.Scope, cal Calendar) bool {
	today := cal.Today()
	for _, o := range orders {
		if !o.HasDate || o.OccurredOn != today {
			continue
		}
		if o.Amount.IsPositive() && Includes(o, scope) {
			return true
		}
	}
	return false
}

func clamp01(f float64) float64 {
	switch {
	case math.IsNaN(f), f < 0:
		return 0
	case f > 1:
		return 1
	default:
		return f
	}
}
