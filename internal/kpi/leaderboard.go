package kpi

import (
	"slices"

	"github.com/jekabolt/salesboard/internal/entity"
	"github.com/shopspring/decimal"
)

// PodiumSize is the default number of reps returned by Top.
const PodiumSize = 3

// Rank returns a copy of reps sorted by sales, highest first. Ties keep their
// input order.
func Rank(reps []entity.RepAggregate) []entity.RepAggregate {
	out := slices.Clone(reps)
	slices.SortStableFunc(out, func(a, b entity.RepAggregate) int {
		return b.Sales.Cmp(a.Sales)
	})
	return out
}

// Top returns the first n ranked reps.
func Top(reps []entity.RepAggregate, n int) []entity.RepAggregate {
	ranked := Rank(reps)
	if n < 0 {
		n = 0
	}
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}

// TeamSales sums every rep's sales.
func TeamSales(reps []entity.RepAggregate) decimal.Decimal {
	total := decimal.Zero
	for _, r := range reps {
		total = total.Add(r.Sales)
	}
	return total
}

// ShareOfTeam is rep.Sales / max(1, team sales), clamped to [0,1].
func ShareOfTeam(rep entity.RepAggregate, reps []entity.RepAggregate) float64 {
	return share(rep.Sales, TeamSales(reps))
}

func share(sales, team decimal.Decimal) float64 {
	if team.LessThan(one) {
		team = one
	}
	f, _ := sales.Div(team).Float64()
	return clamp01(f)
}

// Leaderboard ranks reps and annotates each with position, team share and AOV.
func Leaderboard(reps []entity.RepAggregate) []entity.RankedRep {
	team := TeamSales(reps)
	ranked := Rank(reps)
	out := make([]entity.RankedRep, len(ranked))
	for i, r := range ranked {
		out[i] = entity.RankedRep{
			RepAggregate: r,
			Position:     i + 1,
			Share:        share(r.Sales, team),
			AOV:          r.AOV(),
		}
	}
	return out
}
