package dashboard

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/jekabolt/salesboard/internal/entity"
	"github.com/jekabolt/salesboard/internal/kpi"
	"github.com/shopspring/decimal"
)

// ScopeCard is one MTD KPI card.
type ScopeCard struct {
	Scope     entity.Scope    `json:"scope"`
	Total     decimal.Decimal `json:"total"`
	Series    []float64       `json:"series"`
	SaleToday bool            `json:"sale_today"`
}

// Org-level target lines shown as progress bars.
const (
	GoalSales        = "sales"
	GoalDeposits     = "deposits"
	GoalOnlineSales  = "online_sales"
	GoalPartnerSales = "partner_sales"
)

// Goal is an org-level target line with its progress.
type Goal struct {
	Name string `json:"name"`
	kpi.Progress
}

// RepRow is a leaderboard row with the rep's own targets, if any.
type RepRow struct {
	entity.RankedRep
	SalesTarget    kpi.Progress `json:"sales_target"`
	DepositsTarget kpi.Progress `json:"deposits_target"`
}

// Snapshot is everything the dashboard renders for one refresh.
type Snapshot struct {
	RefreshID   string             `json:"refresh_id"`
	Month       entity.Month       `json:"month"`
	Today       civil.Date         `json:"today"`
	MonthToDate entity.MonthToDate `json:"mtd"`
	Cards       []ScopeCard        `json:"cards"`
	Reps        []RepRow           `json:"reps"`
	Podium      []RepRow           `json:"podium"`
	Goals       []Goal             `json:"goals"`
	Targets     []entity.TargetRow `json:"targets"`
	Highlights  entity.Highlights  `json:"highlights"`
	SalesLog    []entity.Order     `json:"-"`
	AsOf        time.Time          `json:"as_of"`
}

// Inputs are the fetched collaborator results a snapshot is derived from.
type Inputs struct {
	MonthToDate entity.MonthToDate
	Reps        []entity.RepAggregate
	Highlights  entity.Highlights
	Targets     []entity.TargetRow
	SalesLog    []kpi.RawRow
}

// Build derives a snapshot from in. It is pure: all time comes from cal.
func Build(in Inputs, cal kpi.Calendar, asOf time.Time) *Snapshot {
	orders := kpi.NewNormalizer(cal.Location()).Orders(in.SalesLog)

	cards := make([]ScopeCard, 0, len(entity.CardScopes))
	for _, scope := range entity.CardScopes {
		cards = append(cards, ScopeCard{
			Scope:     scope,
			Total:     in.MonthToDate.ByScope(scope),
			Series:    kpi.BuildSeries(orders, scope, cal),
			SaleToday: kpi.HasActivityToday(orders, scope, cal),
		})
	}

	board := kpi.Leaderboard(in.Reps)
	reps := make([]RepRow, len(board))
	for i, r := range board {
		reps[i] = RepRow{
			RankedRep:      r,
			SalesTarget:    kpi.NewProgress(r.Sales, kpi.FindTarget(in.Targets, entity.MetricSales, entity.TargetScopeRep, r.Rep)),
			DepositsTarget: kpi.NewProgress(r.Deposits, kpi.FindTarget(in.Targets, entity.MetricDeposits, entity.TargetScopeRep, r.Rep)),
		}
	}
	podium := reps[:min(kpi.PodiumSize, len(reps))]

	totals := in.Highlights.Totals
	goals := []Goal{
		{GoalSales, kpi.NewProgress(in.MonthToDate.Total, kpi.FindOrgTarget(in.Targets, entity.MetricSales))},
		{GoalDeposits, kpi.NewProgress(totals.TotalDepositsMTD, kpi.FindOrgTarget(in.Targets, entity.MetricDeposits))},
		{GoalOnlineSales, kpi.NewProgress(totals.OnlineSalesMTD, kpi.FindTarget(in.Targets, entity.MetricSales, entity.TargetScopeOrg, entity.KeyOnline))},
		{GoalPartnerSales, kpi.NewProgress(totals.PartnerSalesMTD, kpi.FindTarget(in.Targets, entity.MetricSales, entity.TargetScopeOrg, entity.KeyPartner))},
	}

	return &Snapshot{
		Month:       cal.Month(),
		Today:       cal.Today(),
		MonthToDate: in.MonthToDate,
		Cards:       cards,
		Reps:        reps,
		Podium:      podium,
		Goals:       goals,
		Targets:     in.Targets,
		Highlights:  in.Highlights,
		SalesLog:    orders,
		AsOf:        asOf,
	}
}

// Goal returns the named org goal.
func (s *Snapshot) Goal(name string) (Goal, bool) {
	for _, g := range s.Goals {
		if g.Name == name {
			return g, true
		}
	}
	return Goal{}, false
}

// Card returns the card for scope.
func (s *Snapshot) Card(scope entity.Scope) (ScopeCard, bool) {
	for _, c := range s.Cards {
		if c.Scope == scope {
			return c, true
		}
	}
	return ScopeCard{}, false
}
