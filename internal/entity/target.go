package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TargetScope is the level a target applies to.
type TargetScope string

const (
	TargetScopeOrg   TargetScope = "org"
	TargetScopeStore TargetScope = "store"
	TargetScopeRep   TargetScope = "rep"
)

// TargetMetric is the measure a target is set against.
type TargetMetric string

const (
	MetricSales    TargetMetric = "sales"
	MetricDeposits TargetMetric = "deposits"
)

// Well-known org-level target keys.
const (
	KeyAll     = "all"
	KeyOnline  = "online"
	KeyPartner = "partner"
)

var (
	TargetScopes  = []TargetScope{TargetScopeOrg, TargetScopeStore, TargetScopeRep}
	TargetMetrics = []TargetMetric{MetricSales, MetricDeposits}
)

// TargetRow is a stored monthly goal, unique by (month, scope, key, metric).
type TargetRow struct {
	Month     Month           `db:"month" json:"month"`
	Scope     TargetScope     `db:"scope" json:"scope"`
	Key       string          `db:"target_key" json:"key"`
	Metric    TargetMetric    `db:"metric" json:"metric"`
	Target    decimal.Decimal `db:"target" json:"target"`
	UpdatedBy string          `db:"updated_by" json:"updated_by,omitempty"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at,omitempty"`
}

// TargetItem is one row of an upsert request.
type TargetItem struct {
	Scope  TargetScope     `json:"scope"`
	Key    string          `json:"key"`
	Metric TargetMetric    `json:"metric"`
	Target decimal.Decimal `json:"target"`
}
