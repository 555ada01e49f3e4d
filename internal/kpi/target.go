package kpi

import (
	"strings"

	"github.com/jekabolt/salesboard/internal/entity"
	"github.com/shopspring/decimal"
)

// FindTarget returns the target for (scope, key, metric), compared
// case-insensitively. The first matching row wins. It returns 0 when nothing
// matches, which callers treat as "no target set".
func FindTarget(rows []entity.TargetRow, metric entity.TargetMetric, scope entity.TargetScope, key string) decimal.Decimal {
	for _, r := range rows {
		if strings.EqualFold(string(r.Scope), string(scope)) &&
			strings.EqualFold(r.Key, key) &&
			strings.EqualFold(string(r.Metric), string(metric)) {
			if r.Target.IsNegative() {
				return decimal.Zero
			}
			return r.Target
		}
	}
	return decimal.Zero
}

// FindOrgTarget is FindTarget for the org-wide "all" key.
func FindOrgTarget(rows []entity.TargetRow, metric entity.TargetMetric) decimal.Decimal {
	return FindTarget(rows, metric, entity.TargetScopeOrg, entity.KeyAll)
}

// DuplicateTargets returns the "scope/key/metric" triples that appear more
// than once in rows.
func DuplicateTargets(rows []entity.TargetRow) []string {
	seen := make(map[string]int, len(rows))
	var dups []string
	for _, r := range rows {
		k := strings.ToLower(string(r.Scope) + "/" + r.Key + "/" + string(r.Metric))
		seen[k]++
		if seen[k] == 2 {
			dups = append(dups, k)
		}
	}
	return dups
}

// ComputeProgress returns actual/target clamped to [0,1]. A target that is not
// positive yields 0. Exceeding the target reads as exactly 1.
func ComputeProgress(actual, target decimal.Decimal) float64 {
	if !target.IsPositive() {
		return 0
	}
	if actual.GreaterThanOrEqual(target) {
		return 1
	}
	f, _ := actual.Div(target).Float64()
	return clamp01(f)
}

// Progress is a progress fraction with its inputs. Configured is false when
// no target was set, so 0 there means "no target" rather than "0% of target".
type Progress struct {
	Actual     decimal.Decimal `json:"actual"`
	Target     decimal.Decimal `json:"target"`
	Fraction   float64         `json:"fraction"`
	Configured bool            `json:"configured"`
}

// NewProgress builds a Progress for actual against target.
func NewProgress(actual, target decimal.Decimal) Progress {
	return Progress{
		Actual:     actual,
		Target:     target,
		Fraction:   ComputeProgress(actual, target),
		Configured: target.IsPositive(),
	}
}
