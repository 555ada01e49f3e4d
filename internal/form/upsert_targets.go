package form

import (
	"errors"
	"net/http"
	"strings"

	v "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/jekabolt/salesboard/internal/entity"
	"github.com/shopspring/decimal"
)

const maxTargetItems = 500

// TargetItem is one goal in an upsert request.
type TargetItem entity.TargetItem

func (i TargetItem) Validate() error {
	return v.ValidateStruct(&i,
		v.Field(&i.Scope, v.Required, v.In(anyOf(entity.TargetScopes)...)),
		v.Field(&i.Key, v.Required, v.Length(1, 128)),
		v.Field(&i.Metric, v.Required, v.In(anyOf(entity.TargetMetrics)...)),
		v.Field(&i.Target, v.By(nonNegative)),
	)
}

// UpsertTargetsRequest is the body of POST /targets/upsert.
type UpsertTargetsRequest struct {
	Month     string       `json:"month"`
	UpdatedBy string       `json:"updated_by"`
	Items     []TargetItem `json:"items"`

	month entity.Month
}

// Bind normalizes the request after decoding and validates it.
func (r *UpsertTargetsRequest) Bind(*http.Request) error {
	r.Normalize()
	return r.Validate()
}

// Normalize trims keys and lowercases scope and metric.
func (r *UpsertTargetsRequest) Normalize() {
	r.UpdatedBy = strings.TrimSpace(r.UpdatedBy)
	for i := range r.Items {
		it := &r.Items[i]
		it.Scope = entity.TargetScope(strings.ToLower(strings.TrimSpace(string(it.Scope))))
		it.Metric = entity.TargetMetric(strings.ToLower(strings.TrimSpace(string(it.Metric))))
		it.Key = strings.TrimSpace(it.Key)
	}
}

func (r *UpsertTargetsRequest) Validate() error {
	return ValidateStruct(r,
		v.Field(&r.Month, v.Required, v.By(r.parseMonth)),
		v.Field(&r.UpdatedBy, v.Length(0, 128)),
		v.Field(&r.Items, v.Required, v.Length(1, maxTargetItems)),
	)
}

// ParsedMonth is valid after a successful Validate.
func (r *UpsertTargetsRequest) ParsedMonth() entity.Month {
	return r.month
}

// TargetItems converts the request items for storage.
func (r *UpsertTargetsRequest) TargetItems() []entity.TargetItem {
	out := make([]entity.TargetItem, len(r.Items))
	for i, it := range r.Items {
		out[i] = entity.TargetItem(it)
	}
	return out
}

func (r *UpsertTargetsRequest) parseMonth(value interface{}) error {
	s, _ := value.(string)
	m, err := entity.ParseMonth(s)
	if err != nil {
		return errors.New("must be YYYY-MM or YYYY-MM-01")
	}
	r.month = m
	return nil
}

func nonNegative(value interface{}) error {
	d, ok := value.(decimal.Decimal)
	if !ok {
		return errors.New("must be a number")
	}
	if d.IsNegative() {
		return errors.New("must be no less than 0")
	}
	return nil
}

func anyOf[T any](vals []T) []interface{} {
	out := make([]interface{}, len(vals))
	for i, x := range vals {
		out[i] = x
	}
	return out
}
