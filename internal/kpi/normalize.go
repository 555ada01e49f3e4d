package kpi

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/jekabolt/salesboard/internal/entity"
	"github.com/shopspring/decimal"
)

// RawRow is one upstream order row keyed by column name. Values may be plain
// scalars, warehouse values (*big.Rat, civil.Date, time.Time) or JSON wrapper
// objects of the form {"value": ...}.
type RawRow map[string]any

// fieldChain lists candidate column names in priority order.
type fieldChain []string

// pick returns the first candidate whose unwrapped value is non-nil.
func (fc fieldChain) pick(row RawRow) (any, bool) {
	for _, name := range fc {
		if v := unwrap(row[name]); v != nil {
			return v, true
		}
	}
	return nil, false
}

// Column fallbacks. New upstream names go here, not into the logic below.
var (
	amountFields = fieldChain{
		"adjusted_order_total",
		"order_total_after_labour",
		"order_total_net",
		"order_total",
		"orderTotal",
		"amountPaid",
		"amount_paid",
	}
	// Zoned timestamps come first: date_utc is a UTC calendar day and would
	// put early-morning local orders on the previous day.
	dateFields = fieldChain{
		"created_at",
		"created_at_utc",
		"date_utc",
		"last_updated_at",
		"fulfillment_date_utc",
		"date",
	}
	regionFields      = fieldChain{"store_region", "region"}
	sourceFields      = fieldChain{"source"}
	tagsFields        = fieldChain{"tags"}
	onlineFlagFields  = fieldChain{"is_online", "isOnline"}
	salespersonFields = fieldChain{"salesperson", "rep"}
	customerFields    = fieldChain{"customer", "customer_name"}
	orderNumberFields = fieldChain{"orderNumber", "order_number", "order_name"}
	orderIDFields     = fieldChain{"orderId", "order_id"}
	shopFields        = fieldChain{"shop"}
	outstandingFields = fieldChain{"outstanding", "total_outstanding"}
	amountPaidFields  = fieldChain{"amountPaid", "amount_paid"}
)

// Normalizer converts raw rows into canonical orders.
type Normalizer struct {
	loc *time.Location
}

// NewNormalizer returns a Normalizer that buckets dates in loc.
func NewNormalizer(loc *time.Location) Normalizer {
	if loc == nil {
		loc = time.UTC
	}
	return Normalizer{loc: loc}
}

// Orders normalizes every row. It never fails.
func (n Normalizer) Orders(rows []RawRow) []entity.Order {
	out := make([]entity.Order, 0, len(rows))
	for _, r := range rows {
		out = append(out, n.Order(r))
	}
	return out
}

// Order normalizes a single row. Missing fields take their zero value.
func (n Normalizer) Order(row RawRow) entity.Order {
	o := entity.Order{
		Amount:      n.money(row, amountFields),
		RegionRaw:   n.str(row, regionFields),
		Source:      n.str(row, sourceFields),
		Tags:        n.str(row, tagsFields),
		Salesperson: strings.TrimSpace(n.str(row, salespersonFields)),
		Customer:    n.str(row, customerFields),
		OrderNumber: n.str(row, orderNumberFields),
		OrderID:     n.str(row, orderIDFields),
		Shop:        n.str(row, shopFields),
		Outstanding: n.money(row, outstandingFields),
		AmountPaid:  n.money(row, amountPaidFields),
	}
	if o.Salesperson == "" {
		o.Salesperson = entity.UnassignedRep
	}
	if v, ok := dateFields.pick(row); ok {
		o.OccurredOn, o.HasDate = DayKey(v, n.loc)
	}
	flag, _ := onlineFlagFields.pick(row)
	o.IsOnline = isOnline(flag, o.Tags, o.Source)
	return o
}

func (n Normalizer) money(row RawRow, fc fieldChain) decimal.Decimal {
	v, ok := fc.pick(row)
	if !ok {
		return decimal.Zero
	}
	return NonNegative(v)
}

func (n Normalizer) str(row RawRow, fc fieldChain) string {
	v, ok := fc.pick(row)
	if !ok {
		return ""
	}
	return Stringify(v, n.loc)
}

// NonNegative coerces v to a money amount. Non-numeric, non-finite and
// negative values become 0.
func NonNegative(v any) decimal.Decimal {
	d, ok := toDecimal(unwrap(v))
	if !ok || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Stringify renders a raw cell as a string. Date-like values become an ISO
// calendar date in loc.
func Stringify(v any, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	switch t := unwrap(v).(type) {
	case nil:
		return ""
	case string:
		return t
	case time.Time:
		return civil.DateOf(t.In(loc)).String()
	case civil.Date:
		return t.String()
	case civil.DateTime:
		return t.Date.String()
	case *big.Rat:
		d, _ := toDecimal(t)
		return d.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

// unwrap strips JSON {"value": x} wrappers. A wrapper holding null is nil.
func unwrap(v any) any {
	for {
		m, ok := v.(map[string]any)
		if !ok {
			return v
		}
		inner, ok := m["value"]
		if !ok {
			return v
		}
		v = inner
	}
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch t := v.(type) {
	case decimal.Decimal:
		return t, true
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(t), true
	case float32:
		f := float64(t)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat32(t), true
	case int:
		return decimal.NewFromInt(int64(t)), true
	case int32:
		return decimal.NewFromInt32(t), true
	case int64:
		return decimal.NewFromInt(t), true
	case uint32:
		return decimal.NewFromInt(int64(t)), true
	case *big.Rat:
		if t == nil {
			return decimal.Zero, false
		}
		d, err := decimal.NewFromString(t.FloatString(9))
		return d, err == nil
	case json.Number:
		d, err := decimal.NewFromString(t.String())
		return d, err == nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return decimal.Zero, true
		}
		d, err := decimal.NewFromString(s)
		return d, err == nil
	default:
		return decimal.Zero, false
	}
}
