package kpi

import (
	"encoding/json"
	"math"
	"math/big"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/jekabolt/salesboard/internal/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizer_Amount(t *testing.T) {
	n := NewNormalizer(perth)
	tests := []struct {
		name string
		row  RawRow
		want string
	}{
		{"no amount fields", RawRow{"customer": "x"}, "0"},
		{"negative", RawRow{"order_total_net": -120.5}, "0"},
		{"nan", RawRow{"order_total_net": math.NaN()}, "0"},
		{"infinite", RawRow{"order_total_net": math.Inf(1)}, "0"},
		{"not a number", RawRow{"order_total_net": "abc"}, "0"},
		{"bool", RawRow{"order_total_net": true}, "0"},
		{"float", RawRow{"order_total_net": 120.5}, "120.5"},
		{"string", RawRow{"order_total_net": " 99.90 "}, "99.9"},
		{"json number", RawRow{"order_total": json.Number("42")}, "42"},
		{"warehouse numeric", RawRow{"order_total_net": big.NewRat(2501, 2)}, "1250.5"},
		{"wrapped", RawRow{"order_total_net": map[string]any{"value": "300"}}, "300"},
		{"adjusted beats net", RawRow{"adjusted_order_total": 10, "order_total_net": 20}, "10"},
		{"null adjusted falls through", RawRow{"adjusted_order_total": nil, "order_total_net": 20}, "20"},
		{"wrapped null falls through", RawRow{"adjusted_order_total": map[string]any{"value": nil}, "order_total": 7}, "7"},
		{"malformed first candidate does not fall through", RawRow{"order_total_net": "n/a", "order_total": 50}, "0"},
		{"amount paid fallback", RawRow{"amountPaid": 15}, "15"},
		{"snake amount paid fallback", RawRow{"amount_paid": int64(16)}, "16"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := n.Order(tt.row)
			assert.Equal(t, tt.want, o.Amount.String())
			assert.False(t, o.Amount.IsNegative())
		})
	}
}

func TestNormalizer_Fields(t *testing.T) {
	n := NewNormalizer(perth)
	o := n.Order(RawRow{
		"order_total_net": 250.0,
		"date_utc":        civil.Date{Year: 2025, Month: 11, Day: 3},
		"created_at":      time.Date(2025, 11, 3, 23, 30, 0, 0, time.UTC),
		"store_region":    "East",
		"source":          "pos",
		"tags":            "vip",
		"salesperson":     "  Ana  ",
		"customer":        map[string]any{"value": "Jo Bloggs"},
		"orderNumber":     1042.0,
		"order_id":        int64(77),
		"outstanding":     -5,
		"amountPaid":      "100",
	})

	assert.Equal(t, "250", o.Amount.String())
	require.True(t, o.HasDate)
	assert.Equal(t, "2025-11-04", o.Day(), "created_at in the local zone beats the UTC date")
	assert.Equal(t, "East", o.RegionRaw)
	assert.Equal(t, "Ana", o.Salesperson)
	assert.Equal(t, "Jo Bloggs", o.Customer)
	assert.Equal(t, "1042", o.OrderNumber)
	assert.Equal(t, "77", o.OrderID)
	assert.True(t, o.Outstanding.IsZero())
	assert.Equal(t, "100", o.AmountPaid.String())
	assert.False(t, o.IsOnline)
}

func TestNormalizer_Defaults(t *testing.T) {
	o := NewNormalizer(nil).Order(RawRow{})
	assert.True(t, o.Amount.IsZero())
	assert.False(t, o.HasDate)
	assert.Equal(t, "", o.Day())
	assert.Equal(t, entity.UnassignedRep, o.Salesperson)
	assert.False(t, o.IsOnline)

	assert.NotPanics(t, func() {
		NewNormalizer(perth).Order(nil)
		NewNormalizer(perth).Order(RawRow{"date_utc": struct{}{}, "tags": []int{1}, "salesperson": 3})
	})
}

func TestNormalizer_Date(t *testing.T) {
	n := NewNormalizer(perth)

	o := n.Order(RawRow{"created_at": "2025-11-03T23:50:00Z"})
	require.True(t, o.HasDate)
	assert.Equal(t, "2025-11-04", o.Day())

	o = n.Order(RawRow{"date": time.Date(2025, 11, 3, 1, 0, 0, 0, time.UTC)})
	require.True(t, o.HasDate)
	assert.Equal(t, "2025-11-03", o.Day())

	o = n.Order(RawRow{"date_utc": "2025-10-31", "created_at_utc": "2025-10-31T22:00:00Z"})
	require.True(t, o.HasDate)
	assert.Equal(t, "2025-11-01", o.Day())

	o = n.Order(RawRow{"date_utc": "2025-11-03", "created_at": nil})
	require.True(t, o.HasDate)
	assert.Equal(t, "2025-11-03", o.Day())

	o = n.Order(RawRow{"date_utc": "not a date", "date": "2025-11-03"})
	assert.False(t, o.HasDate, "first non-null date field wins even when unparseable")
}

func TestNormalizer_Online(t *testing.T) {
	n := NewNormalizer(perth)
	tests := []struct {
		name string
		row  RawRow
		want bool
	}{
		{"flag", RawRow{"is_online": true}, true},
		{"false flag", RawRow{"is_online": false}, false},
		{"string flag is not a flag", RawRow{"is_online": "true"}, false},
		{"tag", RawRow{"tags": "Wholesale, ONLINE STORE"}, true},
		{"tag mid word", RawRow{"tags": "from online storefront"}, true},
		{"source", RawRow{"source": "  Online "}, true},
		{"other source", RawRow{"source": "online-partner"}, false},
		{"nothing", RawRow{"tags": "pos", "source": "east"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Order(tt.row).IsOnline)
		})
	}
}

func TestStringify(t *testing.T) {
	assert.Equal(t, "", Stringify(nil, perth))
	assert.Equal(t, "2025-11-04", Stringify(time.Date(2025, 11, 3, 20, 0, 0, 0, time.UTC), perth))
	assert.Equal(t, "2025-11-03", Stringify(civil.DateTime{Date: civil.Date{Year: 2025, Month: 11, Day: 3}}, perth))
	assert.Equal(t, "12.5", Stringify(decimal.RequireFromString("12.5"), perth))
	assert.Equal(t, "0.5", Stringify(big.NewRat(1, 2), perth))
	assert.Equal(t, "true", Stringify(true, perth))
	assert.Equal(t, "x", Stringify(map[string]any{"value": map[string]any{"value": "x"}}, perth))
}

func TestNormalizer_Idempotent(t *testing.T) {
	n := NewNormalizer(perth)
	rows := []RawRow{
		{"order_total_net": 10, "date_utc": "2025-11-03", "store_region": "west"},
		{"order_total_net": "x", "created_at": "2025-11-03T23:00:00Z", "tags": "online store"},
	}
	assert.Equal(t, n.Orders(rows), n.Orders(rows))
}
