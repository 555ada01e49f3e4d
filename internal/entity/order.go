package entity

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// UnassignedRep is used when an order or aggregate carries no salesperson.
const UnassignedRep = "Unassigned"

// Order is a canonical sales-log order after normalization.
type Order struct {
	// Amount is always >= 0. Malformed and negative source values become 0.
	Amount decimal.Decimal `json:"amount"`
	// OccurredOn is the calendar day in the reference timezone.
	// It is only meaningful when HasDate is true.
	OccurredOn civil.Date `json:"occurredOn"`
	HasDate    bool       `json:"hasDate"`

	RegionRaw   string `json:"region,omitempty"`
	Source      string `json:"source,omitempty"`
	Tags        string `json:"tags,omitempty"`
	IsOnline    bool   `json:"isOnline"`
	Salesperson string `json:"salesperson"`

	Customer    string          `json:"customer,omitempty"`
	OrderNumber string          `json:"orderNumber,omitempty"`
	OrderID     string          `json:"orderId,omitempty"`
	Shop        string          `json:"shop,omitempty"`
	Outstanding decimal.Decimal `json:"outstanding"`
	AmountPaid  decimal.Decimal `json:"amountPaid"`
}

// Day returns the ISO day key of the order, or "" when the date is unknown.
func (o Order) Day() string {
	if !o.HasDate {
		return ""
	}
	return o.OccurredOn.String()
}
