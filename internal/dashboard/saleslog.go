package dashboard

import (
	"slices"
	"strings"

	"github.com/jekabolt/salesboard/internal/entity"
	"github.com/shopspring/decimal"
)

// SalesLogRow is the flat view of an order in the sales log.
type SalesLogRow struct {
	Date        string          `json:"date"`
	Customer    string          `json:"customer"`
	Salesperson string          `json:"salesperson"`
	Source      string          `json:"source"`
	OrderNumber string          `json:"orderNumber"`
	OrderTotal  decimal.Decimal `json:"orderTotal"`
	Outstanding decimal.Decimal `json:"outstanding"`
	AmountPaid  decimal.Decimal `json:"amountPaid"`
	Shop        string          `json:"shop"`
	OrderID     string          `json:"orderId"`
	Tags        string          `json:"tags"`
}

// SalesLogFilter selects sales log rows. Empty fields and "All" match anything.
type SalesLogFilter struct {
	Source      string
	Salesperson string
}

// SalesLog is a filtered sales log with the option lists for its filters.
type SalesLog struct {
	Rows        []SalesLogRow `json:"rows"`
	Sources     []string      `json:"sources"`
	Salespeople []string      `json:"salespeople"`
}

const allOption = "All"

func normalizeSource(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func matchAll(s string) bool {
	return s == "" || strings.EqualFold(s, allOption)
}

// FilterSalesLog filters orders and lists the distinct sources and
// salespeople across all of them, sorted.
func FilterSalesLog(orders []entity.Order, f SalesLogFilter) SalesLog {
	src := normalizeSource(f.Source)
	out := SalesLog{Rows: []SalesLogRow{}}
	sources := map[string]struct{}{}
	people := map[string]struct{}{}

	for _, o := range orders {
		s := normalizeSource(o.Source)
		if s != "" {
			sources[s] = struct{}{}
		}
		people[o.Salesperson] = struct{}{}

		if !matchAll(f.Source) && s != src {
			continue
		}
		if !matchAll(f.Salesperson) && o.Salesperson != f.Salesperson {
			continue
		}
		out.Rows = append(out.Rows, SalesLogRow{
			Date:        o.Day(),
			Customer:    o.Customer,
			Salesperson: o.Salesperson,
			Source:      o.Source,
			OrderNumber: o.OrderNumber,
			OrderTotal:  o.Amount,
			Outstanding: o.Outstanding,
			AmountPaid:  o.AmountPaid,
			Shop:        o.Shop,
			OrderID:     o.OrderID,
			Tags:        o.Tags,
		})
	}

	out.Sources = sortedKeys(sources)
	out.Salespeople = sortedKeys(people)
	return out
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
