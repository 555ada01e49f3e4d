package kpi

import (
	"regexp"
	"strings"

	"github.com/jekabolt/salesboard/internal/entity"
)

var onlineStoreTag = regexp.MustCompile(`(?i)online store`)

func isOnline(flag any, tags, source string) bool {
	if b, ok := flag.(bool); ok && b {
		return true
	}
	if onlineStoreTag.MatchString(tags) {
		return true
	}
	return strings.ToLower(strings.TrimSpace(source)) == "online"
}

// Region resolves an order's region: the explicit region column when set,
// otherwise an "east"/"west" source tag, otherwise "".
func Region(o entity.Order) string {
	if r := strings.ToLower(strings.TrimSpace(o.RegionRaw)); r != "" {
		return r
	}
	switch src := strings.ToLower(strings.TrimSpace(o.Source)); src {
	case string(entity.ScopeEast), string(entity.ScopeWest):
		return src
	}
	return ""
}

// Includes reports whether o counts towards scope. East and West never include
// online orders; All includes everything.
func Includes(o entity.Order, scope entity.Scope) bool {
	switch scope {
	case entity.ScopeEast, entity.ScopeWest:
		return !o.IsOnline && Region(o) == string(scope)
	case entity.ScopeOnline:
		return o.IsOnline
	default:
		return true
	}
}

// Filter returns the orders in scope, preserving order.
func Filter(orders []entity.Order, scope entity.Scope) []entity.Order {
	out := make([]entity.Order, 0, len(orders))
	for _, o := range orders {
		if Includes(o, scope) {
			out = append(out, o)
		}
	}
	return out
}
