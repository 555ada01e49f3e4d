package entity

import "strings"

// Scope partitions orders for the MTD cards.
type Scope string

const (
	ScopeAll    Scope = "all"
	ScopeEast   Scope = "east"
	ScopeWest   Scope = "west"
	ScopeOnline Scope = "online"
)

// CardScopes are the scopes rendered as KPI cards, in display order.
var CardScopes = []Scope{ScopeAll, ScopeEast, ScopeWest}

// ParseScope returns the scope for s, defaulting to ScopeAll for unknown input.
func ParseScope(s string) Scope {
	switch Scope(strings.ToLower(strings.TrimSpace(s))) {
	case ScopeEast:
		return ScopeEast
	case ScopeWest:
		return ScopeWest
	case ScopeOnline:
		return ScopeOnline
	default:
		return ScopeAll
	}
}
