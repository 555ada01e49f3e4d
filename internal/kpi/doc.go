// Package kpi turns warehouse rows into the numbers the sales dashboard shows:
// per-day sparkline series, "sale today" flags, target progress and the rep
// leaderboard.
//
// Everything here is pure. Time enters only through a Calendar built by the
// caller, so the same input always yields the same output.
package kpi
