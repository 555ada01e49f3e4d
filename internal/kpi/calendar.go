package kpi

import (
	"regexp"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/jekabolt/salesboard/internal/entity"
)

var dateOnly = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// timestampLayouts are the zoned timestamp forms accepted by DayKey.
// Wall-clock forms without a zone yield no day.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999 UTC",
}

// Calendar fixes "today" in a reference timezone.
type Calendar struct {
	loc   *time.Location
	today civil.Date
}

// NewCalendar pins now to loc. A nil loc means UTC.
func NewCalendar(now time.Time, loc *time.Location) Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return Calendar{
		loc:   loc,
		today: civil.DateOf(now.In(loc)),
	}
}

func (c Calendar) Location() *time.Location {
	if c.loc == nil {
		return time.UTC
	}
	return c.loc
}

func (c Calendar) Today() civil.Date { return c.today }

// DayOfMonth is today's day number, i.e. the length of an MTD series.
func (c Calendar) DayOfMonth() int { return c.today.Day }

func (c Calendar) Month() entity.Month { return entity.MonthOf(c.today) }

func (c Calendar) MonthStart() civil.Date { return c.Month().First() }

// FinancialYearStart returns the first day of the financial year containing today.
// startMonth is the month the financial year begins in; 0 means January.
func (c Calendar) FinancialYearStart(startMonth time.Month) civil.Date {
	return c.Month().FinancialYearStart(startMonth)
}

// DayKey maps v to its calendar day in the calendar's zone.
func (c Calendar) DayKey(v any) (civil.Date, bool) {
	return DayKey(v, c.Location())
}

// DayKey maps a date-only string, a zoned timestamp (string or time.Time) or a
// civil.Date to its calendar day in loc. Date-only values are taken as already
// local. Anything else, including zone-less date-times, yields false.
func DayKey(v any, loc *time.Location) (civil.Date, bool) {
	if loc == nil {
		loc = time.UTC
	}
	switch t := unwrap(v).(type) {
	case civil.Date:
		if t.IsValid() {
			return t, true
		}
	case time.Time:
		if !t.IsZero() {
			return civil.DateOf(t.In(loc)), true
		}
	case string:
		return parseDay(t, loc)
	}
	return civil.Date{}, false
}

func parseDay(s string, loc *time.Location) (civil.Date, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return civil.Date{}, false
	}
	if dateOnly.MatchString(s) {
		d, err := civil.ParseDate(s)
		if err != nil || !d.IsValid() {
			return civil.Date{}, false
		}
		return d, true
	}
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return civil.DateOf(t.In(loc)), true
		}
	}
	return civil.Date{}, false
}
