package kpi

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/jekabolt/salesboard/internal/entity"
	"github.com/shopspring/decimal"
)

// perth is a fixed +08:00 zone; Australia/Perth has no DST.
var perth = time.FixedZone("AWST", 8*60*60)

// calendarAt returns a calendar whose today is the given Perth-local date.
func calendarAt(y int, m time.Month, d int) Calendar {
	return NewCalendar(time.Date(y, m, d, 12, 0, 0, 0, perth), perth)
}

func order(day civil.Date, amount int64, region string, online bool) entity.Order {
	return entity.Order{
		Amount:      decimal.NewFromInt(amount),
		OccurredOn:  day,
		HasDate:     true,
		RegionRaw:   region,
		IsOnline:    online,
		Salesperson: entity.UnassignedRep,
	}
}

func day(y int, m time.Month, d int) civil.Date {
	return civil.Date{Year: y, Month: m, Day: d}
}
