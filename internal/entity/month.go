package entity

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// Month is a calendar month, stored as its first day.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month containing d.
func MonthOf(d civil.Date) Month {
	return Month{Year: d.Year, Month: d.Month}
}

// ParseMonth accepts "YYYY-MM" or a "YYYY-MM-DD" first-of-month date.
func ParseMonth(s string) (Month, error) {
	s = strings.TrimSpace(s)
	switch len(s) {
	case len("2006-01"):
		d, err := civil.ParseDate(s + "-01")
		if err != nil {
			return Month{}, fmt.Errorf("bad month %q: %w", s, err)
		}
		return MonthOf(d), nil
	case len("2006-01-02"):
		d, err := civil.ParseDate(s)
		if err != nil {
			return Month{}, fmt.Errorf("bad month %q: %w", s, err)
		}
		if d.Day != 1 {
			return Month{}, fmt.Errorf("bad month %q: day must be 01", s)
		}
		return MonthOf(d), nil
	default:
		return Month{}, fmt.Errorf("bad month %q: want YYYY-MM", s)
	}
}

// First returns the first day of the month.
func (m Month) First() civil.Date {
	return civil.Date{Year: m.Year, Month: m.Month, Day: 1}
}

// FinancialYearStart returns the first day of the financial year containing m.
// Out of range start months mean January.
func (m Month) FinancialYearStart(startMonth time.Month) civil.Date {
	if startMonth < time.January || startMonth > time.December {
		startMonth = time.January
	}
	year := m.Year
	if m.Month < startMonth {
		year--
	}
	return civil.Date{Year: year, Month: startMonth, Day: 1}
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

func (m Month) IsZero() bool {
	return m.Year == 0 && m.Month == 0
}

func (m Month) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Month) UnmarshalText(b []byte) error {
	pm, err := ParseMonth(string(b))
	if err != nil {
		return err
	}
	*m = pm
	return nil
}

// Value stores the month as a DATE.
func (m Month) Value() (driver.Value, error) {
	return m.First().String(), nil
}

// Scan reads a DATE column. The mysql driver yields time.Time with parseTime=true
// and []byte otherwise.
func (m *Month) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*m = Month{Year: v.Year(), Month: v.Month()}
		return nil
	case []byte:
		return m.UnmarshalText(v)
	case string:
		return m.UnmarshalText([]byte(v))
	case nil:
		*m = Month{}
		return nil
	default:
		return fmt.Errorf("can't scan %T into Month", src)
	}
}
