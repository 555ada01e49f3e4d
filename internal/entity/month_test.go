package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonth(t *testing.T) {
	tests := []struct {
		in      string
		want    Month
		wantErr bool
	}{
		{in: "2025-11", want: Month{2025, time.November}},
		{in: " 2025-01-01 ", want: Month{2025, time.January}},
		{in: "2025-11-15", wantErr: true},
		{in: "2025-13", wantErr: true},
		{in: "11/2025", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMonth(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMonth(t *testing.T) {
	m := Month{2024, time.February}
	assert.Equal(t, "2024-02", m.String())
	assert.Equal(t, "2024-02-01", m.First().String())
	assert.False(t, m.IsZero())
	assert.True(t, Month{}.IsZero())

	v, err := m.Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01", v)
}

func TestMonth_Scan(t *testing.T) {
	var m Month
	require.NoError(t, m.Scan(time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, Month{2025, time.November}, m)

	require.NoError(t, m.Scan([]byte("2025-10-01")))
	assert.Equal(t, Month{2025, time.October}, m)

	require.NoError(t, m.Scan(nil))
	assert.True(t, m.IsZero())

	assert.Error(t, m.Scan(42))
}

func TestMonth_FinancialYearStart(t *testing.T) {
	assert.Equal(t, "2025-07-01", Month{2025, time.November}.FinancialYearStart(time.July).String())
	assert.Equal(t, "2024-07-01", Month{2025, time.June}.FinancialYearStart(time.July).String())
	assert.Equal(t, "2025-01-01", Month{2025, time.June}.FinancialYearStart(0).String())
}
