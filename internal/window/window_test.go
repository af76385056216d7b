package window

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		wantErr bool
	}{
		{"start before end", date(2024, 1, 1), date(2024, 1, 31), false},
		{"same day", date(2024, 1, 15), date(2024, 1, 15), false},
		{"start after end", date(2024, 2, 1), date(2024, 1, 31), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.start, tt.end)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidDateRange)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestResolve_IST(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	startMS, endMS := Resolve(date(2024, 1, 1), date(2024, 1, 31), loc)

	// Local midnight Jan 1 in UTC+5:30 is Dec 31 18:30 UTC.
	assert.Equal(t, time.Date(2023, 12, 31, 18, 30, 0, 0, time.UTC).UnixMilli(), startMS)
	// End boundary is local midnight Feb 1 (end date + 1 day).
	assert.Equal(t, time.Date(2024, 1, 31, 18, 30, 0, 0, time.UTC).UnixMilli(), endMS)

	// A record modified at 2024-01-31 23:59:00 local time falls inside [start, end).
	edge := time.Date(2024, 1, 31, 23, 59, 0, 0, loc).UnixMilli()
	assert.GreaterOrEqual(t, edge, startMS)
	assert.Less(t, edge, endMS)
}

func TestResolve_SingleDay(t *testing.T) {
	loc := time.UTC
	startMS, endMS := Resolve(date(2024, 6, 10), date(2024, 6, 10), loc)

	assert.Equal(t, date(2024, 6, 10).UnixMilli(), startMS)
	assert.Equal(t, date(2024, 6, 11).UnixMilli(), endMS)
	assert.Equal(t, int64(24*time.Hour/time.Millisecond), endMS-startMS)
}

func TestResolve_IgnoresTimeOfDay(t *testing.T) {
	loc := time.UTC
	noon := time.Date(2024, 3, 5, 12, 45, 0, 0, time.UTC)
	a, b := Resolve(noon, noon, loc)
	c, d := Resolve(date(2024, 3, 5), date(2024, 3, 5), loc)
	assert.Equal(t, c, a)
	assert.Equal(t, d, b)
}
