// Package window converts calendar date ranges into the absolute UTC
// millisecond boundaries the CRM search API filters on.
package window

import (
	"time"

	"github.com/rotisserie/eris"
)

// ErrInvalidDateRange is returned by Validate when the start date falls after
// the end date. Callers are expected to check before resolving.
var ErrInvalidDateRange = eris.New("window: start date after end date")

// Validate checks the calendar ordering of a date range. Only the calendar
// date portions are compared.
func Validate(start, end time.Time) error {
	sy, sm, sd := start.Date()
	ey, em, ed := end.Date()
	s := time.Date(sy, sm, sd, 0, 0, 0, 0, time.UTC)
	e := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)
	if s.After(e) {
		return ErrInvalidDateRange
	}
	return nil
}

// Resolve converts an inclusive calendar date range in the business timezone
// to UTC epoch milliseconds. The start boundary is local midnight of the start
// date. The end boundary is local midnight of the day AFTER the end date, so
// records at the trailing edge of the last day are never dropped to timezone
// or rounding skew.
func Resolve(start, end time.Time, loc *time.Location) (startMS, endMS int64) {
	sy, sm, sd := start.Date()
	ey, em, ed := end.Date()

	startLocal := time.Date(sy, sm, sd, 0, 0, 0, 0, loc)
	endLocal := time.Date(ey, em, ed, 0, 0, 0, 0, loc).AddDate(0, 0, 1)

	return startLocal.UnixMilli(), endLocal.UnixMilli()
}
