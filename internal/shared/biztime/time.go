// Package biztime provides business timezone helpers.
// All storage and transport use UTC. The business timezone is only used to
// find day boundaries for reporting.
package biztime

import (
	"fmt"
	"sync"
	"time"
)

const (
	// DefaultTimezone is used when no timezone is configured.
	DefaultTimezone = "UTC"

	// DateLayout is the label format of daily buckets.
	DateLayout = "2006-01-02"
)

var (
	bizLocation     *time.Location
	bizLocationOnce sync.Once
	initErr         error
)

// Init loads the business timezone. Only the first call has any effect.
func Init(tz string) error {
	bizLocationOnce.Do(func() {
		if tz == "" {
			tz = DefaultTimezone
		}
		bizLocation, initErr = time.LoadLocation(tz)
	})
	return initErr
}

// MustInit initializes the business timezone and panics on error.
func MustInit(tz string) {
	if err := Init(tz); err != nil {
		panic(fmt.Sprintf("failed to initialize business timezone %q: %v", tz, err))
	}
}

// Location returns the business timezone, initializing the default if needed.
func Location() *time.Location {
	if err := Init(""); err != nil {
		panic(fmt.Sprintf("biztime: failed to auto-initialize with default timezone: %v", err))
	}
	return bizLocation
}

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// StartOfDayUTC returns 00:00 of t's business day, expressed in UTC.
func StartOfDayUTC(t time.Time) time.Time {
	return StartOfDayIn(t, Location())
}

// StartOfDayIn returns 00:00 of t's day in loc, expressed in UTC.
func StartOfDayIn(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc).UTC()
}

// DayKeyIn formats t as the YYYY-MM-DD label of its day in loc.
func DayKeyIn(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateLayout)
}

// LastNDaysIn returns the labels of the n business days ending with now's
// day (oldest first) and the UTC start of the first one.
func LastNDaysIn(now time.Time, n int, loc *time.Location) ([]string, time.Time) {
	if n <= 0 {
		return nil, StartOfDayIn(now, loc)
	}
	local := now.In(loc)
	first := time.Date(local.Year(), local.Month(), local.Day()-(n-1), 0, 0, 0, 0, loc)

	labels := make([]string, 0, n)
	for i := 0; i < n; i++ {
		labels = append(labels, first.AddDate(0, 0, i).Format(DateLayout))
	}
	return labels, first.UTC()
}

// FormatInBizTimezone formats a UTC time in the business timezone.
func FormatInBizTimezone(t time.Time, layout string) string {
	return t.In(Location()).Format(layout)
}
