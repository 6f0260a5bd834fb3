// Package timeutil provides a testable clock and the timestamp format used
// in SIP documents.
package timeutil

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/tikk3r/prefactor-eor/internal/logger"
)

// Clock provides the current time.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// FixedClock always returns the same instant.
type FixedClock struct {
	T time.Time
}

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time {
	return c.T
}

// isoLayout is the ISO-8601 layout without zone, matching the xs:dateTime
// values in SIP documents.
const isoLayout = "2006-01-02T15:04:05"

// FormatISO formats t in UTC as ISO-8601. Microseconds are only written
// when non-zero.
func FormatISO(t time.Time) string {
	t = t.UTC()
	s := t.Format(isoLayout)
	if us := t.Nanosecond() / 1000; us != 0 {
		s += "." + leftPad(strconv.Itoa(us), 6)
	}
	return s
}

func leftPad(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return strings.Repeat("0", n-len(s)) + s
}

// StartTime returns timestamp, in Unix seconds, formatted with FormatISO.
// An empty timestamp means now. A timestamp that cannot be converted is
// reported as a warning and replaced by the current time.
func StartTime(clock Clock, timestamp string) string {
	timestamp = strings.TrimSpace(timestamp)
	if timestamp == "" {
		return FormatISO(clock.Now())
	}
	t, ok := fromUnix(timestamp)
	if !ok {
		now := clock.Now()
		logger.Warn("start time %q is not a valid Unix timestamp, using current time %s", timestamp, FormatISO(now))
		return FormatISO(now)
	}
	return FormatISO(t)
}

// Range of years 1 through 9999.
const (
	minUnix = -62135596800
	maxUnix = 253402300799
)

func fromUnix(s string) (time.Time, bool) {
	secs, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(secs) || math.IsInf(secs, 0) {
		return time.Time{}, false
	}
	if secs < minUnix || secs > maxUnix {
		return time.Time{}, false
	}
	whole, frac := math.Modf(secs)
	return time.Unix(int64(whole), int64(math.Round(frac*1e6))*1000).UTC(), true
}
