// Package period turns human period strings like "11mo", "2y" or "30d"
// into absolute [start, end] calendar date windows.
package period

import (
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Default counts applied when the numeric prefix is absent or zero.
const (
	defaultMonths = 11
	defaultYears  = 1
	defaultDays   = 30
)

// Resolve parses a period string and returns the [start, end] window as
// ISO dates, with end fixed to today (UTC). Parsing is deliberately
// lenient: an unrecognized suffix or malformed count degrades to the
// 11-month default window instead of failing.
func Resolve(p string) (start, end string) {
	return ResolveAt(p, time.Now().UTC())
}

// ResolveAt is Resolve with an injectable clock.
func ResolveAt(p string, now time.Time) (start, end string) {
	now = now.UTC()
	end = now.Format(dateLayout)

	s := strings.ToLower(strings.TrimSpace(p))
	switch {
	case strings.HasSuffix(s, "mo"):
		months := count(strings.TrimSuffix(s, "mo"), defaultMonths)
		start = now.AddDate(0, -months, 0).Format(dateLayout)
	case strings.HasSuffix(s, "y"):
		years := count(strings.TrimSuffix(s, "y"), defaultYears)
		start = now.AddDate(-years, 0, 0).Format(dateLayout)
	case strings.HasSuffix(s, "d"):
		days := count(strings.TrimSuffix(s, "d"), defaultDays)
		start = now.AddDate(0, 0, -days).Format(dateLayout)
	default:
		start = now.AddDate(0, -defaultMonths, 0).Format(dateLayout)
	}
	return start, end
}

func count(prefix string, def int) int {
	n, err := strconv.Atoi(prefix)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
