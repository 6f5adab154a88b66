// internal/timefmt/timefmt.go
package timefmt

import (
	"time"
	"unicode/utf8"
)

// Display buffer limits, in bytes, excluding the terminator.
const (
	MaxTimeLen    = 6
	MaxDateLen    = 15
	MaxWeekdayLen = 15
)

// Reading is the text shown for one clock tick.
// Derived only: recomputed on every tick, never stored.
type Reading struct {
	Time    string
	Date    string
	Weekday string
}

// Format renders t in its own location.
// 12h mode drops the leading zero of the hour ("09:30" -> "9:30").
func Format(t time.Time, use24h bool) Reading {
	var hm string
	if use24h {
		hm = t.Format("15:04")
	} else {
		hm = t.Format("03:04")
		if len(hm) > 0 && hm[0] == '0' {
			hm = hm[1:]
		}
	}

	return Reading{
		Time:    clip(hm, MaxTimeLen),
		Date:    clip(t.Format("January 2"), MaxDateLen),
		Weekday: clip(t.Format("Monday"), MaxWeekdayLen),
	}
}

// FormatUnix formats a seconds-since-epoch timestamp in loc.
// A nil loc means time.Local.
func FormatUnix(sec int64, loc *time.Location, use24h bool) Reading {
	if loc == nil {
		loc = time.Local
	}
	return Format(time.Unix(sec, 0).In(loc), use24h)
}

// clip truncates s to at most n bytes without splitting a rune.
func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	s = s[:n]
	for len(s) > 0 && !utf8.ValidString(s) {
		s = s[:len(s)-1]
	}
	return s
}
