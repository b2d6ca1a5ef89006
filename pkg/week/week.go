// Package week maps calendar dates to ISO-8601 week identifiers.
package week

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// WeekStart returns the first instant of Monday of the ISO week containing t,
// in t's location. That is midnight unless a DST jump skips it.
func WeekStart(t time.Time) time.Time {
	mon := civilMonday(t)
	return StartOfDay(mon.Year(), mon.Month(), mon.Day(), t.Location())
}

// StartOfDay returns the first instant of the given calendar day in loc.
func StartOfDay(y int, m time.Month, d int, loc *time.Location) time.Time {
	s := time.Date(y, m, d, 0, 0, 0, 0, loc)
	if s.Day() != d {
		// midnight does not exist; the day begins at the zone transition
		_, end := s.ZoneBounds()
		if !end.IsZero() {
			return end
		}
	}
	return s
}

// Number returns the ISO year and week number of t.
// The ISO year is the year of the Thursday in t's week, so late-December and
// early-January dates may belong to the neighbouring year.
func Number(t time.Time) (year, week int) {
	start := civilMonday(t)
	year = start.AddDate(0, 0, 3).Year()
	firstMonday := civilMonday(time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC))
	days := int(start.Sub(firstMonday).Hours()) / 24
	return year, days/7 + 1
}

// civilMonday returns the Monday of t's week as noon UTC on that calendar date.
func civilMonday(t time.Time) time.Time {
	y, m, d := t.Date()
	c := time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
	offset := (int(c.Weekday()) + 6) % 7 // Monday=0 .. Sunday=6
	return c.AddDate(0, 0, -offset)
}

// Key formats t's ISO week as "YYYY-WW".
func Key(t time.Time) string {
	y, w := Number(t)
	return fmt.Sprintf("%d-%02d", y, w)
}

// DateKey formats t as YYYY-MM-DD in t's location.
func DateKey(t time.Time) string { return t.Format(dateLayout) }

// ParseDateKey parses YYYY-MM-DD as the start of that day in loc.
func ParseDateKey(s string, loc *time.Location) (time.Time, error) {
	d, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, err
	}
	return StartOfDay(d.Year(), d.Month(), d.Day(), loc), nil
}

// Label renders e.g. "2026 week 3 (01/12 ~ 01/18)".
func Label(weekStartDate, key string) (string, error) {
	start, err := time.Parse(dateLayout, weekStartDate)
	if err != nil {
		return "", fmt.Errorf("parse week start %q: %w", weekStartDate, err)
	}
	y, n, ok := strings.Cut(key, "-")
	if !ok {
		return "", fmt.Errorf("malformed week key %q", key)
	}
	num, err := strconv.Atoi(n)
	if err != nil {
		return "", fmt.Errorf("malformed week key %q: %w", key, err)
	}
	end := start.AddDate(0, 0, 6)
	return fmt.Sprintf("%s week %d (%s ~ %s)", y, num, start.Format("01/02"), end.Format("01/02")), nil
}
