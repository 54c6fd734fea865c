package service

import (
	"errors"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

var (
	ErrInvalidDate      = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidDateRange = errors.New("end date must not be before start date")
)

// parseDate parses YYYY-MM-DD as UTC midnight.
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// parseDateRange parses an optional inclusive range; empty bounds stay nil.
func parseDateRange(start, end string) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if start != "" {
		t, err := parseDate(start)
		if err != nil {
			return nil, nil, err
		}
		from = &t
	}
	if end != "" {
		t, err := parseDate(end)
		if err != nil {
			return nil, nil, err
		}
		to = &t
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, ErrInvalidDateRange
	}
	return from, to, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func formatTimestampPtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTimestamp(*t)
}

// dateOf truncates t to UTC midnight of its calendar day.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// weekStart Monday of the week containing d.
func weekStart(d time.Time) time.Time {
	d = dateOf(d)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// parseClock accepts HH:MM or HH:MM:SS.
func parseClock(s string) (time.Time, bool) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// normalizeClock renders a clock value as HH:MM ("9:00:00" -> "09:00").
func normalizeClock(s string) string {
	if t, ok := parseClock(strings.TrimSpace(s)); ok {
		return t.Format("15:04")
	}
	return s
}

// clockBefore reports whether a is strictly earlier than b.
func clockBefore(a, b string) bool {
	ta, okA := parseClock(a)
	tb, okB := parseClock(b)
	return okA && okB && ta.Before(tb)
}

func clockValue(p *string) string {
	if p == nil {
		return ""
	}
	return normalizeClock(*p)
}

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }
