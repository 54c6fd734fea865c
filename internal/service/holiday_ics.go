package service

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/sammyTGR/tgr-sub005/internal/dto"
)

// ── holiday calendar import ──────────────────────────────────
//
// All-day VEVENTs become closed holidays:
//   - DTSTART;VALUE=DATE (or a bare YYYYMMDD value) marks an all-day event
//   - a multi-day event yields one holiday per day, DTEND exclusive
//   - RRULE with FREQ=YEARLY marks the holiday repeat_yearly
//   - timed events are reported as skipped rows
// ─────────────────────────────────────────────────────────────

const (
	icsMaxFileSize  = 2 * 1024 * 1024
	icsFetchTimeout = 30 * time.Second
	icsMaxEventDays = 14
)

// parsedHoliday one holiday day read from a calendar
type parsedHoliday struct {
	Name         string
	Date         time.Time
	RepeatYearly bool
}

// FetchICSContent downloads a calendar; webcal:// is treated as https://.
func FetchICSContent(rawURL string) (io.ReadCloser, error) {
	u := rawURL
	if strings.HasPrefix(u, "webcal://") {
		u = "https://" + strings.TrimPrefix(u, "webcal://")
	}

	client := &http.Client{Timeout: icsFetchTimeout}
	resp, err := client.Get(u)
	if err != nil {
		return nil, fmt.Errorf("fetch calendar: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch calendar: HTTP %d", resp.StatusCode)
	}
	return struct {
		io.Reader
		io.Closer
	}{
		Reader: io.LimitReader(resp.Body, icsMaxFileSize),
		Closer: resp.Body,
	}, nil
}

// parseHolidayICS returns the holiday days of the calendar plus one row error
// per VEVENT that could not be used. Rows are numbered by VEVENT position.
func parseHolidayICS(reader io.Reader) ([]parsedHoliday, []dto.ImportRowError, error) {
	cal, err := ics.ParseCalendar(io.LimitReader(reader, icsMaxFileSize))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrHolidayCalendarInvalid, err)
	}

	var (
		holidays []parsedHoliday
		rowErrs  []dto.ImportRowError
	)
	for i, evt := range cal.Events() {
		row := i + 1

		summary := evt.GetProperty(ics.ComponentPropertySummary)
		if summary == nil || strings.TrimSpace(summary.Value) == "" {
			rowErrs = append(rowErrs, dto.ImportRowError{Row: row, Reason: "missing SUMMARY"})
			continue
		}
		name := strings.TrimSpace(summary.Value)
		if len(name) > 100 {
			name = name[:100]
		}

		start, allDay, err := icsDate(evt.GetProperty(ics.ComponentPropertyDtStart))
		if err != nil {
			rowErrs = append(rowErrs, dto.ImportRowError{Row: row, Reason: err.Error()})
			continue
		}
		if !allDay {
			rowErrs = append(rowErrs, dto.ImportRowError{Row: row, Reason: "not an all-day event"})
			continue
		}

		days := 1
		if end, endAllDay, err := icsDate(evt.GetProperty(ics.ComponentPropertyDtEnd)); err == nil && endAllDay && end.After(start) {
			days = int(end.Sub(start).Hours() / 24)
		}
		if days > icsMaxEventDays {
			rowErrs = append(rowErrs, dto.ImportRowError{Row: row, Reason: fmt.Sprintf("event spans more than %d days", icsMaxEventDays)})
			continue
		}

		yearly := false
		if rrule := evt.GetProperty(ics.ComponentPropertyRrule); rrule != nil {
			yearly = strings.Contains(strings.ToUpper(rrule.Value), "FREQ=YEARLY")
		}

		for d := 0; d < days; d++ {
			holidays = append(holidays, parsedHoliday{
				Name:         name,
				Date:         start.AddDate(0, 0, d),
				RepeatYearly: yearly,
			})
		}
	}
	return holidays, rowErrs, nil
}

// icsDate parses DTSTART/DTEND; allDay is set for VALUE=DATE values.
func icsDate(prop *ics.IANAProperty) (time.Time, bool, error) {
	if prop == nil {
		return time.Time{}, false, fmt.Errorf("missing DTSTART")
	}
	val := strings.TrimSpace(prop.Value)

	allDay := len(val) == 8
	for k, v := range prop.ICalParameters {
		if strings.EqualFold(k, "VALUE") && len(v) > 0 && strings.EqualFold(v[0], "DATE") {
			allDay = true
		}
	}

	if allDay {
		t, err := time.Parse("20060102", val[:min(len(val), 8)])
		if err != nil {
			return time.Time{}, false, fmt.Errorf("invalid date %q", val)
		}
		return t, true, nil
	}

	for _, layout := range []string{"20060102T150405Z", "20060102T150405"} {
		if t, err := time.Parse(layout, val); err == nil {
			return t, false, nil
		}
	}
	return time.Time{}, false, fmt.Errorf("invalid date %q", val)
}
