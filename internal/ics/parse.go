package ics

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	appLog "syllabuscal/internal/log"
	"syllabuscal/internal/model"
)

// Parse reads an iCalendar document, such as one produced by Render, back
// into calendar entries in document order. VEVENTs without a UID or a
// readable DTSTART are logged and skipped.
func Parse(body []byte) ([]model.CalendarEntry, error) {
	if len(body) == 0 {
		return nil, errors.New("empty ICS body")
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse ics: %w", err)
	}

	entries := make([]model.CalendarEntry, 0)
	for _, ve := range cal.Events() {
		entry, perr := parseVEvent(ve)
		if perr != nil {
			appLog.Error("ics vevent parse failed", perr)
			continue
		}
		entries = append(entries, entry)
	}

	appLog.Debug("ics parse completed", "event_count", len(entries))
	return entries, nil
}

func parseVEvent(ve *ical.VEvent) (model.CalendarEntry, error) {
	var out model.CalendarEntry

	uidProp := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uidProp == nil || uidProp.Value == "" {
		return out, errors.New("missing UID")
	}
	out.ID = uidProp.Value

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		out.Title = p.Value
	}

	dtStart := ve.GetProperty(ical.ComponentPropertyDtStart)
	if dtStart == nil {
		return out, fmt.Errorf("event %s: missing DTSTART", out.ID)
	}
	day, err := parseICSDate(dtStart.Value)
	if err != nil {
		return out, fmt.Errorf("event %s: %w", out.ID, err)
	}
	out.Date = day.Format(time.DateOnly)

	return out, nil
}

// parseICSDate accepts DATE and DATE-TIME values and keeps the calendar day
// as written.
func parseICSDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, errors.New("empty date value")
	}
	if i := strings.IndexByte(v, 'T'); i != -1 {
		v = v[:i]
	}
	return time.Parse("20060102", v)
}
