// Package calendar derives a date-bounded calendar view from events.
package calendar

import "syllabuscal/internal/model"

// Entry converts one extracted event into the calendar entry shape.
func Entry(ev model.ExtractedEvent) model.CalendarEntry {
	return model.CalendarEntry{
		ID:         ev.ID,
		Title:      ev.Title,
		Date:       ev.Date,
		Type:       ev.Type,
		Confidence: ev.Confidence,
		SourcePage: ev.SourcePage,
		SourceLine: ev.SourceLine,
	}
}

// Entries converts events in order.
func Entries(events []model.ExtractedEvent) []model.CalendarEntry {
	out := make([]model.CalendarEntry, 0, len(events))
	for _, ev := range events {
		out = append(out, Entry(ev))
	}
	return out
}

// Assemble bounds entries by their earliest and latest date. Entries pass
// through unmodified and in the given order; callers supply date-sorted
// input. Without any dated entry both bounds are nil.
func Assemble(entries []model.CalendarEntry) model.Calendar {
	if len(entries) == 0 {
		return model.Calendar{Events: []model.CalendarEntry{}}
	}

	var start, end string
	for _, e := range entries {
		if e.Date == "" {
			continue
		}
		// YYYY-MM-DD orders lexically.
		if start == "" || e.Date < start {
			start = e.Date
		}
		if end == "" || e.Date > end {
			end = e.Date
		}
	}

	cal := model.Calendar{Events: entries}
	if start != "" {
		cal.StartDate = &start
		cal.EndDate = &end
	}
	return cal
}

// FromEvents is Assemble over converted extraction output.
func FromEvents(events []model.ExtractedEvent) model.Calendar {
	return Assemble(Entries(events))
}
