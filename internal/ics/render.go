// Package ics converts calendars to and from the iCalendar text format.
package ics

import (
	"time"

	ical "github.com/arran4/golang-ical"

	appLog "syllabuscal/internal/log"
	"syllabuscal/internal/model"
)

const (
	// ProductID identifies this generator in every document.
	ProductID = "-//StudyFlow//Syllabus Calendar//EN"
	// MediaType is the content type of rendered documents.
	MediaType = "text/calendar"

	stampLayout = "20060102T150405Z"
)

// Render serializes cal as an iCalendar document named title. now is taken
// once, in UTC at second precision, and stamped on the document and on
// every event. Each entry becomes an all-day VEVENT. Every line, the last
// one included, ends in CRLF.
func Render(cal model.Calendar, title string, now time.Time) string {
	stamp := now.UTC().Truncate(time.Second)

	doc := ical.NewCalendar()
	doc.SetProductId(ProductID)
	doc.SetXWRCalName(title)
	doc.CalendarProperties = append(doc.CalendarProperties, ical.CalendarProperty{
		BaseProperty: ical.BaseProperty{
			IANAToken: "DTSTAMP",
			Value:     stamp.Format(stampLayout),
		},
	})

	for _, entry := range cal.Events {
		day, err := time.Parse(time.DateOnly, entry.Date)
		if err != nil {
			appLog.Error("ics render skipped entry without a valid date", err, "id", entry.ID)
			continue
		}

		ev := doc.AddEvent(entry.ID)
		ev.SetDtStampTime(stamp)
		ev.SetAllDayStartAt(day)
		ev.SetSummary(entry.Title)
	}

	return doc.Serialize(ical.WithNewLineWindows)
}
