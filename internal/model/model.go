package model

// EventType is the category assigned to an extracted syllabus line.
type EventType string

const (
	TypeExam       EventType = "exam"
	TypeQuiz       EventType = "quiz"
	TypeProject    EventType = "project"
	TypeAssignment EventType = "assignment"
	TypeReading    EventType = "reading"
	TypeLab        EventType = "lab"
	TypeOther      EventType = "other"
)

// Label is the capitalized type name used as a fallback title ("Exam").
func (t EventType) Label() string {
	if t == "" {
		return ""
	}
	s := string(t)
	if c := s[0]; c >= 'a' && c <= 'z' {
		return string(c-'a'+'A') + s[1:]
	}
	return s
}

// ExtractedEvent is one dated candidate produced by a single extraction run.
// Values are never mutated after the run returns them.
type ExtractedEvent struct {
	// ID is "evt_<n>", assigned in emission order before sorting. It is only
	// unique within one run.
	ID    string    `json:"id"`
	Title string    `json:"title"`
	Date  string    `json:"date"` // YYYY-MM-DD
	Type  EventType `json:"type"`

	Confidence float64 `json:"confidence"`

	// SourcePage is nil for events recovered from OCR text, which has no
	// page structure.
	SourcePage *int   `json:"source_page,omitempty"`
	SourceLine string `json:"source_line"`
}

// CalendarEntry is the shape calendar assembly and ICS rendering operate on.
// Date may be empty for entries that did not come from an extraction run.
type CalendarEntry struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Date       string    `json:"date,omitempty"`
	Type       EventType `json:"type,omitempty"`
	Confidence float64   `json:"confidence"`
	SourcePage *int      `json:"source_page,omitempty"`
	SourceLine string    `json:"source_line,omitempty"`
}

// Calendar bundles entries with their date bounds. Bounds are both nil or
// both set, and StartDate <= EndDate when set.
type Calendar struct {
	StartDate *string         `json:"start_date"`
	EndDate   *string         `json:"end_date"`
	Events    []CalendarEntry `json:"events"`
}
