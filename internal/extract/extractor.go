// Package extract turns syllabus PDF text into typed, dated, scored events.
package extract

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"syllabuscal/internal/config"
	appLog "syllabuscal/internal/log"
	"syllabuscal/internal/model"
	"syllabuscal/internal/ocr"
	"syllabuscal/internal/pdftext"
)

// PageSource yields per-page text for a PDF. Implementations must not fail;
// unreadable input yields no pages or pages without text.
type PageSource interface {
	Acquire(pdf []byte) []pdftext.Page
}

// Recognizer is the OCR fallback. It returns "" when no text is available.
type Recognizer interface {
	Recognize(ctx context.Context, pdf []byte) string
}

// Extractor runs the full pipeline for one document per call. It holds no
// per-call state, so one Extractor may serve concurrent calls.
type Extractor struct {
	pages   PageSource
	ocr     Recognizer
	trigger string
}

// New builds an Extractor from configuration: MuPDF then plain text
// extraction, with the configured OCR service as last resort.
func New(cfg config.Config) *Extractor {
	return NewWithSources(pdftext.DefaultChain(), ocr.NewClient(cfg.OCR), cfg.OCR.Trigger)
}

// NewWithSources wires explicit collaborators. A nil recognizer disables
// the OCR fallback.
func NewWithSources(pages PageSource, recognizer Recognizer, trigger string) *Extractor {
	if trigger != config.TriggerNoText {
		trigger = config.TriggerNoEvents
	}
	return &Extractor{pages: pages, ocr: recognizer, trigger: trigger}
}

// Extract returns the events found in pdf, sorted by date. now anchors the
// resolution of dates without a year. An empty result is not an error.
func (e *Extractor) Extract(ctx context.Context, pdf []byte, now time.Time) []model.ExtractedEvent {
	runID := uuid.NewString()
	appLog.Debug("extraction start", "run_id", runID, "bytes", len(pdf))

	pages := e.pages.Acquire(pdf)
	events := scanPages(pages, now, true)
	if len(events) > 0 {
		appLog.Info("extraction done", "run_id", runID, "pages", len(pages), "events", len(events), "ocr", false)
		return events
	}

	if !e.shouldEscalate(pages) {
		appLog.Info("extraction found no dated lines", "run_id", runID, "pages", len(pages))
		return events
	}

	appLog.Info("escalating to ocr", "run_id", runID, "pages", len(pages), "trigger", e.trigger)
	text := e.ocr.Recognize(ctx, pdf)
	if text == "" {
		return events
	}

	events = scanPages([]pdftext.Page{{Number: 1, Text: text}}, now, false)
	appLog.Info("extraction done", "run_id", runID, "events", len(events), "ocr", true)
	return events
}

func (e *Extractor) shouldEscalate(pages []pdftext.Page) bool {
	if e.ocr == nil {
		return false
	}
	if e.trigger == config.TriggerNoEvents {
		return true
	}
	return !pdftext.HasText(pages)
}

// ExtractFromPages runs segmentation through ordering over already
// acquired page text.
func ExtractFromPages(pages []pdftext.Page, now time.Time) []model.ExtractedEvent {
	return scanPages(pages, now, true)
}

type dedupKey struct {
	title string
	date  string
}

// scanPages emits events in reading order, dropping repeats of a
// (lowercased title, date) pair, then stable-sorts them by date.
// keepPage=false leaves SourcePage unset for text with no page structure.
func scanPages(pages []pdftext.Page, now time.Time, keepPage bool) []model.ExtractedEvent {
	events := make([]model.ExtractedEvent, 0)
	seen := make(map[dedupKey]struct{})

	for _, page := range pages {
		for line := range Lines(page.Text) {
			dateMatches := FindDates(line)
			if len(dateMatches) == 0 {
				continue
			}

			typ, hits := Classify(line)
			for _, dateText := range dateMatches {
				parsed, ok := NormalizeDate(dateText, now)
				if !ok {
					appLog.Debug("date candidate rejected", "page", page.Number, "text", dateText)
					continue
				}
				date := FormatDate(parsed)
				title := Title(line, dateText, typ)

				key := dedupKey{title: strings.ToLower(title), date: date}
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}

				ev := model.ExtractedEvent{
					ID:         fmt.Sprintf("evt_%d", len(events)+1),
					Title:      title,
					Date:       date,
					Type:       typ,
					Confidence: Score(dateText, hits, line),
					SourceLine: line,
				}
				if keepPage {
					n := page.Number
					ev.SourcePage = &n
				}
				events = append(events, ev)
			}
		}
	}

	slices.SortStableFunc(events, func(a, b model.ExtractedEvent) int {
		return strings.Compare(a.Date, b.Date)
	})
	return events
}
