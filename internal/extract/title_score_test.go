package extract

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"syllabuscal/internal/model"
)

func TestTitle(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		dateText string
		typ      model.EventType
		want     string
	}{
		{name: "separator trimmed", line: "Midterm Exam - March 3, 2025", dateText: "March 3, 2025", typ: model.TypeExam, want: "Midterm Exam"},
		{name: "leading date and pipes", line: "3/10 | Quiz 2:", dateText: "3/10", typ: model.TypeQuiz, want: "Quiz 2"},
		{name: "only first occurrence removed", line: "Read ch. 3 2/1 and 2/1", dateText: "2/1", typ: model.TypeReading, want: "Read ch. 3 and 2/1"},
		{name: "inner spaces collapsed", line: "Lab\t  report   due 4/4", dateText: "4/4", typ: model.TypeLab, want: "Lab report due"},
		{name: "date only falls back to type", line: "March 3, 2025", dateText: "March 3, 2025", typ: model.TypeExam, want: "Exam"},
		{name: "separators only falls back", line: " - 2024-02-14 :", dateText: "2024-02-14", typ: model.TypeOther, want: "Other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Title(tt.line, tt.dateText, tt.typ))
		})
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name     string
		dateText string
		hits     []string
		line     string
		want     float64
	}{
		{name: "all signals", dateText: "March 3, 2025", hits: []string{"exam"}, line: "Midterm exam March 3, 2025", want: 0.95},
		{name: "keyword and deadline word double count", dateText: "3/10", hits: []string{"quiz"}, line: "Quiz due 3/10", want: 0.85},
		{name: "bare line", dateText: "3/10", line: "Office hours 3/10", want: 0.45},
		{name: "deadline word without keyword", dateText: "3/10", line: "Essay deadline 3/10", want: 0.55},
		{name: "long line", dateText: "3/10", line: strings.Repeat("x", 80) + " 3/10", want: 0.40},
		{name: "year in iso date", dateText: "2024-02-14", hits: []string{"chapter"}, line: "Chapter 2 2024-02-14", want: 0.85},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.dateText, tt.hits, tt.line)
			assert.InDelta(t, tt.want, got, 1e-9)
			assertTwoDecimals(t, got)
		})
	}
}

func assertTwoDecimals(t *testing.T, v float64) {
	t.Helper()
	assert.GreaterOrEqual(t, v, 0.0)
	assert.LessOrEqual(t, v, 1.0)
	scaled := v * 100
	assert.InDelta(t, math.Round(scaled), scaled, 1e-9, "confidence %v is not a multiple of 0.01", v)
}
