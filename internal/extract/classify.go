package extract

import (
	"strings"

	"syllabuscal/internal/model"
)

type typeRule struct {
	Type     model.EventType
	Keywords []string
}

// typeRules is evaluated top to bottom; the first type with any keyword in
// the line wins, so the order here is the tie-break.
var typeRules = []typeRule{
	{Type: model.TypeExam, Keywords: []string{"exam", "midterm", "final"}},
	{Type: model.TypeQuiz, Keywords: []string{"quiz"}},
	{Type: model.TypeProject, Keywords: []string{"project", "capstone"}},
	{Type: model.TypeAssignment, Keywords: []string{"assignment", "homework", "problem set", "pset", "worksheet"}},
	{Type: model.TypeReading, Keywords: []string{"reading", "chapter", "pages"}},
	{Type: model.TypeLab, Keywords: []string{"lab", "laboratory"}},
}

// Classify returns the event type of line and the keyword that decided it.
// Lines matching no rule are TypeOther with no hits.
func Classify(line string) (model.EventType, []string) {
	lowered := strings.ToLower(line)
	for _, rule := range typeRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lowered, kw) {
				return rule.Type, []string{kw}
			}
		}
	}
	return model.TypeOther, nil
}
