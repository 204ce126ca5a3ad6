package extract

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	baseScore      = 0.40
	keywordBonus   = 0.30
	yearBonus      = 0.10
	briefLineBonus = 0.05
	deadlineBonus  = 0.10
	briefLineLimit = 80
)

var fourDigits = regexp.MustCompile(`\d{4}`)

// deadlineWords overlap with the classification keywords; a line such as
// "Quiz due Friday" collects both bonuses.
var deadlineWords = []string{"due", "deadline", "exam", "quiz"}

// Score is the heuristic plausibility of one event, in [0,1] with two
// decimals.
func Score(dateText string, keywordHits []string, line string) float64 {
	score := baseScore
	if len(keywordHits) > 0 {
		score += keywordBonus
	}
	if fourDigits.MatchString(dateText) {
		score += yearBonus
	}
	if utf8.RuneCountInString(line) < briefLineLimit {
		score += briefLineBonus
	}
	lowered := strings.ToLower(line)
	for _, w := range deadlineWords {
		if strings.Contains(lowered, w) {
			score += deadlineBonus
			break
		}
	}

	score = math.Max(0, math.Min(1, score))
	return math.Round(score*100) / 100
}
