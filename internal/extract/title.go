package extract

import (
	"regexp"
	"strings"

	"syllabuscal/internal/model"
)

const titleTrimSet = " -:|\t"

var multiSpace = regexp.MustCompile(`\s{2,}`)

// Title removes the first occurrence of dateText from line and cleans up the
// remainder. An empty result falls back to the capitalized type name.
func Title(line, dateText string, typ model.EventType) string {
	cleaned := strings.Replace(line, dateText, "", 1)
	cleaned = strings.Trim(cleaned, titleTrimSet)
	cleaned = strings.TrimSpace(multiSpace.ReplaceAllString(cleaned, " "))
	if cleaned != "" {
		return cleaned
	}
	return typ.Label()
}
