package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	dps "github.com/markusmobius/go-dateparser"
)

const monthPattern = `(?:jan|january|feb|february|mar|march|apr|april|may|jun|june|jul|july|aug|august|` +
	`sep|sept|september|oct|october|nov|november|dec|december)`

const (
	monthDayPattern = monthPattern + `\s+\d{1,2}(?:,\s*\d{4})?`
	slashPattern    = `\d{1,2}/\d{1,2}(?:/\d{2,4})?`
	isoPattern      = `\d{4}-\d{2}-\d{2}`
)

// dateFamilies are applied in this order; their matches are concatenated.
var dateFamilies = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b` + monthDayPattern + `\b`),
	regexp.MustCompile(`\b` + slashPattern + `\b`),
	regexp.MustCompile(`\b` + isoPattern + `\b`),
}

// Anchored shapes accept a whole string only when it is exactly one date
// token, and capture its written components.
var (
	monthDayShape = regexp.MustCompile(`(?i)^(` + monthPattern + `)\s+(\d{1,2})(?:,\s*(\d{4}))?$`)
	slashShape    = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})(?:/(\d{2,4}))?$`)
	isoShape      = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
)

var monthsByPrefix = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// writtenDate holds the components as they appear in the text. year is 0
// when absent; yearDigits tells a two-digit year from a full one.
type writtenDate struct {
	month      time.Month
	day        int
	year       int
	yearDigits int
}

// FindDates returns every date-like substring of line, family by family.
// Duplicates are kept.
func FindDates(line string) []string {
	var matches []string
	for _, re := range dateFamilies {
		matches = append(matches, re.FindAllString(line, -1)...)
	}
	return matches
}

// NormalizeDate resolves raw to a calendar date relative to ref. Ambiguous
// input such as a month and day without a year resolves to the next
// occurrence at or after ref. Text that is not exactly one date token, or
// that names an impossible date, is rejected.
func NormalizeDate(raw string, ref time.Time) (time.Time, bool) {
	written, ok := splitDate(raw)
	if !ok || !written.valid() {
		return time.Time{}, false
	}

	cfg := &dps.Configuration{
		CurrentTime:         ref,
		PreferredDateSource: dps.Future,
		DateOrder:           dps.MDY,
	}
	dt, err := dps.Parse(cfg, raw)
	if err != nil || dt.Time.IsZero() {
		return time.Time{}, false
	}

	// The resolver clamps impossible days into range; only the written
	// month and day are accepted.
	y, m, d := dt.Time.Date()
	if !written.matches(y, m, d) {
		return time.Time{}, false
	}
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
}

// FormatDate renders a normalized date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

func splitDate(s string) (writtenDate, bool) {
	var w writtenDate
	var monthText, dayText, yearText string

	switch {
	case monthDayShape.MatchString(s):
		sub := monthDayShape.FindStringSubmatch(s)
		w.month = monthsByPrefix[strings.ToLower(sub[1][:3])]
		dayText, yearText = sub[2], sub[3]
	case slashShape.MatchString(s):
		sub := slashShape.FindStringSubmatch(s)
		monthText, dayText, yearText = sub[1], sub[2], sub[3]
	case isoShape.MatchString(s):
		sub := isoShape.FindStringSubmatch(s)
		yearText, monthText, dayText = sub[1], sub[2], sub[3]
	default:
		return w, false
	}

	if monthText != "" {
		n, _ := strconv.Atoi(monthText)
		w.month = time.Month(n)
	}
	w.day, _ = strconv.Atoi(dayText)
	if yearText != "" {
		w.year, _ = strconv.Atoi(yearText)
		w.yearDigits = len(yearText)
	}
	return w, true
}

// valid reports whether the written components name a real day. Without a
// year, February 29 is allowed since a leap year may follow.
func (w writtenDate) valid() bool {
	if w.month < time.January || w.month > time.December || w.day < 1 {
		return false
	}
	year := w.year
	if w.yearDigits != 4 {
		year = 2024
	}
	return time.Date(year, w.month, w.day, 0, 0, 0, 0, time.UTC).Day() == w.day
}

func (w writtenDate) matches(y int, m time.Month, d int) bool {
	if m != w.month || d != w.day {
		return false
	}
	switch w.yearDigits {
	case 0:
		return true
	case 2:
		return y%100 == w.year
	default:
		return y == w.year
	}
}
