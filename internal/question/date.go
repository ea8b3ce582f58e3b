package question

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateType parses free-text dates on a best-effort basis. Input that
// cannot be parsed yields no date, never an error: callers must treat a
// missing result as "unparsed", not "blank".
type DateType struct {
	base
}

func newDate(r *Registry) Type {
	t := &DateType{base: newBase(r, KindDate, "Date")}
	return t
}

// FormattedAnswer returns the parsed date for a raw value.
func (t *DateType) FormattedAnswer(raw string) (time.Time, bool) {
	return ParseDate(raw)
}

// CanonicalizeForStorage normalizes a parseable value to ISO form and
// leaves anything else untouched.
func (t *DateType) CanonicalizeForStorage(raw string) (string, error) {
	if d, ok := ParseDate(raw); ok {
		return d.Format("2006-01-02"), nil
	}
	return raw, nil
}

var digitRuns = regexp.MustCompile(`\d+`)

// ParseDate tries, in order: ISO YYYY-MM-DD, then a free-text scan for
// a month name plus a 4-digit year and a 1-2 digit day. When the text
// carries several short digit runs the first is taken as the day; the
// first 4-digit run is the year.
func ParseDate(raw string) (time.Time, bool) {
	trimmed := strings.TrimSpace(raw)
	if d, err := time.Parse("2006-01-02", trimmed); err == nil {
		return d, true
	}
	month, ok := findMonth(trimmed)
	if !ok {
		return time.Time{}, false
	}
	year, day := 0, 0
	for _, run := range digitRuns.FindAllString(trimmed, -1) {
		switch {
		case year == 0 && len(run) == 4:
			year, _ = strconv.Atoi(run)
		case day == 0 && len(run) <= 2:
			day, _ = strconv.Atoi(run)
		}
	}
	if year == 0 || day == 0 {
		return time.Time{}, false
	}
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	// Reject overflowed days such as "31 June".
	if d.Day() != day || d.Month() != month || d.Year() != year {
		return time.Time{}, false
	}
	return d, true
}

// findMonth scans for a full month name first, falling back to the
// 3-letter abbreviation.
func findMonth(raw string) (time.Month, bool) {
	lower := strings.ToLower(raw)
	for m := time.January; m <= time.December; m++ {
		if strings.Contains(lower, strings.ToLower(m.String())) {
			return m, true
		}
	}
	for m := time.January; m <= time.December; m++ {
		if strings.Contains(lower, strings.ToLower(m.String()[:3])) {
			return m, true
		}
	}
	return 0, false
}
