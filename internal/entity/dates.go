package entity

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// monthNames is ordered so extraction output is deterministic.
var monthNames = []struct {
	name  string
	month time.Month
}{
	{"january", time.January}, {"february", time.February}, {"march", time.March},
	{"april", time.April}, {"may", time.May}, {"june", time.June},
	{"july", time.July}, {"august", time.August}, {"september", time.September},
	{"october", time.October}, {"november", time.November}, {"december", time.December},
}

// relativePhrase maps a relative date phrase to the span it denotes.
type relativePhrase struct {
	phrase string
	span   func(now time.Time) (time.Time, time.Time)
}

var relativePhrases = []relativePhrase{
	{"today", func(now time.Time) (time.Time, time.Time) {
		return startOfDay(now), now
	}},
	{"yesterday", func(now time.Time) (time.Time, time.Time) {
		y := startOfDay(now).AddDate(0, 0, -1)
		return y, y.AddDate(0, 0, 1)
	}},
	{"last week", func(now time.Time) (time.Time, time.Time) {
		return now.AddDate(0, 0, -7), now
	}},
	{"last month", func(now time.Time) (time.Time, time.Time) {
		return now.AddDate(0, -1, 0), now
	}},
	{"last year", func(now time.Time) (time.Time, time.Time) {
		return now.AddDate(-1, 0, 0), now
	}},
	{"this year", func(now time.Time) (time.Time, time.Time) {
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()), now
	}},
}

// extractDateRanges recognizes relative phrases ("last year"), explicit
// years ("2022"), and named months in a query. Order of recognition is
// fixed so repeated extraction is deterministic.
func extractDateRanges(query string, now time.Time) []DateRange {
	lower := strings.ToLower(query)
	var ranges []DateRange

	for _, rp := range relativePhrases {
		if strings.Contains(lower, rp.phrase) {
			start, end := rp.span(now)
			ranges = append(ranges, DateRange{Start: start, End: end, Label: rp.phrase})
		}
	}

	for _, match := range yearPattern.FindAllString(lower, -1) {
		year, err := strconv.Atoi(match)
		if err != nil {
			continue
		}
		start := time.Date(year, time.January, 1, 0, 0, 0, 0, now.Location())
		ranges = append(ranges, DateRange{
			Start: start,
			End:   start.AddDate(1, 0, 0),
			Label: match,
		})
	}

	for _, m := range monthNames {
		if !containsWord(lower, m.name) {
			continue
		}
		// "may" is too ambiguous as a bare word ("may vote on..."); only
		// treat it as a month when a year is also present.
		if m.name == "may" && len(yearPattern.FindAllString(lower, -1)) == 0 {
			continue
		}
		start := time.Date(now.Year(), m.month, 1, 0, 0, 0, 0, now.Location())
		if start.After(now) {
			start = start.AddDate(-1, 0, 0)
		}
		ranges = append(ranges, DateRange{
			Start: start,
			End:   start.AddDate(0, 1, 0),
			Label: m.name,
		})
	}

	return ranges
}

// HasDatePhrase reports whether the query contains any recognizable date
// signal. It is the gate used by intent classification.
func HasDatePhrase(query string, now time.Time) bool {
	return len(extractDateRanges(query, now)) > 0
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
