package dataprocessing

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Date token shapes seen near the top of scheme sheets, most specific first.
// A month name with no day resolves to the last day of that month, which is
// how monthly portfolio filings are dated.
var (
	monthDayYearPattern = regexp.MustCompile(`(?i)\b(january|february|march|april|may|june|july|august|september|october|november|december)\s+(\d{1,2}),?\s+(\d{4})\b`)
	dayMonthYearPattern = regexp.MustCompile(`(?i)\b(\d{1,2})[\s-](jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*[\s-,]+(\d{4})\b`)
	numericDatePattern  = regexp.MustCompile(`\b(\d{1,2})[/-](\d{1,2})[/-](\d{4})\b`)
	monthYearPattern    = regexp.MustCompile(`(?i)\b(january|february|march|april|may|june|july|august|september|october|november|december)[\s,]+(\d{4})\b`)
)

var monthsByPrefix = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// FindReportingDate scans the first searchRows rows for a date-like token,
// parses the first one found, and returns it as an ISO date. When nothing
// parses it falls back to the configured default.
func FindReportingDate(grid [][]string, searchRows int, fallback string) string {
	limit := min(searchRows, len(grid))
	for i := 0; i < limit; i++ {
		for _, cell := range grid[i] {
			if strings.TrimSpace(cell) == "" {
				continue
			}
			if d, ok := parseDateToken(cell); ok {
				return d.Format("2006-01-02")
			}
		}
	}
	return fallback
}

// parseDateToken extracts and parses the first date token in a cell, which
// may be embedded in longer text like "Portfolio as on December 31, 2025".
func parseDateToken(cell string) (time.Time, bool) {
	if m := monthDayYearPattern.FindStringSubmatch(cell); m != nil {
		month, ok := monthFromName(m[1])
		if !ok {
			return time.Time{}, false
		}
		day, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		return buildDate(year, month, day)
	}

	if m := dayMonthYearPattern.FindStringSubmatch(cell); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, ok := monthFromName(m[2])
		if !ok {
			return time.Time{}, false
		}
		year, _ := strconv.Atoi(m[3])
		return buildDate(year, month, day)
	}

	if m := numericDatePattern.FindStringSubmatch(cell); m != nil {
		// Indian filings use day/month/year ordering.
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if month < 1 || month > 12 {
			return time.Time{}, false
		}
		return buildDate(year, time.Month(month), day)
	}

	if m := monthYearPattern.FindStringSubmatch(cell); m != nil {
		month, ok := monthFromName(m[1])
		if !ok {
			return time.Time{}, false
		}
		year, _ := strconv.Atoi(m[2])
		return lastDayOfMonth(year, month), true
	}

	return time.Time{}, false
}

func monthFromName(name string) (time.Month, bool) {
	name = strings.ToLower(name)
	if len(name) < 3 {
		return 0, false
	}
	month, ok := monthsByPrefix[name[:3]]
	return month, ok
}

// buildDate validates the day against the month, rejecting tokens like 31/11.
func buildDate(year int, month time.Month, day int) (time.Time, bool) {
	if day < 1 {
		return time.Time{}, false
	}
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if d.Month() != month || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}

func lastDayOfMonth(year int, month time.Month) time.Time {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
}
