package dataprocessing

import (
	"regexp"
	"strings"

	"mfcli/pkg/contracts/domain"
)

// headerKeywords are the column names that identify a header row. A row is
// a header when at least two distinct keywords appear in its cell text.
var headerKeywords = []string{"name", "isin", "quantity", "rating", "industry", "instrument"}

// isinPattern is the strict 12-character ISIN form: two letters, nine
// alphanumerics, one check digit.
var isinPattern = regexp.MustCompile(`^[A-Z]{2}[A-Z0-9]{9}[0-9]$`)

// bannerKeywords mark non-data section rows. Matching is done against the
// concatenation of the first two cells only.
var bannerKeywords = []string{
	"equity", "debt instruments", "government securities", "corporate bonds",
	"money market", "net current", "listed", "unlisted", "awaiting listing",
	"privately placed", "reverse repo", "treps", "treasury",
	"certificate of deposit", "commercial paper",
}

// sectionRule maps a banner keyword to the section it opens. The list is
// ordered: the first matching rule wins, so Equity keywords take precedence
// over Debt, and Debt over Money Market.
type sectionRule struct {
	keyword string
	section domain.SectionType
}

var sectionRules = []sectionRule{
	{"equity", domain.SectionEquity},
	{"stock", domain.SectionEquity},
	{"debt instruments", domain.SectionDebt},
	{"government securities", domain.SectionDebt},
	{"bond", domain.SectionDebt},
	{"debenture", domain.SectionDebt},
	{"money market", domain.SectionMoneyMarket},
	{"cash", domain.SectionMoneyMarket},
	{"liquid", domain.SectionMoneyMarket},
	{"reverse repo", domain.SectionMoneyMarket},
	{"treps", domain.SectionMoneyMarket},
	{"treasury bill", domain.SectionMoneyMarket},
	{"certificate of deposit", domain.SectionMoneyMarket},
	{"commercial paper", domain.SectionMoneyMarket},
}

// FindHeaderRow scans the first window rows of the grid for the header row:
// the first row whose case-folded cell text contains at least two distinct
// header keywords. Returns the row index and whether one was found.
func FindHeaderRow(grid [][]string, window int) (int, bool) {
	if window <= 0 {
		window = 20
	}
	limit := min(window, len(grid))
	for i := 0; i < limit; i++ {
		var parts []string
		for _, cell := range grid[i] {
			if s := strings.TrimSpace(cell); s != "" {
				parts = append(parts, strings.ToLower(s))
			}
		}
		text := strings.Join(parts, " ")

		matches := 0
		for _, keyword := range headerKeywords {
			if strings.Contains(text, keyword) {
				matches++
			}
		}
		if matches >= 2 {
			return i, true
		}
	}
	return 0, false
}

// IsSectionHeader reports whether the row is a section banner. Only the
// first two cells are inspected for banner keywords; a strict ISIN anywhere
// in the row disqualifies it, since real holdings rows sometimes repeat
// section words.
func IsSectionHeader(row []string) bool {
	combined := firstTwoCells(row)

	found := false
	for _, keyword := range bannerKeywords {
		if strings.Contains(combined, keyword) {
			found = true
			break
		}
	}
	if !found {
		return false
	}

	for _, cell := range row {
		if isinPattern.MatchString(strings.TrimSpace(cell)) {
			return false
		}
	}
	return true
}

// ClassifySection maps a banner row to its section type using the ordered
// rule list. Rows matching no rule classify as Other; Unknown is only ever
// the initial state before any banner is seen.
func ClassifySection(row []string) domain.SectionType {
	combined := firstTwoCells(row)
	for _, rule := range sectionRules {
		if strings.Contains(combined, rule.keyword) {
			return rule.section
		}
	}
	return domain.SectionOther
}

// firstTwoCells joins the first two cells of a row, case-folded.
func firstTwoCells(row []string) string {
	var first, second string
	if len(row) > 0 {
		first = strings.ToLower(strings.TrimSpace(row[0]))
	}
	if len(row) > 1 {
		second = strings.ToLower(strings.TrimSpace(row[1]))
	}
	return first + " " + second
}
