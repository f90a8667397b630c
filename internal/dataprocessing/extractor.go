package dataprocessing

import (
	"strconv"
	"strings"

	"mfcli/pkg/contracts/domain"
)

// RowContext carries the per-sheet state the extractor needs.
type RowContext struct {
	AMCName       string
	SchemeName    string
	Section       domain.SectionType
	ReportingDate string
}

// columnRule binds a normalized-header predicate to the record field it
// populates. Rules are evaluated in order and the first match consumes the
// column, which makes the precedence auditable: name beats isin beats
// industry/rating and so on. Columns matching no rule are ignored.
type columnRule struct {
	field string
	match func(col string) bool
	apply func(rec *domain.HoldingRecord, raw string)
}

var columnRules = []columnRule{
	{
		field: domain.ColInstrumentName,
		match: func(col string) bool {
			if strings.Contains(col, "isin") {
				return false
			}
			return strings.Contains(col, "name") || strings.Contains(col, "security")
		},
		apply: func(rec *domain.HoldingRecord, raw string) {
			rec.InstrumentName = strings.TrimSpace(raw)
		},
	},
	{
		field: domain.ColISIN,
		match: func(col string) bool { return strings.Contains(col, "isin") },
		apply: func(rec *domain.HoldingRecord, raw string) {
			rec.ISIN = strings.TrimSpace(raw)
		},
	},
	{
		field: domain.ColIndustryRating,
		match: func(col string) bool {
			return strings.Contains(col, "industry") || strings.Contains(col, "rating")
		},
		apply: func(rec *domain.HoldingRecord, raw string) {
			rec.IndustryRating = strings.TrimSpace(raw)
		},
	},
	{
		field: domain.ColQuantity,
		match: func(col string) bool { return strings.Contains(col, "quantity") },
		apply: func(rec *domain.HoldingRecord, raw string) {
			rec.Quantity = parseOptionalFloat(raw)
		},
	},
	{
		field: domain.ColMarketValueLakhs,
		match: func(col string) bool {
			valueCol := strings.Contains(col, "market") ||
				strings.Contains(col, "fair value") ||
				strings.Contains(col, "value")
			if !valueCol {
				return false
			}
			return strings.Contains(col, "rs") ||
				strings.Contains(col, "lakhs") ||
				strings.Contains(col, "amount")
		},
		apply: func(rec *domain.HoldingRecord, raw string) {
			rec.MarketValueLakhs = parseOptionalFloat(raw)
		},
	},
	{
		field: domain.ColPercentagePortfolio,
		match: func(col string) bool {
			return strings.Contains(col, "%") || strings.Contains(col, "net assets")
		},
		apply: func(rec *domain.HoldingRecord, raw string) {
			rec.PercentagePortfolio = parseOptionalFloat(raw)
		},
	},
}

// noiseKeywords identify subtotal, total, and boilerplate rows that carry a
// value in the name column but are not holdings.
var noiseKeywords = []string{
	"total", "sub-total", "subtotal", "net current", "grand total",
	"net receivables", "net payables", "listed / awaiting",
	"privately placed", "unlisted", "benchmark", "risk-o-meter",
}

// ExtractRow maps one data row onto a holding record using the ordered
// column rules. Returns false when the row is empty, carries no instrument
// name, or its name matches a noise keyword; such rows are dropped silently.
func ExtractRow(headers []string, row []string, rc RowContext) (domain.HoldingRecord, bool) {
	if isEmptyRow(row) {
		return domain.HoldingRecord{}, false
	}

	rec := domain.HoldingRecord{
		AMCName:        rc.AMCName,
		SchemeName:     rc.SchemeName,
		InstrumentType: rc.Section,
		ReportingDate:  rc.ReportingDate,
	}

	for j, col := range headers {
		if j >= len(row) {
			break
		}
		raw := row[j]
		if strings.TrimSpace(raw) == "" {
			continue
		}
		for _, rule := range columnRules {
			if rule.match(col) {
				rule.apply(&rec, raw)
				break
			}
		}
	}

	if !isHoldingName(rec.InstrumentName) {
		return domain.HoldingRecord{}, false
	}
	return rec, true
}

// isHoldingName filters out empty, too-short, and noise instrument names.
func isHoldingName(name string) bool {
	if len(strings.TrimSpace(name)) <= 3 {
		return false
	}
	lower := strings.ToLower(name)
	for _, keyword := range noiseKeywords {
		if strings.Contains(lower, keyword) {
			return false
		}
	}
	return true
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// parseOptionalFloat parses a numeric cell, stripping thousands separators.
// A parse failure nulls the field; it never fails the row.
func parseOptionalFloat(raw string) *float64 {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	cleaned = strings.TrimSuffix(cleaned, "%")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &v
}
