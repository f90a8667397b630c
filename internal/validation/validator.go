package validation

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"mfcli/pkg/contracts/domain"
)

// Status values for the overall verdict.
const (
	StatusPassed      = "PASSED"
	StatusNeedsReview = "NEEDS_REVIEW"
)

// CheckStatus is the outcome of a single check.
type CheckStatus string

const (
	CheckPassed  CheckStatus = "passed"
	CheckWarning CheckStatus = "warning"
	CheckFailed  CheckStatus = "failed"
)

// maxSamples bounds how many offending values a check quotes.
const maxSamples = 5

// Config carries the data-quality thresholds. The tolerance band accounts
// for rounding in source filings, not a bug.
type Config struct {
	PortfolioSumMin float64
	PortfolioSumMax float64
	ISINPattern     string
}

// CheckResult is the outcome of one named check.
type CheckResult struct {
	Name    string
	Status  CheckStatus
	Details []string
}

// ColumnMissing reports null counts for one column. Informational only,
// never an issue.
type ColumnMissing struct {
	Column  string
	Count   int
	Percent float64
}

// Result is the full validation report for one dataset. Running the
// validator twice on the same dataset produces an identical Result.
type Result struct {
	Status  string
	Checks  []CheckResult
	Issues  []string
	Missing []ColumnMissing
}

// Validator runs stateless data-quality checks over a consolidated dataset.
// Checks are independent and non-blocking: all run even when earlier ones
// fail.
type Validator struct {
	cfg    Config
	isinRe *regexp.Regexp
	logger *slog.Logger
}

// New creates a validator, compiling the configured ISIN pattern.
func New(cfg Config, logger *slog.Logger) (*Validator, error) {
	if logger == nil {
		logger = slog.Default()
	}
	re, err := regexp.Compile(cfg.ISINPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid ISIN pattern: %w", err)
	}
	return &Validator{cfg: cfg, isinRe: re, logger: logger}, nil
}

// Run executes every check and assembles the verdict. Findings are never
// fatal; the caller exits normally regardless.
func (v *Validator) Run(ds *domain.Dataset) *Result {
	result := &Result{}

	checks := []func(*domain.Dataset) CheckResult{
		v.checkRequiredFields,
		v.checkISINFormat,
		v.checkNumericRanges,
		v.checkPortfolioSums,
		v.checkDuplicates,
	}
	for _, check := range checks {
		cr := check(ds)
		result.Checks = append(result.Checks, cr)
		if cr.Status != CheckPassed {
			result.Issues = append(result.Issues, cr.Details...)
		}
	}

	result.Missing = missingValueReport(ds)

	if len(result.Issues) == 0 {
		result.Status = StatusPassed
	} else {
		result.Status = StatusNeedsReview
	}

	v.logger.Info("Validation complete",
		slog.String("status", result.Status),
		slog.Int("issues", len(result.Issues)),
		slog.Int("records", len(ds.Records)))
	return result
}

// checkRequiredFields verifies the five canonical columns exist.
func (v *Validator) checkRequiredFields(ds *domain.Dataset) CheckResult {
	cr := CheckResult{Name: "Required Fields", Status: CheckPassed}
	var missing []string
	for _, col := range domain.RequiredColumns {
		if !ds.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		cr.Status = CheckFailed
		cr.Details = append(cr.Details,
			fmt.Sprintf("Missing required columns: %s", strings.Join(missing, ", ")))
	}
	return cr
}

// checkISINFormat validates every non-empty ISIN against the configured
// pattern, counting violations and quoting a sample.
func (v *Validator) checkISINFormat(ds *domain.Dataset) CheckResult {
	cr := CheckResult{Name: "ISIN Format", Status: CheckPassed}
	if !ds.HasColumn(domain.ColISIN) {
		return cr
	}

	invalid := 0
	var samples []string
	for _, rec := range ds.Records {
		if rec.ISIN == "" {
			continue
		}
		if !v.isinRe.MatchString(rec.ISIN) {
			invalid++
			if len(samples) < maxSamples {
				samples = append(samples, rec.ISIN)
			}
		}
	}
	if invalid > 0 {
		cr.Status = CheckWarning
		cr.Details = append(cr.Details,
			fmt.Sprintf("Found %d invalid ISIN codes (sample: %s)", invalid, strings.Join(samples, ", ")))
	}
	return cr
}

// checkNumericRanges flags percentages outside [0,100] and negative market
// values. Violations are counted, never short-circuiting other checks.
func (v *Validator) checkNumericRanges(ds *domain.Dataset) CheckResult {
	cr := CheckResult{Name: "Numeric Ranges", Status: CheckPassed}

	if ds.HasColumn(domain.ColPercentagePortfolio) {
		outOfRange := 0
		for _, rec := range ds.Records {
			if p := rec.PercentagePortfolio; p != nil && (*p < 0 || *p > 100) {
				outOfRange++
			}
		}
		if outOfRange > 0 {
			cr.Status = CheckWarning
			cr.Details = append(cr.Details,
				fmt.Sprintf("Found %d holdings with percentage outside [0,100]", outOfRange))
		}
	}

	if ds.HasColumn(domain.ColMarketValueLakhs) {
		negative := 0
		for _, rec := range ds.Records {
			if mv := rec.MarketValueLakhs; mv != nil && *mv < 0 {
				negative++
			}
		}
		if negative > 0 {
			cr.Status = CheckWarning
			cr.Details = append(cr.Details,
				fmt.Sprintf("Found %d holdings with negative market value", negative))
		}
	}

	return cr
}

// checkPortfolioSums groups by scheme and flags any whose percentage sum
// falls outside the configured tolerance band.
func (v *Validator) checkPortfolioSums(ds *domain.Dataset) CheckResult {
	cr := CheckResult{Name: "Portfolio Sum", Status: CheckPassed}
	if !ds.HasColumn(domain.ColPercentagePortfolio) {
		return cr
	}

	sums := make(map[string]float64)
	for _, rec := range ds.Records {
		if rec.PercentagePortfolio != nil {
			sums[rec.SchemeName] += *rec.PercentagePortfolio
		}
	}

	var outliers []string
	for _, scheme := range ds.SchemeNames() {
		sum, ok := sums[scheme]
		if !ok {
			continue
		}
		if sum < v.cfg.PortfolioSumMin || sum > v.cfg.PortfolioSumMax {
			outliers = append(outliers, fmt.Sprintf("%s: %.2f%%", scheme, sum))
		}
	}
	if len(outliers) > 0 {
		cr.Status = CheckWarning
		cr.Details = append(cr.Details,
			fmt.Sprintf("Found %d schemes with unusual portfolio sum (%s)",
				len(outliers), strings.Join(outliers, "; ")))
	}
	return cr
}

// checkDuplicates flags (scheme, instrument) pairs appearing more than
// once, counting every record involved.
func (v *Validator) checkDuplicates(ds *domain.Dataset) CheckResult {
	cr := CheckResult{Name: "Duplicates", Status: CheckPassed}

	type key struct{ scheme, instrument string }
	counts := make(map[key]int)
	for _, rec := range ds.Records {
		counts[key{rec.SchemeName, rec.InstrumentName}]++
	}

	duplicated := 0
	var samples []string
	for _, rec := range ds.Records {
		if counts[key{rec.SchemeName, rec.InstrumentName}] > 1 {
			duplicated++
			if len(samples) < maxSamples {
				samples = append(samples, fmt.Sprintf("%s / %s", rec.SchemeName, rec.InstrumentName))
			}
		}
	}
	if duplicated > 0 {
		cr.Status = CheckWarning
		cr.Details = append(cr.Details,
			fmt.Sprintf("Found %d duplicate holdings (sample: %s)", duplicated, strings.Join(samples, "; ")))
	}
	return cr
}

// missingValueReport counts nulls per column. One entry per column the
// dataset carries, in column order.
func missingValueReport(ds *domain.Dataset) []ColumnMissing {
	total := len(ds.Records)
	if total == 0 {
		return nil
	}

	missing := func(isMissing func(domain.HoldingRecord) bool) int {
		n := 0
		for _, rec := range ds.Records {
			if isMissing(rec) {
				n++
			}
		}
		return n
	}

	counters := map[string]func(domain.HoldingRecord) bool{
		domain.ColAMCName:             func(r domain.HoldingRecord) bool { return r.AMCName == "" },
		domain.ColSchemeName:          func(r domain.HoldingRecord) bool { return r.SchemeName == "" },
		domain.ColInstrumentName:      func(r domain.HoldingRecord) bool { return r.InstrumentName == "" },
		domain.ColInstrumentType:      func(r domain.HoldingRecord) bool { return r.InstrumentType == "" },
		domain.ColISIN:                func(r domain.HoldingRecord) bool { return r.ISIN == "" },
		domain.ColIndustryRating:      func(r domain.HoldingRecord) bool { return r.IndustryRating == "" },
		domain.ColQuantity:            func(r domain.HoldingRecord) bool { return r.Quantity == nil },
		domain.ColMarketValueLakhs:    func(r domain.HoldingRecord) bool { return r.MarketValueLakhs == nil },
		domain.ColPercentagePortfolio: func(r domain.HoldingRecord) bool { return r.PercentagePortfolio == nil },
		domain.ColReportingDate:       func(r domain.HoldingRecord) bool { return r.ReportingDate == "" },
	}

	var report []ColumnMissing
	for _, col := range ds.Columns {
		counter, ok := counters[col]
		if !ok {
			continue
		}
		count := missing(counter)
		report = append(report, ColumnMissing{
			Column:  col,
			Count:   count,
			Percent: float64(count) / float64(total) * 100,
		})
	}
	return report
}
