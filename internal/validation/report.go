package validation

import (
	"fmt"
	"io"
	"strings"
)

const reportRule = "============================================================"

// Render writes the validation report as text.
func (r *Result) Render(w io.Writer) {
	fmt.Fprintln(w, reportRule)
	fmt.Fprintln(w, "DATA QUALITY VALIDATION REPORT")
	fmt.Fprintln(w, reportRule)

	for _, check := range r.Checks {
		switch check.Status {
		case CheckPassed:
			fmt.Fprintf(w, "[PASS] %s\n", check.Name)
		case CheckWarning:
			fmt.Fprintf(w, "[WARN] %s\n", check.Name)
		case CheckFailed:
			fmt.Fprintf(w, "[FAIL] %s\n", check.Name)
		}
		for _, detail := range check.Details {
			fmt.Fprintf(w, "       %s\n", detail)
		}
	}

	if len(r.Missing) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Missing Value Report:")
		fmt.Fprintln(w, strings.Repeat("-", 60))
		for _, m := range r.Missing {
			if m.Count > 0 {
				fmt.Fprintf(w, "   %-30s: %5d (%5.1f%%)\n", m.Column, m.Count, m.Percent)
			}
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, reportRule)
	fmt.Fprintln(w, "VALIDATION SUMMARY")
	fmt.Fprintln(w, reportRule)
	if r.Status == StatusPassed {
		fmt.Fprintln(w, "All validation checks passed.")
	} else {
		fmt.Fprintf(w, "Found %d issue(s):\n", len(r.Issues))
		for i, issue := range r.Issues {
			fmt.Fprintf(w, "   %d. %s\n", i+1, issue)
		}
	}
	fmt.Fprintf(w, "Status: %s\n", r.Status)
	fmt.Fprintln(w, reportRule)
}

// Render writes the data profile as text.
func (p *Profile) Render(w io.Writer) {
	fmt.Fprintln(w, reportRule)
	fmt.Fprintln(w, "DATA PROFILE")
	fmt.Fprintln(w, reportRule)

	fmt.Fprintf(w, "Total Holdings:  %d\n", p.TotalHoldings)
	fmt.Fprintf(w, "Unique Schemes:  %d\n", p.UniqueSchemes)
	fmt.Fprintf(w, "Reporting Dates: %s\n", strings.Join(p.ReportingDates, ", "))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Instrument Type Distribution:")
	for _, tc := range p.TypeDistribution {
		fmt.Fprintf(w, "   %-15s %d\n", tc.Type, tc.Count)
	}

	if p.MarketValue != nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Market Value Statistics (Rs Lakhs):")
		fmt.Fprintf(w, "   Total Value:     %.2f\n", p.MarketValue.Total)
		fmt.Fprintf(w, "   Average Holding: %.2f\n", p.MarketValue.Average)
		fmt.Fprintf(w, "   Median Holding:  %.2f\n", p.MarketValue.Median)
		fmt.Fprintf(w, "   Largest Holding: %.2f\n", p.MarketValue.Largest)
	}

	if len(p.TopHoldings) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Top %d Holdings by Value:\n", len(p.TopHoldings))
		for _, h := range p.TopHoldings {
			pct := "-"
			if h.PercentagePortfolio != nil {
				pct = fmt.Sprintf("%.2f%%", *h.PercentagePortfolio)
			}
			fmt.Fprintf(w, "   %-40s %-30s %12.2f %8s\n",
				h.InstrumentName, h.SchemeName, h.MarketValueLakhs, pct)
		}
	}
	fmt.Fprintln(w, reportRule)
}
