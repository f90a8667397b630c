package validation

import (
	"sort"

	"github.com/montanaflynn/stats"

	"mfcli/pkg/contracts/domain"
)

// topHoldingCount is how many holdings the profile ranks by market value.
const topHoldingCount = 5

// TypeCount is one instrument type's record count.
type TypeCount struct {
	Type  domain.SectionType
	Count int
}

// MarketValueStats summarizes the market_value_lakhs column.
type MarketValueStats struct {
	Total   float64
	Average float64
	Median  float64
	Largest float64
}

// TopHolding is one entry in the largest-holdings ranking.
type TopHolding struct {
	InstrumentName      string
	SchemeName          string
	MarketValueLakhs    float64
	PercentagePortfolio *float64
}

// Profile is the informational data profile of a consolidated dataset.
type Profile struct {
	TotalHoldings    int
	UniqueSchemes    int
	ReportingDates   []string
	TypeDistribution []TypeCount
	MarketValue      *MarketValueStats
	TopHoldings      []TopHolding
}

// BuildProfile computes the data profile: record count, scheme count,
// reporting date range, instrument-type distribution, market value
// statistics, and the top holdings by market value.
func BuildProfile(ds *domain.Dataset) *Profile {
	p := &Profile{
		TotalHoldings: len(ds.Records),
		UniqueSchemes: len(ds.SchemeNames()),
	}

	dateSeen := make(map[string]bool)
	typeCounts := make(map[domain.SectionType]int)
	var values []float64
	for _, rec := range ds.Records {
		if rec.ReportingDate != "" && !dateSeen[rec.ReportingDate] {
			dateSeen[rec.ReportingDate] = true
			p.ReportingDates = append(p.ReportingDates, rec.ReportingDate)
		}
		typeCounts[rec.InstrumentType]++
		if rec.MarketValueLakhs != nil {
			values = append(values, *rec.MarketValueLakhs)
		}
	}
	sort.Strings(p.ReportingDates)

	for t, n := range typeCounts {
		p.TypeDistribution = append(p.TypeDistribution, TypeCount{Type: t, Count: n})
	}
	sort.Slice(p.TypeDistribution, func(i, j int) bool {
		if p.TypeDistribution[i].Count != p.TypeDistribution[j].Count {
			return p.TypeDistribution[i].Count > p.TypeDistribution[j].Count
		}
		return p.TypeDistribution[i].Type < p.TypeDistribution[j].Type
	})

	if len(values) > 0 {
		total, _ := stats.Sum(values)
		average, _ := stats.Mean(values)
		median, _ := stats.Median(values)
		largest, _ := stats.Max(values)
		p.MarketValue = &MarketValueStats{
			Total:   total,
			Average: average,
			Median:  median,
			Largest: largest,
		}
	}

	p.TopHoldings = topHoldings(ds, topHoldingCount)
	return p
}

// topHoldings ranks records by market value, descending. Records without a
// market value do not participate. Ties keep extraction order.
func topHoldings(ds *domain.Dataset, n int) []TopHolding {
	var ranked []TopHolding
	for _, rec := range ds.Records {
		if rec.MarketValueLakhs == nil {
			continue
		}
		ranked = append(ranked, TopHolding{
			InstrumentName:      rec.InstrumentName,
			SchemeName:          rec.SchemeName,
			MarketValueLakhs:    *rec.MarketValueLakhs,
			PercentagePortfolio: rec.PercentagePortfolio,
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MarketValueLakhs > ranked[j].MarketValueLakhs
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
