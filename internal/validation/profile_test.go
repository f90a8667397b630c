package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mfcli/pkg/contracts/domain"
)

func profileDataset() *domain.Dataset {
	rec := func(scheme, name string, typ domain.SectionType, mv float64) domain.HoldingRecord {
		return domain.HoldingRecord{
			AMCName: "Axis Mutual Fund", SchemeName: scheme,
			InstrumentName: name, InstrumentType: typ,
			MarketValueLakhs: fp(mv), ReportingDate: "2025-12-31",
		}
	}
	ds := &domain.Dataset{
		Records: []domain.HoldingRecord{
			rec("Axis Bluechip Fund", "Reliance Industries Limited", domain.SectionEquity, 4405.87),
			rec("Axis Bluechip Fund", "HDFC Bank Limited", domain.SectionEquity, 3390.4),
			rec("Axis Bluechip Fund", "7.18% GOI 2033", domain.SectionDebt, 512.45),
			rec("Axis Midcap Fund", "Infosys Limited", domain.SectionEquity, 1530.2),
		},
	}
	ds.Columns = ds.PresentColumns()
	return ds
}

func TestBuildProfile(t *testing.T) {
	p := BuildProfile(profileDataset())

	assert.Equal(t, 4, p.TotalHoldings)
	assert.Equal(t, 2, p.UniqueSchemes)
	assert.Equal(t, []string{"2025-12-31"}, p.ReportingDates)

	require.Len(t, p.TypeDistribution, 2)
	assert.Equal(t, TypeCount{Type: domain.SectionEquity, Count: 3}, p.TypeDistribution[0])
	assert.Equal(t, TypeCount{Type: domain.SectionDebt, Count: 1}, p.TypeDistribution[1])

	require.NotNil(t, p.MarketValue)
	assert.InDelta(t, 9838.92, p.MarketValue.Total, 1e-6)
	assert.InDelta(t, 2459.73, p.MarketValue.Average, 1e-6)
	assert.InDelta(t, 2460.3, p.MarketValue.Median, 1e-6)
	assert.InDelta(t, 4405.87, p.MarketValue.Largest, 1e-6)

	require.Len(t, p.TopHoldings, 4)
	assert.Equal(t, "Reliance Industries Limited", p.TopHoldings[0].InstrumentName)
	assert.Equal(t, "HDFC Bank Limited", p.TopHoldings[1].InstrumentName)
	assert.Equal(t, "Infosys Limited", p.TopHoldings[2].InstrumentName)
}

func TestBuildProfileTopHoldingsCapped(t *testing.T) {
	ds := profileDataset()
	for i := 0; i < 4; i++ {
		extra := ds.Records[0]
		extra.InstrumentName = "Extra Holding"
		ds.Records = append(ds.Records, extra)
	}

	p := BuildProfile(ds)
	assert.Len(t, p.TopHoldings, topHoldingCount)
}

func TestBuildProfileNoMarketValues(t *testing.T) {
	ds := profileDataset()
	for i := range ds.Records {
		ds.Records[i].MarketValueLakhs = nil
	}

	p := BuildProfile(ds)
	assert.Nil(t, p.MarketValue)
	assert.Empty(t, p.TopHoldings)
}

func TestBuildProfileEmptyDataset(t *testing.T) {
	p := BuildProfile(&domain.Dataset{})
	assert.Equal(t, 0, p.TotalHoldings)
	assert.Equal(t, 0, p.UniqueSchemes)
	assert.Empty(t, p.ReportingDates)
	assert.Nil(t, p.MarketValue)
}
