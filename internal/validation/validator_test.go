package validation

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mfcli/pkg/contracts/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fp(v float64) *float64 { return &v }

func testConfig() Config {
	return Config{
		PortfolioSumMin: 95,
		PortfolioSumMax: 105,
		ISINPattern:     `^[A-Z]{2}[A-Z0-9]{9}[0-9]$`,
	}
}

func newValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := New(testConfig(), discardLogger())
	require.NoError(t, err)
	return v
}

// cleanDataset sums to 100.0 per scheme and carries valid ISINs.
func cleanDataset() *domain.Dataset {
	ds := &domain.Dataset{
		Records: []domain.HoldingRecord{
			{
				AMCName: "Axis Mutual Fund", SchemeName: "Axis Bluechip Fund",
				InstrumentName: "Reliance Industries Limited", InstrumentType: domain.SectionEquity,
				ISIN: "INE002A01018", Quantity: fp(150000),
				MarketValueLakhs: fp(4405.87), PercentagePortfolio: fp(60),
				ReportingDate: "2025-12-31",
			},
			{
				AMCName: "Axis Mutual Fund", SchemeName: "Axis Bluechip Fund",
				InstrumentName: "HDFC Bank Limited", InstrumentType: domain.SectionEquity,
				ISIN: "INE040A01034", Quantity: fp(200000),
				MarketValueLakhs: fp(3390.4), PercentagePortfolio: fp(40),
				ReportingDate: "2025-12-31",
			},
		},
	}
	ds.Columns = ds.PresentColumns()
	return ds
}

func TestRunPassesOnCleanData(t *testing.T) {
	v := newValidator(t)
	result := v.Run(cleanDataset())

	assert.Equal(t, StatusPassed, result.Status)
	assert.Empty(t, result.Issues)
	require.Len(t, result.Checks, 5)
	for _, cr := range result.Checks {
		assert.Equal(t, CheckPassed, cr.Status, cr.Name)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	v := newValidator(t)
	ds := cleanDataset()
	ds.Records[0].ISIN = "BOGUS"

	first := v.Run(ds)
	second := v.Run(ds)
	assert.Equal(t, first, second)
}

func TestCheckRequiredFields(t *testing.T) {
	v := newValidator(t)

	ds := cleanDataset()
	ds.Columns = []string{domain.ColAMCName, domain.ColSchemeName, domain.ColInstrumentName}

	result := v.Run(ds)
	assert.Equal(t, StatusNeedsReview, result.Status)

	cr := result.Checks[0]
	require.Equal(t, "Required Fields", cr.Name)
	assert.Equal(t, CheckFailed, cr.Status)
	require.Len(t, cr.Details, 1)
	assert.Contains(t, cr.Details[0], domain.ColInstrumentType)
	assert.Contains(t, cr.Details[0], domain.ColReportingDate)
}

func TestCheckISINFormat(t *testing.T) {
	v := newValidator(t)

	t.Run("invalid isin flagged", func(t *testing.T) {
		ds := cleanDataset()
		ds.Records[1].ISIN = "INVALIDISIN"

		cr := v.checkISINFormat(ds)
		assert.Equal(t, CheckWarning, cr.Status)
		require.Len(t, cr.Details, 1)
		assert.Contains(t, cr.Details[0], "1 invalid ISIN")
		assert.Contains(t, cr.Details[0], "INVALIDISIN")
	})

	t.Run("empty isin is not a violation", func(t *testing.T) {
		ds := cleanDataset()
		ds.Records[1].ISIN = ""

		cr := v.checkISINFormat(ds)
		assert.Equal(t, CheckPassed, cr.Status)
	})

	t.Run("valid isins pass", func(t *testing.T) {
		cr := v.checkISINFormat(cleanDataset())
		assert.Equal(t, CheckPassed, cr.Status)
	})
}

func TestCheckNumericRanges(t *testing.T) {
	v := newValidator(t)

	t.Run("percentage above 100", func(t *testing.T) {
		ds := cleanDataset()
		ds.Records[0].PercentagePortfolio = fp(110)

		cr := v.checkNumericRanges(ds)
		assert.Equal(t, CheckWarning, cr.Status)
		require.Len(t, cr.Details, 1)
		assert.Contains(t, cr.Details[0], "percentage outside [0,100]")
	})

	t.Run("negative market value", func(t *testing.T) {
		ds := cleanDataset()
		ds.Records[1].MarketValueLakhs = fp(-5)

		cr := v.checkNumericRanges(ds)
		assert.Equal(t, CheckWarning, cr.Status)
		require.Len(t, cr.Details, 1)
		assert.Contains(t, cr.Details[0], "negative market value")
	})

	t.Run("nil values do not trip the check", func(t *testing.T) {
		ds := cleanDataset()
		ds.Records[0].PercentagePortfolio = nil
		ds.Records[0].MarketValueLakhs = nil

		cr := v.checkNumericRanges(ds)
		assert.Equal(t, CheckPassed, cr.Status)
	})
}

func TestCheckPortfolioSums(t *testing.T) {
	v := newValidator(t)

	t.Run("within band passes", func(t *testing.T) {
		ds := cleanDataset()
		ds.Records[0].PercentagePortfolio = fp(59.8)
		// 99.8 total, inside [95,105]
		cr := v.checkPortfolioSums(ds)
		assert.Equal(t, CheckPassed, cr.Status)
	})

	t.Run("outlier scheme flagged once", func(t *testing.T) {
		ds := cleanDataset()
		ds.Records = append(ds.Records, domain.HoldingRecord{
			AMCName: "Axis Mutual Fund", SchemeName: "Axis Midcap Fund",
			InstrumentName: "Infosys Limited", InstrumentType: domain.SectionEquity,
			ISIN: "INE009A01021", PercentagePortfolio: fp(110),
			ReportingDate: "2025-12-31",
		})

		cr := v.checkPortfolioSums(ds)
		assert.Equal(t, CheckWarning, cr.Status)
		require.Len(t, cr.Details, 1)
		assert.Contains(t, cr.Details[0], "1 schemes with unusual portfolio sum")
		assert.Contains(t, cr.Details[0], "Axis Midcap Fund: 110.00%")
		assert.NotContains(t, cr.Details[0], "Axis Bluechip Fund")
	})

	t.Run("scheme with no percentages is skipped", func(t *testing.T) {
		ds := cleanDataset()
		for i := range ds.Records {
			ds.Records[i].PercentagePortfolio = nil
		}
		cr := v.checkPortfolioSums(ds)
		assert.Equal(t, CheckPassed, cr.Status)
	})
}

func TestCheckDuplicates(t *testing.T) {
	v := newValidator(t)

	t.Run("duplicate pair counts both records", func(t *testing.T) {
		ds := cleanDataset()
		dup := ds.Records[0]
		ds.Records = append(ds.Records, dup)

		cr := v.checkDuplicates(ds)
		assert.Equal(t, CheckWarning, cr.Status)
		require.Len(t, cr.Details, 1)
		assert.Contains(t, cr.Details[0], "2 duplicate holdings")
		assert.Contains(t, cr.Details[0], "Reliance Industries Limited")
	})

	t.Run("same instrument across schemes is fine", func(t *testing.T) {
		ds := cleanDataset()
		other := ds.Records[0]
		other.SchemeName = "Axis Midcap Fund"
		ds.Records = append(ds.Records, other)

		cr := v.checkDuplicates(ds)
		assert.Equal(t, CheckPassed, cr.Status)
	})
}

func TestMissingValueReport(t *testing.T) {
	ds := cleanDataset()
	ds.Records[0].ISIN = ""
	ds.Records[1].Quantity = nil

	report := missingValueReport(ds)
	require.Len(t, report, len(ds.Columns))

	byColumn := make(map[string]ColumnMissing, len(report))
	for _, cm := range report {
		byColumn[cm.Column] = cm
	}

	assert.Equal(t, 1, byColumn[domain.ColISIN].Count)
	assert.InDelta(t, 50, byColumn[domain.ColISIN].Percent, 1e-9)
	assert.Equal(t, 1, byColumn[domain.ColQuantity].Count)
	assert.Equal(t, 0, byColumn[domain.ColInstrumentName].Count)
}

func TestMissingValuesAreInformationalOnly(t *testing.T) {
	v := newValidator(t)
	ds := cleanDataset()
	ds.Records[0].ISIN = ""
	ds.Records[1].ISIN = ""

	result := v.Run(ds)
	assert.Equal(t, StatusPassed, result.Status, "nulls alone never fail validation")
	assert.NotEmpty(t, result.Missing)
}

func TestNewRejectsBadPattern(t *testing.T) {
	_, err := New(Config{ISINPattern: "("}, discardLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid ISIN pattern")
}
