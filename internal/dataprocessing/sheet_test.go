package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mfcli/pkg/contracts/domain"
)

func schemeGrid() [][]string {
	return [][]string{
		{"Axis Bluechip Fund"},
		{"Monthly Portfolio Statement as on December 31, 2025"},
		{},
		{"Name of the Instrument", "ISIN", "Industry / Rating", "Quantity", "Market Value (Rs. in Lakhs)", "% to Net Assets"},
		{"EQUITY & EQUITY RELATED"},
		{"Listed / Awaiting Listing on Stock Exchanges"},
		{"Reliance Industries Limited", "INE002A01018", "Petroleum Products", "1,50,000", "4,405.87", "8.81"},
		{"HDFC Bank Limited", "INE040A01034", "Banks", "2,00,000", "3,390.40", "6.78"},
		{"Total", "", "", "", "7,796.27", "15.59"},
		{"DEBT INSTRUMENTS"},
		{"7.18% GOI 2033", "IN0020230085", "Sovereign", "50,000", "512.45", "1.02"},
		{"Sub-Total", "", "", "", "512.45", "1.02"},
		{"Money Market Instruments"},
		{"Kotak Mahindra Bank Limited (CD)", "INE237A016C0", "CRISIL A1+", "", "1,204.66", "2.41"},
		{"Net Receivables / (Payables)", "", "", "", "12.30", "0.02"},
		{"GRAND TOTAL", "", "", "", "9,525.68", "19.04"},
	}
}

func TestProcessSheet(t *testing.T) {
	cfg := ExtractConfig{
		AMCName:              "Axis Mutual Fund",
		DefaultReportingDate: "2025-06-30",
	}

	holdings, err := ProcessSheet(schemeGrid(), "Axis Bluechip Fund", cfg)
	require.NoError(t, err)
	require.Len(t, holdings, 4)

	names := make([]string, len(holdings))
	for i, h := range holdings {
		names[i] = h.InstrumentName
	}
	assert.Equal(t, []string{
		"Reliance Industries Limited",
		"HDFC Bank Limited",
		"7.18% GOI 2033",
		"Kotak Mahindra Bank Limited (CD)",
	}, names, "noise rows dropped, data order preserved")

	assert.Equal(t, domain.SectionEquity, holdings[0].InstrumentType)
	assert.Equal(t, domain.SectionEquity, holdings[1].InstrumentType)
	assert.Equal(t, domain.SectionDebt, holdings[2].InstrumentType)
	assert.Equal(t, domain.SectionMoneyMarket, holdings[3].InstrumentType)

	for _, h := range holdings {
		assert.Equal(t, "Axis Mutual Fund", h.AMCName)
		assert.Equal(t, "Axis Bluechip Fund", h.SchemeName)
		assert.Equal(t, "2025-12-31", h.ReportingDate, "date parsed from the title rows")
	}
}

func TestProcessSheetNoHeader(t *testing.T) {
	grid := [][]string{
		{"This sheet has notes only"},
		{"Nothing tabular here"},
	}

	_, err := ProcessSheet(grid, "Notes", ExtractConfig{AMCName: "Axis Mutual Fund"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrHeaderNotFound)
}

func TestProcessSheetRowsBeforeBanner(t *testing.T) {
	grid := [][]string{
		{"Name of the Instrument", "ISIN", "Quantity"},
		{"Orphan Holding Limited", "INE002A01018", "100"},
		{"EQUITY & EQUITY RELATED"},
		{"Reliance Industries Limited", "INE002A01018", "200"},
	}

	holdings, err := ProcessSheet(grid, "Scheme", ExtractConfig{
		AMCName:              "Axis Mutual Fund",
		DefaultReportingDate: "2025-12-31",
	})
	require.NoError(t, err)
	require.Len(t, holdings, 2)

	assert.Equal(t, domain.SectionUnknown, holdings[0].InstrumentType, "rows before any banner stay Unknown")
	assert.Equal(t, domain.SectionEquity, holdings[1].InstrumentType)
}

func TestProcessSheetUsesDefaultDate(t *testing.T) {
	grid := [][]string{
		{"Name of the Instrument", "ISIN"},
		{"Reliance Industries Limited", "INE002A01018"},
	}

	holdings, err := ProcessSheet(grid, "Scheme", ExtractConfig{
		AMCName:              "Axis Mutual Fund",
		DefaultReportingDate: "2025-12-31",
	})
	require.NoError(t, err)
	require.Len(t, holdings, 1)
	assert.Equal(t, "2025-12-31", holdings[0].ReportingDate)
}
