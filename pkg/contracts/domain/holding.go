package domain

// SectionType identifies the holdings category a row was extracted under.
// It changes only when a section banner row is encountered and persists
// across the data rows that follow it.
type SectionType string

const (
	SectionEquity      SectionType = "Equity"
	SectionDebt        SectionType = "Debt"
	SectionMoneyMarket SectionType = "Money Market"
	SectionOther       SectionType = "Other"
	SectionUnknown     SectionType = "Unknown"
)

// HoldingRecord is one instrument position in one scheme's portfolio.
// Optional numeric fields are pointers; nil means the source cell was
// absent or failed to parse.
type HoldingRecord struct {
	AMCName             string      `json:"amc_name" validate:"required"`
	SchemeName          string      `json:"scheme_name" validate:"required"`
	InstrumentName      string      `json:"instrument_name" validate:"required"`
	InstrumentType      SectionType `json:"instrument_type"`
	ISIN                string      `json:"isin,omitempty"`
	IndustryRating      string      `json:"industry_rating,omitempty"`
	Quantity            *float64    `json:"quantity,omitempty"`
	MarketValueLakhs    *float64    `json:"market_value_lakhs,omitempty"`
	PercentagePortfolio *float64    `json:"percentage_of_portfolio,omitempty"`
	ReportingDate       string      `json:"reporting_date"`
}

// Canonical column names for the consolidated CSV.
const (
	ColAMCName             = "amc_name"
	ColSchemeName          = "scheme_name"
	ColInstrumentName      = "instrument_name"
	ColInstrumentType      = "instrument_type"
	ColISIN                = "isin"
	ColIndustryRating      = "industry_rating"
	ColQuantity            = "quantity"
	ColMarketValueLakhs    = "market_value_lakhs"
	ColPercentagePortfolio = "percentage_of_portfolio"
	ColReportingDate       = "reporting_date"
)

// ColumnOrder is the fixed output column order for the consolidated CSV.
var ColumnOrder = []string{
	ColAMCName,
	ColSchemeName,
	ColInstrumentName,
	ColInstrumentType,
	ColISIN,
	ColIndustryRating,
	ColQuantity,
	ColMarketValueLakhs,
	ColPercentagePortfolio,
	ColReportingDate,
}

// RequiredColumns are the columns every consolidated dataset must carry.
var RequiredColumns = []string{
	ColAMCName,
	ColSchemeName,
	ColInstrumentName,
	ColInstrumentType,
	ColReportingDate,
}
