package domain

// Dataset is the consolidated output of one workbook run: an ordered
// sequence of holding records plus the set of columns the dataset carries.
// Records keep extraction order; scheme grouping emerges from SchemeName
// equality, not physical adjacency.
type Dataset struct {
	Columns []string
	Records []HoldingRecord
}

// HasColumn reports whether the dataset carries the named column.
func (d *Dataset) HasColumn(name string) bool {
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// PresentColumns returns the canonical columns actually populated by the
// records, in ColumnOrder. The five required columns are always present;
// optional columns appear only when at least one record carries a value.
func (d *Dataset) PresentColumns() []string {
	present := map[string]bool{
		ColAMCName:        true,
		ColSchemeName:     true,
		ColInstrumentName: true,
		ColInstrumentType: true,
		ColReportingDate:  true,
	}
	for _, r := range d.Records {
		if r.ISIN != "" {
			present[ColISIN] = true
		}
		if r.IndustryRating != "" {
			present[ColIndustryRating] = true
		}
		if r.Quantity != nil {
			present[ColQuantity] = true
		}
		if r.MarketValueLakhs != nil {
			present[ColMarketValueLakhs] = true
		}
		if r.PercentagePortfolio != nil {
			present[ColPercentagePortfolio] = true
		}
	}
	var cols []string
	for _, c := range ColumnOrder {
		if present[c] {
			cols = append(cols, c)
		}
	}
	return cols
}

// SchemeNames returns the distinct scheme names in first-seen order.
func (d *Dataset) SchemeNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, r := range d.Records {
		if !seen[r.SchemeName] {
			seen[r.SchemeName] = true
			names = append(names, r.SchemeName)
		}
	}
	return names
}
