package exporter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"mfcli/pkg/contracts/domain"
)

// ReadConsolidated reads a previously written consolidated CSV back into a
// dataset. The dataset's Columns reflect the file's header, so validation
// of required columns operates on what the file actually carries.
func ReadConsolidated(filePath string) (*domain.Dataset, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read consolidated file: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	reader := csv.NewReader(bytes.NewReader(data))
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse consolidated file: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("consolidated file %s is empty", filePath)
	}

	header := rows[0]
	cols := make([]string, len(header))
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		cols[i] = name
		index[name] = i
	}

	cell := func(row []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	records := make([]domain.HoldingRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, domain.HoldingRecord{
			AMCName:             cell(row, domain.ColAMCName),
			SchemeName:          cell(row, domain.ColSchemeName),
			InstrumentName:      cell(row, domain.ColInstrumentName),
			InstrumentType:      domain.SectionType(cell(row, domain.ColInstrumentType)),
			ISIN:                cell(row, domain.ColISIN),
			IndustryRating:      cell(row, domain.ColIndustryRating),
			Quantity:            parseOptionalFloat(cell(row, domain.ColQuantity)),
			MarketValueLakhs:    parseOptionalFloat(cell(row, domain.ColMarketValueLakhs)),
			PercentagePortfolio: parseOptionalFloat(cell(row, domain.ColPercentagePortfolio)),
			ReportingDate:       cell(row, domain.ColReportingDate),
		})
	}

	return &domain.Dataset{Columns: cols, Records: records}, nil
}

func parseOptionalFloat(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}
