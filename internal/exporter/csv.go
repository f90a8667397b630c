package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"mfcli/pkg/contracts/domain"
)

// ConsolidatedFilename is the well-known name of the consolidated output.
const ConsolidatedFilename = "consolidated_portfolio.csv"

// CSVWriter writes consolidated portfolio datasets as CSV.
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance.
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger}
}

// WriteConsolidated writes the dataset to filePath using the fixed column
// order; columns absent from the dataset are omitted.
func (w *CSVWriter) WriteConsolidated(filePath string, ds *domain.Dataset) error {
	cols := ds.Columns
	if len(cols) == 0 {
		cols = ds.PresentColumns()
	}

	w.logger.Info("Writing consolidated CSV",
		slog.String("path", filePath),
		slog.Int("records", len(ds.Records)),
		slog.Int("columns", len(cols)))

	return w.writeFile(filePath, cols, ds.Records)
}

// WriteTypeSplits writes one file per distinct non-Unknown instrument type
// present in the dataset, named portfolio_<type>.csv with the type
// lower-cased and spaces replaced by underscores. Returns the paths written.
func (w *CSVWriter) WriteTypeSplits(outDir string, ds *domain.Dataset) ([]string, error) {
	cols := ds.Columns
	if len(cols) == 0 {
		cols = ds.PresentColumns()
	}

	var order []domain.SectionType
	byType := make(map[domain.SectionType][]domain.HoldingRecord)
	for _, rec := range ds.Records {
		if rec.InstrumentType == domain.SectionUnknown {
			continue
		}
		if _, seen := byType[rec.InstrumentType]; !seen {
			order = append(order, rec.InstrumentType)
		}
		byType[rec.InstrumentType] = append(byType[rec.InstrumentType], rec)
	}

	var paths []string
	for _, t := range order {
		filename := TypeSplitFilename(t)
		filePath := filepath.Join(outDir, filename)
		if err := w.writeFile(filePath, cols, byType[t]); err != nil {
			return paths, fmt.Errorf("failed to write %s: %w", filename, err)
		}
		w.logger.Info("Wrote instrument-type split",
			slog.String("instrument_type", string(t)),
			slog.String("path", filePath),
			slog.Int("records", len(byType[t])))
		paths = append(paths, filePath)
	}
	return paths, nil
}

// TypeSplitFilename returns the deterministic split filename for a type.
func TypeSplitFilename(t domain.SectionType) string {
	return "portfolio_" + strings.ReplaceAll(strings.ToLower(string(t)), " ", "_") + ".csv"
}

// writeFile writes header and records with a UTF-8 BOM so Excel opens the
// file correctly.
func (w *CSVWriter) writeFile(filePath string, cols []string, records []domain.HoldingRecord) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(cols); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, rec := range records {
		if err := writer.Write(recordRow(rec, cols)); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	return writer.Error()
}

// recordRow renders one record in the given column order.
func recordRow(rec domain.HoldingRecord, cols []string) []string {
	row := make([]string, len(cols))
	for i, col := range cols {
		switch col {
		case domain.ColAMCName:
			row[i] = rec.AMCName
		case domain.ColSchemeName:
			row[i] = rec.SchemeName
		case domain.ColInstrumentName:
			row[i] = rec.InstrumentName
		case domain.ColInstrumentType:
			row[i] = string(rec.InstrumentType)
		case domain.ColISIN:
			row[i] = rec.ISIN
		case domain.ColIndustryRating:
			row[i] = rec.IndustryRating
		case domain.ColQuantity:
			row[i] = formatOptionalFloat(rec.Quantity)
		case domain.ColMarketValueLakhs:
			row[i] = formatOptionalFloat(rec.MarketValueLakhs)
		case domain.ColPercentagePortfolio:
			row[i] = formatOptionalFloat(rec.PercentagePortfolio)
		case domain.ColReportingDate:
			row[i] = rec.ReportingDate
		}
	}
	return row
}

// formatOptionalFloat renders with the minimal digits needed to round-trip.
func formatOptionalFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
