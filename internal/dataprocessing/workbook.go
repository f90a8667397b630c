package dataprocessing

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"mfcli/pkg/contracts/domain"
)

// ErrNoHoldings indicates that every sheet in the workbook yielded zero
// records. It is the terminal failure of a run; no output files are written.
var ErrNoHoldings = errors.New("no holdings extracted from workbook")

// skipSheetKeywords exclude non-scheme sheets from processing.
var skipSheetKeywords = []string{"index", "summary", "contents", "note", "disclaimer"}

// Consolidate reads every scheme sheet in the workbook and returns the
// combined dataset, preserving sheet order and per-sheet row order. A
// failure in one sheet is logged and contributes zero records; it never
// discards other schemes' data.
func Consolidate(filePath string, cfg ExtractConfig, logger *slog.Logger) (*domain.Dataset, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	logger.Info("Workbook opened",
		slog.String("file", filePath),
		slog.Int("sheet_count", len(sheets)))

	var records []domain.HoldingRecord
	processed := 0
	for _, sheetName := range sheets {
		if isSkippableSheet(sheetName) {
			logger.Info("Skipping non-scheme sheet", slog.String("sheet", sheetName))
			continue
		}

		grid, err := f.GetRows(sheetName)
		if err != nil {
			logger.Warn("Failed to read sheet",
				slog.String("sheet", sheetName),
				slog.String("error", err.Error()))
			continue
		}

		holdings, err := ProcessSheet(grid, sheetName, cfg)
		if err != nil {
			logger.Warn("Sheet yielded no holdings",
				slog.String("sheet", sheetName),
				slog.String("error", err.Error()))
			continue
		}

		processed++
		records = append(records, holdings...)
		logger.Info("Sheet processed",
			slog.String("sheet", sheetName),
			slog.Int("holdings", len(holdings)))
	}

	if len(records) == 0 {
		return nil, ErrNoHoldings
	}

	logger.Info("Workbook consolidated",
		slog.Int("sheets_processed", processed),
		slog.Int("total_holdings", len(records)))

	ds := &domain.Dataset{Records: records}
	ds.Columns = ds.PresentColumns()
	return ds, nil
}

func isSkippableSheet(name string) bool {
	lower := strings.ToLower(name)
	for _, keyword := range skipSheetKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
