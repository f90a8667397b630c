package dataprocessing

import (
	"errors"
	"fmt"
	"strings"

	"mfcli/pkg/contracts/domain"
)

// ErrHeaderNotFound indicates that no row in the search window looked like
// a column header. The sheet is skipped, not fatal.
var ErrHeaderNotFound = errors.New("header row not found")

// ExtractConfig carries the run-wide extraction parameters.
type ExtractConfig struct {
	AMCName              string
	DefaultReportingDate string // ISO date used when no date token parses
	HeaderSearchWindow   int    // rows scanned for the header, 0 means 20
	DateSearchRows       int    // rows scanned for a reporting date, 0 means 10
}

func (c ExtractConfig) headerWindow() int {
	if c.HeaderSearchWindow <= 0 {
		return 20
	}
	return c.HeaderSearchWindow
}

func (c ExtractConfig) dateRows() int {
	if c.DateSearchRows <= 0 {
		return 10
	}
	return c.DateSearchRows
}

// ProcessSheet extracts holding records from one scheme sheet. Single pass,
// no backtracking once the header is located: the rows above the header are
// only consulted for the reporting date, the rows below stream through the
// extractor with currentSection threaded as an accumulator.
func ProcessSheet(grid [][]string, schemeName string, cfg ExtractConfig) ([]domain.HoldingRecord, error) {
	headerIdx, ok := FindHeaderRow(grid, cfg.headerWindow())
	if !ok {
		return nil, fmt.Errorf("sheet %q: %w", schemeName, ErrHeaderNotFound)
	}

	reportingDate := FindReportingDate(grid, cfg.dateRows(), cfg.DefaultReportingDate)
	headers := normalizeHeaders(grid[headerIdx])

	rc := RowContext{
		AMCName:       cfg.AMCName,
		SchemeName:    schemeName,
		ReportingDate: reportingDate,
	}

	section := domain.SectionUnknown
	var holdings []domain.HoldingRecord
	for _, row := range grid[headerIdx+1:] {
		if IsSectionHeader(row) {
			section = ClassifySection(row)
			continue
		}
		rc.Section = section
		if rec, ok := ExtractRow(headers, row, rc); ok {
			holdings = append(holdings, rec)
		}
	}
	return holdings, nil
}

// normalizeHeaders trims and case-folds the located header row so column
// matching is insensitive to the source file's whitespace and casing.
func normalizeHeaders(row []string) []string {
	headers := make([]string, len(row))
	for i, cell := range row {
		headers[i] = strings.ToLower(strings.TrimSpace(cell))
	}
	return headers
}
