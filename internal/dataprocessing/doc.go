// Package dataprocessing extracts mutual-fund scheme holdings from
// human-formatted spreadsheet workbooks and consolidates them into a single
// normalized dataset.
//
// # Architecture
//
// The package is organized into four components, leaves first:
//
//  1. Classifier: decides whether a grid row is a section banner, a header
//     row, or a data row (FindHeaderRow, IsSectionHeader, ClassifySection)
//  2. Extractor: maps one classified data row onto a HoldingRecord using an
//     ordered column-rule list (ExtractRow)
//  3. Sheet processor: per-sheet orchestration of date detection, header
//     location, and section tracking (ProcessSheet)
//  4. Workbook consolidator: iterates scheme sheets and aggregates all
//     holdings into one dataset (Consolidate)
//
// # Data Flow
//
//	Workbook → ProcessSheet (per sheet) → ExtractRow (per row) → HoldingRecords → Dataset
//
// # Heuristics, not a schema
//
// The source workbooks carry no schema contract: header placement, section
// banners, and column names vary sheet to sheet. The matchers here are
// tuned heuristics for one filer's format. They do not handle multi-level
// or merged headers.
//
// # Error Handling
//
// Errors are recovered at the narrowest boundary: a field that fails to
// parse is nulled, a row without an instrument name is dropped, a sheet
// without a header row contributes zero records, and only a workbook with
// zero records overall fails the run (ErrNoHoldings).
package dataprocessing
