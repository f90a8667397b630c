// Package exporter provides CSV export and re-ingestion for consolidated
// portfolio datasets.
//
// CSVWriter writes the consolidated dataset (and optional per-instrument-type
// split files) with a fixed column order and a UTF-8 BOM for Excel
// compatibility. ReadConsolidated reads a previously written file back into
// a Dataset so the validator can run against it.
package exporter
