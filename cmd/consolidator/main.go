package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"mfcli/internal/config"
	"mfcli/internal/dataprocessing"
	"mfcli/internal/exporter"
	"mfcli/internal/infrastructure"
	"mfcli/internal/scraper"
	"mfcli/pkg/contracts"
	"mfcli/pkg/contracts/domain"
)

func main() {
	manualFile := flag.String("file", "", "path to a manually downloaded portfolio workbook (skips discovery and download)")
	outDir := flag.String("out", "", "output directory for CSV files (defaults to data/output relative to executable)")
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.GetVersionInfo())
		return
	}

	paths, err := config.GetPaths()
	if err != nil {
		fmt.Printf("Error: failed to initialize paths: %v\n", err)
		os.Exit(1)
	}
	if *outDir == "" {
		*outDir = paths.OutputDir
	}
	if err := paths.EnsureDirectories(); err != nil {
		fmt.Printf("Error: failed to create required directories: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Warning: failed to load config, using defaults: %v\n", err)
		cfg = config.Default()
	}
	if cfg.Logging.FilePath == "" || cfg.Logging.FilePath == "logs/app.log" {
		cfg.Logging.FilePath = paths.GetLogPath("consolidator.log")
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		fmt.Printf("Warning: failed to initialize logger, using default: %v\n", err)
		logger = slog.Default()
	}

	ctx := infrastructure.ContextWithTraceID(context.Background())

	logger.InfoContext(ctx, "Starting portfolio consolidation",
		slog.String("amc", cfg.AMC.Name),
		slog.String("target_month", cfg.Target.Month),
		slog.String("target_year", cfg.Target.Year),
		slog.String("output_dir", *outDir),
		slog.String("manual_file", *manualFile))

	workbookPath, err := resolveWorkbook(ctx, cfg, paths, *manualFile, logger)
	if err != nil {
		logger.ErrorContext(ctx, "Could not obtain portfolio workbook", slog.String("error", err.Error()))
		fmt.Println("Automatic download not possible. Please download the file manually from:")
		fmt.Printf("  %s\n", cfg.AMC.DisclosuresURL)
		fmt.Printf("  Select: %s %s - Consolidated, then rerun with -file <path>\n", cfg.Target.Month, cfg.Target.Year)
		os.Exit(1)
	}

	extractCfg := dataprocessing.ExtractConfig{
		AMCName:              cfg.AMC.Name,
		DefaultReportingDate: cfg.Target.DefaultReportingDate,
	}

	ds, err := dataprocessing.Consolidate(workbookPath, extractCfg, logger)
	if err != nil {
		if errors.Is(err, dataprocessing.ErrNoHoldings) {
			logger.ErrorContext(ctx, "Data extraction failed: no holdings found in any sheet",
				slog.String("workbook", workbookPath))
		} else {
			logger.ErrorContext(ctx, "Failed to parse workbook",
				slog.String("workbook", workbookPath),
				slog.String("error", err.Error()))
		}
		os.Exit(1)
	}

	writer := exporter.NewCSVWriter(logger)
	consolidatedPath := filepath.Join(*outDir, exporter.ConsolidatedFilename)
	if err := writer.WriteConsolidated(consolidatedPath, ds); err != nil {
		logger.ErrorContext(ctx, "Failed to write consolidated CSV", slog.String("error", err.Error()))
		os.Exit(1)
	}

	splits, err := writer.WriteTypeSplits(*outDir, ds)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to write instrument-type splits", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logSummary(ctx, logger, ds, consolidatedPath, splits)
}

// resolveWorkbook returns the local path of the workbook to parse, either
// the manually supplied file or a fresh download located on the
// disclosures page.
func resolveWorkbook(ctx context.Context, cfg *config.Config, paths *config.Paths, manualFile string, logger *slog.Logger) (string, error) {
	if manualFile != "" {
		if _, err := os.Stat(manualFile); err != nil {
			return "", fmt.Errorf("manual file not usable: %w", err)
		}
		logger.InfoContext(ctx, "Using manually provided workbook", slog.String("path", manualFile))
		return manualFile, nil
	}

	client := scraper.NewClient(cfg.HTTP, logger)

	page, err := client.FetchPage(ctx, cfg.AMC.DisclosuresURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch disclosures page: %w", err)
	}

	fileURL, ok := scraper.LocateDownloadURL(page, cfg.AMC.BaseURL, cfg.Target.Month, cfg.Target.Year)
	if !ok {
		return "", fmt.Errorf("%w for %s %s", scraper.ErrLinkNotFound, cfg.Target.Month, cfg.Target.Year)
	}
	logger.InfoContext(ctx, "Located portfolio workbook", slog.String("url", fileURL))

	return client.DownloadFile(ctx, fileURL, paths.DownloadsDir)
}

// logSummary reports what the run produced.
func logSummary(ctx context.Context, logger *slog.Logger, ds *domain.Dataset, consolidatedPath string, splits []string) {
	typeCounts := make(map[domain.SectionType]int)
	for _, rec := range ds.Records {
		typeCounts[rec.InstrumentType]++
	}
	attrs := []any{
		slog.Int("total_holdings", len(ds.Records)),
		slog.Int("schemes", len(ds.SchemeNames())),
		slog.String("consolidated_csv", consolidatedPath),
		slog.Int("split_files", len(splits)),
	}
	for t, n := range typeCounts {
		attrs = append(attrs, slog.Int("type_"+string(t), n))
	}
	logger.InfoContext(ctx, "Consolidation complete", attrs...)

	fmt.Printf("Consolidated %d holdings across %d schemes\n", len(ds.Records), len(ds.SchemeNames()))
	fmt.Printf("Output: %s\n", consolidatedPath)
	for _, s := range splits {
		fmt.Printf("Split:  %s\n", s)
	}
}
