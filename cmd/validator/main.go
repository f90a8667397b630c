package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"mfcli/internal/config"
	"mfcli/internal/exporter"
	"mfcli/internal/infrastructure"
	"mfcli/internal/validation"
	"mfcli/pkg/contracts"
)

func main() {
	inFile := flag.String("in", "", "path to a consolidated portfolio CSV (defaults to data/output/consolidated_portfolio.csv relative to executable)")
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
	if *inFile == "" {
		*inFile = paths.GetOutputPath(exporter.ConsolidatedFilename)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Warning: failed to load config, using defaults: %v\n", err)
		cfg = config.Default()
	}
	if cfg.Logging.FilePath == "" || cfg.Logging.FilePath == "logs/app.log" {
		cfg.Logging.FilePath = paths.GetLogPath("validator.log")
	}
	// Findings go to stdout; keep structured logs out of the report.
	cfg.Logging.Output = "file"

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		fmt.Printf("Warning: failed to initialize logger, using default: %v\n", err)
		logger = slog.Default()
	}

	ctx := infrastructure.ContextWithTraceID(context.Background())
	logger.InfoContext(ctx, "Starting validation", slog.String("input", *inFile))

	ds, err := exporter.ReadConsolidated(*inFile)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to read consolidated CSV",
			slog.String("input", *inFile),
			slog.String("error", err.Error()))
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	v, err := validation.New(validation.Config{
		PortfolioSumMin: cfg.Validation.PortfolioSumMin,
		PortfolioSumMax: cfg.Validation.PortfolioSumMax,
		ISINPattern:     cfg.Validation.ISINPattern,
	}, logger)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to build validator", slog.String("error", err.Error()))
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("File: %s\n", *inFile)
	fmt.Printf("Total Records: %d\n\n", len(ds.Records))

	result := v.Run(ds)
	result.Render(os.Stdout)

	fmt.Println()
	profile := validation.BuildProfile(ds)
	profile.Render(os.Stdout)

	// Findings are never fatal; the run exits normally regardless.
}
