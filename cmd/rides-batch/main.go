package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/ridetally/rides-tracker/constants"
	"github.com/ridetally/rides-tracker/internal/common"
	"github.com/ridetally/rides-tracker/internal/export"
	"github.com/ridetally/rides-tracker/internal/extract"
	"github.com/ridetally/rides-tracker/internal/importer"
	"github.com/ridetally/rides-tracker/internal/ocr"
	"github.com/ridetally/rides-tracker/internal/repository"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		dir     = flag.String("dir", "", "directory with receipt screenshots and PDFs (required)")
		out     = flag.String("out", "", "output file path (defaults to <dir>/../rides.<format>)")
		format  = flag.String("format", "csv", "export format: csv, json, or xlsx")
		db      = flag.String("db", "", "SQLite database to import validated rides into (optional)")
		driver  = flag.String("driver", "default", "driver id to store imported rides under")
		timeout = flag.Duration("timeout", 0, "batch deadline (defaults to BATCH_TIMEOUT)")
	)
	flag.Parse()

	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(1)
	}
	exportFormat := export.Format(*format)
	switch exportFormat {
	case export.FormatCSV, export.FormatJSON, export.FormatXLSX:
	default:
		printError("Error: --format must be csv, json, or xlsx\n")
		os.Exit(1)
	}
	if *out == "" {
		*out = filepath.Join(filepath.Dir(*dir), "rides."+string(exportFormat))
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()

	files, err := readInputDir(*dir)
	if err != nil {
		logger.Error("failed to read input directory", "dir", *dir, "error", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		printError("Error: no supported files (%v) found in %s\n", constants.AllowedExtensions, *dir)
		os.Exit(1)
	}

	engine := ocr.NewEngine(ocr.EngineConfig{
		Language:    cfg.OCR.Language,
		TessdataDir: cfg.OCR.TessdataDir,
	}, logger)
	renderer := ocr.NewPageRenderer(ocr.RendererConfig{
		Pdftoppm: cfg.OCR.Pdftoppm,
		DPI:      cfg.OCR.DPI,
	}, logger)
	svc := extract.NewService(engine, renderer, logger)

	caps := svc.Capabilities()
	logger.Info("starting batch extraction",
		"dir", *dir,
		"files", len(files),
		"ocr_available", caps.OCR,
		"pdf_available", caps.PDF)

	if *timeout <= 0 {
		*timeout = cfg.Batch.Timeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	resp := svc.ExtractBatch(ctx, files)

	data, err := export.Bytes(resp.Results, exportFormat)
	if err != nil {
		logger.Error("failed to export rides", "format", *format, "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		logger.Error("failed to write output file", "path", *out, "error", err)
		os.Exit(1)
	}

	imported, skipped := 0, 0
	if *db != "" {
		conn, err := repository.Open(ctx, *db)
		if err != nil {
			logger.Error("failed to open database", "db", *db, "error", err)
			os.Exit(1)
		}
		defer conn.Close()

		store := repository.NewRideStore(conn, logger)
		res, err := importer.NewService(store, logger).Import(ctx, resp.Results, *driver)
		if err != nil {
			logger.Error("failed to import rides", "error", err)
			os.Exit(1)
		}
		imported, skipped = len(res.Imported), len(res.Skipped)
	}

	logger.Info("batch extraction complete",
		"files", resp.Summary.TotalFiles,
		"extracted", resp.Summary.SuccessfulExtractions,
		"failed", resp.Summary.FailedExtractions,
		"avg_confidence", resp.Summary.AverageConfidence,
		"output_file", *out)

	fmt.Printf("Batch extraction complete!\n")
	fmt.Printf("- Files scanned: %d\n", resp.Summary.TotalFiles)
	fmt.Printf("- Rides extracted: %d\n", resp.Summary.SuccessfulExtractions)
	fmt.Printf("- Failures: %d\n", resp.Summary.FailedExtractions)
	fmt.Printf("- Average confidence: %.2f\n", resp.Summary.AverageConfidence)
	for _, e := range resp.Errors {
		fmt.Printf("  ! %s: %s\n", e.FileName, e.Error)
	}
	if *db != "" {
		fmt.Printf("- Imported into %s: %d (skipped %d)\n", *db, imported, skipped)
	}
	fmt.Printf("- Output: %s\n", *out)
}

// readInputDir collects the supported files in name order so repeated runs
// process the batch identically.
func readInputDir(dir string) ([]extract.FileInput, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !constants.IsAllowedExt(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	files := make([]extract.FileInput, 0, len(names))
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		files = append(files, extract.FileInput{Name: name, Data: data})
	}
	return files, nil
}
