package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/ridetally/rides-tracker/internal/common"
	"github.com/ridetally/rides-tracker/internal/importer"
	"github.com/ridetally/rides-tracker/internal/repository"
)

func main() {
	var (
		in     = flag.String("in", "", "rides JSON file produced by rides-batch (required)")
		db     = flag.String("db", "", "SQLite database path (defaults to RIDES_DB)")
		driver = flag.String("driver", "default", "driver id to store imported rides under")
	)
	flag.Parse()

	if *in == "" {
		fmt.Fprintln(os.Stderr, "Error: --in is required")
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if *db == "" {
		*db = cfg.Store.DSN
	}

	data, err := os.ReadFile(*in)
	if err != nil {
		logger.Error("failed to read input file", "path", *in, "error", err)
		os.Exit(1)
	}

	rides, err := importer.DecodeRides(data)
	if err != nil {
		logger.Error("invalid rides payload", "path", *in, "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	conn, err := repository.Open(ctx, *db)
	if err != nil {
		logger.Error("failed to open database", "db", *db, "error", err)
		os.Exit(1)
	}
	defer conn.Close()

	store := repository.NewRideStore(conn, logger)
	res, err := importer.NewService(store, logger).Import(ctx, rides, *driver)
	if err != nil {
		logger.Error("import aborted", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Import complete!\n")
	fmt.Printf("- Rides read: %d\n", len(rides))
	fmt.Printf("- Imported: %d\n", len(res.Imported))
	fmt.Printf("- Skipped: %d\n", len(res.Skipped))
	for _, sk := range res.Skipped {
		fmt.Printf("  ! ride %d: %s\n", sk.Index, sk.Reason)
	}
	fmt.Printf("- Database: %s\n", *db)
}
