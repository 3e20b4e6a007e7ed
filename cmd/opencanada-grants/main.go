package main

import (
	"context"
	"log"
	"os"

	"opencanada-grants-parser/internal/app"
	"opencanada-grants-parser/internal/config"
	"opencanada-grants-parser/internal/fetcher"
	"opencanada-grants-parser/internal/observability"
	"opencanada-grants-parser/internal/scraper"
	"opencanada-grants-parser/internal/storage"
	"opencanada-grants-parser/internal/storage/csvfile"
	"opencanada-grants-parser/internal/storage/sqlite"
)

func main() {
	configPath := "configs/config.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := observability.NewLogger(cfg.Observability.LogPath, cfg.Observability.LogLevel)

	selectors, err := cfg.LoadSelectors()
	if err != nil {
		logger.Error("failed to load selectors", "error", err.Error())
		os.Exit(1)
	}

	sink, err := openSink(cfg, logger)
	if err != nil {
		logger.Error("failed to open output sink", "driver", cfg.Output.Driver, "error", err.Error())
		os.Exit(1)
	}

	f := fetcher.NewFetcher(cfg, logger)
	scr := scraper.NewScraper(selectors)

	ctx, cancel := app.GracefulShutdown(context.Background(), logger)
	defer cancel()

	orch := app.NewOrchestrator(cfg, logger, f, scr, sink)
	stats, runErr := orch.Run(ctx)

	// Close even after a failed run: partial output is acceptable, an
	// unflushed file is not.
	closeErr := sink.Close()
	if closeErr != nil {
		logger.Error("failed to close output sink", "error", closeErr.Error())
	}

	if runErr != nil {
		logger.Error("crawl failed", "error", runErr.Error(), "reason", stats.StoppedReason)
	}
	if runErr != nil || closeErr != nil {
		os.Exit(1)
	}

	logger.Info("done",
		"pages", stats.Pages,
		"records", stats.Records,
		"skipped", stats.Skipped,
	)
}

func openSink(cfg *config.Config, logger *observability.Logger) (storage.Sink, error) {
	if cfg.Output.Driver == "sqlite" {
		return sqlite.NewRepository(cfg.Output.DSN, cfg.Output.CommandTimeoutMS, logger)
	}
	return csvfile.NewWriter(cfg.Output.Path)
}
