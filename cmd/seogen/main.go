package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gcctaxlaws/seogen/pkg/inventory"
	"github.com/gcctaxlaws/seogen/pkg/render"
	"github.com/gcctaxlaws/seogen/pkg/seo"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	configPath := flag.String("config", "./config.json", "path to the config file")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("seogen %s (commit %s, built %s)\n", Version, Commit, BuildDate)
		return
	}

	baseLogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, *configPath); err != nil {
		baseLogger.Error("Generation failed", "error", err)
		os.Exit(1)
	}
}

// run loads the configuration, wires the generator parts and
// executes one generation pass.
func run(ctx context.Context, configPath string) error {
	config, err := LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	var logLevel slog.Level
	switch strings.ToLower(config.Generator.LogLevel) {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	logger.Info("Starting generation run", "version", Version, "data_dir", config.Site.DataDir, "output_dir", config.Site.OutputDir)

	db, err := initDB(config.Generator.InventoryPath)
	if err != nil {
		return fmt.Errorf("failed to initialize inventory database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database", "error", err)
		}
	}()

	if err = inventory.SetupSchema(db); err != nil {
		return err
	}
	store, err := inventory.NewStore(db, logger)
	if err != nil {
		return fmt.Errorf("failed to prepare inventory store: %w", err)
	}
	defer store.Close()

	renderer, err := render.NewRenderer(logger, config.Site, config.Generator.TemplateDir)
	if err != nil {
		return err
	}

	if config.Generator.CleanOutput {
		logger.Info("Cleaning output directory", "dir", config.Site.OutputDir)
		if err = os.RemoveAll(config.Site.OutputDir); err != nil {
			return fmt.Errorf("failed to clean output directory: %w", err)
		}
	}
	if err = os.MkdirAll(config.Site.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	generator := NewGenerator(config, logger, renderer, seo.NewLookups(), store)
	return generator.Run(ctx)
}
