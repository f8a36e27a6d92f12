// Command ingest runs the FPL data ingestion pipeline.
//
// Usage:
//
//	fpl-ingest --season 2025-2026
//	fpl-ingest --season 2025-2026 --fetch-all-players
//	fpl-ingest --season 2025-2026 --fetch-all-players --max-players 50 --format csv
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/fpl-analytics/fpl-pipeline/external/fplapi"
	"github.com/fpl-analytics/fpl-pipeline/internal/config"
	"github.com/fpl-analytics/fpl-pipeline/internal/infrastructure/filestore"
	"github.com/fpl-analytics/fpl-pipeline/internal/platform/logging"
	"github.com/fpl-analytics/fpl-pipeline/internal/usecase"
)

type runOptions struct {
	Season          string `validate:"required"`
	DataDir         string `validate:"required"`
	Format          string `validate:"required,oneof=parquet csv json"`
	Gameweek        int    `validate:"min=0,max=38"`
	MaxPlayers      int    `validate:"min=0"`
	FetchAllPlayers bool
}

func main() {
	_ = godotenv.Load(".env")

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error during data ingestion: %+v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts runOptions
	cmd := &cobra.Command{
		Use:           "fpl-ingest",
		Short:         "Fetch FPL data and build the derived analytics tables",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngestion(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.Season, "season", defaultSeason(time.Now()), "season identifier, e.g. 2025-2026")
	cmd.Flags().StringVar(&opts.DataDir, "data-dir", "", "base directory for data storage (default DATA_DIR or ./data)")
	cmd.Flags().StringVar(&opts.Format, "format", "", "derived table format: parquet, csv or json (default TABLE_FORMAT or parquet)")
	cmd.Flags().IntVar(&opts.Gameweek, "gameweek", 0, "restrict the fixtures fetch to one gameweek (0 = whole season)")
	cmd.Flags().BoolVar(&opts.FetchAllPlayers, "fetch-all-players", false, "fetch detailed history for every player (slow, one request per player)")
	cmd.Flags().IntVar(&opts.MaxPlayers, "max-players", 0, "cap the number of players fetched (0 = no cap)")

	return cmd
}

func runIngestion(ctx context.Context, opts runOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return crerr.Wrap(err, "load config")
	}
	if opts.DataDir == "" {
		opts.DataDir = cfg.DataDir
	}
	if opts.Format == "" {
		opts.Format = cfg.TableFormat
	}

	if err := validator.New().Struct(opts); err != nil {
		return crerr.Wrap(err, "validate options")
	}

	logger, closeLog, err := buildLogger(cfg, opts.Season)
	if err != nil {
		return err
	}
	defer closeLog()
	logging.SetDefault(logger)

	format, err := filestore.ParseFormat(opts.Format)
	if err != nil {
		return crerr.Wrap(err, "parse table format")
	}
	store, err := filestore.New(format)
	if err != nil {
		return crerr.Wrap(err, "build file store")
	}

	client := fplapi.NewClient(fplapi.ClientConfig{
		BaseURL:        cfg.FPLBaseURL,
		UserAgent:      cfg.FPLUserAgent,
		Timeout:        cfg.FPLTimeout,
		RateLimitDelay: cfg.RateLimitDelay,
		Logger:         logger,
	})
	pipeline := usecase.NewPipelineService(client, store, logger)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := pipeline.Run(ctx, usecase.RunInput{
		Season:          opts.Season,
		DataDir:         opts.DataDir,
		Gameweek:        opts.Gameweek,
		FetchAllPlayers: opts.FetchAllPlayers,
		MaxPlayers:      opts.MaxPlayers,
	}); err != nil {
		logger.Error("data ingestion failed", "error", err)
		return err
	}

	return nil
}

// buildLogger writes JSON logs to stdout, teed into a per-run file under
// the configured log directory when one is set.
func buildLogger(cfg config.Config, season string) (*logging.Logger, func(), error) {
	if cfg.LogDir == "" {
		logger := logging.NewJSON(cfg.LogLevel)
		return logger, func() { _ = logger.Sync() }, nil
	}

	if err := os.MkdirAll(cfg.LogDir, 0o755); err != nil {
		return nil, nil, crerr.Wrapf(err, "create log dir %s", cfg.LogDir)
	}
	path := filepath.Join(cfg.LogDir, fmt.Sprintf("data_ingestion_%s_%s.log", season, time.Now().Format("20060102_150405")))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, crerr.Wrapf(err, "open log file %s", path)
	}

	logger := logging.NewJSONTee(cfg.LogLevel, file)
	logger.Info("logging initialised", "log_file", path)
	return logger, func() {
		_ = logger.Sync()
		_ = file.Close()
	}, nil
}

// defaultSeason derives the season identifier from the clock: seasons start
// in August.
func defaultSeason(now time.Time) string {
	year := now.Year()
	if now.Month() >= time.August {
		return fmt.Sprintf("%d-%d", year, year+1)
	}
	return fmt.Sprintf("%d-%d", year-1, year)
}
