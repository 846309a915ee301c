// Updates the persisted Treasury rate table: refreshes the last recorded
// year through the current year from the feed, merges with fresh rows
// winning, rewrites the table, and emits the configured export artifacts.
//
// Usage:
//
//	go run cmd/ust-update/main.go [-config config/ust.yaml]
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/bj-liang/data-ust/internal/config"
	"github.com/bj-liang/data-ust/internal/domain"
	"github.com/bj-liang/data-ust/internal/export"
	"github.com/bj-liang/data-ust/internal/store"
	"github.com/bj-liang/data-ust/internal/treasury"
	"github.com/bj-liang/data-ust/internal/update"
	"github.com/bj-liang/data-ust/internal/util"
)

func main() {
	cfgPath := flag.String("config", "config/ust.yaml", "path to config file")
	flag.Parse()
	if p := os.Getenv("UST_CONFIG"); p != "" {
		*cfgPath = p
	}

	cfg := loadConfig(*cfgPath)

	logger := util.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	util.SetDefault(logger)

	driver, csvStore := wire(cfg)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	table, err := driver.Update(ctx)
	if err != nil {
		log.Fatalf("update failed: %v", err)
	}
	slog.Info("update complete", "rows", len(table), "table", csvStore.Path)

	if err := emitArtifacts(ctx, cfg, table); err != nil {
		log.Fatalf("emitting artifacts failed: %v", err)
	}
}

// loadConfig reads the config file, falling back to built-in defaults when
// no file exists at the path.
func loadConfig(path string) *config.Config {
	cfg, err := config.Load(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config.Default()
		}
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

// wire builds the pipeline from configuration.
func wire(cfg *config.Config) (*update.Driver, *store.CSVStore) {
	cache := treasury.NewCache(cfg.Storage.CacheDir)
	client := treasury.NewClient(
		cfg.Source.BaseURL,
		time.Duration(cfg.Source.TimeoutSeconds)*time.Second,
		cfg.Source.RetryAttempts,
	)
	assembler := treasury.NewAssembler(cache, client)
	csvStore := store.NewCSVStore(cfg.Storage.TablePath)
	return update.NewDriver(assembler, csvStore), csvStore
}

// emitArtifacts writes the configured derived outputs: the SQLite mirror
// and the daily plus monthly-average workbooks and parquet files.
func emitArtifacts(ctx context.Context, cfg *config.Config, table domain.RateTable) error {
	if cfg.Storage.SQLitePath != "" {
		mirror, err := store.NewSQLiteStore(cfg.Storage.SQLitePath)
		if err != nil {
			return err
		}
		defer mirror.Close()
		if err := mirror.Save(ctx, table); err != nil {
			return err
		}
		slog.Info("mirrored table to sqlite", "path", cfg.Storage.SQLitePath)
	}

	monthly := table.MonthlyAverage()

	if cfg.Export.Excel {
		daily := filepath.Join(cfg.Export.Dir, "ust_daily.xlsx")
		if err := export.WriteDailyXLSX(daily, table); err != nil {
			return err
		}
		monthlyPath := filepath.Join(cfg.Export.Dir, "ust_month_average.xlsx")
		if err := export.WriteMonthlyXLSX(monthlyPath, monthly); err != nil {
			return err
		}
		slog.Info("wrote excel exports", "daily", daily, "monthly", monthlyPath)
	}

	if cfg.Export.Parquet {
		daily := filepath.Join(cfg.Export.Dir, "ust_daily.parquet")
		if err := export.WriteDailyParquet(daily, table); err != nil {
			return err
		}
		monthlyPath := filepath.Join(cfg.Export.Dir, "ust_month_average.parquet")
		if err := export.WriteMonthlyParquet(monthlyPath, monthly); err != nil {
			return err
		}
		slog.Info("wrote parquet exports", "daily", daily, "monthly", monthlyPath)
	}
	return nil
}
