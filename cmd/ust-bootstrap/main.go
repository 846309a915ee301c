// One-shot tool: builds the consolidated Treasury rate table from scratch,
// from the configured start year (default 1990) through the current year,
// caching every year's XML along the way.
//
// Usage:
//
//	go run cmd/ust-bootstrap/main.go [-config config/ust.yaml] [-start-year 1990]
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
	"github.com/bj-liang/data-ust/internal/export"
	"github.com/bj-liang/data-ust/internal/store"
	"github.com/bj-liang/data-ust/internal/treasury"
	"github.com/bj-liang/data-ust/internal/update"
	"github.com/bj-liang/data-ust/internal/util"
)

func main() {
	cfgPath := flag.String("config", "config/ust.yaml", "path to config file")
	startYear := flag.Int("start-year", 0, "first year to fetch (0 uses the configured start year)")
	flag.Parse()
	if p := os.Getenv("UST_CONFIG"); p != "" {
		*cfgPath = p
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Fatalf("failed to load config: %v", err)
		}
		cfg = config.Default()
	}

	logger := util.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	util.SetDefault(logger)

	cache := treasury.NewCache(cfg.Storage.CacheDir)
	client := treasury.NewClient(
		cfg.Source.BaseURL,
		time.Duration(cfg.Source.TimeoutSeconds)*time.Second,
		cfg.Source.RetryAttempts,
	)
	assembler := treasury.NewAssembler(cache, client)
	csvStore := store.NewCSVStore(cfg.Storage.TablePath)
	driver := update.NewDriver(assembler, csvStore)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	from := *startYear
	if from == 0 {
		from = cfg.Source.StartYear
	}

	table, err := driver.Bootstrap(ctx, from)
	if err != nil {
		log.Fatalf("bootstrap failed: %v", err)
	}
	slog.Info("bootstrap complete", "rows", len(table), "table", csvStore.Path)

	if cfg.Storage.SQLitePath != "" {
		mirror, err := store.NewSQLiteStore(cfg.Storage.SQLitePath)
		if err != nil {
			log.Fatalf("opening sqlite mirror: %v", err)
		}
		defer mirror.Close()
		if err := mirror.Save(ctx, table); err != nil {
			log.Fatalf("mirroring table to sqlite: %v", err)
		}
	}

	if cfg.Export.Excel {
		if err := export.WriteDailyXLSX(filepath.Join(cfg.Export.Dir, "ust_daily.xlsx"), table); err != nil {
			log.Fatalf("writing daily workbook: %v", err)
		}
		if err := export.WriteMonthlyXLSX(filepath.Join(cfg.Export.Dir, "ust_month_average.xlsx"), table.MonthlyAverage()); err != nil {
			log.Fatalf("writing monthly workbook: %v", err)
		}
	}
	if cfg.Export.Parquet {
		if err := export.WriteDailyParquet(filepath.Join(cfg.Export.Dir, "ust_daily.parquet"), table); err != nil {
			log.Fatalf("writing daily parquet: %v", err)
		}
		if err := export.WriteMonthlyParquet(filepath.Join(cfg.Export.Dir, "ust_month_average.parquet"), table.MonthlyAverage()); err != nil {
			log.Fatalf("writing monthly parquet: %v", err)
		}
	}
}
