package main

import (
	"context"
	"flag"
	"log"
	"math"
	"os"
	"path/filepath"
	"time"

	"FinRisk/internal/domain/models"
	"FinRisk/internal/repository"
	"FinRisk/internal/service/yahoo"
	"FinRisk/internal/services/mlmodel"
	"FinRisk/internal/usecase"
	pkgch "FinRisk/pkg/clickhouse"
	"FinRisk/pkg/config"
	applogger "FinRisk/pkg/logger"
	"FinRisk/pkg/util"
)

const defaultSymbols = "AAPL,MSFT,GOOG,AMZN,TSLA,NVDA,META,JPM,V,JNJ,WMT,PG,KO,XOM,DIS"

func main() {
	configPath := flag.String("config", "config/config.yaml", "config file path")
	symbolsArg := flag.String("symbols", defaultSymbols, "comma-separated training symbols")
	days := flag.Int("days", 180, "trailing window in calendar days per symbol")
	out := flag.String("out", "model/risk_model.json", "output model file")
	trees := flag.Int("trees", 100, "number of trees in the forest")
	depth := flag.Int("depth", 8, "max tree depth")
	seed := flag.Int64("seed", 42, "bootstrap seed")
	flag.Parse()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: "console",
		Output: "stdout",
	})
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}

	symbols := util.SplitCommaList(*symbolsArg)
	if len(symbols) == 0 {
		log.Fatal("no training symbols given")
	}

	ctx := context.Background()
	source := yahoo.New(cfg.Provider.BaseURL, cfg.Provider.Timeout)
	builder := usecase.NewDatasetBuilder(source, l)

	l.Info("building dataset",
		applogger.Strings("symbols", symbols),
		applogger.Int("days", *days),
	)
	start := time.Now()
	rows, failed := builder.Build(ctx, symbols, *days)
	l.Info("dataset built",
		applogger.Int("rows", len(rows)),
		applogger.Int("failed", len(failed)),
		applogger.Duration("duration_ms", time.Since(start)),
	)
	if len(rows) == 0 {
		log.Fatal("dataset is empty, nothing to train on")
	}

	if cfg.ClickHouse.Enabled {
		if err := persistRows(ctx, cfg, l, rows); err != nil {
			l.Warn("training rows not persisted", applogger.Error(err))
		}
	}

	enc := mlmodel.FitLabelEncoder(labels(rows))
	X := make([][]float64, 0, len(rows))
	y := make([]float64, 0, len(rows))
	for _, r := range rows {
		// Rows with undefined volatility cannot be targets for a
		// numeric fit; the forest handles NaN only in features.
		if math.IsNaN(r.Volatility) {
			l.Warn("row skipped: undefined volatility", applogger.String("symbol", r.Symbol))
			continue
		}
		code, err := enc.Transform(r.Label)
		if err != nil {
			log.Fatalf("encode label: %v", err)
		}
		X = append(X, r.FeatureVector())
		y = append(y, float64(code))
	}

	forest, err := mlmodel.FitForest(X, y, mlmodel.ForestConfig{
		Trees:    *trees,
		MaxDepth: *depth,
		MinLeaf:  1,
		Seed:     *seed,
	})
	if err != nil {
		log.Fatalf("fit forest: %v", err)
	}

	if dir := filepath.Dir(*out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("create output dir: %v", err)
		}
	}
	if err := mlmodel.Save(*out, forest, enc); err != nil {
		log.Fatalf("save model: %v", err)
	}
	l.Info("model saved",
		applogger.String("path", *out),
		applogger.Int("rows", len(X)),
		applogger.Int("trees", *trees),
		applogger.Any("classes", enc.Classes),
	)
}

// persistRows stores the labeled batch in ClickHouse for later inspection.
func persistRows(ctx context.Context, cfg *config.Config, l *applogger.Logger, rows []models.TrainingRow) error {
	ch, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout),
	)
	if err != nil {
		return err
	}
	store := repository.NewCHTrainingStore(ch)
	store.SetLogger(l)
	defer store.Close()

	if err := store.Init(ctx); err != nil {
		return err
	}
	return store.InsertRows(ctx, rows)
}

func labels(rows []models.TrainingRow) []models.RiskLabel {
	out := make([]models.RiskLabel, len(rows))
	for i, r := range rows {
		out[i] = r.Label
	}
	return out
}
