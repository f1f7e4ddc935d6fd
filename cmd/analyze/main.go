// Package main provides the analysis entry point.
// Recomputes payment classification, cadence, and normalized rates for the
// given tickers, then writes per-ticker statistics and schedule reports.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"dividend-lab/internal/analysis"
	"dividend-lab/internal/domain"
	"dividend-lab/internal/idhash"
	"dividend-lab/internal/metrics"
	"dividend-lab/internal/orchestrator"
	"dividend-lab/internal/reporting"
	"dividend-lab/internal/storage"
	chstore "dividend-lab/internal/storage/clickhouse"
	"dividend-lab/internal/storage/memory"
	"dividend-lab/internal/storage/migrations"
	pgstore "dividend-lab/internal/storage/postgres"
)

func main() {
	// Parse flags
	tickersFlag := flag.String("tickers", "", "Comma-separated ticker symbols to analyze")
	inputJSON := flag.String("input-json", "", "JSON fixture file with raw payments (implies in-memory storage)")
	postgresDSN := flag.String("postgres-dsn", "", "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", "", "ClickHouse DSN for the normalized chart series (empty to skip)")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage instead of PostgreSQL")
	migrate := flag.Bool("migrate", false, "Run schema migrations before analyzing")
	outputDir := flag.String("output-dir", "", "Directory for schedule reports (empty to skip)")
	verbose := flag.Bool("verbose", false, "Verbose output")
	anomalyRatio := flag.Float64("anomaly-ratio", analysis.DefaultConfig().AnomalyRatio, "Fraction of the baseline amount below which a payment is anomalous")
	specialMaxGap := flag.Int("special-max-gap", analysis.DefaultConfig().SpecialMaxGapDays, "Day gap at or below which a payment is Special")
	fallbackFreq := flag.Int("fallback-frequency", analysis.DefaultConfig().FallbackFrequency, "Payments per year assumed when cadence cannot be inferred")
	flag.Parse()

	logger := log.New(os.Stdout, "[analyze] ", log.LstdFlags|log.Lshortfile)

	tickers := splitTickers(*tickersFlag)
	if len(tickers) == 0 {
		logger.Fatal("No tickers specified. Use --tickers AAPL,MSFT,...")
	}

	// Create context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, cancelling analysis...", sig)
		cancel()
	}()

	// Create stores (use interfaces)
	var paymentStore storage.PaymentStore = memory.NewPaymentStore()
	var analysisStore storage.AnalysisStore = memory.NewAnalysisStore()
	var seriesStore storage.NormalizedSeriesStore

	if *inputJSON != "" {
		n, err := loadFixture(ctx, *inputJSON, paymentStore)
		if err != nil {
			logger.Fatalf("Load fixture %s: %v", *inputJSON, err)
		}
		logger.Printf("Loaded %d payments from %s", n, *inputJSON)
	} else if !*useMemory {
		if *postgresDSN == "" {
			logger.Fatal("--postgres-dsn is required (use --use-memory for in-memory storage)")
		}
		pool, err := pgstore.NewPool(ctx, *postgresDSN)
		if err != nil {
			logger.Fatalf("Connect to postgres: %v", err)
		}
		defer pool.Close()

		if *migrate {
			if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
				logger.Fatalf("Run postgres migrations: %v", err)
			}
		}

		paymentStore = pgstore.NewPaymentStore(pool)
		analysisStore = pgstore.NewAnalysisStore(pool)
	}

	if *clickhouseDSN != "" {
		conn, err := chstore.NewConn(ctx, *clickhouseDSN)
		if err != nil {
			logger.Fatalf("Connect to clickhouse: %v", err)
		}
		defer conn.Close()

		if *migrate {
			if err := migrations.RunClickhouseMigrations(ctx, conn); err != nil {
				logger.Fatalf("Run clickhouse migrations: %v", err)
			}
		}

		seriesStore = chstore.NewNormalizedSeriesStore(conn)
	}

	cfg := analysis.DefaultConfig()
	cfg.AnomalyRatio = *anomalyRatio
	cfg.SpecialMaxGapDays = *specialMaxGap
	cfg.FallbackFrequency = *fallbackFreq

	runner := analysis.NewRunner(analysis.RunnerOptions{
		PaymentStore:  paymentStore,
		AnalysisStore: analysisStore,
		SeriesStore:   seriesStore,
		Config:        cfg,
		Logger:        logger,
	})
	aggregator := metrics.NewAggregator(analysisStore)

	orch := orchestrator.New(orchestrator.Options{
		Runner:     runner,
		Aggregator: aggregator,
		Verbose:    *verbose,
		Logger:     logger,
	})

	result, err := orch.Run(ctx, tickers)
	if err != nil {
		logger.Fatalf("Pipeline error: %v", err)
	}

	fmt.Printf("Analysis completed:\n")
	fmt.Printf("  Tickers: %d analyzed of %d\n", result.TickersAnalyzed, result.TickersProcessed)
	fmt.Printf("  Stats: %d computed\n", result.StatsComputed)
	if len(result.Errors) > 0 {
		fmt.Printf("  Errors: %d\n", len(result.Errors))
		for _, e := range result.Errors {
			fmt.Printf("    - %s\n", e)
		}
	}

	if *outputDir != "" {
		if err := writeReports(ctx, *outputDir, tickers, analysisStore, aggregator); err != nil {
			logger.Fatalf("Write reports: %v", err)
		}
		fmt.Printf("Reports written to %s\n", *outputDir)
	}
}

// writeReports renders the per-ticker schedule as markdown and CSV.
func writeReports(ctx context.Context, dir string, tickers []string, analysisStore storage.AnalysisStore, aggregator *metrics.Aggregator) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	for _, ticker := range tickers {
		analyzed, err := analysisStore.GetByTicker(ctx, ticker)
		if err != nil {
			return fmt.Errorf("load analysis for %s: %w", ticker, err)
		}
		stats, err := aggregator.ComputeForTicker(ctx, ticker)
		if errors.Is(err, metrics.ErrNoAnalysis) {
			continue
		}
		if err != nil {
			return fmt.Errorf("compute stats for %s: %w", ticker, err)
		}

		md := reporting.RenderScheduleMarkdown(stats, analyzed)
		mdPath := filepath.Join(dir, fmt.Sprintf("%s_schedule.md", ticker))
		if err := os.WriteFile(mdPath, []byte(md), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", mdPath, err)
		}

		csv := reporting.RenderScheduleCSV(analyzed)
		csvPath := filepath.Join(dir, fmt.Sprintf("%s_schedule.csv", ticker))
		if err := os.WriteFile(csvPath, []byte(csv), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", csvPath, err)
		}
	}

	return nil
}

// fixtureRecord is one raw payment in an --input-json file.
type fixtureRecord struct {
	Ticker    string   `json:"ticker"`
	ExDate    string   `json:"exDate"` // YYYY-MM-DD
	RawAmount float64  `json:"rawAmount"`
	AdjAmount *float64 `json:"adjAmount,omitempty"`
	IsManual  bool     `json:"isManual,omitempty"`
}

// loadFixture reads a JSON array of raw payments into the payment store.
func loadFixture(ctx context.Context, path string, store storage.PaymentStore) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read fixture: %w", err)
	}

	var records []fixtureRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return 0, fmt.Errorf("parse fixture: %w", err)
	}

	now := time.Now().UnixMilli()
	payments := make([]*domain.DividendPayment, 0, len(records))
	for i, rec := range records {
		ticker := strings.TrimSpace(strings.ToUpper(rec.Ticker))
		exDate, err := time.Parse("2006-01-02", rec.ExDate)
		if err != nil {
			return 0, fmt.Errorf("record %d: invalid exDate %q: %w", i, rec.ExDate, err)
		}
		payments = append(payments, &domain.DividendPayment{
			ID:        idhash.ComputePaymentID(ticker, exDate, "fixture"),
			Ticker:    ticker,
			ExDate:    domain.Day(exDate),
			RawAmount: rec.RawAmount,
			AdjAmount: rec.AdjAmount,
			IsManual:  rec.IsManual,
			CreatedAt: now,
		})
	}

	if err := store.InsertBulk(ctx, payments); err != nil {
		return 0, fmt.Errorf("insert fixture payments: %w", err)
	}
	return len(payments), nil
}

// splitTickers parses the comma-separated tickers flag.
func splitTickers(raw string) []string {
	var list []string
	for _, t := range strings.Split(raw, ",") {
		t = strings.TrimSpace(strings.ToUpper(t))
		if t != "" {
			list = append(list, t)
		}
	}
	return list
}
