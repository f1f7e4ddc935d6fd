// Package main provides the dividend history backfill entry point.
// Fetches distribution history from Tiingo and appends it to the raw
// payment store, resuming from each ticker's last ingested ex-date.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"dividend-lab/internal/ingestion"
	"dividend-lab/internal/observability"
	"dividend-lab/internal/storage"
	"dividend-lab/internal/storage/memory"
	"dividend-lab/internal/storage/migrations"
	pgstore "dividend-lab/internal/storage/postgres"
	"dividend-lab/internal/tiingo"
)

func main() {
	// Parse flags
	tickersFlag := flag.String("tickers", "", "Comma-separated ticker symbols to backfill")
	tiingoToken := flag.String("tiingo-token", os.Getenv("TIINGO_TOKEN"), "Tiingo API token (defaults to TIINGO_TOKEN env)")
	postgresDSN := flag.String("postgres-dsn", "", "PostgreSQL connection string")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage instead of PostgreSQL")
	migrate := flag.Bool("migrate", false, "Run schema migrations before backfilling")
	lookback := flag.Duration("lookback", ingestion.DefaultLookback, "History window for a ticker's first backfill")
	overlap := flag.Duration("overlap", ingestion.DefaultOverlap, "Re-fetch window before the resume point")
	metricsAddr := flag.String("metrics-addr", "", "Prometheus metrics HTTP address (empty to disable)")
	flag.Parse()

	logger := log.New(os.Stdout, "[backfill] ", log.LstdFlags|log.Lshortfile)

	tickers := splitTickers(*tickersFlag)
	if len(tickers) == 0 {
		logger.Fatal("No tickers specified. Use --tickers AAPL,MSFT,...")
	}
	if *tiingoToken == "" {
		logger.Fatal("No Tiingo token. Use --tiingo-token or set TIINGO_TOKEN")
	}

	// Create context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, cancelling backfill...", sig)
		cancel()
	}()

	// Start metrics server if enabled
	m := observability.New()
	if *metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", m.Handler())
			mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte("ok"))
			})
			logger.Printf("Starting metrics server on %s", *metricsAddr)
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil && err != http.ErrServerClosed {
				logger.Printf("Metrics server error: %v", err)
			}
		}()
	}

	// Create stores (use interfaces)
	var paymentStore storage.PaymentStore = memory.NewPaymentStore()
	var progressStore storage.BackfillProgressStore = memory.NewBackfillProgressStore()

	if !*useMemory {
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
				logger.Fatalf("Run migrations: %v", err)
			}
			logger.Println("Migrations applied")
		}

		paymentStore = pgstore.NewPaymentStore(pool)
		progressStore = pgstore.NewBackfillProgressStore(pool)
	}

	source := tiingo.NewClient(*tiingoToken)

	backfiller := ingestion.NewBackfiller(ingestion.BackfillOptions{
		Source:        source,
		PaymentStore:  paymentStore,
		ProgressStore: progressStore,
		Lookback:      *lookback,
		Overlap:       *overlap,
		Logger:        logger,
	})

	logger.Printf("Backfilling %d tickers...", len(tickers))

	result, errs := backfiller.BackfillAll(ctx, tickers)
	m.PaymentsIngested.Add(float64(result.PaymentsIngested))
	m.DuplicatesSkipped.Add(float64(result.DuplicatesSkipped))

	logger.Printf("Backfill complete: %d ingested, %d duplicates skipped in %v",
		result.PaymentsIngested, result.DuplicatesSkipped, result.Duration)
	if len(errs) > 0 {
		logger.Printf("Errors (%d):", len(errs))
		for _, e := range errs {
			logger.Printf("  - %s", e)
		}
		os.Exit(1)
	}
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
