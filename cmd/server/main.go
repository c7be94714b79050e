package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"MarketAnalyzer/internal/config"
	"MarketAnalyzer/internal/fetcher"
	"MarketAnalyzer/internal/httpapi"
	"MarketAnalyzer/internal/metrics"
	"MarketAnalyzer/internal/scheduler"
	"MarketAnalyzer/internal/service"
	"MarketAnalyzer/internal/store"

	"github.com/joho/godotenv"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] MarketAnalyzer starting...")

	// .env is optional; real env vars win either way.
	_ = godotenv.Load()

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init store
	st, err := store.NewSQLiteStore(cfg.Database.SQLitePath)
	if err != nil {
		log.Fatalf("[FATAL] init sqlite store: %v", err)
	}
	defer st.Close()

	// Init fetcher
	f := fetcher.NewScriptFetcher(
		cfg.Fetcher.PythonBin,
		cfg.Fetcher.ScriptsDir,
		time.Duration(cfg.Fetcher.TimeoutSeconds)*time.Second,
	)
	log.Printf("[INFO] fetcher: %s (%s, timeout %ds)", f.Name(), cfg.Fetcher.PythonBin, cfg.Fetcher.TimeoutSeconds)

	// Init metrics and service
	m := metrics.New()
	svc := service.New(st, f, m, service.Options{
		SMAWindow:        cfg.Signals.SMAWindow,
		MomentumLookback: cfg.Signals.MomentumLookback,
		YieldThreshold:   cfg.Signals.YieldThreshold,
	})

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Optional cache warmer
	if cfg.Warm.Cron != "" {
		warmer := scheduler.NewWarmer(ctx, svc)
		if err := warmer.Register(cfg.Warm.Cron, cfg.Warm.Tickers, cfg.Warm.Period, cfg.Warm.Interval); err != nil {
			log.Fatalf("[FATAL] register warm task: %v", err)
		}
		warmer.Start()
		defer warmer.Stop()
	}

	// HTTP server
	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: httpapi.NewServer(svc, m),
	}
	go func() {
		log.Printf("[INFO] http server listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[FATAL] http server: %v", err)
		}
	}()

	log.Println("[INFO] MarketAnalyzer is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[WARN] http shutdown: %v", err)
	}

	log.Println("[INFO] MarketAnalyzer stopped")
}
