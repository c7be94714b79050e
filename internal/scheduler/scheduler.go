// Package scheduler runs optional cron cache warms. A warm is an ordinary
// pull through the service, so the cache stays strictly pull-driven; the
// cron just makes sure the first dashboard request of the day is fast.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"

	"MarketAnalyzer/internal/service"

	"github.com/robfig/cron/v3"
)

// Warmer schedules periodic cache warms.
type Warmer struct {
	Cron    *cron.Cron
	Service *service.Service
	Ctx     context.Context

	tickers  []string
	period   string
	interval string
}

// NewWarmer creates a new Warmer.
func NewWarmer(ctx context.Context, svc *service.Service) *Warmer {
	return &Warmer{
		Cron:    cron.New(cron.WithSeconds()),
		Service: svc,
		Ctx:     ctx,
	}
}

// Register adds the warm task under the given cron expression.
func (w *Warmer) Register(cronExpr, tickers, period, interval string) error {
	w.tickers = strings.Split(tickers, ",")
	w.period = period
	w.interval = interval

	if _, err := w.Cron.AddFunc(cronExpr, w.warmTask); err != nil {
		return fmt.Errorf("register warm task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (w *Warmer) Start() {
	w.Cron.Start()
	log.Println("[INFO] warm scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (w *Warmer) Stop() {
	w.Cron.Stop()
	log.Println("[INFO] warm scheduler stopped")
}

func (w *Warmer) warmTask() {
	log.Println("[INFO] running cache warm")

	if _, err := w.Service.GetPrices(w.Ctx, w.tickers, w.period, w.interval); err != nil {
		log.Printf("[ERROR] warm prices: %v", err)
	}
	if _, err := w.Service.GetDividendYield(w.Ctx, w.period, "spy"); err != nil {
		log.Printf("[ERROR] warm dividend yield: %v", err)
	}
}
