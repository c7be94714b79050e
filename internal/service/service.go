// Package service implements the freshness-aware cache-and-signal engine:
// period resolution, staleness detection, guarded refresh, range retrieval,
// and risk-signal evaluation.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"MarketAnalyzer/internal/calculator"
	"MarketAnalyzer/internal/fetcher"
	"MarketAnalyzer/internal/metrics"
	"MarketAnalyzer/internal/model"
	"MarketAnalyzer/internal/period"
	"MarketAnalyzer/internal/store"

	"golang.org/x/sync/singleflight"
)

// YieldSymbol is the symbol dividend-yield series are cached under.
const YieldSymbol = "SPY"

// Options carries the risk-signal parameters.
type Options struct {
	SMAWindow        int
	MomentumLookback int
	YieldThreshold   float64
}

// Service serves range queries against the local cache, refreshing from
// the external fetcher only when the cache is stale for the requested
// window.
type Service struct {
	store   store.Store
	fetcher fetcher.Fetcher
	metrics *metrics.Metrics
	opts    Options
	group   singleflight.Group
}

// New creates a Service. Zero option fields get the dashboard defaults:
// SMA window 20, momentum lookback 10, yield threshold 1.32.
func New(st store.Store, f fetcher.Fetcher, m *metrics.Metrics, opts Options) *Service {
	if m == nil {
		m = metrics.New()
	}
	if opts.SMAWindow <= 0 {
		opts.SMAWindow = 20
	}
	if opts.MomentumLookback <= 0 {
		opts.MomentumLookback = 10
	}
	if opts.YieldThreshold == 0 {
		opts.YieldThreshold = 1.32
	}
	return &Service{store: st, fetcher: f, metrics: m, opts: opts}
}

// NormalizeSymbols trims, upper-cases, and drops empty entries.
func NormalizeSymbols(symbols []string) []string {
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// GetPrices resolves the window, refreshes stale symbols, and returns the
// cached closes for [start, end].
func (s *Service) GetPrices(ctx context.Context, symbols []string, periodStr, interval string) (*model.PricePayload, error) {
	symbols = NormalizeSymbols(symbols)
	if len(symbols) == 0 {
		return nil, errors.New("no symbols requested")
	}
	if interval == "" {
		interval = "1d"
	}

	start, end := period.Resolve(periodStr)

	latest, err := s.store.LatestPriceDates(ctx, symbols, interval)
	if err != nil {
		return nil, fmt.Errorf("coverage check: %w", err)
	}

	// Stale when any symbol has no rows or its latest stored date trails
	// today's resolved end date. The check is against end only: history
	// missing between start and the oldest cached date does not trigger
	// a backfill.
	needFetch := false
	for _, sym := range symbols {
		if d, ok := latest[sym]; !ok || d < end {
			needFetch = true
			break
		}
	}

	if needFetch {
		key := refreshKey("prices", symbols, interval, periodStr)
		if _, err, shared := s.group.Do(key, func() (any, error) {
			return nil, s.refreshPrices(ctx, symbols, periodStr, interval)
		}); err != nil {
			return nil, err
		} else if shared {
			log.Printf("[INFO] joined in-flight refresh for %s", key)
		}
	} else {
		s.metrics.RefreshesSkipped.WithLabelValues("prices").Inc()
	}

	return s.store.QueryPricesRange(ctx, symbols, start, end, interval)
}

// GetDividendYield resolves the window, refreshes the yield series when
// stale, and returns the cached values for [start, end].
func (s *Service) GetDividendYield(ctx context.Context, periodStr, source string) (*model.YieldPayload, error) {
	if source == "" {
		source = "spy"
	}

	start, end := period.Resolve(periodStr)

	latest, err := s.store.LatestYieldDate(ctx, YieldSymbol)
	if err != nil {
		return nil, fmt.Errorf("coverage check: %w", err)
	}

	if latest == "" || latest < end {
		key := "yield|" + YieldSymbol + "|" + periodStr
		if _, err, _ := s.group.Do(key, func() (any, error) {
			return nil, s.refreshYield(ctx, periodStr, source)
		}); err != nil {
			return nil, err
		}
	} else {
		s.metrics.RefreshesSkipped.WithLabelValues("yield").Inc()
	}

	return s.store.QueryYieldRange(ctx, YieldSymbol, start, end)
}

// RiskReport evaluates the composite risk signals over the period:
// signal A from the momentum of the smoothed SPY and TIP series, signal B
// from the latest dividend yield against the fixed threshold.
func (s *Service) RiskReport(ctx context.Context, periodStr string) (*model.RiskReport, error) {
	prices, err := s.GetPrices(ctx, []string{"SPY", "TIP"}, periodStr, "1d")
	if err != nil {
		return nil, err
	}
	yld, err := s.GetDividendYield(ctx, periodStr, "spy")
	if err != nil {
		return nil, err
	}

	spySMA, err := calculator.RollingAverage(prices.Series["SPY"], s.opts.SMAWindow)
	if err != nil {
		return nil, fmt.Errorf("smooth SPY: %w", err)
	}
	tipSMA, err := calculator.RollingAverage(prices.Series["TIP"], s.opts.SMAWindow)
	if err != nil {
		return nil, fmt.Errorf("smooth TIP: %w", err)
	}

	report := &model.RiskReport{
		Period:         periodStr,
		SPYMomentum:    calculator.Momentum(spySMA, s.opts.MomentumLookback),
		TIPMomentum:    calculator.Momentum(tipSMA, s.opts.MomentumLookback),
		RiskA:          calculator.RiskMomentum(spySMA, tipSMA, s.opts.MomentumLookback),
		RiskB:          calculator.RiskBelowThreshold(yld.Series, s.opts.YieldThreshold),
		YieldThreshold: s.opts.YieldThreshold,
	}
	if n := len(yld.Series); n > 0 {
		report.LatestYield = yld.Series[n-1].Value
	}
	return report, nil
}

func (s *Service) refreshPrices(ctx context.Context, symbols []string, periodStr, interval string) error {
	s.metrics.FetchInvocations.WithLabelValues("prices").Inc()

	t0 := time.Now()
	payload, err := s.fetcher.FetchPrices(ctx, symbols, periodStr, interval)
	s.metrics.FetchDuration.Observe(time.Since(t0).Seconds())
	if err != nil {
		s.metrics.FetchFailures.WithLabelValues("prices").Inc()
		return fmt.Errorf("fetch prices: %w", err)
	}

	t1 := time.Now()
	if err := s.store.UpsertPrices(ctx, payload, interval); err != nil {
		return fmt.Errorf("upsert prices: %w", err)
	}
	s.metrics.UpsertDuration.Observe(time.Since(t1).Seconds())

	rows := 0
	for _, pts := range payload.Series {
		rows += len(pts)
	}
	s.metrics.RowsUpserted.WithLabelValues("prices").Add(float64(rows))
	log.Printf("[INFO] refreshed prices for %s: %d rows", strings.Join(symbols, ","), rows)
	return nil
}

func (s *Service) refreshYield(ctx context.Context, periodStr, source string) error {
	s.metrics.FetchInvocations.WithLabelValues("yield").Inc()

	t0 := time.Now()
	payload, err := s.fetcher.FetchYield(ctx, periodStr, source)
	s.metrics.FetchDuration.Observe(time.Since(t0).Seconds())
	if err != nil {
		s.metrics.FetchFailures.WithLabelValues("yield").Inc()
		return fmt.Errorf("fetch dividend yield: %w", err)
	}

	t1 := time.Now()
	if err := s.store.UpsertYields(ctx, payload); err != nil {
		return fmt.Errorf("upsert dividend yield: %w", err)
	}
	s.metrics.UpsertDuration.Observe(time.Since(t1).Seconds())

	s.metrics.RowsUpserted.WithLabelValues("yield").Add(float64(len(payload.Series)))
	log.Printf("[INFO] refreshed dividend yield for %s: %d rows", payload.Symbol, len(payload.Series))
	return nil
}

// refreshKey is the in-flight guard key: concurrent requests for the same
// canonical symbol set share one fetch; the singleflight entry is removed
// when the call completes, so a failed refresh can be retried.
func refreshKey(kind string, symbols []string, interval, periodStr string) string {
	sorted := append([]string(nil), symbols...)
	sort.Strings(sorted)
	return kind + "|" + strings.Join(sorted, ",") + "|" + interval + "|" + periodStr
}
