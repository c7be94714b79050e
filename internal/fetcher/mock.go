package fetcher

import (
	"context"
	"sync"
	"time"

	"MarketAnalyzer/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Prices *model.PricePayload
	Yield  *model.YieldPayload
	Err    error
	Delay  time.Duration // simulates a slow external process

	mu         sync.Mutex
	priceCalls int
	yieldCalls int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchPrices(ctx context.Context, symbols []string, period, interval string) (*model.PricePayload, error) {
	m.mu.Lock()
	m.priceCalls++
	m.mu.Unlock()

	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Prices, nil
}

func (m *MockFetcher) FetchYield(ctx context.Context, period, source string) (*model.YieldPayload, error) {
	m.mu.Lock()
	m.yieldCalls++
	m.mu.Unlock()

	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Yield, nil
}

// PriceCalls reports how many times FetchPrices was invoked.
func (m *MockFetcher) PriceCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.priceCalls
}

// YieldCalls reports how many times FetchYield was invoked.
func (m *MockFetcher) YieldCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.yieldCalls
}

func (m *MockFetcher) wait(ctx context.Context) error {
	if m.Delay <= 0 {
		return nil
	}
	select {
	case <-time.After(m.Delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
