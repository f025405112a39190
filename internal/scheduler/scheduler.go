// Package scheduler runs the periodic exchange rate ingestion.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/finnconnect/finnconnect/internal/core/domain"
	portssvc "github.com/finnconnect/finnconnect/internal/core/ports/services"
)

// Scheduler triggers a rate ingestion for the default currency set on a
// fixed interval. The first run fires immediately on Start.
type Scheduler struct {
	rates    portssvc.ExchangeRateSvcFacade
	interval time.Duration

	// running guards against overlapping ingestions when a run outlasts the
	// interval; a tick that finds one in flight is skipped.
	running sync.Mutex
}

// New creates a Scheduler.
func New(rates portssvc.ExchangeRateSvcFacade, interval time.Duration) *Scheduler {
	return &Scheduler{
		rates:    rates,
		interval: interval,
	}
}

// Start blocks, running an ingestion immediately and then once per interval
// until the context is cancelled. Run it in its own goroutine.
func (s *Scheduler) Start(ctx context.Context) {
	slog.Info("Rate scheduler started", slog.Duration("interval", s.interval))

	s.runOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Rate scheduler stopped")
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

// runOnce performs a single ingestion unless one is already in flight.
func (s *Scheduler) runOnce(ctx context.Context) {
	if !s.running.TryLock() {
		slog.Warn("Skipping rate ingestion, previous run still in flight")
		return
	}
	defer s.running.Unlock()

	rates, err := s.rates.FetchAndStoreRates(ctx, domain.DefaultCurrencies)
	if err != nil {
		slog.Error("Scheduled rate ingestion failed", slog.Any("error", err))
		return
	}
	slog.Info("Scheduled rate ingestion completed", slog.Int("count", len(rates)))
}
