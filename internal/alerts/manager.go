// Package alerts ingests disaster alerts from an external feed and ranks
// them by distance from the user.
package alerts

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/safetravel/go-travel-safety/internal/config"
	"github.com/safetravel/go-travel-safety/internal/models"
	"github.com/safetravel/go-travel-safety/internal/store"
	"github.com/safetravel/go-travel-safety/internal/worker"
)

// Manager polls the configured feed and appends new alerts to the store,
// broadcasting each one to stream subscribers.
type Manager struct {
	cfg         *config.Config
	store       *store.Store
	broadcaster *Broadcaster
	pool        *worker.Pool[models.DisasterAlert]
	wg          sync.WaitGroup
}

func NewManager(cfg *config.Config, st *store.Store, broadcaster *Broadcaster) *Manager {
	return &Manager{
		cfg:         cfg,
		store:       st,
		broadcaster: broadcaster,
	}
}

func (m *Manager) Start(ctx context.Context) {
	processor := func(ctx context.Context, alert models.DisasterAlert) error {
		if m.store.AlertExists(alert.ID) {
			return nil
		}
		m.store.CreateAlert(alert)

		if m.broadcaster != nil {
			m.broadcaster.Broadcast(alert)
		}

		slog.Info("added alert", "id", alert.ID, "category", alert.Category, "severity", alert.Severity)
		return nil
	}

	m.pool = worker.NewPool(m.cfg.Worker.Count, m.cfg.Worker.BufferSize, processor)
	m.pool.Start(ctx)

	if m.cfg.Alerts.SeedSamples {
		for _, a := range SampleAlerts(time.Now()) {
			m.pool.Submit(a)
		}
	}

	if m.cfg.Alerts.FeedEnabled {
		m.wg.Add(1)
		go m.runPoller(ctx, m.cfg.Alerts.FeedURL, m.cfg.Alerts.PollInterval)
	}
}

func (m *Manager) runPoller(ctx context.Context, url string, interval time.Duration) {
	defer m.wg.Done()
	slog.Info("starting alert poller", "url", url, "interval", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Initial poll
	m.poll(ctx, url)

	for {
		select {
		case <-ctx.Done():
			slog.Info("alert poller shutting down")
			return
		case <-ticker.C:
			m.poll(ctx, url)
		}
	}
}

func (m *Manager) poll(ctx context.Context, url string) {
	slog.Debug("polling alert feed")

	alerts, err := m.pollReliefWeb(ctx, url)
	if err != nil {
		slog.Error("alert poll failed", "error", err)
		return
	}

	for _, a := range alerts {
		m.pool.Submit(a)
	}

	slog.Debug("alert poll complete", "count", len(alerts))
}

func (m *Manager) Stop() {
	m.wg.Wait()
	m.pool.Stop()
	slog.Info("alert manager stopped")
}
