// Package connectivity answers "is the API reachable right now?".
//
// Monitor probes the API on an interval and caches a binary state. Reads
// through Checker are one-shot: callers take the value at the start of an
// operation and do not re-check mid-flight.
package connectivity

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/storyshare/internal/logging"
)

type Checker interface {
	Online(ctx context.Context) bool
}

// Pinger is satisfied by client.HTTPClient.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Static is a fixed Checker, useful when probing is disabled.
type Static bool

func (s Static) Online(context.Context) bool { return bool(s) }

type Monitor struct {
	pinger   Pinger
	interval time.Duration
	timeout  time.Duration
	logger   logging.Logger

	online atomic.Bool

	mu        sync.Mutex
	listeners []func(online bool)
}

func NewMonitor(p Pinger, interval time.Duration, logger logging.Logger) *Monitor {
	return &Monitor{
		pinger:   p,
		interval: interval,
		timeout:  3 * time.Second,
		logger:   logger,
	}
}

// Online returns the last observed state without blocking.
func (m *Monitor) Online(context.Context) bool {
	return m.online.Load()
}

// OnChange registers fn to be called after every transition.
func (m *Monitor) OnChange(fn func(online bool)) {
	m.mu.Lock()
	m.listeners = append(m.listeners, fn)
	m.mu.Unlock()
}

// Check probes once and updates the cached state.
func (m *Monitor) Check(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	err := m.pinger.Ping(ctx)
	cancel()

	now := err == nil
	if prev := m.online.Swap(now); prev != now {
		if now {
			m.logger.Info(ctx, "connectivity restored")
		} else {
			m.logger.Warn(ctx, "connectivity lost", "err", err)
		}
		m.notify(now)
	}
	return now
}

func (m *Monitor) notify(online bool) {
	m.mu.Lock()
	ls := append([]func(bool){}, m.listeners...)
	m.mu.Unlock()

	for _, fn := range ls {
		fn(online)
	}
}

// Run probes immediately and then every interval until ctx is done.
func (m *Monitor) Run(ctx context.Context) {
	m.Check(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.Check(ctx)
		case <-ctx.Done():
			return
		}
	}
}
