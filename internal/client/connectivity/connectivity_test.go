package connectivity

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/storyshare/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct {
	mu    sync.Mutex
	err   error
	calls atomic.Int32
}

func (f *fakePinger) Ping(ctx context.Context) error {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

func (f *fakePinger) set(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

func TestMonitor_StartsOffline(t *testing.T) {
	m := NewMonitor(&fakePinger{}, time.Hour, logging.NewNop())
	assert.False(t, m.Online(context.Background()))
}

func TestMonitor_CheckTransitions(t *testing.T) {
	p := &fakePinger{}
	m := NewMonitor(p, time.Hour, logging.NewNop())
	ctx := context.Background()

	var changes []bool
	m.OnChange(func(online bool) { changes = append(changes, online) })

	assert.True(t, m.Check(ctx))
	assert.True(t, m.Check(ctx))
	assert.True(t, m.Online(ctx))

	p.set(errors.New("dial tcp: connection refused"))
	assert.False(t, m.Check(ctx))
	assert.False(t, m.Online(ctx))

	p.set(nil)
	m.Check(ctx)

	assert.Equal(t, []bool{true, false, true}, changes)
}

func TestMonitor_RunStopsOnCancel(t *testing.T) {
	p := &fakePinger{}
	m := NewMonitor(p, 5*time.Millisecond, logging.NewNop())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return p.calls.Load() >= 3 }, time.Second, time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.True(t, m.Online(context.Background()))
}

func TestStatic(t *testing.T) {
	assert.True(t, Static(true).Online(context.Background()))
	assert.False(t, Static(false).Online(context.Background()))
}
