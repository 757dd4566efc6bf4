package workers

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-crm-auth/internal/logger"
	"github.com/MKhiriev/go-crm-auth/internal/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fakePinger struct {
	err error
}

func (f *fakePinger) PingContext(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("ping without deadline")
	}
	return f.err
}

type fakeHealth struct {
	mu      sync.Mutex
	reports []bool
}

func (f *fakeHealth) SetServing(serving bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reports = append(f.reports, serving)
}

func (f *fakeHealth) last() (bool, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.reports) == 0 {
		return false, 0
	}
	return f.reports[len(f.reports)-1], len(f.reports)
}

func TestPeriodic_RunsImmediatelyAndOnTicks(t *testing.T) {
	var runs atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())

	p := NewPeriodic("test", 10*time.Millisecond, func(context.Context) error {
		runs.Add(1)
		return nil
	}, logger.Nop())
	p.Run(ctx)

	assert.Eventually(t, func() bool { return runs.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)

	cancel()
	p.Wait()

	stopped := runs.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, runs.Load(), "no runs after cancellation")
}

func TestPeriodic_ErrorsDoNotStopTheLoop(t *testing.T) {
	var runs atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := NewPeriodic("failing", 5*time.Millisecond, func(context.Context) error {
		runs.Add(1)
		return errors.New("boom")
	}, logger.Nop())
	p.Run(ctx)

	assert.Eventually(t, func() bool { return runs.Load() >= 2 }, 2*time.Second, 5*time.Millisecond)
}

func TestPeriodic_DisabledByNonPositiveInterval(t *testing.T) {
	called := false
	p := NewPeriodic("off", 0, func(context.Context) error {
		called = true
		return nil
	}, logger.Nop())

	p.Run(context.Background())
	p.Wait()

	assert.False(t, called)
}

func TestPeriodic_CancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var runs atomic.Int32
	p := NewPeriodic("late", time.Millisecond, func(context.Context) error {
		runs.Add(1)
		return nil
	}, logger.Nop())
	p.Run(ctx)
	p.Wait()

	assert.Zero(t, runs.Load())
}

func TestSessionSweeper(t *testing.T) {
	ctrl := gomock.NewController(t)
	sessions := mock.NewMockSessionService(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	swept := make(chan struct{})

	gomock.InOrder(
		sessions.EXPECT().CleanupExpiredSessions(gomock.Any()).Return(int64(0), errors.New("db down")),
		sessions.EXPECT().CleanupExpiredSessions(gomock.Any()).DoAndReturn(func(context.Context) (int64, error) {
			close(swept)
			cancel()
			return 4, nil
		}),
	)

	p := NewSessionSweeper(sessions, 5*time.Millisecond, logger.Nop())
	p.Run(ctx)

	select {
	case <-swept:
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not run twice")
	}
	p.Wait()
}

func TestRateLimitSweeper(t *testing.T) {
	ctrl := gomock.NewController(t)
	limiter := mock.NewMockLoginLimiter(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	limiter.EXPECT().Sweep().DoAndReturn(func() int {
		cancel()
		return 2
	})

	p := NewRateLimitSweeper(limiter, time.Hour, logger.Nop())
	p.Run(ctx)
	p.Wait()
}

func TestHealthProber(t *testing.T) {
	health := &fakeHealth{}
	pinger := &fakePinger{}

	ctx, cancel := context.WithCancel(context.Background())
	p := NewHealthProber(pinger, health, time.Hour, logger.Nop())
	p.Run(ctx)

	require.Eventually(t, func() bool { _, n := health.last(); return n == 1 }, 2*time.Second, 5*time.Millisecond)
	serving, _ := health.last()
	assert.True(t, serving)

	cancel()
	p.Wait()

	pinger.err = errors.New("connection refused")
	ctx, cancel = context.WithCancel(context.Background())
	defer cancel()
	p = NewHealthProber(pinger, health, time.Hour, logger.Nop())
	p.Run(ctx)

	require.Eventually(t, func() bool { _, n := health.last(); return n == 2 }, 2*time.Second, 5*time.Millisecond)
	serving, _ = health.last()
	assert.False(t, serving)
}
