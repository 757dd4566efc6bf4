// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-crm-auth/internal/config"
	"github.com/MKhiriev/go-crm-auth/internal/logger"
	"github.com/MKhiriev/go-crm-auth/internal/mock"
	"github.com/MKhiriev/go-crm-auth/internal/service"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

// mockWorker is a test implementation of the Worker interface
// that tracks how many times Run was called.
type mockWorker struct {
	runCount int
	waited   bool
}

func (m *mockWorker) Run(context.Context) {
	m.runCount++
}

func (m *mockWorker) Wait() {
	m.waited = true
}

// orderWorker is a helper that appends its ID to a shared slice on Run.
type orderWorker struct {
	id    int
	order *[]int
}

func (o *orderWorker) Run(context.Context) {
	*o.order = append(*o.order, o.id)
}

func TestWorkers_Run_AllWorkersAreCalled(t *testing.T) {
	w1 := &mockWorker{}
	w2 := &mockWorker{}
	w3 := &mockWorker{}

	ws := &Workers{workers: []Worker{w1, w2, w3}}
	ws.Run(context.Background())

	for i, w := range []*mockWorker{w1, w2, w3} {
		assert.Equal(t, 1, w.runCount, "worker[%d]", i)
	}
}

func TestWorkers_Run_Empty(t *testing.T) {
	assert.NotPanics(t, func() {
		(&Workers{workers: []Worker{}}).Run(context.Background())
		(&Workers{}).Run(context.Background())
		(&Workers{}).Wait()
	})
}

func TestWorkers_Run_Order(t *testing.T) {
	var order []int

	ws := &Workers{workers: []Worker{
		&orderWorker{id: 1, order: &order},
		&orderWorker{id: 2, order: &order},
		&orderWorker{id: 3, order: &order},
	}}
	ws.Run(context.Background())

	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestWorkers_Wait_OnlyWaiters(t *testing.T) {
	var order []int
	waiting := &mockWorker{}

	ws := &Workers{workers: []Worker{&orderWorker{id: 1, order: &order}, waiting}}
	ws.Wait()

	assert.True(t, waiting.waited)
}

func TestNewWorkers(t *testing.T) {
	ctrl := gomock.NewController(t)
	services := &service.Services{
		SessionService: mock.NewMockSessionService(ctrl),
		Limiter:        mock.NewMockLoginLimiter(ctrl),
	}

	ws := NewWorkers(services, nil, nil, config.Workers{}, logger.Nop())
	assert.Len(t, ws.workers, 2)

	ws = NewWorkers(services, &fakePinger{}, &fakeHealth{}, config.Workers{}, logger.Nop())
	assert.Len(t, ws.workers, 3)

	// zero intervals disable every worker, so nothing is called
	ws.Run(context.Background())
	ws.Wait()
}
