// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface and a Workers aggregate that allows
// running multiple workers in a unified way.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Run must not block: long-running workers start their own goroutine and
// stop when ctx is cancelled.
type Worker interface {
	Run(ctx context.Context)
}

// waiter is implemented by workers that can report when their goroutine
// has exited.
type waiter interface {
	Wait()
}

// Pinger is satisfied by *sql.DB and therefore by *store.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthReporter receives the outcome of every health probe.
type HealthReporter interface {
	SetServing(serving bool)
}
