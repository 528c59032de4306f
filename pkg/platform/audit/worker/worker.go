// Package worker drains audit events from a channel into a store.
package worker

import (
	"context"
	"log/slog"

	audit "mintgate/pkg/platform/audit"
)

// Worker consumes audit events from a channel and persists them. Store
// failures are logged and skipped; audit is a best-effort side channel and
// one bad write must not stall the queue.
type Worker struct {
	store  audit.Store
	sink   audit.Sink
	inbox  <-chan audit.Event
	logger *slog.Logger
}

// Option configures the Worker.
type Option func(*Worker)

// WithSink forwards each event to an out-of-process sink before the store
// write. Sink failures are logged, never retried here.
func WithSink(sink audit.Sink) Option {
	return func(w *Worker) {
		w.sink = sink
	}
}

func NewWorker(store audit.Store, inbox <-chan audit.Event, logger *slog.Logger, opts ...Option) *Worker {
	w := &Worker{store: store, inbox: inbox, logger: logger}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run consumes until ctx is cancelled or the inbox is closed. A closed inbox
// returns nil so a clean shutdown drains everything already enqueued.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.inbox:
			if !ok {
				return nil
			}
			w.handle(ctx, event)
		}
	}
}

func (w *Worker) handle(ctx context.Context, event audit.Event) {
	if w.sink != nil {
		if err := w.sink.Deliver(ctx, event); err != nil && w.logger != nil {
			w.logger.WarnContext(ctx, "audit sink delivery failed",
				"action", event.Action,
				"error", err,
			)
		}
	}
	if err := w.store.Append(ctx, event); err != nil && w.logger != nil {
		w.logger.WarnContext(ctx, "audit append failed",
			"action", event.Action,
			"error", err,
		)
	}
}
