// Package publisher emits audit events to a store, optionally through an
// async buffer so decision paths never block on audit persistence.
package publisher

import (
	"context"
	"log/slog"
	"sync"
	"time"

	id "mintgate/pkg/domain"
	audit "mintgate/pkg/platform/audit"
	"mintgate/pkg/platform/audit/worker"
)

// Publisher captures structured audit events. In sync mode Emit writes
// through to the store; with an async buffer Emit enqueues and a background
// goroutine drains. Either way Emit never fails the caller's decision path:
// a full buffer drops the event with a logged warning.
type Publisher struct {
	store  audit.Store
	sink   audit.Sink
	logger *slog.Logger

	inbox chan audit.Event
	done  chan struct{}
	once  sync.Once
}

// Option configures the Publisher.
type Option func(*Publisher)

// WithAsyncBuffer enables async emission with the given buffer size.
func WithAsyncBuffer(size int) Option {
	return func(p *Publisher) {
		p.inbox = make(chan audit.Event, size)
	}
}

// WithLogger sets a logger for drop/failure reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// WithSink forwards a copy of every event to an out-of-process sink.
func WithSink(sink audit.Sink) Option {
	return func(p *Publisher) {
		p.sink = sink
	}
}

func NewPublisher(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{store: store}
	for _, opt := range opts {
		opt(p)
	}
	if p.inbox != nil {
		p.done = make(chan struct{})
		go p.drain()
	}
	return p
}

// Emit records an audit event. Never returns an error for async publishers;
// sync store failures are surfaced so callers that want fail-closed
// semantics (compliance writes) can have them.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.Category == "" {
		event.Category = audit.AuditEvent(event.Action).Category()
	}

	if p.inbox == nil {
		return p.write(ctx, event)
	}

	select {
	case p.inbox <- event:
	default:
		if p.logger != nil {
			p.logger.Warn("audit buffer full, dropping event", "action", event.Action)
		}
	}
	return nil
}

// List returns the stored events for a user.
func (p *Publisher) List(ctx context.Context, userID id.UserID) ([]audit.Event, error) {
	return p.store.ListByUser(ctx, userID)
}

// Close drains any buffered events and stops the background goroutine.
func (p *Publisher) Close() {
	p.once.Do(func() {
		if p.inbox != nil {
			close(p.inbox)
			<-p.done
		}
	})
}

// drain hands the inbox to a worker. Run returns once the inbox closes, so
// Close observes a fully drained queue.
func (p *Publisher) drain() {
	defer close(p.done)
	opts := []worker.Option{}
	if p.sink != nil {
		opts = append(opts, worker.WithSink(p.sink))
	}
	_ = worker.NewWorker(p.store, p.inbox, p.logger, opts...).Run(context.Background())
}

func (p *Publisher) write(ctx context.Context, event audit.Event) error {
	if p.sink != nil {
		if err := p.sink.Deliver(ctx, event); err != nil && p.logger != nil {
			p.logger.Warn("audit sink delivery failed", "action", event.Action, "error", err)
		}
	}
	return p.store.Append(ctx, event)
}
