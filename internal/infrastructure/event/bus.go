package event

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/shared"
	"go.uber.org/zap"
)

// InMemoryEventBus implements EventBus with synchronous in-memory pub/sub.
// Handlers run in the caller's goroutine; a handler error is returned to
// the publisher so operations whose side effects must succeed (the stock
// deduction on sale confirmation) can surface the failure.
type InMemoryEventBus struct {
	registry *HandlerRegistry
	logger   *zap.Logger
	running  atomic.Bool
}

// NewInMemoryEventBus creates a new in-memory event bus
func NewInMemoryEventBus(logger *zap.Logger) *InMemoryEventBus {
	return &InMemoryEventBus{
		registry: NewHandlerRegistry(),
		logger:   logger,
	}
}

// Publish delivers events to all registered handlers synchronously.
// All handlers run even when one fails; the joined errors are returned.
func (b *InMemoryEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	var errs []error
	for _, event := range events {
		handlers := b.registry.GetHandlers(event.EventType())

		for _, handler := range handlers {
			if err := b.dispatchToHandler(ctx, handler, event); err != nil {
				b.logger.Error("handler failed to process event",
					zap.String("event_type", event.EventType()),
					zap.String("event_id", event.EventID().String()),
					zap.Error(err),
				)
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// Subscribe registers a handler for specific event types
func (b *InMemoryEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}
	b.registry.Register(handler, eventTypes...)
	b.logger.Debug("handler subscribed",
		zap.Strings("event_types", eventTypes),
	)
}

// Unsubscribe removes a handler
func (b *InMemoryEventBus) Unsubscribe(handler shared.EventHandler) {
	b.registry.Unregister(handler)
	b.logger.Debug("handler unsubscribed")
}

// Start starts the event bus
func (b *InMemoryEventBus) Start(ctx context.Context) error {
	b.running.Store(true)
	b.logger.Info("event bus started")
	return nil
}

// Stop stops the event bus gracefully
func (b *InMemoryEventBus) Stop(ctx context.Context) error {
	b.running.Store(false)
	b.logger.Info("event bus stopped")
	return nil
}

// dispatchToHandler safely dispatches an event to a handler
func (b *InMemoryEventBus) dispatchToHandler(ctx context.Context, handler shared.EventHandler, event shared.DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("handler panicked",
				zap.String("event_type", event.EventType()),
				zap.Any("panic", r),
			)
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()

	return handler.Handle(ctx, event)
}

// Ensure InMemoryEventBus implements EventBus
var _ shared.EventBus = (*InMemoryEventBus)(nil)
