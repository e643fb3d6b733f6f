package event

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingHandler struct {
	types   []string
	handled []shared.DomainEvent
	err     error
	panics  bool
}

func (h *recordingHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	if h.panics {
		panic("boom")
	}
	h.handled = append(h.handled, event)
	return h.err
}

func (h *recordingHandler) EventTypes() []string {
	return h.types
}

func testEvent(eventType string) shared.DomainEvent {
	e := shared.NewBaseDomainEvent(eventType, "Test", uuid.New())
	return &e
}

func TestInMemoryEventBus(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	t.Run("routes events to matching handlers", func(t *testing.T) {
		bus := NewInMemoryEventBus(logger)
		saleHandler := &recordingHandler{types: []string{"sale.confirmed"}}
		stockHandler := &recordingHandler{types: []string{"inventory.low_stock"}}
		bus.Subscribe(saleHandler)
		bus.Subscribe(stockHandler)

		require.NoError(t, bus.Publish(ctx, testEvent("sale.confirmed")))

		assert.Len(t, saleHandler.handled, 1)
		assert.Empty(t, stockHandler.handled)
	})

	t.Run("wildcard handlers receive everything", func(t *testing.T) {
		bus := NewInMemoryEventBus(logger)
		wildcard := &recordingHandler{}
		bus.Subscribe(wildcard)

		require.NoError(t, bus.Publish(ctx, testEvent("sale.confirmed"), testEvent("inventory.low_stock")))
		assert.Len(t, wildcard.handled, 2)
	})

	t.Run("handler errors are returned to the publisher", func(t *testing.T) {
		bus := NewInMemoryEventBus(logger)
		failing := &recordingHandler{types: []string{"sale.confirmed"}, err: errors.New("no stock")}
		following := &recordingHandler{types: []string{"sale.confirmed"}}
		bus.Subscribe(failing)
		bus.Subscribe(following)

		err := bus.Publish(ctx, testEvent("sale.confirmed"))
		require.Error(t, err)
		// Later handlers still ran
		assert.Len(t, following.handled, 1)
	})

	t.Run("panicking handler is contained", func(t *testing.T) {
		bus := NewInMemoryEventBus(logger)
		bus.Subscribe(&recordingHandler{types: []string{"sale.confirmed"}, panics: true})

		err := bus.Publish(ctx, testEvent("sale.confirmed"))
		assert.Error(t, err)
	})

	t.Run("unsubscribe stops delivery", func(t *testing.T) {
		bus := NewInMemoryEventBus(logger)
		h := &recordingHandler{types: []string{"sale.confirmed"}}
		bus.Subscribe(h)
		bus.Unsubscribe(h)

		require.NoError(t, bus.Publish(ctx, testEvent("sale.confirmed")))
		assert.Empty(t, h.handled)
	})
}
