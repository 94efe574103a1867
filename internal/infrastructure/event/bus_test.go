package event

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stocktally/backend/internal/domain/shared"
)

type stubHandler struct {
	types    []string
	received []shared.DomainEvent
	fail     bool
	panics   bool
}

func (h *stubHandler) EventTypes() []string { return h.types }

func (h *stubHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	if h.panics {
		panic("boom")
	}
	h.received = append(h.received, event)
	if h.fail {
		return errors.New("handler failure")
	}
	return nil
}

func newTestEvent(eventType string) shared.DomainEvent {
	e := shared.NewBaseDomainEvent(eventType, "Test", uuid.New(), uuid.New())
	return &e
}

func TestInMemoryEventBus(t *testing.T) {
	t.Run("delivers events to subscribed handlers", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := &stubHandler{types: []string{"test.created"}}
		bus.Subscribe(handler)

		err := bus.Publish(context.Background(), newTestEvent("test.created"))

		require.NoError(t, err)
		require.Len(t, handler.received, 1)
		assert.Equal(t, "test.created", handler.received[0].EventType())
	})

	t.Run("does not deliver unrelated event types", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := &stubHandler{types: []string{"test.created"}}
		bus.Subscribe(handler)

		err := bus.Publish(context.Background(), newTestEvent("test.deleted"))

		require.NoError(t, err)
		assert.Empty(t, handler.received)
	})

	t.Run("explicit event types override the handler's own", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := &stubHandler{types: []string{"test.created"}}
		bus.Subscribe(handler, "test.deleted")

		err := bus.Publish(context.Background(), newTestEvent("test.deleted"))

		require.NoError(t, err)
		assert.Len(t, handler.received, 1)
	})

	t.Run("a failing handler does not fail the publish", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		failing := &stubHandler{types: []string{"test.created"}, fail: true}
		healthy := &stubHandler{types: []string{"test.created"}}
		bus.Subscribe(failing)
		bus.Subscribe(healthy)

		err := bus.Publish(context.Background(), newTestEvent("test.created"))

		require.NoError(t, err)
		assert.Len(t, healthy.received, 1)
	})

	t.Run("a panicking handler is contained", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		panicking := &stubHandler{types: []string{"test.created"}, panics: true}
		healthy := &stubHandler{types: []string{"test.created"}}
		bus.Subscribe(panicking)
		bus.Subscribe(healthy)

		require.NotPanics(t, func() {
			_ = bus.Publish(context.Background(), newTestEvent("test.created"))
		})
		assert.Len(t, healthy.received, 1)
	})

	t.Run("unsubscribe stops delivery", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := &stubHandler{types: []string{"test.created"}}
		bus.Subscribe(handler)
		bus.Unsubscribe(handler)

		err := bus.Publish(context.Background(), newTestEvent("test.created"))

		require.NoError(t, err)
		assert.Empty(t, handler.received)
	})
}
