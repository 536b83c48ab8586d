// Package events is the outbound port for orchestrator signals. Reactions
// (dispatch, payment intents, notifications) subscribe here instead of being
// called inline, so a broken reactor can never roll back the transaction that
// produced the event.
package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	OrderCreated       = "order.created"
	OrderStatusChanged = "order.status_changed"
	DeliveryAssigned   = "delivery.assigned"
	PaymentCompleted   = "payment.completed"
)

type Event struct {
	Name    string         `json:"name"`
	At      time.Time      `json:"at"`
	Payload map[string]any `json:"payload"`
}

func New(name string, payload map[string]any) Event {
	return Event{Name: name, At: time.Now().UTC(), Payload: payload}
}

// Publisher is injected into every orchestrator. Publish is fire-and-forget:
// implementations must not surface reactor failures to the caller.
type Publisher interface {
	Publish(ctx context.Context, e Event)
}

type Handler func(ctx context.Context, e Event)

// Bus is the in-process Publisher: a subscriber list keyed by event name.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[string][]Handler)}
}

func (b *Bus) Subscribe(name string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[name] = append(b.handlers[name], h)
}

// Publish runs each subscriber in its own goroutine; panics are recovered and
// logged so one reactor cannot take out the others.
func (b *Bus) Publish(ctx context.Context, e Event) {
	b.mu.RLock()
	hs := b.handlers[e.Name]
	b.mu.RUnlock()

	for _, h := range hs {
		h := h
		go func() {
			defer func() {
				if r := recover(); r != nil {
					logrus.WithField("event", e.Name).Errorf("event handler panic: %v", r)
				}
			}()
			h(ctx, e)
		}()
	}
}

// MarshalEvent renders an event for wire transports.
func MarshalEvent(e Event) ([]byte, error) {
	return json.Marshal(e)
}
