// Package events carries cart and checkout notifications out of the engine.
// Sinks are called synchronously after a mutation has fully completed.
package events

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

type Type string

const (
	ItemAdded       Type = "item_added"
	QuantityChanged Type = "quantity_changed"
	ItemRemoved     Type = "item_removed"
	CartCleared     Type = "cart_cleared"
	CheckedOut      Type = "checked_out"
	CheckoutFailed  Type = "checkout_failed"
)

type Event struct {
	Type          Type             `json:"type"`
	ItemID        string           `json:"item_id,omitempty"`
	Name          string           `json:"name,omitempty"`
	Quantity      int              `json:"quantity,omitempty"`
	TransactionID string           `json:"transaction_id,omitempty"`
	PaymentMethod string           `json:"payment_method,omitempty"`
	Total         *decimal.Decimal `json:"total,omitempty"`
	Reason        string           `json:"reason,omitempty"`
	At            time.Time        `json:"at"`
}

type Sink interface {
	Publish(e Event)
}

// SinkFunc adapts a plain function to Sink.
type SinkFunc func(Event)

func (f SinkFunc) Publish(e Event) { f(e) }

// Discard drops every event.
var Discard Sink = SinkFunc(func(Event) {})

type multi []Sink

func (m multi) Publish(e Event) {
	for _, s := range m {
		s.Publish(e)
	}
}

// Multi fans each event out to every non-nil sink, in order.
func Multi(sinks ...Sink) Sink {
	out := make(multi, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

// Recorder keeps every published event in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Publish(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Types lists the recorded event types in publish order.
func (r *Recorder) Types() []Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Type, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}
