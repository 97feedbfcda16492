// Package notify fans engine events out to presentation subscribers
// (toasts, status lines) through a single broadcast loop.
package notify

import (
	"context"
	"encoding/json"
	"io"
	"sync"

	"go-pos-cart/internal/events"

	"go.uber.org/zap"
)

// DefaultBuffer is the number of pending broadcasts Publish may queue
// before it starts dropping.
const DefaultBuffer = 64

type Subscriber interface {
	Deliver(msg []byte) error
}

// membership is a register or unregister request; ack is closed once the
// subscriber set reflects it.
type membership struct {
	sub Subscriber
	ack chan struct{}
}

type Hub struct {
	subscribers map[Subscriber]bool
	register    chan membership
	unregister  chan membership
	broadcast   chan []byte
	done        chan struct{}
	mutex       sync.Mutex
	log         *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		subscribers: make(map[Subscriber]bool),
		register:    make(chan membership),
		unregister:  make(chan membership),
		broadcast:   make(chan []byte, DefaultBuffer),
		done:        make(chan struct{}),
		log:         log,
	}
}

// Run serves registrations and broadcasts until ctx is cancelled. Queued
// broadcasts are still delivered on the way out, then remaining subscribers
// that implement io.Closer are closed.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		h.mutex.Lock()
		h.drain()
		for sub := range h.subscribers {
			closeSubscriber(sub)
			delete(h.subscribers, sub)
		}
		h.mutex.Unlock()
		close(h.done)
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case req := <-h.register:
			h.mutex.Lock()
			h.subscribers[req.sub] = true
			h.mutex.Unlock()
			close(req.ack)
			h.log.Debug("subscriber registered")

		case req := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.subscribers[req.sub]; ok {
				delete(h.subscribers, req.sub)
				closeSubscriber(req.sub)
			}
			h.mutex.Unlock()
			close(req.ack)

		case message := <-h.broadcast:
			h.mutex.Lock()
			h.deliver(message)
			h.mutex.Unlock()
		}
	}
}

// deliver must be called with mutex held.
func (h *Hub) deliver(message []byte) {
	for sub := range h.subscribers {
		if err := sub.Deliver(message); err != nil {
			h.log.Warn("dropping subscriber", zap.Error(err))
			closeSubscriber(sub)
			delete(h.subscribers, sub)
		}
	}
}

// drain delivers whatever is still buffered without waiting for more.
// It must be called with mutex held.
func (h *Hub) drain() {
	for {
		select {
		case message := <-h.broadcast:
			h.deliver(message)
		default:
			return
		}
	}
}

// Register blocks until the running hub has added sub to its subscriber
// set. It returns false when the hub has already stopped.
func (h *Hub) Register(sub Subscriber) bool {
	return h.request(h.register, sub)
}

// Unregister blocks until sub has been removed and closed.
func (h *Hub) Unregister(sub Subscriber) {
	h.request(h.unregister, sub)
}

func (h *Hub) request(ch chan membership, sub Subscriber) bool {
	req := membership{sub: sub, ack: make(chan struct{})}
	select {
	case ch <- req:
	case <-h.done:
		return false
	}
	<-req.ack
	return true
}

// Broadcast queues msg for every subscriber without blocking. It reports
// whether the message was queued.
func (h *Hub) Broadcast(msg []byte) bool {
	select {
	case <-h.done:
		return false
	default:
	}
	select {
	case h.broadcast <- msg:
		return true
	default:
		h.log.Warn("notification buffer full, dropping message")
		return false
	}
}

// Publish implements events.Sink.
func (h *Hub) Publish(e events.Event) {
	payload, err := json.Marshal(e)
	if err != nil {
		h.log.Error("encode event", zap.String("type", string(e.Type)), zap.Error(err))
		return
	}
	h.Broadcast(payload)
}

func (h *Hub) Subscribers() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.subscribers)
}

// Done is closed once Run has returned.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

func closeSubscriber(sub Subscriber) {
	if c, ok := sub.(io.Closer); ok {
		_ = c.Close()
	}
}
