package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-pos-cart/internal/events"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type chanSubscriber struct {
	msgs   chan []byte
	fail   bool
	closed chan struct{}
}

func newChanSubscriber() *chanSubscriber {
	return &chanSubscriber{msgs: make(chan []byte, 16), closed: make(chan struct{})}
}

func (s *chanSubscriber) Deliver(msg []byte) error {
	if s.fail {
		return errors.New("connection reset")
	}
	s.msgs <- msg
	return nil
}

func (s *chanSubscriber) Close() error {
	close(s.closed)
	return nil
}

func (s *chanSubscriber) next(t *testing.T) []byte {
	t.Helper()
	select {
	case m := <-s.msgs:
		return m
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for notification")
		return nil
	}
}

func startHub(t *testing.T) (*Hub, context.CancelFunc) {
	t.Helper()
	hub := NewHub(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(func() {
		cancel()
		<-hub.Done()
	})
	return hub, cancel
}

func TestHub_PublishReachesSubscribers(t *testing.T) {
	hub, _ := startHub(t)
	a, b := newChanSubscriber(), newChanSubscriber()
	require.True(t, hub.Register(a))
	require.True(t, hub.Register(b))
	assert.Equal(t, 2, hub.Subscribers())

	total := decimal.RequireFromString("9.45")
	hub.Publish(events.Event{Type: events.CheckedOut, TransactionID: "TXN-1", Total: &total})

	for _, sub := range []*chanSubscriber{a, b} {
		var got events.Event
		require.NoError(t, json.Unmarshal(sub.next(t), &got))
		assert.Equal(t, events.CheckedOut, got.Type)
		assert.Equal(t, "TXN-1", got.TransactionID)
		require.NotNil(t, got.Total)
		assert.True(t, total.Equal(*got.Total))
	}
}

func TestHub_FailingSubscriberIsDropped(t *testing.T) {
	hub, _ := startHub(t)
	bad := newChanSubscriber()
	bad.fail = true
	good := newChanSubscriber()
	hub.Register(bad)
	hub.Register(good)

	hub.Publish(events.Event{Type: events.CartCleared})
	good.next(t)

	select {
	case <-bad.closed:
	case <-time.After(time.Second):
		t.Fatal("failing subscriber was not closed")
	}
	assert.Equal(t, 1, hub.Subscribers())
}

func TestHub_RegisterIsVisibleOnReturn(t *testing.T) {
	hub, _ := startHub(t)
	for i := 1; i <= 50; i++ {
		require.True(t, hub.Register(newChanSubscriber()))
		require.Equal(t, i, hub.Subscribers())
	}
}

func TestHub_Unregister(t *testing.T) {
	hub, _ := startHub(t)
	sub := newChanSubscriber()
	hub.Register(sub)
	hub.Unregister(sub)

	assert.Equal(t, 0, hub.Subscribers())
	select {
	case <-sub.closed:
	default:
		t.Fatal("unregistered subscriber was not closed")
	}
}

// gatedSubscriber holds the hub inside Deliver until the gate opens.
type gatedSubscriber struct {
	gate    chan struct{}
	entered chan struct{}
	got     [][]byte
}

func (s *gatedSubscriber) Deliver(msg []byte) error {
	if len(s.got) == 0 {
		close(s.entered)
		<-s.gate
	}
	s.got = append(s.got, msg)
	return nil
}

func TestHub_StopDeliversQueuedMessages(t *testing.T) {
	hub := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	sub := &gatedSubscriber{gate: make(chan struct{}), entered: make(chan struct{})}
	require.True(t, hub.Register(sub))

	require.True(t, hub.Broadcast([]byte("first")))
	<-sub.entered
	for _, m := range []string{"second", "third", "checked_out"} {
		require.True(t, hub.Broadcast([]byte(m)))
	}
	cancel()
	close(sub.gate)
	<-hub.Done()

	var got []string
	for _, m := range sub.got {
		got = append(got, string(m))
	}
	assert.Equal(t, []string{"first", "second", "third", "checked_out"}, got)
}

func TestHub_StopClosesSubscribers(t *testing.T) {
	hub := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	sub := newChanSubscriber()
	require.True(t, hub.Register(sub))
	cancel()
	<-hub.Done()

	<-sub.closed
	assert.False(t, hub.Register(newChanSubscriber()))
	assert.False(t, hub.Broadcast([]byte("late")))
}

func TestHub_BroadcastDropsWhenFull(t *testing.T) {
	hub := NewHub(nil) // not running, nothing drains the buffer
	for i := 0; i < DefaultBuffer; i++ {
		require.True(t, hub.Broadcast([]byte("x")))
	}
	assert.False(t, hub.Broadcast([]byte("overflow")))
}

func TestLogSubscriber(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	sub := NewLogSubscriber(zap.New(core), "$")

	total := decimal.RequireFromString("5.40")
	msg, err := json.Marshal(events.Event{Type: events.CheckedOut, TransactionID: "TXN-ABC", PaymentMethod: "Cash", Total: &total})
	require.NoError(t, err)
	require.NoError(t, sub.Deliver(msg))

	msg, err = json.Marshal(events.Event{Type: events.CheckoutFailed, Reason: "cart is empty"})
	require.NoError(t, err)
	require.NoError(t, sub.Deliver(msg))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "Payment completed: TXN-ABC (Cash, $5.40)", entries[0].Message)
	assert.Equal(t, "TXN-ABC", entries[0].ContextMap()["transaction_id"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "Checkout failed: cart is empty", entries[1].Message)

	assert.Error(t, sub.Deliver([]byte("not json")))
}

func TestToast(t *testing.T) {
	assert.Equal(t, "Added Espresso to cart", Toast(events.Event{Type: events.ItemAdded, Name: "Espresso"}, "$"))
	assert.Equal(t, "Espresso quantity set to 3", Toast(events.Event{Type: events.QuantityChanged, Name: "Espresso", Quantity: 3}, "$"))
	assert.Equal(t, "Removed Espresso", Toast(events.Event{Type: events.ItemRemoved, Name: "Espresso"}, "$"))
	assert.Equal(t, "Cart cleared", Toast(events.Event{Type: events.CartCleared}, "$"))
	assert.Equal(t, "Payment completed: TXN-1", Toast(events.Event{Type: events.CheckedOut, TransactionID: "TXN-1"}, "$"))
}
