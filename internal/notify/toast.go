package notify

import (
	"encoding/json"
	"fmt"

	"go-pos-cart/internal/events"
	"go-pos-cart/internal/pricing"

	"go.uber.org/zap"
)

// Toast is the one-line user-facing text for an event.
func Toast(e events.Event, currency string) string {
	switch e.Type {
	case events.ItemAdded:
		return fmt.Sprintf("Added %s to cart", e.Name)
	case events.QuantityChanged:
		return fmt.Sprintf("%s quantity set to %d", e.Name, e.Quantity)
	case events.ItemRemoved:
		return fmt.Sprintf("Removed %s", e.Name)
	case events.CartCleared:
		return "Cart cleared"
	case events.CheckedOut:
		if e.Total != nil {
			return fmt.Sprintf("Payment completed: %s (%s, %s)",
				e.TransactionID, e.PaymentMethod, pricing.FormatMoney(currency, *e.Total))
		}
		return fmt.Sprintf("Payment completed: %s", e.TransactionID)
	case events.CheckoutFailed:
		return fmt.Sprintf("Checkout failed: %s", e.Reason)
	}
	return string(e.Type)
}

// LogSubscriber writes every notification to a zap logger as a toast.
type LogSubscriber struct {
	Log      *zap.Logger
	Currency string
}

func NewLogSubscriber(log *zap.Logger, currency string) *LogSubscriber {
	return &LogSubscriber{Log: log, Currency: currency}
}

func (s *LogSubscriber) Deliver(msg []byte) error {
	var e events.Event
	if err := json.Unmarshal(msg, &e); err != nil {
		return fmt.Errorf("decode notification: %w", err)
	}
	fields := []zap.Field{zap.String("type", string(e.Type))}
	if e.TransactionID != "" {
		fields = append(fields, zap.String("transaction_id", e.TransactionID))
	}
	if e.Type == events.CheckoutFailed {
		s.Log.Warn(Toast(e, s.Currency), fields...)
		return nil
	}
	s.Log.Info(Toast(e, s.Currency), fields...)
	return nil
}
