package checkout

import (
	"fmt"
	"time"

	"go-pos-cart/internal/cart"
	"go-pos-cart/internal/events"
	"go-pos-cart/internal/model"
	"go-pos-cart/internal/pricing"

	"go.uber.org/zap"
)

// IDGenerator issues transaction ids that are unique within the process.
type IDGenerator interface {
	Next() (string, error)
}

type Service interface {
	// Checkout freezes c into a Transaction paid with method and empties c.
	// On any error c is left exactly as it was.
	Checkout(c *cart.Cart, method model.PaymentMethod) (*model.Transaction, error)
}

type checkoutService struct {
	ids      IDGenerator
	now      func() time.Time
	logger   *zap.Logger
	observer events.Sink
}

type Option func(*checkoutService)

func WithClock(now func() time.Time) Option {
	return func(s *checkoutService) {
		if now != nil {
			s.now = now
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(s *checkoutService) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithObserver(o events.Sink) Option {
	return func(s *checkoutService) {
		if o != nil {
			s.observer = o
		}
	}
}

func NewService(ids IDGenerator, opts ...Option) Service {
	s := &checkoutService{
		ids:      ids,
		now:      time.Now,
		logger:   zap.NewNop(),
		observer: events.Discard,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *checkoutService) Checkout(c *cart.Cart, method model.PaymentMethod) (*model.Transaction, error) {
	if !method.Valid() {
		err := model.NewCommandError(model.CodeInvalidPaymentMethod, "unsupported payment method %q", method)
		s.reject(method, err)
		return nil, err
	}
	if c.IsEmpty() {
		err := model.NewCommandError(model.CodeEmptyCart, "checkout requires at least one line")
		s.reject(method, err)
		return nil, err
	}

	// Everything that can fail happens before the cart is touched.
	id, err := s.ids.Next()
	if err != nil {
		s.logger.Error("transaction id generation failed", zap.Error(err))
		return nil, fmt.Errorf("generate transaction id: %w", err)
	}
	at := s.now()

	summary := c.Totals().Rounded()
	totals := model.TransactionTotals{
		TaxRate:  c.Calculator().TaxRate(),
		Subtotal: summary.Subtotal,
		Tax:      summary.Tax,
		Total:    summary.Total,
	}
	tx := model.NewTransaction(id, at, method, c.Drain(), totals)

	total := tx.Total()
	s.observer.Publish(events.Event{
		Type:          events.CheckedOut,
		TransactionID: tx.ID(),
		PaymentMethod: method.String(),
		Quantity:      tx.ItemCount(),
		Total:         &total,
		At:            at,
	})
	s.logger.Info("checkout completed",
		zap.String("transaction_id", tx.ID()),
		zap.String("payment_method", method.String()),
		zap.Int("items", tx.ItemCount()),
		zap.String("total", pricing.Round2(total).StringFixed(2)))

	return tx, nil
}

// CheckoutCash is the quick-pay path: a cash checkout.
func CheckoutCash(s Service, c *cart.Cart) (*model.Transaction, error) {
	return s.Checkout(c, model.PaymentCash)
}

func (s *checkoutService) reject(method model.PaymentMethod, err error) {
	s.observer.Publish(events.Event{
		Type:          events.CheckoutFailed,
		PaymentMethod: method.String(),
		Reason:        err.Error(),
		At:            s.now(),
	})
	s.logger.Warn("checkout rejected",
		zap.String("payment_method", method.String()),
		zap.Error(err))
}
