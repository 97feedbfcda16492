package service

import (
	"context"
	"fmt"
	"sync"

	"go-pos-cart/internal/cart"
	"go-pos-cart/internal/catalog"
	"go-pos-cart/internal/checkout"
	"go-pos-cart/internal/events"
	"go-pos-cart/internal/model"
	"go-pos-cart/internal/pricing"
	"go-pos-cart/internal/receipt"

	"go.uber.org/zap"
)

// CartView is a read-only picture of the cart with display-ready totals.
type CartView struct {
	Lines  []model.CartLine
	State  cart.State
	Totals pricing.Summary
}

type CheckoutResult struct {
	Transaction *model.Transaction
	Receipt     string
}

// TransactionRecorder receives every completed transaction.
type TransactionRecorder interface {
	Record(tx *model.Transaction)
}

type POSService interface {
	Catalog(ctx context.Context, f catalog.Filter) ([]model.CatalogItem, error)
	Categories(ctx context.Context) ([]string, error)
	Add(ctx context.Context, itemID string) (CartView, error)
	SetQuantity(itemID string, quantity int) (CartView, error)
	SetQuantityText(itemID, raw string) (CartView, error)
	Remove(itemID string) CartView
	Clear() CartView
	Cart() CartView
	Checkout(method model.PaymentMethod) (*CheckoutResult, error)
}

type posService struct {
	mu       sync.Mutex
	catalog  *catalog.MemoryCatalog
	cart     *cart.Cart
	checkout checkout.Service
	renderer receipt.Renderer
	recorder TransactionRecorder
	log      *zap.Logger
}

type POSOption func(*posOptions)

type posOptions struct {
	sink     events.Sink
	recorder TransactionRecorder
	log      *zap.Logger
}

// WithEvents sends cart events to s.
func WithEvents(s events.Sink) POSOption {
	return func(o *posOptions) { o.sink = s }
}

func WithRecorder(r TransactionRecorder) POSOption {
	return func(o *posOptions) { o.recorder = r }
}

func WithLogger(l *zap.Logger) POSOption {
	return func(o *posOptions) { o.log = l }
}

// NewPOSService opens a terminal session. The catalog is read once here and
// stays fixed for the lifetime of the session.
func NewPOSService(
	ctx context.Context,
	provider catalog.Provider,
	calc *pricing.Calculator,
	co checkout.Service,
	renderer receipt.Renderer,
	opts ...POSOption,
) (POSService, error) {
	o := posOptions{sink: events.Discard, log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if provider == nil || calc == nil || co == nil || renderer == nil {
		return nil, fmt.Errorf("pos service: catalog, calculator, checkout and renderer are required")
	}

	snap, err := catalog.Snapshot(ctx, provider)
	if err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}

	return &posService{
		catalog:  snap,
		cart:     cart.New(calc, cart.WithObserver(o.sink)),
		checkout: co,
		renderer: renderer,
		recorder: o.recorder,
		log:      o.log,
	}, nil
}

func (s *posService) Catalog(ctx context.Context, f catalog.Filter) ([]model.CatalogItem, error) {
	items, err := s.catalog.Items(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Offered(items, f), nil
}

func (s *posService) Categories(ctx context.Context) ([]string, error) {
	items, err := s.catalog.Items(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Categories(items), nil
}

func (s *posService) Add(ctx context.Context, itemID string) (CartView, error) {
	item, err := s.catalog.Find(ctx, itemID)
	if err != nil {
		return s.Cart(), err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.cart.AddItem(item); err != nil {
		s.log.Debug("add rejected", zap.String("item_id", itemID), zap.Error(err))
		return s.view(), err
	}
	return s.view(), nil
}

func (s *posService) SetQuantity(itemID string, quantity int) (CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.cart.SetQuantity(itemID, quantity)
	return s.view(), err
}

// SetQuantityText applies a quantity typed into the UI.
func (s *posService) SetQuantityText(itemID, raw string) (CartView, error) {
	qty, err := cart.ParseQuantity(raw)
	if err != nil {
		return s.Cart(), err
	}
	return s.SetQuantity(itemID, qty)
}

func (s *posService) Remove(itemID string) CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.RemoveItem(itemID)
	return s.view()
}

func (s *posService) Clear() CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Clear()
	return s.view()
}

func (s *posService) Cart() CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view()
}

// Checkout completes the sale. A rendering failure does not undo the sale:
// the transaction is still returned alongside the error.
func (s *posService) Checkout(method model.PaymentMethod) (*CheckoutResult, error) {
	s.mu.Lock()
	tx, err := s.checkout.Checkout(s.cart, method)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	if s.recorder != nil {
		s.recorder.Record(tx)
	}

	result := &CheckoutResult{Transaction: tx}
	text, err := s.renderer.Render(tx)
	if err != nil {
		s.log.Error("render receipt", zap.String("transaction_id", tx.ID()), zap.Error(err))
		return result, fmt.Errorf("render receipt for %s: %w", tx.ID(), err)
	}
	result.Receipt = text
	return result, nil
}

// view must be called with mu held.
func (s *posService) view() CartView {
	return CartView{
		Lines:  s.cart.Lines(),
		State:  s.cart.State(),
		Totals: s.cart.Totals().Rounded(),
	}
}
