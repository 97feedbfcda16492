// Package cart holds the in-memory cart of one checkout session.
//
// A Cart has a single owner and is not safe for concurrent use; callers that
// share one across goroutines must serialise access themselves (see
// service.POSService).
package cart

import (
	"strconv"
	"strings"
	"time"

	"go-pos-cart/internal/events"
	"go-pos-cart/internal/model"
	"go-pos-cart/internal/pricing"
	"go-pos-cart/pkg/validator"
)

type State int

const (
	Empty State = iota
	NonEmpty
)

func (s State) String() string {
	if s == NonEmpty {
		return "non_empty"
	}
	return "empty"
}

type Cart struct {
	calc     *pricing.Calculator
	observer events.Sink
	now      func() time.Time

	lines []model.CartLine // insertion order
	index map[string]int   // itemID -> position in lines
}

type Option func(*Cart)

// WithObserver receives an event after every successful mutation.
func WithObserver(s events.Sink) Option {
	return func(c *Cart) {
		if s != nil {
			c.observer = s
		}
	}
}

// WithClock overrides the event timestamp source.
func WithClock(now func() time.Time) Option {
	return func(c *Cart) {
		if now != nil {
			c.now = now
		}
	}
}

func New(calc *pricing.Calculator, opts ...Option) *Cart {
	c := &Cart{
		calc:     calc,
		observer: events.Discard,
		now:      time.Now,
		index:    make(map[string]int),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AddItem puts one unit of item in the cart. An existing line for the same
// item is incremented; otherwise a new line is appended with the item's name,
// category and price copied at this moment.
//
// Stock is only checked for being positive. Adding more units than the
// catalog holds is not re-validated here.
func (c *Cart) AddItem(item model.CatalogItem) error {
	if errs := validator.ValidateStruct(item); len(errs) > 0 {
		return model.NewCommandError(model.CodeInvalidItem, "%s", validator.Summary(errs))
	}
	if !item.Available() {
		return model.NewCommandError(model.CodeItemUnavailable, "%s is out of stock", item.Name)
	}

	if i, ok := c.index[item.ID]; ok {
		c.lines[i].Quantity++
		c.publish(events.Event{Type: events.ItemAdded, ItemID: item.ID, Name: c.lines[i].Name, Quantity: c.lines[i].Quantity})
		return nil
	}

	c.index[item.ID] = len(c.lines)
	c.lines = append(c.lines, model.NewCartLine(item))
	c.publish(events.Event{Type: events.ItemAdded, ItemID: item.ID, Name: item.Name, Quantity: 1})
	return nil
}

// SetQuantity replaces a line's quantity. A quantity of zero or less removes
// the line, and is a no-op when the line is absent. A positive quantity for
// an item that is not in the cart returns ErrUnknownItem.
func (c *Cart) SetQuantity(itemID string, quantity int) error {
	if quantity <= 0 {
		c.RemoveItem(itemID)
		return nil
	}

	i, ok := c.index[itemID]
	if !ok {
		return model.NewCommandError(model.CodeUnknownItem, "item %q is not in the cart", itemID)
	}
	if c.lines[i].Quantity == quantity {
		return nil
	}
	c.lines[i].Quantity = quantity
	c.publish(events.Event{Type: events.QuantityChanged, ItemID: itemID, Name: c.lines[i].Name, Quantity: quantity})
	return nil
}

// RemoveItem deletes the line for itemID. Removing an absent item does nothing.
func (c *Cart) RemoveItem(itemID string) {
	i, ok := c.index[itemID]
	if !ok {
		return
	}
	removed := c.lines[i]

	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	delete(c.index, itemID)
	for j := i; j < len(c.lines); j++ {
		c.index[c.lines[j].ItemID] = j
	}

	c.publish(events.Event{Type: events.ItemRemoved, ItemID: itemID, Name: removed.Name})
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.reset()
	c.publish(events.Event{Type: events.CartCleared})
}

// Drain hands the current lines to the caller and resets the cart in one
// step. It emits no event; checkout reports its own.
func (c *Cart) Drain() []model.CartLine {
	lines := c.lines
	c.reset()
	return lines
}

func (c *Cart) reset() {
	c.lines = nil
	c.index = make(map[string]int)
}

// Lines returns a copy of the lines in insertion order.
func (c *Cart) Lines() []model.CartLine {
	return model.CopyLines(c.lines)
}

// Line returns the line for itemID, if present.
func (c *Cart) Line(itemID string) (model.CartLine, bool) {
	i, ok := c.index[itemID]
	if !ok {
		return model.CartLine{}, false
	}
	return c.lines[i], true
}

// Len is the number of distinct lines.
func (c *Cart) Len() int {
	return len(c.lines)
}

// ItemCount is the sum of quantities across lines.
func (c *Cart) ItemCount() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

func (c *Cart) State() State {
	if c.IsEmpty() {
		return Empty
	}
	return NonEmpty
}

// Totals recomputes the full-precision summary from the current lines.
func (c *Cart) Totals() pricing.Summary {
	return c.calc.Compute(c.lines)
}

func (c *Cart) Calculator() *pricing.Calculator {
	return c.calc
}

func (c *Cart) publish(e events.Event) {
	e.At = c.now()
	c.observer.Publish(e)
}

// ParseQuantity converts quantity text typed by a cashier. Anything that is
// not a whole number is rejected rather than clamped.
func ParseQuantity(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, model.NewCommandError(model.CodeInvalidQuantity, "quantity is required")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, model.NewCommandError(model.CodeInvalidQuantity, "quantity %q is not a whole number", raw)
	}
	return n, nil
}
