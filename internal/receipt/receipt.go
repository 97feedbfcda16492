// Package receipt turns a completed transaction into a printable receipt.
// It only reads transactions; nothing here feeds back into the cart.
package receipt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go-pos-cart/internal/model"
	"go-pos-cart/internal/pricing"
	"go-pos-cart/pkg/validator"

	"github.com/shopspring/decimal"
)

const (
	DefaultWidth  = 40
	defaultFooter = "Thank you for your purchase!"
	dateLayout    = "2006-01-02 15:04:05"
)

var ErrNilTransaction = errors.New("receipt: transaction is nil")

// Header is the store block printed above the items.
type Header struct {
	StoreName string `json:"store_name" validate:"required"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	TaxLabel  string `json:"tax_label,omitempty"`
	Footer    string `json:"footer,omitempty"`
}

type Item struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

// Receipt is a display-ready value built from a transaction.
type Receipt struct {
	Header        Header          `json:"header"`
	TransactionID string          `json:"transaction_id"`
	Date          string          `json:"date"`
	PaymentMethod string          `json:"payment_method"`
	Items         []Item          `json:"items"`
	ItemCount     int             `json:"item_count"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxLabel      string          `json:"tax_label"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
}

type Renderer interface {
	Render(tx *model.Transaction) (string, error)
}

// Build assembles the receipt value for tx.
func Build(h Header, tx *model.Transaction, loc *time.Location) (*Receipt, error) {
	if tx == nil {
		return nil, ErrNilTransaction
	}
	if errs := validator.ValidateStruct(h); len(errs) > 0 {
		return nil, fmt.Errorf("invalid receipt header: %s", validator.Summary(errs))
	}
	if loc == nil {
		loc = time.Local
	}

	lines := tx.Lines()
	items := make([]Item, 0, len(lines))
	for _, l := range lines {
		items = append(items, Item{
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: pricing.Round2(l.UnitPrice),
			Total:     pricing.Round2(l.LineTotal()),
		})
	}

	taxLabel := h.TaxLabel
	if taxLabel == "" {
		taxLabel = "Tax (" + pricing.FormatRate(tx.TaxRate()) + ")"
	}

	return &Receipt{
		Header:        h,
		TransactionID: tx.ID(),
		Date:          tx.Timestamp().In(loc).Format(dateLayout),
		PaymentMethod: tx.PaymentMethod().String(),
		Items:         items,
		ItemCount:     tx.ItemCount(),
		Subtotal:      tx.Subtotal(),
		TaxLabel:      taxLabel,
		Tax:           tx.Tax(),
		Total:         tx.Total(),
	}, nil
}

// TextRenderer prints fixed-width receipts for thermal printers and terminals.
type TextRenderer struct {
	Header   Header
	Currency string
	Width    int
	Location *time.Location
}

func NewTextRenderer(h Header, currency string) *TextRenderer {
	return &TextRenderer{Header: h, Currency: currency, Width: DefaultWidth}
}

func (r *TextRenderer) Render(tx *model.Transaction) (string, error) {
	rc, err := Build(r.Header, tx, r.Location)
	if err != nil {
		return "", err
	}
	return r.Format(rc), nil
}

// Format lays out rc. The same receipt always formats to the same text.
func (r *TextRenderer) Format(rc *Receipt) string {
	width := r.Width
	if width < 24 {
		width = DefaultWidth
	}
	heavy := strings.Repeat("=", width)
	light := strings.Repeat("-", width)
	money := func(d decimal.Decimal) string { return pricing.FormatMoney(r.Currency, d) }

	var b strings.Builder
	b.WriteString(heavy + "\n")
	b.WriteString(center(rc.Header.StoreName, width) + "\n")
	if rc.Header.Address != "" {
		b.WriteString(center(rc.Header.Address, width) + "\n")
	}
	if rc.Header.Phone != "" {
		b.WriteString(center("Tel: "+rc.Header.Phone, width) + "\n")
	}
	b.WriteString(heavy + "\n")
	b.WriteString(pair("Transaction:", rc.TransactionID, width) + "\n")
	b.WriteString(pair("Date:", rc.Date, width) + "\n")
	b.WriteString(light + "\n")

	for _, it := range rc.Items {
		b.WriteString(truncate(it.Name, width) + "\n")
		detail := fmt.Sprintf("  %d x %s", it.Quantity, money(it.UnitPrice))
		b.WriteString(pair(detail, money(it.Total), width) + "\n")
	}

	b.WriteString(light + "\n")
	b.WriteString(pair(fmt.Sprintf("Items: %d", rc.ItemCount), "", width) + "\n")
	b.WriteString(pair("Subtotal", money(rc.Subtotal), width) + "\n")
	b.WriteString(pair(rc.TaxLabel, money(rc.Tax), width) + "\n")
	b.WriteString(pair("TOTAL", money(rc.Total), width) + "\n")
	b.WriteString(pair("Payment", rc.PaymentMethod, width) + "\n")
	b.WriteString(heavy + "\n")

	footer := rc.Header.Footer
	if footer == "" {
		footer = defaultFooter
	}
	b.WriteString(center(footer, width) + "\n")
	b.WriteString(heavy)
	return b.String()
}

func center(s string, width int) string {
	s = truncate(s, width)
	pad := (width - len([]rune(s))) / 2
	return strings.Repeat(" ", pad) + s
}

func pair(left, right string, width int) string {
	gap := width - len([]rune(left)) - len([]rune(right))
	if gap < 1 {
		gap = 1
	}
	return strings.TrimRight(left+strings.Repeat(" ", gap)+right, " ")
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
