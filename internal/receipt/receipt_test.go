package receipt

import (
	"strings"
	"testing"
	"time"

	"go-pos-cart/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleTransaction() *model.Transaction {
	lines := []model.CartLine{
		{ItemID: "1", Name: "Espresso", Category: "Coffee", UnitPrice: dec("2.50"), Quantity: 2},
		{ItemID: "2", Name: "Latte", Category: "Coffee", UnitPrice: dec("3.75"), Quantity: 1},
	}
	return model.NewTransaction(
		"TXN-0123456789",
		time.Date(2026, 10, 16, 14, 30, 5, 0, time.UTC),
		model.PaymentCard,
		lines,
		model.TransactionTotals{TaxRate: dec("0.08"), Subtotal: dec("8.75"), Tax: dec("0.70"), Total: dec("9.45")},
	)
}

var header = Header{StoreName: "Corner Pharmacy", Address: "12 High Street", Phone: "555-0100"}

func TestBuild(t *testing.T) {
	rc, err := Build(header, sampleTransaction(), time.UTC)
	require.NoError(t, err)

	assert.Equal(t, "TXN-0123456789", rc.TransactionID)
	assert.Equal(t, "2026-10-16 14:30:05", rc.Date)
	assert.Equal(t, "Card", rc.PaymentMethod)
	assert.Equal(t, 3, rc.ItemCount)
	assert.Equal(t, "Tax (8%)", rc.TaxLabel)
	require.Len(t, rc.Items, 2)
	assert.Equal(t, "5.00", rc.Items[0].Total.StringFixed(2))
	assert.Equal(t, "9.45", rc.Total.StringFixed(2))
}

func TestBuild_Errors(t *testing.T) {
	_, err := Build(header, nil, time.UTC)
	assert.ErrorIs(t, err, ErrNilTransaction)

	_, err = Build(Header{}, sampleTransaction(), time.UTC)
	assert.Error(t, err)
}

func TestTextRenderer_Render(t *testing.T) {
	r := NewTextRenderer(header, "$")
	r.Location = time.UTC

	text, err := r.Render(sampleTransaction())
	require.NoError(t, err)

	for _, want := range []string{
		"Corner Pharmacy",
		"Tel: 555-0100",
		"TXN-0123456789",
		"2 x $2.50",
		"$5.00",
		"Tax (8%)",
		"$0.70",
		"$9.45",
		"Card",
		"Thank you for your purchase!",
	} {
		assert.Contains(t, text, want)
	}

	for _, line := range strings.Split(text, "\n") {
		assert.LessOrEqual(t, len([]rune(line)), DefaultWidth, "line too wide: %q", line)
	}
}

func TestTextRenderer_Stable(t *testing.T) {
	r := NewTextRenderer(header, "$")
	r.Location = time.UTC
	tx := sampleTransaction()

	first, err := r.Render(tx)
	require.NoError(t, err)
	second, err := r.Render(tx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestTextRenderer_CustomLabels(t *testing.T) {
	h := header
	h.TaxLabel = "VAT"
	h.Footer = "See you soon"
	r := NewTextRenderer(h, "€")
	r.Location = time.UTC

	text, err := r.Render(sampleTransaction())
	require.NoError(t, err)
	assert.Contains(t, text, "VAT")
	assert.Contains(t, text, "€9.45")
	assert.Contains(t, text, "See you soon")
	assert.NotContains(t, text, "Thank you")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
}
