package model

import "strings"

type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "Cash"
	PaymentCard   PaymentMethod = "Card"
	PaymentQRCode PaymentMethod = "QR Code"
)

// PaymentMethods lists the accepted methods in display order.
var PaymentMethods = []PaymentMethod{PaymentCash, PaymentCard, PaymentQRCode}

// Valid reports whether m is one of the accepted methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentQRCode:
		return true
	}
	return false
}

func (m PaymentMethod) String() string {
	return string(m)
}

// ParsePaymentMethod maps user or config input onto a PaymentMethod.
// Matching ignores case and surrounding whitespace.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cash":
		return PaymentCash, nil
	case "card", "credit card", "debit card":
		return PaymentCard, nil
	case "qr", "qr code", "qrcode", "qr_code":
		return PaymentQRCode, nil
	}
	return "", NewCommandError(CodeInvalidPaymentMethod, "unsupported payment method %q", s)
}
