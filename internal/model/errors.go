package model

import "fmt"

type ErrorCode int

const (
	CodeEmptyCart ErrorCode = iota + 1
	CodeUnknownItem
	CodeInvalidQuantity
	CodeItemUnavailable
	CodeInvalidItem
	CodeInvalidPaymentMethod
	CodeItemNotFound
)

func (c ErrorCode) String() string {
	switch c {
	case CodeEmptyCart:
		return "EMPTY_CART"
	case CodeUnknownItem:
		return "UNKNOWN_ITEM"
	case CodeInvalidQuantity:
		return "INVALID_QUANTITY"
	case CodeItemUnavailable:
		return "ITEM_UNAVAILABLE"
	case CodeInvalidItem:
		return "INVALID_ITEM"
	case CodeInvalidPaymentMethod:
		return "INVALID_PAYMENT_METHOD"
	case CodeItemNotFound:
		return "ITEM_NOT_FOUND"
	default:
		return "UNKNOWN"
	}
}

// CommandError is returned by cart and checkout operations. Two errors match
// under errors.Is when their codes are equal, so callers compare against the
// sentinels below regardless of the message.
type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return e.Code.String() + ": " + e.Message
}

func (e *CommandError) Is(target error) bool {
	t, ok := target.(*CommandError)
	return ok && t.Code == e.Code
}

func NewCommandError(code ErrorCode, format string, args ...interface{}) *CommandError {
	return &CommandError{Code: code, Message: fmt.Sprintf(format, args...)}
}

var (
	ErrEmptyCart            = &CommandError{Code: CodeEmptyCart, Message: "cart has no lines"}
	ErrUnknownItem          = &CommandError{Code: CodeUnknownItem, Message: "item is not in the cart"}
	ErrInvalidQuantity      = &CommandError{Code: CodeInvalidQuantity, Message: "quantity must be a whole number"}
	ErrItemUnavailable      = &CommandError{Code: CodeItemUnavailable, Message: "item is out of stock"}
	ErrInvalidItem          = &CommandError{Code: CodeInvalidItem, Message: "catalog item is invalid"}
	ErrInvalidPaymentMethod = &CommandError{Code: CodeInvalidPaymentMethod, Message: "unsupported payment method"}
	ErrItemNotFound         = &CommandError{Code: CodeItemNotFound, Message: "item is not in the catalog"}
)
