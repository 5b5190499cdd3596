package shop

import "fmt"

type Code int

const (
	CodeNotFound Code = iota
	CodePrerequisiteMissing
)

func (c Code) String() string {
	switch c {
	case CodeNotFound:
		return "NOT_FOUND"
	case CodePrerequisiteMissing:
		return "PREREQUISITE_MISSING"
	default:
		return "UNKNOWN"
	}
}

// Error is a recoverable, user-facing condition. None of these are fatal.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

var (
	ErrProductNotFound = &Error{Code: CodeNotFound, Message: "Product not found."}
	ErrOrderNotFound   = &Error{Code: CodeNotFound, Message: "Order not found."}
	ErrCartEmpty       = &Error{Code: CodePrerequisiteMissing, Message: "Your cart is empty. Add items before checkout."}
	ErrAddressRequired = &Error{Code: CodePrerequisiteMissing, Message: "Please enter a shipping address first."}
)
