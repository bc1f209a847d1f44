package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrOrderNotFound is returned when the remote store has no such order.
	ErrOrderNotFound = errors.New("order not found")
	// ErrRemoteRejected is returned when the remote order service declined a
	// dispatched action, typically because a concurrent change invalidated the
	// transition. The local snapshot must be refreshed, never retried as-is.
	ErrRemoteRejected = errors.New("action rejected by order service")
)

// ValidationError reports a field-level problem with an operator-supplied
// action payload. The request is never dispatched when one is raised.
type ValidationError struct {
	// Field is the offending payload field, in wire (snake_case) form.
	Field string
	// Message describes the violation.
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IneligibleActionError reports an action invoked outside its eligibility
// window, e.g. from a stale admin view racing a concurrent operator. Raised
// both by the eligibility resolver and defensively by request constructors.
type IneligibleActionError struct {
	// Action is the attempted action kind.
	Action ActionKind
	// Status is the order status the precondition was evaluated against.
	Status OrderStatus
	// Method is the order's delivery method.
	Method DeliveryMethod
	// Reason describes the failed precondition.
	Reason string
}

func (e *IneligibleActionError) Error() string {
	return fmt.Sprintf("action %s not eligible for order (status=%s, delivery=%s): %s",
		e.Action, e.Status, e.Method, e.Reason)
}

func newIneligibleError(action ActionKind, o *Order, reason string) *IneligibleActionError {
	return &IneligibleActionError{
		Action: action,
		Status: o.Status,
		Method: o.DeliveryMethod,
		Reason: reason,
	}
}
