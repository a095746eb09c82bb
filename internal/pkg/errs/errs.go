package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Every concrete error in this package unwraps to one of
// these, so callers can classify with errors.Is.
var (
	ErrObjectNotFound    = errors.New("object not found")
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrValueIsOutOfRange = errors.New("value is out of range")
	ErrValueIsRequired   = errors.New("value is required")
	ErrInvalidState      = errors.New("invalid state")
	ErrConflict          = errors.New("conflict")
	ErrForbidden         = errors.New("forbidden")
	ErrCostComputation   = errors.New("cost computation failed")
	ErrExternalProvider  = errors.New("external provider failed")
)

// sanitize flattens newlines so error messages stay single-line in logs.
func sanitize(v any) string {
	return strings.ReplaceAll(fmt.Sprintf("%s", v), "\n", " ")
}

// ObjectNotFoundError reports that an object identified by ID could not be
// found under the given parameter name.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, e.ParamName, sanitize(e.ID), e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, sanitize(e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError reports a malformed or out-of-domain value.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a value outside its allowed bounds.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string, value, minValue, maxValue any, cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, e.Min, e.Max)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %s)", msg, e.Cause)
	}
	return msg
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError reports a missing required value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// InvalidStateError reports an operation that is not legal for the resource's
// current status, e.g. finalizing an already finalized order.
type InvalidStateError struct {
	Operation string
	Resource  string
	Current   string
}

func NewInvalidStateError(operation, resource, current string) *InvalidStateError {
	return &InvalidStateError{Operation: operation, Resource: resource, Current: current}
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s: cannot %s %s in status %s", ErrInvalidState, e.Operation, e.Resource, e.Current)
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// ConflictError reports a clash with existing state: a reservation held by
// another actor or a duplicate unique key. Holder identifies the conflicting
// actor when the conflict is a reservation.
type ConflictError struct {
	Resource string
	ID       any
	Holder   string
}

func NewConflictError(resource string, id any) *ConflictError {
	return &ConflictError{Resource: resource, ID: id}
}

func NewConflictErrorWithHolder(resource string, id any, holder string) *ConflictError {
	return &ConflictError{Resource: resource, ID: id, Holder: holder}
}

func (e *ConflictError) Error() string {
	if e.Holder != "" {
		return fmt.Sprintf("%s: %s %s held by %s", ErrConflict, e.Resource, sanitize(e.ID), e.Holder)
	}
	return fmt.Sprintf("%s: %s %s already exists", ErrConflict, e.Resource, sanitize(e.ID))
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// ForbiddenError reports an action the actor is not allowed to perform.
type ForbiddenError struct {
	Actor  string
	Action string
}

func NewForbiddenError(actor, action string) *ForbiddenError {
	return &ForbiddenError{Actor: actor, Action: action}
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("%s: %s may not %s", ErrForbidden, e.Actor, e.Action)
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// CostComputationError reports a cost reconciliation failure that could not
// be defaulted away.
type CostComputationError struct {
	OrderNumber string
	Cause       error
}

func NewCostComputationError(orderNumber string, cause error) *CostComputationError {
	return &CostComputationError{OrderNumber: orderNumber, Cause: cause}
}

func (e *CostComputationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: order %s (cause: %s)", ErrCostComputation, e.OrderNumber, e.Cause)
	}
	return fmt.Sprintf("%s: order %s", ErrCostComputation, e.OrderNumber)
}

func (e *CostComputationError) Unwrap() error {
	return ErrCostComputation
}

// ExternalProviderError reports an unreachable or misbehaving external
// source. The caller of the sync decides whether to retry; the core does not.
type ExternalProviderError struct {
	Provider string
	Cause    error
}

func NewExternalProviderError(provider string, cause error) *ExternalProviderError {
	return &ExternalProviderError{Provider: provider, Cause: cause}
}

func (e *ExternalProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrExternalProvider, e.Provider, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrExternalProvider, e.Provider)
}

func (e *ExternalProviderError) Unwrap() error {
	return ErrExternalProvider
}
