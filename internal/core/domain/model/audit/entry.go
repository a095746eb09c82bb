// Package audit contains the append-only AuditEntry record written when an
// order changes state. Entries are never mutated or deleted, except when
// their order is removed entirely.
package audit

import (
	"errors"
	"time"

	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/kernel"
	"github.com/GhostBC/SistemaLogistica/internal/pkg/errs"
	"github.com/GhostBC/SistemaLogistica/internal/pkg/guard"
)

var (
	// ErrEntryIsNotConstructed is returned when an Entry instance was not
	// created through NewEntry or RestoreEntry.
	ErrEntryIsNotConstructed = errors.New(
		"Entry must be created via NewEntry or RestoreEntry constructor")
)

// Entry is one append-only audit record: who did what to which order, with
// JSON snapshots of the state before and after. Only state-changing actions
// produce entries; a finalize appends exactly one, and later edits append
// none.
type Entry struct {
	id          kernel.UUID
	actor       string
	action      string
	resource    string
	orderNumber string
	before      string
	after       string
	occurredAt  time.Time

	guard guard.ConstructorGuard
}

// NewEntry creates an audit entry. before and after hold JSON snapshots and
// may be empty when the action has no meaningful prior state.
func NewEntry(
	id kernel.UUID,
	actor string,
	action string,
	resource string,
	orderNumber string,
	before string,
	after string,
	occurredAt time.Time,
) (*Entry, error) {
	e := &Entry{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		e.setID(id),
		e.setActor(actor),
		e.setAction(action),
		e.setResource(resource),
		e.setOrderNumber(orderNumber),
	); err != nil {
		return nil, err
	}

	e.before = before
	e.after = after
	e.occurredAt = occurredAt
	return e, nil
}

// RestoreEntry reconstructs an audit entry from persistent storage.
func RestoreEntry(
	id kernel.UUID,
	actor string,
	action string,
	resource string,
	orderNumber string,
	before string,
	after string,
	occurredAt time.Time,
) (*Entry, error) {
	return NewEntry(id, actor, action, resource, orderNumber, before, after, occurredAt)
}

// Validate ensures the Entry was properly constructed.
func (e *Entry) Validate() error {
	if e == nil {
		return ErrEntryIsNotConstructed
	}
	return e.guard.Validate(ErrEntryIsNotConstructed)
}

// ID returns the entry's unique identifier.
func (e *Entry) ID() kernel.UUID {
	return e.id
}

// Actor returns who performed the action.
func (e *Entry) Actor() string {
	return e.actor
}

// Action returns the performed action (e.g. "finalize").
func (e *Entry) Action() string {
	return e.action
}

// Resource returns the kind of resource acted on (e.g. "order").
func (e *Entry) Resource() string {
	return e.resource
}

// OrderNumber returns the affected order.
func (e *Entry) OrderNumber() string {
	return e.orderNumber
}

// Before returns the JSON snapshot prior to the action.
func (e *Entry) Before() string {
	return e.before
}

// After returns the JSON snapshot following the action.
func (e *Entry) After() string {
	return e.after
}

// OccurredAt returns when the action happened.
func (e *Entry) OccurredAt() time.Time {
	return e.occurredAt
}

func (e *Entry) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *Entry) setActor(actor string) error {
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}
	e.actor = actor
	return nil
}

func (e *Entry) setAction(action string) error {
	if action == "" {
		return errs.NewValueIsRequiredError("action")
	}
	e.action = action
	return nil
}

func (e *Entry) setResource(resource string) error {
	if resource == "" {
		return errs.NewValueIsRequiredError("resource")
	}
	e.resource = resource
	return nil
}

func (e *Entry) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	e.orderNumber = orderNumber
	return nil
}
