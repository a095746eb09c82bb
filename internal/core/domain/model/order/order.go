package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/kernel"
	"github.com/GhostBC/SistemaLogistica/internal/pkg/errs"
	"github.com/GhostBC/SistemaLogistica/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder. This ensures all orders are
	// properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
)

// Details carries the optional descriptive fields of an order. Synced orders
// fill these from the marketplace feed; manually entered orders usually leave
// most of them empty.
type Details struct {
	// ExternalRef is the order's identifier in the upstream marketplace feed.
	ExternalRef string

	// Store is the display name of the store/channel the order came from.
	Store string

	// CustomerName is the buyer's name as reported by the feed.
	CustomerName string

	// Carrier is the shipping carrier, when already known.
	Carrier string

	// TrackingCode is the carrier tracking code, when already known.
	TrackingCode string

	// WeightKg is the package weight in kilograms, nil when unknown.
	WeightKg *float64

	// Notes is the operator's free-text remark about the order.
	Notes string
}

// Changes describes a partial update to an order. Nil fields are left
// untouched. Used by both the open-order update and the post-finalize edit.
type Changes struct {
	Channel         *string
	CustomerFreight *kernel.Money
	Carrier         *string
	TrackingCode    *string
	WeightKg        *float64
	Notes           *string
}

// Order is the aggregate root for a marketplace order. It owns the lifecycle
// status, the operator reservation and the packaging line items.
//
// Invariants maintained by the aggregate:
//   - order number and channel are never empty
//   - customer freight is never negative
//   - reservedBy and reservedAt are both set or both nil
//   - line items exist only on finalized orders, each with quantity >= 1
//   - Finalized is terminal: edits never change the status back
type Order struct {
	id              kernel.UUID
	orderNumber     string
	externalRef     string
	channel         string
	store           string
	customerName    string
	status          Status
	customerFreight kernel.Money
	carrier         string
	trackingCode    string
	weightKg        *float64
	notes           string
	lineItems       []LineItem

	reservedBy *kernel.UUID
	reservedAt *time.Time

	openedAt    time.Time
	finalizedAt *time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates an open, unreserved order. This is the entry point for
// both manual order entry and the marketplace sync.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), "1001", "shopee",
//	    kernel.MoneyFromFloat(12.00), time.Now(), order.Details{})
func NewOrder(
	id kernel.UUID,
	orderNumber string,
	channel string,
	customerFreight kernel.Money,
	openedAt time.Time,
	details Details,
) (*Order, error) {
	o := &Order{
		status: Open,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrderNumber(orderNumber),
		o.setChannel(channel),
		o.setCustomerFreight(customerFreight),
	); err != nil {
		return nil, err
	}

	o.openedAt = openedAt
	o.applyDetails(details)
	return o, nil
}

// RestoreOrderParams carries the full persisted state of an order.
type RestoreOrderParams struct {
	ID              kernel.UUID
	OrderNumber     string
	Channel         string
	Status          Status
	CustomerFreight kernel.Money
	Details         Details
	LineItems       []LineItem
	ReservedBy      *kernel.UUID
	ReservedAt      *time.Time
	OpenedAt        time.Time
	FinalizedAt     *time.Time
}

// RestoreOrder reconstructs an Order aggregate from persistent storage,
// re-validating the invariants so corrupt rows surface as errors instead of
// inconsistent aggregates.
func RestoreOrder(params RestoreOrderParams) (*Order, error) {
	o := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(params.ID),
		o.setOrderNumber(params.OrderNumber),
		o.setChannel(params.Channel),
		o.setCustomerFreight(params.CustomerFreight),
		o.setStatus(params.Status),
		o.setReservation(params.ReservedBy, params.ReservedAt),
	); err != nil {
		return nil, err
	}

	o.openedAt = params.OpenedAt
	o.finalizedAt = params.FinalizedAt
	o.lineItems = append([]LineItem(nil), params.LineItems...)
	o.applyDetails(params.Details)
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNumber returns the natural business key shared with the cost record
// and the audit log.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// ExternalRef returns the upstream feed identifier, empty for manual orders.
func (o *Order) ExternalRef() string {
	return o.externalRef
}

// Channel returns the sales channel key (e.g. "shopee", "site").
func (o *Order) Channel() string {
	return o.channel
}

// Store returns the store display name from the feed.
func (o *Order) Store() string {
	return o.store
}

// CustomerName returns the buyer's name.
func (o *Order) CustomerName() string {
	return o.customerName
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// CustomerFreight returns the freight amount the customer paid.
func (o *Order) CustomerFreight() kernel.Money {
	return o.customerFreight
}

// Carrier returns the shipping carrier name.
func (o *Order) Carrier() string {
	return o.carrier
}

// TrackingCode returns the carrier tracking code.
func (o *Order) TrackingCode() string {
	return o.trackingCode
}

// WeightKg returns the package weight in kilograms, nil when unknown.
func (o *Order) WeightKg() *float64 {
	return o.weightKg
}

// Notes returns the operator's free-text remark, empty when none was left.
func (o *Order) Notes() string {
	return o.notes
}

// LineItems returns a copy of the packaging line items.
func (o *Order) LineItems() []LineItem {
	return append([]LineItem(nil), o.lineItems...)
}

// PrimaryItem returns the first line item, or nil when the order has none.
// Kept for serialization boundaries where legacy consumers expect a single
// "main" packaging entry.
func (o *Order) PrimaryItem() *LineItem {
	if len(o.lineItems) == 0 {
		return nil
	}
	item := o.lineItems[0]
	return &item
}

// ReservedBy returns the operator currently holding the order, nil when free.
func (o *Order) ReservedBy() *kernel.UUID {
	return o.reservedBy
}

// ReservedAt returns when the current reservation was taken, nil when free.
func (o *Order) ReservedAt() *time.Time {
	return o.reservedAt
}

// OpenedAt returns when the order entered the system.
func (o *Order) OpenedAt() time.Time {
	return o.openedAt
}

// FinalizedAt returns when the order was finalized, nil while open.
func (o *Order) FinalizedAt() *time.Time {
	return o.finalizedAt
}

// IsReserved reports whether an operator currently holds the order.
func (o *Order) IsReserved() bool {
	return o.reservedBy != nil
}

// Reserve takes the order for an operator so no one else finalizes it
// concurrently.
//
// Business rules:
//   - only Open orders can be reserved
//   - reserving an order you already hold is a no-op (idempotent)
//   - reserving an order held by someone else fails with a conflict that
//     names the current holder
func (o *Order) Reserve(operatorID kernel.UUID, at time.Time) error {
	if err := operatorID.Validate(); err != nil {
		return err
	}

	if o.status != Open {
		return errs.NewInvalidStateError("reserve", "order "+o.orderNumber, o.status.String())
	}

	if o.reservedBy != nil {
		if o.reservedBy.IsEqual(operatorID) {
			return nil
		}
		return errs.NewConflictErrorWithHolder("order", o.orderNumber, o.reservedBy.String())
	}

	o.reservedBy = &operatorID
	o.reservedAt = &at
	return nil
}

// Release frees the order's reservation. Only the holder may release, unless
// the caller is an admin overriding a stale reservation.
func (o *Order) Release(operatorID kernel.UUID, isAdmin bool) error {
	if err := operatorID.Validate(); err != nil {
		return err
	}

	if o.reservedBy == nil {
		return errs.NewInvalidStateError("release", "order "+o.orderNumber, "unreserved")
	}

	if !o.reservedBy.IsEqual(operatorID) && !isAdmin {
		return errs.NewForbiddenError(
			"operator "+operatorID.String(),
			"release a reservation held by "+o.reservedBy.String(),
		)
	}

	o.clearReservation()
	return nil
}

// Update applies a partial edit to an order that has not shipped yet.
// Only Open orders can be updated this way; finalized orders go through
// Amend so the finalize-specific rules apply.
func (o *Order) Update(changes Changes) error {
	if o.status != Open {
		return errs.NewInvalidStateError("update", "order "+o.orderNumber, o.status.String())
	}
	return o.applyChanges(changes)
}

// Finalize records the packaging used and moves the order to Finalized.
// The transition passes through InProgress so the status machine stays
// honest about the order having been worked on.
//
// At least one line item is required; the caller debits stock and writes the
// cost record in the same transaction.
func (o *Order) Finalize(items []LineItem, at time.Time) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("lineItems")
	}

	inProgress, err := o.status.Begin()
	if err != nil {
		return err
	}
	o.status = inProgress

	finalized, err := o.status.Finalize()
	if err != nil {
		return err
	}

	o.status = finalized
	o.lineItems = append([]LineItem(nil), items...)
	o.finalizedAt = &at
	o.clearReservation()
	return nil
}

// Amend applies a partial edit to an already finalized order. The status
// stays Finalized and the finalize timestamp is preserved.
func (o *Order) Amend(changes Changes) error {
	if o.status != Finalized {
		return errs.NewInvalidStateError("amend", "order "+o.orderNumber, o.status.String())
	}
	return o.applyChanges(changes)
}

// ReplaceLineItems swaps the packaging list on a finalized order. The caller
// is responsible for crediting the old items back to stock and debiting the
// new ones; use EqualLineItemLists first to skip the stock round-trip when
// the submitted list is identical.
func (o *Order) ReplaceLineItems(items []LineItem) error {
	if o.status != Finalized {
		return errs.NewInvalidStateError("replace line items of", "order "+o.orderNumber, o.status.String())
	}
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("lineItems")
	}

	o.lineItems = append([]LineItem(nil), items...)
	return nil
}

// RecordNotes stores the operator's free-text remark about the order,
// replacing any earlier one.
func (o *Order) RecordNotes(notes string) {
	o.notes = notes
}

// AttachTrackingCode sets the tracking code when a later feed fetch finally
// carries one. Does nothing when the code is empty or already set.
func (o *Order) AttachTrackingCode(code string) bool {
	if code == "" || o.trackingCode != "" {
		return false
	}
	o.trackingCode = code
	return true
}

// RefreshStoreInfo updates the feed-sourced display fields on an existing
// order during sync. Empty values are ignored so a sparse feed page never
// erases data we already have.
func (o *Order) RefreshStoreInfo(store, customerName string) {
	if store != "" {
		o.store = store
	}
	if customerName != "" {
		o.customerName = customerName
	}
}

func (o *Order) applyChanges(changes Changes) error {
	if changes.Channel != nil {
		if err := o.setChannel(*changes.Channel); err != nil {
			return err
		}
	}
	if changes.CustomerFreight != nil {
		if err := o.setCustomerFreight(*changes.CustomerFreight); err != nil {
			return err
		}
	}
	if changes.Carrier != nil {
		o.carrier = *changes.Carrier
	}
	if changes.TrackingCode != nil {
		o.trackingCode = *changes.TrackingCode
	}
	if changes.WeightKg != nil {
		o.weightKg = changes.WeightKg
	}
	if changes.Notes != nil {
		o.notes = *changes.Notes
	}
	return nil
}

func (o *Order) applyDetails(details Details) {
	o.externalRef = details.ExternalRef
	o.store = details.Store
	o.customerName = details.CustomerName
	o.carrier = details.Carrier
	o.trackingCode = details.TrackingCode
	o.weightKg = details.WeightKg
	o.notes = details.Notes
}

func (o *Order) clearReservation() {
	o.reservedBy = nil
	o.reservedAt = nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	o.orderNumber = orderNumber
	return nil
}

func (o *Order) setChannel(channel string) error {
	if channel == "" {
		return errs.NewValueIsRequiredError("channel")
	}
	o.channel = channel
	return nil
}

func (o *Order) setCustomerFreight(freight kernel.Money) error {
	if freight.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("customerFreight",
			fmt.Errorf("%s is negative", freight))
	}
	o.customerFreight = freight
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

// setReservation restores the reservation pair, enforcing that holder and
// timestamp travel together.
func (o *Order) setReservation(reservedBy *kernel.UUID, reservedAt *time.Time) error {
	if (reservedBy == nil) != (reservedAt == nil) {
		return errs.NewValueIsInvalidErrorWithCause("reservation",
			errors.New("reservedBy and reservedAt must both be set or both be nil"))
	}
	if reservedBy != nil {
		if err := reservedBy.Validate(); err != nil {
			return err
		}
	}

	o.reservedBy = reservedBy
	o.reservedAt = reservedAt
	return nil
}
