package order

import (
	"fmt"

	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/kernel"
	"github.com/GhostBC/SistemaLogistica/internal/pkg/errs"
)

// LineItem records one packaging material used on a finalized order: which
// package type and how many units. Line items are value objects owned by the
// Order aggregate; the list is ordered, and the first element is treated as
// the primary item at serialization boundaries for legacy consumers.
type LineItem struct {
	packageTypeID kernel.UUID
	quantity      int
}

// NewLineItem creates a line item after validating the package type reference
// and the quantity (must be at least 1).
func NewLineItem(packageTypeID kernel.UUID, quantity int) (LineItem, error) {
	if err := packageTypeID.Validate(); err != nil {
		return LineItem{}, err
	}

	if quantity < 1 {
		return LineItem{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	return LineItem{packageTypeID: packageTypeID, quantity: quantity}, nil
}

// PackageTypeID returns the referenced package type.
func (li LineItem) PackageTypeID() kernel.UUID {
	return li.packageTypeID
}

// Quantity returns how many units of the package type were used.
func (li LineItem) Quantity() int {
	return li.quantity
}

// IsEqual compares two line items by value.
func (li LineItem) IsEqual(other LineItem) bool {
	return li.packageTypeID.IsEqual(other.packageTypeID) && li.quantity == other.quantity
}

// EqualLineItemLists reports whether two line item lists are identical in
// both content and order. Used to detect the no-op case when an edit submits
// the same package list again: identical lists must not touch stock at all.
func EqualLineItemLists(a, b []LineItem) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].IsEqual(b[i]) {
			return false
		}
	}
	return true
}
