package packaging

import (
	"errors"
	"fmt"

	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/kernel"
	"github.com/GhostBC/SistemaLogistica/internal/pkg/errs"
	"github.com/GhostBC/SistemaLogistica/internal/pkg/guard"
)

var (
	// ErrPackageTypeIsNotConstructed is returned when a PackageType instance
	// was not created through NewPackageType or RestorePackageType.
	ErrPackageTypeIsNotConstructed = errors.New(
		"PackageType must be created via NewPackageType or RestorePackageType constructor")
)

// Dimensions holds the physical measurements of a package type.
// All sides are in centimeters; weight is in kilograms and optional because
// lightweight mailers are often cataloged without weighing them.
type Dimensions struct {
	HeightCm float64
	WidthCm  float64
	LengthCm float64
	WeightKg *float64
}

// Validate checks that every provided measurement is positive.
func (d Dimensions) Validate() error {
	for _, side := range []struct {
		name  string
		value float64
	}{
		{"heightCm", d.HeightCm},
		{"widthCm", d.WidthCm},
		{"lengthCm", d.LengthCm},
	} {
		if side.value <= 0 {
			return errs.NewValueIsInvalidErrorWithCause(side.name,
				fmt.Errorf("%v is not greater than 0", side.value))
		}
	}

	if d.WeightKg != nil && *d.WeightKg <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("weightKg",
			fmt.Errorf("%v is not greater than 0", *d.WeightKg))
	}
	return nil
}

// Changes describes a partial update to a package type. Nil fields are left
// untouched.
type Changes struct {
	Name       *string
	UnitCost   *kernel.Money
	Dimensions *Dimensions
}

// PackageType is the aggregate root for one packaging material in the
// catalog.
//
// Invariants:
//   - name is never empty (uniqueness is enforced by the repository)
//   - unit cost is never negative
//   - stock is an unconstrained integer: debits may drive it below zero
//   - deactivated types survive for historical cost records but are not
//     offered for new assignments
type PackageType struct {
	id         kernel.UUID
	name       string
	unitCost   kernel.Money
	dimensions Dimensions
	stock      int
	active     bool

	guard guard.ConstructorGuard
}

// NewPackageType creates an active package type with the given starting
// stock count.
func NewPackageType(
	id kernel.UUID,
	name string,
	unitCost kernel.Money,
	dimensions Dimensions,
	initialStock int,
) (*PackageType, error) {
	pt := &PackageType{
		active: true,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		pt.setID(id),
		pt.setName(name),
		pt.setUnitCost(unitCost),
		pt.setDimensions(dimensions),
	); err != nil {
		return nil, err
	}

	pt.stock = initialStock
	return pt, nil
}

// RestorePackageType reconstructs a PackageType from persistent storage,
// including deactivated ones and negative stock balances.
func RestorePackageType(
	id kernel.UUID,
	name string,
	unitCost kernel.Money,
	dimensions Dimensions,
	stock int,
	active bool,
) (*PackageType, error) {
	pt := &PackageType{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		pt.setID(id),
		pt.setName(name),
		pt.setUnitCost(unitCost),
		pt.setDimensions(dimensions),
	); err != nil {
		return nil, err
	}

	pt.stock = stock
	pt.active = active
	return pt, nil
}

// Validate ensures the PackageType was properly constructed.
func (pt *PackageType) Validate() error {
	if pt == nil {
		return ErrPackageTypeIsNotConstructed
	}
	return pt.guard.Validate(ErrPackageTypeIsNotConstructed)
}

// IsEqual compares two package types by their unique identifiers.
func (pt *PackageType) IsEqual(other *PackageType) bool {
	return other != nil && pt.id.IsEqual(other.id)
}

// ID returns the package type's unique identifier.
func (pt *PackageType) ID() kernel.UUID {
	return pt.id
}

// Name returns the catalog name, unique across the catalog.
func (pt *PackageType) Name() string {
	return pt.name
}

// UnitCost returns the cost of a single unit.
func (pt *PackageType) UnitCost() kernel.Money {
	return pt.unitCost
}

// Dimensions returns the physical measurements.
func (pt *PackageType) Dimensions() Dimensions {
	return pt.dimensions
}

// Stock returns the current on-hand count. May be negative.
func (pt *PackageType) Stock() int {
	return pt.stock
}

// IsActive reports whether the type can be assigned to new orders.
func (pt *PackageType) IsActive() bool {
	return pt.active
}

// Update applies a partial edit to the catalog entry.
func (pt *PackageType) Update(changes Changes) error {
	if changes.Name != nil {
		if err := pt.setName(*changes.Name); err != nil {
			return err
		}
	}
	if changes.UnitCost != nil {
		if err := pt.setUnitCost(*changes.UnitCost); err != nil {
			return err
		}
	}
	if changes.Dimensions != nil {
		if err := pt.setDimensions(*changes.Dimensions); err != nil {
			return err
		}
	}
	return nil
}

// Deactivate removes the type from the assignable catalog without deleting
// it, so historical cost records keep a valid reference.
func (pt *PackageType) Deactivate() {
	pt.active = false
}

// Activate returns a previously deactivated type to the assignable catalog.
func (pt *PackageType) Activate() {
	pt.active = true
}

// Debit removes quantity units from stock. The debit is unconditional: the
// balance may go negative, and the new balance is returned so callers can
// log a warning when it does.
func (pt *PackageType) Debit(quantity int) (int, error) {
	if quantity < 1 {
		return pt.stock, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	pt.stock -= quantity
	return pt.stock, nil
}

// Credit returns quantity units to stock, reversing an earlier debit when a
// finalized order's package list is edited.
func (pt *PackageType) Credit(quantity int) (int, error) {
	if quantity < 1 {
		return pt.stock, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	pt.stock += quantity
	return pt.stock, nil
}

func (pt *PackageType) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	pt.id = id
	return nil
}

func (pt *PackageType) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	pt.name = name
	return nil
}

func (pt *PackageType) setUnitCost(unitCost kernel.Money) error {
	if unitCost.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("unitCost",
			fmt.Errorf("%s is negative", unitCost))
	}
	pt.unitCost = unitCost
	return nil
}

func (pt *PackageType) setDimensions(dimensions Dimensions) error {
	if err := dimensions.Validate(); err != nil {
		return err
	}
	pt.dimensions = dimensions
	return nil
}
