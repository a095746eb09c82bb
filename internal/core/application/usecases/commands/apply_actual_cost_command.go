package commands

import (
	"errors"
	"fmt"

	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/kernel"
	"github.com/GhostBC/SistemaLogistica/internal/pkg/errs"
	"github.com/GhostBC/SistemaLogistica/internal/pkg/guard"
)

var ErrApplyActualCostCommandIsNotConstructed = errors.New(
	"ApplyActualCostCommand must be created via NewApplyActualCostCommand constructor",
)

// ActualCostRow is one correction from the real-cost feed: a carrier
// invoice line (matched by tracking code) or a webhook payload (matched by
// external reference).
type ActualCostRow struct {
	TrackingCode string
	ExternalRef  string
	Amount       kernel.Money
}

// ApplyActualCostCommand carries a batch of real carrier costs to apply.
// Rows that cannot be matched to a local finalized order are reported as
// processing errors in the result, never as a command failure: the rest of
// the batch still applies.
type ApplyActualCostCommand struct { //nolint:recvcheck //using for validation
	rows []ActualCostRow

	guard guard.ConstructorGuard
}

// NewApplyActualCostCommand creates a command from feed rows. Every row
// needs at least one match key and a non-negative amount.
func NewApplyActualCostCommand(rows []ActualCostRow) (ApplyActualCostCommand, error) {
	if len(rows) == 0 {
		return ApplyActualCostCommand{}, errs.NewValueIsRequiredError("rows")
	}

	for i, row := range rows {
		if row.TrackingCode == "" && row.ExternalRef == "" {
			return ApplyActualCostCommand{}, errs.NewValueIsRequiredError(
				fmt.Sprintf("rows[%d]: trackingCode or externalRef", i))
		}
		if row.Amount.IsNegative() {
			return ApplyActualCostCommand{}, errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("rows[%d].amount", i),
				fmt.Errorf("%s is negative", row.Amount))
		}
	}

	return ApplyActualCostCommand{
		rows:  append([]ActualCostRow(nil), rows...),
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ApplyActualCostCommand) Validate() error {
	return c.guard.Validate(ErrApplyActualCostCommandIsNotConstructed)
}

// Rows returns the feed rows.
func (c ApplyActualCostCommand) Rows() []ActualCostRow {
	return append([]ActualCostRow(nil), c.rows...)
}
