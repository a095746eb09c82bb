package order

import (
	"fmt"

	"github.com/GhostBC/SistemaLogistica/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions:
//
//	Open ──> InProgress ──> Finalized
//
// Open orders are waiting for an operator. InProgress is the transient state
// an order passes through while finalize runs. Finalized orders have shipped;
// they stay Finalized even when edited afterwards.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Open is the initial status: the order exists locally (synced or created
	// by hand) and has not been fulfilled yet.
	Open

	// InProgress indicates an operator is actively finalizing the order.
	InProgress

	// Finalized indicates the order has been packed, costed and shipped.
	// This is the terminal status; later edits do not change it.
	Finalized
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Open:       "Open",
		InProgress: "InProgress",
		Finalized:  "Finalized",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Open:       "Open",
		InProgress: "InProgress",
		Finalized:  "Finalized",
	}
}

// Validate checks if the Status value is one of Open, InProgress, Finalized.
// Unknown (0) and any other values are invalid. Used when reconstructing
// orders from the database or parsing statuses from request parameters.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status, or "Unknown" for
// invalid values. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// StatusFromString parses a status name as stored in the database.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Begin transitions the status to InProgress. Only Open orders can begin
// fulfillment; anything else means the order was already taken or shipped.
func (s Status) Begin() (Status, error) {
	if s != Open {
		return 0, errs.NewInvalidStateError("begin fulfillment of", "order", s.String())
	}
	return InProgress, nil
}

// Finalize transitions the status to Finalized. Valid only from InProgress;
// finalize drives Open -> InProgress -> Finalized inside one transaction, so
// a direct Open -> Finalized jump indicates a bug in the caller.
func (s Status) Finalize() (Status, error) {
	if s != InProgress {
		return 0, errs.NewInvalidStateError("finalize", "order", s.String())
	}
	return Finalized, nil
}
