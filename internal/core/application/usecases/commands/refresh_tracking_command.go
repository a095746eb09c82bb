package commands

import (
	"errors"
	"fmt"

	"github.com/GhostBC/SistemaLogistica/internal/pkg/errs"
	"github.com/GhostBC/SistemaLogistica/internal/pkg/guard"
)

var ErrRefreshTrackingCommandIsNotConstructed = errors.New(
	"RefreshTrackingCommand must be created via NewRefreshTrackingCommand constructor",
)

// RefreshTrackingCommand represents a sweep over finalized orders that are
// still missing a tracking code, re-fetching their detail from the feed.
// Limit caps how many orders one run touches so the sweep stays inside the
// provider's rate budget.
type RefreshTrackingCommand struct { //nolint:recvcheck //using for validation
	limit int

	guard guard.ConstructorGuard
}

// NewRefreshTrackingCommand creates a refresh command. Limit must be
// positive.
func NewRefreshTrackingCommand(limit int) (RefreshTrackingCommand, error) {
	if limit < 1 {
		return RefreshTrackingCommand{}, errs.NewValueIsInvalidErrorWithCause("limit",
			fmt.Errorf("%d is not greater than 0", limit))
	}

	return RefreshTrackingCommand{
		limit: limit,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RefreshTrackingCommand) Validate() error {
	return c.guard.Validate(ErrRefreshTrackingCommandIsNotConstructed)
}

// Limit returns the per-run cap.
func (c RefreshTrackingCommand) Limit() int {
	return c.limit
}
