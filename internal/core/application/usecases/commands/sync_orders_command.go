package commands

import (
	"errors"

	"github.com/GhostBC/SistemaLogistica/internal/pkg/guard"
)

var ErrSyncOrdersCommandIsNotConstructed = errors.New(
	"SyncOrdersCommand must be created via NewSyncOrdersCommand constructor",
)

// SyncOrdersCommand represents a pull of the upstream open-order feed into
// the local store. Force bypasses the last-sync throttle window; scheduled
// runs leave it false so back-to-back triggers collapse into one sync.
type SyncOrdersCommand struct { //nolint:recvcheck //using for validation
	force bool

	guard guard.ConstructorGuard
}

// NewSyncOrdersCommand creates a sync command.
func NewSyncOrdersCommand(force bool) (SyncOrdersCommand, error) {
	return SyncOrdersCommand{
		force: force,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SyncOrdersCommand) Validate() error {
	return c.guard.Validate(ErrSyncOrdersCommandIsNotConstructed)
}

// Force reports whether the throttle window is bypassed.
func (c SyncOrdersCommand) Force() bool {
	return c.force
}
