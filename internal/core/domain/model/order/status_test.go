package order_test

import (
	"testing"

	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/order"
	"github.com/GhostBC/SistemaLogistica/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusValidate(t *testing.T) {
	tests := []struct {
		name    string
		status  order.Status
		wantErr bool
	}{
		{"open is valid", order.Open, false},
		{"in progress is valid", order.InProgress, false},
		{"finalized is valid", order.Finalized, false},
		{"unknown is invalid", order.Unknown, true},
		{"out of range is invalid", order.Status(42), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.status.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, errs.ErrValueIsInvalid)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "Open", order.Open.String())
	assert.Equal(t, "InProgress", order.InProgress.String())
	assert.Equal(t, "Finalized", order.Finalized.String())
	assert.Equal(t, "Unknown", order.Status(42).String())
}

func TestStatusFromString(t *testing.T) {
	for _, s := range []order.Status{order.Open, order.InProgress, order.Finalized} {
		parsed, err := order.StatusFromString(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := order.StatusFromString("Shipped")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestStatusBegin(t *testing.T) {
	t.Run("open can begin", func(t *testing.T) {
		next, err := order.Open.Begin()
		require.NoError(t, err)
		assert.Equal(t, order.InProgress, next)
	})

	t.Run("finalized cannot begin again", func(t *testing.T) {
		_, err := order.Finalized.Begin()
		require.ErrorIs(t, err, errs.ErrInvalidState)
	})
}

func TestStatusFinalize(t *testing.T) {
	t.Run("in progress can finalize", func(t *testing.T) {
		next, err := order.InProgress.Finalize()
		require.NoError(t, err)
		assert.Equal(t, order.Finalized, next)
	})

	t.Run("open cannot jump straight to finalized", func(t *testing.T) {
		_, err := order.Open.Finalize()
		require.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("finalized cannot finalize again", func(t *testing.T) {
		_, err := order.Finalized.Finalize()
		require.ErrorIs(t, err, errs.ErrInvalidState)
	})
}
