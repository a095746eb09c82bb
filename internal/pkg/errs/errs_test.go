package errs_test

import (
	"errors"
	"testing"

	"github.com/GhostBC/SistemaLogistica/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderNumber", "1001")

		assert.Equal(t, "orderNumber", err.ParamName)
		assert.Equal(t, "1001", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 1001", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("orderNumber", "1001", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: orderNumber, ID is: 1001 (cause: database connection failed)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("channel")

		assert.Equal(t, "channel", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: channel", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("negative amount")
		err := errs.NewValueIsInvalidErrorWithCause("actualCarrierCost", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: actualCarrierCost (cause: negative amount)", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("periodDays", 120, 1, 90)

		assert.Equal(t, "periodDays", err.ParamName)
		assert.Equal(t, 120, err.Value)
		assert.Equal(t, 1, err.Min)
		assert.Equal(t, 90, err.Max)
		assert.Equal(t, "value is invalid: %!s(int=120) is periodDays, min value is 1, max value is 90", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("orderNumber")

	assert.Equal(t, "orderNumber", err.ParamName)
	assert.Equal(t, "value is required: orderNumber", err.Error())
	assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
}

func TestInvalidStateError(t *testing.T) {
	err := errs.NewInvalidStateError("finalize", "order 1001", "Finalized")

	assert.Equal(t, "invalid state: cannot finalize order 1001 in status Finalized", err.Error())
	assert.Equal(t, errs.ErrInvalidState, err.Unwrap())
}

func TestConflictError(t *testing.T) {
	t.Run("duplicate key", func(t *testing.T) {
		err := errs.NewConflictError("order", "1001")

		assert.Equal(t, "conflict: order 1001 already exists", err.Error())
		assert.Equal(t, errs.ErrConflict, err.Unwrap())
	})

	t.Run("reservation held by another actor", func(t *testing.T) {
		err := errs.NewConflictErrorWithHolder("order", "1001", "maria")

		assert.Equal(t, "maria", err.Holder)
		assert.Equal(t, "conflict: order 1001 held by maria", err.Error())
		assert.Equal(t, errs.ErrConflict, err.Unwrap())
	})
}

func TestForbiddenError(t *testing.T) {
	err := errs.NewForbiddenError("operator 7", "release another operator's reservation")

	assert.Equal(t, "forbidden: operator 7 may not release another operator's reservation", err.Error())
	assert.Equal(t, errs.ErrForbidden, err.Unwrap())
}

func TestCostComputationError(t *testing.T) {
	cause := errors.New("cost record rejected")
	err := errs.NewCostComputationError("1001", cause)

	assert.Equal(t, "cost computation failed: order 1001 (cause: cost record rejected)", err.Error())
	assert.Equal(t, errs.ErrCostComputation, err.Unwrap())
}

func TestExternalProviderError(t *testing.T) {
	cause := errors.New("connection refused")
	err := errs.NewExternalProviderError("mandae", cause)

	assert.Equal(t, "external provider failed: mandae (cause: connection refused)", err.Error())
	assert.Equal(t, errs.ErrExternalProvider, err.Unwrap())
}

func TestSentinelErrors(t *testing.T) {
	assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
	assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
	assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
	assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
	assert.Equal(t, "invalid state", errs.ErrInvalidState.Error())
	assert.Equal(t, "conflict", errs.ErrConflict.Error())
	assert.Equal(t, "forbidden", errs.ErrForbidden.Error())
	assert.Equal(t, "cost computation failed", errs.ErrCostComputation.Error())
	assert.Equal(t, "external provider failed", errs.ErrExternalProvider.Error())
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	require.ErrorIs(t, errs.NewObjectNotFoundError("order", "1"), errs.ErrObjectNotFound)
	require.ErrorIs(t, errs.NewValueIsInvalidError("channel"), errs.ErrValueIsInvalid)
	require.ErrorIs(t, errs.NewValueIsOutOfRangeError("d", 120, 1, 90), errs.ErrValueIsOutOfRange)
	require.ErrorIs(t, errs.NewValueIsRequiredError("n"), errs.ErrValueIsRequired)
	require.ErrorIs(t, errs.NewInvalidStateError("reserve", "order", "Finalized"), errs.ErrInvalidState)
	require.ErrorIs(t, errs.NewConflictError("order", "1"), errs.ErrConflict)
	require.ErrorIs(t, errs.NewForbiddenError("a", "b"), errs.ErrForbidden)
	require.ErrorIs(t, errs.NewCostComputationError("1", nil), errs.ErrCostComputation)
	require.ErrorIs(t, errs.NewExternalProviderError("bling", nil), errs.ErrExternalProvider)
}
