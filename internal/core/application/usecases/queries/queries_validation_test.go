package queries_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GhostBC/SistemaLogistica/internal/core/application/usecases/queries"
	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/kernel"
	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/order"
	"github.com/GhostBC/SistemaLogistica/internal/pkg/errs"
)

func TestNewListOrdersQuery_Validation(t *testing.T) {
	_, err := queries.NewListOrdersQuery(order.Unknown, "", "", 1, 50)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = queries.NewListOrdersQuery(order.Open, "", "", 0, 50)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = queries.NewListOrdersQuery(order.Open, "", "", 1, 500)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	// perPage 0 falls back to the default page size
	q, err := queries.NewListOrdersQuery(order.Open, "shopee", "Carlos", 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 50, q.PerPage())
	assert.Equal(t, 2, q.Page())
	assert.Equal(t, "shopee", q.Channel())
	assert.Equal(t, "Carlos", q.Search())
}

func TestNewGetPackageTypeQuery_RejectsZeroID(t *testing.T) {
	_, err := queries.NewGetPackageTypeQuery(kernel.UUID{})
	require.Error(t, err)
}

func TestNewDailyTotalsQuery_TruncatesToDayStart(t *testing.T) {
	_, err := queries.NewDailyTotalsQuery(time.Time{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	noon := time.Date(2026, 3, 10, 12, 30, 0, 0, time.Local)
	q, err := queries.NewDailyTotalsQuery(noon)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local), q.Day())
}

func TestNewPeriodTotalsQuery_RangeValidation(t *testing.T) {
	start := time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local)

	_, err := queries.NewPeriodTotalsQuery(start, start.AddDate(0, 0, -1))
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = queries.NewPeriodTotalsQuery(start, start.AddDate(0, 0, 90))
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	// 90 days inclusive is the widest accepted span
	q, err := queries.NewPeriodTotalsQuery(start, start.AddDate(0, 0, 89))
	require.NoError(t, err)
	assert.Equal(t, start, q.Start())

	// a single day period is fine
	_, err = queries.NewPeriodTotalsQuery(start, start)
	require.NoError(t, err)
}

func TestNewChannelTotalsQuery_RangeValidation(t *testing.T) {
	start := time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local)

	_, err := queries.NewChannelTotalsQuery(start, start.AddDate(0, 0, -1))
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = queries.NewChannelTotalsQuery(start, start.AddDate(0, 0, 120))
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = queries.NewChannelTotalsQuery(start, start.AddDate(0, 0, 7))
	require.NoError(t, err)
}

func TestQueryValidate_RejectsZeroValueQueries(t *testing.T) {
	var listTypes queries.ListPackageTypesQuery
	require.ErrorIs(t, listTypes.Validate(), queries.ErrListPackageTypesQueryIsNotConstructed)

	var listOrders queries.ListOrdersQuery
	require.ErrorIs(t, listOrders.Validate(), queries.ErrListOrdersQueryIsNotConstructed)

	var daily queries.DailyTotalsQuery
	require.ErrorIs(t, daily.Validate(), queries.ErrDailyTotalsQueryIsNotConstructed)

	var period queries.PeriodTotalsQuery
	require.ErrorIs(t, period.Validate(), queries.ErrPeriodTotalsQueryIsNotConstructed)

	var channel queries.ChannelTotalsQuery
	require.ErrorIs(t, channel.Validate(), queries.ErrChannelTotalsQueryIsNotConstructed)
}
