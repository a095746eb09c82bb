// Package http exposes the application over a REST API. Handlers stay thin:
// bind, build the command or query, dispatch, map the error kind to a status
// code.
package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/GhostBC/SistemaLogistica/internal/core/application/usecases/commands"
	"github.com/GhostBC/SistemaLogistica/internal/core/application/usecases/queries"
	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/kernel"
	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/order"
	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/packaging"
	"github.com/GhostBC/SistemaLogistica/internal/pkg/errs"
)

const dateLayout = "2006-01-02"

// CommandHandlers bundles the write-side handlers the server dispatches to.
type CommandHandlers struct {
	SyncOrders            commands.SyncOrdersCommandHandler
	CreateOrder           commands.CreateOrderCommandHandler
	UpdateOrder           commands.UpdateOrderCommandHandler
	DeleteOrder           commands.DeleteOrderCommandHandler
	ReserveOrder          commands.ReserveOrderCommandHandler
	ReleaseOrder          commands.ReleaseOrderCommandHandler
	FinalizeOrder         commands.FinalizeOrderCommandHandler
	EditFinalizedOrder    commands.EditFinalizedOrderCommandHandler
	RefreshTracking       commands.RefreshTrackingCommandHandler
	ApplyActualCost       commands.ApplyActualCostCommandHandler
	CreatePackageType     commands.CreatePackageTypeCommandHandler
	UpdatePackageType     commands.UpdatePackageTypeCommandHandler
	DeactivatePackageType commands.DeactivatePackageTypeCommandHandler
}

// QueryHandlers bundles the read-side handlers.
type QueryHandlers struct {
	ListOrders       queries.ListOrdersQueryHandler
	ListPackageTypes queries.ListPackageTypesQueryHandler
	GetPackageType   queries.GetPackageTypeQueryHandler
	DailyTotals      queries.DailyTotalsQueryHandler
	PeriodTotals     queries.PeriodTotalsQueryHandler
	ChannelTotals    queries.ChannelTotalsQueryHandler
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	commands CommandHandlers
	queries  QueryHandlers
}

// NewServer creates the HTTP server over the given use-case handlers.
func NewServer(commandHandlers CommandHandlers, queryHandlers QueryHandlers) *Server {
	return &Server{
		commands: commandHandlers,
		queries:  queryHandlers,
	}
}

// RegisterRoutes mounts every route on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.GET("/orders", s.ListOrders)
	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/sync", s.SyncOrders)
	api.POST("/orders/tracking/refresh", s.RefreshTracking)
	api.PATCH("/orders/:orderNumber", s.UpdateOrder)
	api.DELETE("/orders/:orderNumber", s.DeleteOrder)
	api.POST("/orders/:orderNumber/reserve", s.ReserveOrder)
	api.POST("/orders/:orderNumber/release", s.ReleaseOrder)
	api.POST("/orders/:orderNumber/finalize", s.FinalizeOrder)
	api.PATCH("/orders/:orderNumber/finalized", s.EditFinalizedOrder)

	api.GET("/package-types", s.ListPackageTypes)
	api.POST("/package-types", s.CreatePackageType)
	api.GET("/package-types/:id", s.GetPackageType)
	api.PATCH("/package-types/:id", s.UpdatePackageType)
	api.POST("/package-types/:id/deactivate", s.DeactivatePackageType)

	api.POST("/costs/actual", s.ApplyActualCost)

	api.GET("/reports/daily", s.DailyTotals)
	api.GET("/reports/period", s.PeriodTotals)
	api.GET("/reports/channels", s.ChannelTotals)

	e.GET("/health", func(ctx echo.Context) error {
		return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
}

// fail maps an application error to its HTTP status and writes the error body.
func fail(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, errs.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrInvalidState),
		errors.Is(err, errs.ErrCostComputation):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrExternalProvider):
		status = http.StatusBadGateway
	}

	return ctx.JSON(status, errorResponse{Code: status, Message: err.Error()})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, errorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(ctx echo.Context) error {
	statusName := ctx.QueryParam("status")
	if statusName == "" {
		statusName = "Open"
	}
	status, err := order.StatusFromString(statusName)
	if err != nil {
		return fail(ctx, err)
	}

	page := intQueryParam(ctx, "page", 1)
	perPage := intQueryParam(ctx, "per_page", 0)

	query, err := queries.NewListOrdersQuery(status,
		ctx.QueryParam("channel"), ctx.QueryParam("search"), page, perPage)
	if err != nil {
		return fail(ctx, err)
	}

	result, err := s.queries.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toListOrdersResponse(result))
}

// CreateOrder handles POST /api/v1/orders - manual order entry.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req createOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	freight, err := parseMoney(req.CustomerFreight)
	if err != nil {
		return fail(ctx, errs.NewValueIsInvalidErrorWithCause("customer_freight", err))
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(),
		req.OrderNumber, req.Channel, freight, order.Details{
			ExternalRef:  req.ExternalRef,
			Store:        req.Store,
			CustomerName: req.CustomerName,
			Carrier:      req.Carrier,
			TrackingCode: req.TrackingCode,
			WeightKg:     req.WeightKg,
		})
	if err != nil {
		return fail(ctx, err)
	}

	if err := s.commands.CreateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ctx.NoContent(http.StatusCreated)
}

// SyncOrders handles POST /api/v1/orders/sync - forces a feed sync run.
func (s *Server) SyncOrders(ctx echo.Context) error {
	cmd, err := commands.NewSyncOrdersCommand(true)
	if err != nil {
		return fail(ctx, err)
	}

	result, err := s.commands.SyncOrders.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, syncResultResponse{
		Skipped: result.Skipped,
		Pages:   result.Pages,
		Created: result.Created,
		Updated: result.Updated,
		Pruned:  result.Pruned,
	})
}

// RefreshTracking handles POST /api/v1/orders/tracking/refresh.
func (s *Server) RefreshTracking(ctx echo.Context) error {
	var req refreshTrackingRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewRefreshTrackingCommand(req.Limit)
	if err != nil {
		return fail(ctx, err)
	}

	refreshed, err := s.commands.RefreshTracking.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, refreshTrackingResponse{Refreshed: refreshed})
}

// UpdateOrder handles PATCH /api/v1/orders/:orderNumber - edits an open order.
func (s *Server) UpdateOrder(ctx echo.Context) error {
	var req updateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	freight, err := parseOptionalMoney(req.CustomerFreight)
	if err != nil {
		return fail(ctx, errs.NewValueIsInvalidErrorWithCause("customer_freight", err))
	}

	cmd, err := commands.NewUpdateOrderCommand(ctx.Param("orderNumber"), order.Changes{
		Channel:         req.Channel,
		CustomerFreight: freight,
		Carrier:         req.Carrier,
		TrackingCode:    req.TrackingCode,
		WeightKg:        req.WeightKg,
		Notes:           req.Notes,
	})
	if err != nil {
		return fail(ctx, err)
	}

	if err := s.commands.UpdateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// DeleteOrder handles DELETE /api/v1/orders/:orderNumber. Finalized orders
// require admin=true.
func (s *Server) DeleteOrder(ctx echo.Context) error {
	isAdmin := ctx.QueryParam("admin") == "true"

	cmd, err := commands.NewDeleteOrderCommand(ctx.Param("orderNumber"), isAdmin)
	if err != nil {
		return fail(ctx, err)
	}

	if err := s.commands.DeleteOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ReserveOrder handles POST /api/v1/orders/:orderNumber/reserve.
func (s *Server) ReserveOrder(ctx echo.Context) error {
	var req reserveOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	operatorID, err := kernel.UUIDFromString(req.OperatorID)
	if err != nil {
		return fail(ctx, errs.NewValueIsInvalidErrorWithCause("operator_id", err))
	}

	cmd, err := commands.NewReserveOrderCommand(ctx.Param("orderNumber"), operatorID)
	if err != nil {
		return fail(ctx, err)
	}

	if err := s.commands.ReserveOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ReleaseOrder handles POST /api/v1/orders/:orderNumber/release.
func (s *Server) ReleaseOrder(ctx echo.Context) error {
	var req releaseOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	operatorID, err := kernel.UUIDFromString(req.OperatorID)
	if err != nil {
		return fail(ctx, errs.NewValueIsInvalidErrorWithCause("operator_id", err))
	}

	cmd, err := commands.NewReleaseOrderCommand(ctx.Param("orderNumber"), operatorID, req.IsAdmin)
	if err != nil {
		return fail(ctx, err)
	}

	if err := s.commands.ReleaseOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// FinalizeOrder handles POST /api/v1/orders/:orderNumber/finalize.
func (s *Server) FinalizeOrder(ctx echo.Context) error {
	var req finalizeOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	items, err := parseLineItems(req.Items)
	if err != nil {
		return fail(ctx, err)
	}
	actualCost, err := parseOptionalMoney(req.ActualCarrierCost)
	if err != nil {
		return fail(ctx, errs.NewValueIsInvalidErrorWithCause("actual_carrier_cost", err))
	}

	cmd, err := commands.NewFinalizeOrderCommand(ctx.Param("orderNumber"),
		req.Actor, items, req.Notes, actualCost)
	if err != nil {
		return fail(ctx, err)
	}

	if err := s.commands.FinalizeOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// EditFinalizedOrder handles PATCH /api/v1/orders/:orderNumber/finalized -
// corrections to an already shipped order.
func (s *Server) EditFinalizedOrder(ctx echo.Context) error {
	var req editFinalizedOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	freight, err := parseOptionalMoney(req.CustomerFreight)
	if err != nil {
		return fail(ctx, errs.NewValueIsInvalidErrorWithCause("customer_freight", err))
	}
	items, err := parseLineItems(req.Items)
	if err != nil {
		return fail(ctx, err)
	}
	actualCost, err := parseOptionalMoney(req.ActualCarrierCost)
	if err != nil {
		return fail(ctx, errs.NewValueIsInvalidErrorWithCause("actual_carrier_cost", err))
	}

	cmd, err := commands.NewEditFinalizedOrderCommand(ctx.Param("orderNumber"),
		order.Changes{
			Channel:         req.Channel,
			CustomerFreight: freight,
			Carrier:         req.Carrier,
			TrackingCode:    req.TrackingCode,
			WeightKg:        req.WeightKg,
			Notes:           req.Notes,
		}, items, actualCost)
	if err != nil {
		return fail(ctx, err)
	}

	if err := s.commands.EditFinalizedOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ApplyActualCost handles POST /api/v1/costs/actual - a batch of real
// carrier costs from an invoice upload.
func (s *Server) ApplyActualCost(ctx echo.Context) error {
	var req applyActualCostRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	rows := make([]commands.ActualCostRow, 0, len(req.Rows))
	for _, row := range req.Rows {
		amount, err := parseMoney(row.Amount)
		if err != nil {
			return fail(ctx, errs.NewValueIsInvalidErrorWithCause("amount", err))
		}
		rows = append(rows, commands.ActualCostRow{
			TrackingCode: row.TrackingCode,
			ExternalRef:  row.ExternalRef,
			Amount:       amount,
		})
	}

	cmd, err := commands.NewApplyActualCostCommand(rows)
	if err != nil {
		return fail(ctx, err)
	}

	result, err := s.commands.ApplyActualCost.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, applyActualCostResponse{
		Applied:          result.Applied,
		ProcessingErrors: result.ProcessingErrors,
	})
}

// ListPackageTypes handles GET /api/v1/package-types.
func (s *Server) ListPackageTypes(ctx echo.Context) error {
	activeOnly := ctx.QueryParam("active_only") == "true"

	result, err := s.queries.ListPackageTypes.Handle(ctx.Request().Context(),
		queries.NewListPackageTypesQuery(activeOnly))
	if err != nil {
		return fail(ctx, err)
	}

	response := make([]packageTypeResponse, len(result))
	for i, pt := range result {
		response[i] = toPackageTypeResponse(pt)
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetPackageType handles GET /api/v1/package-types/:id.
func (s *Server) GetPackageType(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return fail(ctx, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	query, err := queries.NewGetPackageTypeQuery(id)
	if err != nil {
		return fail(ctx, err)
	}

	result, err := s.queries.GetPackageType.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toPackageTypeResponse(result))
}

// CreatePackageType handles POST /api/v1/package-types.
func (s *Server) CreatePackageType(ctx echo.Context) error {
	var req packageTypeRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	unitCost, err := parseMoney(req.UnitCost)
	if err != nil {
		return fail(ctx, errs.NewValueIsInvalidErrorWithCause("unit_cost", err))
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreatePackageTypeCommand(id, req.Name, unitCost,
		packaging.Dimensions{
			HeightCm: req.HeightCm,
			WidthCm:  req.WidthCm,
			LengthCm: req.LengthCm,
			WeightKg: req.WeightKg,
		}, req.InitialStock)
	if err != nil {
		return fail(ctx, err)
	}

	if err := s.commands.CreatePackageType.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, map[string]string{"id": id.String()})
}

// UpdatePackageType handles PATCH /api/v1/package-types/:id.
func (s *Server) UpdatePackageType(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return fail(ctx, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	var req updatePackageTypeRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	unitCost, err := parseOptionalMoney(req.UnitCost)
	if err != nil {
		return fail(ctx, errs.NewValueIsInvalidErrorWithCause("unit_cost", err))
	}

	changes := packaging.Changes{
		Name:     req.Name,
		UnitCost: unitCost,
	}
	if req.HeightCm != nil || req.WidthCm != nil || req.LengthCm != nil || req.WeightKg != nil {
		dims := packaging.Dimensions{WeightKg: req.WeightKg}
		if req.HeightCm != nil {
			dims.HeightCm = *req.HeightCm
		}
		if req.WidthCm != nil {
			dims.WidthCm = *req.WidthCm
		}
		if req.LengthCm != nil {
			dims.LengthCm = *req.LengthCm
		}
		changes.Dimensions = &dims
	}

	cmd, err := commands.NewUpdatePackageTypeCommand(id, changes)
	if err != nil {
		return fail(ctx, err)
	}

	if err := s.commands.UpdatePackageType.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// DeactivatePackageType handles POST /api/v1/package-types/:id/deactivate.
func (s *Server) DeactivatePackageType(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return fail(ctx, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	cmd, err := commands.NewDeactivatePackageTypeCommand(id)
	if err != nil {
		return fail(ctx, err)
	}

	if err := s.commands.DeactivatePackageType.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// DailyTotals handles GET /api/v1/reports/daily?date=YYYY-MM-DD.
func (s *Server) DailyTotals(ctx echo.Context) error {
	day, err := parseDateParam(ctx.QueryParam("date"), time.Now())
	if err != nil {
		return fail(ctx, err)
	}

	query, err := queries.NewDailyTotalsQuery(day)
	if err != nil {
		return fail(ctx, err)
	}

	result, err := s.queries.DailyTotals.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, dailyTotalsResponse{
		Date:      result.Date.Format(dateLayout),
		Summary:   toTotalsSummaryResponse(result.Summary),
		Packaging: toPackagingUsageResponse(result.Packaging),
	})
}

// PeriodTotals handles GET /api/v1/reports/period?start=&end=.
func (s *Server) PeriodTotals(ctx echo.Context) error {
	start, end, err := parsePeriodParams(ctx)
	if err != nil {
		return fail(ctx, err)
	}

	query, err := queries.NewPeriodTotalsQuery(start, end)
	if err != nil {
		return fail(ctx, err)
	}

	result, err := s.queries.PeriodTotals.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	days := make([]dayTotalsResponse, len(result.Days))
	for i, d := range result.Days {
		days[i] = dayTotalsResponse{
			Date:    d.Date.Format(dateLayout),
			Summary: toTotalsSummaryResponse(d.Summary),
		}
	}

	return ctx.JSON(http.StatusOK, periodTotalsResponse{
		Start:     result.Start.Format(dateLayout),
		End:       result.End.Format(dateLayout),
		Summary:   toTotalsSummaryResponse(result.Summary),
		Days:      days,
		Packaging: toPackagingUsageResponse(result.Packaging),
	})
}

// ChannelTotals handles GET /api/v1/reports/channels?start=&end=.
func (s *Server) ChannelTotals(ctx echo.Context) error {
	start, end, err := parsePeriodParams(ctx)
	if err != nil {
		return fail(ctx, err)
	}

	query, err := queries.NewChannelTotalsQuery(start, end)
	if err != nil {
		return fail(ctx, err)
	}

	result, err := s.queries.ChannelTotals.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	channels := make([]channelTotalsEntryResponse, len(result.Channels))
	for i, c := range result.Channels {
		channels[i] = channelTotalsEntryResponse{
			Channel:   c.Channel,
			Summary:   toTotalsSummaryResponse(c.Summary),
			Packaging: toPackagingUsageResponse(c.Packaging),
		}
	}

	return ctx.JSON(http.StatusOK, channelTotalsResponse{
		Start:    result.Start.Format(dateLayout),
		End:      result.End.Format(dateLayout),
		Channels: channels,
	})
}

func intQueryParam(ctx echo.Context, name string, fallback int) int {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

// parseDateParam parses a YYYY-MM-DD query value in the server's location,
// falling back to the given time when absent.
func parseDateParam(raw string, fallback time.Time) (time.Time, error) {
	if raw == "" {
		return fallback, nil
	}
	day, err := time.ParseInLocation(dateLayout, raw, time.Local)
	if err != nil {
		return time.Time{}, errs.NewValueIsInvalidErrorWithCause("date", err)
	}
	return day, nil
}

func parsePeriodParams(ctx echo.Context) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(dateLayout, ctx.QueryParam("start"), time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, errs.NewValueIsInvalidErrorWithCause("start", err)
	}
	end, err := time.ParseInLocation(dateLayout, ctx.QueryParam("end"), time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, errs.NewValueIsInvalidErrorWithCause("end", err)
	}
	return start, end, nil
}
