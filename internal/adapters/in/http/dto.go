package http

import (
	"time"

	"github.com/GhostBC/SistemaLogistica/internal/core/application/usecases/commands"
	"github.com/GhostBC/SistemaLogistica/internal/core/application/usecases/queries"
	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/kernel"
	"github.com/GhostBC/SistemaLogistica/internal/pkg/errs"
)

// errorResponse is the uniform error body.
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Money travels as a decimal string ("12.00") in both directions.

type lineItemPayload struct {
	PackageTypeID string `json:"package_type_id"`
	Quantity      int    `json:"quantity"`
}

func parseLineItems(payload []lineItemPayload) ([]commands.LineItemInput, error) {
	if payload == nil {
		return nil, nil
	}
	items := make([]commands.LineItemInput, 0, len(payload))
	for _, item := range payload {
		id, err := kernel.UUIDFromString(item.PackageTypeID)
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("package_type_id", err)
		}
		items = append(items, commands.LineItemInput{PackageTypeID: id, Quantity: item.Quantity})
	}
	return items, nil
}

func parseMoney(s string) (kernel.Money, error) {
	if s == "" {
		return kernel.ZeroMoney(), nil
	}
	return kernel.MoneyFromString(s)
}

func parseOptionalMoney(s *string) (*kernel.Money, error) {
	if s == nil {
		return nil, nil
	}
	amount, err := kernel.MoneyFromString(*s)
	if err != nil {
		return nil, err
	}
	return &amount, nil
}

type createOrderRequest struct {
	OrderNumber     string   `json:"order_number"`
	Channel         string   `json:"channel"`
	CustomerFreight string   `json:"customer_freight"`
	ExternalRef     string   `json:"external_ref"`
	Store           string   `json:"store"`
	CustomerName    string   `json:"customer_name"`
	Carrier         string   `json:"carrier"`
	TrackingCode    string   `json:"tracking_code"`
	WeightKg        *float64 `json:"weight_kg"`
}

type updateOrderRequest struct {
	Channel         *string  `json:"channel"`
	CustomerFreight *string  `json:"customer_freight"`
	Carrier         *string  `json:"carrier"`
	TrackingCode    *string  `json:"tracking_code"`
	WeightKg        *float64 `json:"weight_kg"`
	Notes           *string  `json:"notes"`
}

type reserveOrderRequest struct {
	OperatorID string `json:"operator_id"`
}

type releaseOrderRequest struct {
	OperatorID string `json:"operator_id"`
	IsAdmin    bool   `json:"is_admin"`
}

type finalizeOrderRequest struct {
	Actor             string            `json:"actor"`
	Items             []lineItemPayload `json:"items"`
	Notes             string            `json:"notes"`
	ActualCarrierCost *string           `json:"actual_carrier_cost"`
}

type editFinalizedOrderRequest struct {
	Channel           *string           `json:"channel"`
	CustomerFreight   *string           `json:"customer_freight"`
	Carrier           *string           `json:"carrier"`
	TrackingCode      *string           `json:"tracking_code"`
	WeightKg          *float64          `json:"weight_kg"`
	Notes             *string           `json:"notes"`
	Items             []lineItemPayload `json:"items"`
	ActualCarrierCost *string           `json:"actual_carrier_cost"`
}

type refreshTrackingRequest struct {
	Limit int `json:"limit"`
}

type actualCostRowPayload struct {
	TrackingCode string `json:"tracking_code"`
	ExternalRef  string `json:"external_ref"`
	Amount       string `json:"amount"`
}

type applyActualCostRequest struct {
	Rows []actualCostRowPayload `json:"rows"`
}

type packageTypeRequest struct {
	Name         string   `json:"name"`
	UnitCost     string   `json:"unit_cost"`
	HeightCm     float64  `json:"height_cm"`
	WidthCm      float64  `json:"width_cm"`
	LengthCm     float64  `json:"length_cm"`
	WeightKg     *float64 `json:"weight_kg"`
	InitialStock int      `json:"initial_stock"`
}

type updatePackageTypeRequest struct {
	Name     *string  `json:"name"`
	UnitCost *string  `json:"unit_cost"`
	HeightCm *float64 `json:"height_cm"`
	WidthCm  *float64 `json:"width_cm"`
	LengthCm *float64 `json:"length_cm"`
	WeightKg *float64 `json:"weight_kg"`
}

type orderSummaryResponse struct {
	ID              string     `json:"id"`
	OrderNumber     string     `json:"order_number"`
	Channel         string     `json:"channel"`
	Store           string     `json:"store,omitempty"`
	CustomerName    string     `json:"customer_name,omitempty"`
	Status          string     `json:"status"`
	CustomerFreight string     `json:"customer_freight"`
	Carrier         string     `json:"carrier,omitempty"`
	TrackingCode    string     `json:"tracking_code,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	ReservedBy      *string    `json:"reserved_by,omitempty"`
	OpenedAt        time.Time  `json:"opened_at"`
	FinalizedAt     *time.Time `json:"finalized_at,omitempty"`
}

type listOrdersResponse struct {
	Orders     []orderSummaryResponse `json:"orders"`
	Total      int64                  `json:"total"`
	LastSyncAt *time.Time             `json:"last_sync_at,omitempty"`
}

func toListOrdersResponse(result queries.ListOrdersQueryResponse) listOrdersResponse {
	orders := make([]orderSummaryResponse, len(result.Orders))
	for i, o := range result.Orders {
		var reservedBy *string
		if o.ReservedBy != nil {
			s := o.ReservedBy.String()
			reservedBy = &s
		}
		orders[i] = orderSummaryResponse{
			ID:              o.ID.String(),
			OrderNumber:     o.OrderNumber,
			Channel:         o.Channel,
			Store:           o.Store,
			CustomerName:    o.CustomerName,
			Status:          o.Status,
			CustomerFreight: o.CustomerFreight.String(),
			Carrier:         o.Carrier,
			TrackingCode:    o.TrackingCode,
			Notes:           o.Notes,
			ReservedBy:      reservedBy,
			OpenedAt:        o.OpenedAt,
			FinalizedAt:     o.FinalizedAt,
		}
	}
	return listOrdersResponse{
		Orders:     orders,
		Total:      result.Total,
		LastSyncAt: result.LastSyncAt,
	}
}

type packageTypeResponse struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	UnitCost string   `json:"unit_cost"`
	HeightCm float64  `json:"height_cm"`
	WidthCm  float64  `json:"width_cm"`
	LengthCm float64  `json:"length_cm"`
	WeightKg *float64 `json:"weight_kg,omitempty"`
	Stock    int      `json:"stock"`
	Active   bool     `json:"active"`
}

func toPackageTypeResponse(pt queries.PackageTypeResponse) packageTypeResponse {
	return packageTypeResponse{
		ID:       pt.ID.String(),
		Name:     pt.Name,
		UnitCost: pt.UnitCost.String(),
		HeightCm: pt.HeightCm,
		WidthCm:  pt.WidthCm,
		LengthCm: pt.LengthCm,
		WeightKg: pt.WeightKg,
		Stock:    pt.Stock,
		Active:   pt.Active,
	}
}

type applyActualCostResponse struct {
	Applied          int      `json:"applied"`
	ProcessingErrors []string `json:"processing_errors,omitempty"`
}

type syncResultResponse struct {
	Skipped bool `json:"skipped"`
	Pages   int  `json:"pages"`
	Created int  `json:"created"`
	Updated int  `json:"updated"`
	Pruned  int  `json:"pruned"`
}

type refreshTrackingResponse struct {
	Refreshed int `json:"refreshed"`
}

type totalsSummaryResponse struct {
	OrderCount           int    `json:"order_count"`
	TotalCost            string `json:"total_cost"`
	TotalCustomerFreight string `json:"total_customer_freight"`
	TotalCarrierCost     string `json:"total_carrier_cost"`
	GainTotal            string `json:"gain_total"`
	LossTotal            string `json:"loss_total"`
	MarginAvg            string `json:"margin_avg"`
}

func toTotalsSummaryResponse(s queries.TotalsSummary) totalsSummaryResponse {
	return totalsSummaryResponse{
		OrderCount:           s.OrderCount,
		TotalCost:            s.TotalCost.String(),
		TotalCustomerFreight: s.TotalCustomerFreight.String(),
		TotalCarrierCost:     s.TotalCarrierCost.String(),
		GainTotal:            s.GainTotal.String(),
		LossTotal:            s.LossTotal.String(),
		MarginAvg:            s.MarginAvg.StringFixed(2),
	}
}

type packagingUsageResponse struct {
	PackageTypeID string `json:"package_type_id"`
	Name          string `json:"name"`
	Quantity      int    `json:"quantity"`
	UnitCost      string `json:"unit_cost"`
	Value         string `json:"value"`
}

func toPackagingUsageResponse(usage []queries.PackagingUsageResponse) []packagingUsageResponse {
	out := make([]packagingUsageResponse, len(usage))
	for i, u := range usage {
		out[i] = packagingUsageResponse{
			PackageTypeID: u.PackageTypeID.String(),
			Name:          u.Name,
			Quantity:      u.Quantity,
			UnitCost:      u.UnitCost.String(),
			Value:         u.Value.String(),
		}
	}
	return out
}

type dailyTotalsResponse struct {
	Date      string                   `json:"date"`
	Summary   totalsSummaryResponse    `json:"summary"`
	Packaging []packagingUsageResponse `json:"packaging"`
}

type dayTotalsResponse struct {
	Date    string                `json:"date"`
	Summary totalsSummaryResponse `json:"summary"`
}

type periodTotalsResponse struct {
	Start     string                   `json:"start"`
	End       string                   `json:"end"`
	Summary   totalsSummaryResponse    `json:"summary"`
	Days      []dayTotalsResponse      `json:"days"`
	Packaging []packagingUsageResponse `json:"packaging"`
}

type channelTotalsEntryResponse struct {
	Channel   string                   `json:"channel"`
	Summary   totalsSummaryResponse    `json:"summary"`
	Packaging []packagingUsageResponse `json:"packaging"`
}

type channelTotalsResponse struct {
	Start    string                       `json:"start"`
	End      string                       `json:"end"`
	Channels []channelTotalsEntryResponse `json:"channels"`
}
