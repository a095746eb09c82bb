// Package mandae implements the carrier-quote port against the Mandae
// shipping API and validates the carrier's webhook signatures.
package mandae

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/kernel"
	"github.com/GhostBC/SistemaLogistica/internal/pkg/errs"
)

const (
	providerName = "mandae"

	requestTimeout = 10 * time.Second
)

// Client quotes shipping costs by the order's external reference, which the
// carrier knows as partnerItemId. Implements ports.CarrierQuoteProvider.
type Client struct {
	http *resty.Client
}

// NewClient creates a quote client against the given API base URL, for
// example "https://api.mandae.com.br". The token comes from the carrier's
// account settings.
func NewClient(baseURL, apiToken string) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(requestTimeout).
		SetAuthToken(apiToken).
		SetHeader("Content-Type", "application/json")

	return &Client{http: httpClient}
}

// shipmentResponse covers the two response shapes the carrier answers with:
// a bare shipment list or a list nested under data/shipments.
type shipmentResponse struct {
	Data      []shipment `json:"data"`
	Shipments []shipment `json:"shipments"`
}

type shipment struct {
	Price        float64 `json:"price"`
	TrackingCode string  `json:"trackingCode"`
}

// QuoteCost returns the carrier's cost for the shipment registered under the
// given external reference. A reference the carrier does not know yields
// (zero, false, nil): absence is normal and never blocks finalize.
func (c *Client) QuoteCost(ctx context.Context, externalRef string) (kernel.Money, bool, error) {
	if externalRef == "" {
		return kernel.ZeroMoney(), false, errs.NewValueIsRequiredError("externalRef")
	}

	response, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("partnerItemId", externalRef).
		Get("/v2/shipments")
	if err != nil {
		return kernel.ZeroMoney(), false, errs.NewExternalProviderError(providerName, err)
	}
	if response.StatusCode() == 404 {
		return kernel.ZeroMoney(), false, nil
	}
	if response.IsError() {
		return kernel.ZeroMoney(), false, errs.NewExternalProviderError(providerName,
			fmt.Errorf("GET /v2/shipments: status %d", response.StatusCode()))
	}

	shipments, err := decodeShipments(response.Body())
	if err != nil {
		return kernel.ZeroMoney(), false, errs.NewExternalProviderError(providerName, err)
	}
	if len(shipments) == 0 {
		return kernel.ZeroMoney(), false, nil
	}

	return kernel.MoneyFromFloat(shipments[0].Price), true, nil
}

func decodeShipments(body []byte) ([]shipment, error) {
	// a bare JSON array first, then the wrapped shapes
	var list []shipment
	if err := json.Unmarshal(body, &list); err == nil {
		return list, nil
	}

	var wrapped shipmentResponse
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, err
	}
	if len(wrapped.Data) > 0 {
		return wrapped.Data, nil
	}
	return wrapped.Shipments, nil
}
