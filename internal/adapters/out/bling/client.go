// Package bling implements the order feed port against the Bling order hub
// (API v3). The hub's payloads are duck typed, so every response goes through
// the tolerant decoder in decode.go before the core sees it.
package bling

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/kernel"
	"github.com/GhostBC/SistemaLogistica/internal/core/ports"
	"github.com/GhostBC/SistemaLogistica/internal/pkg/errs"
)

const (
	providerName = "bling"

	// openSituationID is the hub's situation code for orders awaiting
	// fulfillment; listing pages may leak other situations, so entries are
	// filtered again client-side.
	openSituationID = 6

	// pageSize is the hub's maximum page size. A short page means the
	// listing is exhausted.
	pageSize = 100

	requestTimeout = 10 * time.Second
)

// Client fetches open orders from the hub. Implements ports.OrderFeed.
type Client struct {
	http *resty.Client
}

// NewClient creates a feed client against the given API base URL, for
// example "https://api.bling.com.br/Api/v3". The access token is sent as a
// bearer token on every request.
func NewClient(baseURL, accessToken string) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(requestTimeout).
		SetAuthToken(accessToken).
		SetHeader("Content-Type", "application/json")

	return &Client{http: httpClient}
}

// FetchOpenOrders returns one page of open orders. hasMore reports whether
// another page should be requested.
func (c *Client) FetchOpenOrders(ctx context.Context, page int) ([]ports.OpenOrderSummary, bool, error) {
	if page < 1 {
		return nil, false, errs.NewValueIsInvalidError("page")
	}

	body, err := c.getJSON(ctx, "/pedidos/vendas", map[string]string{
		"situacao": "aberto",
		"limite":   fmt.Sprintf("%d", pageSize),
		"pagina":   fmt.Sprintf("%d", page),
	})
	if err != nil {
		return nil, false, err
	}

	entries := orderEntries(body)
	orders := make([]ports.OpenOrderSummary, 0, len(entries))
	for _, entry := range entries {
		order := unwrapOrder(entry)

		if id, ok := situationID(order); !ok || id != openSituationID {
			continue
		}

		externalID := order.text("id", "idPedidoVenda", "id_pedido", "idPedido")
		orderNumber := order.text("numero", "numeroPedido", "numero_pedido")
		if externalID == "" && orderNumber == "" {
			continue
		}
		if externalID == "" {
			externalID = orderNumber
		}
		if orderNumber == "" {
			orderNumber = externalID
		}

		orders = append(orders, ports.OpenOrderSummary{
			ExternalID:  externalID,
			OrderNumber: orderNumber,
			Channel:     channelFromStore(order),
			StoreRef:    storeRef(order),
		})
	}

	return orders, len(entries) == pageSize, nil
}

// FetchOrderDetail returns the shipping detail of one order by its hub-side
// identifier.
func (c *Client) FetchOrderDetail(ctx context.Context, externalID string) (ports.OrderDetail, error) {
	if externalID == "" {
		return ports.OrderDetail{}, errs.NewValueIsRequiredError("externalID")
	}

	body, err := c.getJSON(ctx, "/pedidos/vendas/"+externalID, nil)
	if err != nil {
		return ports.OrderDetail{}, err
	}

	order := orderDetailBody(body)
	transport := order.object("transporte", "frete")

	freight := kernel.ZeroMoney()
	if transport != nil {
		if amount, ok := transport.number("valor", "frete", "valor_frete"); ok {
			freight = kernel.MoneyFromFloat(amount)
		}
	}

	carrier := ""
	if transport != nil {
		carrier = transport.text("nome", "transportadora")
	}

	customer := order.text("cliente")
	if contact := order.object("contato"); contact != nil {
		if name := contact.text("nome"); name != "" {
			customer = name
		}
	}

	return ports.OrderDetail{
		CarrierName:     carrier,
		CustomerFreight: freight,
		TrackingCode:    trackingCode(order, transport),
		StoreRef:        storeRef(order),
		CustomerName:    customer,
	}, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params map[string]string) (payload, error) {
	request := c.http.R().SetContext(ctx)
	if len(params) > 0 {
		request.SetQueryParams(params)
	}

	response, err := request.Get(path)
	if err != nil {
		return nil, errs.NewExternalProviderError(providerName, err)
	}
	if response.IsError() {
		return nil, errs.NewExternalProviderError(providerName,
			fmt.Errorf("GET %s: status %d", path, response.StatusCode()))
	}

	var body payload
	if err := json.Unmarshal(response.Body(), &body); err != nil {
		return nil, errs.NewExternalProviderError(providerName, err)
	}
	return body, nil
}

// channelFromStore maps the hub's numeric store identifier to the channel
// name used across the system. Unknown stores keep their raw identifier so
// the reconciliation still groups them.
func channelFromStore(order payload) string {
	storeID := ""
	if store := order.object("loja"); store != nil {
		storeID = store.text("id")
	}
	if storeID == "" {
		storeID = order.text("lojaId", "loja_id", "idLoja")
	}

	if name, ok := storeChannels[storeID]; ok {
		return name
	}
	return storeID
}

// storeChannels maps hub store identifiers to channel names.
var storeChannels = map[string]string{
	"204638501": "shopee",
	"204701093": "tray",
	"0":         "site",
	"":          "site",
}
