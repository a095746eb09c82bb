package queries

import (
	"errors"
	"fmt"
	"time"

	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/kernel"
	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/order"
	"github.com/GhostBC/SistemaLogistica/internal/pkg/errs"
	"github.com/GhostBC/SistemaLogistica/internal/pkg/guard"
)

const (
	// maxOrdersPerPage caps a single listing page.
	maxOrdersPerPage = 200

	// defaultOrdersPerPage is used when the caller does not specify a size.
	defaultOrdersPerPage = 50
)

var (
	ErrListOrdersQueryIsNotConstructed = errors.New(
		"ListOrdersQuery must be created via NewListOrdersQuery constructor",
	)
)

// ListOrdersQuery lists orders in one status, optionally filtered by channel
// and a free-text search over order number, customer name and tracking code.
// Results are paginated, newest first.
type ListOrdersQuery struct {
	status  order.Status
	channel string
	search  string
	page    int
	perPage int

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates an order listing query. perPage 0 falls back to
// the default page size.
func NewListOrdersQuery(status order.Status, channel, search string, page, perPage int) (ListOrdersQuery, error) {
	if err := status.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}
	if page < 1 {
		return ListOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause("page",
			fmt.Errorf("%d is not greater than 0", page))
	}
	if perPage == 0 {
		perPage = defaultOrdersPerPage
	}
	if perPage < 1 || perPage > maxOrdersPerPage {
		return ListOrdersQuery{}, errs.NewValueIsOutOfRangeError("perPage", perPage, 1, maxOrdersPerPage)
	}

	return ListOrdersQuery{
		status:  status,
		channel: channel,
		search:  search,
		page:    page,
		perPage: perPage,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Status returns the requested lifecycle status.
func (q ListOrdersQuery) Status() order.Status {
	return q.status
}

// Channel returns the channel filter, empty for all channels.
func (q ListOrdersQuery) Channel() string {
	return q.channel
}

// Search returns the free-text filter, empty for none.
func (q ListOrdersQuery) Search() string {
	return q.search
}

// Page returns the 1-based page number.
func (q ListOrdersQuery) Page() int {
	return q.page
}

// PerPage returns the page size.
func (q ListOrdersQuery) PerPage() int {
	return q.perPage
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// OrderSummaryResponse represents one order row in a listing.
type OrderSummaryResponse struct {
	ID              kernel.UUID
	OrderNumber     string
	Channel         string
	Store           string
	CustomerName    string
	Status          string
	CustomerFreight kernel.Money
	Carrier         string
	TrackingCode    string
	Notes           string
	ReservedBy      *kernel.UUID
	OpenedAt        time.Time
	FinalizedAt     *time.Time
}

// ListOrdersQueryResponse carries one listing page plus the total row count
// and the last completed order sync, which the dashboard shows next to the
// open-order list.
type ListOrdersQueryResponse struct {
	Orders     []OrderSummaryResponse
	Total      int64
	LastSyncAt *time.Time
}
