package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/kernel"
)

// ordersSyncKind is the sync_states row the order sync writes.
const ordersSyncKind = "orders"

// ListOrdersQueryHandler reads order listing pages directly from the
// database.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for order listings.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle executes the listing: one page of orders newest first, the total
// count for the same filters, and the last completed sync timestamp.
func (h ListOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListOrdersQuery,
) (ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListOrdersQueryResponse{}, err
	}

	where := " WHERE status = ?"
	args := []any{query.Status().String()}

	if query.Channel() != "" {
		where += " AND channel = ?"
		args = append(args, query.Channel())
	}
	if query.Search() != "" {
		where += " AND (order_number ILIKE ? OR customer_name ILIKE ? OR tracking_code ILIKE ?)"
		pattern := "%" + query.Search() + "%"
		args = append(args, pattern, pattern, pattern)
	}

	var total int64
	err := h.db.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM orders"+where, args...).
		Scan(&total).Error
	if err != nil {
		return ListOrdersQueryResponse{}, err
	}

	pageArgs := append(append([]any{}, args...),
		query.PerPage(), (query.Page()-1)*query.PerPage())
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			channel,
			store,
			customer_name,
			status,
			customer_freight,
			carrier,
			tracking_code,
			notes,
			reserved_by,
			opened_at,
			finalized_at
		FROM orders`+where+`
		ORDER BY opened_at DESC
		LIMIT ? OFFSET ?
	`, pageArgs...).Rows()
	if err != nil {
		return ListOrdersQueryResponse{}, err
	}
	defer rows.Close()

	orders := make([]OrderSummaryResponse, 0, query.PerPage())
	for rows.Next() {
		var resp OrderSummaryResponse
		var id uuid.UUID
		var reservedBy *uuid.UUID
		var freight decimal.Decimal

		err = rows.Scan(
			&id,
			&resp.OrderNumber,
			&resp.Channel,
			&resp.Store,
			&resp.CustomerName,
			&resp.Status,
			&freight,
			&resp.Carrier,
			&resp.TrackingCode,
			&resp.Notes,
			&reservedBy,
			&resp.OpenedAt,
			&resp.FinalizedAt,
		)
		if err != nil {
			return ListOrdersQueryResponse{}, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return ListOrdersQueryResponse{}, idErr
		}
		resp.ID = orderID
		resp.CustomerFreight = kernel.MoneyFromDecimal(freight)

		if reservedBy != nil {
			holder, holderErr := kernel.UUIDFromBytes((*reservedBy)[:])
			if holderErr != nil {
				return ListOrdersQueryResponse{}, holderErr
			}
			resp.ReservedBy = &holder
		}

		orders = append(orders, resp)
	}
	if err = rows.Err(); err != nil {
		return ListOrdersQueryResponse{}, err
	}

	lastSync, err := h.lastSyncAt(ctx)
	if err != nil {
		return ListOrdersQueryResponse{}, err
	}

	return ListOrdersQueryResponse{
		Orders:     orders,
		Total:      total,
		LastSyncAt: lastSync,
	}, nil
}

func (h ListOrdersQueryHandler) lastSyncAt(ctx context.Context) (*time.Time, error) {
	var at time.Time
	err := h.db.WithContext(ctx).
		Raw("SELECT last_sync_at FROM sync_states WHERE kind = ?", ordersSyncKind).
		Row().Scan(&at)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &at, nil
}
