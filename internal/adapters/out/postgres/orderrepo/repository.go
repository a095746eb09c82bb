package orderrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/kernel"
	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/order"
	"github.com/GhostBC/SistemaLogistica/internal/pkg/errs"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database, line items included.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order to the database. The column update selects
// every field so cleared values (a released reservation, an emptied carrier)
// persist as well, and the line item set is replaced wholesale.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Omit(clause.Associations).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if err := r.replaceLineItems(ctx, dto); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by order number.
func (r *GormOrderRepository) Get(ctx context.Context, orderNumber string) (*order.Order, error) {
	return r.getByColumn(ctx, "order_number", orderNumber)
}

// GetForUpdate retrieves an order by order number, locking its row until the
// surrounding transaction ends.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, orderNumber string) (*order.Order, error) {
	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "order_number = ?", orderNumber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", orderNumber)
		}
		return nil, err
	}

	if err := r.loadLineItems(ctx, &dto); err != nil {
		return nil, err
	}
	return toDomain(dto)
}

// GetByExternalRef retrieves an order by its upstream feed identifier.
func (r *GormOrderRepository) GetByExternalRef(ctx context.Context, externalRef string) (*order.Order, error) {
	if externalRef == "" {
		return nil, errs.NewValueIsRequiredError("externalRef")
	}
	return r.getByColumn(ctx, "external_ref", externalRef)
}

// GetByTrackingCode retrieves an order by carrier tracking code.
func (r *GormOrderRepository) GetByTrackingCode(ctx context.Context, trackingCode string) (*order.Order, error) {
	if trackingCode == "" {
		return nil, errs.NewValueIsRequiredError("trackingCode")
	}
	return r.getByColumn(ctx, "tracking_code", trackingCode)
}

// GetAllInStatus retrieves all orders in the given status, oldest first.
func (r *GormOrderRepository) GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Preload("LineItems", lineItemOrder).
		Order("opened_at").
		Find(&dtos, "status = ?", status.String()).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// GetOpenOrderNumbers returns the order numbers of all open orders.
func (r *GormOrderRepository) GetOpenOrderNumbers(ctx context.Context) ([]string, error) {
	var numbers []string
	err := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("status = ?", order.Open.String()).
		Pluck("order_number", &numbers).Error
	if err != nil {
		return nil, err
	}
	return numbers, nil
}

// Delete removes an order and its line items.
func (r *GormOrderRepository) Delete(ctx context.Context, orderNumber string) error {
	var dto OrderDTO
	err := r.db.WithContext(ctx).First(&dto, "order_number = ?", orderNumber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewObjectNotFoundError("order", orderNumber)
		}
		return err
	}

	if err := r.db.WithContext(ctx).Delete(&LineItemDTO{}, "order_id = ?", dto.ID).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&OrderDTO{}, "id = ?", dto.ID).Error
}

func (r *GormOrderRepository) getByColumn(ctx context.Context, column, value string) (*order.Order, error) {
	var dto OrderDTO
	err := r.db.WithContext(ctx).First(&dto, column+" = ?", value).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", value)
		}
		return nil, err
	}

	if err := r.loadLineItems(ctx, &dto); err != nil {
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormOrderRepository) loadLineItems(ctx context.Context, dto *OrderDTO) error {
	return r.db.WithContext(ctx).
		Order("position").
		Find(&dto.LineItems, "order_id = ?", dto.ID).Error
}

func (r *GormOrderRepository) replaceLineItems(ctx context.Context, dto OrderDTO) error {
	if err := r.db.WithContext(ctx).Delete(&LineItemDTO{}, "order_id = ?", dto.ID).Error; err != nil {
		return err
	}
	if len(dto.LineItems) == 0 {
		return nil
	}
	items := dto.LineItems
	return r.db.WithContext(ctx).Create(&items).Error
}

func lineItemOrder(db *gorm.DB) *gorm.DB {
	return db.Order("position")
}
