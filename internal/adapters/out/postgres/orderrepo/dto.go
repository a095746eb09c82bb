// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between domain entities and database rows.
package orderrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/kernel"
	"github.com/GhostBC/SistemaLogistica/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The order number is the natural business key shared with cost records and
// audit entries; line items live in their own table and are replaced as a set
// on every update.
type OrderDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderNumber     string    `gorm:"uniqueIndex;not null"`
	ExternalRef     string    `gorm:"index"`
	Channel         string    `gorm:"index;not null"`
	Store           string
	CustomerName    string
	Status          string          `gorm:"index;not null"`
	CustomerFreight decimal.Decimal `gorm:"type:numeric(12,2)"`
	Carrier         string
	TrackingCode    string `gorm:"index"`
	WeightKg        *float64
	Notes           string
	ReservedBy      *uuid.UUID `gorm:"type:uuid"`
	ReservedAt      *time.Time
	OpenedAt        time.Time
	FinalizedAt     *time.Time

	LineItems []LineItemDTO `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming convention.
func (OrderDTO) TableName() string {
	return "orders"
}

// LineItemDTO represents one packaging line of a finalized order. Position
// preserves the submitted list order; the row at position 0 is the primary
// item at serialization boundaries.
type LineItemDTO struct {
	ID            int64     `gorm:"primaryKey;autoIncrement"`
	OrderID       uuid.UUID `gorm:"type:uuid;index;not null"`
	PackageTypeID uuid.UUID `gorm:"type:uuid;not null"`
	Quantity      int       `gorm:"not null"`
	Position      int       `gorm:"not null"`
}

// TableName overrides GORM's default naming convention.
func (LineItemDTO) TableName() string {
	return "order_line_items"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var reservedBy *uuid.UUID
	if holder := aggregate.ReservedBy(); holder != nil {
		raw := holder.Bytes()
		reservedBy = &raw
	}

	items := aggregate.LineItems()
	itemDTOs := make([]LineItemDTO, 0, len(items))
	for i, item := range items {
		itemDTOs = append(itemDTOs, LineItemDTO{
			OrderID:       aggregate.ID().Bytes(),
			PackageTypeID: item.PackageTypeID().Bytes(),
			Quantity:      item.Quantity(),
			Position:      i,
		})
	}

	return OrderDTO{
		ID:              aggregate.ID().Bytes(),
		OrderNumber:     aggregate.OrderNumber(),
		ExternalRef:     aggregate.ExternalRef(),
		Channel:         aggregate.Channel(),
		Store:           aggregate.Store(),
		CustomerName:    aggregate.CustomerName(),
		Status:          aggregate.Status().String(),
		CustomerFreight: aggregate.CustomerFreight().Decimal(),
		Carrier:         aggregate.Carrier(),
		TrackingCode:    aggregate.TrackingCode(),
		WeightKg:        aggregate.WeightKg(),
		Notes:           aggregate.Notes(),
		ReservedBy:      reservedBy,
		ReservedAt:      aggregate.ReservedAt(),
		OpenedAt:        aggregate.OpenedAt(),
		FinalizedAt:     aggregate.FinalizedAt(),
		LineItems:       itemDTOs,
	}
}

// toDomain converts a database DTO to an order aggregate, re-validating the
// invariants through RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var reservedBy *kernel.UUID
	if dto.ReservedBy != nil {
		holder, holderErr := kernel.UUIDFromBytes((*dto.ReservedBy)[:])
		if holderErr != nil {
			return nil, holderErr
		}
		reservedBy = &holder
	}

	items := make([]order.LineItem, 0, len(dto.LineItems))
	for _, itemDTO := range dto.LineItems {
		packageTypeID, itemErr := kernel.UUIDFromBytes(itemDTO.PackageTypeID[:])
		if itemErr != nil {
			return nil, itemErr
		}
		item, itemErr := order.NewLineItem(packageTypeID, itemDTO.Quantity)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:              id,
		OrderNumber:     dto.OrderNumber,
		Channel:         dto.Channel,
		Status:          status,
		CustomerFreight: kernel.MoneyFromDecimal(dto.CustomerFreight),
		Details: order.Details{
			ExternalRef:  dto.ExternalRef,
			Store:        dto.Store,
			CustomerName: dto.CustomerName,
			Carrier:      dto.Carrier,
			TrackingCode: dto.TrackingCode,
			WeightKg:     dto.WeightKg,
			Notes:        dto.Notes,
		},
		LineItems:   items,
		ReservedBy:  reservedBy,
		ReservedAt:  dto.ReservedAt,
		OpenedAt:    dto.OpenedAt,
		FinalizedAt: dto.FinalizedAt,
	})
}
