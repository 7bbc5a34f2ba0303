// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"coldchain/internal/core/domain/model/kernel"
	"coldchain/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Status is stored as its wire string so raw SQL queries read it without a
// lookup table.
type OrderDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderNumber  string    `gorm:"uniqueIndex"`
	CustomerName string
	TotalAmount  float64
	Status       string `gorm:"index"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	return OrderDTO{
		ID:           aggregate.ID().Bytes(),
		OrderNumber:  aggregate.OrderNumber(),
		CustomerName: aggregate.CustomerName(),
		TotalAmount:  aggregate.TotalAmount(),
		Status:       aggregate.Status().String(),
	}
}

// toDomain converts a database DTO back to an order domain aggregate.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, dto.OrderNumber, dto.CustomerName, dto.TotalAmount, status)
}
