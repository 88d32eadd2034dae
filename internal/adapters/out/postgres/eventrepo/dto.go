// Package eventrepo provides persistence for the order_events outbox. Rows
// are written in the same transaction as the status transition they record;
// published_at stays NULL until the event has been handed to the fan-out.
package eventrepo

import (
	"time"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderEventDTO represents one outbox row.
type OrderEventDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;index"`
	OldStatus   int
	NewStatus   int
	OccurredAt  time.Time
	PublishedAt *time.Time `gorm:"index"`
}

// TableName specifies the database table name for the outbox.
func (OrderEventDTO) TableName() string {
	return "order_events"
}

func fromDomain(event *order.Event) OrderEventDTO {
	return OrderEventDTO{
		ID:         event.ID().Bytes(),
		OrderID:    event.OrderID().Bytes(),
		OldStatus:  int(event.OldStatus()),
		NewStatus:  int(event.NewStatus()),
		OccurredAt: event.OccurredAt(),
	}
}

func toDomain(dto OrderEventDTO) (*order.Event, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	return order.RestoreEvent(
		id, orderID,
		order.Status(dto.OldStatus), order.Status(dto.NewStatus),
		dto.OccurredAt,
	)
}
