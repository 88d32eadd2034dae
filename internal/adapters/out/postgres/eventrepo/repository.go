package eventrepo

import (
	"context"
	"time"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GormEventRepository implements EventRepository using GORM.
type GormEventRepository struct {
	db *gorm.DB
}

// NewGormEventRepository creates a new GORM outbox repository.
func NewGormEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

// Add persists a transition event in the current transaction.
func (r *GormEventRepository) Add(ctx context.Context, event *order.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	dto := fromDomain(event)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetUnpublished retrieves up to limit undelivered events, oldest first.
func (r *GormEventRepository) GetUnpublished(ctx context.Context, limit int) ([]*order.Event, error) {
	var dtos []OrderEventDTO
	err := r.db.WithContext(ctx).
		Where("published_at IS NULL").
		Order("occurred_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	events := make([]*order.Event, 0, len(dtos))
	for _, dto := range dtos {
		event, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, nil
}

// MarkPublished stamps the event as handed to the publisher. Marking an
// already-published event is a no-op, which keeps the relay and the
// post-commit path from fighting over the same row.
func (r *GormEventRepository) MarkPublished(ctx context.Context, eventID kernel.UUID) error {
	if err := eventID.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Model(&OrderEventDTO{}).
		Where("id = ? AND published_at IS NULL", eventID.Bytes()).
		Update("published_at", time.Now().UTC()).Error
}
