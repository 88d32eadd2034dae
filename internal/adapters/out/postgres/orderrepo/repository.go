package orderrepo

import (
	"context"
	"errors"
	"time"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/order"
	"grocery/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order and its line items to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves an existing order to the database. Line items are frozen at
// placement and never written again.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"delivery_partner_id": dto.DeliveryPartnerID,
			"status":              dto.Status,
			"payment_status":      dto.PaymentStatus,
			"pickup_verified":     dto.PickupVerified,
			"updated_at":          dto.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	return nil
}

// Get retrieves an order by ID, including its line items.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).Preload("Items").First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllUnassigned retrieves ready-for-pickup orders with no partner bound,
// oldest first.
func (r *GormOrderRepository) GetAllUnassigned(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("status = ? AND delivery_partner_id IS NULL", order.ReadyForPickup).
		Order("created_at").
		Find(&dtos).Error
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

// ClaimUnassigned atomically binds a delivery partner to an order with a
// single conditional UPDATE. The row is written only if it still matches
// status = ready_for_pickup and delivery_partner_id IS NULL when the
// statement runs; under concurrent claims the database serializes the writes
// and exactly one matches.
func (r *GormOrderRepository) ClaimUnassigned(
	ctx context.Context, orderID, partnerID kernel.UUID, next order.Status,
) (*order.Order, error) {
	if err := errors.Join(orderID.Validate(), partnerID.Validate(), next.Validate()); err != nil {
		return nil, err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ? AND delivery_partner_id IS NULL", orderID.Bytes(), order.ReadyForPickup).
		Updates(map[string]any{
			"delivery_partner_id": partnerID.Bytes(),
			"status":              int(next),
			"updated_at":          time.Now().UTC(),
		})
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		// Lost race or unknown order: a follow-up read tells them apart.
		if _, err := r.Get(ctx, orderID); err != nil {
			return nil, err
		}
		return nil, order.ErrOrderUnavailable
	}

	return r.Get(ctx, orderID)
}
