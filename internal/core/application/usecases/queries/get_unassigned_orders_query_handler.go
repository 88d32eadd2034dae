package queries

import (
	"context"
	"time"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetUnassignedOrdersQueryHandler reads the claimable-orders board from the
// database. Oldest orders come first so long-waiting orders surface at the
// top of every partner's board.
type GetUnassignedOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetUnassignedOrdersQueryHandler creates a handler for the partner board.
func NewGetUnassignedOrdersQueryHandler(db *gorm.DB) GetUnassignedOrdersQueryHandler {
	return GetUnassignedOrdersQueryHandler{db: db}
}

// Handle returns all unassigned ready-for-pickup orders, oldest first.
func (h GetUnassignedOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetUnassignedOrdersQuery,
) ([]GetUnassignedOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetUnassignedOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.store_id,
			o.delivery_address,
			o.total,
			(SELECT COUNT(*) FROM order_items i WHERE i.order_id = o.id) AS item_count,
			o.created_at
		FROM orders o
		WHERE o.status = ? AND o.delivery_partner_id IS NULL
		ORDER BY o.created_at
	`, order.ReadyForPickup).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id        uuid.UUID
			storeID   uuid.UUID
			address   string
			total     int64
			itemCount int
			createdAt time.Time
		)

		if err = rows.Scan(&id, &storeID, &address, &total, &itemCount, &createdAt); err != nil {
			return nil, err
		}

		resp, respErr := newUnassignedOrderResponse(id, storeID, address, total, itemCount, createdAt)
		if respErr != nil {
			return nil, respErr
		}
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

func newUnassignedOrderResponse(
	id, storeID uuid.UUID,
	address string,
	total int64,
	itemCount int,
	createdAt time.Time,
) (GetUnassignedOrdersQueryResponse, error) {
	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetUnassignedOrdersQueryResponse{}, err
	}
	store, err := kernel.UUIDFromBytes(storeID[:])
	if err != nil {
		return GetUnassignedOrdersQueryResponse{}, err
	}
	totalMoney, err := kernel.NewMoney(total)
	if err != nil {
		return GetUnassignedOrdersQueryResponse{}, err
	}

	return GetUnassignedOrdersQueryResponse{
		ID:              orderID,
		StoreID:         store,
		DeliveryAddress: address,
		Total:           totalMoney,
		ItemCount:       itemCount,
		CreatedAt:       createdAt,
	}, nil
}
