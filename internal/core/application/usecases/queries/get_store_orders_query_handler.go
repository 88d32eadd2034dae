package queries

import (
	"context"
	"time"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetStoreOrdersQueryHandler reads a store's fulfillment board from the
// database. Delivered and cancelled orders drop off the board; newest orders
// come first since the store works top-down from incoming work.
type GetStoreOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetStoreOrdersQueryHandler creates a handler for store board queries.
func NewGetStoreOrdersQueryHandler(db *gorm.DB) GetStoreOrdersQueryHandler {
	return GetStoreOrdersQueryHandler{db: db}
}

// Handle returns the store's non-terminal orders, newest first.
func (h GetStoreOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetStoreOrdersQuery,
) ([]GetStoreOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetStoreOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_id,
			delivery_partner_id,
			status,
			total,
			delivery_address,
			pickup_verified,
			created_at
		FROM orders
		WHERE store_id = ? AND status NOT IN (?, ?)
		ORDER BY created_at DESC
	`, query.StoreID().Bytes(), order.Delivered, order.Cancelled).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id, customerID  uuid.UUID
			partnerID       *uuid.UUID
			status          int
			total           int64
			deliveryAddress string
			pickupVerified  bool
			createdAt       time.Time
		)

		if err = rows.Scan(
			&id, &customerID, &partnerID, &status, &total,
			&deliveryAddress, &pickupVerified, &createdAt,
		); err != nil {
			return nil, err
		}

		resp := GetStoreOrdersQueryResponse{
			Status:          order.Status(status),
			DeliveryAddress: deliveryAddress,
			PickupVerified:  pickupVerified,
			CreatedAt:       createdAt,
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
			return nil, err
		}
		if partnerID != nil {
			partner, partnerErr := kernel.UUIDFromBytes((*partnerID)[:])
			if partnerErr != nil {
				return nil, partnerErr
			}
			resp.PartnerID = &partner
		}
		if resp.Total, err = kernel.NewMoney(total); err != nil {
			return nil, err
		}

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
