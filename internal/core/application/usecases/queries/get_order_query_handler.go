package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/order"
	"grocery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads one order's tracking snapshot from the database.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for order tracking lookups.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns the snapshot, or errs.ErrObjectNotFound for an unknown id.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp, err := h.scanOrder(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	items, err := h.scanItems(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.Items = items

	return resp, nil
}

func (h GetOrderQueryHandler) scanOrder(
	ctx context.Context, orderID kernel.UUID,
) (GetOrderQueryResponse, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_id,
			store_id,
			delivery_partner_id,
			status,
			subtotal,
			delivery_fee,
			discount,
			total,
			delivery_address,
			payment_status,
			pickup_verified,
			created_at,
			updated_at
		FROM orders
		WHERE id = ?
	`, orderID.Bytes()).Row()

	var (
		id, customerID, storeID                uuid.UUID
		partnerID                              *uuid.UUID
		status                                 int
		subtotal, deliveryFee, discount, total int64
		deliveryAddress, paymentStatus         string
		pickupVerified                         bool
		createdAt, updatedAt                   time.Time
	)

	err := row.Scan(
		&id, &customerID, &storeID, &partnerID, &status,
		&subtotal, &deliveryFee, &discount, &total,
		&deliveryAddress, &paymentStatus, &pickupVerified,
		&createdAt, &updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("orderId", orderID)
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp := GetOrderQueryResponse{
		Status:          order.Status(status),
		DeliveryAddress: deliveryAddress,
		PaymentStatus:   paymentStatus,
		PickupVerified:  pickupVerified,
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.StoreID, err = kernel.UUIDFromBytes(storeID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if partnerID != nil {
		partner, partnerErr := kernel.UUIDFromBytes((*partnerID)[:])
		if partnerErr != nil {
			return GetOrderQueryResponse{}, partnerErr
		}
		resp.PartnerID = &partner
	}

	if resp.Subtotal, err = kernel.NewMoney(subtotal); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.DeliveryFee, err = kernel.NewMoney(deliveryFee); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.Discount, err = kernel.NewMoney(discount); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.Total, err = kernel.NewMoney(total); err != nil {
		return GetOrderQueryResponse{}, err
	}

	return resp, nil
}

func (h GetOrderQueryHandler) scanItems(
	ctx context.Context, orderID kernel.UUID,
) ([]GetOrderItemResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, product_name, unit_price, quantity
		FROM order_items
		WHERE order_id = ?
		ORDER BY id
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]GetOrderItemResponse, 0)
	for rows.Next() {
		var (
			id          uuid.UUID
			productName string
			unitPrice   int64
			quantity    int
		)

		if err = rows.Scan(&id, &productName, &unitPrice, &quantity); err != nil {
			return nil, err
		}

		itemID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		price, priceErr := kernel.NewMoney(unitPrice)
		if priceErr != nil {
			return nil, priceErr
		}

		items = append(items, GetOrderItemResponse{
			ID:          itemID,
			ProductName: productName,
			UnitPrice:   price,
			Quantity:    quantity,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
