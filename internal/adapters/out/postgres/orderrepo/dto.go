// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between domain entities and database rows.
package orderrepo

import (
	"time"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Status is stored as its integer value; the claim operation's conditional
// write matches on (status, delivery_partner_id), so both carry indexes.
type OrderDTO struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID        uuid.UUID  `gorm:"type:uuid;index"`
	StoreID           uuid.UUID  `gorm:"type:uuid;index"`
	DeliveryPartnerID *uuid.UUID `gorm:"type:uuid;index"`
	Status            int        `gorm:"index"`
	Subtotal          int64
	DeliveryFee       int64
	Discount          int64
	Total             int64
	DeliveryAddress   string
	PaymentStatus     string
	PickupVerified    bool
	Items             []ItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime:false"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents one line-item snapshot row. Items share the order's
// lifecycle and are removed with it via the cascade constraint.
type ItemDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;index"`
	ProductName string
	UnitPrice   int64
	Quantity    int
}

// TableName specifies the database table name for line items.
func (ItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var partnerID *uuid.UUID
	if id := aggregate.Partner(); id != nil {
		raw := id.Bytes()
		partnerID = &raw
	}

	items := aggregate.Items()
	itemDTOs := make([]ItemDTO, 0, len(items))
	for _, item := range items {
		itemDTOs = append(itemDTOs, ItemDTO{
			ID:          item.ID().Bytes(),
			OrderID:     aggregate.ID().Bytes(),
			ProductName: item.ProductName(),
			UnitPrice:   item.UnitPrice().Amount(),
			Quantity:    item.Quantity(),
		})
	}

	return OrderDTO{
		ID:                aggregate.ID().Bytes(),
		CustomerID:        aggregate.CustomerID().Bytes(),
		StoreID:           aggregate.StoreID().Bytes(),
		DeliveryPartnerID: partnerID,
		Status:            int(aggregate.Status()),
		Subtotal:          aggregate.Subtotal().Amount(),
		DeliveryFee:       aggregate.DeliveryFee().Amount(),
		Discount:          aggregate.Discount().Amount(),
		Total:             aggregate.Total().Amount(),
		DeliveryAddress:   aggregate.DeliveryAddress(),
		PaymentStatus:     aggregate.PaymentStatus(),
		PickupVerified:    aggregate.PickupVerified(),
		Items:             itemDTOs,
		CreatedAt:         aggregate.CreatedAt(),
		UpdatedAt:         aggregate.UpdatedAt(),
	}
}

// toDomain converts a database DTO to an order aggregate using RestoreOrder,
// which re-checks every invariant on the way in.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	storeID, err := kernel.UUIDFromBytes(dto.StoreID[:])
	if err != nil {
		return nil, err
	}

	var partnerID *kernel.UUID
	if dto.DeliveryPartnerID != nil {
		pID, partnerErr := kernel.UUIDFromBytes((*dto.DeliveryPartnerID)[:])
		if partnerErr != nil {
			return nil, partnerErr
		}
		partnerID = &pID
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	subtotal, err := kernel.NewMoney(dto.Subtotal)
	if err != nil {
		return nil, err
	}
	deliveryFee, err := kernel.NewMoney(dto.DeliveryFee)
	if err != nil {
		return nil, err
	}
	discount, err := kernel.NewMoney(dto.Discount)
	if err != nil {
		return nil, err
	}
	total, err := kernel.NewMoney(dto.Total)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id, customerID, storeID, partnerID, items,
		order.Status(dto.Status),
		subtotal, deliveryFee, discount, total,
		dto.DeliveryAddress, dto.PaymentStatus, dto.PickupVerified,
		dto.CreatedAt, dto.UpdatedAt,
	)
}

func itemToDomain(dto ItemDTO) (order.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return order.Item{}, err
	}
	unitPrice, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return order.Item{}, err
	}
	return order.NewItem(id, dto.ProductName, unitPrice, dto.Quantity)
}
