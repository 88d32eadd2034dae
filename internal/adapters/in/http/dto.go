package http

import (
	"time"

	"grocery/internal/core/application/usecases/queries"
	"grocery/internal/core/domain/model/order"
	"grocery/internal/core/domain/model/partner"
	"grocery/internal/core/domain/model/pickupotp"
)

// Error is the uniform error body returned by every endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// PlaceOrderItem is one line item in a checkout request. The name and price
// are snapshots provided by the storefront, frozen into the order.
type PlaceOrderItem struct {
	ProductID   string `json:"product_id" validate:"required,uuid"`
	ProductName string `json:"product_name" validate:"required"`
	UnitPrice   int64  `json:"unit_price" validate:"gte=0"`
	Quantity    int    `json:"quantity" validate:"gt=0"`
}

// PlaceOrderRequest is the checkout payload. The customer placing the order
// comes from the identity headers, not the body.
type PlaceOrderRequest struct {
	StoreID         string           `json:"store_id" validate:"required,uuid"`
	DeliveryAddress string           `json:"delivery_address" validate:"required"`
	Items           []PlaceOrderItem `json:"items" validate:"required,min=1,dive"`
	DeliveryFee     int64            `json:"delivery_fee" validate:"gte=0"`
	Discount        int64            `json:"discount" validate:"gte=0"`
}

// TransitionOrderRequest asks for a status change on behalf of the caller.
type TransitionOrderRequest struct {
	Status string `json:"status" validate:"required"`
}

// VerifyPickupOtpRequest carries the code a partner presents at the counter.
type VerifyPickupOtpRequest struct {
	Code string `json:"code" validate:"required,len=4,number"`
}

// SetAvailabilityRequest toggles the calling partner's availability.
type SetAvailabilityRequest struct {
	IsAvailable *bool `json:"is_available" validate:"required"`
}

// OrderItem is one line item in an order response.
type OrderItem struct {
	ID          string `json:"id"`
	ProductName string `json:"product_name"`
	UnitPrice   int64  `json:"unit_price"`
	Quantity    int    `json:"quantity"`
}

// Order is the full order representation returned by write operations and
// the tracking endpoint. Money fields are integer minor units.
type Order struct {
	ID              string      `json:"id"`
	CustomerID      string      `json:"customer_id"`
	StoreID         string      `json:"store_id"`
	PartnerID       *string     `json:"delivery_partner_id,omitempty"`
	Status          string      `json:"status"`
	Subtotal        int64       `json:"subtotal"`
	DeliveryFee     int64       `json:"delivery_fee"`
	Discount        int64       `json:"discount"`
	Total           int64       `json:"total"`
	DeliveryAddress string      `json:"delivery_address"`
	PaymentStatus   string      `json:"payment_status"`
	PickupVerified  bool        `json:"pickup_verified"`
	Items           []OrderItem `json:"items,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// UnassignedOrder is one row on the partner's claimable-orders board.
type UnassignedOrder struct {
	ID              string    `json:"id"`
	StoreID         string    `json:"store_id"`
	DeliveryAddress string    `json:"delivery_address"`
	Total           int64     `json:"total"`
	ItemCount       int       `json:"item_count"`
	CreatedAt       time.Time `json:"created_at"`
}

// StoreOrder is one row on the store's fulfillment board.
type StoreOrder struct {
	ID              string    `json:"id"`
	CustomerID      string    `json:"customer_id"`
	PartnerID       *string   `json:"delivery_partner_id,omitempty"`
	Status          string    `json:"status"`
	Total           int64     `json:"total"`
	DeliveryAddress string    `json:"delivery_address"`
	PickupVerified  bool      `json:"pickup_verified"`
	CreatedAt       time.Time `json:"created_at"`
}

// PickupOtp is the response to OTP generation. The code is returned to the
// store, which relays it to the partner out-of-band.
type PickupOtp struct {
	OrderID           string    `json:"order_id"`
	Code              string    `json:"code"`
	ExpiresAt         time.Time `json:"expires_at"`
	RemainingAttempts int       `json:"remaining_attempts"`
}

// Partner is a delivery partner's availability profile.
type Partner struct {
	ID          string    `json:"id"`
	IsAvailable bool      `json:"is_available"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func orderFromDomain(aggregate *order.Order) Order {
	var partnerID *string
	if id := aggregate.Partner(); id != nil {
		s := id.String()
		partnerID = &s
	}

	items := aggregate.Items()
	itemDTOs := make([]OrderItem, 0, len(items))
	for _, item := range items {
		itemDTOs = append(itemDTOs, OrderItem{
			ID:          item.ID().String(),
			ProductName: item.ProductName(),
			UnitPrice:   item.UnitPrice().Amount(),
			Quantity:    item.Quantity(),
		})
	}

	return Order{
		ID:              aggregate.ID().String(),
		CustomerID:      aggregate.CustomerID().String(),
		StoreID:         aggregate.StoreID().String(),
		PartnerID:       partnerID,
		Status:          aggregate.Status().String(),
		Subtotal:        aggregate.Subtotal().Amount(),
		DeliveryFee:     aggregate.DeliveryFee().Amount(),
		Discount:        aggregate.Discount().Amount(),
		Total:           aggregate.Total().Amount(),
		DeliveryAddress: aggregate.DeliveryAddress(),
		PaymentStatus:   aggregate.PaymentStatus(),
		PickupVerified:  aggregate.PickupVerified(),
		Items:           itemDTOs,
		CreatedAt:       aggregate.CreatedAt(),
		UpdatedAt:       aggregate.UpdatedAt(),
	}
}

func orderFromQuery(resp queries.GetOrderQueryResponse) Order {
	var partnerID *string
	if resp.PartnerID != nil {
		s := resp.PartnerID.String()
		partnerID = &s
	}

	items := make([]OrderItem, 0, len(resp.Items))
	for _, item := range resp.Items {
		items = append(items, OrderItem{
			ID:          item.ID.String(),
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice.Amount(),
			Quantity:    item.Quantity,
		})
	}

	return Order{
		ID:              resp.ID.String(),
		CustomerID:      resp.CustomerID.String(),
		StoreID:         resp.StoreID.String(),
		PartnerID:       partnerID,
		Status:          resp.Status.String(),
		Subtotal:        resp.Subtotal.Amount(),
		DeliveryFee:     resp.DeliveryFee.Amount(),
		Discount:        resp.Discount.Amount(),
		Total:           resp.Total.Amount(),
		DeliveryAddress: resp.DeliveryAddress,
		PaymentStatus:   resp.PaymentStatus,
		PickupVerified:  resp.PickupVerified,
		Items:           items,
		CreatedAt:       resp.CreatedAt,
		UpdatedAt:       resp.UpdatedAt,
	}
}

func pickupOtpFromDomain(otp *pickupotp.PickupOtp) PickupOtp {
	return PickupOtp{
		OrderID:           otp.OrderID().String(),
		Code:              otp.Code(),
		ExpiresAt:         otp.ExpiresAt(),
		RemainingAttempts: otp.RemainingAttempts(),
	}
}

func partnerFromDomain(profile *partner.DeliveryPartner) Partner {
	return Partner{
		ID:          profile.ID().String(),
		IsAvailable: profile.IsAvailable(),
		UpdatedAt:   profile.UpdatedAt(),
	}
}
