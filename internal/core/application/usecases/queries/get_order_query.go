package queries

import (
	"errors"
	"time"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/order"
	"grocery/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves the tracking snapshot of a single order, including
// its line items. This is the same shape the change notifications carry, so
// a client can bootstrap from this query and then apply pushed snapshots as
// overwrites.
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for one order's tracking snapshot.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	query := GetOrderQuery{guard: guard.NewConstructorGuard()}

	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	query.orderID = orderID

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the order to fetch.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderItemResponse is one line item in the tracking snapshot.
type GetOrderItemResponse struct {
	ID          kernel.UUID
	ProductName string
	UnitPrice   kernel.Money
	Quantity    int
}

// GetOrderQueryResponse is the full tracking snapshot of an order.
type GetOrderQueryResponse struct {
	ID              kernel.UUID
	CustomerID      kernel.UUID
	StoreID         kernel.UUID
	PartnerID       *kernel.UUID
	Status          order.Status
	Subtotal        kernel.Money
	DeliveryFee     kernel.Money
	Discount        kernel.Money
	Total           kernel.Money
	DeliveryAddress string
	PaymentStatus   string
	PickupVerified  bool
	Items           []GetOrderItemResponse
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
