package queries

import (
	"errors"
	"time"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/order"
	"grocery/internal/pkg/guard"
)

var ErrGetStoreOrdersQueryIsNotConstructed = errors.New(
	"GetStoreOrdersQuery must be created via NewGetStoreOrdersQuery constructor",
)

// GetStoreOrdersQuery retrieves a store's fulfillment board: every
// non-terminal order the store still has to act on or watch, newest first.
type GetStoreOrdersQuery struct { //nolint:recvcheck //using for validation
	storeID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetStoreOrdersQuery creates a query for a store's fulfillment board.
func NewGetStoreOrdersQuery(storeID kernel.UUID) (GetStoreOrdersQuery, error) {
	query := GetStoreOrdersQuery{guard: guard.NewConstructorGuard()}

	if err := storeID.Validate(); err != nil {
		return GetStoreOrdersQuery{}, err
	}
	query.storeID = storeID

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetStoreOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetStoreOrdersQueryIsNotConstructed)
}

// StoreID returns the store whose board is requested.
func (q GetStoreOrdersQuery) StoreID() kernel.UUID {
	return q.storeID
}

// GetStoreOrdersQueryResponse is one order on the store's board.
type GetStoreOrdersQueryResponse struct {
	ID              kernel.UUID
	CustomerID      kernel.UUID
	PartnerID       *kernel.UUID
	Status          order.Status
	Total           kernel.Money
	DeliveryAddress string
	PickupVerified  bool
	CreatedAt       time.Time
}
