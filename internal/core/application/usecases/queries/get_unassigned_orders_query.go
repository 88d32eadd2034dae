// Package queries contains read-only operations against the storage layer.
// Query handlers bypass the domain aggregates and repositories, reading
// projections straight from the database in the CQRS style.
package queries

import (
	"errors"
	"time"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/pkg/guard"
)

var ErrGetUnassignedOrdersQueryIsNotConstructed = errors.New(
	"GetUnassignedOrdersQuery must be created via NewGetUnassignedOrdersQuery constructor",
)

// GetUnassignedOrdersQuery retrieves the partner board: orders that are ready
// for pickup with no delivery partner bound.
//
// The board is advisory. An order shown here may already be claimed by the
// time a partner acts on it; the claim operation re-checks atomically and the
// loser simply sees the order disappear on the next refresh.
type GetUnassignedOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetUnassignedOrdersQuery creates a query for the claimable-orders board.
func NewGetUnassignedOrdersQuery() GetUnassignedOrdersQuery {
	return GetUnassignedOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetUnassignedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetUnassignedOrdersQueryIsNotConstructed)
}

// GetUnassignedOrdersQueryResponse is one claimable order on the board.
type GetUnassignedOrdersQueryResponse struct {
	ID              kernel.UUID
	StoreID         kernel.UUID
	DeliveryAddress string
	Total           kernel.Money
	ItemCount       int
	CreatedAt       time.Time
}
