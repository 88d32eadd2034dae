package commands

import (
	"errors"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/order"
	"grocery/internal/pkg/guard"
)

var (
	ErrPlaceOrderCommandIsNotConstructed = errors.New(
		"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
	)
	ErrItemsAreRequired = errors.New("at least one order item is required")
)

// PlaceOrderCommand represents a checkout request: a customer placing an
// order against a store with a set of line-item snapshots and the money
// components of the bill.
//
// Example:
//
//	item, _ := order.NewItem(kernel.NewUUID(), "Milk 1L", price, 2)
//	cmd, err := NewPlaceOrderCommand(
//	    kernel.NewUUID(), customerID, storeID,
//	    "12 Green Street, Pune", []order.Item{item}, fee, discount,
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	customerID      kernel.UUID
	storeID         kernel.UUID
	deliveryAddress string
	items           []order.Item
	deliveryFee     kernel.Money
	discount        kernel.Money

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand creates a command to place a new order.
// Validates identifiers and requires at least one item; the money identity
// itself is enforced by the Order constructor.
func NewPlaceOrderCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	storeID kernel.UUID,
	deliveryAddress string,
	items []order.Item,
	deliveryFee kernel.Money,
	discount kernel.Money,
) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		deliveryAddress: deliveryAddress,
		deliveryFee:     deliveryFee,
		discount:        discount,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setStoreID(storeID),
		cmd.setItems(items),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c PlaceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the shopper placing the order.
func (c PlaceOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// StoreID returns the store fulfilling the order.
func (c PlaceOrderCommand) StoreID() kernel.UUID {
	return c.storeID
}

// DeliveryAddress returns the destination captured at checkout.
func (c PlaceOrderCommand) DeliveryAddress() string {
	return c.deliveryAddress
}

// Items returns the line-item snapshots.
func (c PlaceOrderCommand) Items() []order.Item {
	return c.items
}

// DeliveryFee returns the delivery fee component of the bill.
func (c PlaceOrderCommand) DeliveryFee() kernel.Money {
	return c.deliveryFee
}

// Discount returns the discount component of the bill.
func (c PlaceOrderCommand) Discount() kernel.Money {
	return c.discount
}

func (c *PlaceOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *PlaceOrderCommand) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.customerID = id
	return nil
}

func (c *PlaceOrderCommand) setStoreID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.storeID = id
	return nil
}

func (c *PlaceOrderCommand) setItems(items []order.Item) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	c.items = items
	return nil
}
