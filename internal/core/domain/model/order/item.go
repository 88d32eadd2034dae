package order

import (
	"errors"
	"fmt"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/pkg/errs"
)

// ErrItemIsNotConstructed is returned when an Item instance was not created
// through the NewItem factory method.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is a product snapshot captured at order time. It is intentionally
// decoupled from live catalog records: the name and unit price are frozen
// when the order is placed, so historical orders stay immutable even if
// catalog prices change later.
//
// Items are owned exclusively by their Order and share its lifecycle.
type Item struct {
	// id is the unique identifier for the line item
	id kernel.UUID

	// productName is the catalog name frozen at order time
	productName string

	// unitPrice is the per-unit price frozen at order time
	unitPrice kernel.Money

	// quantity is the number of units ordered (must be positive)
	quantity int

	// isConstructed ensures the item was created via NewItem
	isConstructed bool
}

// NewItem creates a validated line-item snapshot.
//
// Parameters:
//   - id: unique identifier for the line item
//   - productName: catalog name at order time (must be non-empty)
//   - unitPrice: per-unit price at order time
//   - quantity: number of units (must be positive)
func NewItem(id kernel.UUID, productName string, unitPrice kernel.Money, quantity int) (Item, error) {
	item := Item{isConstructed: true}

	if err := errors.Join(
		item.setID(id),
		item.setProductName(productName),
		item.setQuantity(quantity),
	); err != nil {
		return Item{}, err
	}

	item.unitPrice = unitPrice
	return item, nil
}

// Validate ensures the Item was properly constructed through NewItem.
func (i Item) Validate() error {
	if !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ID returns the line item's unique identifier.
func (i Item) ID() kernel.UUID {
	return i.id
}

// ProductName returns the product name frozen at order time.
func (i Item) ProductName() string {
	return i.productName
}

// UnitPrice returns the per-unit price frozen at order time.
func (i Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// Quantity returns the number of units ordered.
func (i Item) Quantity() int {
	return i.quantity
}

// Subtotal returns unit price multiplied by quantity.
func (i Item) Subtotal() kernel.Money {
	// quantity is validated positive at construction
	subtotal, _ := i.unitPrice.MulQty(i.quantity)
	return subtotal
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setProductName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("productName")
	}
	i.productName = name
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}
