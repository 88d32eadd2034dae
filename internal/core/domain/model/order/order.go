package order

import (
	"errors"
	"fmt"
	"time"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrTotalMismatch is returned when the money invariant
	// total = subtotal + delivery fee - discount does not hold.
	ErrTotalMismatch = errors.New("order total does not equal subtotal + delivery fee - discount")
)

// Order represents a grocery order in the system. It is the aggregate root
// that manages the order lifecycle from placement through pickup verification
// to delivery.
//
// Order follows these invariants:
//   - Must have valid customer, store, and order identifiers
//   - Must contain at least one line item
//   - total = subtotal + delivery fee - discount, at creation and forever
//   - Status transitions follow the actor-aware edge set in Status
//   - At most one delivery partner is ever bound; the binding never changes
//   - Can only be created through NewOrder or RestoreOrder
//
// All mutation goes through TransitionTo, Claim, and VerifyPickup. Direct
// field writes bypassing these entry points are what would reopen the
// double-assignment race, so the fields stay private.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// customerID is the shopper who placed the order
	customerID kernel.UUID

	// storeID is the store fulfilling the order
	storeID kernel.UUID

	// partnerID is the assigned delivery partner (nil until claimed)
	partnerID *kernel.UUID

	// items are the product snapshots captured at order time
	items []Item

	// status is the current state in the order lifecycle
	status Status

	subtotal    kernel.Money
	deliveryFee kernel.Money
	discount    kernel.Money
	total       kernel.Money

	// deliveryAddress is the destination captured at checkout
	deliveryAddress string

	// paymentStatus is carried verbatim from the payment flow and never
	// interpreted by the core
	paymentStatus string

	// pickupVerified is set when the store handoff was OTP-verified
	pickupVerified bool

	createdAt time.Time
	updatedAt time.Time

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order in Pending status with validation.
// The subtotal is computed from the item snapshots and the total is derived
// as subtotal + deliveryFee - discount; a discount larger than the rest of
// the bill is rejected.
//
// Parameters:
//   - id: unique identifier for the order
//   - customerID: the shopper placing the order
//   - storeID: the store fulfilling the order
//   - deliveryAddress: destination captured at checkout (must be non-empty)
//   - items: product snapshots (at least one)
//   - deliveryFee, discount: money components of the bill
//   - now: placement timestamp
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	storeID kernel.UUID,
	deliveryAddress string,
	items []Item,
	deliveryFee kernel.Money,
	discount kernel.Money,
	now time.Time,
) (*Order, error) {
	order := &Order{
		status:        Pending,
		paymentStatus: "pending",
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setCustomerID(customerID),
		order.setStoreID(storeID),
		order.setDeliveryAddress(deliveryAddress),
		order.setItems(items),
	); err != nil {
		return nil, err
	}

	subtotal, err := kernel.NewMoney(0)
	if err != nil {
		return nil, err
	}
	for _, item := range order.items {
		subtotal = subtotal.Add(item.Subtotal())
	}

	total, err := subtotal.Add(deliveryFee).Sub(discount)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("discount", err)
	}

	order.subtotal = subtotal
	order.deliveryFee = deliveryFee
	order.discount = discount
	order.total = total

	return order, nil
}

// RestoreOrder reconstructs an Order from persistence without resetting its
// lifecycle. It re-checks every invariant, including the money identity and
// the status/partner consistency rules, so corrupted rows never become live
// aggregates.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	storeID kernel.UUID,
	partnerID *kernel.UUID,
	items []Item,
	status Status,
	subtotal kernel.Money,
	deliveryFee kernel.Money,
	discount kernel.Money,
	total kernel.Money,
	deliveryAddress string,
	paymentStatus string,
	pickupVerified bool,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	order := &Order{
		subtotal:       subtotal,
		deliveryFee:    deliveryFee,
		discount:       discount,
		total:          total,
		paymentStatus:  paymentStatus,
		pickupVerified: pickupVerified,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
		isConstructed:  true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setCustomerID(customerID),
		order.setStoreID(storeID),
		order.setDeliveryAddress(deliveryAddress),
		order.setItems(items),
		status.Validate(),
		status.ValidateCanHavePartner(partnerID != nil),
	); err != nil {
		return nil, err
	}
	order.status = status

	if partnerID != nil {
		if err := partnerID.Validate(); err != nil {
			return nil, err
		}
		partner := *partnerID
		order.partnerID = &partner
	}

	expected, err := subtotal.Add(deliveryFee).Sub(discount)
	if err != nil || !expected.IsEqual(total) {
		return nil, ErrTotalMismatch
	}

	return order, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the shopper who placed the order.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// StoreID returns the store fulfilling the order.
func (o *Order) StoreID() kernel.UUID {
	return o.storeID
}

// Partner returns the assigned delivery partner's ID.
// Returns nil if no partner has claimed the order.
func (o *Order) Partner() *kernel.UUID {
	return o.partnerID
}

// Items returns a copy of the line-item snapshots.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Subtotal returns the sum of line-item subtotals.
func (o *Order) Subtotal() kernel.Money {
	return o.subtotal
}

// DeliveryFee returns the delivery fee component of the bill.
func (o *Order) DeliveryFee() kernel.Money {
	return o.deliveryFee
}

// Discount returns the discount component of the bill.
func (o *Order) Discount() kernel.Money {
	return o.discount
}

// Total returns subtotal + delivery fee - discount.
func (o *Order) Total() kernel.Money {
	return o.total
}

// DeliveryAddress returns the destination captured at checkout.
func (o *Order) DeliveryAddress() string {
	return o.deliveryAddress
}

// PaymentStatus returns the opaque payment status string.
func (o *Order) PaymentStatus() string {
	return o.paymentStatus
}

// PickupVerified reports whether the store handoff was OTP-verified.
func (o *Order) PickupVerified() bool {
	return o.pickupVerified
}

// CreatedAt returns the placement timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the last mutation timestamp.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// TransitionTo moves the order to target if the edge is legal for the actor.
//
// Transitioning to the state the order is already in is idempotent: it
// returns nil without touching updatedAt, so retried requests never re-fire
// notifications.
//
// Returns an InvalidTransitionError (unwrapping to ErrInvalidTransition) if
// the edge is not in the allowed set; rejections leave the order untouched.
func (o *Order) TransitionTo(target Status, actor Role, now time.Time) error {
	if target == o.status {
		return nil
	}

	if err := o.status.CanTransition(target, actor); err != nil {
		return err
	}

	o.status = target
	o.updatedAt = now
	return nil
}

// Claim binds the order to a delivery partner and advances the status to
// next, which must be AwaitingPickupVerification (OTP-gated handoff) or
// InTransit (direct handoff).
//
// This is the in-memory half of the claim operation: it enforces the
// preconditions (order is ReadyForPickup and unassigned), while the
// repository's conditional write enforces them atomically against the
// backing store. Both halves must agree.
//
// Returns ErrOrderUnavailable if the order is not claimable.
func (o *Order) Claim(partnerID kernel.UUID, next Status, now time.Time) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}
	if next != AwaitingPickupVerification && next != InTransit {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid post-claim status", next.String()),
		)
	}
	if o.status != ReadyForPickup || o.partnerID != nil {
		return ErrOrderUnavailable
	}

	o.partnerID = &partnerID
	o.status = next
	o.updatedAt = now
	return nil
}

// VerifyPickup records a successful OTP verification: the order moves from
// AwaitingPickupVerification to InTransit and pickupVerified is set. Called
// by the pickup-OTP manager in the same transaction that marks the OTP
// record verified.
func (o *Order) VerifyPickup(now time.Time) error {
	if o.status != AwaitingPickupVerification {
		return NewInvalidTransitionError(o.status, InTransit, RoleSystem)
	}

	o.status = InTransit
	o.pickupVerified = true
	o.updatedAt = now
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerId", err)
	}
	o.customerID = id
	return nil
}

func (o *Order) setStoreID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("storeId", err)
	}
	o.storeID = id
	return nil
}

func (o *Order) setDeliveryAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("deliveryAddress")
	}
	o.deliveryAddress = address
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}
