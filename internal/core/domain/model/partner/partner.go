// Package partner provides the DeliveryPartner aggregate. The core only
// tracks the partner's availability flag: a self-service toggle indicating
// willingness to receive assignment offers. The flag decides what the
// partner's order board displays; it is deliberately not a hard filter on
// the claim operation, whose correctness rests on the conditional write
// alone.
package partner

import (
	"errors"
	"time"

	"grocery/internal/core/domain/model/kernel"
)

// ErrPartnerIsNotConstructed is returned when a DeliveryPartner instance was
// not created through the NewDeliveryPartner or RestoreDeliveryPartner
// factory methods.
var ErrPartnerIsNotConstructed = errors.New("DeliveryPartner must be created via NewDeliveryPartner or RestoreDeliveryPartner constructor")

// DeliveryPartner is the aggregate for a delivery partner's assignment
// preferences. Only the partner themselves mutates the availability flag.
type DeliveryPartner struct {
	// id is the partner's identity-provider user id
	id kernel.UUID

	// isAvailable indicates willingness to receive assignment offers
	isAvailable bool

	updatedAt time.Time

	// isConstructed ensures the partner was created via a constructor
	isConstructed bool
}

// NewDeliveryPartner creates a partner profile, available by default.
func NewDeliveryPartner(id kernel.UUID, now time.Time) (*DeliveryPartner, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return &DeliveryPartner{
		id:            id,
		isAvailable:   true,
		updatedAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreDeliveryPartner reconstructs a partner profile from persistence.
func RestoreDeliveryPartner(id kernel.UUID, isAvailable bool, updatedAt time.Time) (*DeliveryPartner, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return &DeliveryPartner{
		id:            id,
		isAvailable:   isAvailable,
		updatedAt:     updatedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the DeliveryPartner instance was properly constructed.
func (p *DeliveryPartner) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPartnerIsNotConstructed
	}
	return nil
}

// ID returns the partner's unique identifier.
func (p *DeliveryPartner) ID() kernel.UUID {
	return p.id
}

// IsAvailable reports whether the partner wants assignment offers surfaced.
func (p *DeliveryPartner) IsAvailable() bool {
	return p.isAvailable
}

// UpdatedAt returns the last mutation timestamp.
func (p *DeliveryPartner) UpdatedAt() time.Time {
	return p.updatedAt
}

// SetAvailability flips the availability flag. Idempotent when the flag
// already has the requested value.
func (p *DeliveryPartner) SetAvailability(available bool, now time.Time) {
	if p.isAvailable == available {
		return
	}
	p.isAvailable = available
	p.updatedAt = now
}
