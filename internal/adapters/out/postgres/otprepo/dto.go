// Package otprepo provides persistence for pickup OTP records. A partial
// unique index keeps at most one unverified code per order; replacing a dead
// code is an upsert against that index rather than a delete-then-insert.
package otprepo

import (
	"time"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/pickupotp"

	"github.com/google/uuid"
)

// PickupOtpDTO represents the database structure for pickup OTP records.
type PickupOtpDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;uniqueIndex:udx_pickup_otps_order_unverified,where:is_verified = false"`
	StoreID     uuid.UUID `gorm:"type:uuid;index"`
	Code        string
	GeneratedAt time.Time
	ExpiresAt   time.Time
	Attempts    int
	IsVerified  bool
	VerifiedAt  *time.Time
	VerifiedBy  *uuid.UUID `gorm:"type:uuid"`
}

// TableName specifies the database table name for OTP records.
func (PickupOtpDTO) TableName() string {
	return "pickup_otps"
}

// fromDomain converts an OTP aggregate to its database representation.
func fromDomain(aggregate *pickupotp.PickupOtp) PickupOtpDTO {
	var verifiedBy *uuid.UUID
	if id := aggregate.VerifiedBy(); id != nil {
		raw := id.Bytes()
		verifiedBy = &raw
	}

	return PickupOtpDTO{
		ID:          aggregate.ID().Bytes(),
		OrderID:     aggregate.OrderID().Bytes(),
		StoreID:     aggregate.StoreID().Bytes(),
		Code:        aggregate.Code(),
		GeneratedAt: aggregate.GeneratedAt(),
		ExpiresAt:   aggregate.ExpiresAt(),
		Attempts:    aggregate.Attempts(),
		IsVerified:  aggregate.IsVerified(),
		VerifiedAt:  aggregate.VerifiedAt(),
		VerifiedBy:  verifiedBy,
	}
}

// toDomain converts a database DTO to an OTP aggregate.
func toDomain(dto PickupOtpDTO) (*pickupotp.PickupOtp, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	storeID, err := kernel.UUIDFromBytes(dto.StoreID[:])
	if err != nil {
		return nil, err
	}

	var verifiedBy *kernel.UUID
	if dto.VerifiedBy != nil {
		by, byErr := kernel.UUIDFromBytes((*dto.VerifiedBy)[:])
		if byErr != nil {
			return nil, byErr
		}
		verifiedBy = &by
	}

	return pickupotp.RestorePickupOtp(
		id, orderID, storeID, dto.Code,
		dto.GeneratedAt, dto.ExpiresAt,
		dto.Attempts, dto.IsVerified, dto.VerifiedAt, verifiedBy,
	)
}
