package ports

import (
	"context"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/pickupotp"
)

// PickupOtpRepository defines the persistence contract for pickup OTPs.
// At most one unverified OTP exists per order, enforced by a partial unique
// index on order_id.
type PickupOtpRepository interface {
	// Add persists a new OTP record.
	Add(ctx context.Context, aggregate *pickupotp.PickupOtp) error

	// Update persists changes to an existing OTP record.
	Update(ctx context.Context, aggregate *pickupotp.PickupOtp) error

	// GetActiveByOrderID retrieves the current OTP record for an order:
	// the unverified one if present, otherwise the most recent.
	GetActiveByOrderID(ctx context.Context, orderID kernel.UUID) (*pickupotp.PickupOtp, error)

	// IncrementAttempts atomically bumps the attempt counter of an
	// unverified, non-exhausted OTP record and returns the new counter
	// value.
	//
	// The increment must be a single conditional write
	// (attempts = attempts + 1 WHERE ... AND attempts < max) so concurrent
	// submissions from a double-tapping partner never lose an increment.
	// Returns pickupotp.ErrAttemptsExhausted if the row no longer matches.
	IncrementAttempts(ctx context.Context, otpID kernel.UUID) (int, error)
}
