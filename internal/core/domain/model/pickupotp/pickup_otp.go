package pickupotp

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"time"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/pkg/errs"
)

const (
	// TTL is the fixed validity window from generation.
	TTL = 30 * time.Minute

	// MaxAttempts bounds the number of verification attempts per OTP.
	MaxAttempts = 3
)

// ErrPickupOtpIsNotConstructed is returned when a PickupOtp instance was not
// created through the NewPickupOtp or RestorePickupOtp factory methods.
var ErrPickupOtpIsNotConstructed = errors.New("PickupOtp must be created via NewPickupOtp or RestorePickupOtp constructor")

var codePattern = regexp.MustCompile(`^\d{4}$`)

// GenerateCode produces a random 4-digit code in the range 1000-9999,
// drawn from the system's CSPRNG.
func GenerateCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		panic(fmt.Sprintf("pickupotp: read random source: %v", err))
	}
	return fmt.Sprintf("%d", 1000+n.Int64())
}

// PickupOtp is the aggregate for a one-time pickup passcode. At most one
// live instance exists per order at a time, enforced by uniqueness on the
// order id while unverified.
//
// PickupOtp follows these invariants:
//   - The code is exactly 4 digits
//   - expiresAt is exactly TTL after generatedAt
//   - attempts never exceeds MaxAttempts
//   - Once verified the record is immutable: verification attempts against a
//     verified, expired, or attempt-exhausted record fail without mutation
type PickupOtp struct {
	// id is the unique identifier for the OTP record
	id kernel.UUID

	// orderID is the order whose handoff this code verifies
	orderID kernel.UUID

	// storeID is the store issuing the code
	storeID kernel.UUID

	// code is the 4-digit passcode shown to the store
	code string

	generatedAt time.Time
	expiresAt   time.Time

	// attempts counts failed verification submissions
	attempts int

	isVerified bool
	verifiedAt *time.Time

	// verifiedBy is the delivery partner who presented the correct code
	verifiedBy *kernel.UUID

	// isConstructed ensures the OTP was created via a constructor
	isConstructed bool
}

// NewPickupOtp creates a fresh OTP with zero attempts and a TTL-bounded
// validity window starting at now.
func NewPickupOtp(id, orderID, storeID kernel.UUID, code string, now time.Time) (*PickupOtp, error) {
	otp := &PickupOtp{
		generatedAt:   now,
		expiresAt:     now.Add(TTL),
		isConstructed: true,
	}

	if err := errors.Join(
		otp.setID(id),
		otp.setOrderID(orderID),
		otp.setStoreID(storeID),
		otp.setCode(code),
	); err != nil {
		return nil, err
	}

	return otp, nil
}

// RestorePickupOtp reconstructs a PickupOtp from persistence.
func RestorePickupOtp(
	id, orderID, storeID kernel.UUID,
	code string,
	generatedAt, expiresAt time.Time,
	attempts int,
	isVerified bool,
	verifiedAt *time.Time,
	verifiedBy *kernel.UUID,
) (*PickupOtp, error) {
	otp := &PickupOtp{
		generatedAt:   generatedAt,
		expiresAt:     expiresAt,
		isVerified:    isVerified,
		isConstructed: true,
	}

	if err := errors.Join(
		otp.setID(id),
		otp.setOrderID(orderID),
		otp.setStoreID(storeID),
		otp.setCode(code),
	); err != nil {
		return nil, err
	}

	if attempts < 0 || attempts > MaxAttempts {
		return nil, errs.NewValueIsOutOfRangeError("attempts", attempts, 0, MaxAttempts)
	}
	otp.attempts = attempts

	if verifiedAt != nil {
		at := *verifiedAt
		otp.verifiedAt = &at
	}
	if verifiedBy != nil {
		if err := verifiedBy.Validate(); err != nil {
			return nil, err
		}
		by := *verifiedBy
		otp.verifiedBy = &by
	}

	return otp, nil
}

// Validate ensures the PickupOtp instance was properly constructed.
func (p *PickupOtp) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPickupOtpIsNotConstructed
	}
	return nil
}

// ID returns the OTP record's unique identifier.
func (p *PickupOtp) ID() kernel.UUID {
	return p.id
}

// OrderID returns the order whose handoff this code verifies.
func (p *PickupOtp) OrderID() kernel.UUID {
	return p.orderID
}

// StoreID returns the store issuing the code.
func (p *PickupOtp) StoreID() kernel.UUID {
	return p.storeID
}

// Code returns the 4-digit passcode.
func (p *PickupOtp) Code() string {
	return p.code
}

// GeneratedAt returns the issue timestamp.
func (p *PickupOtp) GeneratedAt() time.Time {
	return p.generatedAt
}

// ExpiresAt returns the end of the validity window.
func (p *PickupOtp) ExpiresAt() time.Time {
	return p.expiresAt
}

// Attempts returns the number of failed verification submissions.
func (p *PickupOtp) Attempts() int {
	return p.attempts
}

// RemainingAttempts returns how many verification attempts are left.
func (p *PickupOtp) RemainingAttempts() int {
	remaining := MaxAttempts - p.attempts
	if remaining < 0 {
		return 0
	}
	return remaining
}

// IsVerified reports whether the code was successfully presented.
func (p *PickupOtp) IsVerified() bool {
	return p.isVerified
}

// VerifiedAt returns the verification timestamp, or nil if unverified.
func (p *PickupOtp) VerifiedAt() *time.Time {
	return p.verifiedAt
}

// VerifiedBy returns the partner who verified, or nil if unverified.
func (p *PickupOtp) VerifiedBy() *kernel.UUID {
	return p.verifiedBy
}

// IsLive reports whether the OTP is still usable for idempotent generation:
// unverified and unexpired. Repeated generate calls return a live OTP
// unchanged instead of invalidating a code the partner already has.
func (p *PickupOtp) IsLive(now time.Time) bool {
	return !p.isVerified && now.Before(p.expiresAt)
}

// Verify checks a submitted code for the given partner.
//
// The failure ladder, in order: ErrAlreadyUsed, ErrExpired,
// ErrAttemptsExhausted, then IncorrectCodeError on mismatch. Only the
// mismatch case mutates the aggregate (the attempt counter); every other
// failure leaves it untouched, which makes repeated verification after
// AlreadyUsed/Expired/AttemptsExhausted idempotent.
//
// On a match the record becomes verified and immutable, stamped with the
// verifying partner and timestamp.
func (p *PickupOtp) Verify(submittedCode string, partnerID kernel.UUID, now time.Time) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}

	if p.isVerified {
		return ErrAlreadyUsed
	}
	if now.After(p.expiresAt) {
		return ErrExpired
	}
	if p.attempts >= MaxAttempts {
		return ErrAttemptsExhausted
	}

	if submittedCode != p.code {
		p.attempts++
		return NewIncorrectCodeError(p.RemainingAttempts())
	}

	p.isVerified = true
	p.verifiedAt = &now
	p.verifiedBy = &partnerID
	return nil
}

func (p *PickupOtp) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *PickupOtp) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	p.orderID = id
	return nil
}

func (p *PickupOtp) setStoreID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("storeId", err)
	}
	p.storeID = id
	return nil
}

func (p *PickupOtp) setCode(code string) error {
	if !codePattern.MatchString(code) {
		return errs.NewValueIsInvalidErrorWithCause("code", fmt.Errorf("%q is not a 4-digit code", code))
	}
	p.code = code
	return nil
}
